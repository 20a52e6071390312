package content

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// KnowHow is a work or school history item.
type KnowHow struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Location string   `json:"location,omitempty" yaml:"location,omitempty"`
	Start    *Date    `json:"start" yaml:"start" validate:"required"`
	End      *Date    `json:"end,omitempty" yaml:"end,omitempty"`
	Team     *Team    `json:"team,omitempty" yaml:"team,omitempty"`
	School   bool     `json:"school,omitempty" yaml:"school,omitempty"`
	Projects []string `json:"projects,omitempty" yaml:"projects,omitempty"`
	Skills   []Skill  `json:"skills" yaml:"skills" validate:"required,min=1,dive"`
}

// Ongoing reports whether the item has no end date.
func (k KnowHow) Ongoing() bool { return k.End == nil }

// Skill is a job held within a know-how item.
type Skill struct {
	Job         string `json:"job" yaml:"job" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CountAsWork bool   `json:"countAsWork,omitempty" yaml:"countAsWork,omitempty"`
}

// Topic implements types.Scoreable.
func (s Skill) Topic() string { return "" }

// RoleReferences implements types.Scoreable: the job title is the only reference.
func (s Skill) RoleReferences() []string { return []string{s.Job} }

// Identity implements types.Identifiable.
func (s Skill) Identity() string { return s.Job }

// Team is the team size, written either as a number of internal members or split.
type Team struct {
	Internal int `json:"internal" yaml:"internal" validate:"gte=0"`
	External int `json:"external" yaml:"external" validate:"gte=0"`
}

// Size returns the total team size.
func (t Team) Size() int { return t.Internal + t.External }

type teamObject Team

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Team) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*t = Team{Internal: n}
		return nil
	}

	var obj teamObject
	if err := node.Decode(&obj); err != nil {
		return err
	}
	*t = Team(obj)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Team) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] != '{' {
		var n int
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*t = Team{Internal: n}
		return nil
	}

	var obj teamObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = Team(obj)
	return nil
}
