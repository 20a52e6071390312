package content

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Tech is a technology or skill with the experience gathered in it.
type Tech struct {
	ID              string          `json:"id" yaml:"id" validate:"required"`
	Experience      string          `json:"experience" yaml:"experience" validate:"required"`
	Group           string          `json:"group,omitempty" yaml:"group,omitempty"`
	Roles           []string        `json:"roles" yaml:"roles,omitempty"`
	TranslateID     bool            `json:"translateId,omitempty" yaml:"translateId,omitempty"`
	Functionalities []Functionality `json:"functionalities,omitempty" yaml:"functionalities,omitempty" validate:"dive"`
}

// Topic implements types.Scoreable.
func (t Tech) Topic() string { return t.Group }

// RoleReferences implements types.Scoreable.
func (t Tech) RoleReferences() []string { return t.Roles }

// Identity implements types.Identifiable.
func (t Tech) Identity() string { return t.ID }

// FunctionalityIDs returns the functionality names in order.
func (t Tech) FunctionalityIDs() []string {
	ids := make([]string, len(t.Functionalities))
	for i, f := range t.Functionalities {
		ids[i] = f.ID
	}
	return ids
}

// Functionality is something done with a tech. It is written either as a bare
// name, shown to every role, or as an object whose roles decide whether it is shown.
type Functionality struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	Roles           []string `json:"roles" yaml:"roles,omitempty"`
	DontTranslateID bool     `json:"dontTranslateId,omitempty" yaml:"dontTranslateId,omitempty"`
	// RoleBound is set for the object form.
	RoleBound bool `json:"-" yaml:"-"`
}

// Topic implements types.Scoreable.
func (f Functionality) Topic() string { return "" }

// RoleReferences implements types.Scoreable.
func (f Functionality) RoleReferences() []string { return f.Roles }

// Identity implements types.Identifiable.
func (f Functionality) Identity() string { return f.ID }

type functionalityObject Functionality

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Functionality) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*f = Functionality{ID: node.Value}
		return nil
	}

	var obj functionalityObject
	if err := node.Decode(&obj); err != nil {
		return err
	}
	*f = Functionality(obj)
	f.RoleBound = true
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Functionality) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*f = Functionality{ID: id}
		return nil
	}

	var obj functionalityObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = Functionality(obj)
	f.RoleBound = true
	return nil
}

// MarshalJSON writes the bare name for plain functionalities.
func (f Functionality) MarshalJSON() ([]byte, error) {
	if !f.RoleBound {
		return json.Marshal(f.ID)
	}
	return json.Marshal(functionalityObject(f))
}
