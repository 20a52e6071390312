package roles

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-ranker/internal/types"
)

// Record is a role as stored in roles.yaml, with references by ID.
type Record struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	HomepageTitle   string   `json:"homepageTitle,omitempty" yaml:"homepageTitle,omitempty"`
	Matches         []string `json:"matches,omitempty" yaml:"matches,omitempty" validate:"dive,required"`
	NotMatches      []string `json:"notMatches,omitempty" yaml:"notMatches,omitempty" validate:"dive,required"`
	WorkFields      []string `json:"workFields,omitempty" yaml:"workFields,omitempty"`
	Specializations []string `json:"specializations,omitempty" yaml:"specializations,omitempty"`
}

// Catalog is the ordered set of roles. The first role is the default.
type Catalog struct {
	roles  []*types.Role
	byID   map[string]*types.Role
	byPath map[string]*types.Role
}

// ParseRecords decodes a YAML (or JSON) list of role records.
func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal role records", Cause: err}
	}
	return records, nil
}

// Load reads and resolves a role catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read file %s", path), Cause: err}
	}

	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	return NewCatalog(records)
}

// NewCatalog validates records and resolves their matches and notMatches references.
func NewCatalog(records []Record) (*Catalog, error) {
	if len(records) == 0 {
		return nil, &LoadError{Message: "catalog has no roles"}
	}

	validate := validator.New()
	c := &Catalog{
		roles:  make([]*types.Role, 0, len(records)),
		byID:   make(map[string]*types.Role, len(records)),
		byPath: make(map[string]*types.Role, len(records)),
	}

	for i := range records {
		record := records[i]
		if err := validate.Struct(&record); err != nil {
			return nil, &LoadError{Message: fmt.Sprintf("invalid role at index %d", i), Cause: err}
		}
		if _, exists := c.byID[record.ID]; exists {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate role %q", record.ID)}
		}

		path := MakePath(record.ID)
		if other, exists := c.byPath[path]; exists {
			return nil, &LoadError{Message: fmt.Sprintf("roles %q and %q share path %q", other.ID, record.ID, path)}
		}

		role := &types.Role{
			ID:              record.ID,
			HomepageTitle:   record.HomepageTitle,
			WorkFields:      record.WorkFields,
			Specializations: record.Specializations,
		}
		c.roles = append(c.roles, role)
		c.byID[role.ID] = role
		c.byPath[path] = role
	}

	// Resolve references once every role is known
	for i, record := range records {
		role := c.roles[i]

		matches, err := c.resolve(record.ID, "matches", record.Matches)
		if err != nil {
			return nil, err
		}
		notMatches, err := c.resolve(record.ID, "notMatches", record.NotMatches)
		if err != nil {
			return nil, err
		}

		role.Matches = matches
		role.NotMatches = notMatches
	}

	return c, nil
}

// resolve turns reference IDs into shallow role copies. Referenced roles do
// not carry their own references.
func (c *Catalog) resolve(owner, field string, ids []string) ([]types.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	resolved := make([]types.Role, 0, len(ids))
	for _, id := range ids {
		target, ok := c.byID[id]
		if !ok {
			return nil, &ReferenceError{Role: owner, Field: field, Reference: id}
		}
		resolved = append(resolved, types.Role{
			ID:              target.ID,
			HomepageTitle:   target.HomepageTitle,
			WorkFields:      target.WorkFields,
			Specializations: target.Specializations,
		})
	}
	return resolved, nil
}

// Default returns the first role in the catalog.
func (c *Catalog) Default() *types.Role {
	return c.roles[0]
}

// Get returns the role with the given ID.
func (c *Catalog) Get(id string) (*types.Role, bool) {
	role, ok := c.byID[id]
	return role, ok
}

// ByPath returns the role whose slug is section.
func (c *Catalog) ByPath(section string) (*types.Role, bool) {
	role, ok := c.byPath[strings.ToLower(section)]
	return role, ok
}

// All returns every role in catalog order.
func (c *Catalog) All() []*types.Role {
	out := make([]*types.Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// Len returns the number of roles.
func (c *Catalog) Len() int {
	return len(c.roles)
}
