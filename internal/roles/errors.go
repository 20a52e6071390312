// Package roles loads the role catalog and resolves the visitor's active role.
package roles

import "fmt"

// LoadError represents an error reading or decoding role records
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ReferenceError represents a matches/notMatches entry naming a role that is not in the catalog
type ReferenceError struct {
	Role      string
	Field     string
	Reference string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("role %q: %s references unknown role %q", e.Role, e.Field, e.Reference)
}
