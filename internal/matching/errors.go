// Package matching builds weighted phrase matchers for a role and scores content against them.
package matching

import "fmt"

// InvalidRoleError represents a role phrase that cannot be expanded into matchers
type InvalidRoleError struct {
	Phrase  string
	Message string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("invalid role %q: %s", e.Phrase, e.Message)
}

// WeightsError represents an unusable weighting configuration
type WeightsError struct {
	Message string
}

func (e *WeightsError) Error() string {
	return fmt.Sprintf("invalid matcher weights: %s", e.Message)
}
