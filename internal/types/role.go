// Package types provides type definitions for structured data used throughout the portfolio ranker.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Role is a job-title phrase used both as the visitor's lens and as a tag on content.
type Role struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	HomepageTitle   string   `json:"homepage_title,omitempty" yaml:"homepageTitle,omitempty"`
	Matches         []Role   `json:"matches,omitempty" yaml:"matches,omitempty"`
	NotMatches      []Role   `json:"not_matches,omitempty" yaml:"notMatches,omitempty"`
	WorkFields      []string `json:"work_fields,omitempty" yaml:"workFields,omitempty"`
	Specializations []string `json:"specializations,omitempty" yaml:"specializations,omitempty"`
}

// Sequence returns the role followed by its additional matched roles, highest priority first.
func (r *Role) Sequence() []Role {
	sequence := make([]Role, 0, 1+len(r.Matches))
	sequence = append(sequence, *r)
	return append(sequence, r.Matches...)
}

// MatchIDs returns the IDs of the additional matched roles in priority order.
func (r *Role) MatchIDs() []string {
	return roleIDs(r.Matches)
}

// NotMatchIDs returns the IDs of the excluded roles.
func (r *Role) NotMatchIDs() []string {
	return roleIDs(r.NotMatches)
}

func roleIDs(roles []Role) []string {
	ids := make([]string, len(roles))
	for i, role := range roles {
		ids[i] = role.ID
	}
	return ids
}
