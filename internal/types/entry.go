package types

import "time"

// Scoreable is the capability every content kind exposes to the ranking engine.
type Scoreable interface {
	// Topic returns the entry's category or group label, or "" when it has none.
	Topic() string
	// RoleReferences returns the roles the entry is relevant to. A nil slice means the
	// entry declares no roles; a non-nil empty slice means it declares an empty list.
	RoleReferences() []string
}

// Dated is implemented by entries that can be ordered by recency.
type Dated interface {
	// RecencyKey returns the timestamp used to order entries newest first.
	// ok is false when the entry carries no usable date.
	RecencyKey() (key time.Time, ok bool)
}

// Identifiable is implemented by entries that can name themselves in diagnostics.
type Identifiable interface {
	Identity() string
}

// Entry is a generic scoreable value for callers that have no richer content type.
type Entry struct {
	ID     string     `json:"id"`
	Label  string     `json:"topic,omitempty"`
	Roles  []string   `json:"roles,omitempty"`
	Recent *time.Time `json:"recency,omitempty"`
}

// Topic implements Scoreable.
func (e Entry) Topic() string { return e.Label }

// RoleReferences implements Scoreable.
func (e Entry) RoleReferences() []string { return e.Roles }

// Identity implements Identifiable.
func (e Entry) Identity() string { return e.ID }

// RecencyKey implements Dated.
func (e Entry) RecencyKey() (time.Time, bool) {
	if e.Recent == nil {
		return time.Time{}, false
	}
	return *e.Recent, true
}
