package content

import "time"

// Thought is a blog article. Thoughts declare no roles.
type Thought struct {
	ID             string `json:"id" yaml:"id" validate:"required"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Draft          bool   `json:"draft,omitempty" yaml:"draft,omitempty"`
	Highlight      bool   `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	PublishingDate *Date  `json:"publishingDate,omitempty" yaml:"publishingDate,omitempty"`
	Created        *Date  `json:"created,omitempty" yaml:"created,omitempty"`
	YouTubeID      string `json:"youTubeID,omitempty" yaml:"youTubeID,omitempty"`
}

// DisplayTitle returns the explicit title or one derived from the ID.
func (t Thought) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return Capitalize(HumanPathSection(t.ID))
}

// Topic implements types.Scoreable.
func (t Thought) Topic() string { return "" }

// RoleReferences implements types.Scoreable.
func (t Thought) RoleReferences() []string { return nil }

// Identity implements types.Identifiable.
func (t Thought) Identity() string { return t.ID }

// RecencyKey implements types.Dated.
func (t Thought) RecencyKey() (time.Time, bool) {
	if d, ok := dateOf(t.PublishingDate); ok {
		return d, true
	}
	return dateOf(t.Created)
}

// IsDraft reports whether the article is unpublished.
func (t Thought) IsDraft() bool { return t.Draft }
