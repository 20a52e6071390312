package content

import (
	"time"

	"github.com/jonathan/portfolio-ranker/internal/types"
)

// Project categories.
const (
	CategoryGame      = "Game"
	CategoryPrototype = "Prototype"
	CategoryTool      = "Tool"
)

// gameMinMonths is the development time from which an uncategorized project counts as a game.
const gameMinMonths = 1

// Project is a portfolio project.
type Project struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	Draft           bool     `json:"draft,omitempty" yaml:"draft,omitempty"`
	Highlight       bool     `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	PublishingDate  *Date    `json:"publishingDate,omitempty" yaml:"publishingDate,omitempty"`
	Created         *Date    `json:"created,omitempty" yaml:"created,omitempty"`
	Category        string   `json:"category,omitempty" yaml:"category,omitempty" validate:"omitempty,oneof=Game Prototype Tool"`
	Group           string   `json:"group,omitempty" yaml:"group,omitempty"`
	DevelopmentTime string   `json:"developmentTime" yaml:"developmentTime" validate:"required"`
	Team            *Team    `json:"team,omitempty" yaml:"team,omitempty"`
	Roles           []string `json:"roles" yaml:"roles,omitempty"`
	Tech            []string `json:"tech,omitempty" yaml:"tech,omitempty"`
	DownloadLinks   []string `json:"downloadLinks,omitempty" yaml:"downloadLinks,omitempty" validate:"omitempty,dive,url"`
	Awards          []string `json:"awards,omitempty" yaml:"awards,omitempty"`
	YouTubeID       string   `json:"youTubeID,omitempty" yaml:"youTubeID,omitempty"`
}

// DerivedCategory returns the explicit category, or Game/Prototype from the
// development time. It returns "" when neither is usable.
func (p Project) DerivedCategory() string {
	if p.Category != "" {
		return p.Category
	}
	d, err := ParseDuration(p.DevelopmentTime)
	if err != nil {
		return ""
	}
	if d.TotalMonths() >= gameMinMonths {
		return CategoryGame
	}
	return CategoryPrototype
}

// DisplayCategory is the category as shown on cards, marking downloadable projects as published.
func (p Project) DisplayCategory() string {
	category := p.DerivedCategory()
	if category != "" && len(p.DownloadLinks) > 0 {
		return "Published " + category
	}
	return category
}

// DisplayTitle returns the explicit title or one derived from the ID.
func (p Project) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return TitleCase(HumanPathSection(p.ID))
}

// Topic implements types.Scoreable: the category, falling back to the group.
func (p Project) Topic() string {
	if category := p.DerivedCategory(); category != "" {
		return category
	}
	return p.Group
}

// RoleReferences implements types.Scoreable.
func (p Project) RoleReferences() []string { return p.Roles }

// Identity implements types.Identifiable.
func (p Project) Identity() string { return p.ID }

// RecencyKey implements types.Dated: the publishing date, else the creation date.
func (p Project) RecencyKey() (time.Time, bool) {
	if t, ok := dateOf(p.PublishingDate); ok {
		return t, true
	}
	return dateOf(p.Created)
}

// IsDraft reports whether the project is unpublished.
func (p Project) IsDraft() bool { return p.Draft }

var (
	_ types.Scoreable    = Project{}
	_ types.Dated        = Project{}
	_ types.Identifiable = Project{}
)
