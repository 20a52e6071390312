package roles

import (
	"strings"

	"github.com/jonathan/portfolio-ranker/internal/types"
)

// roleSections is how many leading URL path sections may name a role.
const roleSections = 2

// MakePath returns the URL slug for a role ID ("Game Designer" -> "game-designer").
func MakePath(id string) string {
	return strings.ToLower(strings.Join(strings.Fields(id), "-"))
}

// PathSections splits a URL path into its non-empty sections.
func PathSections(urlPath string) []string {
	return strings.FieldsFunc(urlPath, func(r rune) bool { return r == '/' })
}

// Resolve returns the role named by the first path sections of urlPath, or the
// default role when none matches. isDefault reports whether the default was returned.
func (c *Catalog) Resolve(urlPath string) (role *types.Role, isDefault bool) {
	sections := PathSections(urlPath)
	if len(sections) > roleSections {
		sections = sections[:roleSections]
	}

	role = c.Default()
	for _, section := range sections {
		if found, ok := c.ByPath(section); ok {
			role = found
			break
		}
	}
	return role, role == c.Default()
}

// StripRole removes the role section from urlPath, returning the remaining path.
func (c *Catalog) StripRole(urlPath string) string {
	sections := PathSections(urlPath)
	for i := 0; i < len(sections) && i < roleSections; i++ {
		if _, ok := c.ByPath(sections[i]); ok {
			sections = append(sections[:i:i], sections[i+1:]...)
			break
		}
	}
	return "/" + strings.Join(sections, "/")
}

// LinkWithRole prefixes link with the role resolved from urlPath, replacing any
// role section link already carries. Links for the default role carry no prefix.
func (c *Catalog) LinkWithRole(urlPath, link string) string {
	role, isDefault := c.Resolve(urlPath)

	link = strings.Trim(c.StripRole(link), "/")
	if isDefault {
		return "/" + link
	}
	if link == "" {
		return "/" + MakePath(role.ID)
	}
	return "/" + MakePath(role.ID) + "/" + link
}
