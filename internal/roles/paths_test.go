package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakePath(t *testing.T) {
	assert.Equal(t, "game-designer", MakePath("Game Designer"))
	assert.Equal(t, "ai-programmer", MakePath("  AI   Programmer "))
	assert.Equal(t, "programmer", MakePath("Programmer"))
}

func TestCatalog_Resolve(t *testing.T) {
	catalog := testCatalog(t)

	tests := []struct {
		path      string
		want      string
		isDefault bool
	}{
		{"/", "Game Developer", true},
		{"", "Game Developer", true},
		{"/projects/some-game", "Game Developer", true},
		{"/game-designer", "Game Designer", false},
		{"/game-designer/projects", "Game Designer", false},
		{"/ja/ai-programmer/thoughts", "AI Programmer", false},
		{"/AI-Programmer/", "AI Programmer", false},
		// Only the first two sections can name a role
		{"/ja/projects/programmer", "Game Developer", true},
		{"/game-developer/projects", "Game Developer", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			role, isDefault := catalog.Resolve(tt.path)
			assert.Equal(t, tt.want, role.ID)
			assert.Equal(t, tt.isDefault, isDefault)
		})
	}
}

func TestCatalog_StripRole(t *testing.T) {
	catalog := testCatalog(t)

	assert.Equal(t, "/projects", catalog.StripRole("/game-designer/projects"))
	assert.Equal(t, "/ja/thoughts", catalog.StripRole("/ja/programmer/thoughts"))
	assert.Equal(t, "/projects/x", catalog.StripRole("/projects/x"))
	assert.Equal(t, "/", catalog.StripRole("/designer"))
}

func TestCatalog_LinkWithRole(t *testing.T) {
	catalog := testCatalog(t)

	assert.Equal(t, "/projects", catalog.LinkWithRole("/", "projects"))
	assert.Equal(t, "/game-designer/projects", catalog.LinkWithRole("/game-designer/thoughts", "/projects/"))
	assert.Equal(t, "/game-designer", catalog.LinkWithRole("/game-designer", ""))
	assert.Equal(t, "/", catalog.LinkWithRole("/about", ""))
	assert.Equal(t, "/programmer/projects", catalog.LinkWithRole("/programmer", "/game-designer/projects"))
	assert.Equal(t, "/projects", catalog.LinkWithRole("/", "/designer/projects"))
}

func TestWithArticle(t *testing.T) {
	tests := map[string]string{
		"Game Designer":   "a Game Designer",
		"AI Programmer":   "an AI Programmer",
		"Engineer":        "an Engineer",
		"UX Designer":     "a UX Designer",
		"SEO Specialist":  "an SEO Specialist",
		"QA Tester":       "a QA Tester",
		"Unity Developer": "a Unity Developer",
		"Hourly Worker":   "an Hourly Worker",
		"Illustrator":     "an Illustrator",
		"Programmer":      "a Programmer",
		"8-bit Artist":    "an 8-bit Artist",
		"":                "",
	}

	for phrase, want := range tests {
		assert.Equal(t, want, WithArticle(phrase), phrase)
	}
}
