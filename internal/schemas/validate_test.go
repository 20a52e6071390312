package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-ranker/internal/types"
)

func TestEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			assert.NoError(t, err)
		})
	}
}

func TestValidateYAML_SiteContent(t *testing.T) {
	files := map[string]string{
		Roles:    "roles.yaml",
		Thoughts: "thoughts.yaml",
		Tech:     "tech.yaml",
		KnowHow:  "know-how.yaml",
	}

	for name, file := range files {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("..", "content", "testdata", "site", file))
			require.NoError(t, err)
			assert.NoError(t, ValidateYAML(name, data))
		})
	}
}

func TestValidateYAML_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		doc    string
		field  string
	}{
		{"role without id", Roles, "- homepageTitle: Hi\n", "0"},
		{"role with unknown key", Roles, "- id: Designer\n  match: [Artist]\n", "0"},
		{"empty catalog", Roles, "[]\n", "(root)"},
		{"unknown category", Projects, "- developmentTime: P1M\n  category: Film\n", "0.category"},
		{"bad duration", Projects, "- developmentTime: one month\n", "0.developmentTime"},
		{"bad download link", Projects, "- developmentTime: P1M\n  downloadLinks: [not a link]\n", "0.downloadLinks.0"},
		{"undated project", Projects, "- developmentTime: P1M\n", "0"},
		{"undated thought", Thoughts, "- id: t1\n", "0"},
		{"functionality of wrong type", Tech, "- id: Go\n  experience: P1Y\n  functionalities: [42]\n", "0.functionalities.0"},
		{"know-how without skills", KnowHow, "- id: Studio\n  start: 2020-01-01\n  skills: []\n", "0.skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYAML(tt.schema, []byte(tt.doc))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.schema, validationErr.Schema)

			fields := make([]string, len(validationErr.Errors))
			for i, e := range validationErr.Errors {
				fields[i] = e.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateYAML_Malformed(t *testing.T) {
	err := ValidateYAML(Roles, []byte("- id: [oops"))

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidate_RankedFeed(t *testing.T) {
	feed := types.RankedFeed{
		Role:       "AI Programmer",
		Collection: "projects",
		Threshold:  0,
		Entries: []types.RankedEntry{
			{ID: "robot-arena", Title: "Robot Arena", Bucket: 10, RawScore: 1.697, Roles: []string{"AI Programmer"}},
			{ID: "puzzle-jam", Title: "Puzzle Jam", Bucket: 0},
		},
	}
	assert.NoError(t, Validate(RankedFeed, feed))

	feed.Threshold = 11
	feed.Entries[0].Bucket = 12
	err := Validate(RankedFeed, feed)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Errors, 2)
	assert.Contains(t, err.Error(), "ranked-feed validation failed")
}

func TestValidateJSON(t *testing.T) {
	assert.NoError(t, ValidateJSON(RankedFeed, []byte(`{"role": "Designer", "collection": "tech", "threshold": 7, "entries": []}`)))
	assert.Error(t, ValidateJSON(RankedFeed, []byte(`{"role": "Designer", "collection": "docs", "threshold": 7, "entries": []}`)))
}

func TestUnknownSchema(t *testing.T) {
	err := Validate("docs", map[string]any{})

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "docs", loadErr.Path)
}
