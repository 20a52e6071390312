package roles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rolesYAML = `
- id: Game Developer
  homepageTitle: Games that feel good to play
  matches: [Game Designer, Programmer]
- id: Game Designer
  matches: [Designer]
  notMatches: [Level Designer]
- id: AI Programmer
  matches: [Programmer]
- id: Programmer
- id: Designer
- id: Level Designer
`

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	records, err := ParseRecords([]byte(rolesYAML))
	require.NoError(t, err)
	catalog, err := NewCatalog(records)
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog_ResolvesReferences(t *testing.T) {
	catalog := testCatalog(t)

	assert.Equal(t, 6, catalog.Len())
	assert.Equal(t, "Game Developer", catalog.Default().ID)
	assert.Equal(t, "Games that feel good to play", catalog.Default().HomepageTitle)

	designer, ok := catalog.Get("Game Designer")
	require.True(t, ok)
	assert.Equal(t, []string{"Designer"}, designer.MatchIDs())
	assert.Equal(t, []string{"Level Designer"}, designer.NotMatchIDs())

	developer, _ := catalog.Get("Game Developer")
	assert.Equal(t, []string{"Game Designer", "Programmer"}, developer.MatchIDs())
	// References are shallow
	assert.Empty(t, developer.Matches[0].Matches)
}

func TestNewCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		check   func(t *testing.T, err error)
	}{
		{
			name:    "empty catalog",
			records: nil,
			check: func(t *testing.T, err error) {
				var loadErr *LoadError
				assert.True(t, errors.As(err, &loadErr))
			},
		},
		{
			name:    "missing id",
			records: []Record{{ID: ""}},
			check: func(t *testing.T, err error) {
				var loadErr *LoadError
				require.True(t, errors.As(err, &loadErr))
				assert.Contains(t, loadErr.Message, "index 0")
			},
		},
		{
			name:    "duplicate id",
			records: []Record{{ID: "Designer"}, {ID: "Designer"}},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "duplicate role")
			},
		},
		{
			name:    "colliding paths",
			records: []Record{{ID: "Game Designer"}, {ID: "game  designer"}},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "share path")
			},
		},
		{
			name:    "unknown match",
			records: []Record{{ID: "Designer", Matches: []string{"Artist"}}},
			check: func(t *testing.T, err error) {
				var refErr *ReferenceError
				require.True(t, errors.As(err, &refErr))
				assert.Equal(t, "Designer", refErr.Role)
				assert.Equal(t, "matches", refErr.Field)
				assert.Equal(t, "Artist", refErr.Reference)
			},
		},
		{
			name:    "unknown not-match",
			records: []Record{{ID: "Designer", NotMatches: []string{"Artist"}}},
			check: func(t *testing.T, err error) {
				var refErr *ReferenceError
				require.True(t, errors.As(err, &refErr))
				assert.Equal(t, "notMatches", refErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.records)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestParseRecords_Invalid(t *testing.T) {
	_, err := ParseRecords([]byte("id: [not a list"))

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rolesYAML), 0o600))

	catalog, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, catalog.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	catalog := testCatalog(t)

	all := catalog.All()
	all[0] = nil

	assert.NotNil(t, catalog.Default())
}
