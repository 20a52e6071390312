package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-ranker/internal/roles"
)

const siteDir = "testdata/site"

func loadSite(t *testing.T) *Library {
	t.Helper()
	library, err := LoadLibrary(context.Background(), NewFileSource(siteDir))
	require.NoError(t, err)
	return library
}

func TestFileSource_Load(t *testing.T) {
	snapshot, err := NewFileSource(siteDir).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, snapshot.Roles, 6)
	assert.Len(t, snapshot.Thoughts, 3)
	assert.Len(t, snapshot.Tech, 4)
	assert.Len(t, snapshot.KnowHow, 3)

	// Directory documents are sorted by path and "_" files are skipped
	ids := make([]string, len(snapshot.Projects))
	for i, p := range snapshot.Projects {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"2022/puzzle-jam", "2023/level-tool", "2024/robot-arena", "draft-idea"}, ids)

	arena := snapshot.Projects[2]
	assert.Equal(t, []string{"AI Programmer"}, arena.Roles)
	assert.Equal(t, "2024-06-01", arena.PublishingDate.String())
	assert.NotNil(t, arena.Created, "created falls back to the file date")
	assert.Equal(t, 3, snapshot.Projects[0].Team.Size())
}

func TestFileSource_OptionalCollections(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roles.yaml"), []byte("- id: Designer\n"), 0o600))

	library, err := LoadLibrary(context.Background(), NewFileSource(dir))
	require.NoError(t, err)

	assert.Equal(t, "Designer", library.Roles.Default().ID)
	assert.Empty(t, library.Projects)
	assert.Empty(t, library.Tech)
}

func TestFileSource_Errors(t *testing.T) {
	t.Run("missing roles", func(t *testing.T) {
		_, err := NewFileSource(t.TempDir()).Load(context.Background())

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, "roles", loadErr.Collection)
	})

	t.Run("malformed list", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "roles.yaml"), []byte("- id: Designer\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tech.yaml"), []byte("id: [oops"), 0o600))

		_, err := NewFileSource(dir).Load(context.Background())

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, "tech", loadErr.Collection)
	})

	t.Run("missing front matter", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "roles.yaml"), []byte("- id: Designer\n"), 0o600))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "thoughts"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "thoughts", "post.md"), []byte("# just markdown\n"), 0o600))

		_, err := NewFileSource(dir).Load(context.Background())
		assert.ErrorContains(t, err, "missing front matter")
	})
}

func TestNewLibrary_Validation(t *testing.T) {
	base := func() *Snapshot {
		return &Snapshot{Roles: []roles.Record{{ID: "Designer"}}}
	}

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
		want   string
	}{
		{"project without development time", func(s *Snapshot) { s.Projects = []Project{{ID: "a"}} }, "projects"},
		{"project with bad duration", func(s *Snapshot) { s.Projects = []Project{{ID: "a", DevelopmentTime: "long"}} }, "projects"},
		{"unknown category", func(s *Snapshot) { s.Projects = []Project{{ID: "a", DevelopmentTime: "P1M", Category: "Film"}} }, "projects"},
		{"bad download link", func(s *Snapshot) {
			s.Projects = []Project{{ID: "a", DevelopmentTime: "P1M", DownloadLinks: []string{"not a url"}}}
		}, "projects"},
		{"duplicate thought", func(s *Snapshot) { s.Thoughts = []Thought{{ID: "a"}, {ID: "a"}} }, "thoughts"},
		{"undated project", func(s *Snapshot) { s.Projects = []Project{{ID: "p1", DevelopmentTime: "P1M"}} }, "projects"},
		{"undated thought", func(s *Snapshot) { s.Thoughts = []Thought{{ID: "t1"}} }, "thoughts"},
		{"tech without experience", func(s *Snapshot) { s.Tech = []Tech{{ID: "Go"}} }, "tech"},
		{"functionality without id", func(s *Snapshot) {
			s.Tech = []Tech{{ID: "Go", Experience: "P1Y", Functionalities: []Functionality{{RoleBound: true}}}}
		}, "tech"},
		{"know-how without skills", func(s *Snapshot) {
			s.KnowHow = []KnowHow{{ID: "Studio", Start: mustDate(t, "2020-01-01")}}
		}, "know-how"},
		{"know-how without start", func(s *Snapshot) {
			s.KnowHow = []KnowHow{{ID: "Studio", Skills: []Skill{{Job: "Designer"}}}}
		}, "know-how"},
		{"unknown role reference", func(s *Snapshot) { s.Roles[0].Matches = []string{"Artist"} }, "roles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := base()
			tt.mutate(snapshot)

			_, err := NewLibrary(snapshot)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "got %v", err)
			assert.Equal(t, tt.want, loadErr.Collection)
		})
	}
}

func mustDate(t *testing.T, value string) *Date {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return &d
}
