package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestProject_DerivedCategory(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		want    string
	}{
		{"explicit", Project{Category: CategoryTool, DevelopmentTime: "P1Y"}, CategoryTool},
		{"one month is a game", Project{DevelopmentTime: "P1M"}, CategoryGame},
		{"a year is a game", Project{DevelopmentTime: "P1Y"}, CategoryGame},
		{"two weeks is a prototype", Project{DevelopmentTime: "P2W"}, CategoryPrototype},
		{"invalid duration", Project{DevelopmentTime: "soon"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.project.DerivedCategory())
		})
	}
}

func TestProject_TopicFallsBackToGroup(t *testing.T) {
	assert.Equal(t, CategoryGame, Project{DevelopmentTime: "P2M", Group: "Jam"}.Topic())
	assert.Equal(t, "Jam", Project{DevelopmentTime: "bad", Group: "Jam"}.Topic())
	assert.Equal(t, "", Project{}.Topic())
}

func TestProject_Display(t *testing.T) {
	p := Project{ID: "2023/my-first-game", DevelopmentTime: "P3M", DownloadLinks: []string{"https://example.com"}}

	assert.Equal(t, "My First Game", p.DisplayTitle())
	assert.Equal(t, "Published Game", p.DisplayCategory())

	p.Title = "Explicit"
	p.DownloadLinks = nil
	assert.Equal(t, "Explicit", p.DisplayTitle())
	assert.Equal(t, "Game", p.DisplayCategory())
}

func TestThought_Display(t *testing.T) {
	assert.Equal(t, "Why i make games", Thought{ID: "why-i-make-games"}.DisplayTitle())
	assert.Nil(t, Thought{}.RoleReferences())
}

func TestProject_RecencyKey(t *testing.T) {
	published, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	created, err := ParseDate("2023-01-01T10:00:00Z")
	require.NoError(t, err)

	key, ok := Project{PublishingDate: &published, Created: &created}.RecencyKey()
	assert.True(t, ok)
	assert.Equal(t, published.Time, key)

	key, ok = Project{Created: &created}.RecencyKey()
	assert.True(t, ok)
	assert.Equal(t, created.Time, key)

	_, ok = Project{}.RecencyKey()
	assert.False(t, ok)
}

func TestDate(t *testing.T) {
	var doc struct {
		Day   Date `yaml:"day"`
		Stamp Date `yaml:"stamp"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("day: 2024-06-01\nstamp: 2024-06-01T08:30:00Z\n"), &doc))

	assert.Equal(t, "2024-06-01", doc.Day.String())
	assert.Equal(t, "2024-06-01T08:30:00Z", doc.Stamp.String())

	data, err := json.Marshal(doc.Day)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-06-01"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(doc.Day.Time))

	assert.Error(t, yaml.Unmarshal([]byte("day: yesterday\n"), &doc))
	assert.Error(t, json.Unmarshal([]byte(`"06/01/2024"`), &back))
}

func TestFunctionality_Decoding(t *testing.T) {
	const doc = `
- id: Unity
  experience: P3Y
  functionalities:
    - C#
    - id: Shader Graph
      roles: [Technical Artist]
    - id: DOTS
      roles: [Programmer]
      dontTranslateId: true
`
	var tech []Tech
	require.NoError(t, yaml.Unmarshal([]byte(doc), &tech))
	require.Len(t, tech, 1)

	fs := tech[0].Functionalities
	require.Len(t, fs, 3)
	assert.Equal(t, Functionality{ID: "C#"}, fs[0])
	assert.Equal(t, Functionality{ID: "Shader Graph", Roles: []string{"Technical Artist"}, RoleBound: true}, fs[1])
	assert.True(t, fs[2].DontTranslateID)

	data, err := json.Marshal(tech[0])
	require.NoError(t, err)

	var back Tech
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tech[0], back)
}

func TestTeam_Decoding(t *testing.T) {
	var doc struct {
		A *Team `yaml:"a" json:"a"`
		B *Team `yaml:"b" json:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 4\nb: {internal: 2, external: 3}\n"), &doc))
	assert.Equal(t, Team{Internal: 4}, *doc.A)
	assert.Equal(t, 5, doc.B.Size())

	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": {"internal": 1, "external": 1}}`), &doc))
	assert.Equal(t, 7, doc.A.Size())
	assert.Equal(t, Team{Internal: 1, External: 1}, *doc.B)
}

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection("know-how")
	require.NoError(t, err)
	assert.Equal(t, CollectionKnowHow, c)

	_, err = ParseCollection("docs")
	var unknown *UnknownCollectionError
	assert.ErrorAs(t, err, &unknown)

	assert.Equal(t, DefaultTechThreshold, DefaultThreshold(CollectionTech))
	assert.Equal(t, 0, DefaultThreshold(CollectionProjects))
}
