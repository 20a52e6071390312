package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

func gameDesigner() *types.Role {
	return &types.Role{
		ID:            "Game Designer",
		HomepageTitle: "Designing games",
		Matches:       []types.Role{{ID: "Designer"}},
		NotMatches:    []types.Role{{ID: "Level Designer"}},
	}
}

func TestPrintRole(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRole(gameDesigner(), true)
	output := buf.String()

	assert.Contains(t, output, "ACTIVE ROLE")
	assert.Contains(t, output, "Game Designer (default)")
	assert.Contains(t, output, "Designing games")
	assert.Contains(t, output, "Also matches")
	assert.Contains(t, output, "• Designer")
	assert.Contains(t, output, "Excludes")
	assert.Contains(t, output, "• Level Designer")
}

func TestPrintRole_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRole(nil, false)

	assert.Empty(t, buf.String())
}

func TestPrintMatchers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	set, err := matching.BuildMatchers(gameDesigner(), matching.DefaultWeights())
	require.NoError(t, err)

	p.PrintMatchers(set)
	output := buf.String()

	assert.Contains(t, output, "MATCHERS FOR GAME DESIGNER")
	assert.Contains(t, output, "#1  Game Designer")
	assert.Contains(t, output, "#2  Designer")
	assert.Contains(t, output, "Exclusions:")
	assert.Contains(t, output, "Level Designer")

	// Game is tried before Designer within the primary role
	assert.Less(t, strings.Index(output, "    Game  "), strings.Index(output, "    Designer  "))
}

func TestPrintFeed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	feed := &types.RankedFeed{
		Role:       "AI Programmer",
		Collection: "projects",
		Threshold:  5,
		Entries: []types.RankedEntry{
			{ID: "robot-arena", Title: "Robot Arena", Topic: "Game", Bucket: 10, RawScore: 2.41, Roles: []string{"AI Programmer"}},
			{ID: "level-tool", Title: "Level Tool", Topic: "Tool", Bucket: 7, RawScore: 1.7},
		},
	}

	p.PrintFeed(feed)
	output := buf.String()

	assert.Contains(t, output, "RANKED PROJECTS")
	assert.Contains(t, output, "Threshold: 5")
	assert.Contains(t, output, "Entries kept: 2")
	assert.Contains(t, output, "#1  Robot Arena")
	assert.Contains(t, output, "Bucket: 10 (raw 2.41)")
	assert.Contains(t, output, "Roles: AI Programmer")
	assert.NotContains(t, output, "more entries")
}

func TestPrintFeed_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	feed := &types.RankedFeed{Role: "Designer", Collection: "thoughts"}
	for i := 0; i < 8; i++ {
		feed.Entries = append(feed.Entries, types.RankedEntry{ID: fmt.Sprintf("t%d", i), Title: fmt.Sprintf("Thought %d", i), Bucket: 10})
	}

	p.PrintFeed(feed)
	output := buf.String()

	assert.Contains(t, output, "Thought 4")
	assert.NotContains(t, output, "Thought 5")
	assert.Contains(t, output, "... and 3 more entries")
}

func TestPrintCacheStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCacheStats(matching.CacheStats{Hits: 4, Misses: 1, Size: 1})
	output := buf.String()

	assert.Contains(t, output, "MATCHER CACHE")
	assert.Contains(t, output, "Hits:        4")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "...")
	assert.Equal(t, len([]rune(lines[0])), len([]rune(lines[3])))
}
