// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRole outputs the active role with its additional and excluded roles.
func (p *Printer) PrintRole(role *types.Role, isDefault bool) {
	if role == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s", role.ID))
	if isDefault {
		sb.WriteString(" (default)")
	}
	sb.WriteString("\n")
	if role.HomepageTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", role.HomepageTitle))
	}

	writeList(&sb, "Also matches", role.MatchIDs())
	writeList(&sb, "Excludes", role.NotMatchIDs())

	p.printBox("ACTIVE ROLE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchers outputs the matchers of every role in the set in priority order.
func (p *Printer) PrintMatchers(set *matching.MatcherSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	for i, matchers := range set.Roles {
		if len(matchers) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, matchers[0].Role))
		for _, m := range matchers {
			sb.WriteString(fmt.Sprintf("    %-28s %6.3f\n", m.Phrase, m.Weight))
		}
	}

	if len(set.Exclusions) > 0 {
		sb.WriteString("Exclusions:\n")
		for _, m := range set.Exclusions {
			sb.WriteString(fmt.Sprintf("  • %s\n", m.Phrase))
		}
	}

	p.printBox(fmt.Sprintf("MATCHERS FOR %s", strings.ToUpper(set.Role)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeed outputs the top N entries of a ranked feed with their buckets.
func (p *Printer) PrintFeed(feed *types.RankedFeed) {
	if feed == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role: %s  Threshold: %d\n", feed.Role, feed.Threshold))
	sb.WriteString(fmt.Sprintf("Entries kept: %d\n", len(feed.Entries)))

	count := min(len(feed.Entries), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		entry := feed.Entries[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, entry.Title))
		sb.WriteString(fmt.Sprintf("    Bucket: %d (raw %.2f)", entry.Bucket, entry.RawScore))
		if entry.Topic != "" {
			sb.WriteString(fmt.Sprintf("  Topic: %s", entry.Topic))
		}
		sb.WriteString("\n")
		if len(entry.Roles) > 0 {
			sb.WriteString(fmt.Sprintf("    Roles: %s\n", strings.Join(entry.Roles, ", ")))
		}
	}

	if len(feed.Entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(feed.Entries)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("RANKED %s", strings.ToUpper(feed.Collection)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCacheStats outputs matcher cache usage.
func (p *Printer) PrintCacheStats(stats matching.CacheStats) {
	content := fmt.Sprintf("Sets cached: %d\nHits:        %d\nMisses:      %d", stats.Size, stats.Hits, stats.Misses)
	p.printBox("MATCHER CACHE", content)
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s:\n", label))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
}
