package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/observability"
)

var matchersCmd = &cobra.Command{
	Use:   "matchers",
	Short: "Show the weighted matchers built for a role",
	Long:  "Prints every phrase matcher derived from a role and its additional roles, in the order they are tried, with their weights and the excluded phrases.",
	RunE:  runMatchers,
}

var (
	matchersRole string
	matchersJSON bool
)

// MatcherView is the JSON form of one matcher.
type MatcherView struct {
	Role   string  `json:"role"`
	Phrase string  `json:"phrase"`
	Words  int     `json:"words"`
	Weight float64 `json:"weight"`
}

// MatcherSetView is the JSON form of a matcher set.
type MatcherSetView struct {
	Role       string        `json:"role"`
	Matchers   []MatcherView `json:"matchers"`
	Exclusions []string      `json:"exclusions"`
}

func init() {
	matchersCmd.Flags().StringVarP(&matchersRole, "role", "r", "", "Role ID, slug or URL path (default: first role in the catalog)")
	matchersCmd.Flags().BoolVar(&matchersJSON, "as-json", false, "Print matchers as JSON")

	rootCmd.AddCommand(matchersCmd)
}

func runMatchers(cmd *cobra.Command, _ []string) error {
	library, err := loadLibrary(cmd.Context())
	if err != nil {
		return err
	}

	role, _, err := findRole(library.Roles, matchersRole)
	if err != nil {
		return err
	}

	set, err := matching.BuildMatchers(role, cfg.MatchingWeights())
	if err != nil {
		return fmt.Errorf("failed to build matchers: %w", err)
	}

	if !matchersJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintMatchers(set)
		return nil
	}

	view := MatcherSetView{Role: set.Role, Matchers: []MatcherView{}, Exclusions: []string{}}
	for _, matchers := range set.Roles {
		for _, m := range matchers {
			view.Matchers = append(view.Matchers, MatcherView{Role: m.Role, Phrase: m.Phrase, Words: m.Words, Weight: m.Weight})
		}
	}
	for _, m := range set.Exclusions {
		view.Exclusions = append(view.Exclusions, m.Phrase)
	}

	output, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matchers to JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return err
}
