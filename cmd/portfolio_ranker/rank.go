package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ranker/internal/content"
	"github.com/jonathan/portfolio-ranker/internal/matching"
	"github.com/jonathan/portfolio-ranker/internal/observability"
	"github.com/jonathan/portfolio-ranker/internal/rendering"
	"github.com/jonathan/portfolio-ranker/internal/schemas"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a content collection for a role",
	Long:  "Ranks one collection (projects, thoughts, tech or know-how) for a role and writes the ranked feed as JSON or an HTML fragment.",
	RunE:  runRank,
}

var (
	rankRole        string
	rankCollection  string
	rankThreshold   int
	rankExclude     string
	rankDrafts      bool
	rankAllProjects bool
	rankFormat      string
	rankTemplate    string
	rankOutput      string
	rankVerbose     bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankRole, "role", "r", "", "Role ID, slug or URL path (default: first role in the catalog)")
	rankCmd.Flags().StringVarP(&rankCollection, "collection", "c", "", "Collection to rank: projects, thoughts, tech or know-how (required)")
	rankCmd.Flags().IntVarP(&rankThreshold, "threshold", "t", -1, "Keep buckets above this value, 0-10 (default from config)")
	rankCmd.Flags().StringVar(&rankExclude, "exclude", "", "Comma-separated entry IDs to leave out")
	rankCmd.Flags().BoolVar(&rankDrafts, "drafts", false, "Include draft posts")
	rankCmd.Flags().BoolVar(&rankAllProjects, "all-projects", false, "Count school items with projects as work experience")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", "json", "Output format: json or html")
	rankCmd.Flags().StringVar(&rankTemplate, "template", "", "HTML template overriding the embedded one")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output file (default: stdout)")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print role, matchers and feed summary to stderr")

	if err := rankCmd.MarkFlagRequired("collection"); err != nil {
		panic(fmt.Sprintf("failed to mark collection flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	collection, err := content.ParseCollection(rankCollection)
	if err != nil {
		return err
	}
	if rankFormat != "json" && rankFormat != "html" {
		return fmt.Errorf("unknown format %q (want json or html)", rankFormat)
	}

	// 1. Load content
	library, err := loadLibrary(cmd.Context())
	if err != nil {
		return err
	}

	role, isDefault, err := findRole(library.Roles, rankRole)
	if err != nil {
		return err
	}

	// 2. Rank
	cache := matching.NewCache()
	opts := content.FeedOptions{
		Threshold:     rankThreshold,
		Weights:       cfg.MatchingWeights(),
		Cache:         cache,
		Logger:        zlog,
		IncludeDrafts: rankDrafts,
		AllProjects:   rankAllProjects,
	}
	if opts.Threshold < 0 {
		opts.Threshold = cfg.Threshold
		if collection == content.CollectionTech {
			opts.Threshold = cfg.TechThreshold
		}
	}
	for _, id := range strings.Split(rankExclude, ",") {
		if id = strings.TrimSpace(id); id != "" {
			opts.Exclude = append(opts.Exclude, id)
		}
	}

	feed, err := library.Feed(collection, role, opts)
	if err != nil {
		return fmt.Errorf("failed to rank %s: %w", collection, err)
	}

	if rankVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintRole(role, isDefault)
		set, err := cache.Get(role, cfg.MatchingWeights())
		if err != nil {
			return fmt.Errorf("failed to build matchers: %w", err)
		}
		printer.PrintMatchers(set)
		printer.PrintFeed(feed)
		printer.PrintCacheStats(cache.Stats())
	}

	// 3. Serialize
	var output []byte
	if rankFormat == "html" {
		html, err := rendering.RenderFeed(feed, rendering.Options{TemplatePath: rankTemplate})
		if err != nil {
			return fmt.Errorf("failed to render feed: %w", err)
		}
		output = []byte(html)
	} else {
		output, err = json.MarshalIndent(feed, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal ranked feed to JSON: %w", err)
		}
		output = append(output, '\n')

		// Output validation is a safety check, not a requirement
		if err := schemas.ValidateJSON(schemas.RankedFeed, output); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Ranked feed does not validate against schema: %v\n", err)
			} else {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate output against schema: %v\n", err)
			}
		}
	}

	// 4. Write
	if rankOutput == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}
	if err := writeOutput(rankOutput, output); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully ranked %d %s entries for %s to %s\n", len(feed.Entries), collection, role.ID, rankOutput)
	return nil
}

// writeOutput writes data to path, creating its directory.
func writeOutput(path string, data []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
