package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ranker/internal/content"
	"github.com/jonathan/portfolio-ranker/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate content against the JSON schemas",
	Long: `Validates a single document with --schema and --file, or, without --file,
every collection of the configured content source followed by role reference
and duration checks.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateFile   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", fmt.Sprintf("Schema name: %s", strings.Join(schemas.Names(), ", ")))
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Path to a YAML or JSON document to validate")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateFile != "" {
		return validateDocument(cmd)
	}
	if validateSchema != "" {
		return fmt.Errorf("--schema requires --file")
	}
	return validateContent(cmd)
}

func validateDocument(cmd *cobra.Command) error {
	if validateSchema == "" {
		return fmt.Errorf("--file requires --schema")
	}

	data, err := os.ReadFile(validateFile)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", validateFile, err)
	}

	if strings.EqualFold(filepath.Ext(validateFile), ".json") {
		err = schemas.ValidateJSON(validateSchema, data)
	} else {
		err = schemas.ValidateYAML(validateSchema, data)
	}
	if err != nil {
		return validationFailed(err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s matches %s\n", validateFile, validateSchema)
	return nil
}

func validateContent(cmd *cobra.Command) error {
	source, release, err := openSource(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	snapshot, err := source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	documents := []struct {
		schema string
		count  int
		doc    any
	}{
		{schemas.Roles, len(snapshot.Roles), snapshot.Roles},
		{schemas.Projects, len(snapshot.Projects), snapshot.Projects},
		{schemas.Thoughts, len(snapshot.Thoughts), snapshot.Thoughts},
		{schemas.Tech, len(snapshot.Tech), snapshot.Tech},
		{schemas.KnowHow, len(snapshot.KnowHow), snapshot.KnowHow},
	}

	out := cmd.OutOrStdout()
	var failed []string
	for _, d := range documents {
		if d.count == 0 {
			_, _ = fmt.Fprintf(out, "- %s: empty\n", d.schema)
			continue
		}
		if err := schemas.Validate(d.schema, d.doc); err != nil {
			failed = append(failed, d.schema)
			_, _ = fmt.Fprintf(out, "✗ %s: %v\n", d.schema, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s: %d entries\n", d.schema, d.count)
	}

	if len(failed) > 0 {
		return validationFailed(fmt.Errorf("schema errors in %s", strings.Join(failed, ", ")))
	}

	// References, durations and duplicate IDs
	if _, err := content.NewLibrary(snapshot); err != nil {
		return validationFailed(err)
	}

	_, _ = fmt.Fprintln(out, "Validation passed")
	return nil
}

func validationFailed(err error) error {
	var validationErr *schemas.ValidationError
	var loadErr *content.LoadError
	if errors.As(err, &validationErr) || errors.As(err, &loadErr) {
		return fmt.Errorf("validation failed: %w", err)
	}
	return fmt.Errorf("validation failed: %v", err)
}
