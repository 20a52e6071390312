package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-ranker/internal/content"
	"github.com/jonathan/portfolio-ranker/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the content directory into PostgreSQL",
	Long:  "Loads and validates the content directory, then replaces the content stored in PostgreSQL with it in one transaction. The postgres source serves the imported snapshot.",
	RunE:  runImport,
}

var importHistory int

func init() {
	importCmd.Flags().IntVar(&importHistory, "history", 0, "List the most recent imports instead of importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url is required (set DATABASE_URL or --database-url)")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	out := cmd.OutOrStdout()
	if importHistory > 0 {
		imports, err := database.ListImports(ctx, importHistory)
		if err != nil {
			return fmt.Errorf("failed to list imports: %w", err)
		}
		for _, imp := range imports {
			_, _ = fmt.Fprintf(out, "%s  %s  %s  %v\n", imp.ID, imp.CreatedAt.Format("2006-01-02 15:04:05"), imp.Source, imp.Counts)
		}
		return nil
	}

	// Always import from files, whatever source serves the content
	snapshot, err := content.NewFileSource(cfg.ContentDir).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	if _, err := content.NewLibrary(snapshot); err != nil {
		return fmt.Errorf("content is invalid: %w", err)
	}

	imp, err := database.SaveSnapshot(ctx, cfg.ContentDir, snapshot)
	if err != nil {
		return fmt.Errorf("failed to save content: %w", err)
	}

	zlog.Info("imported content", zap.String("import", imp.ID.String()), zap.Any("counts", imp.Counts))
	_, _ = fmt.Fprintf(out, "Imported %s from %s\n", imp.ID, cfg.ContentDir)
	return nil
}
