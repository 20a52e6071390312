package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-ranker/internal/config"
	"github.com/jonathan/portfolio-ranker/internal/content"
	"github.com/jonathan/portfolio-ranker/internal/db"
	"github.com/jonathan/portfolio-ranker/internal/logger"
	"github.com/jonathan/portfolio-ranker/internal/roles"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

var (
	cfgFile string
	cfg     *config.Config
	zlog    *zap.Logger
)

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"content_dir":  "content-dir",
	"source":       "source",
	"database_url": "database-url",
	"log.debug":    "debug",
	"log.json":     "json",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to config file (default ./portfolio-ranker.yaml)")
	flags.String("content-dir", "content", "Directory holding roles.yaml and the content collections")
	flags.String("source", config.SourceFiles, "Content source: files or postgres")
	flags.String("database-url", "", "PostgreSQL connection URL (postgres source)")
	flags.BoolP("debug", "d", false, "Enable debug logging")
	flags.BoolP("json", "j", false, "Log in JSON format")
}

// loadConfig merges file, environment and flags into cfg and builds the logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	v := config.New()
	for key, name := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	log, err := logger.New(loaded.Log.JSON, loaded.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	cfg = loaded
	zlog = log
	return nil
}

// openSource returns the configured content source and a function releasing it.
func openSource(ctx context.Context) (content.Source, func(), error) {
	switch cfg.Source {
	case config.SourcePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return db.NewSource(database), database.Close, nil
	default:
		return content.NewFileSource(cfg.ContentDir), func() {}, nil
	}
}

// loadLibrary loads and validates every collection from the configured source.
func loadLibrary(ctx context.Context) (*content.Library, error) {
	source, release, err := openSource(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	library, err := content.LoadLibrary(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	zlog.Debug("loaded content",
		zap.String("source", cfg.Source),
		zap.Int("roles", library.Roles.Len()),
		zap.Int("projects", len(library.Projects)),
		zap.Int("thoughts", len(library.Thoughts)),
		zap.Int("tech", len(library.Tech)),
		zap.Int("know_how", len(library.KnowHow)),
	)
	return library, nil
}

// findRole looks up a role by ID, slug or URL path. An empty name selects the default role.
func findRole(catalog *roles.Catalog, name string) (*types.Role, bool, error) {
	if name == "" {
		return catalog.Default(), true, nil
	}
	if role, ok := catalog.Get(name); ok {
		return role, role == catalog.Default(), nil
	}
	if role, ok := catalog.ByPath(roles.MakePath(name)); ok {
		return role, role == catalog.Default(), nil
	}
	if strings.Contains(name, "/") {
		role, isDefault := catalog.Resolve(name)
		return role, isDefault, nil
	}
	return nil, false, fmt.Errorf("unknown role %q", name)
}
