package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-ranker/internal/matching"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, SourceFiles, cfg.Source)
	assert.Equal(t, 0, cfg.Threshold)
	assert.Equal(t, 7, cfg.TechThreshold)
	assert.Equal(t, matching.DefaultWeights(), cfg.Weights)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, "ranker.yaml", `
content_dir: site
threshold: 3
weights:
  priority_step: 0.5
  specificity: linear
server:
  port: 9000
  rate_limit: 0
log:
  json: true
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "site", cfg.ContentDir)
	assert.Equal(t, 3, cfg.Threshold)
	assert.Equal(t, 7, cfg.TechThreshold)
	assert.Equal(t, matching.Weights{PriorityStep: 0.5, Specificity: matching.SpecificityLinear}, cfg.MatchingWeights())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 0, cfg.Server.RateLimit)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_NonFinitePriorityStep(t *testing.T) {
	for _, value := range []string{".inf", ".nan"} {
		t.Run(value, func(t *testing.T) {
			path := writeConfig(t, "ranker.yaml", "weights:\n  priority_step: "+value+"\n")

			cfg, err := Load(New(), path)
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "priority_step must be finite")
		})
	}
}

func TestLoad_ValidJSON(t *testing.T) {
	path := writeConfig(t, "ranker.json", `{"source": "postgres", "database_url": "postgres://localhost/portfolio"}`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Source)
	assert.Equal(t, "postgres://localhost/portfolio", cfg.DatabaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORTFOLIO_SERVER_PORT", "9090")
	t.Setenv("PORTFOLIO_WEIGHTS_SPECIFICITY", "log")
	t.Setenv("DATABASE_URL", "postgres://env/portfolio")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, matching.SpecificityLog, cfg.Weights.Specificity)
	assert.Equal(t, "postgres://env/portfolio", cfg.DatabaseURL)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultName+".yaml"), []byte("tech_threshold: 4\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.TechThreshold)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "ranker.yaml", "threshold: [unclosed\n")

	cfg, err := Load(New(), path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(New(), "/nonexistent/path/ranker.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ContentDir:    "content",
			Source:        SourceFiles,
			TechThreshold: 7,
			Weights:       matching.DefaultWeights(),
			Server:        Server{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown source", func(c *Config) { c.Source = "s3" }, "unknown source"},
		{"files without dir", func(c *Config) { c.ContentDir = "" }, "content_dir"},
		{"postgres without url", func(c *Config) { c.Source = SourcePostgres }, "database_url"},
		{"negative threshold", func(c *Config) { c.Threshold = -1 }, "'threshold'"},
		{"tech threshold above range", func(c *Config) { c.TechThreshold = 11 }, "tech_threshold"},
		{"bad specificity", func(c *Config) { c.Weights.Specificity = "cubic" }, "specificity"},
		{"negative step", func(c *Config) { c.Weights.PriorityStep = -0.1 }, "priority_step"},
		{"infinite step", func(c *Config) { c.Weights.PriorityStep = math.Inf(1) }, "priority_step"},
		{"NaN step", func(c *Config) { c.Weights.PriorityStep = math.NaN() }, "priority_step"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -5 }, "rate_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
