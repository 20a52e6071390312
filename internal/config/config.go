// Package config provides configuration loading and validation for the CLI and feed server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonathan/portfolio-ranker/internal/matching"
)

// DefaultName is the config file looked up in the working directory when no path is given.
const DefaultName = "portfolio-ranker"

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SERVER_PORT.
const EnvPrefix = "PORTFOLIO"

// Content sources
const (
	SourceFiles    = "files"
	SourcePostgres = "postgres"
)

// Config represents the ranker configuration merged from file, environment and flags.
type Config struct {
	ContentDir    string           `mapstructure:"content_dir"`    // Directory holding roles.yaml and the collections
	DatabaseURL   string           `mapstructure:"database_url"`   // PostgreSQL connection URL
	Source        string           `mapstructure:"source"`         // files or postgres
	Threshold     int              `mapstructure:"threshold"`      // Default bucket threshold for posts
	TechThreshold int              `mapstructure:"tech_threshold"` // Default bucket threshold for the tech list
	Weights       matching.Weights `mapstructure:"weights"`
	Server        Server           `mapstructure:"server"`
	Log           Log              `mapstructure:"log"`
}

// Server configures the HTTP feed server.
type Server struct {
	Port      int `mapstructure:"port"`
	RateLimit int `mapstructure:"rate_limit"` // Requests per minute per IP, 0 disables limiting
}

// Log configures the zap logger.
type Log struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// New returns a viper instance with defaults and environment bindings registered.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("content_dir", "content")
	v.SetDefault("database_url", "")
	v.SetDefault("source", SourceFiles)
	v.SetDefault("threshold", 0)
	v.SetDefault("tech_threshold", 7)
	v.SetDefault("weights.priority_step", matching.DefaultPriorityStep)
	v.SetDefault("weights.specificity", string(matching.DefaultSpecificity))
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	return v
}

// Load reads the config file at path into v and decodes the merged result.
// An empty path looks for DefaultName in the working directory and tolerates its absence.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFiles:
		if c.ContentDir == "" {
			return fmt.Errorf("config error: 'content_dir' is required for the files source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres source")
		}
	default:
		return fmt.Errorf("config error: unknown source %q", c.Source)
	}

	if c.Threshold < 0 || c.Threshold > 10 {
		return fmt.Errorf("config error: 'threshold' must be within [0, 10]")
	}
	if c.TechThreshold < 0 || c.TechThreshold > 10 {
		return fmt.Errorf("config error: 'tech_threshold' must be within [0, 10]")
	}

	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be within [1, 65535]")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("config error: 'server.rate_limit' must be non-negative")
	}

	return nil
}

// MatchingWeights returns the configured weights with defaults filled in.
func (c *Config) MatchingWeights() matching.Weights {
	return c.Weights.OrDefault()
}

// Addr returns the listen address for the feed server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
