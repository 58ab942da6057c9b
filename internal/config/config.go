package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the report visualizer service
type Config struct {
	// Server configuration
	Port        string `env:"PORT,default=8501"`
	Environment string `env:"ENVIRONMENT,default=development"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=auto"`

	// Upload handling
	MaxUploadMB int64         `env:"MAX_UPLOAD_MB,default=200"`
	SessionTTL  time.Duration `env:"SESSION_TTL,default=30m"`

	// Chart surface size in pixels
	ChartWidth  int `env:"CHART_WIDTH,default=640"`
	ChartHeight int `env:"CHART_HEIGHT,default=480"`

	PageTitle string `env:"PAGE_TITLE,default=JalSarthi Report Visualizer"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithDotEnv reads the given .env files (missing files are ignored) and then
// loads configuration from the environment. Variables already set in the
// environment win over the files.
func LoadWithDotEnv(ctx context.Context, files ...string) (*Config, error) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
	return Load(ctx)
}

// Validate checks value ranges that envconfig cannot express
func (c *Config) Validate() error {
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.ChartWidth < 100 || c.ChartHeight < 100 {
		return fmt.Errorf("chart size %dx%d is too small", c.ChartWidth, c.ChartHeight)
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// IsLocal reports whether the service runs on a developer machine
func (c *Config) IsLocal() bool {
	switch strings.ToLower(c.Environment) {
	case "local", "development", "dev":
		return true
	}
	return false
}
