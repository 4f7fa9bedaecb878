// Package config provides application configuration loaded from
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the application configuration.
type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	ServerPort int    `env:"PORT" envDefault:"8080"`

	// SQLite database file path.
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./warehouse.db"`

	// Optional Redis address for the recent-listing cache. Empty disables it.
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`

	// Maximum number of records returned by the recent products listing.
	RecentLimit int `env:"RECENT_LIMIT" envDefault:"5"`

	// Interval at which a polling view refreshes its recent window.
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`

	// Comma-separated list of allowed CORS origins.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	// Activity log retention and the cron schedule of the pruning sweep.
	ActivityRetention time.Duration `env:"ACTIVITY_RETENTION" envDefault:"720h"`
	ActivitySweepSpec string        `env:"ACTIVITY_SWEEP_CRON" envDefault:"0 3 * * *"`

	// Directory of built frontend assets to serve. Empty disables it.
	StaticDir string `env:"STATIC_DIR" envDefault:""`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.RecentLimit < 1 {
		return nil, fmt.Errorf("RECENT_LIMIT must be at least 1, got %d", cfg.RecentLimit)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}
	return cfg, nil
}
