// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor
// principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Session backend names.
const (
	SessionBackendRedis  = "redis"
	SessionBackendFile   = "file"
	SessionBackendMemory = "memory"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Upstream Svitlogram API
	APIBaseURL      string        `env:"API_BASE_URL,required"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`

	// Redis (session persistence and rate limiting)
	RedisURL string `env:"REDIS_URL,required"`

	// Session persistence
	SessionBackend string `env:"SESSION_BACKEND" envDefault:"redis"`
	SessionKey     string `env:"SESSION_KEY" envDefault:"feedgate:session"`
	SessionFile    string `env:"SESSION_FILE" envDefault:".feedgate-session.json"`

	// Owner resolution fan-out bound per aggregation pass
	OwnerLookupConcurrency int `env:"OWNER_LOOKUP_CONCURRENCY" envDefault:"6"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting for search and auth endpoints, mirroring the
	// upstream's own limiter on those routes
	RateLimitEnabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"10"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks cross-field constraints not expressible as env tags.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendRedis, SessionBackendFile, SessionBackendMemory:
	default:
		return fmt.Errorf("invalid SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.OwnerLookupConcurrency < 1 {
		return fmt.Errorf("OWNER_LOOKUP_CONCURRENCY must be at least 1, got %d", c.OwnerLookupConcurrency)
	}
	if c.RateLimitEnabled && c.RateLimitRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.RateLimitRequests)
	}
	return nil
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
