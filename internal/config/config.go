// Package config loads server configuration from environment variables.
//
// Everything the server needs comes from the environment: the GitHub
// token (required), the API base URL for Enterprise deployments, and a
// handful of tunables for the gateway. Validation happens once at
// startup — a missing or blank token aborts before any tool is
// registered.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrMissingToken is returned by Load when GITHUB_TOKEN is absent or blank.
var ErrMissingToken = errors.New("GITHUB_TOKEN is required and must not be blank")

// Config holds all server configuration loaded from environment variables.
type Config struct {
	// GitHubToken authenticates every upstream API call. Required.
	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	// GitHubAPIURL overrides the API base URL (GitHub Enterprise).
	GitHubAPIURL string `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`

	// RateLimitRetries bounds how many times the gateway re-attempts a
	// call that failed on a rate limit before giving up.
	RateLimitRetries int `envconfig:"RATE_LIMIT_RETRIES" default:"3"`

	// RequestTimeout is the per-request HTTP timeout.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// MaxEventsPerRequest caps the page size used for paginated fetches.
	MaxEventsPerRequest int `envconfig:"MAX_EVENTS_PER_REQUEST" default:"100"`

	// CacheTTL is reserved for a future response cache. The core logic
	// performs a full re-fetch per call and does not read this value.
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	// LogLevel is the zerolog level name (trace, debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants that must hold before the server starts.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GitHubToken) == "" {
		return ErrMissingToken
	}
	if c.RateLimitRetries < 0 {
		return fmt.Errorf("RATE_LIMIT_RETRIES must be >= 0, got %d", c.RateLimitRetries)
	}
	if c.MaxEventsPerRequest < 1 {
		return fmt.Errorf("MAX_EVENTS_PER_REQUEST must be >= 1, got %d", c.MaxEventsPerRequest)
	}
	return nil
}
