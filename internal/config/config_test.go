package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitHubAPIURL != "https://api.github.com" {
		t.Errorf("GitHubAPIURL = %s, want https://api.github.com", cfg.GitHubAPIURL)
	}
	if cfg.RateLimitRetries != 3 {
		t.Errorf("RateLimitRetries = %d, want 3", cfg.RateLimitRetries)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %s, want 30s", cfg.RequestTimeout)
	}
	if cfg.MaxEventsPerRequest != 100 {
		t.Errorf("MaxEventsPerRequest = %d, want 100", cfg.MaxEventsPerRequest)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with empty token should fail")
	}
}

func TestLoad_BlankTokenRejected(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "   ")

	_, err := Load()
	if err != ErrMissingToken {
		t.Fatalf("Load() error = %v, want ErrMissingToken", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_API_URL", "https://github.example.com/api/v3")
	t.Setenv("RATE_LIMIT_RETRIES", "5")
	t.Setenv("REQUEST_TIMEOUT", "10s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GitHubAPIURL != "https://github.example.com/api/v3" {
		t.Errorf("GitHubAPIURL = %s", cfg.GitHubAPIURL)
	}
	if cfg.RateLimitRetries != 5 {
		t.Errorf("RateLimitRetries = %d, want 5", cfg.RateLimitRetries)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %s, want 10s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestValidate_NegativeRetries(t *testing.T) {
	cfg := Config{GitHubToken: "t", RateLimitRetries: -1, MaxEventsPerRequest: 100}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative retries should fail validation")
	}
}
