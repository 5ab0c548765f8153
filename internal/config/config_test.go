package config

import (
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("API_BASE_URL", "https://svitlogram.example.com")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("AppPort = %d, want 8080", cfg.AppPort)
	}
	if cfg.UpstreamTimeout != 15*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 15s", cfg.UpstreamTimeout)
	}
	if cfg.SessionBackend != SessionBackendRedis {
		t.Errorf("SessionBackend = %q, want redis", cfg.SessionBackend)
	}
	if cfg.OwnerLookupConcurrency != 6 {
		t.Errorf("OwnerLookupConcurrency = %d, want 6", cfg.OwnerLookupConcurrency)
	}
	if !cfg.RateLimitEnabled || cfg.RateLimitRequests != 10 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("unexpected rate limit defaults: %+v", cfg)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("development mode flags inconsistent")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	// t.Setenv registers the restore; the var itself must be absent for
	// the required check to trip.
	t.Setenv("API_BASE_URL", "placeholder")
	os.Unsetenv("API_BASE_URL")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing API_BASE_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_FILE", "/tmp/session.json")
	t.Setenv("OWNER_LOOKUP_CONCURRENCY", "3")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
	if cfg.SessionBackend != SessionBackendFile || cfg.SessionFile != "/tmp/session.json" {
		t.Errorf("unexpected session config: %+v", cfg)
	}
	if cfg.OwnerLookupConcurrency != 3 {
		t.Errorf("OwnerLookupConcurrency = %d, want 3", cfg.OwnerLookupConcurrency)
	}
	if cfg.RateLimitEnabled {
		t.Error("expected rate limiting disabled")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad_backend", map[string]string{"SESSION_BACKEND": "cookie"}},
		{"zero_concurrency", map[string]string{"OWNER_LOOKUP_CONCURRENCY": "0"}},
		{"zero_rate_limit", map[string]string{"RATE_LIMIT_REQUESTS": "0"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
