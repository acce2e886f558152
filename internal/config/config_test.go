package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Redis.CartTTL != 7*24*time.Hour {
		t.Errorf("Expected default cart TTL of 7 days, got %v", cfg.Redis.CartTTL)
	}
	if cfg.Auth.Session.CookieName != "VELORA_SESSION" {
		t.Errorf("Expected default cookie name VELORA_SESSION, got %q", cfg.Auth.Session.CookieName)
	}
	if cfg.Magazine.PollInterval != 30*time.Second {
		t.Errorf("Expected default poll interval 30s, got %v", cfg.Magazine.PollInterval)
	}
	if cfg.Events.Type != "noop" {
		t.Errorf("Expected default events type noop, got %q", cfg.Events.Type)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MAGAZINE_POLL_INTERVAL", "5s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("VELORA_DEV", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Magazine.PollInterval != 5*time.Second {
		t.Errorf("Expected poll interval 5s, got %v", cfg.Magazine.PollInterval)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("Expected 2.5 rps, got %f", cfg.RateLimit.RequestsPerSecond)
	}
	if !cfg.DevMode {
		t.Error("Expected dev mode enabled")
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("CART_TTL", "garbage")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("Expected fallback to default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Redis.CartTTL != 7*24*time.Hour {
		t.Errorf("Expected fallback to default cart TTL, got %v", cfg.Redis.CartTTL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
dev_mode = true

[http]
port = 8181
cors_origins = ["https://shop.example.com"]

[redis]
addr = "redis.internal:6379"
cart_ttl = "48h"

[magazine]
poll_interval = "10s"
batch_size = 25

[magazine.leader]
enabled = true
instance_id = "web-1"
ttl = "20s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}

	if cfg.HTTP.Port != 8181 {
		t.Errorf("Expected port 8181, got %d", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "https://shop.example.com" {
		t.Errorf("Unexpected CORS origins: %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Redis.CartTTL != 48*time.Hour {
		t.Errorf("Expected cart TTL 48h, got %v", cfg.Redis.CartTTL)
	}
	if cfg.Magazine.PollInterval != 10*time.Second {
		t.Errorf("Expected poll interval 10s, got %v", cfg.Magazine.PollInterval)
	}
	if !cfg.Magazine.Leader.Enabled || cfg.Magazine.Leader.InstanceID != "web-1" {
		t.Errorf("Unexpected leader config: %+v", cfg.Magazine.Leader)
	}
	if !cfg.DevMode {
		t.Error("Expected dev mode from file")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.toml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
