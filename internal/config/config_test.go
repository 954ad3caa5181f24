package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("default log config = %+v", cfg.Log)
	}
	if !cfg.RateLimit.Enabled() {
		t.Error("rate limiting disabled by default")
	}
	if cfg.History.Driver != "memory" {
		t.Errorf("default history driver = %q", cfg.History.Driver)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
addr: ":9090"
log:
  level: debug
  format: text
rate_limit:
  requests_per_second: 10
  burst: 20
history:
  driver: sqlite
  dsn: "file:test.db"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.RateLimit.RequestsPerSecond != 10 || cfg.RateLimit.Burst != 20 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.History.Driver != "sqlite" || cfg.History.DSN != "file:test.db" {
		t.Errorf("history = %+v", cfg.History)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SUBNETTER_ADDR", ":7000")
	t.Setenv("SUBNETTER_LOG_LEVEL", "warn")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("SUBNETTER_HISTORY_DRIVER", "Postgres")
	t.Setenv("SUBNETTER_HISTORY_DSN", "postgres://localhost/subnetter")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.RateLimit.RequestsPerSecond != 5 || cfg.RateLimit.Burst != 7 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.History.Driver != "postgres" {
		t.Errorf("history driver = %q (should be lowercased)", cfg.History.Driver)
	}
	if cfg.History.DSN != "postgres://localhost/subnetter" {
		t.Errorf("history dsn = %q", cfg.History.DSN)
	}
}

func TestPortOverridesAddr(t *testing.T) {
	t.Setenv("SUBNETTER_ADDR", ":7000")
	t.Setenv("PORT", "8888")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8888" {
		t.Errorf("addr = %q, want PORT to win", cfg.Addr)
	}
}
