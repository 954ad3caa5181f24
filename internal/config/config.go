// Package config loads server configuration from an optional YAML file,
// with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all subnetterd settings.
type Config struct {
	// Addr is the listen address (host:port).
	Addr string `yaml:"addr"`
	// SentryDSN enables Sentry error reporting when non-empty.
	SentryDSN string `yaml:"sentry_dsn"`

	Log       Log       `yaml:"log"`
	RateLimit RateLimit `yaml:"rate_limit"`
	History   History   `yaml:"history"`
}

// Log configures structured logging.
type Log struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Format is the output format (json, text).
	Format string `yaml:"format"`
}

// RateLimit configures the per-client token bucket. Zero values disable
// rate limiting.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Enabled reports whether rate limiting should be enforced.
func (r RateLimit) Enabled() bool {
	return r.RequestsPerSecond > 0 && r.Burst > 0
}

// History configures the calculation history store. Driver is one of
// memory, sqlite, postgres; the binary must be built with the matching
// build tag for the non-memory drivers.
type History struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Addr: ":8080",
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimit{
			RequestsPerSecond: 100,
			Burst:             200,
		},
		History: History{
			Driver: "memory",
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty) on top of
// defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// Environment overrides. PORT follows the Heroku convention and wins over
// SUBNETTER_ADDR.
func (c *Config) applyEnv() {
	if v := os.Getenv("SUBNETTER_ADDR"); v != "" {
		c.Addr = v
	}
	if p := os.Getenv("PORT"); p != "" {
		c.Addr = ":" + p
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		c.SentryDSN = v
	}
	if v := os.Getenv("SUBNETTER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SUBNETTER_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimit.RequestsPerSecond = parsed
		}
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("SUBNETTER_HISTORY_DRIVER"); v != "" {
		c.History.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SUBNETTER_HISTORY_DSN"); v != "" {
		c.History.DSN = v
	}
}
