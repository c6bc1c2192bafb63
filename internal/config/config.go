// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Environment names the deployment environment reported by /health.
	Environment string `koanf:"environment"`

	// SeedItems optionally pre-populates the store with named items at
	// startup. Useful for demos; empty in production.
	SeedItems []string `koanf:"seed_items"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":8080",
		Environment: "dev",
	}
}
