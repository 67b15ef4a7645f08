// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, token service, limiter) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// PasswordPlaceholder is the literal substituted in DATABASE_URL with the
// value of DATABASE_PASSWORD at load time, so the full DSN never has to
// appear in one environment variable.
const PasswordPlaceholder = "<PASSWORD>"

// # Configuration Schema

// Config holds all runtime configuration for the Wayfarer API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"        envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// Relational Database (PostgreSQL). The URL may contain the literal
	// <PASSWORD> which is replaced with DatabasePassword by [Load].
	DatabaseURL      string `env:"DATABASE_URL,required"`
	DatabasePassword string `env:"DATABASE_PASSWORD"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis). Optional: when empty the rate limiter falls
	// back to an in-process token bucket.
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTSecret    string        `env:"JWT_SECRET,required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"2160h"` // 90 days

	// Rate limiting (applies to /api paths only)
	RateLimitMax    int           `env:"RATE_LIMIT_MAX"    envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`

	// StaticDir is served for non-API paths.
	StaticDir string `env:"STATIC_DIR" envDefault:"./public"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// It performs the DATABASE_URL password-placeholder substitution so the
// rest of the application only ever sees a complete DSN.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if strings.Contains(cfg.DatabaseURL, PasswordPlaceholder) {
		if cfg.DatabasePassword == "" {
			return nil, fmt.Errorf("config: DATABASE_URL contains %s but DATABASE_PASSWORD is not set", PasswordPlaceholder)
		}
		cfg.DatabaseURL = strings.ReplaceAll(cfg.DatabaseURL, PasswordPlaceholder, cfg.DatabasePassword)
	}

	if cfg.JWTExpiresIn <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRES_IN must be positive")
	}

	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("config: rate limit settings must be positive")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
