// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

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
  - DI-Friendly: Passed to core components (DB, Redis, hasher, issuer) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the WH64 API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Session token signing. The secret is an HMAC key; issuer and audience
	// are embedded in (and checked against) every token.
	JWTSecret   string `env:"JWT_SECRET,required"`
	JWTIssuer   string `env:"JWT_ISSUER"   envDefault:"wh64.dev"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"wh64-api"`

	// Credential hashing parameters. Deployment configuration, not secrets:
	// changing HashIterations invalidates no stored digest because the salt
	// and digest are re-derived per account on password change.
	SaltSize       int `env:"SALT_SIZE"       envDefault:"16"`
	HashIterations int `env:"HASH_ITERATIONS" envDefault:"64"`

	// Outbound email (verification codes)
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPSender   string `env:"SMTP_SENDER"   envDefault:"no-reply@wh64.dev"`

	// Seoul open-data gateway for the water-quality proxy.
	HanRiverBaseURL string `env:"HANRIVER_BASE_URL" envDefault:"http://openapi.seoul.go.kr:8088"`
	HanRiverAPIKey  string `env:"HANRIVER_API_KEY"  envDefault:"sample"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.SaltSize < 8 {
		return nil, fmt.Errorf("config: SALT_SIZE must be at least 8 bytes, got %d", cfg.SaltSize)
	}

	if cfg.HashIterations < 1 {
		return nil, fmt.Errorf("config: HASH_ITERATIONS must be at least 1, got %d", cfg.HashIterations)
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
