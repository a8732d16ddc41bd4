// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

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
  - DI-Friendly: Passed to core components (codec, stores) via constructors.
  - Zero Hidden State: No global variables are used to store config.

All four services share this schema; each cmd/<service> binary reads the same
environment contract, which keeps deployment manifests uniform.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for a demo service process.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Token signing. The secret and algorithm must match the Kong consumer's
	// jwt_secrets entry or the gateway will reject everything we mint.
	JWTSecret    string `env:"JWT_SECRET_KEY,required"`
	JWTAlgorithm string `env:"JWT_ALGORITHM" envDefault:"HS256"`
	JWTIssuer    string `env:"JWT_ISSUER"    envDefault:"kong-demo-auth"`

	// Token lifetimes. Deployment configuration, not protocol constants.
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL"  envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Optional key-value store. When set, the auth service externalizes its
	// revocation registry to Redis so multiple instances share the denylist.
	// When empty, the registry is process-local and lost on restart.
	RedisURL string `env:"REDIS_URL"`
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
