// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

// Package config provides layered configuration for Concierge: struct
// defaults, an optional YAML file, and environment variables, in that
// order of precedence (env wins).
package config

import (
	"fmt"
	"time"

	"github.com/stayloop/concierge/internal/recommend"
)

// Config is the root configuration for the Concierge server.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Database  DatabaseConfig   `koanf:"database"`
	Weather   WeatherConfig    `koanf:"weather"`
	Security  SecurityConfig   `koanf:"security"`
	Logging   LoggingConfig    `koanf:"logging"`
	Recommend recommend.Config `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings and the property's reference
// location (used for weather lookups when a request carries no coordinates).
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// Timeout bounds request read/write.
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`

	// Latitude and Longitude locate the property for weather lookups.
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" keeps it in memory.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage, e.g. "1GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. Zero means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SeedDemoData loads the demo property, catalog, and guests at
	// startup when the catalog is empty.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// WeatherConfig holds the external weather provider settings.
type WeatherConfig struct {
	// Enabled turns the provider on. When off, the engine always scores
	// with the neutral weather context.
	Enabled bool `koanf:"enabled"`

	// BaseURL is the weather API host, without a path. The client appends
	// /v1/forecast itself.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single provider call.
	Timeout time.Duration `koanf:"timeout"`

	// CacheTTL is how long an observation is reused before refetching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RequestsPerMinute rate-limits calls to the provider.
	RequestsPerMinute int `koanf:"requests_per_minute"`

	// BreakerMaxFailures is the consecutive-failure count that opens the
	// circuit breaker.
	BreakerMaxFailures int `koanf:"breaker_max_failures"`

	// BreakerOpenTimeout is how long the breaker stays open before
	// probing again.
	BreakerOpenTimeout time.Duration `koanf:"breaker_open_timeout"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs access tokens. Required in production.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the access token lifetime.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// AdminUsername and AdminPassword bootstrap the staff account.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	// RateLimitReqs / RateLimitWindow configure per-IP HTTP rate
	// limiting. RateLimitDisabled turns it off (tests, local dev).
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// SessionStorePath is the Badger directory for revoked-token state.
	SessionStorePath string `koanf:"session_store_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`

	// Caller includes caller file and line in logs.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.Latitude < -90 || c.Server.Latitude > 90 {
		return fmt.Errorf("server.latitude must be in [-90, 90], got %f", c.Server.Latitude)
	}
	if c.Server.Longitude < -180 || c.Server.Longitude > 180 {
		return fmt.Errorf("server.longitude must be in [-180, 180], got %f", c.Server.Longitude)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Weather.Enabled {
		if c.Weather.BaseURL == "" {
			return fmt.Errorf("weather.base_url is required when weather is enabled")
		}
		if c.Weather.Timeout <= 0 {
			return fmt.Errorf("weather.timeout must be positive, got %s", c.Weather.Timeout)
		}
	}
	if c.IsProduction() && c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required in production")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive, got %s", c.Security.SessionTimeout)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be >= 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ListenAddr returns the host:port pair for the HTTP listener.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
