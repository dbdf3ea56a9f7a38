// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Import    ImportConfig    `koanf:"import"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string        `koanf:"path"`
	MaxMemory              string        `koanf:"max_memory"`
	Threads                int           `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool          `koanf:"preserve_insertion_order"` // Whether to preserve insertion order (default true)
	BreakerFailures        uint32        `koanf:"breaker_failures"`         // Consecutive read failures before the breaker opens
	BreakerTimeout         time.Duration `koanf:"breaker_timeout"`          // How long the breaker stays open before probing
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Environment mode: "development", "staging", "production" (default: "development")
}

// SecurityConfig holds rate limiting, CORS and admin guard settings.
//
// Write routes (target changes, imports) require HTTP Basic credentials when
// AdminUsername and AdminPasswordHash are both set. The hash is a bcrypt hash.
type SecurityConfig struct {
	AdminUsername     string        `koanf:"admin_username"`
	AdminPasswordHash string        `koanf:"admin_password_hash"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// AnalyticsConfig holds report computation settings.
//
// Environment Variables:
//   - ANALYTICS_CACHE_TTL: How long computed reports are cached (default: 5m, 0 disables)
//   - HEATMAP_DEFAULT_MONTHS: Heatmap window when none is requested (default: 3)
//   - ANALYTICS_TIMEZONE: IANA zone used to determine "today" (default: Local)
type AnalyticsConfig struct {
	CacheTTL             time.Duration `koanf:"cache_ttl"`
	HeatmapDefaultMonths int           `koanf:"heatmap_default_months"`
	Timezone             string        `koanf:"timezone"`
}

// Location resolves Timezone. An empty or unknown zone falls back to time.Local.
func (a AnalyticsConfig) Location() *time.Location {
	if a.Timezone == "" || a.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ImportConfig holds reading import settings.
//
// Environment Variables:
//   - IMPORT_HISTORY_PATH: BadgerDB directory for import history (empty = in-memory)
//   - IMPORT_HISTORY_LIMIT: Number of import summaries retained (default: 100)
//   - IMPORT_MAX_UPLOAD_BYTES: Largest accepted upload (default: 10MB)
//   - IMPORT_RATE_PER_MINUTE: Imports allowed per minute across all clients (default: 30)
//   - IMPORT_RATE_BURST: Burst size of the import limiter (default: 5)
type ImportConfig struct {
	HistoryPath    string `koanf:"history_path"`
	HistoryLimit   int    `koanf:"history_limit"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
	RatePerMinute  int    `koanf:"rate_per_minute"`
	RateBurst      int    `koanf:"rate_burst"`
}

// EventsConfig holds in-process event bus settings (Watermill GoChannel).
type EventsConfig struct {
	// OutputBuffer is the per-subscriber channel buffer.
	OutputBuffer int64 `koanf:"output_buffer"`

	// RouterCloseTimeout bounds how long in-flight handlers may run at shutdown.
	RouterCloseTimeout time.Duration `koanf:"router_close_timeout"`

	// RetryCount is how many times a failing handler is retried.
	RetryCount int `koanf:"retry_count"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// AdminAuthEnabled reports whether write routes require admin credentials.
func (c *Config) AdminAuthEnabled() bool {
	return c.Security.AdminUsername != "" && c.Security.AdminPasswordHash != ""
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
