// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import (
	"time"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Security  SecurityConfig   `koanf:"security"`
	Logging   LoggingConfig    `koanf:"logging"`
	Engine    EngineConfig     `koanf:"engine"`
	Places    PlacesConfig     `koanf:"places"`
	Cluster   ClusterConfig    `koanf:"cluster"`
	Recommend recommend.Config `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// SecurityConfig holds the request throttling and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// ToLogging converts the settings into a logging.Config.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// EngineConfig tunes the planning engines.
type EngineConfig struct {
	// TablesPath is an optional YAML file merged over the embedded rule tables.
	TablesPath string `koanf:"tables_path"`

	// TravelCacheSize bounds the memoized travel segments. Zero disables the cache.
	TravelCacheSize int `koanf:"travel_cache_size"`

	// TravelCacheTTL is how long a travel segment stays cached.
	TravelCacheTTL time.Duration `koanf:"travel_cache_ttl"`

	// SweepInterval is how often expired cache entries are removed.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// PlacesConfig selects and configures the place search provider.
//
// Environment Variables:
//   - PLACES_PROVIDER: "static" or "http" (default: static)
//   - PLACES_FIXTURE_PATH: YAML/JSON fixture for the static provider
//   - PLACES_API_URL, PLACES_API_KEY: HTTP provider endpoint and key
//   - PLACES_CACHE: "memory", "redis" or "none" (default: memory)
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB: shared cache connection
type PlacesConfig struct {
	Provider    string `koanf:"provider"`
	FixturePath string `koanf:"fixture_path"`

	HTTP  PlacesHTTPConfig `koanf:"http"`
	Cache string           `koanf:"cache"`

	// CacheTTL is how long a city's search results are reused.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	Redis RedisConfig `koanf:"redis"`
}

// PlacesHTTPConfig configures the HTTP place search provider.
type PlacesHTTPConfig struct {
	URL               string        `koanf:"url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`

	// Circuit breaker tuning
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
}

// RedisConfig holds the shared place cache connection.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

// ClusterConfig configures cluster persistence.
type ClusterConfig struct {
	// StorePath is the BadgerDB directory. Empty keeps clusters in memory.
	StorePath string `koanf:"store_path"`
}

// Place providers
const (
	ProviderStatic = "static"
	ProviderHTTP   = "http"
)

// Place cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
