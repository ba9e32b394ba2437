// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestDefaultConfig verifies that defaultConfig() returns valid defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Places.Provider != ProviderStatic || cfg.Places.Cache != CacheMemory {
		t.Errorf("Places = %s/%s, want static/memory", cfg.Places.Provider, cfg.Places.Cache)
	}
	if cfg.Places.CacheTTL != 15*time.Minute {
		t.Errorf("Places.CacheTTL = %v, want 15m", cfg.Places.CacheTTL)
	}
	if cfg.Recommend.DefaultLimit != 5 || cfg.Recommend.Weights.Preference != 0.5 {
		t.Errorf("Recommend = %+v, want the recommend package defaults", cfg.Recommend)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true for the default environment")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  environment: staging
logging:
  level: debug
  format: console
places:
  provider: http
  http:
    url: https://places.example.com
    api_key: secret
  cache: redis
  redis:
    addr: redis:6379
recommend:
  default_limit: 3
  weights:
    hidden_gem: 0.2
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Server.Port != 9090 || cfg.Server.Environment != "staging" {
		t.Errorf("Server = %+v, want port 9090 in staging", cfg.Server)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want default 30s", cfg.Server.Timeout)
	}
	if cfg.Places.HTTP.URL != "https://places.example.com" || cfg.Places.HTTP.APIKey != "secret" {
		t.Errorf("Places.HTTP = %+v", cfg.Places.HTTP)
	}
	if cfg.Places.HTTP.BreakerFailureRatio != 0.6 {
		t.Errorf("BreakerFailureRatio = %v, want default 0.6", cfg.Places.HTTP.BreakerFailureRatio)
	}
	if cfg.Places.Redis.Addr != "redis:6379" || cfg.Places.Redis.Prefix != "waypoint:" {
		t.Errorf("Places.Redis = %+v", cfg.Places.Redis)
	}
	if cfg.Recommend.DefaultLimit != 3 || cfg.Recommend.Weights.HiddenGem != 0.2 || cfg.Recommend.Weights.Slot != 0.25 {
		t.Errorf("Recommend = %+v, want file overrides merged over defaults", cfg.Recommend)
	}

	lc := cfg.Logging.ToLogging()
	if lc.Level != "debug" || lc.Format != "console" {
		t.Errorf("ToLogging() = %+v", lc)
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile(missing) returned nil error")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("PLACES_CACHE", "none")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want env override 7070", cfg.Server.Port)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Security.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow = %v, want 30s", cfg.Security.RateLimitWindow)
	}
	if cfg.Places.Cache != CacheNone {
		t.Errorf("Places.Cache = %q, want none", cfg.Places.Cache)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeConfig(t, "places:\n  provider: carrier-pigeon\n")
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "PLACES_PROVIDER") {
		t.Errorf("LoadFile() error = %v, want PLACES_PROVIDER validation error", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "HTTP_PORT"},
		{name: "bad environment", mutate: func(c *Config) { c.Server.Environment = "qa" }, wantErr: "ENVIRONMENT"},
		{name: "bad rate limit", mutate: func(c *Config) { c.Security.RateLimitReqs = 0 }, wantErr: "RATE_LIMIT_REQS"},
		{name: "rate limit disabled skips checks", mutate: func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "LOG_LEVEL"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "http provider needs url", mutate: func(c *Config) { c.Places.Provider = ProviderHTTP }, wantErr: "PLACES_API_URL"},
		{name: "http provider rejects ftp", mutate: func(c *Config) {
			c.Places.Provider = ProviderHTTP
			c.Places.HTTP.URL = "ftp://places.example.com"
		}, wantErr: "http(s) URL"},
		{name: "redis needs addr", mutate: func(c *Config) {
			c.Places.Cache = CacheRedis
			c.Places.Redis.Addr = ""
		}, wantErr: "REDIS_ADDR"},
		{name: "unknown cache", mutate: func(c *Config) { c.Places.Cache = "disk" }, wantErr: "PLACES_CACHE"},
		{name: "negative travel cache", mutate: func(c *Config) { c.Engine.TravelCacheSize = -1 }, wantErr: "TRAVEL_CACHE_SIZE"},
		{name: "recommend config", mutate: func(c *Config) { c.Recommend.DefaultLimit = 0 }, wantErr: "recommend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"HTTP_PORT":          "server.port",
		"PLACES_API_KEY":     "places.http.api_key",
		"REDIS_ADDR":         "places.redis.addr",
		"CLUSTER_STORE_PATH": "cluster.store_path",
		"LOG_LEVEL":          "logging.level",
		"PATH":               "",
		"HOME":               "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
