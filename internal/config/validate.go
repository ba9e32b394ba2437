// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validatePlaces(); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be trace, debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.TravelCacheSize < 0 {
		return fmt.Errorf("TRAVEL_CACHE_SIZE must be non-negative, got %d", c.Engine.TravelCacheSize)
	}
	if c.Engine.SweepInterval <= 0 {
		return fmt.Errorf("CACHE_SWEEP_PERIOD must be positive, got %v", c.Engine.SweepInterval)
	}
	return nil
}

func (c *Config) validatePlaces() error {
	p := c.Places
	switch p.Provider {
	case ProviderStatic:
	case ProviderHTTP:
		if p.HTTP.URL == "" {
			return fmt.Errorf("PLACES_API_URL is required when PLACES_PROVIDER=http")
		}
		u, err := url.Parse(p.HTTP.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("PLACES_API_URL must be an http(s) URL, got %q", p.HTTP.URL)
		}
		if p.HTTP.BreakerFailureRatio <= 0 || p.HTTP.BreakerFailureRatio > 1 {
			return fmt.Errorf("places.http.breaker_failure_ratio must be in (0, 1], got %f", p.HTTP.BreakerFailureRatio)
		}
	default:
		return fmt.Errorf("PLACES_PROVIDER must be static or http, got %q", p.Provider)
	}

	switch p.Cache {
	case CacheNone:
	case CacheMemory:
		if p.CacheTTL <= 0 {
			return fmt.Errorf("PLACES_CACHE_TTL must be positive, got %v", p.CacheTTL)
		}
	case CacheRedis:
		if p.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when PLACES_CACHE=redis")
		}
	default:
		return fmt.Errorf("PLACES_CACHE must be memory, redis or none, got %q", p.Cache)
	}
	return nil
}
