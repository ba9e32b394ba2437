// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package config provides centralized configuration management for Waypoint.

# Configuration Sources

Configuration is layered with Koanf v2, later layers winning:

  - Built-in defaults (defaultConfig)
  - An optional YAML file: CONFIG_PATH, else config.yaml or /etc/waypoint/config.yaml
  - Mapped environment variables

Binaries load a .env file into the environment before calling Load.

# Configuration Structure

  - ServerConfig: HTTP listen address, timeouts and environment
  - SecurityConfig: CORS origins and request rate limiting
  - LoggingConfig: zerolog level, format and caller info
  - EngineConfig: rule table overrides and travel cache sizing
  - PlacesConfig: place search provider, its circuit breaker and result cache
  - ClusterConfig: cluster persistence
  - recommend.Config: alternatives weights and limits

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT

Security:
  - RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS (comma-separated)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Engine:
  - TABLES_PATH, TRAVEL_CACHE_SIZE, TRAVEL_CACHE_TTL, CACHE_SWEEP_PERIOD

Places:
  - PLACES_PROVIDER, PLACES_FIXTURE_PATH
  - PLACES_API_URL, PLACES_API_KEY, PLACES_API_TIMEOUT, PLACES_API_RPS, PLACES_API_BURST
  - PLACES_CACHE, PLACES_CACHE_TTL
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_PREFIX

Clusters and alternatives:
  - CLUSTER_STORE_PATH
  - RECOMMEND_LIMIT, RECOMMEND_MAX_LIMIT, RECOMMEND_RADIUS, RECOMMEND_SAME_SHARE

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.ToLogging())
*/
package config
