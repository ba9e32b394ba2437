// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package main is the entry point for the Waypoint API server.

Waypoint turns a trip request (cities, nights, preferences) into a
day-by-day itinerary, schedules individual days, suggests alternatives and
keeps per-plan place clusters.

# Application Architecture

	RootSupervisor ("waypoint")
	├── DataSupervisor ("data-layer")
	│   └── Cache janitor (travel segments, place search results)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router under /api/v1)

Start-up order:

 1. .env file (godotenv), then configuration (Koanf v2)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Rule tables: embedded defaults merged with TABLES_PATH
 4. Place search: static fixture or HTTP provider, memory or Redis cache
 5. Cluster store: BadgerDB at CLUSTER_STORE_PATH, in memory when unset
 6. Engines, handlers and router
 7. Supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight
requests for SHUTDOWN_TIMEOUT, then the stores are closed.

# Example Usage

	export PLACES_FIXTURE_PATH=./testdata/places.yaml
	export CLUSTER_STORE_PATH=/var/lib/waypoint/clusters
	./waypoint

See internal/config for every environment variable.
*/
package main
