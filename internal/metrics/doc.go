// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and are
safe for concurrent use.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8088/metrics

# Available Metrics

API Metrics:
  - waypoint_api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - waypoint_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - waypoint_api_active_requests: In-flight requests (gauge)
  - waypoint_api_rate_limit_hits_total: Rejected requests (counter)

Planning Metrics:
  - waypoint_itinerary_generation_duration_seconds: Generate/Regenerate latency (histogram)
  - waypoint_itinerary_days_total: Generated days (counter)
    Labels: kind (sightseeing, travel, empty)
  - waypoint_alternatives_served_total: Alternatives returned (counter)
  - waypoint_cluster_assignments_total: Cluster decisions (counter)
    Labels: decision (existing, new)

Collaborator Metrics:
  - waypoint_place_fetch_total: Place searches (counter)
    Labels: result (success, error, cache_hit)
  - waypoint_travel_cache_lookups_total: Travel segment cache lookups (counter)
    Labels: result (hit, miss)
  - waypoint_cache_sweep_removed_total: Entries removed by the janitor (counter)
    Labels: cache
  - waypoint_circuit_breaker_state: Breaker state (gauge, 0=closed 1=half-open 2=open)
  - waypoint_circuit_breaker_state_transitions_total: Breaker transitions (counter)

# Usage

	start := time.Now()
	itin, err := gen.Generate(ctx, req)
	metrics.RecordGeneration(time.Since(start), err)
*/
package metrics
