// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "waypoint"

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limit_hits_total",
			Help:      "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Planning Metrics
	ItineraryGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "itinerary_generation_duration_seconds",
			Help:      "Duration of itinerary generation in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"status"},
	)

	ItineraryDays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itinerary_days_total",
			Help:      "Total number of itinerary days generated",
		},
		[]string{"kind"}, // sightseeing, travel, empty
	)

	AlternativesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alternatives_served_total",
			Help:      "Total number of alternative places returned",
		},
	)

	ClusterAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cluster_assignments_total",
			Help:      "Total number of place-to-cluster assignment decisions",
		},
		[]string{"decision"}, // existing, new
	)

	// Collaborator Metrics
	PlaceFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "place_fetch_total",
			Help:      "Total number of place searches by result",
		},
		[]string{"result"}, // success, error, cache_hit
	)

	TravelCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "travel_cache_lookups_total",
			Help:      "Total number of travel segment cache lookups",
		},
		[]string{"result"}, // hit, miss
	)

	CacheSweepRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_sweep_removed_total",
			Help:      "Total number of expired entries removed by the cache janitor",
		},
		[]string{"cache"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state_transitions_total",
			Help:      "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordGeneration records the outcome and latency of one itinerary generation.
func RecordGeneration(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ItineraryGenerationDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordDay counts one generated itinerary day.
func RecordDay(isTravelDay, isEmpty bool) {
	switch {
	case isTravelDay:
		ItineraryDays.WithLabelValues("travel").Inc()
	case isEmpty:
		ItineraryDays.WithLabelValues("empty").Inc()
	default:
		ItineraryDays.WithLabelValues("sightseeing").Inc()
	}
}

// RecordPlaceFetch records a place search result.
func RecordPlaceFetch(err error) {
	if err != nil {
		PlaceFetchTotal.WithLabelValues("error").Inc()
		return
	}
	PlaceFetchTotal.WithLabelValues("success").Inc()
}

// RecordCircuitBreakerTransition records a breaker state change. States are the
// gobreaker state strings: "closed", "half-open", "open".
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
