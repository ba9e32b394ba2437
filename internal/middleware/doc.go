// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package middleware provides HTTP middleware components for the API.

All middleware uses the standard func(http.Handler) http.Handler shape so it
can be mounted with chi's r.Use.

Key Components:

  - RequestID: accepts or generates an X-Request-ID and stores it, plus a
    correlation ID, in the request context for logging
  - PrometheusMetrics: request count, latency and in-flight gauges labelled by
    chi route pattern
  - PerformanceMonitor: a sliding window of recent latencies with per-endpoint
    percentiles, served by the latency stats endpoint

Typical stack:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)

Route patterns are read after the downstream handler returns, which is when
chi has resolved sub-routers. Requests that match no route are labelled
"unmatched".
*/
package middleware
