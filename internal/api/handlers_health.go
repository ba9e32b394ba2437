// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/tomtom215/waypoint/internal/middleware"
	"github.com/tomtom215/waypoint/internal/models"
)

// readinessTimeout bounds each dependency check.
const readinessTimeout = 2 * time.Second

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Checks        map[string]string `json:"checks,omitempty"`
}

// runChecks runs every readiness check and reports whether all passed.
func (h *Handler) runChecks(ctx context.Context) (map[string]string, bool) {
	if len(h.deps.Checks) == 0 {
		return nil, true
	}

	names := make([]string, 0, len(h.deps.Checks))
	for name := range h.deps.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
		err := h.deps.Checks[name](checkCtx)
		cancel()
		if err != nil {
			results[name] = err.Error()
			healthy = false
			continue
		}
		results[name] = "ok"
	}
	return results, healthy
}

// Health reports overall status including dependency checks. It always
// answers 200; degraded dependencies are reported in the body.
//
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks, healthy := h.runChecks(r.Context())

	status := "healthy"
	if !healthy {
		status = "degraded"
	}
	respondSuccess(w, r, http.StatusOK, start, HealthStatus{
		Status:        status,
		Version:       Version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Checks:        checks,
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, time.Now(), map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if every dependency check passes, 503 otherwise.
//
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks, healthy := h.runChecks(r.Context())
	if !healthy {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     map[string]interface{}{"ready": false, "checks": checks},
			Metadata: metadata(r, start),
			Error:    &models.APIError{Code: CodeUnavailable, Message: "Service is not ready"},
		})
		return
	}
	respondSuccess(w, r, http.StatusOK, start, map[string]interface{}{"ready": true, "checks": checks})
}

// LatencyStats returns per-endpoint latency percentiles over the recent window.
//
// GET /api/v1/stats/latency
func (h *Handler) LatencyStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats := []middleware.EndpointStats{}
	if h.deps.PerfMon != nil {
		stats = h.deps.PerfMon.Stats()
	}
	respondSuccess(w, r, http.StatusOK, start, stats)
}
