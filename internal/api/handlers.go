// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/waypoint/internal/cluster"
	"github.com/tomtom215/waypoint/internal/hours"
	"github.com/tomtom215/waypoint/internal/itinerary"
	"github.com/tomtom215/waypoint/internal/middleware"
	"github.com/tomtom215/waypoint/internal/recommend"
	"github.com/tomtom215/waypoint/internal/schedule"
	"github.com/tomtom215/waypoint/internal/scoring"
	"github.com/tomtom215/waypoint/internal/travel"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps are the engines behind the handlers. Every field except Checks and
// PerfMon is required.
type Deps struct {
	Generator    *itinerary.Generator
	Builder      *schedule.Builder
	Alternatives *recommend.Engine
	Scorer       *scoring.Scorer
	Evaluator    *hours.Evaluator
	Travel       *travel.Calculator
	Clusters     *cluster.Service

	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]HealthCheck

	PerfMon *middleware.PerformanceMonitor
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_helpers.go: response and decoding helpers
//   - handlers_health.go: health and latency endpoints
//   - handlers_plan.go: itinerary, day schedule, alternatives, scoring, hours
//   - handlers_travel.go: travel estimates
//   - handlers_clusters.go: plan cluster management
type Handler struct {
	deps      Deps
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) (*Handler, error) {
	if deps.Generator == nil || deps.Builder == nil || deps.Alternatives == nil ||
		deps.Scorer == nil || deps.Evaluator == nil || deps.Travel == nil || deps.Clusters == nil {
		return nil, errors.New("api: generator, builder, alternatives, scorer, evaluator, travel and clusters are required")
	}
	return &Handler{deps: deps, startTime: time.Now()}, nil
}
