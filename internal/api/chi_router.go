// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/waypoint/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	perfMon       *middleware.PerformanceMonitor
}

// NewRouter creates a Router. perfMon may be nil.
func NewRouter(handler *Handler, mw *ChiMiddleware, perfMon *middleware.PerformanceMonitor) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw, perfMon: perfMon}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		if router.perfMon != nil {
			r.Use(router.perfMon.Middleware)
		}

		// Health probes are not rate limited so orchestrators are never throttled.
		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Get("/stats/latency", router.handler.LatencyStats)

			r.Post("/itineraries", router.handler.CreateItinerary)
			r.Post("/itineraries/regenerate", router.handler.RegenerateItinerary)
			r.Post("/schedule/day", router.handler.ScheduleDay)
			r.Post("/alternatives", router.handler.Alternatives)
			r.Post("/score", router.handler.Score)
			r.Post("/hours/evaluate", router.handler.EvaluateHours)

			r.Route("/travel", func(r chi.Router) {
				r.Post("/segment", router.handler.TravelSegment)
				r.Post("/route", router.handler.TravelRoute)
				r.Post("/departure", router.handler.TravelDeparture)
			})

			r.Route("/plans/{planID}/clusters", func(r chi.Router) {
				r.Get("/", router.handler.ListClusters)
				r.Post("/", router.handler.AddPlaceToCluster)
				r.Route("/{clusterID}", func(r chi.Router) {
					r.Delete("/", router.handler.DeleteCluster)
					r.Put("/order", router.handler.ReorderCluster)
					r.Get("/flow", router.handler.ClusterFlow)
					r.Delete("/places/{placeID}", router.handler.RemovePlaceFromCluster)
				})
			})
		})
	})

	return r
}
