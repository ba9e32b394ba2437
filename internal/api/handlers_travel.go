// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/waypoint/internal/travel"
)

// maxRouteWaypoints bounds a single route request.
const maxRouteWaypoints = 100

// TravelSegment estimates one leg.
//
// POST /api/v1/travel/segment
func (h *Handler) TravelSegment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req travel.SegmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondSuccess(w, r, http.StatusOK, start, h.deps.Travel.Segment(req))
}

// TravelRoute estimates each leg through ordered waypoints.
//
// POST /api/v1/travel/route
func (h *Handler) TravelRoute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req travel.RouteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if len(req.Waypoints) > maxRouteWaypoints {
		respondError(w, r, http.StatusBadRequest, CodeInvalidInput, "too many waypoints", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, h.deps.Travel.Route(req))
}

// TravelDeparture suggests when to leave to arrive by a given time.
//
// POST /api/v1/travel/departure
func (h *Handler) TravelDeparture(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req travel.DepartureRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondSuccess(w, r, http.StatusOK, start, h.deps.Travel.SuggestDeparture(req))
}
