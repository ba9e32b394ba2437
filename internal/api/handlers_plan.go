// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/waypoint/internal/itinerary"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/recommend"
	"github.com/tomtom215/waypoint/internal/schedule"
)

// CreateItinerary plans a multi-day trip.
//
// POST /api/v1/itineraries
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req itinerary.TripRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	it, err := h.deps.Generator.Generate(r.Context(), &req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusCreated, start, it)
}

// RegenerateItinerary plans the trip again, keeping the previous itinerary's
// id and bumping its version.
//
// POST /api/v1/itineraries/regenerate
func (h *Handler) RegenerateItinerary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RegenerateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	it, err := h.deps.Generator.Regenerate(r.Context(), req.Previous, &req.Trip)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, it)
}

// ScheduleDay builds a single day from the supplied places.
//
// POST /api/v1/schedule/day
func (h *Handler) ScheduleDay(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req schedule.DayRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Date.IsZero() {
		respondError(w, r, http.StatusBadRequest, CodeInvalidInput, "date is required", nil)
		return
	}

	day, err := h.deps.Builder.Build(r.Context(), &req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, day)
}

// Alternatives suggests replacements for the activity in one slot.
//
// POST /api/v1/alternatives
func (h *Handler) Alternatives(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommend.Request
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.deps.Alternatives.Alternatives(r.Context(), &req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, resp)
}

// Score ranks places against the traveller's preferences.
//
// POST /api/v1/score
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ScoreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	favorites := make(map[string]bool, len(req.Favorites))
	for _, id := range req.Favorites {
		favorites[id] = true
	}
	ranked := h.deps.Scorer.Rank(req.Places, req.Preferences, favorites)
	respondSuccess(w, r, http.StatusOK, start, ScoreResponse{Ranked: ranked})
}

// EvaluateHours reports opening status and slot fit of a place on a date.
//
// POST /api/v1/hours/evaluate
func (h *Handler) EvaluateHours(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req HoursRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Date.IsZero() {
		respondError(w, r, http.StatusBadRequest, CodeInvalidInput, "date is required",
			fmt.Errorf("%w: missing date", models.ErrInvalidInput))
		return
	}

	respondSuccess(w, r, http.StatusOK, start, HoursResponse{
		PlaceID: req.Place.ID,
		Date:    req.Date,
		Slots:   h.deps.Evaluator.Evaluate(&req.Place, req.Date),
	})
}
