// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package recommend suggests alternative places for a slot in a planned day.
//
// # Pipeline
//
// For one request the engine:
//
//   - fetches the city's place pool (or uses the candidates supplied)
//   - drops excluded places, the current place and avoided places
//   - keeps places whose slot score reaches Config.MinSlotScore
//   - scores the rest against the user's preferences
//   - splits them into same-category and different-category buckets
//   - mixes the buckets (60/40 by default), back-filling any shortfall
//   - sorts by combined score and tags each result with a reason
//
// The combined score is
//
//	preference×0.5 + slot×0.25 + 0.15 (hidden gem) + 0.05 (same category)
//
// with the weights taken from Config.Weights.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), deps, logger)
//	resp, err := engine.Alternatives(ctx, &recommend.Request{
//	    City:    "Paris",
//	    Slot:    models.SlotAfternoon,
//	    Current: &current,
//	})
//
// # Failure handling
//
// A failed place search yields an empty response, not an error. Only
// invalid requests and context cancellation are returned as errors.
//
// # Thread Safety
//
// The engine holds no per-request state and is safe for concurrent use.
package recommend
