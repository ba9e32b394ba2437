// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator that reports JSON field names and
// translates failures into user-friendly messages matching the API error
// format (code VALIDATION_FAILED).
//
// # Quick Start
//
//	type SegmentRequest struct {
//	    Origin models.Coordinates `json:"origin" validate:"required"`
//	    Mode   models.TravelMode  `json:"mode" validate:"required,oneof=driving walking transit cycling"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Validators
//
//   - notblank: the string must contain a non-whitespace character
//
// # Error Messages
//
// Common tags are translated:
//
//	required  -> "name is required"
//	oneof     -> "mode must be one of: driving walking transit cycling"
//	gte/lte   -> "rating must be less than or equal to 5"
//	min/max   -> "waypoints must be at least 2"
//	latitude  -> "lat must be a valid latitude (-90 to 90)"
//
// Unknown tags fall back to "<field> failed <tag> validation".
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use. The validator
// caches struct metadata after the first validation of each type.
package validation
