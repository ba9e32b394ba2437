// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import "errors"

// Common planning errors
var (
	// ErrInvalidInput marks a request that cannot be planned at all, such as an
	// end date before the start date or an empty city list. It is the only
	// planning failure surfaced to callers; missing data degrades instead.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a plan, cluster or place does not exist.
	ErrNotFound = errors.New("not found")
)
