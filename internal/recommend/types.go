// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package recommend

import (
	"time"

	"github.com/tomtom215/waypoint/internal/models"
)

// Reason explains why an alternative was suggested.
type Reason string

// Reasons in priority order: the first that applies is reported.
const (
	ReasonHiddenGem       Reason = "hidden_gem"
	ReasonSimilar         Reason = "similar"
	ReasonPreferenceMatch Reason = "preference_match"
	ReasonHighlyRated     Reason = "highly_rated"
	ReasonVariety         Reason = "variety"
)

// Request asks for alternatives to the activity in one slot.
type Request struct {
	// Current is the place being replaced, nil when the slot is empty.
	Current *models.Place `json:"current,omitempty"`

	Slot models.TimeSlot `json:"slot" validate:"required,oneof=morning afternoon evening"`

	// Date enables opening-hours checks. Without it only the category's slot
	// fit is used.
	Date models.Date `json:"date"`

	City     string              `json:"city,omitempty"`
	Location *models.Coordinates `json:"location,omitempty"`

	Preferences *models.UserPreferences `json:"preferences,omitempty"`

	// Exclude lists place ids already used elsewhere in the plan.
	Exclude []string `json:"exclude,omitempty"`

	Limit int `json:"limit,omitempty" validate:"omitempty,gte=1,lte=20"`

	// Candidates replaces the searched pool when set.
	Candidates []models.Place `json:"candidates,omitempty" validate:"dive"`
}

// Alternative is one suggested place.
type Alternative struct {
	Place           models.Place `json:"place"`
	Score           float64      `json:"score"`
	PreferenceScore float64      `json:"preference_score"`
	SlotScore       float64      `json:"slot_score"`
	SameCategory    bool         `json:"same_category"`
	Reason          Reason       `json:"reason"`
}

// Response is the result of an alternatives request.
type Response struct {
	Slot         models.TimeSlot `json:"slot"`
	Alternatives []Alternative   `json:"alternatives"`
	// PoolSize is the number of places considered before filtering.
	PoolSize    int       `json:"pool_size"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Stats are engine counters since start.
type Stats struct {
	Requests      int64 `json:"requests"`
	FetchFailures int64 `json:"fetch_failures"`
	Served        int64 `json:"served"`
}
