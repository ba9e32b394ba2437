// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import "time"

// TravelMode is a means of getting between two points.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeWalking TravelMode = "walking"
	ModeTransit TravelMode = "transit"
	ModeCycling TravelMode = "cycling"
)

// Valid reports whether m is a known mode.
func (m TravelMode) Valid() bool {
	switch m {
	case ModeDriving, ModeWalking, ModeTransit, ModeCycling:
		return true
	}
	return false
}

// TrafficCondition is the heuristic congestion level for a departure time.
type TrafficCondition string

const (
	TrafficLight    TrafficCondition = "light"
	TrafficModerate TrafficCondition = "moderate"
	TrafficHeavy    TrafficCondition = "heavy"
)

// DurationRange is an optimistic/pessimistic travel duration pair in minutes.
type DurationRange struct {
	MinMinutes int `json:"min_minutes"`
	MaxMinutes int `json:"max_minutes"`
}

// TravelSegment is a point-to-point estimate. DurationMinutes includes any
// traffic adjustment; BaseDurationMinutes does not.
type TravelSegment struct {
	Origin              Coordinates      `json:"origin"`
	Destination         Coordinates      `json:"destination"`
	Mode                TravelMode       `json:"mode"`
	DistanceKm          float64          `json:"distance_km"`
	BaseDurationMinutes int              `json:"base_duration_minutes"`
	DurationMinutes     int              `json:"duration_minutes"`
	Traffic             TrafficCondition `json:"traffic,omitempty"`
	DurationRange       *DurationRange   `json:"duration_range,omitempty"`
}

// Route is a chain of segments through ordered waypoints.
type Route struct {
	Mode                 TravelMode      `json:"mode"`
	Segments             []TravelSegment `json:"segments"`
	TotalDistanceKm      float64         `json:"total_distance_km"`
	TotalDurationMinutes int             `json:"total_duration_minutes"`
}

// DepartureSuggestion tells the traveller when to leave to arrive on time.
type DepartureSuggestion struct {
	DepartAt      time.Time     `json:"depart_at"`
	ArriveBy      time.Time     `json:"arrive_by"`
	BufferMinutes int           `json:"buffer_minutes"`
	Segment       TravelSegment `json:"segment"`
	Justification string        `json:"justification"`
}
