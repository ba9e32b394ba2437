// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package travel

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/waypoint/internal/models"
)

// Departure buffers in minutes.
const (
	walkingBufferMinutes = 5
	defaultBufferMinutes = 10
	heavyBufferMinutes   = 15
)

// DepartureRequest asks when to leave to arrive by a given time.
type DepartureRequest struct {
	Origin      models.Coordinates `json:"origin" validate:"required"`
	Destination models.Coordinates `json:"destination" validate:"required"`
	Mode        models.TravelMode  `json:"mode" validate:"required,oneof=driving walking transit cycling"`
	ArriveBy    time.Time          `json:"arrive_by" validate:"required"`
}

// SuggestDeparture returns arriveBy minus the travel duration minus a buffer.
// Traffic is classified at the approximate departure time, i.e. arriveBy minus
// the untrafficked duration.
func (c *Calculator) SuggestDeparture(req DepartureRequest) models.DepartureSuggestion {
	profile := c.catalog.Mode(req.Mode)
	baseMinutes := math.Round(Haversine(req.Origin, req.Destination) * profile.RoadFactor / profile.SpeedKmh * 60)
	approxDepart := req.ArriveBy.Add(-time.Duration(baseMinutes) * time.Minute)

	seg := c.Segment(SegmentRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		Mode:        req.Mode,
		Traffic:     true,
		DepartAt:    &approxDepart,
	})

	buffer := defaultBufferMinutes
	switch {
	case seg.Mode == models.ModeWalking:
		buffer = walkingBufferMinutes
	case seg.Traffic == models.TrafficHeavy:
		buffer = heavyBufferMinutes
	}

	depart := req.ArriveBy.Add(-time.Duration(seg.DurationMinutes+buffer) * time.Minute)

	trafficNote := ""
	if seg.Traffic != "" {
		trafficNote = fmt.Sprintf(" in %s traffic", seg.Traffic)
	}
	justification := fmt.Sprintf("Leave at %s to arrive by %s: %d min %s%s plus a %d min buffer",
		depart.Format("15:04"), req.ArriveBy.Format("15:04"), seg.DurationMinutes, seg.Mode, trafficNote, buffer)

	return models.DepartureSuggestion{
		DepartAt:      depart,
		ArriveBy:      req.ArriveBy,
		BufferMinutes: buffer,
		Segment:       seg,
		Justification: justification,
	}
}
