// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package travel

import (
	"math"
	"time"

	"github.com/tomtom215/waypoint/internal/models"
)

// RouteRequest chains segments through ordered waypoints.
type RouteRequest struct {
	Waypoints []models.Coordinates `json:"waypoints" validate:"required,min=2,dive"`
	Mode      models.TravelMode    `json:"mode" validate:"required,oneof=driving walking transit cycling"`
	DepartAt  *time.Time           `json:"depart_at,omitempty"`
}

// Route estimates each consecutive leg. When DepartAt is set, each leg departs
// when the previous one arrives, so traffic is classified per leg.
func (c *Calculator) Route(req RouteRequest) models.Route {
	route := models.Route{Mode: req.Mode, Segments: []models.TravelSegment{}}
	if len(req.Waypoints) < 2 {
		return route
	}

	var departAt *time.Time
	if req.DepartAt != nil {
		t := *req.DepartAt
		departAt = &t
	}

	for i := 1; i < len(req.Waypoints); i++ {
		seg := c.Segment(SegmentRequest{
			Origin:      req.Waypoints[i-1],
			Destination: req.Waypoints[i],
			Mode:        req.Mode,
			Traffic:     departAt != nil,
			DepartAt:    departAt,
		})
		route.Segments = append(route.Segments, seg)
		route.TotalDistanceKm += seg.DistanceKm
		route.TotalDurationMinutes += seg.DurationMinutes

		if departAt != nil {
			next := departAt.Add(time.Duration(seg.DurationMinutes) * time.Minute)
			departAt = &next
		}
	}

	route.TotalDistanceKm = math.Round(route.TotalDistanceKm*100) / 100
	return route
}
