// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package travel estimates travel between coordinates without any live routing
// service: great-circle distance widened by a per-mode road factor, divided by a
// per-mode average speed, optionally adjusted for heuristic traffic.
//
// Estimates are memoized in an injected bounded cache keyed by coordinates
// rounded to four decimals (about 11 m), the mode and the traffic condition.
package travel

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/s2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Mode recommendation thresholds in kilometres.
const (
	walkUnderKm    = 0.8
	cycleUnderKm   = 3.0
	transitUnderKm = 10.0
)

// Range factors applied to traffic-adjusted durations of road modes.
const (
	rangeLowFactor  = 0.85
	rangeHighFactor = 1.35
)

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b models.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// RecommendMode picks a mode for a straight-line distance in kilometres.
func RecommendMode(km float64) models.TravelMode {
	switch {
	case km < walkUnderKm:
		return models.ModeWalking
	case km < cycleUnderKm:
		return models.ModeCycling
	case km < transitUnderKm:
		return models.ModeTransit
	default:
		return models.ModeDriving
	}
}

// ClassifyTraffic returns the heuristic traffic condition at t.
// Weekdays: 07-10 and 16-19 heavy, 10-16 moderate. Weekends: 11-19 moderate.
func ClassifyTraffic(t time.Time) models.TrafficCondition {
	h := t.Hour()
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		if h >= 11 && h < 19 {
			return models.TrafficModerate
		}
		return models.TrafficLight
	default:
		switch {
		case (h >= 7 && h < 10) || (h >= 16 && h < 19):
			return models.TrafficHeavy
		case h >= 10 && h < 16:
			return models.TrafficModerate
		default:
			return models.TrafficLight
		}
	}
}

// affectedByTraffic reports whether a mode shares the road with cars.
func affectedByTraffic(mode models.TravelMode) bool {
	return mode == models.ModeDriving || mode == models.ModeTransit
}

// Calculator computes and memoizes travel segments.
type Calculator struct {
	catalog *catalog.Catalog
	cache   *cache.Bounded[models.TravelSegment]
	logger  zerolog.Logger
	now     func() time.Time
}

// NewCalculator creates a calculator. segments may be nil to disable memoization.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCalculator(cat *catalog.Catalog, segments *cache.Bounded[models.TravelSegment], logger zerolog.Logger) *Calculator {
	return &Calculator{
		catalog: cat,
		cache:   segments,
		logger:  logger.With().Str("component", "travel").Logger(),
		now:     time.Now,
	}
}

// QuickEstimate returns the travel minutes between a and b for mode, ignoring
// traffic: round(haversine × road factor ÷ speed × 60).
func (c *Calculator) QuickEstimate(a, b models.Coordinates, mode models.TravelMode) int {
	profile := c.catalog.Mode(mode)
	return int(math.Round(Haversine(a, b) * profile.RoadFactor / profile.SpeedKmh * 60))
}

// RoadDistance returns the straight-line distance widened by the mode's road factor.
func (c *Calculator) RoadDistance(a, b models.Coordinates, mode models.TravelMode) float64 {
	return Haversine(a, b) * c.catalog.Mode(mode).RoadFactor
}

// SegmentRequest describes a point-to-point estimate.
type SegmentRequest struct {
	Origin      models.Coordinates `json:"origin" validate:"required"`
	Destination models.Coordinates `json:"destination" validate:"required"`
	Mode        models.TravelMode  `json:"mode" validate:"required,oneof=driving walking transit cycling"`
	// Traffic enables the traffic adjustment for driving and transit. The
	// condition is classified at DepartAt, or at the current time when unset.
	Traffic  bool       `json:"traffic,omitempty"`
	DepartAt *time.Time `json:"depart_at,omitempty"`
	// UseCache defaults to true. False neither reads nor fills the cache.
	UseCache *bool `json:"use_cache,omitempty"`
}

func (r *SegmentRequest) cached() bool {
	return r.UseCache == nil || *r.UseCache
}

// Segment estimates one leg. Identical requests within the cache TTL return the
// memoized estimate, carrying the request's own endpoints.
func (c *Calculator) Segment(req SegmentRequest) models.TravelSegment {
	mode := req.Mode
	if !mode.Valid() {
		mode = models.ModeDriving
	}

	var traffic models.TrafficCondition
	if req.Traffic && affectedByTraffic(mode) {
		at := c.now()
		if req.DepartAt != nil {
			at = *req.DepartAt
		}
		traffic = ClassifyTraffic(at)
	}

	useCache := c.cache != nil && req.cached()
	key := segmentKey(req.Origin, req.Destination, mode, traffic)
	if useCache {
		if seg, ok := c.cache.Get(key); ok {
			metrics.TravelCacheLookups.WithLabelValues("hit").Inc()
			seg.Origin, seg.Destination = req.Origin, req.Destination
			return seg
		}
		metrics.TravelCacheLookups.WithLabelValues("miss").Inc()
	}

	profile := c.catalog.Mode(mode)
	roadKm := Haversine(req.Origin, req.Destination) * profile.RoadFactor
	base := roadKm / profile.SpeedKmh * 60

	seg := models.TravelSegment{
		Origin:              req.Origin,
		Destination:         req.Destination,
		Mode:                mode,
		DistanceKm:          math.Round(roadKm*100) / 100,
		BaseDurationMinutes: int(math.Round(base)),
		DurationMinutes:     int(math.Round(base)),
		Traffic:             traffic,
	}
	if traffic != "" {
		seg.DurationMinutes = int(math.Round(base * c.catalog.TrafficMultiplier(traffic)))
	}
	if affectedByTraffic(mode) {
		seg.DurationRange = &models.DurationRange{
			MinMinutes: int(math.Round(float64(seg.DurationMinutes) * rangeLowFactor)),
			MaxMinutes: int(math.Round(float64(seg.DurationMinutes) * rangeHighFactor)),
		}
	}

	if useCache {
		c.cache.Put(key, seg)
	}
	return seg
}

func segmentKey(a, b models.Coordinates, mode models.TravelMode, traffic models.TrafficCondition) string {
	return fmt.Sprintf("%.4f,%.4f|%.4f,%.4f|%s|%s", a.Lat, a.Lng, b.Lat, b.Lng, mode, traffic)
}
