// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package travel

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
)

// oneKmNorth is 1 km due north of the origin along the equator's meridian.
var (
	origin     = models.Coordinates{Lat: 0, Lng: 0}
	oneKmNorth = models.Coordinates{Lat: 1 / EarthRadiusKm * 180 / math.Pi, Lng: 0}
	louvre     = models.Coordinates{Lat: 48.8606, Lng: 2.3376}
	orsay      = models.Coordinates{Lat: 48.8600, Lng: 2.3266}
	versailles = models.Coordinates{Lat: 48.8049, Lng: 2.1204}
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(catalog.Default(), cache.NewBounded[models.TravelSegment](100, time.Minute), logging.NewTestLogger(io.Discard))
}

func TestHaversine(t *testing.T) {
	t.Parallel()

	if got := Haversine(origin, oneKmNorth); math.Abs(got-1) > 1e-6 {
		t.Errorf("Haversine(origin, 1km) = %v, want 1", got)
	}
	if got := Haversine(louvre, louvre); got != 0 {
		t.Errorf("Haversine(x, x) = %v, want 0", got)
	}
	ab, ba := Haversine(louvre, versailles), Haversine(versailles, louvre)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("Haversine not symmetric: %v vs %v", ab, ba)
	}
	if ab < 16 || ab > 18 {
		t.Errorf("Louvre to Versailles = %v km, want about 17", ab)
	}
}

func TestQuickEstimateWalkingOneKm(t *testing.T) {
	t.Parallel()

	c := newTestCalculator(t)
	if got := c.QuickEstimate(origin, oneKmNorth, models.ModeWalking); got != 16 {
		t.Errorf("QuickEstimate(1 km, walking) = %d, want 16", got)
	}
	if got := c.QuickEstimate(origin, oneKmNorth, models.ModeDriving); got != 2 {
		t.Errorf("QuickEstimate(1 km, driving) = %d, want 2", got)
	}
}

func TestRecommendMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		km   float64
		want models.TravelMode
	}{
		{0.2, models.ModeWalking},
		{0.8, models.ModeCycling},
		{2.9, models.ModeCycling},
		{5, models.ModeTransit},
		{10, models.ModeDriving},
		{250, models.ModeDriving},
	}
	for _, tt := range tests {
		if got := RecommendMode(tt.km); got != tt.want {
			t.Errorf("RecommendMode(%v) = %s, want %s", tt.km, got, tt.want)
		}
	}
}

func TestClassifyTraffic(t *testing.T) {
	t.Parallel()

	monday := time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want models.TrafficCondition
	}{
		{"weekday early", monday.Add(6 * time.Hour), models.TrafficLight},
		{"weekday morning peak", monday.Add(8 * time.Hour), models.TrafficHeavy},
		{"weekday midday", monday.Add(13 * time.Hour), models.TrafficModerate},
		{"weekday evening peak", monday.Add(17*time.Hour + 30*time.Minute), models.TrafficHeavy},
		{"weekday night", monday.Add(21 * time.Hour), models.TrafficLight},
		{"weekend morning", saturday.Add(9 * time.Hour), models.TrafficLight},
		{"weekend afternoon", saturday.Add(15 * time.Hour), models.TrafficModerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyTraffic(tt.at); got != tt.want {
				t.Errorf("ClassifyTraffic(%s) = %s, want %s", tt.at.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestSegmentSymmetry(t *testing.T) {
	t.Parallel()

	c := newTestCalculator(t)
	for _, mode := range []models.TravelMode{models.ModeDriving, models.ModeWalking, models.ModeTransit, models.ModeCycling} {
		ab := c.Segment(SegmentRequest{Origin: louvre, Destination: versailles, Mode: mode})
		ba := c.Segment(SegmentRequest{Origin: versailles, Destination: louvre, Mode: mode})
		if math.Abs(ab.DistanceKm-ba.DistanceKm) > 0.011 {
			t.Errorf("%s: distance %v vs %v", mode, ab.DistanceKm, ba.DistanceKm)
		}
		if ab.DurationMinutes != ba.DurationMinutes {
			t.Errorf("%s: duration %d vs %d without traffic", mode, ab.DurationMinutes, ba.DurationMinutes)
		}
	}
}

func TestSegmentTraffic(t *testing.T) {
	t.Parallel()

	c := newTestCalculator(t)
	peak := time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)

	plain := c.Segment(SegmentRequest{Origin: louvre, Destination: versailles, Mode: models.ModeDriving})
	heavy := c.Segment(SegmentRequest{Origin: louvre, Destination: versailles, Mode: models.ModeDriving, Traffic: true, DepartAt: &peak})

	if plain.Traffic != "" {
		t.Errorf("segment without departure time has traffic %q", plain.Traffic)
	}
	if heavy.Traffic != models.TrafficHeavy {
		t.Fatalf("peak traffic = %q, want heavy", heavy.Traffic)
	}
	want := int(math.Round(float64(heavy.BaseDurationMinutes) * 1.6))
	if diff := heavy.DurationMinutes - want; diff < -1 || diff > 1 {
		t.Errorf("heavy duration = %d, want about %d", heavy.DurationMinutes, want)
	}
	if heavy.DurationRange == nil || heavy.DurationRange.MinMinutes > heavy.DurationMinutes || heavy.DurationRange.MaxMinutes < heavy.DurationMinutes {
		t.Errorf("duration range %+v does not bracket %d", heavy.DurationRange, heavy.DurationMinutes)
	}

	walk := c.Segment(SegmentRequest{Origin: louvre, Destination: orsay, Mode: models.ModeWalking, Traffic: true, DepartAt: &peak})
	if walk.Traffic != "" || walk.DurationRange != nil {
		t.Errorf("walking segment should ignore traffic, got %+v", walk)
	}
}

func TestSegmentMemoized(t *testing.T) {
	t.Parallel()

	segments := cache.NewBounded[models.TravelSegment](10, time.Minute)
	c := NewCalculator(catalog.Default(), segments, logging.NewTestLogger(io.Discard))

	req := SegmentRequest{Origin: louvre, Destination: orsay, Mode: models.ModeWalking}
	first := c.Segment(req)
	// Coordinates equal to four decimals share the cache entry.
	req.Origin.Lat += 0.00001
	second := c.Segment(req)

	if hits, _, _, size := segments.Stats(); hits != 1 || size != 1 {
		t.Errorf("cache hits = %d, size = %d; want 1 and 1", hits, size)
	}
	if second.Origin != req.Origin || second.Destination != req.Destination {
		t.Errorf("cached segment endpoints = %+v -> %+v, want the request's %+v -> %+v",
			second.Origin, second.Destination, req.Origin, req.Destination)
	}
	second.Origin = first.Origin
	if first != second {
		t.Errorf("rounded request not served from cache: %+v vs %+v", first, second)
	}
}

func TestSegmentTrafficFlag(t *testing.T) {
	t.Parallel()

	c := newTestCalculator(t)
	c.now = func() time.Time { return time.Date(2026, time.October, 12, 17, 30, 0, 0, time.UTC) }
	quiet := time.Date(2026, time.October, 12, 3, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		req  SegmentRequest
		want models.TrafficCondition
	}{
		"departure time without flag": {
			req:  SegmentRequest{Origin: louvre, Destination: versailles, Mode: models.ModeDriving, DepartAt: &quiet},
			want: "",
		},
		"flag at departure time": {
			req:  SegmentRequest{Origin: louvre, Destination: versailles, Mode: models.ModeDriving, Traffic: true, DepartAt: &quiet},
			want: models.TrafficLight,
		},
		"flag at current time": {
			req:  SegmentRequest{Origin: louvre, Destination: versailles, Mode: models.ModeTransit, Traffic: true},
			want: models.TrafficHeavy,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := c.Segment(tt.req).Traffic; got != tt.want {
				t.Errorf("Traffic = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSegmentBypassesCache(t *testing.T) {
	t.Parallel()

	segments := cache.NewBounded[models.TravelSegment](10, time.Minute)
	c := NewCalculator(catalog.Default(), segments, logging.NewTestLogger(io.Discard))

	off := false
	req := SegmentRequest{Origin: louvre, Destination: orsay, Mode: models.ModeWalking, UseCache: &off}
	c.Segment(req)
	c.Segment(req)
	if hits, misses, _, size := segments.Stats(); hits != 0 || misses != 0 || size != 0 {
		t.Errorf("cache hits = %d, misses = %d, size = %d; want an untouched cache", hits, misses, size)
	}

	req.UseCache = nil
	c.Segment(req)
	if _, _, _, size := segments.Stats(); size != 1 {
		t.Errorf("cache size = %d after a default request, want 1", size)
	}
}

func TestSuggestDeparture(t *testing.T) {
	t.Parallel()

	c := newTestCalculator(t)
	arrive := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)

	walk := c.SuggestDeparture(DepartureRequest{Origin: origin, Destination: oneKmNorth, Mode: models.ModeWalking, ArriveBy: arrive})
	if walk.BufferMinutes != 5 {
		t.Errorf("walking buffer = %d, want 5", walk.BufferMinutes)
	}
	if want := arrive.Add(-21 * time.Minute); !walk.DepartAt.Equal(want) {
		t.Errorf("walking depart = %s, want %s", walk.DepartAt.Format("15:04"), want.Format("15:04"))
	}

	drive := c.SuggestDeparture(DepartureRequest{Origin: louvre, Destination: versailles, Mode: models.ModeDriving, ArriveBy: arrive})
	if drive.Segment.Traffic != models.TrafficHeavy || drive.BufferMinutes != 15 {
		t.Errorf("morning drive = %s traffic, buffer %d; want heavy, 15", drive.Segment.Traffic, drive.BufferMinutes)
	}
	if got := arrive.Sub(drive.DepartAt); got != time.Duration(drive.Segment.DurationMinutes+15)*time.Minute {
		t.Errorf("drive lead time = %s", got)
	}
	if !strings.Contains(drive.Justification, "heavy traffic") {
		t.Errorf("justification %q does not mention traffic", drive.Justification)
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()

	c := newTestCalculator(t)
	route := c.Route(RouteRequest{Waypoints: []models.Coordinates{louvre, orsay, versailles}, Mode: models.ModeDriving})

	if len(route.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(route.Segments))
	}
	sum := route.Segments[0].DurationMinutes + route.Segments[1].DurationMinutes
	if route.TotalDurationMinutes != sum {
		t.Errorf("total duration = %d, want %d", route.TotalDurationMinutes, sum)
	}
	if route.Segments[1].Origin != orsay {
		t.Errorf("second leg starts at %+v, want orsay", route.Segments[1].Origin)
	}

	if empty := c.Route(RouteRequest{Waypoints: []models.Coordinates{louvre}, Mode: models.ModeWalking}); len(empty.Segments) != 0 {
		t.Errorf("single waypoint produced %d segments", len(empty.Segments))
	}
}
