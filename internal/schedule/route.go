// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package schedule

import (
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/travel"
)

// walkingInefficiency widens straight-line distance into a walking distance.
const walkingInefficiency = 1.2

// orderBuckets orders every bucket by greedy nearest neighbour, chaining from
// the start location through the last stop of each previous bucket.
func orderBuckets(buckets map[models.TimeSlot][]models.ScoredPlace, start *models.Coordinates) {
	from := start
	for _, slot := range models.Slots {
		stops := buckets[slot]
		if len(stops) == 0 {
			continue
		}
		buckets[slot] = NearestNeighbor(stops, from)
		for i := len(buckets[slot]) - 1; i >= 0; i-- {
			if loc := buckets[slot][i].Place.Location; loc != nil {
				from = loc
				break
			}
		}
	}
}

// NearestNeighbor orders stops greedily: from the current position, always go
// to the closest unvisited stop. Stops without coordinates keep their relative
// order at the end. With a nil origin the first located stop starts the tour.
// O(n²); not a shortest-tour solver.
func NearestNeighbor(stops []models.ScoredPlace, origin *models.Coordinates) []models.ScoredPlace {
	located := make([]models.ScoredPlace, 0, len(stops))
	var unlocated []models.ScoredPlace
	for i := range stops {
		if stops[i].Place.HasLocation() {
			located = append(located, stops[i])
		} else {
			unlocated = append(unlocated, stops[i])
		}
	}

	ordered := make([]models.ScoredPlace, 0, len(stops))
	visited := make([]bool, len(located))
	current := origin
	for range located {
		best, bestDist := -1, 0.0
		for i := range located {
			if visited[i] {
				continue
			}
			if current == nil {
				best = i
				break
			}
			d := travel.Haversine(*current, *located[i].Place.Location) * walkingInefficiency
			if best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}
		visited[best] = true
		ordered = append(ordered, located[best])
		current = located[best].Place.Location
	}
	return append(ordered, unlocated...)
}
