// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cluster

import (
	"sort"
	"strings"

	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/travel"
)

// WalkingThresholdMinutes is the longest walk from a cluster's centroid at
// which a place still joins that cluster.
const WalkingThresholdMinutes = 15

// Decision is the outcome of an assignment.
type Decision string

// Assignment decisions
const (
	DecisionExisting Decision = "existing"
	DecisionNew      Decision = "new"
)

// Assignment tells the caller where a place belongs.
type Assignment struct {
	Decision Decision `json:"decision"`

	// ClusterID and Position identify the chosen cluster for DecisionExisting.
	// Position is -1 for DecisionNew.
	ClusterID string `json:"cluster_id,omitempty"`
	Position  int    `json:"-"`

	// WalkingMinutes is the walk from the chosen centroid, 0 when unknown.
	WalkingMinutes int `json:"walking_minutes,omitempty"`

	// SuggestedName seeds the new cluster's name for DecisionNew.
	SuggestedName string `json:"suggested_name,omitempty"`
}

// Engine groups places into walkable areas. It holds no mutable state.
type Engine struct {
	catalog *catalog.Catalog
	travel  *travel.Calculator
}

// NewEngine creates a clustering engine.
func NewEngine(cat *catalog.Catalog, calc *travel.Calculator) *Engine {
	return &Engine{catalog: cat, travel: calc}
}

// Assign decides which of clusters the place joins.
//
// Places without coordinates join the first cluster. Food and drink places
// prefer the nearest cluster that already holds an activity. Everything else
// joins the nearest cluster within the walking threshold, and a new cluster is
// suggested when none qualifies.
func (e *Engine) Assign(clusters []models.Cluster, place *models.Place) Assignment {
	a := e.assign(clusters, place)
	metrics.ClusterAssignments.WithLabelValues(string(a.Decision)).Inc()
	return a
}

func (e *Engine) assign(clusters []models.Cluster, place *models.Place) Assignment {
	if !place.HasLocation() {
		if len(clusters) > 0 {
			return Assignment{Decision: DecisionExisting, ClusterID: clusters[0].ID, Position: 0}
		}
		return e.newCluster(place)
	}

	nearby := NewIndex(clusters).Near(*place.Location, e.radiusKm())

	if e.catalog.IsFoodType(e.catalog.PrimaryCategory(place)) {
		for _, n := range nearby {
			if !e.hasActivity(&clusters[n.Position]) {
				continue
			}
			if a, ok := e.within(clusters, n, place); ok {
				return a
			}
		}
	}

	for _, n := range nearby {
		if a, ok := e.within(clusters, n, place); ok {
			return a
		}
	}
	return e.newCluster(place)
}

// within checks the walking time to a prefiltered cluster.
func (e *Engine) within(clusters []models.Cluster, n Neighbor, place *models.Place) (Assignment, bool) {
	c := &clusters[n.Position]
	minutes := e.walkingMinutes(*c.Centroid, *place.Location)
	if minutes > WalkingThresholdMinutes {
		return Assignment{}, false
	}
	return Assignment{
		Decision:       DecisionExisting,
		ClusterID:      c.ID,
		Position:       n.Position,
		WalkingMinutes: minutes,
	}, true
}

func (e *Engine) newCluster(place *models.Place) Assignment {
	return Assignment{Decision: DecisionNew, Position: -1, SuggestedName: SuggestName(place)}
}

// hasActivity reports whether any member is not a food or drink place.
func (e *Engine) hasActivity(c *models.Cluster) bool {
	for i := range c.Places {
		if !e.catalog.IsFoodType(e.catalog.PrimaryCategory(&c.Places[i])) {
			return true
		}
	}
	return false
}

// radiusKm is the straight-line distance that can still round to the
// walking threshold.
func (e *Engine) radiusKm() float64 {
	walk := e.catalog.Mode(models.ModeWalking)
	return (WalkingThresholdMinutes + 0.5) / 60 * walk.SpeedKmh / walk.RoadFactor
}

func (e *Engine) walkingMinutes(a, b models.Coordinates) int {
	return e.travel.QuickEstimate(a, b, models.ModeWalking)
}

// SuggestName names a new cluster after the place's area.
func SuggestName(place *models.Place) string {
	if area := strings.TrimSpace(place.Area); area != "" {
		return area
	}
	if place.Name != "" {
		return "Around " + place.Name
	}
	return "New area"
}

// Recompute refreshes the centroid and stats after a membership change.
func (e *Engine) Recompute(c *models.Cluster) {
	var lat, lng float64
	var located []models.Coordinates
	total := 0
	for i := range c.Places {
		p := &c.Places[i]
		total += e.catalog.PlaceVisitMinutes(p)
		if p.HasLocation() {
			located = append(located, *p.Location)
			lat += p.Location.Lat
			lng += p.Location.Lng
		}
	}

	c.Centroid = nil
	if n := float64(len(located)); n > 0 {
		c.Centroid = &models.Coordinates{Lat: lat / n, Lng: lng / n}
	}

	maxWalk := 0
	for i := range located {
		for j := i + 1; j < len(located); j++ {
			maxWalk = max(maxWalk, e.walkingMinutes(located[i], located[j]))
		}
	}

	c.Stats = models.ClusterStats{
		PlaceCount:           len(c.Places),
		TotalDurationMinutes: total,
		MaxWalkingMinutes:    maxWalk,
	}
}

// DayFlow orders places into a natural day sequence: cafes and bakeries first,
// sights next, then meals, open-ended venues and nightlife. Higher ratings go
// first within a rank. The input is not modified.
func (e *Engine) DayFlow(places []models.Place) []models.Place {
	out := make([]models.Place, len(places))
	copy(out, places)

	ranks := make(map[string]int, len(out))
	for i := range out {
		ranks[out[i].ID] = e.catalog.FlowRank(&out[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ranks[out[i].ID], ranks[out[j].ID]
		if ri != rj {
			return ri < rj
		}
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out
}

