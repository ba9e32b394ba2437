// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cache

import (
	"math"
	"sort"
	"sync"

	"github.com/golang/geo/s2"
)

const (
	earthRadiusKm = 6371.0
	kmPerDegree   = 111.0
)

// SpatialHashGrid buckets points into fixed-size lat/lng cells so that proximity
// queries only inspect the cells around the query point.
type SpatialHashGrid struct {
	mu       sync.RWMutex
	cells    map[CellKey][]*SpatialEntry
	cellSize float64 // degrees
	columns  int     // longitude cells around the globe
	entries  map[string]*SpatialEntry
}

// CellKey is a grid cell coordinate. X counts cells east of the antimeridian.
type CellKey struct {
	X, Y int
}

// SpatialEntry is a point in the grid. DistanceKm is filled in by queries.
type SpatialEntry struct {
	ID         string
	Lat        float64
	Lng        float64
	Data       any
	DistanceKm float64
	cellKey    CellKey
}

// NewSpatialHashGrid creates a grid with roughly cellSizeKm-wide cells.
// Non-positive sizes default to 1 km, a comfortable walking radius.
func NewSpatialHashGrid(cellSizeKm float64) *SpatialHashGrid {
	if cellSizeKm <= 0 {
		cellSizeKm = 1
	}
	cellSize := cellSizeKm / kmPerDegree
	return &SpatialHashGrid{
		cells:    make(map[CellKey][]*SpatialEntry),
		cellSize: cellSize,
		columns:  int(math.Ceil(360 / cellSize)),
		entries:  make(map[string]*SpatialEntry),
	}
}

func (g *SpatialHashGrid) cellKey(lat, lng float64) CellKey {
	return CellKey{
		X: g.wrapX(int(math.Floor((lng + 180) / g.cellSize))),
		Y: int(math.Floor(lat / g.cellSize)),
	}
}

// wrapX folds a column index onto [0, columns).
func (g *SpatialHashGrid) wrapX(x int) int {
	x %= g.columns
	if x < 0 {
		x += g.columns
	}
	return x
}

// Insert adds or moves the entry with the given ID.
func (g *SpatialHashGrid) Insert(id string, lat, lng float64, data any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.entries[id]; ok {
		g.removeFromCell(existing)
	}

	entry := &SpatialEntry{ID: id, Lat: lat, Lng: lng, Data: data, cellKey: g.cellKey(lat, lng)}
	g.cells[entry.cellKey] = append(g.cells[entry.cellKey], entry)
	g.entries[id] = entry
}

// Remove deletes an entry by ID.
func (g *SpatialHashGrid) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[id]
	if !ok {
		return false
	}
	g.removeFromCell(entry)
	delete(g.entries, id)
	return true
}

// removeFromCell must be called with mu held.
func (g *SpatialHashGrid) removeFromCell(entry *SpatialEntry) {
	cell := g.cells[entry.cellKey]
	for i, e := range cell {
		if e.ID == entry.ID {
			cell[i] = cell[len(cell)-1]
			cell = cell[:len(cell)-1]
			break
		}
	}
	if len(cell) == 0 {
		delete(g.cells, entry.cellKey)
		return
	}
	g.cells[entry.cellKey] = cell
}

// QueryNearby returns copies of the entries within radiusKm of the point,
// nearest first.
func (g *SpatialHashGrid) QueryNearby(lat, lng, radiusKm float64) []SpatialEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Longitude cells shrink towards the poles, so widen the X span accordingly.
	spanY := int(math.Ceil(radiusKm/kmPerDegree/g.cellSize)) + 1
	cosLat := math.Max(math.Cos(lat*math.Pi/180), 0.01)
	spanX := int(math.Ceil(radiusKm/(kmPerDegree*cosLat)/g.cellSize)) + 1
	center := g.cellKey(lat, lng)
	origin := s2.LatLngFromDegrees(lat, lng)

	columns := make([]int, 0, 2*spanX+1)
	if 2*spanX+1 >= g.columns {
		for x := 0; x < g.columns; x++ {
			columns = append(columns, x)
		}
	} else {
		for dx := -spanX; dx <= spanX; dx++ {
			columns = append(columns, g.wrapX(center.X+dx))
		}
	}

	var results []SpatialEntry
	for _, x := range columns {
		for dy := -spanY; dy <= spanY; dy++ {
			for _, entry := range g.cells[CellKey{X: x, Y: center.Y + dy}] {
				dist := origin.Distance(s2.LatLngFromDegrees(entry.Lat, entry.Lng)).Radians() * earthRadiusKm
				if dist <= radiusKm {
					found := *entry
					found.DistanceKm = dist
					results = append(results, found)
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].ID < results[j].ID
	})
	return results
}

// Size returns the number of entries.
func (g *SpatialHashGrid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}
