// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cluster

import (
	"strconv"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/models"
)

// indexCellKm matches the walking threshold so a query touches few cells.
const indexCellKm = 1.0

// Neighbor is a cluster found near a point.
type Neighbor struct {
	Position   int
	ClusterID  string
	DistanceKm float64
}

// Index is a spatial index over cluster centroids. Clusters without a
// centroid are not indexed.
type Index struct {
	grid *cache.SpatialHashGrid
}

// NewIndex indexes the centroids of clusters by their position in the slice.
func NewIndex(clusters []models.Cluster) *Index {
	grid := cache.NewSpatialHashGrid(indexCellKm)
	for i := range clusters {
		c := &clusters[i]
		if c.Centroid == nil {
			continue
		}
		grid.Insert(strconv.Itoa(i), c.Centroid.Lat, c.Centroid.Lng, Neighbor{Position: i, ClusterID: c.ID})
	}
	return &Index{grid: grid}
}

// Near returns the clusters whose centroid is within radiusKm of at, nearest first.
func (ix *Index) Near(at models.Coordinates, radiusKm float64) []Neighbor {
	entries := ix.grid.QueryNearby(at.Lat, at.Lng, radiusKm)
	out := make([]Neighbor, 0, len(entries))
	for _, e := range entries {
		n, ok := e.Data.(Neighbor)
		if !ok {
			continue
		}
		n.DistanceKm = e.DistanceKm
		out = append(out, n)
	}
	return out
}

// Len returns the number of indexed clusters.
func (ix *Index) Len() int {
	return ix.grid.Size()
}
