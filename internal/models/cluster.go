// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

// Cluster is a user-defined group of nearby places. Centroid is the mean of the
// members' coordinates and is nil when no member has a location.
type Cluster struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Centroid *Coordinates `json:"centroid,omitempty"`
	Places   []Place      `json:"places"`
	Stats    ClusterStats `json:"stats"`
}

// ClusterStats summarizes a cluster.
type ClusterStats struct {
	PlaceCount           int `json:"place_count"`
	TotalDurationMinutes int `json:"total_duration_minutes"`
	MaxWalkingMinutes    int `json:"max_walking_minutes"`
}

// IndexOf returns the position of placeID in the cluster, or -1.
func (c *Cluster) IndexOf(placeID string) int {
	for i := range c.Places {
		if c.Places[i].ID == placeID {
			return i
		}
	}
	return -1
}
