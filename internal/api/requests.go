// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"github.com/tomtom215/waypoint/internal/cluster"
	"github.com/tomtom215/waypoint/internal/hours"
	"github.com/tomtom215/waypoint/internal/itinerary"
	"github.com/tomtom215/waypoint/internal/models"
)

// RegenerateRequest re-plans a trip as the next version of a previous itinerary.
type RegenerateRequest struct {
	Previous *models.Itinerary    `json:"previous" validate:"required"`
	Trip     itinerary.TripRequest `json:"trip"`
}

// ScoreRequest ranks places against preferences.
type ScoreRequest struct {
	Places      []models.Place          `json:"places" validate:"required,min=1,max=500,dive"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
	Favorites   []string                `json:"favorites,omitempty"`
}

// ScoreResponse lists the ranked places, favourites first.
type ScoreResponse struct {
	Ranked []models.ScoredPlace `json:"ranked"`
}

// HoursRequest evaluates a place's opening hours for each slot of a date.
type HoursRequest struct {
	Place models.Place `json:"place"`
	Date  models.Date  `json:"date"`
}

// HoursResponse holds one evaluation per slot, morning first.
type HoursResponse struct {
	PlaceID string             `json:"place_id"`
	Date    models.Date        `json:"date"`
	Slots   []hours.Evaluation `json:"slots"`
}

// AddPlaceRequest adds a place to a plan's clusters.
type AddPlaceRequest struct {
	Place models.Place `json:"place"`
}

// AddPlaceResponse reports where the place went.
type AddPlaceResponse struct {
	Cluster    *models.Cluster    `json:"cluster"`
	Assignment cluster.Assignment `json:"assignment"`
}

// ReorderRequest is the cluster's full list of place ids in the new order.
type ReorderRequest struct {
	PlaceIDs []string `json:"place_ids" validate:"required,min=1,dive,required"`
}

// RemovePlaceResponse is the cluster after removal. Cluster is nil when the
// removal emptied and deleted it.
type RemovePlaceResponse struct {
	Cluster        *models.Cluster `json:"cluster"`
	ClusterDeleted bool            `json:"cluster_deleted"`
}

// DeleteResponse acknowledges a deletion.
type DeleteResponse struct {
	Deleted string `json:"deleted"`
}
