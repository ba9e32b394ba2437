// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package itinerary

import (
	"fmt"

	"github.com/tomtom215/waypoint/internal/models"
)

// MaxTripDays bounds the length of a generated trip.
const MaxTripDays = 60

// CityStop is one city of the trip and the nights spent there.
type CityStop struct {
	Name   string `json:"name" yaml:"name" validate:"required,notblank"`
	Nights int    `json:"nights" yaml:"nights" validate:"gte=0"`
	// Location is the city centre. When nil it is derived from the city's
	// candidate places.
	Location *models.Coordinates `json:"location,omitempty" yaml:"location"`
}

// TripRequest describes a trip to plan.
type TripRequest struct {
	StartDate   models.Date             `json:"start_date" yaml:"start_date"`
	EndDate     models.Date             `json:"end_date" yaml:"end_date"`
	Cities      []CityStop              `json:"cities" yaml:"cities" validate:"required,min=1,dive"`
	Preferences *models.UserPreferences `json:"preferences,omitempty" yaml:"preferences"`
	Pace        models.Pace             `json:"pace,omitempty" yaml:"pace" validate:"omitempty,oneof=relaxed balanced packed"`

	// Places holds candidate places per city name. Cities without an entry are
	// searched through the generator's Searcher.
	Places map[string][]models.Place `json:"places,omitempty" yaml:"places"`

	Favorites []string `json:"favorites,omitempty" yaml:"favorites"`

	// Themes maps a day number (1-based) to a category or interest key whose
	// places are preferred on that day.
	Themes map[int]string `json:"themes,omitempty" yaml:"themes"`

	// Mode is the travel mode within a city. Empty picks one per hop by distance.
	Mode models.TravelMode `json:"mode,omitempty" yaml:"mode" validate:"omitempty,oneof=driving walking transit cycling"`

	// RadiusMeters bounds place searches around a city centre.
	RadiusMeters int `json:"radius_meters,omitempty" yaml:"radius_meters" validate:"omitempty,gte=100,lte=100000"`
}

// Validate checks the request for errors that cannot be degraded. The
// returned error wraps models.ErrInvalidInput.
func (r *TripRequest) Validate() error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", models.ErrInvalidInput)
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s", models.ErrInvalidInput, r.EndDate, r.StartDate)
	}
	if days := r.Days(); days > MaxTripDays {
		return fmt.Errorf("%w: trip of %d days exceeds the %d day limit", models.ErrInvalidInput, days, MaxTripDays)
	}
	if len(r.Cities) == 0 {
		return fmt.Errorf("%w: at least one city is required", models.ErrInvalidInput)
	}
	for i, c := range r.Cities {
		if c.Name == "" {
			return fmt.Errorf("%w: city %d has no name", models.ErrInvalidInput, i+1)
		}
		if c.Nights < 0 {
			return fmt.Errorf("%w: city %q has negative nights", models.ErrInvalidInput, c.Name)
		}
	}
	if r.Pace != "" && !r.Pace.Valid() {
		return fmt.Errorf("%w: unknown pace %q", models.ErrInvalidInput, r.Pace)
	}
	if r.Mode != "" && !r.Mode.Valid() {
		return fmt.Errorf("%w: unknown travel mode %q", models.ErrInvalidInput, r.Mode)
	}
	return nil
}

// Days returns the inclusive number of trip days.
func (r *TripRequest) Days() int {
	return r.StartDate.DaysUntil(r.EndDate) + 1
}

func (r *TripRequest) pace() models.Pace {
	if r.Pace == "" {
		return models.PaceBalanced
	}
	return r.Pace
}
