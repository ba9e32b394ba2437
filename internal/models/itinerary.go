// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import "time"

// ItineraryDay is one calendar day of a trip.
type ItineraryDay struct {
	DayNumber   int          `json:"day_number"`
	Date        Date         `json:"date"`
	City        string       `json:"city"`
	IsTravelDay bool         `json:"is_travel_day"`
	Theme       string       `json:"theme,omitempty"`
	Morning     ActivityList `json:"morning"`
	Afternoon   ActivityList `json:"afternoon"`
	Evening     ActivityList `json:"evening"`
	Summary     DaySummary   `json:"summary"`
	Warnings    []Warning    `json:"warnings,omitempty"`
}

// Slot returns the activities of slot s.
func (d *ItineraryDay) Slot(s TimeSlot) ActivityList {
	switch s {
	case SlotMorning:
		return d.Morning
	case SlotAfternoon:
		return d.Afternoon
	default:
		return d.Evening
	}
}

// SetSlot replaces the activities of slot s.
func (d *ItineraryDay) SetSlot(s TimeSlot, list ActivityList) {
	switch s {
	case SlotMorning:
		d.Morning = list
	case SlotAfternoon:
		d.Afternoon = list
	default:
		d.Evening = list
	}
}

// Activities returns every activity of the day in slot order.
func (d *ItineraryDay) Activities() []Activity {
	all := make([]Activity, 0, len(d.Morning)+len(d.Afternoon)+len(d.Evening))
	all = append(all, d.Morning...)
	all = append(all, d.Afternoon...)
	all = append(all, d.Evening...)
	return all
}

// PlaceVisits returns every place visit of the day in slot order.
func (d *ItineraryDay) PlaceVisits() []PlaceVisit {
	return ActivityList(d.Activities()).PlaceVisits()
}

// DaySummary aggregates a day's schedule.
type DaySummary struct {
	Start         Clock      `json:"start_time"`
	End           Clock      `json:"end_time"`
	ActiveHours   float64    `json:"active_hours"`
	TravelMinutes int        `json:"travel_minutes"`
	BufferMinutes int        `json:"buffer_minutes"`
	PlaceCount    int        `json:"place_count"`
	Meals         []MealType `json:"meals,omitempty"`
	Text          string     `json:"text"`
}

// WarningKind classifies an advisory schedule warning.
type WarningKind string

const (
	WarningOverlap    WarningKind = "overlap"
	WarningEarlyStart WarningKind = "early_start"
	WarningLateEnd    WarningKind = "late_end"
	WarningLongGap    WarningKind = "long_gap"
)

// Warning is an advisory finding about a day's schedule. Warnings never fail a request.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// Itinerary is a generated multi-day plan.
type Itinerary struct {
	ID        string            `json:"id"`
	StartDate Date              `json:"start_date"`
	EndDate   Date              `json:"end_date"`
	Cities    []string          `json:"cities"`
	Days      []ItineraryDay    `json:"days"`
	Summary   ItinerarySummary  `json:"summary"`
	Metadata  ItineraryMetadata `json:"metadata"`
}

// PlaceIDs returns the IDs of every visited place, in itinerary order.
func (it *Itinerary) PlaceIDs() []string {
	var ids []string
	for i := range it.Days {
		for _, v := range it.Days[i].PlaceVisits() {
			ids = append(ids, v.Place.ID)
		}
	}
	return ids
}

// ItinerarySummary holds trip-wide statistics.
type ItinerarySummary struct {
	TotalDays           int            `json:"total_days"`
	TravelDays          int            `json:"travel_days"`
	EmptyDays           int            `json:"empty_days"`
	TotalActivities     int            `json:"total_activities"`
	HiddenGems          int            `json:"hidden_gems"`
	Favorites           int            `json:"favorites"`
	TotalDrivingKm      float64        `json:"total_driving_km"`
	TotalDrivingMinutes int            `json:"total_driving_minutes"`
	CategoryBreakdown   map[string]int `json:"category_breakdown"`
}

// ItineraryMetadata describes how an itinerary was produced.
type ItineraryMetadata struct {
	Pace          Pace      `json:"pace"`
	Version       int       `json:"version"`
	GeneratedAt   time.Time `json:"generated_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}
