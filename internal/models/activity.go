// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// ActivityKind is the wire discriminator of an Activity.
type ActivityKind string

const (
	KindPlace    ActivityKind = "place"
	KindTravel   ActivityKind = "travel"
	KindMeal     ActivityKind = "meal"
	KindFreeTime ActivityKind = "free_time"
)

// Timing is the scheduling envelope shared by every activity.
type Timing struct {
	Slot            TimeSlot `json:"slot"`
	Order           int      `json:"order"`
	Start           Clock    `json:"start_time"`
	End             Clock    `json:"end_time"`
	DurationMinutes int      `json:"duration_minutes"`
}

// When returns the timing itself. It is promoted onto every activity variant.
func (t Timing) When() Timing { return t }

// Activity is one scheduled item. The set of variants is closed:
// PlaceVisit, TravelLeg, MealBreak and FreeTime.
type Activity interface {
	Kind() ActivityKind
	When() Timing
	activity()
}

// PlaceVisit is a stop at a place.
type PlaceVisit struct {
	Timing
	Place      Place   `json:"place"`
	Score      float64 `json:"score"`
	IsFavorite bool    `json:"is_favorite,omitempty"`
	// TravelFromPrevious is the hop from the previous stop, nil for the first stop of the day.
	TravelFromPrevious *Hop `json:"travel_from_previous,omitempty"`
}

// Hop is a short intra-day travel estimate attached to a place visit.
type Hop struct {
	Mode            TravelMode `json:"mode"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes int        `json:"duration_minutes"`
}

// TravelLeg is an inter-city transfer on a travel day.
type TravelLeg struct {
	Timing
	From    string        `json:"from"`
	To      string        `json:"to"`
	Segment TravelSegment `json:"segment"`
}

// MealBreak is a lunch or dinner block.
type MealBreak struct {
	Timing
	Meal MealType `json:"meal"`
}

// FreeTime is unstructured time, e.g. settling in after arrival.
type FreeTime struct {
	Timing
	Note string `json:"note,omitempty"`
}

func (PlaceVisit) Kind() ActivityKind { return KindPlace }
func (TravelLeg) Kind() ActivityKind  { return KindTravel }
func (MealBreak) Kind() ActivityKind  { return KindMeal }
func (FreeTime) Kind() ActivityKind   { return KindFreeTime }

func (PlaceVisit) activity() {}
func (TravelLeg) activity()  {}
func (MealBreak) activity()  {}
func (FreeTime) activity()   {}

// MarshalJSON adds the "type" discriminator.
func (v PlaceVisit) MarshalJSON() ([]byte, error) {
	type plain PlaceVisit
	return json.Marshal(struct {
		Type ActivityKind `json:"type"`
		plain
	}{KindPlace, plain(v)})
}

// MarshalJSON adds the "type" discriminator.
func (v TravelLeg) MarshalJSON() ([]byte, error) {
	type plain TravelLeg
	return json.Marshal(struct {
		Type ActivityKind `json:"type"`
		plain
	}{KindTravel, plain(v)})
}

// MarshalJSON adds the "type" discriminator.
func (v MealBreak) MarshalJSON() ([]byte, error) {
	type plain MealBreak
	return json.Marshal(struct {
		Type ActivityKind `json:"type"`
		plain
	}{KindMeal, plain(v)})
}

// MarshalJSON adds the "type" discriminator.
func (v FreeTime) MarshalJSON() ([]byte, error) {
	type plain FreeTime
	return json.Marshal(struct {
		Type ActivityKind `json:"type"`
		plain
	}{KindFreeTime, plain(v)})
}

// ActivityList is an ordered list of activities that decodes by discriminator.
type ActivityList []Activity

// UnmarshalJSON decodes each element according to its "type" field.
func (l *ActivityList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ActivityList, 0, len(raw))
	for i, msg := range raw {
		var probe struct {
			Type ActivityKind `json:"type"`
		}
		if err := json.Unmarshal(msg, &probe); err != nil {
			return fmt.Errorf("activity %d: %w", i, err)
		}

		var (
			a   Activity
			err error
		)
		switch probe.Type {
		case KindPlace:
			var v PlaceVisit
			err = json.Unmarshal(msg, &v)
			a = v
		case KindTravel:
			var v TravelLeg
			err = json.Unmarshal(msg, &v)
			a = v
		case KindMeal:
			var v MealBreak
			err = json.Unmarshal(msg, &v)
			a = v
		case KindFreeTime:
			var v FreeTime
			err = json.Unmarshal(msg, &v)
			a = v
		default:
			return fmt.Errorf("activity %d: unknown type %q", i, probe.Type)
		}
		if err != nil {
			return fmt.Errorf("activity %d: %w", i, err)
		}
		out = append(out, a)
	}

	*l = out
	return nil
}

// PlaceVisits returns only the place visits, in order.
func (l ActivityList) PlaceVisits() []PlaceVisit {
	var visits []PlaceVisit
	for _, a := range l {
		if v, ok := a.(PlaceVisit); ok {
			visits = append(visits, v)
		}
	}
	return visits
}
