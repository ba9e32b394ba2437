// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lng float64 `json:"lng" yaml:"lng" validate:"longitude"`
}

// Place is a candidate location. Missing fields are zero values: a nil Location,
// a PriceLevel of 0 (unknown), or nil OpeningHours. Engines degrade to neutral
// defaults when data is missing and never modify a Place.
type Place struct {
	ID           string        `json:"id" yaml:"id" validate:"required"`
	Name         string        `json:"name" yaml:"name"`
	Location     *Coordinates  `json:"location,omitempty" yaml:"location"`
	Types        []string      `json:"types,omitempty" yaml:"types"`
	Rating       float64       `json:"rating,omitempty" yaml:"rating" validate:"gte=0,lte=5"`
	ReviewCount  int           `json:"review_count,omitempty" yaml:"review_count"`
	PriceLevel   int           `json:"price_level,omitempty" yaml:"price_level" validate:"gte=0,lte=4"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty" yaml:"opening_hours"`

	HiddenGemScore float64 `json:"hidden_gem_score,omitempty" yaml:"hidden_gem_score" validate:"gte=0,lte=1"`
	IsHiddenGem    bool    `json:"is_hidden_gem,omitempty" yaml:"is_hidden_gem"`

	Description string `json:"description,omitempty" yaml:"description"`
	Address     string `json:"address,omitempty" yaml:"address"`
	// Area is the neighbourhood or vicinity label used when naming clusters.
	Area string `json:"area,omitempty" yaml:"area"`
}

// PrimaryType returns the first raw type, or "" when the place has none.
func (p *Place) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}

// HasLocation reports whether the place carries coordinates.
func (p *Place) HasLocation() bool {
	return p.Location != nil
}

// OpeningHours holds whatever hours data the provider returned. Any of the three
// sources may be absent.
type OpeningHours struct {
	// Periods are structured open/close pairs. A period with a nil Close is open 24 hours.
	Periods []Period `json:"periods,omitempty" yaml:"periods"`

	// WeekdayText holds lines such as "Monday: 9:00 AM – 5:00 PM" or "Tuesday: Closed".
	WeekdayText []string `json:"weekday_text,omitempty" yaml:"weekday_text"`

	// OpenNow is the provider's live flag, nil when unknown.
	OpenNow *bool `json:"open_now,omitempty" yaml:"open_now"`
}

// Period is one structured opening interval.
type Period struct {
	Open  DayTime  `json:"open" yaml:"open"`
	Close *DayTime `json:"close,omitempty" yaml:"close"`
}

// DayTime is a weekday (0 = Sunday) and a 24-hour "HHMM" time.
type DayTime struct {
	Day  int    `json:"day" yaml:"day" validate:"gte=0,lte=6"`
	Time string `json:"time" yaml:"time"`
}
