// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package hours decides whether a place is open during a time slot on a given
// date, and how appropriate the slot is for the place's category.
//
// Opening data is resolved from the most to the least reliable source:
//
//  1. structured periods (high confidence)
//  2. weekday text such as "Monday: 9:00 AM – 5:00 PM" (medium)
//  3. the provider's open-now flag (low; says nothing about future dates)
//  4. no data: assume open (low)
//
// A source that cannot be interpreted falls through to the next one.
package hours

import (
	"strconv"
	"time"

	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/models"
)

// Confidence is how much an availability answer can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Multiplier scales a slot score by confidence.
func (c Confidence) Multiplier() float64 {
	switch c {
	case ConfidenceHigh:
		return 1.0
	case ConfidenceMedium:
		return 0.9
	default:
		return 0.7
	}
}

// Source names the data an availability answer came from.
type Source string

const (
	SourcePeriods     Source = "periods"
	SourceWeekdayText Source = "weekday_text"
	SourceOpenNow     Source = "open_now"
	SourceDefault     Source = "default"
)

// Availability is the answer to "is this place open during this slot".
type Availability struct {
	IsOpen     bool       `json:"is_open"`
	Confidence Confidence `json:"confidence"`
	Source     Source     `json:"source"`
}

const (
	minutesPerDay  = 24 * 60
	minutesPerWeek = 7 * minutesPerDay
)

// IsOpenDuringSlot reports whether place is open at any point of slot on date.
func IsOpenDuringSlot(place *models.Place, slot models.TimeSlot, date models.Date) Availability {
	oh := place.OpeningHours
	if oh == nil {
		return Availability{IsOpen: true, Confidence: ConfidenceLow, Source: SourceDefault}
	}

	start, end := slot.Window()

	if open, ok := openFromPeriods(oh.Periods, date.Weekday(), start, end); ok {
		return Availability{IsOpen: open, Confidence: ConfidenceHigh, Source: SourcePeriods}
	}
	if open, ok := openFromWeekdayText(oh.WeekdayText, date.Weekday(), start, end); ok {
		return Availability{IsOpen: open, Confidence: ConfidenceMedium, Source: SourceWeekdayText}
	}
	if oh.OpenNow != nil {
		return Availability{IsOpen: *oh.OpenNow, Confidence: ConfidenceLow, Source: SourceOpenNow}
	}
	return Availability{IsOpen: true, Confidence: ConfidenceLow, Source: SourceDefault}
}

// openFromPeriods tests the slot against structured periods laid out on a
// minutes-of-week axis. ok is false when no period could be parsed.
func openFromPeriods(periods []models.Period, wd time.Weekday, start, end models.Clock) (open, ok bool) {
	day := int(wd)
	slotStart := day*minutesPerDay + start.Minutes()
	slotEnd := day*minutesPerDay + end.Minutes()

	for _, p := range periods {
		openMin, valid := parseHHMM(p.Open.Time)
		if !valid || p.Open.Day < 0 || p.Open.Day > 6 {
			continue
		}
		ok = true

		from := p.Open.Day*minutesPerDay + openMin
		var to int
		if p.Close == nil {
			// Open around the clock from the opening time.
			to = from + minutesPerDay
			if openMin == 0 && p.Open.Day == 0 && len(periods) == 1 {
				return true, true
			}
		} else {
			closeMin, validClose := parseHHMM(p.Close.Time)
			if !validClose || p.Close.Day < 0 || p.Close.Day > 6 {
				continue
			}
			to = p.Close.Day*minutesPerDay + closeMin
			if to <= from {
				to += minutesPerWeek
			}
		}

		// Check the period as laid out and shifted back a week, so Saturday
		// night periods that close on Sunday cover early Sunday slots.
		for _, shift := range []int{0, -minutesPerWeek} {
			if from+shift < slotEnd && to+shift > slotStart {
				return true, true
			}
		}
	}
	return false, ok
}

// parseHHMM parses a 24-hour "HHMM" time into minutes since midnight.
func parseHHMM(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	h, m := n/100, n%100
	if h > 24 || m > 59 || (h == 24 && m != 0) {
		return 0, false
	}
	return h*60 + m, true
}

// Evaluator scores slots for places using the category tables.
type Evaluator struct {
	catalog *catalog.Catalog
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{catalog: cat}
}

// CategorySlotScore is the static appropriateness of a category for a slot.
func (e *Evaluator) CategorySlotScore(cat catalog.Category, slot models.TimeSlot) float64 {
	return e.catalog.SlotFit(cat, slot)
}

// SlotScore combines category appropriateness with opening-hours confidence.
// It is 0 whenever the place is closed during the slot.
func (e *Evaluator) SlotScore(place *models.Place, slot models.TimeSlot, date models.Date) float64 {
	avail := IsOpenDuringSlot(place, slot, date)
	if !avail.IsOpen {
		return 0
	}
	return e.CategorySlotScore(e.catalog.PrimaryCategory(place), slot) * avail.Confidence.Multiplier()
}

// Evaluation is the full answer for one place and slot.
type Evaluation struct {
	Slot          models.TimeSlot `json:"slot"`
	Availability  Availability    `json:"availability"`
	CategoryScore float64         `json:"category_score"`
	SlotScore     float64         `json:"slot_score"`
}

// Evaluate returns an Evaluation for every slot of date.
func (e *Evaluator) Evaluate(place *models.Place, date models.Date) []Evaluation {
	cat := e.catalog.PrimaryCategory(place)
	out := make([]Evaluation, 0, len(models.Slots))
	for _, slot := range models.Slots {
		avail := IsOpenDuringSlot(place, slot, date)
		ev := Evaluation{
			Slot:          slot,
			Availability:  avail,
			CategoryScore: e.CategorySlotScore(cat, slot),
		}
		if avail.IsOpen {
			ev.SlotScore = ev.CategoryScore * avail.Confidence.Multiplier()
		}
		out = append(out, ev)
	}
	return out
}
