// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeSlot is one of the three daily scheduling slots.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// Slots lists the slots in day order.
var Slots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}

// Valid reports whether s is a known slot.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// Window returns the nominal wall-clock bounds of the slot.
func (s TimeSlot) Window() (start, end Clock) {
	switch s {
	case SlotMorning:
		return At(9, 0), At(12, 0)
	case SlotAfternoon:
		return At(12, 0), At(18, 0)
	default:
		return At(18, 0), At(23, 0)
	}
}

// Meal returns the meal associated with the slot.
func (s TimeSlot) Meal() MealType {
	switch s {
	case SlotMorning:
		return MealBreakfast
	case SlotAfternoon:
		return MealLunch
	default:
		return MealDinner
	}
}

// MealType names a meal break.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// Clock is a wall-clock time expressed in minutes since midnight. Values past
// 24:00 are allowed so that late schedules stay comparable.
type Clock int

// At returns the Clock for hour h and minute m.
func At(h, m int) Clock {
	return Clock(h*60 + m)
}

// ClockOf returns the wall-clock part of t.
func ClockOf(t time.Time) Clock {
	return At(t.Hour(), t.Minute())
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 47 {
		return 0, fmt.Errorf("invalid clock hour %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock minute %q", s)
	}
	return At(hour, minute), nil
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int { return int(c) }

// Add returns c shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock { return c + Clock(minutes) }

// On returns the instant of c on the given date, in the date's location.
func (c Clock) On(d Date) time.Time {
	return d.Time().Add(time.Duration(c) * time.Minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DateLayout is the wire format of Date.
const DateLayout = "2006-01-02"

// Date is a calendar day at midnight UTC.
type Date struct {
	t time.Time
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// Time returns midnight of the date.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// DaysUntil returns the number of calendar days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
