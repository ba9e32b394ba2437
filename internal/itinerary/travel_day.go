// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package itinerary

import (
	"fmt"

	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/travel"
)

// Travel day timing.
var (
	travelDeparture = models.At(9, 0)
	freeTimeUntil   = models.At(18, 0)
)

// unknownTravelMinutes sizes a leg between cities whose locations are unknown.
const unknownTravelMinutes = 180

// travelDay builds the day spent driving from the city at from to the city at to.
func (p *planner) travelDay(date models.Date, from, to int) models.ItineraryDay {
	origin, dest := p.req.Cities[from], p.req.Cities[to]
	day := models.ItineraryDay{Date: date, City: dest.Name, IsTravelDay: true}

	leg := models.TravelLeg{From: origin.Name, To: dest.Name}
	if a, b := p.centres[from], p.centres[to]; a != nil && b != nil {
		leg.Segment = p.gen.travel.Segment(travel.SegmentRequest{
			Origin:      *a,
			Destination: *b,
			Mode:        models.ModeDriving,
		})
	} else {
		leg.Segment = models.TravelSegment{
			Mode:                models.ModeDriving,
			BaseDurationMinutes: unknownTravelMinutes,
			DurationMinutes:     unknownTravelMinutes,
		}
	}

	arrival := travelDeparture.Add(leg.Segment.DurationMinutes)
	leg.Timing = models.Timing{
		Slot:            slotAt(travelDeparture),
		Order:           1,
		Start:           travelDeparture,
		End:             arrival,
		DurationMinutes: leg.Segment.DurationMinutes,
	}
	day.SetSlot(leg.Slot, append(day.Slot(leg.Slot), leg))

	activities := []models.Activity{leg}
	if arrival < freeTimeUntil {
		free := models.FreeTime{
			Timing: models.Timing{
				Slot:            slotAt(arrival),
				Order:           2,
				Start:           arrival,
				End:             freeTimeUntil,
				DurationMinutes: int(freeTimeUntil - arrival),
			},
			Note: fmt.Sprintf("Settle in and explore %s", dest.Name),
		}
		day.SetSlot(free.Slot, append(day.Slot(free.Slot), free))
		activities = append(activities, free)
	}

	day.Summary = models.DaySummary{
		Start:         travelDeparture,
		End:           activities[len(activities)-1].When().End,
		TravelMinutes: leg.Segment.DurationMinutes,
		Text:          travelSummary(&leg),
	}
	day.Summary.ActiveHours = float64(day.Summary.End-day.Summary.Start) / 60

	p.summary.TravelDays++
	p.summary.TotalDrivingKm += leg.Segment.DistanceKm
	p.summary.TotalDrivingMinutes += leg.Segment.DurationMinutes
	return day
}

// slotAt returns the slot whose window contains c. Times before the morning
// window count as morning; times after the evening window count as evening.
func slotAt(c models.Clock) models.TimeSlot {
	for _, s := range models.Slots {
		if _, end := s.Window(); c < end {
			return s
		}
	}
	return models.SlotEvening
}

func travelSummary(leg *models.TravelLeg) string {
	if leg.Segment.DistanceKm == 0 {
		return fmt.Sprintf("Travel day from %s to %s, about %s by car", leg.From, leg.To, formatMinutes(leg.Segment.DurationMinutes))
	}
	return fmt.Sprintf("Travel day from %s to %s: %.0f km, about %s by car",
		leg.From, leg.To, leg.Segment.DistanceKm, formatMinutes(leg.Segment.DurationMinutes))
}

func formatMinutes(m int) string {
	switch {
	case m < 60:
		return fmt.Sprintf("%d min", m)
	case m%60 == 0:
		return fmt.Sprintf("%dh", m/60)
	default:
		return fmt.Sprintf("%dh %02dm", m/60, m%60)
	}
}
