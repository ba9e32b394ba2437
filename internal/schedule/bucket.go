// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package schedule

import (
	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/hours"
	"github.com/tomtom215/waypoint/internal/models"
)

// bucket assigns each place to a slot by category. A place never lands in a
// slot where it is confirmed closed. Preferred slots hold at most
// ceil(n/3)+1 places, except that nightlife always goes to the evening.
func (b *Builder) bucket(places []models.ScoredPlace, date models.Date) map[models.TimeSlot][]models.ScoredPlace {
	buckets := make(map[models.TimeSlot][]models.ScoredPlace, len(models.Slots))
	capacity := (len(places)+2)/3 + 1

	for i := range places {
		p := &places[i]
		open := openSlots(&p.Place, date)
		if len(open) == 0 {
			continue
		}

		slot, exempt := b.preferredSlot(b.catalog.PrimaryCategory(&p.Place), buckets, open)
		if !open[slot] || (!exempt && len(buckets[slot]) >= capacity) {
			slot = smallest(buckets, open)
		}
		buckets[slot] = append(buckets[slot], *p)
	}
	return buckets
}

// preferredSlot returns the category's preferred slot and whether it ignores
// the bucket capacity.
func (b *Builder) preferredSlot(cat catalog.Category, buckets map[models.TimeSlot][]models.ScoredPlace, open map[models.TimeSlot]bool) (models.TimeSlot, bool) {
	switch cat {
	case catalog.CategoryNightlife:
		return models.SlotEvening, true
	case catalog.CategoryCulture:
		return models.SlotMorning, false
	case catalog.CategoryNature:
		if len(buckets[models.SlotAfternoon]) < len(buckets[models.SlotMorning]) {
			return models.SlotAfternoon, false
		}
		return models.SlotMorning, false
	case catalog.CategoryFood:
		return models.SlotEvening, false
	case catalog.CategoryShopping:
		return models.SlotAfternoon, false
	default:
		return smallest(buckets, open), false
	}
}

// smallest returns the open slot with the fewest places, earliest on ties.
func smallest(buckets map[models.TimeSlot][]models.ScoredPlace, open map[models.TimeSlot]bool) models.TimeSlot {
	best := models.TimeSlot("")
	for _, slot := range models.Slots {
		if !open[slot] {
			continue
		}
		if best == "" || len(buckets[slot]) < len(buckets[best]) {
			best = slot
		}
	}
	if best == "" {
		return models.SlotMorning
	}
	return best
}

// openSlots returns the slots during which the place is not confirmed closed.
// Without a date every slot is considered open.
func openSlots(p *models.Place, date models.Date) map[models.TimeSlot]bool {
	open := make(map[models.TimeSlot]bool, len(models.Slots))
	for _, slot := range models.Slots {
		if date.IsZero() || hours.IsOpenDuringSlot(p, slot, date).IsOpen {
			open[slot] = true
		}
	}
	return open
}
