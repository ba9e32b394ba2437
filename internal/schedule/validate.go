// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package schedule

import (
	"fmt"

	"github.com/tomtom215/waypoint/internal/models"
)

// Advisory thresholds.
var (
	earliestComfortableStart = models.At(7, 0)
	latestComfortableEnd     = models.At(23, 0)
)

const longGapMinutes = 120

// Validate reports overlaps, very early starts, very late ends and gaps longer
// than two hours between consecutive activities. Activities must be in day
// order. The result is diagnostic only.
func Validate(activities []models.Activity) []models.Warning {
	if len(activities) == 0 {
		return nil
	}

	var warnings []models.Warning
	first := activities[0].When()
	if first.Start < earliestComfortableStart {
		warnings = append(warnings, models.Warning{
			Kind:    models.WarningEarlyStart,
			Message: fmt.Sprintf("Day starts at %s, before %s", first.Start, earliestComfortableStart),
		})
	}

	for i := 1; i < len(activities); i++ {
		prev, next := activities[i-1].When(), activities[i].When()
		switch gap := int(next.Start - prev.End); {
		case gap < 0:
			warnings = append(warnings, models.Warning{
				Kind:    models.WarningOverlap,
				Message: fmt.Sprintf("Activity at %s starts before the previous one ends at %s", next.Start, prev.End),
			})
		case gap > longGapMinutes:
			warnings = append(warnings, models.Warning{
				Kind:    models.WarningLongGap,
				Message: fmt.Sprintf("%d minute gap between %s and %s", gap, prev.End, next.Start),
			})
		}
	}

	last := activities[len(activities)-1].When()
	if last.End > latestComfortableEnd {
		warnings = append(warnings, models.Warning{
			Kind:    models.WarningLateEnd,
			Message: fmt.Sprintf("Day ends at %s, after %s", last.End, latestComfortableEnd),
		})
	}
	return warnings
}
