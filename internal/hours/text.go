// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package hours

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/waypoint/internal/models"
)

// timeRangePattern matches "9:00 AM – 5:00 PM", "11 AM - 2:30 PM", "18:00-23:30"
// and "5 – 10 PM". Groups: start hour, start minute, start meridiem, end hour,
// end minute, end meridiem.
var timeRangePattern = regexp.MustCompile(
	`(?i)(\d{1,2})(?:[:.](\d{2}))?\s*([ap]\.?m\.?)?\s*(?:-|–|—|to)\s*(\d{1,2})(?:[:.](\d{2}))?\s*([ap]\.?m\.?)?`)

var textSpaces = strings.NewReplacer("\u202f", " ", "\u2009", " ", "\u00a0", " ")

// openFromWeekdayText finds the line for wd ("Monday: ...") and tests the slot
// against the ranges on it. ok is false when there is no line for the day or
// the line cannot be interpreted.
func openFromWeekdayText(lines []string, wd time.Weekday, start, end models.Clock) (open, ok bool) {
	body, found := lineFor(lines, wd)
	if !found {
		return false, false
	}
	body = strings.ToLower(strings.TrimSpace(textSpaces.Replace(body)))

	switch {
	case body == "":
		return false, false
	case strings.Contains(body, "open 24 hours"), strings.Contains(body, "24 hours"), body == "24/7":
		return true, true
	case strings.Contains(body, "closed"):
		return false, true
	}

	matches := timeRangePattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return false, false
	}

	parsed := false
	for _, m := range matches {
		from, to, valid := parseRange(m)
		if !valid {
			continue
		}
		parsed = true
		if from < end.Minutes() && to > start.Minutes() {
			return true, true
		}
	}
	return false, parsed
}

// lineFor returns the text after the "<Weekday>:" prefix of the matching line.
func lineFor(lines []string, wd time.Weekday) (string, bool) {
	name := strings.ToLower(wd.String())
	short := name[:3]
	for _, line := range lines {
		head, body, hasColon := strings.Cut(line, ":")
		if !hasColon {
			continue
		}
		head = strings.ToLower(strings.TrimSpace(head))
		if head == name || head == short {
			return body, true
		}
	}
	return "", false
}

// parseRange converts one regexp match into [from, to) minutes since midnight.
// A range that closes at or before it opens runs past midnight.
func parseRange(m []string) (from, to int, ok bool) {
	startMer, endMer := meridiem(m[3]), meridiem(m[6])
	if startMer == "" {
		startMer = endMer
	}

	from, ok = toMinutes(m[1], m[2], startMer)
	if !ok {
		return 0, 0, false
	}
	to, ok = toMinutes(m[4], m[5], endMer)
	if !ok {
		return 0, 0, false
	}

	// "11 - 2 PM" inherits PM for the start, which puts 23:00 after 14:00;
	// the morning reading is the intended one.
	if m[3] == "" && endMer == "pm" && from > to {
		from -= 12 * 60
	}
	if to <= from {
		to += minutesPerDay
	}
	return from, to, true
}

func meridiem(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, ".", ""))
	switch s {
	case "am", "pm":
		return s
	}
	return ""
}

func toMinutes(hour, minute, mer string) (int, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return 0, false
	}
	m := 0
	if minute != "" {
		if m, err = strconv.Atoi(minute); err != nil || m > 59 {
			return 0, false
		}
	}

	switch mer {
	case "am":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h > 24 {
			return 0, false
		}
	}
	return h*60 + m, true
}
