// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package schedule turns a city's candidate places into one timed day.
//
// Building a day trims the candidates to the pace and buckets them into
// morning/afternoon/evening. Each bucket is ordered by greedy nearest
// neighbour, then the clock walks forward through every stop, inserting lunch
// and dinner. When fewer stops fit than the pace minimum, the next ranked
// candidates are tried in turn.
// Validate reports advisory warnings about the result and never blocks it.
package schedule

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/hours"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/scoring"
	"github.com/tomtom215/waypoint/internal/travel"
)

// Defaults for optional request fields.
const (
	DefaultBufferMinutes = 15

	lunchMinutes  = 60
	dinnerMinutes = 90
)

var (
	defaultDayStart = models.At(9, 0)
	defaultDayEnd   = models.At(24, 0)
	lunchAnchor     = models.At(12, 30)
	dinnerAnchor    = models.At(19, 30)
)

// DayRequest asks for one scheduled day.
type DayRequest struct {
	Places      []models.Place          `json:"places" validate:"dive"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
	Pace        models.Pace             `json:"pace,omitempty" validate:"omitempty,oneof=relaxed balanced packed"`
	Start       *models.Coordinates     `json:"start,omitempty"`
	Date        models.Date             `json:"date"`
	City        string                  `json:"city,omitempty"`

	// DayStart and DayEnd default to 09:00 and 24:00.
	DayStart *models.Clock `json:"day_start,omitempty"`
	DayEnd   *models.Clock `json:"day_end,omitempty"`

	// SkipLunch and SkipDinner disable the meal blocks.
	SkipLunch  bool `json:"skip_lunch,omitempty"`
	SkipDinner bool `json:"skip_dinner,omitempty"`

	Favorites     []string          `json:"favorites,omitempty"`
	OptimizeRoute *bool             `json:"optimize_route,omitempty"`
	Mode          models.TravelMode `json:"mode,omitempty" validate:"omitempty,oneof=driving walking transit cycling"`
	BufferMinutes *int              `json:"buffer_minutes,omitempty" validate:"omitempty,gte=0,lte=120"`
}

// Options controls Distribute. Zero values are not defaults; use
// DayRequest.Options to fill them.
type Options struct {
	Pace          models.Pace
	Start         *models.Coordinates
	Date          models.Date
	City          string
	DayStart      models.Clock
	DayEnd        models.Clock
	Lunch         bool
	Dinner        bool
	Favorites     map[string]bool
	OptimizeRoute bool
	// Mode is the intra-day travel mode. Empty picks a mode per hop by distance.
	Mode          models.TravelMode
	BufferMinutes int
}

// Options resolves the request's optional fields to concrete options.
func (r *DayRequest) Options() (Options, error) {
	opts := Options{
		Pace:          r.Pace,
		Start:         r.Start,
		Date:          r.Date,
		City:          r.City,
		DayStart:      defaultDayStart,
		DayEnd:        defaultDayEnd,
		Lunch:         !r.SkipLunch,
		Dinner:        !r.SkipDinner,
		Favorites:     toSet(r.Favorites),
		OptimizeRoute: true,
		Mode:          r.Mode,
		BufferMinutes: DefaultBufferMinutes,
	}
	if opts.Pace == "" {
		opts.Pace = models.PaceBalanced
	}
	if !opts.Pace.Valid() {
		return opts, fmt.Errorf("%w: unknown pace %q", models.ErrInvalidInput, r.Pace)
	}
	if r.DayStart != nil {
		opts.DayStart = *r.DayStart
	}
	if r.DayEnd != nil {
		opts.DayEnd = *r.DayEnd
	}
	if opts.DayEnd <= opts.DayStart {
		return opts, fmt.Errorf("%w: day end %s is not after day start %s", models.ErrInvalidInput, opts.DayEnd, opts.DayStart)
	}
	if r.OptimizeRoute != nil {
		opts.OptimizeRoute = *r.OptimizeRoute
	}
	if r.BufferMinutes != nil {
		if *r.BufferMinutes < 0 {
			return opts, fmt.Errorf("%w: negative buffer", models.ErrInvalidInput)
		}
		opts.BufferMinutes = *r.BufferMinutes
	}
	if opts.Mode != "" && !opts.Mode.Valid() {
		return opts, fmt.Errorf("%w: unknown travel mode %q", models.ErrInvalidInput, opts.Mode)
	}
	return opts, nil
}

// DaySchedule is a built day plus the candidates that did not fit.
type DaySchedule struct {
	models.ItineraryDay
	// Unscheduled lists selected places that ran out of slot or day time.
	Unscheduled []string `json:"unscheduled,omitempty"`
}

// Builder builds single days. It is safe for concurrent use.
type Builder struct {
	catalog *catalog.Catalog
	scorer  *scoring.Scorer
	travel  *travel.Calculator
	logger  zerolog.Logger
}

// NewBuilder creates a Builder.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuilder(cat *catalog.Catalog, scorer *scoring.Scorer, calc *travel.Calculator, logger zerolog.Logger) *Builder {
	return &Builder{
		catalog: cat,
		scorer:  scorer,
		travel:  calc,
		logger:  logger.With().Str("component", "schedule").Logger(),
	}
}

// Build scores and ranks the request's places, then distributes them.
func (b *Builder) Build(ctx context.Context, req *DayRequest) (*DaySchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts, err := req.Options()
	if err != nil {
		return nil, err
	}
	ranked := b.scorer.Rank(req.Places, req.Preferences, opts.Favorites)
	return b.Distribute(ranked, opts), nil
}

// Distribute schedules already-ranked candidates (favourites first, best first).
func (b *Builder) Distribute(ranked []models.ScoredPlace, opts Options) *DaySchedule {
	candidates := b.dropAlwaysClosed(uniqueByID(ranked), opts.Date)
	pace := b.catalog.Pace(opts.Pace)
	selected := trim(candidates, pace, opts.Favorites)
	day := b.layout(selected, opts)

	// Backfill from the rest of the ranking while the pace minimum is unmet.
	// A candidate is kept only if it raises the number of scheduled places.
	for next := len(selected); day.Summary.PlaceCount < pace.Min && next < len(candidates); next++ {
		trial := append(selected[:len(selected):len(selected)], candidates[next])
		if attempt := b.layout(trial, opts); attempt.Summary.PlaceCount > day.Summary.PlaceCount {
			selected, day = trial, attempt
		}
	}
	day.Warnings = Validate(day.Activities())

	b.logger.Debug().
		Str("city", opts.City).
		Str("date", opts.Date.String()).
		Int("candidates", len(ranked)).
		Int("scheduled", day.Summary.PlaceCount).
		Int("unscheduled", len(day.Unscheduled)).
		Msg("Built day schedule")
	return day
}

// layout buckets, orders and times the selected places.
func (b *Builder) layout(selected []models.ScoredPlace, opts Options) *DaySchedule {
	buckets := b.bucket(selected, opts.Date)
	if opts.OptimizeRoute {
		orderBuckets(buckets, opts.Start)
	}
	day := &DaySchedule{ItineraryDay: models.ItineraryDay{Date: opts.Date, City: opts.City}}
	b.walkClock(day, buckets, opts)
	return day
}

// uniqueByID keeps the first occurrence of each place ID.
func uniqueByID(ranked []models.ScoredPlace) []models.ScoredPlace {
	seen := make(map[string]bool, len(ranked))
	out := make([]models.ScoredPlace, 0, len(ranked))
	for i := range ranked {
		if seen[ranked[i].Place.ID] {
			continue
		}
		seen[ranked[i].Place.ID] = true
		out = append(out, ranked[i])
	}
	return out
}

// dropAlwaysClosed removes places confirmed closed in every slot of date.
func (b *Builder) dropAlwaysClosed(ranked []models.ScoredPlace, date models.Date) []models.ScoredPlace {
	if date.IsZero() {
		return ranked
	}
	out := make([]models.ScoredPlace, 0, len(ranked))
	for i := range ranked {
		for _, slot := range models.Slots {
			if hours.IsOpenDuringSlot(&ranked[i].Place, slot, date).IsOpen {
				out = append(out, ranked[i])
				break
			}
		}
	}
	return out
}

// trim keeps max(target, min(favourites, max)) places, in rank order.
func trim(ranked []models.ScoredPlace, pace catalog.PaceTarget, favorites map[string]bool) []models.ScoredPlace {
	favCount := 0
	for i := range ranked {
		if favorites[ranked[i].Place.ID] {
			favCount++
		}
	}
	count := pace.Target
	if n := min(favCount, pace.Max); n > count {
		count = n
	}
	if count > len(ranked) {
		count = len(ranked)
	}
	return ranked[:count]
}

// walkClock assigns times to every bucketed stop and inserts meals.
func (b *Builder) walkClock(day *DaySchedule, buckets map[models.TimeSlot][]models.ScoredPlace, opts Options) {
	clock := opts.DayStart
	prev := opts.Start
	order := 0
	summary := &day.Summary

	for _, slot := range models.Slots {
		stops := buckets[slot]
		slotStart, slotEnd := slot.Window()
		if slot != models.SlotMorning && clock < slotStart {
			clock = slotStart
		}

		var list models.ActivityList
		if len(stops) > 0 {
			if meal, ok := b.mealFor(slot, clock, opts); ok {
				order++
				meal.Order = order
				list = append(list, meal)
				clock = meal.End
				summary.Meals = append(summary.Meals, meal.Meal)
			}
		}

		for i := range stops {
			stop := &stops[i]
			hop := b.hop(prev, stop.Place.Location, opts.Mode)
			travelMinutes := 0
			if hop != nil {
				travelMinutes = hop.DurationMinutes
			}

			start := clock.Add(travelMinutes)
			duration := b.catalog.PlaceVisitMinutes(&stop.Place)
			end := start.Add(duration)
			if start >= slotEnd || end > opts.DayEnd {
				day.Unscheduled = append(day.Unscheduled, stop.Place.ID)
				continue
			}

			order++
			list = append(list, models.PlaceVisit{
				Timing: models.Timing{
					Slot:            slot,
					Order:           order,
					Start:           start,
					End:             end,
					DurationMinutes: duration,
				},
				Place:              stop.Place,
				Score:              stop.Score.Combined,
				IsFavorite:         opts.Favorites[stop.Place.ID],
				TravelFromPrevious: hop,
			})

			summary.TravelMinutes += travelMinutes
			summary.BufferMinutes += opts.BufferMinutes
			summary.PlaceCount++
			clock = end.Add(opts.BufferMinutes)
			if stop.Place.HasLocation() {
				prev = stop.Place.Location
			}
		}
		day.SetSlot(slot, list)
	}

	summarize(day)
}

// mealFor returns the meal block that precedes slot, if any.
func (b *Builder) mealFor(slot models.TimeSlot, clock models.Clock, opts Options) (models.MealBreak, bool) {
	var anchor models.Clock
	var minutes int
	switch {
	case slot == models.SlotAfternoon && opts.Lunch:
		anchor, minutes = lunchAnchor, lunchMinutes
	case slot == models.SlotEvening && opts.Dinner:
		anchor, minutes = dinnerAnchor, dinnerMinutes
	default:
		return models.MealBreak{}, false
	}

	start := max(clock, anchor)
	return models.MealBreak{
		Timing: models.Timing{
			Slot:            slot,
			Start:           start,
			End:             start.Add(minutes),
			DurationMinutes: minutes,
		},
		Meal: slot.Meal(),
	}, true
}

// hop estimates travel from prev to next. It is nil when either end has no
// coordinates.
func (b *Builder) hop(prev, next *models.Coordinates, mode models.TravelMode) *models.Hop {
	if prev == nil || next == nil {
		return nil
	}
	if mode == "" {
		mode = travel.RecommendMode(travel.Haversine(*prev, *next))
	}
	return &models.Hop{
		Mode:            mode,
		DistanceKm:      math.Round(b.travel.RoadDistance(*prev, *next, mode)*100) / 100,
		DurationMinutes: b.travel.QuickEstimate(*prev, *next, mode),
	}
}

// summarize fills the day summary from the scheduled activities.
func summarize(day *DaySchedule) {
	s := &day.Summary
	all := day.Activities()
	if len(all) == 0 {
		s.Text = "No places could be scheduled for this day"
		if day.City != "" {
			s.Text = fmt.Sprintf("Couldn't find places to schedule in %s for this day", day.City)
		}
		return
	}

	s.Start = all[0].When().Start
	s.End = all[len(all)-1].When().End
	s.ActiveHours = math.Round(float64(s.End-s.Start)/60*10) / 10

	text := fmt.Sprintf("%d %s from %s to %s", s.PlaceCount, plural(s.PlaceCount, "place", "places"), s.Start, s.End)
	if len(s.Meals) > 0 {
		text += fmt.Sprintf(", %d %s", len(s.Meals), plural(len(s.Meals), "meal", "meals"))
	}
	if s.TravelMinutes > 0 {
		text += fmt.Sprintf(", %d min travel", s.TravelMinutes)
	}
	s.Text = text
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
