// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package itinerary plans multi-day, multi-city trips.
//
// The generator walks the trip day by day. When a city's nights are used up
// and another city follows, it emits a travel day: one driving leg plus free
// time after arrival. Every other day ranks the city's unused places and
// hands them to the day schedule builder without route optimization. A place
// is scheduled at most once per trip.
//
// Only invalid input is an error. Failed place searches and empty cities
// produce sparse days with an explanatory summary.
package itinerary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/places"
	"github.com/tomtom215/waypoint/internal/schedule"
	"github.com/tomtom215/waypoint/internal/scoring"
	"github.com/tomtom215/waypoint/internal/travel"
)

// Generator builds itineraries. It is safe for concurrent use.
type Generator struct {
	catalog  *catalog.Catalog
	scorer   *scoring.Scorer
	builder  *schedule.Builder
	travel   *travel.Calculator
	searcher places.Searcher
	logger   zerolog.Logger
	now      func() time.Time
}

// NewGenerator creates a Generator. searcher may be nil when every request
// carries its own places.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGenerator(
	cat *catalog.Catalog,
	scorer *scoring.Scorer,
	builder *schedule.Builder,
	calc *travel.Calculator,
	searcher places.Searcher,
	logger zerolog.Logger,
) *Generator {
	return &Generator{
		catalog:  cat,
		scorer:   scorer,
		builder:  builder,
		travel:   calc,
		searcher: searcher,
		logger:   logger.With().Str("component", "itinerary").Logger(),
		now:      time.Now,
	}
}

// Generate plans the trip described by req.
func (g *Generator) Generate(ctx context.Context, req *TripRequest) (it *models.Itinerary, err error) {
	start := time.Now()
	defer func() { metrics.RecordGeneration(time.Since(start), err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	logger := g.logger.With().Str("correlation_id", logging.CorrelationIDFromContext(ctx)).Logger()

	candidates, err := g.candidates(ctx, req, logger)
	if err != nil {
		return nil, err
	}

	p := &planner{
		gen:        g,
		req:        req,
		candidates: candidates,
		centres:    cityCentres(req.Cities, candidates),
		favorites:  toSet(req.Favorites),
		used:       make(map[string]bool),
		summary:    models.ItinerarySummary{CategoryBreakdown: make(map[string]int)},
	}
	days, err := p.run(ctx)
	if err != nil {
		return nil, err
	}

	it = &models.Itinerary{
		ID:        uuid.New().String(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Cities:    cityNames(req.Cities),
		Days:      days,
		Summary:   p.summary,
		Metadata: models.ItineraryMetadata{
			Pace:          req.pace(),
			Version:       1,
			GeneratedAt:   g.now().UTC(),
			CorrelationID: logging.CorrelationIDFromContext(ctx),
		},
	}

	logger.Info().
		Str("itinerary_id", it.ID).
		Int("days", it.Summary.TotalDays).
		Int("travel_days", it.Summary.TravelDays).
		Int("activities", it.Summary.TotalActivities).
		Dur("duration", time.Since(start)).
		Msg("Generated itinerary")
	return it, nil
}

// Regenerate plans req again as the next version of prev. The previous
// itinerary is not modified.
func (g *Generator) Regenerate(ctx context.Context, prev *models.Itinerary, req *TripRequest) (*models.Itinerary, error) {
	if prev == nil {
		return nil, fmt.Errorf("%w: no previous itinerary to regenerate", models.ErrInvalidInput)
	}
	it, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if prev.ID != "" {
		it.ID = prev.ID
	}
	it.Metadata.Version = prev.Metadata.Version + 1
	return it, nil
}

// candidates returns each city's places keyed by normalized name. Provided
// places are used as-is; the rest are searched concurrently. A failed search
// leaves the city empty.
func (g *Generator) candidates(ctx context.Context, req *TripRequest, logger zerolog.Logger) (map[string][]models.Place, error) {
	out := make(map[string][]models.Place, len(req.Cities))
	for name, list := range req.Places {
		out[places.NormalizeCity(name)] = list
	}

	type fetched struct {
		key   string
		found []models.Place
	}
	var toFetch []CityStop
	seen := make(map[string]bool)
	for _, c := range req.Cities {
		key := places.NormalizeCity(c.Name)
		if _, ok := out[key]; ok || seen[key] {
			continue
		}
		seen[key] = true
		toFetch = append(toFetch, c)
	}
	if len(toFetch) == 0 || g.searcher == nil {
		return out, ctx.Err()
	}

	results := make([]fetched, len(toFetch))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, c := range toFetch {
		eg.Go(func() error {
			q := places.Query{City: c.Name, Location: c.Location, RadiusMeters: req.RadiusMeters}
			found, err := g.searcher.Search(egCtx, q)
			metrics.RecordPlaceFetch(err)
			if err != nil {
				if ctxErr := egCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn().Err(err).Str("city", c.Name).Msg("Place search failed, continuing without candidates")
				found = nil
			}
			results[i] = fetched{key: places.NormalizeCity(c.Name), found: found}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range results {
		out[r.key] = r.found
	}
	return out, nil
}

// planner holds the state of one generation run.
type planner struct {
	gen        *Generator
	req        *TripRequest
	candidates map[string][]models.Place
	centres    []*models.Coordinates
	favorites  map[string]bool
	used       map[string]bool
	summary    models.ItinerarySummary
}

func (p *planner) run(ctx context.Context) ([]models.ItineraryDay, error) {
	total := p.req.Days()
	days := make([]models.ItineraryDay, 0, total)

	cityIdx, nights := 0, 0
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		date := p.req.StartDate.AddDays(i)

		var day models.ItineraryDay
		if nights >= p.req.Cities[cityIdx].Nights && cityIdx+1 < len(p.req.Cities) {
			day = p.travelDay(date, cityIdx, cityIdx+1)
			cityIdx++
			// The arrival night counts towards the new city.
			nights = 1
		} else {
			day = p.cityDay(i+1, date, cityIdx)
			nights++
		}
		day.DayNumber = i + 1
		days = append(days, day)

		isEmpty := !day.IsTravelDay && day.Summary.PlaceCount == 0
		metrics.RecordDay(day.IsTravelDay, isEmpty)
		p.summary.TotalDays++
		if isEmpty {
			p.summary.EmptyDays++
		}
	}
	return days, nil
}

// cityDay schedules one sightseeing day in the city at cityIdx.
func (p *planner) cityDay(dayNumber int, date models.Date, cityIdx int) models.ItineraryDay {
	city := p.req.Cities[cityIdx]
	theme := p.req.Themes[dayNumber]

	pool := make([]models.Place, 0)
	pooled := make(map[string]bool)
	for _, pl := range p.candidates[places.NormalizeCity(city.Name)] {
		if p.used[pl.ID] || pooled[pl.ID] {
			continue
		}
		pooled[pl.ID] = true
		pool = append(pool, pl)
	}
	ranked := p.rank(pool, theme)

	noRoute := false
	dayReq := schedule.DayRequest{
		Pace:          p.req.pace(),
		Start:         p.centres[cityIdx],
		Date:          date,
		City:          city.Name,
		OptimizeRoute: &noRoute,
		Mode:          p.req.Mode,
	}
	opts, err := dayReq.Options()
	if err != nil {
		// Validate has already checked pace and mode.
		p.gen.logger.Error().Err(err).Msg("Unexpected day option error")
	}
	opts.Favorites = p.favorites

	built := p.gen.builder.Distribute(ranked, opts)
	day := built.ItineraryDay
	day.Theme = theme

	for _, v := range day.PlaceVisits() {
		p.used[v.Place.ID] = true
		p.summary.TotalActivities++
		if v.Place.IsHiddenGem {
			p.summary.HiddenGems++
		}
		if v.IsFavorite {
			p.summary.Favorites++
		}
		p.summary.CategoryBreakdown[string(p.gen.catalog.PrimaryCategory(&v.Place))]++
	}
	return day
}

// rank orders places favourites first, then theme matches, then by combined
// score.
func (p *planner) rank(pool []models.Place, theme string) []models.ScoredPlace {
	ranked := p.gen.scorer.Rank(pool, p.req.Preferences, p.favorites)
	if theme == "" {
		return ranked
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		fi, fj := p.favorites[ranked[i].Place.ID], p.favorites[ranked[j].Place.ID]
		if fi != fj {
			return fi
		}
		return p.matchesTheme(&ranked[i].Place, theme) && !p.matchesTheme(&ranked[j].Place, theme)
	})
	return ranked
}

func (p *planner) matchesTheme(place *models.Place, theme string) bool {
	primary := p.gen.catalog.PrimaryCategory(place)
	if string(primary) == theme {
		return true
	}
	for _, key := range p.gen.catalog.InterestKeys(primary) {
		if key == theme {
			return true
		}
	}
	return false
}

func cityNames(cities []CityStop) []string {
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}
	return names
}

// cityCentres returns each city's location, falling back to the mean of its
// candidates' coordinates.
func cityCentres(cities []CityStop, candidates map[string][]models.Place) []*models.Coordinates {
	out := make([]*models.Coordinates, len(cities))
	for i, c := range cities {
		if c.Location != nil {
			out[i] = c.Location
			continue
		}
		var lat, lng float64
		n := 0
		for _, pl := range candidates[places.NormalizeCity(c.Name)] {
			if pl.HasLocation() {
				lat += pl.Location.Lat
				lng += pl.Location.Lng
				n++
			}
		}
		if n > 0 {
			out[i] = &models.Coordinates{Lat: lat / float64(n), Lng: lng / float64(n)}
		}
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
