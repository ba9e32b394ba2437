// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package itinerary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/places"
	"github.com/tomtom215/waypoint/internal/schedule"
	"github.com/tomtom215/waypoint/internal/scoring"
	"github.com/tomtom215/waypoint/internal/travel"
)

var (
	monday   = models.NewDate(2026, time.October, 12)
	parisLoc = &models.Coordinates{Lat: 48.8566, Lng: 2.3522}
	lyonLoc  = &models.Coordinates{Lat: 45.7640, Lng: 4.8357}
)

func newTestGenerator(t *testing.T, searcher places.Searcher) *Generator {
	t.Helper()
	cat := catalog.Default()
	logger := logging.NewTestLogger(io.Discard)
	scorer := scoring.New(cat)
	calc := travel.NewCalculator(cat, nil, logger)
	return NewGenerator(cat, scorer, schedule.NewBuilder(cat, scorer, calc, logger), calc, searcher, logger)
}

func place(id string, lat, lng float64, types ...string) models.Place {
	return models.Place{ID: id, Name: id, Location: &models.Coordinates{Lat: lat, Lng: lng}, Types: types, Rating: 4.2}
}

// cityPlaces returns n places spread around centre, cycling through types.
func cityPlaces(prefix string, centre *models.Coordinates, n int) []models.Place {
	types := []string{"museum", "park", "restaurant", "clothing_store", "tourist_attraction", "cafe"}
	out := make([]models.Place, n)
	for i := range out {
		out[i] = place(fmt.Sprintf("%s-%02d", prefix, i),
			centre.Lat+float64(i%4)*0.003, centre.Lng+float64(i/4)*0.003, types[i%len(types)])
	}
	return out
}

// assertSlotsOrdered checks that activities within each slot are strictly
// time-ordered and do not overlap.
func assertSlotsOrdered(t *testing.T, it *models.Itinerary) {
	t.Helper()
	for d := range it.Days {
		for _, slot := range models.Slots {
			list := it.Days[d].Slot(slot)
			for i := 1; i < len(list); i++ {
				prev, next := list[i-1].When(), list[i].When()
				if next.Start <= prev.Start || next.Start < prev.End {
					t.Errorf("day %d %s: activity %d overlaps or precedes activity %d", d+1, slot, i, i-1)
				}
			}
		}
	}
}

func TestGenerate_MultiCity(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	req := &TripRequest{
		StartDate: monday,
		EndDate:   monday.AddDays(3),
		Cities: []CityStop{
			{Name: "Paris", Nights: 2, Location: parisLoc},
			{Name: "Lyon", Nights: 1, Location: lyonLoc},
		},
		Places: map[string][]models.Place{
			"paris": cityPlaces("paris", parisLoc, 12),
			"Lyon":  cityPlaces("lyon", lyonLoc, 6),
		},
		Favorites: []string{"paris-06"},
	}

	it, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	var kinds []string
	for _, d := range it.Days {
		kind := d.City
		if d.IsTravelDay {
			kind = "travel:" + d.City
		}
		kinds = append(kinds, kind)
	}
	if diff := cmp.Diff([]string{"Paris", "Paris", "travel:Lyon", "Lyon"}, kinds); diff != "" {
		t.Errorf("day sequence mismatch (-want +got):\n%s", diff)
	}
	for i, d := range it.Days {
		if d.DayNumber != i+1 || d.Date != monday.AddDays(i) {
			t.Errorf("day %d numbered %d dated %s", i+1, d.DayNumber, d.Date)
		}
	}

	seen := make(map[string]bool)
	for _, id := range it.PlaceIDs() {
		if seen[id] {
			t.Errorf("place %s scheduled twice", id)
		}
		seen[id] = true
	}
	assertSlotsOrdered(t, it)

	travelDay := it.Days[2]
	legs := 0
	for _, a := range travelDay.Activities() {
		if leg, ok := a.(models.TravelLeg); ok {
			legs++
			if leg.From != "Paris" || leg.To != "Lyon" || leg.Segment.Mode != models.ModeDriving {
				t.Errorf("travel leg = %s -> %s by %s", leg.From, leg.To, leg.Segment.Mode)
			}
		}
	}
	if legs != 1 {
		t.Errorf("travel day has %d legs, want 1", legs)
	}

	s := it.Summary
	if s.TotalDays != 4 || s.TravelDays != 1 || s.EmptyDays != 0 {
		t.Errorf("summary days = %d total, %d travel, %d empty; want 4, 1, 0", s.TotalDays, s.TravelDays, s.EmptyDays)
	}
	if s.TotalActivities != len(it.PlaceIDs()) {
		t.Errorf("TotalActivities = %d, want %d", s.TotalActivities, len(it.PlaceIDs()))
	}
	if s.Favorites != 1 || !seen["paris-06"] {
		t.Errorf("favourite not scheduled: Favorites = %d", s.Favorites)
	}
	if s.TotalDrivingKm < 400 || s.TotalDrivingMinutes <= 0 {
		t.Errorf("driving totals = %.1f km, %d min; want > 400 km", s.TotalDrivingKm, s.TotalDrivingMinutes)
	}
	total := 0
	for _, n := range s.CategoryBreakdown {
		total += n
	}
	if total != s.TotalActivities {
		t.Errorf("category breakdown sums to %d, want %d", total, s.TotalActivities)
	}

	if it.ID == "" || it.Metadata.Version != 1 || it.Metadata.Pace != models.PaceBalanced || it.Metadata.CorrelationID == "" {
		t.Errorf("metadata = %+v, id %q", it.Metadata, it.ID)
	}
}

func TestGenerate_ShortTransferHasFreeTime(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	versailles := &models.Coordinates{Lat: 48.8049, Lng: 2.1204}
	req := &TripRequest{
		StartDate: monday,
		EndDate:   monday.AddDays(1),
		Cities: []CityStop{
			{Name: "Paris", Nights: 1, Location: parisLoc},
			{Name: "Versailles", Nights: 1, Location: versailles},
		},
		Places: map[string][]models.Place{"paris": cityPlaces("paris", parisLoc, 4)},
	}

	it, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	day := it.Days[1]
	if !day.IsTravelDay {
		t.Fatalf("day 2 is not a travel day")
	}
	all := day.Activities()
	if len(all) != 2 {
		t.Fatalf("travel day has %d activities, want leg and free time", len(all))
	}
	leg, ok := all[0].(models.TravelLeg)
	if !ok {
		t.Fatalf("first activity is %s, want travel", all[0].Kind())
	}
	free, ok := all[1].(models.FreeTime)
	if !ok {
		t.Fatalf("second activity is %s, want free_time", all[1].Kind())
	}
	if leg.Start != models.At(9, 0) || free.Start != leg.End || free.End != models.At(18, 0) {
		t.Errorf("leg %s-%s, free time %s-%s", leg.Start, leg.End, free.Start, free.End)
	}
	if free.Order != 2 || leg.Order != 1 {
		t.Errorf("orders = %d, %d; want 1, 2", leg.Order, free.Order)
	}
}

func TestGenerate_EmptyCityDegrades(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	it, err := g.Generate(context.Background(), &TripRequest{
		StartDate: monday,
		EndDate:   monday.AddDays(1),
		Cities:    []CityStop{{Name: "Nowhere", Nights: 2}},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(it.Days) != 2 || it.Summary.EmptyDays != 2 {
		t.Fatalf("days = %d, empty = %d; want 2, 2", len(it.Days), it.Summary.EmptyDays)
	}
	want := "Couldn't find places to schedule in Nowhere for this day"
	if got := it.Days[0].Summary.Text; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestGenerate_SearchesMissingCities(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var queried []string
	searcher := places.SearchFunc(func(_ context.Context, q places.Query) ([]models.Place, error) {
		mu.Lock()
		queried = append(queried, q.City)
		mu.Unlock()
		if q.City == "Lyon" {
			return nil, errors.New("backend down")
		}
		return cityPlaces("paris", parisLoc, 6), nil
	})

	g := newTestGenerator(t, searcher)
	it, err := g.Generate(context.Background(), &TripRequest{
		StartDate: monday,
		EndDate:   monday.AddDays(2),
		Cities: []CityStop{
			{Name: "Paris", Nights: 1},
			{Name: "Lyon", Nights: 1},
		},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	mu.Lock()
	got := len(queried)
	mu.Unlock()
	if got != 2 {
		t.Errorf("searcher queried %d cities, want 2", got)
	}
	if it.Days[0].Summary.PlaceCount == 0 {
		t.Error("Paris day has no places")
	}
	if it.Days[2].Summary.PlaceCount != 0 {
		t.Error("Lyon day has places despite a failed search")
	}
}

func TestGenerate_ThemePrefersCategory(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	candidates := []models.Place{
		place("m1", 48.8606, 2.3376, "museum"),
		place("m2", 48.8610, 2.3380, "museum"),
		place("m3", 48.8615, 2.3390, "museum"),
		place("p1", 48.8635, 2.3275, "park"),
		place("p2", 48.8640, 2.3280, "garden"),
	}
	for i := range candidates[:3] {
		candidates[i].Rating = 4.9
		candidates[i].HiddenGemScore = 0.9
	}

	it, err := g.Generate(context.Background(), &TripRequest{
		StartDate: monday,
		EndDate:   monday,
		Cities:    []CityStop{{Name: "Paris", Nights: 1}},
		Pace:      models.PaceRelaxed,
		Places:    map[string][]models.Place{"Paris": candidates},
		Themes:    map[int]string{1: "nature"},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	var ids []string
	for _, v := range it.Days[0].PlaceVisits() {
		ids = append(ids, v.Place.ID)
	}
	if len(ids) != 2 || ids[0][0] != 'p' || ids[1][0] != 'p' {
		t.Errorf("themed day scheduled %v, want both parks", ids)
	}
	if it.Days[0].Theme != "nature" {
		t.Errorf("Theme = %q, want nature", it.Days[0].Theme)
	}
}

func TestGenerate_RelaxedPaceBounds(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	it, err := g.Generate(context.Background(), &TripRequest{
		StartDate: monday,
		EndDate:   monday.AddDays(2),
		Cities:    []CityStop{{Name: "Paris", Nights: 3, Location: parisLoc}},
		Pace:      models.PaceRelaxed,
		Places:    map[string][]models.Place{"Paris": cityPlaces("paris", parisLoc, 10)},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	for _, d := range it.Days {
		if n := len(d.PlaceVisits()); n > 3 {
			t.Errorf("day %d has %d visits, want at most 3", d.DayNumber, n)
		}
		if n := len(d.Summary.Meals); n > 2 {
			t.Errorf("day %d has %d meals, want at most 2", d.DayNumber, n)
		}
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	t.Parallel()

	city := []CityStop{{Name: "Paris", Nights: 1}}
	tests := []struct {
		name string
		req  TripRequest
	}{
		{name: "end before start", req: TripRequest{StartDate: monday, EndDate: monday.AddDays(-1), Cities: city}},
		{name: "missing dates", req: TripRequest{Cities: city}},
		{name: "no cities", req: TripRequest{StartDate: monday, EndDate: monday}},
		{name: "negative nights", req: TripRequest{StartDate: monday, EndDate: monday, Cities: []CityStop{{Name: "Paris", Nights: -1}}}},
		{name: "unnamed city", req: TripRequest{StartDate: monday, EndDate: monday, Cities: []CityStop{{Nights: 1}}}},
		{name: "too long", req: TripRequest{StartDate: monday, EndDate: monday.AddDays(MaxTripDays), Cities: city}},
		{name: "bad pace", req: TripRequest{StartDate: monday, EndDate: monday, Cities: city, Pace: "frantic"}},
		{name: "bad mode", req: TripRequest{StartDate: monday, EndDate: monday, Cities: city, Mode: "teleport"}},
	}

	g := newTestGenerator(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := g.Generate(context.Background(), &tt.req); !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("Generate() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	ok := TripRequest{StartDate: monday, EndDate: monday.AddDays(MaxTripDays - 1), Cities: city}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() of a %d day trip: %v", MaxTripDays, err)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	t.Parallel()

	blocking := places.SearchFunc(func(ctx context.Context, _ places.Query) ([]models.Place, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	g := newTestGenerator(t, blocking)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Generate(ctx, &TripRequest{
		StartDate: monday,
		EndDate:   monday,
		Cities:    []CityStop{{Name: "Paris", Nights: 1}},
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Generate() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRegenerate(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	req := &TripRequest{
		StartDate: monday,
		EndDate:   monday,
		Cities:    []CityStop{{Name: "Paris", Nights: 1}},
		Places:    map[string][]models.Place{"Paris": cityPlaces("paris", parisLoc, 4)},
	}

	first, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	second, err := g.Regenerate(context.Background(), first, req)
	if err != nil {
		t.Fatalf("Regenerate() error: %v", err)
	}
	if second.ID != first.ID || second.Metadata.Version != 2 || first.Metadata.Version != 1 {
		t.Errorf("versions = %d -> %d, ids %s -> %s", first.Metadata.Version, second.Metadata.Version, first.ID, second.ID)
	}

	if _, err := g.Regenerate(context.Background(), nil, req); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Regenerate(nil) error = %v, want ErrInvalidInput", err)
	}
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()

	tests := map[int]string{45: "45 min", 60: "1h", 125: "2h 05m"}
	for in, want := range tests {
		if got := formatMinutes(in); got != want {
			t.Errorf("formatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerate_RepeatedCandidateScheduledOnce(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, nil)
	louvre := place("louvre", 48.8606, 2.3376, "museum")
	it, err := g.Generate(context.Background(), &TripRequest{
		StartDate: monday,
		EndDate:   monday,
		Cities:    []CityStop{{Name: "Paris", Nights: 1, Location: parisLoc}},
		Pace:      models.PaceBalanced,
		Places: map[string][]models.Place{
			"Paris": {louvre, louvre, place("park", 48.8635, 2.3275, "park")},
		},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	counts := map[string]int{}
	for _, d := range it.Days {
		for _, v := range d.PlaceVisits() {
			counts[v.Place.ID]++
		}
	}
	for id, n := range counts {
		if n > 1 {
			t.Errorf("place %s scheduled %d times in one itinerary", id, n)
		}
	}
	if counts["louvre"] != 1 {
		t.Errorf("louvre scheduled %d times, want once", counts["louvre"])
	}
	if it.Summary.TotalActivities != len(counts) {
		t.Errorf("TotalActivities = %d, want %d", it.Summary.TotalActivities, len(counts))
	}
}
