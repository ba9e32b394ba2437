// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package places

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

func parisPlaces() []models.Place {
	return []models.Place{
		{ID: "louvre", Name: "Louvre", Types: []string{"museum"}, Rating: 4.7, PriceLevel: 2,
			Location: &models.Coordinates{Lat: 48.8606, Lng: 2.3376}},
		{ID: "bistro", Name: "Le Bistro", Types: []string{"restaurant"}, Rating: 4.1, PriceLevel: 3,
			Location: &models.Coordinates{Lat: 48.8610, Lng: 2.3400}, IsHiddenGem: true},
		{ID: "versailles", Name: "Versailles", Types: []string{"tourist_attraction"}, Rating: 4.6,
			Location: &models.Coordinates{Lat: 48.8049, Lng: 2.1204}},
	}
}

func ids(found []models.Place) []string {
	out := make([]string, 0, len(found))
	for i := range found {
		out = append(out, found[i].ID)
	}
	return out
}

func TestQueryFilter(t *testing.T) {
	t.Parallel()

	center := &models.Coordinates{Lat: 48.8606, Lng: 2.3376}
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "no constraints", query: Query{}, want: []string{"louvre", "bistro", "versailles"}},
		{name: "radius", query: Query{Location: center, RadiusMeters: 2000}, want: []string{"louvre", "bistro"}},
		{name: "default radius", query: Query{Location: center}, want: []string{"louvre", "bistro"}},
		{name: "categories", query: Query{Categories: []string{"restaurant"}}, want: []string{"bistro"}},
		{name: "min rating", query: Query{Filters: Filters{MinRating: 4.5}}, want: []string{"louvre", "versailles"}},
		{name: "max price", query: Query{Filters: Filters{MaxPriceLevel: 2}}, want: []string{"louvre", "versailles"}},
		{name: "hidden gems", query: Query{Filters: Filters{HiddenGemsOnly: true}}, want: []string{"bistro"}},
		{name: "limit", query: Query{Filters: Filters{Limit: 2}}, want: []string{"louvre", "bistro"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ids(Filter(parisPlaces(), tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStaticSearcher(t *testing.T) {
	t.Parallel()

	s := NewStaticSearcher(map[string][]models.Place{
		"Paris": parisPlaces(),
		"Lyon":  {{ID: "fourviere", Types: []string{"church"}}},
	})

	if diff := cmp.Diff([]string{"lyon", "paris"}, s.Cities()); diff != "" {
		t.Errorf("Cities() mismatch (-want +got):\n%s", diff)
	}

	got, err := s.Search(context.Background(), Query{City: " PARIS ", Categories: []string{"museum"}})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff([]string{"louvre"}, ids(got)); diff != "" {
		t.Errorf("Search(paris) mismatch (-want +got):\n%s", diff)
	}

	got, err = s.Search(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("Search() without city returned %d places, want 4", len(got))
	}

	got, err = s.Search(context.Background(), Query{City: "Atlantis"})
	if err != nil || len(got) != 0 {
		t.Errorf("Search(unknown city) = %v, %v; want empty, nil", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Search(ctx, Query{City: "paris"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Search() with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "places.yaml")
	yamlDoc := `cities:
  Paris:
    - id: louvre
      name: Louvre Museum
      types: [museum, tourist_attraction]
      rating: 4.7
      price_level: 2
      location: {lat: 48.8606, lng: 2.3376}
      opening_hours:
        periods:
          - open: {day: 1, time: "0900"}
            close: {day: 1, time: "1800"}
  St. Ives:
    - id: tate
      name: Tate St Ives
`
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	fx, err := LoadFixture(yamlPath)
	if err != nil {
		t.Fatalf("LoadFixture(yaml) error = %v", err)
	}
	louvre := fx.Cities["Paris"][0]
	if louvre.Location == nil || louvre.Location.Lat != 48.8606 {
		t.Errorf("louvre location = %v, want lat 48.8606", louvre.Location)
	}
	if louvre.OpeningHours == nil || len(louvre.OpeningHours.Periods) != 1 ||
		louvre.OpeningHours.Periods[0].Close == nil || louvre.OpeningHours.Periods[0].Close.Time != "1800" {
		t.Errorf("louvre opening hours not decoded: %+v", louvre.OpeningHours)
	}
	if len(fx.Cities["St. Ives"]) != 1 {
		t.Errorf("city with a dot in its name was not preserved: %v", fx.Cities)
	}

	jsonPath := filepath.Join(dir, "places.json")
	data, err := json.Marshal(Fixture{Cities: map[string][]models.Place{"paris": parisPlaces()}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, data, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewStaticSearcherFromFile(jsonPath)
	if err != nil {
		t.Fatalf("NewStaticSearcherFromFile(json) error = %v", err)
	}
	got, _ := s.Search(context.Background(), Query{City: "paris"})
	if len(got) != 3 {
		t.Errorf("json fixture returned %d places, want 3", len(got))
	}

	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"cities":{"paris":[{"name":"no id"}]}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFixture(badPath); err == nil {
		t.Error("LoadFixture() accepted a place without an id")
	}

	if _, err := LoadFixture(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFixture() accepted a missing file")
	}
}

func TestHTTPSearcher(t *testing.T) {
	t.Parallel()

	var gotQuery Query
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-API-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotQuery)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{Places: parisPlaces()[:2]})
	}))
	t.Cleanup(srv.Close)

	s := NewHTTPSearcher(HTTPOptions{BaseURL: srv.URL + "/", APIKey: "secret"}, logging.NewTestLogger(io.Discard))
	q := Query{City: "paris", RadiusMeters: 1500, Categories: []string{"museum"}}
	got, err := s.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if diff := cmp.Diff([]string{"louvre", "bistro"}, ids(got)); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(q, gotQuery); diff != "" {
		t.Errorf("backend received query mismatch (-want +got):\n%s", diff)
	}

	unauth := NewHTTPSearcher(HTTPOptions{BaseURL: srv.URL}, logging.NewTestLogger(io.Discard))
	for i := 0; i < 15; i++ {
		if _, err := unauth.Search(context.Background(), q); !errors.Is(err, ErrRejected) {
			t.Fatalf("Search() without key error = %v, want ErrRejected", err)
		}
	}
	if unauth.State() != gobreaker.StateClosed {
		t.Errorf("client errors opened the breaker: state = %s", unauth.State())
	}
}

func TestHTTPSearcherCircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	opened := metrics.CircuitBreakerTransitions.WithLabelValues("places-api", "closed", "open")
	before := testutil.ToFloat64(opened)

	s := NewHTTPSearcher(HTTPOptions{
		BaseURL:             srv.URL,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerTimeout:      time.Minute,
	}, logging.NewTestLogger(io.Discard))

	for i := 0; i < 2; i++ {
		if _, err := s.Search(context.Background(), Query{City: "paris"}); err == nil {
			t.Fatal("Search() against failing backend returned nil error")
		}
	}
	if s.State() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %s, want open", s.State())
	}

	_, err := s.Search(context.Background(), Query{City: "paris"})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Search() with open breaker error = %v, want ErrOpenState", err)
	}
	if calls.Load() != 2 {
		t.Errorf("backend calls = %d, want 2", calls.Load())
	}
	if got := testutil.ToFloat64(opened) - before; got != 1 {
		t.Errorf("closed->open transitions recorded = %v, want 1", got)
	}
}

func TestHTTPSearcherRateLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"places":[]}`))
	}))
	t.Cleanup(srv.Close)

	s := NewHTTPSearcher(HTTPOptions{BaseURL: srv.URL, RequestsPerSecond: 0.5, Burst: 1}, logging.NewTestLogger(io.Discard))
	if _, err := s.Search(context.Background(), Query{}); err != nil {
		t.Fatalf("first Search() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := s.Search(ctx, Query{}); err == nil {
		t.Error("second Search() inside the rate limit window succeeded")
	}
}

type countingSearcher struct {
	calls atomic.Int32
	err   error
}

func (c *countingSearcher) Search(_ context.Context, q Query) ([]models.Place, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return Filter(parisPlaces(), q), nil
}

func TestCachedSearcher(t *testing.T) {
	hits := metrics.PlaceFetchTotal.WithLabelValues("cache_hit")
	before := testutil.ToFloat64(hits)

	next := &countingSearcher{}
	store := NewMemoryStore(time.Minute)
	s := NewCachedSearcher(next, store, logging.NewTestLogger(io.Discard))

	q := Query{City: "Paris", Filters: Filters{MinRating: 4.5}}
	first, err := s.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	second, err := s.Search(context.Background(), Query{City: "paris", Filters: Filters{MinRating: 4.5}})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if next.calls.Load() != 1 {
		t.Errorf("wrapped searcher calls = %d, want 1", next.calls.Load())
	}
	if diff := cmp.Diff(ids(first), ids(second)); diff != "" {
		t.Errorf("cached result mismatch (-first +second):\n%s", diff)
	}
	if got := testutil.ToFloat64(hits) - before; got != 1 {
		t.Errorf("cache hits recorded = %v, want 1", got)
	}
	if store.Stats().Hits != 1 {
		t.Errorf("store hits = %d, want 1", store.Stats().Hits)
	}

	if _, err := s.Search(context.Background(), Query{City: "lyon"}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if next.calls.Load() != 2 {
		t.Errorf("different query did not reach the wrapped searcher")
	}
}

func TestCachedSearcherDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	next := &countingSearcher{err: boom}
	s := NewCachedSearcher(next, NewMemoryStore(time.Minute), logging.NewTestLogger(io.Discard))

	for i := 0; i < 2; i++ {
		if _, err := s.Search(context.Background(), Query{City: "paris"}); !errors.Is(err, boom) {
			t.Fatalf("Search() error = %v, want %v", err, boom)
		}
	}
	if next.calls.Load() != 2 {
		t.Errorf("wrapped searcher calls = %d, want 2", next.calls.Load())
	}
}

func TestCachedSearcherRedisUnavailable(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	store := NewRedisStoreWithClient(client, "", 0)
	t.Cleanup(func() { _ = store.Close() })

	next := &countingSearcher{}
	s := NewCachedSearcher(next, store, logging.NewTestLogger(io.Discard))

	got, err := s.Search(context.Background(), Query{City: "paris"})
	if err != nil {
		t.Fatalf("Search() with unreachable redis error = %v", err)
	}
	if len(got) != 3 || next.calls.Load() != 1 {
		t.Errorf("Search() = %d places after %d calls, want 3 after 1", len(got), next.calls.Load())
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Error("Ping() to an unreachable server succeeded")
	}
}

func TestKeyNormalizesCity(t *testing.T) {
	t.Parallel()

	if Key(Query{City: "Paris "}) != Key(Query{City: "paris"}) {
		t.Error("Key() differs by city case")
	}
	if Key(Query{City: "paris"}) == Key(Query{City: "paris", RadiusMeters: 100}) {
		t.Error("Key() ignores radius")
	}
}
