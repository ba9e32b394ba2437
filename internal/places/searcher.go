// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package places adapts external place-search backends to the planning engines.

The engines never search for places themselves; they consume candidate lists
through the Searcher interface. Three adapters are provided:

  - HTTPSearcher: JSON over HTTP with an outbound rate limit and a circuit breaker
  - StaticSearcher: an in-memory or fixture-file catalogue keyed by city
  - CachedSearcher: wraps any Searcher with a TTL cache (in-process or Redis)

Typical wiring:

	remote := places.NewHTTPSearcher(cfg.Places, logger)
	searcher := places.NewCachedSearcher(remote, places.NewMemoryStore(15*time.Minute), logger)
	found, err := searcher.Search(ctx, places.Query{City: "paris", RadiusMeters: 5000})

All adapters are safe for concurrent use.
*/
package places

import (
	"context"
	"slices"
	"strings"

	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/travel"
)

// DefaultRadiusMeters is used when a query does not set a radius.
const DefaultRadiusMeters = 5000

// Searcher finds candidate places around a location.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]models.Place, error)
}

// Query describes a place search. City selects a fixture catalogue or is
// forwarded to the remote backend as a hint; Location and RadiusMeters bound the
// search geographically.
type Query struct {
	City         string              `json:"city,omitempty"`
	Location     *models.Coordinates `json:"location,omitempty"`
	RadiusMeters int                 `json:"radius_meters,omitempty"`
	Categories   []string            `json:"categories,omitempty"`
	Filters      Filters             `json:"filters"`
}

// Filters narrow a search result.
type Filters struct {
	MinRating      float64 `json:"min_rating,omitempty"`
	MaxPriceLevel  int     `json:"max_price_level,omitempty"`
	HiddenGemsOnly bool    `json:"hidden_gems_only,omitempty"`
	Limit          int     `json:"limit,omitempty"`
}

// SearchFunc adapts a plain function to Searcher.
type SearchFunc func(ctx context.Context, q Query) ([]models.Place, error)

// Search calls f.
func (f SearchFunc) Search(ctx context.Context, q Query) ([]models.Place, error) {
	return f(ctx, q)
}

// NormalizeCity folds a city name into a lookup key.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// radiusKm returns the query radius in kilometres.
func (q Query) radiusKm() float64 {
	if q.RadiusMeters <= 0 {
		return DefaultRadiusMeters / 1000.0
	}
	return float64(q.RadiusMeters) / 1000
}

// Matches reports whether p satisfies the query's location, category and
// filter constraints. City is not checked here.
func (q Query) Matches(p *models.Place) bool {
	if q.Location != nil {
		if !p.HasLocation() || travel.Haversine(*q.Location, *p.Location) > q.radiusKm() {
			return false
		}
	}
	if len(q.Categories) > 0 && !slices.ContainsFunc(p.Types, func(t string) bool {
		return slices.Contains(q.Categories, t)
	}) {
		return false
	}

	f := q.Filters
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.MaxPriceLevel > 0 && p.PriceLevel > f.MaxPriceLevel {
		return false
	}
	if f.HiddenGemsOnly && !p.IsHiddenGem {
		return false
	}
	return true
}

// Filter returns the places matching q, truncated to Filters.Limit when set.
// The input slice is not modified.
func Filter(all []models.Place, q Query) []models.Place {
	out := make([]models.Place, 0, len(all))
	for i := range all {
		if q.Matches(&all[i]) {
			out = append(out, all[i])
		}
		if q.Filters.Limit > 0 && len(out) == q.Filters.Limit {
			break
		}
	}
	return out
}
