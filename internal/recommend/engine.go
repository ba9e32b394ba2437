// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/hours"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/places"
	"github.com/tomtom215/waypoint/internal/scoring"
)

// Deps are the engine's collaborators. Searcher may be nil when every request
// supplies its own candidates.
type Deps struct {
	Catalog   *catalog.Catalog
	Scorer    *scoring.Scorer
	Evaluator *hours.Evaluator
	Searcher  places.Searcher
}

// Engine produces ranked alternatives. It is safe for concurrent use.
type Engine struct {
	config *Config
	deps   Deps
	logger zerolog.Logger
	now    func() time.Time

	requestCount  atomic.Int64
	fetchFailures atomic.Int64
	served        atomic.Int64
}

// NewEngine creates an alternatives engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, deps Deps, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Catalog == nil || deps.Scorer == nil || deps.Evaluator == nil {
		return nil, fmt.Errorf("catalog, scorer and evaluator are required")
	}

	return &Engine{
		config: cfg,
		deps:   deps,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}, nil
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:      e.requestCount.Load(),
		FetchFailures: e.fetchFailures.Load(),
		Served:        e.served.Load(),
	}
}

// Alternatives returns places that could replace req.Current in req.Slot.
func (e *Engine) Alternatives(ctx context.Context, req *Request) (*Response, error) {
	e.requestCount.Add(1)
	if !req.Slot.Valid() {
		return nil, fmt.Errorf("%w: unknown slot %q", models.ErrInvalidInput, req.Slot)
	}

	resp := &Response{Slot: req.Slot, Alternatives: []Alternative{}, GeneratedAt: e.now().UTC()}

	pool, err := e.pool(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.fetchFailures.Add(1)
		e.logger.Warn().Err(err).Str("city", req.City).Msg("Place pool fetch failed, returning no alternatives")
		return resp, nil
	}
	resp.PoolSize = len(pool)

	limit := e.config.limit(req.Limit)
	same, variety := e.partition(pool, req)
	picked := mix(same, variety, limit, e.config.SameCategoryShare)

	for i := range picked {
		picked[i].Reason = e.reason(&picked[i])
	}
	resp.Alternatives = picked

	e.served.Add(int64(len(picked)))
	metrics.AlternativesServed.Add(float64(len(picked)))

	e.logger.Debug().
		Str("slot", string(req.Slot)).
		Int("pool", len(pool)).
		Int("same", len(same)).
		Int("variety", len(variety)).
		Int("returned", len(picked)).
		Msg("Served alternatives")
	return resp, nil
}

// pool returns the request's candidates or searches for them.
func (e *Engine) pool(ctx context.Context, req *Request) ([]models.Place, error) {
	if len(req.Candidates) > 0 {
		return req.Candidates, nil
	}
	if e.deps.Searcher == nil {
		return nil, nil
	}
	found, err := e.deps.Searcher.Search(ctx, places.Query{
		City:         req.City,
		Location:     req.Location,
		RadiusMeters: e.config.RadiusMeters,
	})
	metrics.RecordPlaceFetch(err)
	return found, err
}

// partition filters and scores the pool, splitting it by whether a place
// shares the current place's category. Both halves are sorted best first.
func (e *Engine) partition(pool []models.Place, req *Request) (same, variety []Alternative) {
	skip := make(map[string]bool, len(req.Exclude)+1)
	for _, id := range req.Exclude {
		skip[id] = true
	}
	var currentCat catalog.Category
	if req.Current != nil {
		skip[req.Current.ID] = true
		currentCat = e.deps.Catalog.PrimaryCategory(req.Current)
	}

	var avoidances []models.WeightedTag
	if req.Preferences != nil {
		avoidances = req.Preferences.Avoidances
	}

	w := e.config.Weights
	seen := make(map[string]bool, len(pool))
	for i := range pool {
		p := &pool[i]
		if skip[p.ID] || seen[p.ID] {
			continue
		}
		seen[p.ID] = true

		if e.deps.Scorer.PlacePenalty(p, avoidances) >= e.config.AvoidanceCutoff {
			continue
		}

		cat := e.deps.Catalog.PrimaryCategory(p)
		slotScore := e.deps.Evaluator.CategorySlotScore(cat, req.Slot)
		if !req.Date.IsZero() {
			slotScore = e.deps.Evaluator.SlotScore(p, req.Slot, req.Date)
		}
		if slotScore < e.config.MinSlotScore {
			continue
		}

		pref := e.deps.Scorer.Score(p, req.Preferences).Total
		isSame := req.Current != nil && cat == currentCat

		score := pref*w.Preference + slotScore*w.Slot
		if p.IsHiddenGem {
			score += w.HiddenGem
		}
		if isSame {
			score += w.SameCategory
		}

		alt := Alternative{
			Place:           *p,
			Score:           round3(score),
			PreferenceScore: round3(pref),
			SlotScore:       round3(slotScore),
			SameCategory:    isSame,
		}
		if isSame {
			same = append(same, alt)
		} else {
			variety = append(variety, alt)
		}
	}

	sortAlternatives(same)
	sortAlternatives(variety)
	return same, variety
}

// mix takes round(limit×share) from same and fills the rest from variety.
// When either side runs short the other back-fills. The result is sorted.
func mix(same, variety []Alternative, limit int, share float64) []Alternative {
	sameWant := min(int(math.Round(float64(limit)*share)), len(same))
	varietyWant := min(limit-sameWant, len(variety))
	if short := limit - sameWant - varietyWant; short > 0 {
		sameWant = min(sameWant+short, len(same))
	}

	out := make([]Alternative, 0, sameWant+varietyWant)
	out = append(out, same[:sameWant]...)
	out = append(out, variety[:varietyWant]...)
	sortAlternatives(out)
	return out
}

// reason picks the first applicable reason in priority order.
func (e *Engine) reason(a *Alternative) Reason {
	switch {
	case a.Place.IsHiddenGem:
		return ReasonHiddenGem
	case a.SameCategory:
		return ReasonSimilar
	case a.PreferenceScore >= e.config.PreferenceMatchThreshold:
		return ReasonPreferenceMatch
	case a.Place.Rating >= e.config.HighRatingThreshold:
		return ReasonHighlyRated
	default:
		return ReasonVariety
	}
}

func sortAlternatives(alts []Alternative) {
	sort.SliceStable(alts, func(i, j int) bool {
		if alts[i].Score != alts[j].Score {
			return alts[i].Score > alts[j].Score
		}
		return alts[i].Place.ID < alts[j].Place.ID
	})
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
