// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package scoring rates how well a place fits a traveller's preferences.
//
// A score is built from four weighted components (interest alignment, budget
// match, avoidance and specific interests) plus an unweighted hidden-gem bonus.
// Missing data never fails: each component degrades to a neutral value.
//
// Scoring is pure and deterministic. The only state a Scorer keeps is a bounded
// cache of compiled keyword matchers keyed by the tag list.
package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/models"
)

// Component scores used when data is missing.
const (
	neutralScore = 0.5

	idealBudgetScore      = 1.0
	acceptableBudgetScore = 0.7
	cheaperBudgetScore    = 0.4
	pricierBudgetBase     = 0.3
	pricierBudgetStep     = 0.1

	maxSecondaryBoost  = 0.2
	secondaryBoostRate = 0.1

	flaggedGemBonus   = 0.2
	gemScoreThreshold = 0.5
	gemScoreBonusRate = 0.1

	combinedTotalShare = 0.7
	combinedGemShare   = 0.3
)

// Weights sets the relative contribution of each component to the total.
type Weights struct {
	Interest float64 `json:"interest" koanf:"interest"`
	Budget   float64 `json:"budget" koanf:"budget"`
	Avoid    float64 `json:"avoid" koanf:"avoid"`
	Specific float64 `json:"specific" koanf:"specific"`
}

// DefaultWeights returns interest .4, budget .2, avoid .3, specific .1.
func DefaultWeights() Weights {
	return Weights{Interest: 0.4, Budget: 0.2, Avoid: 0.3, Specific: 0.1}
}

// Normalize returns a copy with weights scaled to sum to 1.0.
// All-zero or negative sums fall back to the defaults.
func (w Weights) Normalize() Weights {
	sum := w.Interest + w.Budget + w.Avoid + w.Specific
	if sum <= 0 || w.Interest < 0 || w.Budget < 0 || w.Avoid < 0 || w.Specific < 0 {
		return DefaultWeights()
	}
	return Weights{
		Interest: w.Interest / sum,
		Budget:   w.Budget / sum,
		Avoid:    w.Avoid / sum,
		Specific: w.Specific / sum,
	}
}

// Scorer computes ScoreBreakdowns. It is safe for concurrent use.
type Scorer struct {
	catalog  *catalog.Catalog
	weights  Weights
	matchers *cache.Bounded[*catalog.TagMatcher]
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights overrides the default component weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w.Normalize()
	}
}

// New creates a Scorer backed by cat.
func New(cat *catalog.Catalog, opts ...Option) *Scorer {
	s := &Scorer{
		catalog:  cat,
		weights:  DefaultWeights(),
		matchers: cache.NewBounded[*catalog.TagMatcher](256, time.Hour),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score rates place against prefs. The total is always within [0, 1].
func (s *Scorer) Score(place *models.Place, prefs *models.UserPreferences) models.ScoreBreakdown {
	if prefs == nil {
		prefs = &models.UserPreferences{}
	}
	text := s.searchText(place)

	b := models.ScoreBreakdown{
		Interest:         s.interestScore(place, prefs),
		Budget:           s.budgetScore(place.PriceLevel, prefs.Budget),
		Avoidance:        1 - s.AvoidancePenalty(text, prefs.Avoidances),
		SpecificInterest: s.specificScore(text, prefs.SpecificInterests),
		HiddenGemBonus:   hiddenGemBonus(place, prefs.PrefersHiddenGems),
	}

	total := b.Interest*s.weights.Interest +
		b.Budget*s.weights.Budget +
		b.Avoidance*s.weights.Avoid +
		b.SpecificInterest*s.weights.Specific +
		b.HiddenGemBonus
	b.Total = clamp01(total)
	b.Combined = b.Total*combinedTotalShare + clamp01(place.HiddenGemScore)*combinedGemShare
	return b
}

// AvoidancePenalty returns the clamped sum of strengths of every avoidance tag
// that matches the normalized place text.
func (s *Scorer) AvoidancePenalty(text string, avoidances []models.WeightedTag) float64 {
	if len(avoidances) == 0 {
		return 0
	}
	hits := s.matcher(avoidances).Matched(text)
	penalty := 0.0
	for i, hit := range hits {
		if hit {
			penalty += avoidances[i].Weight
		}
	}
	return clamp01(penalty)
}

// PlacePenalty is AvoidancePenalty for a place.
func (s *Scorer) PlacePenalty(place *models.Place, avoidances []models.WeightedTag) float64 {
	return s.AvoidancePenalty(s.searchText(place), avoidances)
}

// Rank scores every place and orders them: favourites first, then combined
// score descending, then ID ascending.
func (s *Scorer) Rank(places []models.Place, prefs *models.UserPreferences, favorites map[string]bool) []models.ScoredPlace {
	ranked := make([]models.ScoredPlace, len(places))
	for i := range places {
		ranked[i] = models.ScoredPlace{Place: places[i], Score: s.Score(&places[i], prefs)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		fi, fj := favorites[ranked[i].Place.ID], favorites[ranked[j].Place.ID]
		if fi != fj {
			return fi
		}
		if ranked[i].Score.Combined != ranked[j].Score.Combined {
			return ranked[i].Score.Combined > ranked[j].Score.Combined
		}
		return ranked[i].Place.ID < ranked[j].Place.ID
	})
	return ranked
}

// searchText is the normalized place text plus its canonical category, so a tag
// like "nightlife" matches a night club by category as well as by keyword.
func (s *Scorer) searchText(place *models.Place) string {
	return catalog.PlaceText(place) + " " + string(s.catalog.PrimaryCategory(place))
}

func (s *Scorer) interestScore(place *models.Place, prefs *models.UserPreferences) float64 {
	if len(prefs.Interests) == 0 {
		return neutralScore
	}
	keys := s.catalog.InterestKeys(s.catalog.PrimaryCategory(place))
	if len(keys) == 0 {
		return neutralScore
	}

	score := maxInterest(keys, prefs.Interests)

	secondary := 0.0
	for _, cat := range s.catalog.SecondaryCategories(place) {
		secondary += maxInterest(s.catalog.InterestKeys(cat), prefs.Interests)
	}
	score += math.Min(maxSecondaryBoost, secondaryBoostRate*secondary)

	return clamp01(score)
}

func maxInterest(keys []string, interests map[string]float64) float64 {
	best := 0.0
	for _, key := range keys {
		if w := interests[key]; w > best {
			best = w
		}
	}
	return best
}

func (s *Scorer) budgetScore(price int, budget models.Budget) float64 {
	if price <= 0 {
		return neutralScore
	}
	band, ok := s.catalog.Budget(budget)
	if !ok {
		return neutralScore
	}

	switch {
	case price >= band.Ideal[0] && price <= band.Ideal[1]:
		return idealBudgetScore
	case price >= band.Acceptable[0] && price <= band.Acceptable[1]:
		return acceptableBudgetScore
	case price < band.Acceptable[0]:
		return cheaperBudgetScore
	default:
		distance := float64(price - band.Acceptable[1])
		return math.Max(0, pricierBudgetBase-pricierBudgetStep*distance)
	}
}

func (s *Scorer) specificScore(text string, interests []models.WeightedTag) float64 {
	if len(interests) == 0 {
		return 0
	}
	hits := s.matcher(interests).Matched(text)
	sum, n := 0.0, 0
	for i, hit := range hits {
		if hit {
			sum += interests[i].Weight
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func hiddenGemBonus(place *models.Place, prefersGems bool) float64 {
	bonus := 0.0
	if place.IsHiddenGem && prefersGems {
		bonus += flaggedGemBonus
	}
	if place.HiddenGemScore > gemScoreThreshold {
		bonus += gemScoreBonusRate * place.HiddenGemScore
	}
	return bonus
}

// matcher returns the compiled matcher for a tag list, building it on first use.
func (s *Scorer) matcher(tags []models.WeightedTag) *catalog.TagMatcher {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Tag
	}
	key := strings.Join(names, "\x1f")
	if m, ok := s.matchers.Get(key); ok {
		return m
	}
	m := s.catalog.CompileTags(names)
	s.matchers.Put(key, m)
	return m
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
