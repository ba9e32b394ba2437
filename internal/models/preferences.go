// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

// Pace controls how many place visits are scheduled per day.
type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceBalanced Pace = "balanced"
	PacePacked   Pace = "packed"
)

// Valid reports whether p is one of the known paces.
func (p Pace) Valid() bool {
	switch p {
	case PaceRelaxed, PaceBalanced, PacePacked:
		return true
	}
	return false
}

// Budget is the user's spending band. The empty string means unknown.
type Budget string

const (
	BudgetLow         Budget = "budget"
	BudgetModerate    Budget = "moderate"
	BudgetComfortable Budget = "comfortable"
	BudgetLuxury      Budget = "luxury"
)

// WeightedTag is a free-text tag with a 0..1 weight. For avoidances the weight is
// a strength; for specific interests it is a confidence.
type WeightedTag struct {
	Tag    string  `json:"tag" yaml:"tag" validate:"required"`
	Weight float64 `json:"weight" yaml:"weight" validate:"gte=0,lte=1"`
}

// UserPreferences describes what the traveller likes and dislikes.
type UserPreferences struct {
	// Interests maps interest keys (culture, food, nature, ...) to 0..1 weights.
	Interests         map[string]float64 `json:"interests,omitempty" yaml:"interests"`
	Budget            Budget             `json:"budget,omitempty" yaml:"budget"`
	Pace              Pace               `json:"pace,omitempty" yaml:"pace"`
	Avoidances        []WeightedTag      `json:"avoidances,omitempty" yaml:"avoidances" validate:"dive"`
	SpecificInterests []WeightedTag      `json:"specific_interests,omitempty" yaml:"specific_interests" validate:"dive"`
	PrefersHiddenGems bool               `json:"prefers_hidden_gems,omitempty" yaml:"prefers_hidden_gems"`
}

// ScoreBreakdown is the per-component result of preference scoring.
type ScoreBreakdown struct {
	Interest         float64 `json:"interest"`
	Budget           float64 `json:"budget"`
	Avoidance        float64 `json:"avoidance"`
	SpecificInterest float64 `json:"specific_interest"`
	HiddenGemBonus   float64 `json:"hidden_gem_bonus"`
	Total            float64 `json:"total"`
	Combined         float64 `json:"combined"`
}

// ScoredPlace pairs a place with its score.
type ScoredPlace struct {
	Place Place          `json:"place"`
	Score ScoreBreakdown `json:"score"`
}
