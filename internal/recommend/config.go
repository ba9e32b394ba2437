// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package recommend

import (
	"fmt"
)

// Config contains all configuration for the alternatives engine.
type Config struct {
	// Weights defines the contribution of each signal to the combined score.
	Weights Weights `json:"weights" koanf:"weights"`

	// DefaultLimit is used when a request does not set a limit.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps the number of alternatives per request.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// SameCategoryShare is the fraction of results drawn from the current
	// place's category. The rest are variety picks.
	SameCategoryShare float64 `json:"same_category_share" koanf:"same_category_share"`

	// MinSlotScore drops places that fit the slot worse than this.
	MinSlotScore float64 `json:"min_slot_score" koanf:"min_slot_score"`

	// AvoidanceCutoff drops places whose avoidance penalty reaches this.
	AvoidanceCutoff float64 `json:"avoidance_cutoff" koanf:"avoidance_cutoff"`

	// PreferenceMatchThreshold and HighRatingThreshold drive reason tagging.
	PreferenceMatchThreshold float64 `json:"preference_match_threshold" koanf:"preference_match_threshold"`
	HighRatingThreshold      float64 `json:"high_rating_threshold" koanf:"high_rating_threshold"`

	// RadiusMeters bounds the place pool search.
	RadiusMeters int `json:"radius_meters" koanf:"radius_meters"`
}

// Weights are the combined score components.
type Weights struct {
	Preference   float64 `json:"preference" koanf:"preference"`
	Slot         float64 `json:"slot" koanf:"slot"`
	HiddenGem    float64 `json:"hidden_gem" koanf:"hidden_gem"`
	SameCategory float64 `json:"same_category" koanf:"same_category"`
}

// DefaultConfig returns a Config with the standard weights and limits.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Preference:   0.5,
			Slot:         0.25,
			HiddenGem:    0.15,
			SameCategory: 0.05,
		},
		DefaultLimit:             5,
		MaxLimit:                 20,
		SameCategoryShare:        0.6,
		MinSlotScore:             0.3,
		AvoidanceCutoff:          0.5,
		PreferenceMatchThreshold: 0.7,
		HighRatingThreshold:      4.5,
		RadiusMeters:             5000,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	if c.SameCategoryShare < 0 || c.SameCategoryShare > 1 {
		return fmt.Errorf("same_category_share must be in [0, 1], got %f", c.SameCategoryShare)
	}
	if c.MinSlotScore < 0 || c.MinSlotScore > 1 {
		return fmt.Errorf("min_slot_score must be in [0, 1], got %f", c.MinSlotScore)
	}
	if c.AvoidanceCutoff <= 0 || c.AvoidanceCutoff > 1 {
		return fmt.Errorf("avoidance_cutoff must be in (0, 1], got %f", c.AvoidanceCutoff)
	}
	w := c.Weights
	if w.Preference < 0 || w.Slot < 0 || w.HiddenGem < 0 || w.SameCategory < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", w)
	}
	if c.RadiusMeters < 0 {
		return fmt.Errorf("radius_meters must be non-negative, got %d", c.RadiusMeters)
	}
	return nil
}

// limit resolves a requested limit.
func (c *Config) limit(requested int) int {
	switch {
	case requested <= 0:
		return c.DefaultLimit
	case requested > c.MaxLimit:
		return c.MaxLimit
	default:
		return requested
	}
}
