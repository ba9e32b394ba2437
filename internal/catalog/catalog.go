// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package catalog holds the canonical rule tables used by every planning engine:
// category mapping, interest correlation, slot appropriateness, visit durations,
// keyword expansion, day-flow order, travel-mode profiles, traffic multipliers,
// budget bands and pace targets.
//
// The tables ship as an embedded YAML document and are loaded once at startup
// with koanf. An optional override file is merged on top:
//
//	cat, err := catalog.Load(cfg.Engine.TablesPath)
//	fit := cat.SlotFit(catalog.CategoryCulture, models.SlotMorning)
//
// A Catalog is immutable after Load and safe for concurrent use.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/waypoint/internal/models"
)

//go:embed tables.yaml
var embeddedTables []byte

// Category is a canonical place category.
type Category string

const (
	CategoryCulture       Category = "culture"
	CategoryLandmark      Category = "landmark"
	CategoryNature        Category = "nature"
	CategoryFood          Category = "food"
	CategoryCafe          Category = "cafe"
	CategoryNightlife     Category = "nightlife"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryWellness      Category = "wellness"
	CategoryReligious     Category = "religious"
	CategoryOther         Category = "other"
)

const defaultKey = "default"

// SlotFit is a category's appropriateness per slot.
type SlotFit struct {
	Morning   float64 `koanf:"morning" json:"morning"`
	Afternoon float64 `koanf:"afternoon" json:"afternoon"`
	Evening   float64 `koanf:"evening" json:"evening"`
}

// ModeProfile describes a travel mode.
type ModeProfile struct {
	RoadFactor float64 `koanf:"road_factor" json:"road_factor"`
	SpeedKmh   float64 `koanf:"speed_kmh" json:"speed_kmh"`
}

// BudgetBand holds inclusive [min, max] price-level ranges.
type BudgetBand struct {
	Ideal      []int `koanf:"ideal" json:"ideal"`
	Acceptable []int `koanf:"acceptable" json:"acceptable"`
}

// PaceTarget bounds the number of place visits per day.
type PaceTarget struct {
	Min    int `koanf:"min" json:"min"`
	Target int `koanf:"target" json:"target"`
	Max    int `koanf:"max" json:"max"`
}

// Tables is the raw decoded table document.
type Tables struct {
	Categories     map[string]Category                 `koanf:"categories" json:"categories"`
	Interests      map[Category][]string               `koanf:"interests" json:"interests"`
	SlotFit        map[string]SlotFit                  `koanf:"slot_fit" json:"slot_fit"`
	VisitMinutes   map[string]int                      `koanf:"visit_minutes" json:"visit_minutes"`
	Keywords       map[string][]string                 `koanf:"keywords" json:"keywords"`
	DayFlow        map[string]int                      `koanf:"day_flow" json:"day_flow"`
	FoodCategories []Category                          `koanf:"food_categories" json:"food_categories"`
	Modes          map[models.TravelMode]ModeProfile   `koanf:"modes" json:"modes"`
	Traffic        map[models.TrafficCondition]float64 `koanf:"traffic" json:"traffic"`
	Budgets        map[models.Budget]BudgetBand        `koanf:"budgets" json:"budgets"`
	Pace           map[models.Pace]PaceTarget          `koanf:"pace" json:"pace"`
}

// Catalog answers table lookups.
type Catalog struct {
	tables Tables
	food   map[Category]bool
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded tables alone.
// It panics if the embedded document is invalid, which tests guard against.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded tables are invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads the embedded tables and, when overridePath is non-empty, merges the
// YAML file at that path on top.
func Load(overridePath string) (*Catalog, error) {
	k := koanf.New(".")

	if err := k.Load(rawBytes(embeddedTables), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load embedded tables: %w", err)
	}
	if overridePath != "" {
		if err := k.Load(file.Provider(overridePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load tables override %s: %w", overridePath, err)
		}
	}

	var t Tables
	if err := k.Unmarshal("", &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tables: %w", err)
	}
	return New(t)
}

// New validates t and builds a Catalog from it.
func New(t Tables) (*Catalog, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	c := &Catalog{tables: t, food: make(map[Category]bool, len(t.FoodCategories))}
	for _, cat := range t.FoodCategories {
		c.food[cat] = true
	}
	return c, nil
}

func (t *Tables) validate() error {
	var errs []error
	if _, ok := t.SlotFit[defaultKey]; !ok {
		errs = append(errs, errors.New("slot_fit.default is required"))
	}
	if _, ok := t.VisitMinutes[defaultKey]; !ok {
		errs = append(errs, errors.New("visit_minutes.default is required"))
	}
	for _, mode := range []models.TravelMode{models.ModeDriving, models.ModeWalking, models.ModeTransit, models.ModeCycling} {
		p, ok := t.Modes[mode]
		if !ok || p.SpeedKmh <= 0 || p.RoadFactor < 1 {
			errs = append(errs, fmt.Errorf("modes.%s needs speed_kmh > 0 and road_factor >= 1", mode))
		}
	}
	for _, pace := range []models.Pace{models.PaceRelaxed, models.PaceBalanced, models.PacePacked} {
		p, ok := t.Pace[pace]
		if !ok || p.Min < 0 || p.Min > p.Target || p.Target > p.Max {
			errs = append(errs, fmt.Errorf("pace.%s needs 0 <= min <= target <= max", pace))
		}
	}
	for band, b := range t.Budgets {
		if len(b.Ideal) != 2 || len(b.Acceptable) != 2 {
			errs = append(errs, fmt.Errorf("budgets.%s ranges must have two bounds", band))
		}
	}
	return errors.Join(errs...)
}

// Tables returns a copy of the decoded tables.
func (c *Catalog) Tables() Tables {
	return c.tables
}

// CategoryForType maps a raw provider type to its canonical category.
func (c *Catalog) CategoryForType(rawType string) Category {
	if cat, ok := c.tables.Categories[normalizeType(rawType)]; ok {
		return cat
	}
	return CategoryOther
}

// PrimaryCategory returns the category of the first mapped raw type, or
// CategoryOther when none of the place's types are known.
func (c *Catalog) PrimaryCategory(p *models.Place) Category {
	for _, t := range p.Types {
		if cat := c.CategoryForType(t); cat != CategoryOther {
			return cat
		}
	}
	return CategoryOther
}

// SecondaryCategories returns the distinct known categories of the place other
// than the primary one, in type order.
func (c *Catalog) SecondaryCategories(p *models.Place) []Category {
	primary := c.PrimaryCategory(p)
	seen := map[Category]bool{primary: true, CategoryOther: true}
	var out []Category
	for _, t := range p.Types {
		cat := c.CategoryForType(t)
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}

// InterestKeys returns the interest keys correlated with a category.
func (c *Catalog) InterestKeys(cat Category) []string {
	return c.tables.Interests[cat]
}

// SlotFit returns the appropriateness of a category for a slot.
func (c *Catalog) SlotFit(cat Category, slot models.TimeSlot) float64 {
	fit, ok := c.tables.SlotFit[string(cat)]
	if !ok {
		fit = c.tables.SlotFit[defaultKey]
	}
	switch slot {
	case models.SlotMorning:
		return fit.Morning
	case models.SlotAfternoon:
		return fit.Afternoon
	default:
		return fit.Evening
	}
}

// VisitMinutes returns the typical visit duration of a category.
func (c *Catalog) VisitMinutes(cat Category) int {
	if m, ok := c.tables.VisitMinutes[string(cat)]; ok {
		return m
	}
	return c.tables.VisitMinutes[defaultKey]
}

// PlaceVisitMinutes returns the typical visit duration of a place.
func (c *Catalog) PlaceVisitMinutes(p *models.Place) int {
	return c.VisitMinutes(c.PrimaryCategory(p))
}

// IsFoodType reports whether the category is a food, drink or nightlife category.
func (c *Catalog) IsFoodType(cat Category) bool {
	return c.food[cat]
}

// FlowRank returns the day-flow rank of a place. Raw types win over categories.
func (c *Catalog) FlowRank(p *models.Place) int {
	for _, t := range p.Types {
		if rank, ok := c.tables.DayFlow[normalizeType(t)]; ok {
			return rank
		}
	}
	if rank, ok := c.tables.DayFlow[string(c.PrimaryCategory(p))]; ok {
		return rank
	}
	return c.tables.DayFlow[defaultKey]
}

// Mode returns the profile of a travel mode, falling back to driving.
func (c *Catalog) Mode(mode models.TravelMode) ModeProfile {
	if p, ok := c.tables.Modes[mode]; ok {
		return p
	}
	return c.tables.Modes[models.ModeDriving]
}

// TrafficMultiplier returns the duration multiplier for a traffic condition.
func (c *Catalog) TrafficMultiplier(cond models.TrafficCondition) float64 {
	if m, ok := c.tables.Traffic[cond]; ok && m > 0 {
		return m
	}
	return 1
}

// Budget returns the band for a budget, false when unknown.
func (c *Catalog) Budget(b models.Budget) (BudgetBand, bool) {
	band, ok := c.tables.Budgets[b]
	return band, ok
}

// Pace returns the visit bounds for a pace, falling back to balanced.
func (c *Catalog) Pace(p models.Pace) PaceTarget {
	if t, ok := c.tables.Pace[p]; ok {
		return t
	}
	return c.tables.Pace[models.PaceBalanced]
}

// KeywordExpansion returns the expansion terms for a normalized tag, sorted.
func (c *Catalog) KeywordExpansion(tag string) []string {
	terms := append([]string(nil), c.tables.Keywords[Normalize(tag)]...)
	sort.Strings(terms)
	return terms
}

// rawBytes is a koanf.Provider over an in-memory document.
type rawBytes []byte

func (r rawBytes) ReadBytes() ([]byte, error) { return r, nil }

func (r rawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New("catalog: raw bytes provider does not support Read")
}
