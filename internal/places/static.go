// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package places

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/waypoint/internal/models"
)

// Fixture is the on-disk catalogue format: city name to places.
//
//	cities:
//	  paris:
//	    - id: louvre
//	      name: Louvre Museum
//	      types: [museum, tourist_attraction]
//	      location: {lat: 48.8606, lng: 2.3376}
type Fixture struct {
	Cities map[string][]models.Place `json:"cities" yaml:"cities"`
}

// StaticSearcher serves places from a fixed catalogue. A query with a City
// searches that city only; without one it searches every city.
type StaticSearcher struct {
	cities map[string][]models.Place
	order  []string
}

// NewStaticSearcher builds a searcher over cities. City names are matched
// case-insensitively.
func NewStaticSearcher(cities map[string][]models.Place) *StaticSearcher {
	s := &StaticSearcher{cities: make(map[string][]models.Place, len(cities))}
	for name, list := range cities {
		key := NormalizeCity(name)
		s.cities[key] = append(s.cities[key], list...)
	}
	for key := range s.cities {
		s.order = append(s.order, key)
	}
	sort.Strings(s.order)
	return s
}

// LoadFixture reads a YAML or JSON fixture file, chosen by extension.
func LoadFixture(path string) (*Fixture, error) {
	var fx Fixture
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read place fixture: %w", err)
		}
		if err := json.Unmarshal(data, &fx); err != nil {
			return nil, fmt.Errorf("parse place fixture %s: %w", path, err)
		}
	default:
		// City names may contain dots ("St. Ives"), so use a delimiter they won't.
		k := koanf.New("::")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load place fixture %s: %w", path, err)
		}
		if err := k.UnmarshalWithConf("", &fx, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
			return nil, fmt.Errorf("parse place fixture %s: %w", path, err)
		}
	}

	for city, list := range fx.Cities {
		for i := range list {
			if list[i].ID == "" {
				return nil, fmt.Errorf("place fixture %s: city %q entry %d has no id", path, city, i)
			}
		}
	}
	return &fx, nil
}

// NewStaticSearcherFromFile loads a fixture file into a StaticSearcher.
func NewStaticSearcherFromFile(path string) (*StaticSearcher, error) {
	fx, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return NewStaticSearcher(fx.Cities), nil
}

// Cities returns the normalized city keys in sorted order.
func (s *StaticSearcher) Cities() []string {
	return append([]string(nil), s.order...)
}

// Search filters the catalogue. It only fails when ctx is done.
func (s *StaticSearcher) Search(ctx context.Context, q Query) ([]models.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if q.City != "" {
		return Filter(s.cities[NormalizeCity(q.City)], q), nil
	}

	var all []models.Place
	for _, key := range s.order {
		all = append(all, s.cities[key]...)
	}
	return Filter(all, q), nil
}
