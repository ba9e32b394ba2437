// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package catalog

import (
	"strings"
	"unicode"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/models"
)

// Normalize lowercases s and turns every run of non-alphanumeric characters
// (underscores, hyphens, punctuation) into a single space.
func Normalize(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

// normalizeType maps "Night Club" and "night-club" to the table key "night_club".
func normalizeType(t string) string {
	return strings.ReplaceAll(Normalize(t), " ", "_")
}

// PlaceText returns the normalized searchable text of a place: its types, name
// and description.
func PlaceText(p *models.Place) string {
	parts := make([]string, 0, len(p.Types)+2)
	parts = append(parts, p.Types...)
	parts = append(parts, p.Name, p.Description)
	return Normalize(strings.Join(parts, " "))
}

// TagMatcher matches a fixed list of tags, each widened by its keyword
// expansion, against place text on whole-token boundaries.
type TagMatcher struct {
	ac   *cache.AhoCorasick
	size int
}

// CompileTags builds a matcher for tags. Tag i is reported as index i.
func (c *Catalog) CompileTags(tags []string) *TagMatcher {
	ac := cache.NewAhoCorasick()
	for i, tag := range tags {
		for _, term := range c.termsFor(tag) {
			ac.AddPattern(term, i)
		}
	}
	ac.Build()
	return &TagMatcher{ac: ac, size: len(tags)}
}

// termsFor returns the tag itself, a naive singular form, and its expansion.
func (c *Catalog) termsFor(tag string) []string {
	norm := Normalize(tag)
	if norm == "" {
		return nil
	}
	terms := []string{norm}
	if strings.HasSuffix(norm, "s") && len(norm) > 3 {
		terms = append(terms, strings.TrimSuffix(norm, "s"))
	}
	for _, term := range c.tables.Keywords[norm] {
		terms = append(terms, Normalize(term))
	}
	return terms
}

// Matched returns, for each compiled tag, whether it occurs in text. The text
// must already be normalized (see PlaceText).
func (m *TagMatcher) Matched(text string) []bool {
	hits := make([]bool, m.size)
	if m.size == 0 || text == "" {
		return hits
	}
	for _, match := range m.ac.Search(text) {
		if !onTokenBoundary(text, match.Start, match.End) {
			continue
		}
		if idx, ok := match.Data.(int); ok && idx < m.size {
			hits[idx] = true
		}
	}
	return hits
}

// MatchesPlace is a convenience for Matched(PlaceText(p)).
func (m *TagMatcher) MatchesPlace(p *models.Place) []bool {
	return m.Matched(PlaceText(p))
}

func onTokenBoundary(text string, start, end int) bool {
	if start < 0 || end > len(text) {
		return false
	}
	return (start == 0 || text[start-1] == ' ') && (end == len(text) || text[end] == ' ')
}
