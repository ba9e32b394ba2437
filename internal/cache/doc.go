// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package cache provides the in-memory data structures behind Waypoint's shared
caches and lookup tables.

# Components

  - Cache: a TTL key/value cache used for city place lists.
  - Bounded: a generic TTL cache with a hard entry limit that evicts the
    oldest-inserted entry first. Travel segment estimates are memoized here.
  - AhoCorasick: a multi-pattern matcher used for keyword expansion when
    matching avoidances and specific interests against place text.
  - SpatialHashGrid: a coarse geographic index used to find clusters near a place.

# Expiry

None of the types start goroutines. Expired entries are dropped lazily on read,
and every cache implements Expirer so that a supervised janitor can sweep them
periodically:

	var sweepers []cache.Expirer = []cache.Expirer{placesCache, segmentCache}
	for _, s := range sweepers {
	    removed := s.CleanupExpired()
	}

# Thread Safety

All types are safe for concurrent use. Concurrent writers to the same key are
last-writer-wins.
*/
package cache

// Expirer is implemented by caches whose expired entries can be swept.
type Expirer interface {
	// CleanupExpired removes expired entries and returns how many were removed.
	CleanupExpired() int
}
