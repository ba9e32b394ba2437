// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cache

import (
	"sync"
	"time"
)

type boundedEntry[V any] struct {
	key       string
	value     V
	prev      *boundedEntry[V]
	next      *boundedEntry[V]
	expiresAt time.Time
}

// Bounded is a thread-safe TTL cache holding at most capacity entries. When full,
// the oldest-inserted entry is evicted first; reads do not change eviction order.
//
// Entries live in a doubly-linked list between two sentinels: head.next is the
// newest insertion and tail.prev the oldest.
type Bounded[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*boundedEntry[V]
	head     *boundedEntry[V]
	tail     *boundedEntry[V]
	now      func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// NewBounded creates a cache with the given capacity and TTL.
// Non-positive values fall back to 1000 entries and 30 minutes.
func NewBounded[V any](capacity int, ttl time.Duration) *Bounded[V] {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	c := &Bounded[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*boundedEntry[V], capacity),
		head:     &boundedEntry[V]{},
		tail:     &boundedEntry[V]{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key if present and unexpired.
func (c *Bounded[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.unlink(entry)
		c.misses++
		return zero, false
	}
	c.hits++
	return entry.value, true
}

// Put stores value under key. Re-putting a key refreshes its value, TTL and
// insertion position.
func (c *Bounded[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.items[key]; ok {
		c.unlink(existing)
	}

	entry := &boundedEntry[V]{key: key, value: value, expiresAt: c.now().Add(c.ttl)}
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.unlink(c.tail.prev)
		c.evictions++
	}
}

// Len returns the number of stored entries.
func (c *Bounded[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry.
func (c *Bounded[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*boundedEntry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes expired entries, walking from the oldest.
func (c *Bounded[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.unlink(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

// Stats returns hit, miss and capacity-eviction counts and the current size.
func (c *Bounded[V]) Stats() (hits, misses, evictions int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evictions, len(c.items)
}

// unlink removes entry from the list and the map (must be called with mu held).
func (c *Bounded[V]) unlink(entry *boundedEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}
