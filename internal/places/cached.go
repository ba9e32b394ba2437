// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package places

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// Store holds search results by key.
type Store interface {
	// Get returns the cached places and whether the key was present.
	Get(ctx context.Context, key string) ([]models.Place, bool, error)
	Set(ctx context.Context, key string, found []models.Place) error
}

// CachedSearcher memoizes another Searcher. Only successful searches are
// cached; store failures degrade to a direct search. Hits are counted in
// waypoint_place_fetch_total{result="cache_hit"}; callers record the overall
// outcome with metrics.RecordPlaceFetch.
type CachedSearcher struct {
	next   Searcher
	store  Store
	logger zerolog.Logger
}

// NewCachedSearcher wraps next with store.
func NewCachedSearcher(next Searcher, store Store, logger zerolog.Logger) *CachedSearcher {
	return &CachedSearcher{
		next:   next,
		store:  store,
		logger: logger.With().Str("component", "places-cache").Logger(),
	}
}

// Key returns the cache key for q.
func Key(q Query) string {
	q.City = NormalizeCity(q.City)
	return cache.GenerateKey("places", q)
}

// Search returns cached places for q or delegates to the wrapped searcher.
func (c *CachedSearcher) Search(ctx context.Context, q Query) ([]models.Place, error) {
	key := Key(q)

	found, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn().Err(err).Str("key", key).Msg("Place cache read failed")
	case ok:
		metrics.PlaceFetchTotal.WithLabelValues("cache_hit").Inc()
		return found, nil
	}

	found, err = c.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, key, found); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Place cache write failed")
	}
	return found, nil
}

// MemoryStore is an in-process Store backed by cache.Cache.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) ([]models.Place, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	found, ok := v.([]models.Place)
	return found, ok, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key string, found []models.Place) error {
	m.cache.Set(key, found)
	return nil
}

// CleanupExpired implements cache.Expirer.
func (m *MemoryStore) CleanupExpired() int {
	return m.cache.CleanupExpired()
}

// Stats returns the underlying cache statistics.
func (m *MemoryStore) Stats() cache.Stats {
	return m.cache.GetStats()
}

// RedisStore shares search results between instances through Redis. Values
// are JSON encoded and expire with the Redis TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// NewRedisStore connects lazily to the server at opts.Addr.
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return NewRedisStoreWithClient(client, opts.Prefix, opts.TTL)
}

// NewRedisStoreWithClient uses an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "waypoint:"
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get implements Store. A missing key is not an error.
func (r *RedisStore) Get(ctx context.Context, key string) ([]models.Place, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var found []models.Place
	if err := json.Unmarshal(data, &found); err != nil {
		return nil, false, fmt.Errorf("decode cached places: %w", err)
	}
	return found, true, nil
}

// Set implements Store.
func (r *RedisStore) Set(ctx context.Context, key string, found []models.Place) error {
	data, err := json.Marshal(found)
	if err != nil {
		return fmt.Errorf("encode places: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
