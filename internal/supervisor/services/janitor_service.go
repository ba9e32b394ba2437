// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/metrics"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = time.Minute

// CacheJanitorService periodically removes expired entries from the shared
// caches. The caches never start goroutines of their own, so without the
// janitor expired entries are only dropped when read.
type CacheJanitorService struct {
	caches   map[string]cache.Expirer
	names    []string
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor sweeping each named cache every
// interval.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheJanitorService(caches map[string]cache.Expirer, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	names := make([]string, 0, len(caches))
	for name, c := range caches {
		if c != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return &CacheJanitorService{
		caches:   caches,
		names:    names,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Strs("caches", s.names).
		Dur("interval", s.interval).
		Msg("Cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one pass over every cache and returns the total removed.
func (s *CacheJanitorService) Sweep() int {
	total := 0
	for _, name := range s.names {
		removed := s.caches[name].CleanupExpired()
		if removed == 0 {
			continue
		}
		metrics.CacheSweepRemoved.WithLabelValues(name).Add(float64(removed))
		total += removed
	}
	if total > 0 {
		s.logger.Debug().Int("removed", total).Msg("Swept expired cache entries")
	}
	return total
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *CacheJanitorService) String() string {
	return s.name
}
