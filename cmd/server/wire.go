// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/waypoint/internal/api"
	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/catalog"
	"github.com/tomtom215/waypoint/internal/cluster"
	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/hours"
	"github.com/tomtom215/waypoint/internal/itinerary"
	"github.com/tomtom215/waypoint/internal/middleware"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/places"
	"github.com/tomtom215/waypoint/internal/recommend"
	"github.com/tomtom215/waypoint/internal/schedule"
	"github.com/tomtom215/waypoint/internal/scoring"
	"github.com/tomtom215/waypoint/internal/travel"
)

// app holds everything the server needs once wiring succeeds.
type app struct {
	handler  *api.Handler
	perfMon  *middleware.PerformanceMonitor
	expirers map[string]cache.Expirer
	closers  []io.Closer
}

// Close releases the stores opened during wiring, newest first.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildApp wires the engines described by cfg.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func buildApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{expirers: make(map[string]cache.Expirer)}

	cat, err := catalog.Load(cfg.Engine.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("load rule tables: %w", err)
	}

	var segments *cache.Bounded[models.TravelSegment]
	if cfg.Engine.TravelCacheSize > 0 {
		segments = cache.NewBounded[models.TravelSegment](cfg.Engine.TravelCacheSize, cfg.Engine.TravelCacheTTL)
		a.expirers["travel"] = segments
	}

	checks := make(map[string]api.HealthCheck)
	searcher, err := buildSearcher(cfg, a, checks, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	store, err := cluster.OpenBadgerStore(cfg.Cluster.StorePath)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open cluster store: %w", err)
	}
	a.closers = append(a.closers, store)

	scorer := scoring.New(cat)
	calc := travel.NewCalculator(cat, segments, logger)
	builder := schedule.NewBuilder(cat, scorer, calc, logger)
	evaluator := hours.NewEvaluator(cat)

	alternatives, err := recommend.NewEngine(&cfg.Recommend, recommend.Deps{
		Catalog:   cat,
		Scorer:    scorer,
		Evaluator: evaluator,
		Searcher:  searcher,
	}, logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create alternatives engine: %w", err)
	}

	a.perfMon = middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowThreshold, logger)
	a.handler, err = api.NewHandler(api.Deps{
		Generator:    itinerary.NewGenerator(cat, scorer, builder, calc, searcher, logger),
		Builder:      builder,
		Alternatives: alternatives,
		Scorer:       scorer,
		Evaluator:    evaluator,
		Travel:       calc,
		Clusters:     cluster.NewService(cluster.NewEngine(cat, calc), store, logger),
		Checks:       checks,
		PerfMon:      a.perfMon,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create handler: %w", err)
	}
	return a, nil
}

// buildSearcher selects the place provider and wraps it in the configured
// result cache.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func buildSearcher(cfg *config.Config, a *app, checks map[string]api.HealthCheck, logger zerolog.Logger) (places.Searcher, error) {
	var base places.Searcher
	switch cfg.Places.Provider {
	case config.ProviderHTTP:
		h := cfg.Places.HTTP
		base = places.NewHTTPSearcher(places.HTTPOptions{
			BaseURL:             h.URL,
			APIKey:              h.APIKey,
			Timeout:             h.Timeout,
			RequestsPerSecond:   h.RequestsPerSecond,
			Burst:               h.Burst,
			BreakerMinRequests:  h.BreakerMinRequests,
			BreakerFailureRatio: h.BreakerFailureRatio,
			BreakerTimeout:      h.BreakerTimeout,
		}, logger)
	default:
		if cfg.Places.FixturePath == "" {
			base = places.NewStaticSearcher(nil)
			break
		}
		static, err := places.NewStaticSearcherFromFile(cfg.Places.FixturePath)
		if err != nil {
			return nil, fmt.Errorf("load places fixture: %w", err)
		}
		base = static
	}

	switch cfg.Places.Cache {
	case config.CacheMemory:
		store := places.NewMemoryStore(cfg.Places.CacheTTL)
		a.expirers["places"] = store
		return places.NewCachedSearcher(base, store, logger), nil
	case config.CacheRedis:
		r := cfg.Places.Redis
		store := places.NewRedisStore(places.RedisOptions{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
			TTL:      cfg.Places.CacheTTL,
		})
		a.closers = append(a.closers, store)
		checks["redis"] = func(ctx context.Context) error { return store.Ping(ctx) }
		return places.NewCachedSearcher(base, store, logger), nil
	default:
		return base, nil
	}
}
