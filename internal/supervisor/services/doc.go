// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package services provides suture.Service wrappers for Waypoint's long-lived
// components.
//
//   - HTTPServerService: runs an *http.Server and shuts it down gracefully
//     when its context is canceled
//   - CacheJanitorService: sweeps expired entries from the travel segment and
//     place caches on a ticker, counting removals in
//     waypoint_cache_sweep_removed_total{cache}
//
// Every service implements Serve(ctx) error and String() so suture can name it
// in its event log. Serve returns ctx.Err() on shutdown.
package services
