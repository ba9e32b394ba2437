// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Command planner runs the planning engines locally, without the API server.
//
//	planner plan --start 2026-05-01 --city paris:3 --city lyon:2 --places places.yaml
//	planner travel --from 48.8566,2.3522 --to 45.7640,4.8357 --mode driving
//	planner tables --tables overrides.yaml
//
// Results are written to stdout as indented JSON; logs go to stderr.
package main

import (
	"os"

	"github.com/tomtom215/waypoint/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error().Err(err).Msg("planner failed")
		os.Exit(1)
	}
}
