// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package api exposes the planning engines over HTTP using the Chi router.

# Endpoints

All routes live under /api/v1 and answer with the models.APIResponse envelope:

	POST   /itineraries                                   plan a trip
	POST   /itineraries/regenerate                        re-plan as the next version
	POST   /schedule/day                                  build one day
	POST   /alternatives                                  replacement suggestions for a slot
	POST   /score                                         rank places against preferences
	POST   /hours/evaluate                                per-slot opening hours and fit
	POST   /travel/segment                                point-to-point estimate
	POST   /travel/route                                  chained estimate through waypoints
	POST   /travel/departure                              when to leave to arrive on time
	GET    /plans/{planID}/clusters                       list clusters
	POST   /plans/{planID}/clusters                       add a place (auto-assigned)
	DELETE /plans/{planID}/clusters/{clusterID}           delete a cluster
	PUT    /plans/{planID}/clusters/{clusterID}/order     reorder a cluster's places
	DELETE /plans/{planID}/clusters/{clusterID}/places/{placeID}
	GET    /plans/{planID}/clusters/{clusterID}/flow      places in day-flow order
	GET    /health, /health/live, /health/ready
	GET    /stats/latency                                 recent per-endpoint latency

Prometheus metrics are served at /metrics outside the versioned prefix.

# Errors

	400 VALIDATION_FAILED  request struct validation (go-playground/validator)
	400 INVALID_INPUT      malformed JSON or a request the engine rejects
	404 NOT_FOUND          unknown plan, cluster or place
	429 RATE_LIMIT_EXCEEDED
	500 INTERNAL_ERROR

# Middleware

Request IDs, CORS (go-chi/cors), per-IP rate limiting (go-chi/httprate),
security headers, panic recovery and Prometheus instrumentation are applied by
Router.Setup.
*/
package api
