// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package supervisor runs Waypoint's long-lived services under a suture v4
supervisor tree.

# Tree Layout

	waypoint (root)
	├── data-layer
	│   └── cache-janitor      sweeps expired travel and place cache entries
	└── api-layer
	    └── http-server        serves the chi router

Services that return an error or panic are restarted with suture's failure
decay and backoff. Supervisor events are logged through sutureslog, whose
slog.Logger is backed by zerolog via logging.NewSlogHandlerWithLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCacheJanitorService(sweepers, time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Serve returns once every service has stopped or the shutdown timeout elapsed;
UnstoppedServiceReport names the stragglers.
*/
package supervisor
