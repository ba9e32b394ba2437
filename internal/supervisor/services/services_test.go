// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeServer blocks in ListenAndServe until Shutdown is called.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	started     chan struct{}
	stop        chan struct{}
	shutdowns   atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.started <- struct{}{}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	close(f.stop)
	return f.shutdownErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	svc := NewHTTPServerService(server, 0, logging.NewTestLogger(io.Discard))
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want default 10s", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	<-server.started
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if server.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", server.shutdowns.Load())
	}
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	server.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(server, time.Second, logging.NewTestLogger(io.Discard))

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, server.listenErr) {
		t.Errorf("Serve() = %v, want wrapped listen error", err)
	}
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	server.shutdownErr = errors.New("connections still open")
	svc := NewHTTPServerService(server, time.Second, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	<-server.started
	cancel()

	if err := <-errCh; !errors.Is(err, server.shutdownErr) {
		t.Errorf("Serve() = %v, want wrapped shutdown error", err)
	}
}

// countingExpirer reports a fixed number of removals per sweep.
type countingExpirer struct {
	perSweep int
	sweeps   atomic.Int32
}

func (c *countingExpirer) CleanupExpired() int {
	c.sweeps.Add(1)
	return c.perSweep
}

func TestCacheJanitorService_Sweep(t *testing.T) {
	segments := &countingExpirer{perSweep: 3}
	idle := &countingExpirer{}
	svc := NewCacheJanitorService(map[string]cache.Expirer{
		"janitor_test_segments": segments,
		"janitor_test_idle":     idle,
		"janitor_test_nil":      nil,
	}, 0, logging.NewTestLogger(io.Discard))

	if svc.interval != DefaultSweepInterval {
		t.Errorf("interval = %v, want default", svc.interval)
	}

	counter := metrics.CacheSweepRemoved.WithLabelValues("janitor_test_segments")
	before := testutil.ToFloat64(counter)

	if got := svc.Sweep(); got != 3 {
		t.Errorf("Sweep() = %d, want 3", got)
	}
	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("cache_sweep_removed delta = %v, want 3", got)
	}
	if idle.sweeps.Load() != 1 {
		t.Errorf("idle cache swept %d times, want 1", idle.sweeps.Load())
	}
}

func TestCacheJanitorService_SweepsRealCaches(t *testing.T) {
	t.Parallel()

	segments := cache.NewBounded[int](10, time.Nanosecond)
	segments.Put("a", 1)
	segments.Put("b", 2)
	time.Sleep(time.Millisecond)

	svc := NewCacheJanitorService(map[string]cache.Expirer{"janitor_test_bounded": segments}, time.Hour, logging.NewTestLogger(io.Discard))
	if got := svc.Sweep(); got != 2 {
		t.Errorf("Sweep() = %d, want 2 expired entries", got)
	}
	if segments.Len() != 0 {
		t.Errorf("Len() = %d after sweep, want 0", segments.Len())
	}
}

func TestCacheJanitorService_ServeTicks(t *testing.T) {
	t.Parallel()

	exp := &countingExpirer{}
	svc := NewCacheJanitorService(map[string]cache.Expirer{"janitor_test_ticks": exp}, 5*time.Millisecond, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for exp.sweeps.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if exp.sweeps.Load() < 2 {
		t.Errorf("sweeps = %d, want at least 2", exp.sweeps.Load())
	}
}
