// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package places

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// maxErrorBodySize limits how much of an error response is read for diagnostics.
const maxErrorBodySize = 64 * 1024

// ErrRejected is returned when the backend answers with a client error. It does
// not count against the circuit breaker.
var ErrRejected = errors.New("place search rejected")

// HTTPOptions configures an HTTPSearcher.
type HTTPOptions struct {
	// BaseURL of the search backend; requests go to BaseURL + "/search".
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// RequestsPerSecond and Burst bound outbound traffic. Zero disables the limit.
	RequestsPerSecond float64
	Burst             int

	// Breaker settings. Zero values fall back to the defaults below.
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerTimeout      time.Duration
}

// searchResponse is the backend's JSON body.
type searchResponse struct {
	Places []models.Place `json:"places"`
}

// HTTPSearcher queries a remote JSON search backend. Requests are rate limited
// and wrapped in a circuit breaker; an open breaker fails fast with
// gobreaker.ErrOpenState.
type HTTPSearcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]models.Place]
	logger  zerolog.Logger
}

// NewHTTPSearcher creates a searcher for the backend at opts.BaseURL.
//
// Breaker defaults: at least 10 requests in a one minute window, opening at a
// 60% failure rate, probing again after 30 seconds with up to 3 requests.
func NewHTTPSearcher(opts HTTPOptions, logger zerolog.Logger) *HTTPSearcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.BreakerMinRequests == 0 {
		opts.BreakerMinRequests = 10
	}
	if opts.BreakerFailureRatio <= 0 {
		opts.BreakerFailureRatio = 0.6
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	s := &HTTPSearcher{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		client:  &http.Client{Timeout: opts.Timeout},
		logger:  logger.With().Str("component", "places-http").Logger(),
	}

	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	const cbName = "places-api"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	s.cb = gobreaker.NewCircuitBreaker[[]models.Place](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < opts.BreakerMinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= opts.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected) || errors.Is(err, context.Canceled)
		},
	})

	return s
}

// State returns the circuit breaker state.
func (s *HTTPSearcher) State() gobreaker.State {
	return s.cb.State()
}

// Search posts q to the backend and decodes the places it returns.
func (s *HTTPSearcher) Search(ctx context.Context, q Query) ([]models.Place, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("place search rate limit: %w", err)
		}
	}

	found, err := s.cb.Execute(func() ([]models.Place, error) {
		return s.do(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.Warn().Err(err).Str("city", q.City).Msg("Place search rejected by circuit breaker")
		}
		return nil, err
	}
	return found, nil
}

func (s *HTTPSearcher) do(ctx context.Context, q Query) ([]models.Place, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode place query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create place search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place search request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("place search: HTTP %d: %s", resp.StatusCode, readBodyForError(resp.Body))
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrRejected, resp.StatusCode, readBodyForError(resp.Body))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode place search response: %w", err)
	}
	return decoded.Places, nil
}

func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return bytes.TrimSpace(body)
}
