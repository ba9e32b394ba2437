// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/waypoint/internal/itinerary"
	"github.com/tomtom215/waypoint/internal/models"
)

// run executes the planner with args. Commands share the global logger, so
// these tests do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const fixture = `cities:
  Paris:
    - id: louvre
      name: Louvre Museum
      types: [museum, tourist_attraction]
      rating: 4.7
      location: {lat: 48.8606, lng: 2.3376}
    - id: orsay
      name: Musee d'Orsay
      types: [museum]
      rating: 4.8
      location: {lat: 48.8600, lng: 2.3266}
    - id: luxembourg
      name: Jardin du Luxembourg
      types: [park]
      rating: 4.7
      location: {lat: 48.8462, lng: 2.3372}
`

func TestPlanCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.yaml")
	if err := os.WriteFile(path, []byte(fixture), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "plan", "--start", "2026-05-04", "--city", "Paris:2", "--places", path, "--pace", "relaxed")
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}

	var it models.Itinerary
	if err := json.Unmarshal([]byte(out), &it); err != nil {
		t.Fatalf("decode itinerary: %v\n%s", err, out)
	}
	if len(it.Days) != 3 {
		t.Errorf("days = %d, want 3", len(it.Days))
	}
	if it.StartDate.String() != "2026-05-04" || it.EndDate.String() != "2026-05-06" {
		t.Errorf("dates = %s..%s, want 2026-05-04..2026-05-06", it.StartDate, it.EndDate)
	}
	if diff := cmp.Diff([]string{"Paris"}, it.Cities); diff != "" {
		t.Errorf("cities mismatch (-want +got):\n%s", diff)
	}
	if it.Metadata.Pace != models.PaceRelaxed {
		t.Errorf("pace = %q, want relaxed", it.Metadata.Pace)
	}
}

func TestPlanCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no dates", args: []string{"plan", "--city", "Paris:2"}},
		{name: "bad nights", args: []string{"plan", "--start", "2026-05-04", "--city", "Paris:two"}},
		{name: "bad date", args: []string{"plan", "--start", "May 4", "--city", "Paris"}},
		{name: "end before start", args: []string{"plan", "--start", "2026-05-04", "--end", "2026-05-01", "--city", "Paris"}},
		{name: "missing trip file", args: []string{"plan", "--trip", "/nonexistent/trip.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPlanOptions_TripFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.json")
	trip := `{"start_date":"2026-05-04","end_date":"2026-05-08","cities":[{"name":"Lyon","nights":4}],"pace":"packed"}`
	if err := os.WriteFile(path, []byte(trip), 0o600); err != nil {
		t.Fatal(err)
	}

	opts := &planOptions{tripPath: path, cities: []string{"Paris:1", "Lyon:3"}, pace: "balanced"}
	req, err := opts.request()
	if err != nil {
		t.Fatalf("request() error: %v", err)
	}
	want := []itinerary.CityStop{{Name: "Paris", Nights: 1}, {Name: "Lyon", Nights: 3}}
	if diff := cmp.Diff(want, req.Cities); diff != "" {
		t.Errorf("cities mismatch (-want +got):\n%s", diff)
	}
	if req.Pace != models.PaceBalanced {
		t.Errorf("pace = %q, want the flag to win", req.Pace)
	}
	if req.EndDate.String() != "2026-05-08" {
		t.Errorf("end = %s, want the file's end date kept", req.EndDate)
	}
}

func TestParseCityStop(t *testing.T) {
	tests := []struct {
		in      string
		want    itinerary.CityStop
		wantErr bool
	}{
		{in: "Paris:3", want: itinerary.CityStop{Name: "Paris", Nights: 3}},
		{in: " Lyon : 0 ", want: itinerary.CityStop{Name: "Lyon", Nights: 0}},
		{in: "St. Ives", want: itinerary.CityStop{Name: "St. Ives", Nights: 1}},
		{in: ":2", wantErr: true},
		{in: "Paris:-1", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseCityStop(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCityStop(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCityStop(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestTravelCommand(t *testing.T) {
	out, err := run(t, "travel", "--from", "48.8566,2.3522", "--to", "45.7640,4.8357", "--mode", "driving")
	if err != nil {
		t.Fatalf("travel error: %v", err)
	}
	var seg models.TravelSegment
	if err := json.Unmarshal([]byte(out), &seg); err != nil {
		t.Fatalf("decode segment: %v", err)
	}
	if seg.Mode != models.ModeDriving {
		t.Errorf("mode = %q, want driving", seg.Mode)
	}
	// Paris to Lyon is roughly 390 km as the crow flies.
	if seg.DistanceKm < 390 || seg.DurationMinutes <= 0 {
		t.Errorf("segment = %+v, want road distance above 390 km and a positive duration", seg)
	}
}

func TestTravelCommand_Errors(t *testing.T) {
	tests := map[string][]string{
		"missing to":   {"travel", "--from", "48.85,2.35"},
		"bad from":     {"travel", "--from", "48.85", "--to", "45.76,4.83"},
		"out of range": {"travel", "--from", "98.85,2.35", "--to", "45.76,4.83"},
		"bad mode":     {"travel", "--from", "48.85,2.35", "--to", "45.76,4.83", "--mode", "teleport"},
		"bad depart":   {"travel", "--from", "48.85,2.35", "--to", "45.76,4.83", "--depart", "noon"},
	}
	for name, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestTablesCommand(t *testing.T) {
	out, err := run(t, "tables")
	if err != nil {
		t.Fatalf("tables error: %v", err)
	}
	for _, key := range []string{`"categories"`, `"modes"`, `"pace"`} {
		if !strings.Contains(out, key) {
			t.Errorf("tables output missing %s", key)
		}
	}
}
