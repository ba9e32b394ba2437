// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cluster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
)

func newTestService(t *testing.T) (*Service, *BadgerStore) {
	t.Helper()

	store, err := OpenBadgerStore("")
	if err != nil {
		t.Fatalf("OpenBadgerStore() error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})

	svc := NewService(newTestEngine(), store, logging.NewTestLogger(io.Discard))
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("cluster-%d", n)
	}
	return svc, store
}

func placeIDs(c *models.Cluster) []string {
	ids := make([]string, 0, len(c.Places))
	for i := range c.Places {
		ids = append(ids, c.Places[i].ID)
	}
	return ids
}

func TestServiceAddPlace(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	museum := place("louvre", "museum", at(48.8606, 2.3376))
	museum.Area = "1st arrondissement"
	c, a, err := svc.AddPlace(ctx, "trip", &museum)
	if err != nil {
		t.Fatalf("AddPlace() error: %v", err)
	}
	if a.Decision != DecisionNew || c.ID != "cluster-1" || c.Name != "1st arrondissement" {
		t.Errorf("first place: decision %q, cluster %q named %q", a.Decision, c.ID, c.Name)
	}

	bistro := place("bistro", "restaurant", at(48.8616, 2.3386))
	c, a, err = svc.AddPlace(ctx, "trip", &bistro)
	if err != nil {
		t.Fatalf("AddPlace() error: %v", err)
	}
	if a.Decision != DecisionExisting || c.ID != "cluster-1" {
		t.Errorf("nearby restaurant: decision %q, cluster %q", a.Decision, c.ID)
	}
	if c.Stats.PlaceCount != 2 || c.Centroid == nil {
		t.Errorf("cluster not recomputed: %+v", c)
	}

	sacre := place("sacre-coeur", "church", at(48.8867, 2.3431))
	sacre.Area = "Montmartre"
	c, _, err = svc.AddPlace(ctx, "trip", &sacre)
	if err != nil {
		t.Fatalf("AddPlace() error: %v", err)
	}
	if c.ID != "cluster-2" || c.Name != "Montmartre" {
		t.Errorf("far place joined %q named %q, want new cluster-2 Montmartre", c.ID, c.Name)
	}

	clusters, err := svc.List(ctx, "trip")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("List() returned %d clusters, want 2", len(clusters))
	}
	if diff := cmp.Diff([]string{"louvre", "bistro"}, placeIDs(&clusters[0])); diff != "" {
		t.Errorf("cluster-1 members mismatch (-want +got):\n%s", diff)
	}

	plans, err := store.Plans(ctx)
	if err != nil {
		t.Fatalf("Plans() error: %v", err)
	}
	if diff := cmp.Diff([]string{"trip"}, plans); diff != "" {
		t.Errorf("Plans() mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := svc.AddPlace(ctx, "trip", &bistro); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("duplicate AddPlace() error = %v, want ErrInvalidInput", err)
	}
	if _, _, err := svc.AddPlace(ctx, "trip", &models.Place{}); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("AddPlace(no id) error = %v, want ErrInvalidInput", err)
	}
}

func TestServiceReorderAndFlow(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, p := range []models.Place{
		place("museum", "museum", at(48.0, 2.0)),
		place("bar", "bar", at(48.001, 2.0)),
		place("coffee", "cafe", at(48.0, 2.001)),
	} {
		if _, _, err := svc.AddPlace(ctx, "plan", &p); err != nil {
			t.Fatalf("AddPlace(%s) error: %v", p.ID, err)
		}
	}

	c, err := svc.Reorder(ctx, "plan", "cluster-1", []string{"bar", "coffee", "museum"})
	if err != nil {
		t.Fatalf("Reorder() error: %v", err)
	}
	if diff := cmp.Diff([]string{"bar", "coffee", "museum"}, placeIDs(c)); diff != "" {
		t.Errorf("Reorder() mismatch (-want +got):\n%s", diff)
	}

	flow, err := svc.Flow(ctx, "plan", "cluster-1")
	if err != nil {
		t.Fatalf("Flow() error: %v", err)
	}
	var ids []string
	for _, p := range flow {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"coffee", "museum", "bar"}, ids); diff != "" {
		t.Errorf("Flow() mismatch (-want +got):\n%s", diff)
	}

	invalid := [][]string{
		{"bar", "coffee"},
		{"bar", "bar", "museum"},
		{"bar", "coffee", "unknown"},
	}
	for _, order := range invalid {
		if _, err := svc.Reorder(ctx, "plan", "cluster-1", order); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("Reorder(%v) error = %v, want ErrInvalidInput", order, err)
		}
	}
	if _, err := svc.Reorder(ctx, "plan", "missing", nil); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Reorder(missing cluster) error = %v, want ErrNotFound", err)
	}
}

func TestServiceRemoveAndDelete(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	a := place("a", "museum", at(48.0, 2.0))
	b := place("b", "park", at(48.001, 2.0))
	far := place("far", "park", at(49.0, 2.0))
	for _, p := range []*models.Place{&a, &b, &far} {
		if _, _, err := svc.AddPlace(ctx, "plan", p); err != nil {
			t.Fatalf("AddPlace(%s) error: %v", p.ID, err)
		}
	}

	c, err := svc.RemovePlace(ctx, "plan", "cluster-1", "a")
	if err != nil {
		t.Fatalf("RemovePlace() error: %v", err)
	}
	if c == nil || c.Stats.PlaceCount != 1 || c.Centroid.Lat != 48.001 {
		t.Errorf("RemovePlace() = %+v, want one member centred on b", c)
	}

	if _, err := svc.RemovePlace(ctx, "plan", "cluster-1", "a"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("RemovePlace(removed) error = %v, want ErrNotFound", err)
	}

	c, err = svc.RemovePlace(ctx, "plan", "cluster-1", "b")
	if err != nil {
		t.Fatalf("RemovePlace(last) error: %v", err)
	}
	if c != nil {
		t.Errorf("RemovePlace(last) = %+v, want nil for a deleted cluster", c)
	}

	clusters, err := svc.List(ctx, "plan")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(clusters) != 1 || clusters[0].ID != "cluster-2" {
		t.Fatalf("List() = %+v, want only cluster-2", clusters)
	}

	if err := svc.Delete(ctx, "plan", "cluster-2"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := svc.Delete(ctx, "plan", "cluster-2"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete(again) error = %v, want ErrNotFound", err)
	}

	clusters, err = svc.List(ctx, "plan")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if clusters == nil || len(clusters) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", clusters)
	}
	plans, err := store.Plans(ctx)
	if err != nil {
		t.Fatalf("Plans() error: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("Plans() = %v, want none after the last cluster is deleted", plans)
	}
}

func TestBadgerStoreCancelledContext(t *testing.T) {
	t.Parallel()

	_, store := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Load(ctx, "plan"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
	if err := store.Save(ctx, "plan", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}
