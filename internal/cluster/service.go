// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cluster

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/waypoint/internal/models"
)

// Service manages the clusters of saved plans: it assigns new places, keeps
// centroids and stats current and persists every change.
type Service struct {
	engine *Engine
	store  Store
	logger zerolog.Logger

	// mu serializes read-modify-write cycles on the store.
	mu    sync.Mutex
	newID func() string
}

// NewService creates a cluster service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(engine *Engine, store Store, logger zerolog.Logger) *Service {
	return &Service{
		engine: engine,
		store:  store,
		logger: logger.With().Str("component", "cluster").Logger(),
		newID:  uuid.NewString,
	}
}

// Engine returns the service's clustering engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// List returns the plan's clusters.
func (s *Service) List(ctx context.Context, planID string) ([]models.Cluster, error) {
	clusters, err := s.store.Load(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("load clusters: %w", err)
	}
	if clusters == nil {
		clusters = []models.Cluster{}
	}
	return clusters, nil
}

// AddPlace assigns the place to a cluster of the plan, creating one when
// needed, and returns the updated cluster.
func (s *Service) AddPlace(ctx context.Context, planID string, place *models.Place) (*models.Cluster, Assignment, error) {
	if place == nil || place.ID == "" {
		return nil, Assignment{}, fmt.Errorf("%w: place id is required", models.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clusters, err := s.store.Load(ctx, planID)
	if err != nil {
		return nil, Assignment{}, fmt.Errorf("load clusters: %w", err)
	}
	for i := range clusters {
		if clusters[i].IndexOf(place.ID) >= 0 {
			return nil, Assignment{}, fmt.Errorf("%w: place %q is already in cluster %q",
				models.ErrInvalidInput, place.ID, clusters[i].ID)
		}
	}

	a := s.engine.Assign(clusters, place)
	if a.Decision == DecisionNew {
		clusters = append(clusters, models.Cluster{ID: s.newID(), Name: a.SuggestedName})
		a.Position = len(clusters) - 1
		a.ClusterID = clusters[a.Position].ID
	}

	c := &clusters[a.Position]
	c.Places = append(c.Places, *place)
	s.engine.Recompute(c)

	if err := s.store.Save(ctx, planID, clusters); err != nil {
		return nil, Assignment{}, fmt.Errorf("save clusters: %w", err)
	}

	s.logger.Debug().
		Str("plan_id", planID).
		Str("place_id", place.ID).
		Str("cluster_id", c.ID).
		Str("decision", string(a.Decision)).
		Int("walking_minutes", a.WalkingMinutes).
		Msg("Assigned place to cluster")

	out := *c
	return &out, a, nil
}

// RemovePlace removes a place from a cluster. A cluster left empty is deleted
// and nil is returned.
func (s *Service) RemovePlace(ctx context.Context, planID, clusterID, placeID string) (*models.Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clusters, pos, err := s.find(ctx, planID, clusterID)
	if err != nil {
		return nil, err
	}
	c := &clusters[pos]
	idx := c.IndexOf(placeID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: place %q in cluster %q", models.ErrNotFound, placeID, clusterID)
	}
	c.Places = append(c.Places[:idx], c.Places[idx+1:]...)

	var out *models.Cluster
	if len(c.Places) == 0 {
		clusters = append(clusters[:pos], clusters[pos+1:]...)
	} else {
		s.engine.Recompute(c)
		kept := *c
		out = &kept
	}

	if err := s.store.Save(ctx, planID, clusters); err != nil {
		return nil, fmt.Errorf("save clusters: %w", err)
	}
	return out, nil
}

// Reorder sets the member order of a cluster. placeIDs must name every member
// exactly once.
func (s *Service) Reorder(ctx context.Context, planID, clusterID string, placeIDs []string) (*models.Cluster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clusters, pos, err := s.find(ctx, planID, clusterID)
	if err != nil {
		return nil, err
	}
	c := &clusters[pos]
	if len(placeIDs) != len(c.Places) {
		return nil, fmt.Errorf("%w: order names %d places, cluster has %d",
			models.ErrInvalidInput, len(placeIDs), len(c.Places))
	}

	reordered := make([]models.Place, 0, len(placeIDs))
	seen := make(map[string]bool, len(placeIDs))
	for _, id := range placeIDs {
		idx := c.IndexOf(id)
		if idx < 0 || seen[id] {
			return nil, fmt.Errorf("%w: order must list each member once, got %q", models.ErrInvalidInput, id)
		}
		seen[id] = true
		reordered = append(reordered, c.Places[idx])
	}
	c.Places = reordered

	if err := s.store.Save(ctx, planID, clusters); err != nil {
		return nil, fmt.Errorf("save clusters: %w", err)
	}
	out := *c
	return &out, nil
}

// Delete removes a cluster from the plan.
func (s *Service) Delete(ctx context.Context, planID, clusterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clusters, pos, err := s.find(ctx, planID, clusterID)
	if err != nil {
		return err
	}
	clusters = append(clusters[:pos], clusters[pos+1:]...)
	if err := s.store.Save(ctx, planID, clusters); err != nil {
		return fmt.Errorf("save clusters: %w", err)
	}
	return nil
}

// Flow returns the cluster's members in day-flow order.
func (s *Service) Flow(ctx context.Context, planID, clusterID string) ([]models.Place, error) {
	clusters, pos, err := s.find(ctx, planID, clusterID)
	if err != nil {
		return nil, err
	}
	return s.engine.DayFlow(clusters[pos].Places), nil
}

func (s *Service) find(ctx context.Context, planID, clusterID string) ([]models.Cluster, int, error) {
	clusters, err := s.store.Load(ctx, planID)
	if err != nil {
		return nil, 0, fmt.Errorf("load clusters: %w", err)
	}
	for i := range clusters {
		if clusters[i].ID == clusterID {
			return clusters, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: cluster %q in plan %q", models.ErrNotFound, clusterID, planID)
}
