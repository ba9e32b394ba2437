// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cluster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/waypoint/internal/models"
)

// Key prefixes for BadgerDB storage
const planKeyPrefix = "plan_clusters:"

// Store persists the ordered clusters of each plan.
type Store interface {
	// Load returns the plan's clusters in creation order. An unknown plan has
	// no clusters.
	Load(ctx context.Context, planID string) ([]models.Cluster, error)

	// Save replaces the plan's clusters. Saving an empty list removes the plan.
	Save(ctx context.Context, planID string, clusters []models.Cluster) error

	// Plans lists the plan IDs that have clusters.
	Plans(ctx context.Context) ([]string, error)
}

// BadgerStore implements Store using BadgerDB. An empty path keeps the data
// in memory.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens the store at path, or in memory when path is empty.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for clusters: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Load returns the plan's clusters.
func (s *BadgerStore) Load(ctx context.Context, planID string) ([]models.Cluster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var clusters []models.Cluster
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(planKey(planID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get plan clusters: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &clusters)
		})
	})
	if err != nil {
		return nil, err
	}
	return clusters, nil
}

// Save replaces the plan's clusters.
func (s *BadgerStore) Save(ctx context.Context, planID string, clusters []models.Cluster) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(clusters) == 0 {
		return s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete(planKey(planID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete plan clusters: %w", err)
			}
			return nil
		})
	}

	data, err := json.Marshal(clusters)
	if err != nil {
		return fmt.Errorf("marshal clusters: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(planKey(planID), data); err != nil {
			return fmt.Errorf("set plan clusters: %w", err)
		}
		return nil
	})
}

// Plans lists the stored plan IDs in key order.
func (s *BadgerStore) Plans(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(planKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), planKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return ids, nil
}

func planKey(planID string) []byte {
	return []byte(planKeyPrefix + planID)
}
