// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
)

// identifiers in paths are opaque but bounded
var validPathID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// pathIDs reads the named URL parameters, rejecting malformed ones.
func pathIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	out := make([]string, len(names))
	for i, name := range names {
		v := chi.URLParam(r, name)
		if !validPathID.MatchString(v) {
			respondError(w, r, http.StatusBadRequest, CodeInvalidInput, "invalid "+name, nil)
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// ListClusters returns a plan's clusters in creation order.
//
// GET /api/v1/plans/{planID}/clusters
func (h *Handler) ListClusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ids, ok := pathIDs(w, r, "planID")
	if !ok {
		return
	}

	clusters, err := h.deps.Clusters.List(r.Context(), ids[0])
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, clusters)
}

// AddPlaceToCluster assigns a place to the nearest suitable cluster, creating
// one when none is within walking distance.
//
// POST /api/v1/plans/{planID}/clusters
func (h *Handler) AddPlaceToCluster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ids, ok := pathIDs(w, r, "planID")
	if !ok {
		return
	}

	var req AddPlaceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c, assignment, err := h.deps.Clusters.AddPlace(r.Context(), ids[0], &req.Place)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusCreated, start, AddPlaceResponse{Cluster: c, Assignment: assignment})
}

// DeleteCluster removes a cluster and its places from the plan.
//
// DELETE /api/v1/plans/{planID}/clusters/{clusterID}
func (h *Handler) DeleteCluster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ids, ok := pathIDs(w, r, "planID", "clusterID")
	if !ok {
		return
	}

	if err := h.deps.Clusters.Delete(r.Context(), ids[0], ids[1]); err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, DeleteResponse{Deleted: ids[1]})
}

// ReorderCluster sets the order of a cluster's places.
//
// PUT /api/v1/plans/{planID}/clusters/{clusterID}/order
func (h *Handler) ReorderCluster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ids, ok := pathIDs(w, r, "planID", "clusterID")
	if !ok {
		return
	}

	var req ReorderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.deps.Clusters.Reorder(r.Context(), ids[0], ids[1], req.PlaceIDs)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, c)
}

// RemovePlaceFromCluster removes one place. Emptied clusters are deleted.
//
// DELETE /api/v1/plans/{planID}/clusters/{clusterID}/places/{placeID}
func (h *Handler) RemovePlaceFromCluster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ids, ok := pathIDs(w, r, "planID", "clusterID", "placeID")
	if !ok {
		return
	}

	c, err := h.deps.Clusters.RemovePlace(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, RemovePlaceResponse{Cluster: c, ClusterDeleted: c == nil})
}

// ClusterFlow returns a cluster's places in natural day-flow order.
//
// GET /api/v1/plans/{planID}/clusters/{clusterID}/flow
func (h *Handler) ClusterFlow(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ids, ok := pathIDs(w, r, "planID", "clusterID")
	if !ok {
		return
	}

	places, err := h.deps.Clusters.Flow(r.Context(), ids[0], ids[1])
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, places)
}
