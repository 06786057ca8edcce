// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
)

// VenueDependencies defines the interface for single-venue lookups.
type VenueDependencies interface {
	Venue(ctx context.Context, id string, q Query) (Result, error)
}

// VenueHandler handles venue detail requests.
type VenueHandler struct {
	deps VenueDependencies
}

// NewVenueHandler creates a new venue handler.
func NewVenueHandler(deps VenueDependencies) *VenueHandler {
	return &VenueHandler{deps: deps}
}

// HandleGetVenue handles GET /venue/{id} requests.
func (h *VenueHandler) HandleGetVenue(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_venue"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /venue/
	id := strings.TrimPrefix(r.URL.Path, "/venue/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}

	result, err := h.deps.Venue(r.Context(), id, q)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
