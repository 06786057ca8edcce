// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// VenuesDependencies defines the interface for listing ranked venues.
type VenuesDependencies interface {
	Results(ctx context.Context, q Query) ([]Result, error)
}

// VenuesHandler handles venue listing requests.
type VenuesHandler struct {
	deps       VenuesDependencies
	maxResults int
}

// NewVenuesHandler creates a new venues handler.
func NewVenuesHandler(deps VenuesDependencies, maxResults int) *VenuesHandler {
	return &VenuesHandler{
		deps:       deps,
		maxResults: maxResults,
	}
}

// HandleGetVenues handles GET /venues requests.
func (h *VenuesHandler) HandleGetVenues(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_venues"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if q.Limit > h.maxResults {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	results, err := h.deps.Results(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, results)
}
