// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/bardeals/happyhour/internal/adapters/geocode"
)

// GeocodeDependencies defines the interface for place lookups.
type GeocodeDependencies interface {
	Geocode(ctx context.Context, query string) (*geocode.Result, error)
}

// GeocodeHandler handles geocoding requests.
type GeocodeHandler struct {
	deps GeocodeDependencies
}

// NewGeocodeHandler creates a new geocode handler.
func NewGeocodeHandler(deps GeocodeDependencies) *GeocodeHandler {
	return &GeocodeHandler{deps: deps}
}

// HandleGeocode handles GET /geocode?q=... requests.
func (h *GeocodeHandler) HandleGeocode(w http.ResponseWriter, r *http.Request) {
	const op = "api.geocode"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	result, err := h.deps.Geocode(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream_error", Wrap(op, err))
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "no_results", nil)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
