// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// MetaDependencies defines the interface for catalog metadata.
type MetaDependencies interface {
	Categories(ctx context.Context) ([]string, error)
	Areas(ctx context.Context) ([]string, error)
}

// MetaHandler handles catalog metadata requests.
type MetaHandler struct {
	deps MetaDependencies
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(deps MetaDependencies) *MetaHandler {
	return &MetaHandler{deps: deps}
}

// HandleGetCategories handles GET /meta/categories requests.
func (h *MetaHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_categories"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	categories, err := h.deps.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// HandleGetAreas handles GET /meta/areas requests.
func (h *MetaHandler) HandleGetAreas(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_areas"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	areas, err := h.deps.Areas(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, areas)
}
