// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/bardeals/happyhour/internal/app"
)

// RandomDependencies defines the interface for random venue draws.
type RandomDependencies interface {
	Random(ctx context.Context, q Query) (Result, error)
}

// RandomHandler handles random venue requests.
type RandomHandler struct {
	deps RandomDependencies
}

// NewRandomHandler creates a new random handler.
func NewRandomHandler(deps RandomDependencies) *RandomHandler {
	return &RandomHandler{deps: deps}
}

// HandleGetRandom handles GET /venues/random requests.
func (h *RandomHandler) HandleGetRandom(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_random"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}

	result, err := h.deps.Random(r.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrNoMatch) {
			writeError(w, http.StatusNotFound, "no_match", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
