// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/bardeals/happyhour/internal/app"
	"github.com/bardeals/happyhour/internal/domain/model"
)

// SubmissionDependencies defines the interface for submission intake.
type SubmissionDependencies interface {
	Accept(ctx context.Context, sub model.Submission) (model.Submission, bool, error)
}

// SubmissionsHandler handles submission requests.
type SubmissionsHandler struct {
	deps SubmissionDependencies
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps SubmissionDependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// submissionRequest mirrors the OpenAPI schema for POST /submissions.
type submissionRequest struct {
	Kind    string `json:"kind"`
	BarName string `json:"bar_name"`
	Address string `json:"address"`
	Details string `json:"details"`
	Note    string `json:"note"`
	Contact string `json:"contact"`
}

func (s submissionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.Kind) == "":
		return errors.New("missing kind")
	case strings.TrimSpace(s.BarName) == "":
		return errors.New("missing bar_name")
	}
	switch s.Kind {
	case "new_bar", "correction", "report":
	default:
		return errors.New("kind must be one of new_bar, correction, report")
	}
	return nil
}

// HandlePostSubmission handles POST /submissions requests.
func (h *SubmissionsHandler) HandlePostSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_submission"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	accepted, duplicate, err := h.deps.Accept(r.Context(), model.Submission{
		Kind:    req.Kind,
		BarName: req.BarName,
		Address: req.Address,
		Details: req.Details,
		Note:    req.Note,
		Contact: req.Contact,
	})
	if err != nil {
		if errors.Is(err, service.ErrQueueFull) {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:       "accepted",
		SubmissionID: accepted.ID,
		Duplicate:    false,
	})
}
