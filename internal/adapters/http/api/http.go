// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bardeals/happyhour/internal/adapters/geocode"
	"github.com/bardeals/happyhour/internal/adapters/repository"
	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose ranked catalog data.
	Results(ctx context.Context, q Query) ([]Result, error)
	Venue(ctx context.Context, id string, q Query) (Result, error)
	Random(ctx context.Context, q Query) (Result, error)
	Categories(ctx context.Context) ([]string, error)
	Areas(ctx context.Context) ([]string, error)

	// Accept takes a submission for async forwarding. The bool reports a
	// duplicate fingerprint.
	Accept(ctx context.Context, sub model.Submission) (model.Submission, bool, error)

	// Geocode resolves a place query; nil result means no hits.
	Geocode(ctx context.Context, query string) (*geocode.Result, error)
}

// Result mirrors the read shape returned by ranking queries.
type Result = types.Result

// Query mirrors the caller-facing ranking parameters.
type Query = types.Query

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	venuesHandler      *VenuesHandler
	venueHandler       *VenueHandler
	randomHandler      *RandomHandler
	metaHandler        *MetaHandler
	submissionsHandler *SubmissionsHandler
	geocodeHandler     *GeocodeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxResults int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		venuesHandler:      NewVenuesHandler(deps, maxResults),
		venueHandler:       NewVenueHandler(deps),
		randomHandler:      NewRandomHandler(deps),
		metaHandler:        NewMetaHandler(deps),
		submissionsHandler: NewSubmissionsHandler(deps),
		geocodeHandler:     NewGeocodeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/venues/random", MetricsMiddleware(s.randomHandler.HandleGetRandom, "venues_random"))
	mux.HandleFunc("/venues", MetricsMiddleware(s.venuesHandler.HandleGetVenues, "venues"))
	mux.HandleFunc("/venue/", MetricsMiddleware(s.venueHandler.HandleGetVenue, "venue"))
	mux.HandleFunc("/meta/categories", MetricsMiddleware(s.metaHandler.HandleGetCategories, "meta_categories"))
	mux.HandleFunc("/meta/areas", MetricsMiddleware(s.metaHandler.HandleGetAreas, "meta_areas"))
	mux.HandleFunc("/submissions", MetricsMiddleware(s.submissionsHandler.HandlePostSubmission, "submissions"))
	mux.HandleFunc("/geocode", MetricsMiddleware(s.geocodeHandler.HandleGeocode, "geocode"))
}

// parseQuery extracts the shared ranking parameters from the request.
// lat and lng must arrive as a pair; a lone coordinate is a client error.
func parseQuery(r *http.Request) (Query, error) {
	values := r.URL.Query()
	q := Query{
		Category: values.Get("category"),
		Area:     values.Get("area"),
		Time:     values.Get("time"),
		ShowAll:  values.Get("show_all") == "true" || values.Get("show_all") == "1",
	}

	if q.Time != "" {
		switch types.TimeFilter(q.Time) {
		case types.FilterNow, types.FilterLater, types.FilterTomorrow:
		default:
			return Query{}, fmt.Errorf("%w: time must be one of now, later, tomorrow", ErrBadRequest)
		}
	}

	latStr, lngStr := values.Get("lat"), values.Get("lng")
	switch {
	case latStr == "" && lngStr == "":
	case latStr == "" || lngStr == "":
		return Query{}, fmt.Errorf("%w: lat and lng must be provided together", ErrBadRequest)
	default:
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return Query{}, fmt.Errorf("%w: lat and lng must be decimal degrees", ErrBadRequest)
		}
		q.Location = &model.Location{Lat: lat, Lng: lng}
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return Query{}, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
		}
		q.Limit = limit
	}

	return q, nil
}

type ackResponse struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submission_id,omitempty"`
	Duplicate    bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
