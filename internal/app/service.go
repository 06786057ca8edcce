// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bardeals/happyhour/internal/adapters/forms"
	"github.com/bardeals/happyhour/internal/adapters/geocode"
	submissionqueue "github.com/bardeals/happyhour/internal/adapters/mq/queue"
	workerpool "github.com/bardeals/happyhour/internal/adapters/mq/worker"
	"github.com/bardeals/happyhour/internal/adapters/repository"
	"github.com/bardeals/happyhour/internal/domain/dealtime"
	"github.com/bardeals/happyhour/internal/domain/dedupe"
	"github.com/bardeals/happyhour/internal/domain/geo"
	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/internal/domain/ranking"
	"github.com/bardeals/happyhour/internal/domain/selection"
	"github.com/bardeals/happyhour/internal/domain/types"
	"github.com/bardeals/happyhour/pkg/logger"
	"github.com/bardeals/happyhour/pkg/metrics"
)

// Geocoder resolves free-text place queries.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (*geocode.Result, error)
}

// Query mirrors the caller-facing ranking parameters.
type Query = types.Query

// Service implements the API dependencies for the deal directory.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   *repository.FileStore
	deduper   dedupe.Deduper
	queue     submissionqueue.Queue
	forwarder workerpool.Forwarder
	pool      *workerpool.Pool
	geocoder  Geocoder

	// Configuration
	dataFile        string
	reloadInterval  time.Duration
	queueSize       int
	forwarderCount  int
	dedupeSize      int
	formEndpoint    string
	geocodeURL      string
	geocodeEmail    string
	maxResults      int
	defaultCategory string
	defaultArea     string
	defaultTime     string
	timezone        string

	// Clock and zone for evaluating deal windows; injectable in tests.
	clock func() time.Time
	loc   *time.Location

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataFile:        "data/bars.json",
		queueSize:       10_000,
		forwarderCount:  2,
		dedupeSize:      50_000,
		maxResults:      200,
		defaultCategory: string(types.CategoryFeatured),
		defaultArea:     types.AreaAll,
		defaultTime:     string(types.FilterNow),
		timezone:        "Europe/Vienna",
		clock:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting deal directory service...")

	if s.loc == nil {
		loc, err := time.LoadLocation(s.timezone)
		if err != nil {
			s.logger.Warn(ctx, "unknown timezone, falling back to UTC",
				logger.String("timezone", s.timezone),
				logger.Error(err),
			)
			loc = time.UTC
		}
		s.loc = loc
	}

	catalog, err := repository.NewFileStore(ctx, s.dataFile,
		repository.WithReloadInterval(s.reloadInterval),
	)
	if err != nil {
		return err
	}
	s.catalog = catalog

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = submissionqueue.NewInMemoryQueue(
		submissionqueue.WithCapacity(s.queueSize),
		submissionqueue.WithBufferSize(s.queueSize),
	)

	if s.forwarder == nil {
		s.forwarder = forms.NewClient(s.formEndpoint)
	}
	s.pool = workerpool.NewPool(s.forwarderCount, s.queue, s.forwarder,
		workerpool.WithReleaser(s.deduper),
	)
	s.pool.Start(ctx)

	if s.geocoder == nil {
		s.geocoder = geocode.NewClient(
			geocode.WithBaseURL(s.geocodeURL),
			geocode.WithEmail(s.geocodeEmail),
		)
	}

	s.started = true
	s.logger.Info(ctx, "deal directory service started",
		logger.String("dataFile", s.dataFile),
		logger.Int("venues", s.catalog.Count(ctx)),
		logger.Int("forwarders", s.forwarderCount),
		logger.Int("queueSize", s.queueSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping deal directory service...")

	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}
	if s.catalog != nil {
		s.catalog.Close()
	}

	s.started = false
	s.logger.Info(ctx, "deal directory service stopped")
}

// context builds the evaluation context for a query, applying defaults and
// the service clock.
func (s *Service) context(q Query) (types.Context, error) {
	category := q.Category
	if category == "" {
		category = s.defaultCategory
	}
	area := q.Area
	if area == "" {
		area = s.defaultArea
	}
	filter := q.Time
	if filter == "" {
		filter = s.defaultTime
	}
	switch types.TimeFilter(filter) {
	case types.FilterNow, types.FilterLater, types.FilterTomorrow:
	default:
		return types.Context{}, ErrInvalidTimeFilter
	}

	now := s.clock().In(s.loc)
	return types.Context{
		Weekday:  int(now.Weekday()),
		Minutes:  now.Hour()*60 + now.Minute(),
		Filter:   types.TimeFilter(filter),
		Category: category,
		Area:     area,
		ShowAll:  q.ShowAll,
		Location: q.Location,
	}, nil
}

// Results runs the ranking pipeline for a query.
func (s *Service) Results(ctx context.Context, q Query) ([]types.Result, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}

	evalCtx, err := s.context(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	metrics.RecordRankRequest()

	results := ranking.Rank(s.catalog.Snapshot(ctx), evalCtx)

	limit := q.Limit
	if limit <= 0 || limit > s.maxResults {
		limit = s.maxResults
	}
	if len(results) > limit {
		results = results[:limit]
	}

	metrics.RecordRankDuration(float64(time.Since(start).Nanoseconds()) / 1e6)
	metrics.RecordRankResults(len(results))

	return results, nil
}

// Venue evaluates a single venue under the query's context. Unlike Results
// it never filters the venue out; detail views always render.
func (s *Service) Venue(ctx context.Context, id string, q Query) (types.Result, error) {
	if !s.isStarted() {
		return types.Result{}, ErrNotStarted
	}

	evalCtx, err := s.context(q)
	if err != nil {
		return types.Result{}, err
	}

	v, err := s.catalog.ByID(ctx, id)
	if err != nil {
		return types.Result{}, err
	}

	deal := selection.Pick(v, evalCtx)
	status, label := selection.Describe(deal, evalCtx)

	r := types.Result{
		Venue:  v,
		Deal:   deal,
		Status: status,
		Label:  label,
	}
	if deal != nil {
		r.Schedule = dealtime.WindowLabel(*deal)
	}
	if evalCtx.Location != nil {
		km := geo.HaversineKm(evalCtx.Location.Lat, evalCtx.Location.Lng, v.Lat, v.Lng)
		r.DistanceKm = &km
		r.Distance = geo.FormatDistance(km)
	}
	return r, nil
}

// Random returns one venue drawn from the query's ranked results.
func (s *Service) Random(ctx context.Context, q Query) (types.Result, error) {
	results, err := s.Results(ctx, q)
	if err != nil {
		return types.Result{}, err
	}
	if len(results) == 0 {
		return types.Result{}, ErrNoMatch
	}

	metrics.RecordRandomPick()
	return results[rand.Intn(len(results))], nil //nolint:gosec // display feature, not security sensitive
}

// Categories lists the catalog's distinct categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.catalog.Categories(ctx), nil
}

// Areas lists the catalog's distinct zip areas.
func (s *Service) Areas(ctx context.Context) ([]string, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.catalog.Areas(ctx), nil
}

// Accept takes a submission, stamps identity and time, and queues it for
// forwarding. The duplicate flag reports an already-seen fingerprint; those
// submissions are acknowledged but not re-queued.
func (s *Service) Accept(ctx context.Context, sub model.Submission) (model.Submission, bool, error) {
	if !s.isStarted() {
		return model.Submission{}, false, ErrNotStarted
	}

	sub.ID = uuid.NewString()
	sub.Timestamp = s.clock().In(s.loc)

	fingerprint := dedupe.Fingerprint(sub)
	if s.deduper.SeenAndRecord(ctx, fingerprint) {
		metrics.RecordSubmissionDuplicate()
		s.logger.Debug(ctx, "duplicate submission detected",
			logger.String("barName", sub.BarName),
			logger.String("kind", sub.Kind),
		)
		return sub, true, nil
	}

	if !s.queue.Enqueue(ctx, sub) {
		// Give the fingerprint back so a retry is not counted as a dupe.
		s.deduper.Unrecord(ctx, fingerprint)
		metrics.RecordErrorByComponent("service", "queue_full")
		return model.Submission{}, false, ErrQueueFull
	}

	metrics.RecordSubmissionAccepted()
	s.logger.Info(ctx, "submission accepted",
		logger.String("submissionID", sub.ID),
		logger.String("kind", sub.Kind),
		logger.String("barName", sub.BarName),
	)
	return sub, false, nil
}

// Geocode resolves a place query. A nil result means no hits.
func (s *Service) Geocode(ctx context.Context, query string) (*geocode.Result, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.geocoder.Lookup(ctx, query)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"forwarderCount": s.forwarderCount,
		"queueSize":      s.queueSize,
		"dedupeSize":     s.dedupeSize,
		"timezone":       s.timezone,
	}

	if s.started {
		ctx := context.Background()
		stats["queueLength"] = s.queue.Len(ctx)
		stats["totalVenues"] = s.catalog.Count(ctx)
		stats["totalDeals"] = s.catalog.DealCount(ctx)
		stats["seenSubmissions"] = s.deduper.Size()
	}

	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
