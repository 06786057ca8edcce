package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/pkg/metrics"
)

// File-backed, in-memory Store implementation.
//
// The catalog lives in a JSON file (a flat array of venues). Reads are
// served from an immutable snapshot behind an atomic pointer, so request
// handlers never contend with reloads.

// snapshot is an immutable view of the catalog.
type snapshot struct {
	venues     []model.Venue
	byID       map[string]model.Venue
	categories []string
	areas      []string
	dealCount  int
}

type FileStore struct {
	path           string
	reloadInterval time.Duration // how often to re-read the data file; 0 disables

	current atomic.Pointer[snapshot]

	// Background goroutine management
	wg        sync.WaitGroup
	stopChan  chan struct{}
	closeOnce sync.Once
}

// NewFileStore constructs a catalog store backed by the given JSON file and
// performs the initial load. Background reload and metrics goroutines stop
// when ctx is cancelled or Close is called.
func NewFileStore(ctx context.Context, path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path: path,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	s.stopChan = make(chan struct{})
	if s.reloadInterval > 0 {
		s.startPeriodicReloads(ctx)
	}
	s.startMetricsUpdater(ctx)

	return s, nil
}

// Reload re-reads the data file, rebuilds the derived indexes and swaps the
// published snapshot. On any error the previous snapshot stays live.
func (s *FileStore) Reload(_ context.Context) error {
	start := time.Now()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", s.path, err)
	}

	var venues []model.Venue
	if err := json.Unmarshal(raw, &venues); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", s.path, err)
	}
	if len(venues) == 0 {
		return ErrEmptyCatalog
	}

	next := buildSnapshot(venues)
	s.current.Store(next)

	metrics.UpdateCatalogVenues(len(next.venues))
	metrics.UpdateCatalogDeals(next.dealCount)
	metrics.RecordCatalogSnapshot(float64(time.Since(start).Nanoseconds()) / 1e6)

	return nil
}

// buildSnapshot derives the id index and the distinct category and area
// lists from the venue set.
func buildSnapshot(venues []model.Venue) *snapshot {
	byID := make(map[string]model.Venue, len(venues))
	categorySet := make(map[string]struct{})
	areaSet := make(map[string]struct{})
	dealCount := 0

	for _, v := range venues {
		byID[v.ID] = v
		if v.Category != "" {
			categorySet[v.Category] = struct{}{}
		}
		if v.Zip != "" {
			areaSet[v.Zip] = struct{}{}
		}
		dealCount += len(v.Deals)
	}

	return &snapshot{
		venues:     venues,
		byID:       byID,
		categories: sortedKeys(categorySet),
		areas:      sortedKeys(areaSet),
		dealCount:  dealCount,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns the current venue set.
func (s *FileStore) Snapshot(_ context.Context) []model.Venue {
	return s.current.Load().venues
}

// ByID returns a single venue or ErrNotFound.
func (s *FileStore) ByID(_ context.Context, id string) (model.Venue, error) {
	v, ok := s.current.Load().byID[id]
	if !ok {
		return model.Venue{}, ErrNotFound
	}
	return v, nil
}

// Categories returns the distinct venue categories, sorted.
func (s *FileStore) Categories(_ context.Context) []string {
	return s.current.Load().categories
}

// Areas returns the distinct zip areas, sorted.
func (s *FileStore) Areas(_ context.Context) []string {
	return s.current.Load().areas
}

// Count returns the number of venues in the catalog.
func (s *FileStore) Count(_ context.Context) int {
	return len(s.current.Load().venues)
}

// DealCount returns the total number of deal windows in the catalog.
func (s *FileStore) DealCount(_ context.Context) int {
	return s.current.Load().dealCount
}

// startPeriodicReloads re-reads the data file at the configured interval so
// catalog edits show up without a restart.
func (s *FileStore) startPeriodicReloads(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.reloadInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				if err := s.Reload(ctx); err != nil {
					metrics.RecordErrorByComponent("repository", "reload")
				}
			}
		}
	}()
}

// startMetricsUpdater keeps the catalog gauges fresh even when no reloads
// happen.
func (s *FileStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				snap := s.current.Load()
				metrics.UpdateCatalogVenues(len(snap.venues))
				metrics.UpdateCatalogDeals(snap.dealCount)
			}
		}
	}()
}

// Close stops the background goroutines and waits for them to exit.
func (s *FileStore) Close() {
	s.closeOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
}
