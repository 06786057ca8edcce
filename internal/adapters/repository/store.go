// Package repository defines the venue catalog store interface and errors.
package repository

import (
	"context"

	"github.com/bardeals/happyhour/internal/domain/model"
)

// Store provides read access to the venue catalog.
type Store interface {
	// Snapshot returns the current immutable venue set. Callers may hold
	// the slice across requests; it is never mutated after publication.
	Snapshot(ctx context.Context) []model.Venue

	// ByID returns a single venue.
	// Returns ErrNotFound if the id is unknown.
	ByID(ctx context.Context, id string) (model.Venue, error)

	// Categories returns the distinct venue categories, sorted.
	Categories(ctx context.Context) []string

	// Areas returns the distinct venue zip areas, sorted.
	Areas(ctx context.Context) []string

	// Count returns the number of venues in the catalog.
	Count(ctx context.Context) int

	// Reload re-reads the backing data file and atomically swaps the
	// published snapshot.
	Reload(ctx context.Context) error
}
