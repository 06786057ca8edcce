// Package dedupe tracks submission fingerprints for idempotent intake.
package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bardeals/happyhour/internal/domain/model"
)

// Deduper records seen submission fingerprints so repeated posts of the
// same bar tip are accepted once.
type Deduper interface {
	// SeenAndRecord atomically checks whether the fingerprint was seen and
	// records it if not. Returns true when it was already seen.
	SeenAndRecord(ctx context.Context, fingerprint string) bool

	// Unrecord removes a fingerprint, allowing a retry. Used when a
	// submission was recorded but could not be queued.
	Unrecord(ctx context.Context, fingerprint string)

	Size() int64
}

// Fingerprint derives a stable identity for a submission from its kind and
// the normalized bar name and address. Contact details and free-text notes
// do not participate, so the same tip with a different note is still a
// duplicate.
func Fingerprint(s model.Submission) string {
	h := sha256.New()
	h.Write([]byte(normalize(s.Kind)))
	h.Write([]byte{0})
	h.Write([]byte(normalize(s.BarName)))
	h.Write([]byte{0})
	h.Write([]byte(normalize(s.Address)))
	return hex.EncodeToString(h.Sum(nil))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// inMemoryDeduper keeps fingerprints in a map with a FIFO eviction ring.
// maxSize <= 0 disables eviction entirely.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, oldest first; nil in unbounded mode
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper. The default capacity
// suits a single-process intake; tune it with WithMaxSize.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: 50000}
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.order = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[fingerprint]; exists {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}

	d.seen[fingerprint] = struct{}{}
	if d.maxSize > 0 {
		d.order = append(d.order, fingerprint)
	}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, fingerprint string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[fingerprint]; !exists {
		return
	}
	delete(d.seen, fingerprint)
	d.size.Add(-1)
	// The order ring may still hold the fingerprint; evictOldest skips
	// entries no longer present in the map.
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// evictOldest drops the oldest still-recorded fingerprint. Must be called
// with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		oldest := d.order[0]
		d.order = d.order[1:]
		if _, exists := d.seen[oldest]; exists {
			delete(d.seen, oldest)
			d.size.Add(-1)
			return
		}
	}
}
