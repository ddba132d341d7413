// Package cache provides the fingerprint-keyed result cache for candidate
// evaluations. It guarantees at-most-one computation per fingerprint under
// concurrent access, so duplicate requests never trigger duplicate expensive
// verification calls, and bounds its memory with size and age eviction.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/fitscore/internal/extraction"
	"github.com/jonathan/fitscore/internal/types"
)

// Fingerprint deterministically identifies a (text, role) pair.
type Fingerprint string

// FingerprintFor derives the fingerprint from normalized candidate text and
// the role identifier.
func FingerprintFor(text, role string) Fingerprint {
	h := sha256.New()
	h.Write([]byte(extraction.NormalizeText(text)))
	h.Write([]byte{0})
	h.Write([]byte(role))
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// Default eviction bounds. Unbounded growth under high candidate volume is a
// known failure mode, so both bounds are always on.
const (
	DefaultMaxEntries = 10000
	DefaultMaxAge     = 24 * time.Hour
)

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithMaxEntries bounds the number of cached results; the oldest entries are
// evicted first.
func WithMaxEntries(n int) Option {
	return func(c *ResultCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithMaxAge bounds the lifetime of cached results.
func WithMaxAge(d time.Duration) Option {
	return func(c *ResultCache) {
		if d > 0 {
			c.maxAge = d
		}
	}
}

// withClock overrides the time source. Test hook.
func withClock(now func() time.Time) Option {
	return func(c *ResultCache) {
		c.now = now
	}
}

type entry struct {
	result    *types.EvaluationResult
	createdAt time.Time
}

// Stats is a snapshot of cache effectiveness counters.
type Stats struct {
	Size      int   `json:"size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// ResultCache owns its entries exclusively: callers always receive deep
// clones, never a pointer into the cache, so a cached result cannot be
// corrupted in place.
type ResultCache struct {
	mu      sync.Mutex
	entries map[Fingerprint]*entry
	// order holds fingerprints in insertion order for FIFO eviction.
	order []Fingerprint

	maxEntries int
	maxAge     time.Duration
	now        func() time.Time

	group singleflight.Group

	hits      int64
	misses    int64
	evictions int64
}

// New creates a result cache with the given options.
func New(opts ...Option) *ResultCache {
	c := &ResultCache{
		entries:    make(map[Fingerprint]*entry),
		maxEntries: DefaultMaxEntries,
		maxAge:     DefaultMaxAge,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached result for fp, or runs compute exactly once
// to produce it. Concurrent callers for the same fingerprint share a single
// in-flight computation via per-key single flight; unrelated fingerprints
// never serialize behind each other.
func (c *ResultCache) GetOrCompute(ctx context.Context, fp Fingerprint, compute func(ctx context.Context) (*types.EvaluationResult, error)) (*types.EvaluationResult, error) {
	if r, ok := c.lookup(fp); ok {
		return r, nil
	}

	v, err, _ := c.group.Do(string(fp), func() (any, error) {
		// A racing caller may have finished while this one waited on the key.
		if r, ok := c.lookup(fp); ok {
			return r, nil
		}
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.store(fp, result)
		return result.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	// Each caller gets its own clone of the shared singleflight value.
	return v.(*types.EvaluationResult).Clone(), nil
}

// lookup returns a clone of a live entry, expiring stale ones on the way.
func (c *ResultCache) lookup(fp Fingerprint) (*types.EvaluationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[fp]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.now().Sub(e.createdAt) > c.maxAge {
		c.removeLocked(fp)
		c.misses++
		c.evictions++
		return nil, false
	}
	c.hits++
	return e.result.Clone(), true
}

func (c *ResultCache) store(fp Fingerprint, result *types.EvaluationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[fp]; exists {
		return
	}
	c.entries[fp] = &entry{result: result, createdAt: c.now()}
	c.order = append(c.order, fp)
	for len(c.entries) > c.maxEntries {
		oldest := c.order[0]
		c.removeLocked(oldest)
		c.evictions++
	}
}

// removeLocked deletes an entry and its order slot. Caller holds mu.
func (c *ResultCache) removeLocked(fp Fingerprint) {
	delete(c.entries, fp)
	for i, f := range c.order {
		if f == fp {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Stats returns a snapshot of the cache counters.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:      len(c.entries),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
