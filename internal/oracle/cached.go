package oracle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cached wraps an oracle with a TTL cache and request coalescing. Concurrent
// comparisons often ask for the same (item, store) pair; singleflight makes
// sure only one upstream call is in flight per pair.
type Cached struct {
	inner PriceOracle
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	result    QuoteResult
	expiresAt time.Time
}

// NewCached wraps inner with a TTL quote cache.
func NewCached(inner PriceOracle, ttl time.Duration) *Cached {
	return &Cached{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Quote serves from cache when fresh, otherwise coalesces upstream calls.
// Only successful results are cached; upstream failures stay uncached so the
// next request retries.
func (c *Cached) Quote(ctx context.Context, item, store string) (QuoteResult, error) {
	key := normalizeKey(item) + "\x00" + store

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		c.hits.Add(1)
		return entry.result, nil
	}
	c.misses.Add(1)

	v, err, _ := c.sf.Do(key, func() (any, error) {
		res, err := c.inner.Quote(ctx, item, store)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{result: res, expiresAt: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return Miss(), fmt.Errorf("quote upstream: %w", err)
	}
	return v.(QuoteResult), nil
}

// Stats reports cache counters and the current entry count.
func (c *Cached) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	size = len(c.entries)
	c.mu.RUnlock()
	return c.hits.Load(), c.misses.Load(), size
}

// Purge drops expired entries. Callers run it periodically; the cache does
// not spawn its own goroutine.
func (c *Cached) Purge() int {
	now := time.Now()
	removed := 0
	c.mu.Lock()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}
