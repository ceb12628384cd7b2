package oracle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingOracle counts upstream calls and serves a fixed quote.
type countingOracle struct {
	calls atomic.Int64
	fail  bool
}

func (c *countingOracle) Quote(_ context.Context, item, store string) (QuoteResult, error) {
	c.calls.Add(1)
	if c.fail {
		return Miss(), errors.New("upstream down")
	}
	return Hit(Quote{Price: 2.50, Unit: "each", DeepLink: "https://example.com"}), nil
}

func TestCachedServesFromCache(t *testing.T) {
	inner := &countingOracle{}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	first, err := c.Quote(ctx, "milk", "Kroger")
	require.NoError(t, err)
	second, err := c.Quote(ctx, "milk", "Kroger")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), inner.calls.Load())

	hits, misses, size := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, size)
}

func TestCachedKeysAreNormalizedPerPair(t *testing.T) {
	inner := &countingOracle{}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	_, err := c.Quote(ctx, "Milk", "Kroger")
	require.NoError(t, err)
	_, err = c.Quote(ctx, "milk ", "Kroger")
	require.NoError(t, err)
	_, err = c.Quote(ctx, "milk", "Walmart")
	require.NoError(t, err)

	// Same item+store collapses to one upstream call; a different store does not.
	assert.Equal(t, int64(2), inner.calls.Load())
}

func TestCachedDoesNotCacheFailures(t *testing.T) {
	inner := &countingOracle{fail: true}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	_, err := c.Quote(ctx, "milk", "Kroger")
	assert.Error(t, err)
	_, err = c.Quote(ctx, "milk", "Kroger")
	assert.Error(t, err)

	assert.Equal(t, int64(2), inner.calls.Load())
}

func TestCachedCoalescesConcurrentCalls(t *testing.T) {
	inner := &countingOracle{}
	c := NewCached(inner, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Quote(context.Background(), "milk", "Kroger")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Coalescing plus caching keeps upstream calls well below the request count.
	assert.Less(t, inner.calls.Load(), int64(20))
}

func TestCachedPurgeDropsExpiredEntries(t *testing.T) {
	inner := &countingOracle{}
	c := NewCached(inner, time.Millisecond)
	ctx := context.Background()

	_, err := c.Quote(ctx, "milk", "Kroger")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	removed := c.Purge()
	assert.Equal(t, 1, removed)
	_, _, size := c.Stats()
	assert.Equal(t, 0, size)
}
