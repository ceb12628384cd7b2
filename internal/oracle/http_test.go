package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPOracle(t *testing.T, handler http.HandlerFunc) *HTTPOracle {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	o := NewHTTP(HTTPConfig{
		BaseURL:           server.URL,
		APIKey:            "test-key",
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
	o.backoff = backoffConfig{initial: time.Millisecond, max: 5 * time.Millisecond}
	return o
}

func TestHTTPQuote(t *testing.T) {
	o := newHTTPOracle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/quote", r.URL.Path)
		assert.Equal(t, "milk", r.URL.Query().Get("item"))
		assert.Equal(t, "Kroger", r.URL.Query().Get("store"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Write([]byte(`{"price": 3.49, "unit": "gallon", "deepLink": "https://example.com/milk"}`))
	})

	res, err := o.Quote(context.Background(), "  MILK ", "Kroger")
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.InDelta(t, 3.49, res.Quote.Price, 1e-9)
	assert.Equal(t, "gallon", res.Quote.Unit)
}

func TestHTTPQuoteNotFoundIsMiss(t *testing.T) {
	o := newHTTPOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res, err := o.Quote(context.Background(), "caviar", "Aldi")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestHTTPQuoteNonPositivePriceIsMiss(t *testing.T) {
	o := newHTTPOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": 0}`))
	})

	res, err := o.Quote(context.Background(), "milk", "Kroger")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestHTTPQuoteRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	o := newHTTPOracle(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"price": 2.19, "unit": "lb"}`))
	})

	res, err := o.Quote(context.Background(), "rice", "Kroger")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPQuoteExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	o := newHTTPOracle(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := o.Quote(context.Background(), "milk", "Kroger")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attempts")
	// Initial attempt plus the default two retries.
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPQuoteClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	o := newHTTPOracle(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := o.Quote(context.Background(), "milk", "Kroger")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryDelayRespectsRetryAfter(t *testing.T) {
	b := backoffConfig{initial: 100 * time.Millisecond, max: 5 * time.Second}

	assert.Equal(t, 2*time.Second, b.retryDelay(0, "2"))

	// Malformed header falls back to exponential backoff.
	d := b.retryDelay(0, "soon")
	assert.GreaterOrEqual(t, d, 100*time.Millisecond)
	assert.Less(t, d, 200*time.Millisecond)

	// Backoff grows with attempts and respects the cap.
	assert.GreaterOrEqual(t, b.retryDelay(10, ""), 5*time.Second)
}
