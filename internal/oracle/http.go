package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// HTTPOracle queries a remote price API. Calls are throttled client-side so a
// large comparison fan-out cannot hammer the upstream, and transient upstream
// failures are retried with exponential backoff.
type HTTPOracle struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	retries int
	backoff backoffConfig
}

// HTTPConfig configures the remote price API client.
type HTTPConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
}

// NewHTTP creates an oracle backed by a remote price API.
func NewHTTP(cfg HTTPConfig) *HTTPOracle {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 20
	}
	if cfg.Burst == 0 {
		cfg.Burst = 40
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	return &HTTPOracle{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		retries: cfg.MaxRetries,
		backoff: defaultBackoff,
	}
}

type backoffConfig struct {
	initial time.Duration
	max     time.Duration
}

var defaultBackoff = backoffConfig{initial: 100 * time.Millisecond, max: 5 * time.Second}

// isRetryableStatus reports whether a status code is worth retrying.
// Retryable: 429, 500-504.
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status < 600)
}

// retryDelay computes the exponential backoff for an attempt. A Retry-After
// header from a 429 takes precedence; jitter (up to 25%) avoids thundering
// herd when many quote workers back off at once.
func (b backoffConfig) retryDelay(attempt int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	delay := math.Min(
		float64(b.initial)*math.Pow(2, float64(attempt)),
		float64(b.max),
	)
	jitter := rand.Float64() * 0.25 * delay
	return time.Duration(delay + jitter)
}

type httpQuoteResponse struct {
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	DeepLink  string  `json:"deepLink"`
	Estimated bool    `json:"estimated"`
}

// Quote fetches a price from the remote API. A 404 means the store does not
// carry the item and is reported as a miss, not an error.
func (o *HTTPOracle) Quote(ctx context.Context, item, store string) (QuoteResult, error) {
	u := fmt.Sprintf("%s/v1/quote?item=%s&store=%s",
		o.baseURL, url.QueryEscape(normalizeKey(item)), url.QueryEscape(store))

	resp, err := o.fetch(ctx, u)
	if err != nil {
		return Miss(), fmt.Errorf("quote request for %q at %q: %w", item, store, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body httpQuoteResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Miss(), fmt.Errorf("decoding quote response: %w", err)
		}
		if body.Price <= 0 {
			return Miss(), nil
		}
		return Hit(Quote{
			Price:     body.Price,
			Unit:      body.Unit,
			DeepLink:  body.DeepLink,
			Estimated: body.Estimated,
		}), nil
	case http.StatusNotFound:
		return Miss(), nil
	default:
		return Miss(), fmt.Errorf("price API returned status %d for %q at %q", resp.StatusCode, item, store)
	}
}

// fetch issues a throttled GET and retries transient failures. The response
// body is open on return; terminal non-retryable statuses are returned to the
// caller to classify.
func (o *HTTPOracle) fetch(ctx context.Context, u string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= o.retries; attempt++ {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if o.apiKey != "" {
			req.Header.Set("X-Api-Key", o.apiKey)
		}

		retryAfter := ""
		resp, err := o.client.Do(req)
		if err != nil {
			lastErr = err
		} else if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		} else {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			retryAfter = resp.Header.Get("Retry-After")
			resp.Body.Close()
		}

		if attempt == o.retries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(o.backoff.retryDelay(attempt, retryAfter)):
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", o.retries+1, lastErr)
}
