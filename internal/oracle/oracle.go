// Package oracle defines the price oracle contract and its implementations.
// The oracle supplies per-item, per-store price quotes; the comparison engine
// treats it as a black box and degrades gracefully when it fails.
package oracle

import (
	"context"
	"time"
)

// Quote is one store's price for one item.
type Quote struct {
	Price     float64 // always > 0
	Unit      string  // e.g. "lb", "each", "gallon"
	DeepLink  string
	Estimated bool // true when the oracle fell back to a modeled price
}

// QuoteResult is a tagged variant: either a quote was found or it was not.
// A missing quote is not an error; it means the store does not carry the item.
type QuoteResult struct {
	Found bool
	Quote Quote
}

// Miss returns the not-found result.
func Miss() QuoteResult {
	return QuoteResult{}
}

// Hit wraps a quote in a found result.
func Hit(q Quote) QuoteResult {
	return QuoteResult{Found: true, Quote: q}
}

// PricePoint is one observation in a price trend.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceOracle supplies per-item, per-store quotes.
// Implementations must be safe for concurrent use; callers fan out one call
// per (item, store) pair.
type PriceOracle interface {
	Quote(ctx context.Context, item, store string) (QuoteResult, error)
}

// HistorySource supplies historical price trends for the price-history
// endpoint. It is consumed independently of the comparison engine.
type HistorySource interface {
	History(ctx context.Context, item, store string, days int) ([]PricePoint, error)
}
