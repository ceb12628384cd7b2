package compare

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/pantryplan/grocery-service/internal/catalog"
	"github.com/pantryplan/grocery-service/internal/oracle"
)

// Aggregator queries the price oracle across the catalog and builds per-item
// store-price lists and per-store totals.
type Aggregator struct {
	oracle  oracle.PriceOracle
	catalog catalog.Catalog
	config  *Config
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewAggregator creates an aggregator over the given oracle and catalog.
func NewAggregator(po oracle.PriceOracle, cat catalog.Catalog, cfg *Config, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		oracle:  po,
		catalog: cat,
		config:  cfg,
		metrics: NewMetricsRecorder(),
		logger:  logger.With().Str("component", "aggregator").Logger(),
	}
}

// quoteOutcome carries one (item, chain) result back to the collector.
type quoteOutcome struct {
	item  int
	chain int
	res   oracle.QuoteResult
}

// Aggregate fans out one oracle call per (item, chain) pair, joins the
// results, and assembles per-item comparisons in request order plus per-store
// totals. A failed or timed-out pair counts as "no quote" and never fails the
// aggregation; a store with zero quotes is absent from the totals.
func (a *Aggregator) Aggregate(ctx context.Context, items []string) ([]ItemComparison, map[string]float64) {
	chains := a.catalog.Chains()
	total := len(items) * len(chains)

	sem := semaphore.NewWeighted(a.config.MaxConcurrentQuotes)
	// Buffered to the full fan-out so abandoned goroutines never block.
	results := make(chan quoteOutcome, total)

	for i, item := range items {
		normalized := NormalizeItem(item)
		for j, ch := range chains {
			go func(i, j int, item, store string) {
				if err := sem.Acquire(ctx, 1); err != nil {
					results <- quoteOutcome{item: i, chain: j}
					return
				}
				defer sem.Release(1)

				start := time.Now()
				res, err := a.oracle.Quote(ctx, item, store)
				a.metrics.RecordQuote(time.Since(start))
				if err != nil {
					a.metrics.RecordQuoteFailure(store)
					a.logger.Warn().
						Err(err).
						Str("item", item).
						Str("store", store).
						Msg("oracle quote failed, treating as no quote")
					results <- quoteOutcome{item: i, chain: j}
					return
				}
				results <- quoteOutcome{item: i, chain: j, res: res}
			}(i, j, normalized, ch.Name)
		}
	}

	// Barrier: collect every pair or stop at the request deadline. Outstanding
	// calls are abandoned; their grid slots stay empty, which reads as
	// "no quote".
	grid := make([][]oracle.QuoteResult, len(items))
	for i := range grid {
		grid[i] = make([]oracle.QuoteResult, len(chains))
	}

	received := 0
collect:
	for received < total {
		select {
		case out := <-results:
			grid[out.item][out.chain] = out.res
			received++
		case <-ctx.Done():
			a.logger.Warn().
				Int("received", received).
				Int("total", total).
				Msg("quote fan-out timed out, assembling partial comparison")
			break collect
		}
	}

	comparisons := make([]ItemComparison, 0, len(items))
	totals := make(map[string]float64)

	for i, item := range items {
		cmp := ItemComparison{Item: item, Stores: []ItemPriceQuote{}}
		bestIdx, worstIdx := -1, -1

		for j, ch := range chains {
			res := grid[i][j]
			if !res.Found {
				continue
			}
			q := ItemPriceQuote{
				Item:        item,
				Store:       ch.Name,
				Price:       res.Quote.Price,
				Unit:        res.Quote.Unit,
				DeepLink:    res.Quote.DeepLink,
				IsEstimated: res.Quote.Estimated,
			}
			cmp.Stores = append(cmp.Stores, q)
			totals[ch.Name] += q.Price

			idx := len(cmp.Stores) - 1
			if bestIdx < 0 || q.Price < cmp.Stores[bestIdx].Price {
				bestIdx = idx
			}
			if worstIdx < 0 || q.Price > cmp.Stores[worstIdx].Price {
				worstIdx = idx
			}
		}

		if bestIdx >= 0 {
			cmp.BestPrice = &cmp.Stores[bestIdx]
		}
		if len(cmp.Stores) >= 2 {
			cmp.Savings = cmp.Stores[worstIdx].Price - cmp.Stores[bestIdx].Price
		}
		comparisons = append(comparisons, cmp)
	}

	return comparisons, totals
}
