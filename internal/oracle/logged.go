package oracle

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Logged decorates an oracle with per-call debug logging.
type Logged struct {
	inner  PriceOracle
	logger zerolog.Logger
}

// NewLogged wraps inner with quote logging.
func NewLogged(inner PriceOracle, logger zerolog.Logger) *Logged {
	return &Logged{
		inner:  inner,
		logger: logger.With().Str("component", "price_oracle").Logger(),
	}
}

func (l *Logged) Quote(ctx context.Context, item, store string) (QuoteResult, error) {
	start := time.Now()
	res, err := l.inner.Quote(ctx, item, store)

	evt := l.logger.Debug().
		Str("item", item).
		Str("store", store).
		Dur("elapsed", time.Since(start)).
		Bool("found", res.Found)
	if err != nil {
		evt = l.logger.Warn().
			Str("item", item).
			Str("store", store).
			Err(err)
	}
	if res.Found {
		evt = evt.Float64("price", res.Quote.Price)
	}
	evt.Msg("oracle quote")

	return res, err
}
