package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pantryplan/grocery-service/internal/catalog"
)

// Postgres serves quotes from a price catalog table. Rows are keyed by
// normalized item name and chain name; the newest observation wins.
//
// Expected schema:
//
//	CREATE TABLE item_prices (
//	    item        TEXT NOT NULL,
//	    store       TEXT NOT NULL,
//	    price       DOUBLE PRECISION NOT NULL CHECK (price > 0),
//	    unit        TEXT NOT NULL DEFAULT 'each',
//	    observed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type Postgres struct {
	db      *pgxpool.Pool
	catalog catalog.Catalog
}

// NewPostgres creates a postgres-backed oracle.
func NewPostgres(db *pgxpool.Pool, cat catalog.Catalog) *Postgres {
	return &Postgres{db: db, catalog: cat}
}

// Quote returns the most recent stored price for an item at a store.
func (p *Postgres) Quote(ctx context.Context, item, store string) (QuoteResult, error) {
	ch, ok := p.catalog.ChainByName(store)
	if !ok {
		return Miss(), nil
	}

	var price float64
	var unit string
	err := p.db.QueryRow(ctx, `
		SELECT price, unit
		FROM item_prices
		WHERE item = $1 AND store = $2
		ORDER BY observed_at DESC
		LIMIT 1
	`, normalizeKey(item), store).Scan(&price, &unit)
	if errors.Is(err, pgx.ErrNoRows) {
		return Miss(), nil
	}
	if err != nil {
		return Miss(), fmt.Errorf("querying price for %q at %q: %w", item, store, err)
	}
	if price <= 0 {
		return Miss(), nil
	}

	return Hit(Quote{
		Price:    price,
		Unit:     unit,
		DeepLink: ch.DeepLink(item),
	}), nil
}

// History returns one averaged price point per day over the trailing window.
func (p *Postgres) History(ctx context.Context, item, store string, days int) ([]PricePoint, error) {
	rows, err := p.db.Query(ctx, `
		SELECT date_trunc('day', observed_at) AS day, AVG(price)
		FROM item_prices
		WHERE item = $1 AND store = $2 AND observed_at >= NOW() - make_interval(days => $3)
		GROUP BY day
		ORDER BY day
	`, normalizeKey(item), store, days)
	if err != nil {
		return nil, fmt.Errorf("querying price history for %q at %q: %w", item, store, err)
	}
	defer rows.Close()

	points := []PricePoint{}
	for rows.Next() {
		var day time.Time
		var price float64
		if err := rows.Scan(&day, &price); err != nil {
			return nil, fmt.Errorf("scanning price history row: %w", err)
		}
		points = append(points, PricePoint{Date: day, Price: price})
	}
	return points, rows.Err()
}

func normalizeKey(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
