package compare

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pantryplan/grocery-service/internal/catalog"
	"github.com/pantryplan/grocery-service/internal/oracle"
)

// Service orchestrates the comparison engine: validate, aggregate, filter,
// rank, assemble. The catalog is injected at construction and everything else
// is request scoped.
type Service struct {
	catalog    catalog.Catalog
	aggregator *Aggregator
	history    oracle.HistorySource
	oracle     oracle.PriceOracle
	config     *Config
	metrics    *MetricsRecorder
	logger     zerolog.Logger
}

// NewService creates the comparison service.
func NewService(cat catalog.Catalog, po oracle.PriceOracle, hist oracle.HistorySource, cfg *Config, logger zerolog.Logger) *Service {
	return &Service{
		catalog:    cat,
		aggregator: NewAggregator(po, cat, cfg, logger),
		history:    hist,
		oracle:     po,
		config:     cfg,
		metrics:    NewMetricsRecorder(),
		logger:     logger.With().Str("component", "comparison_service").Logger(),
	}
}

// Catalog returns the injected chain registry.
func (s *Service) Catalog() catalog.Catalog {
	return s.catalog
}

// Compare runs a full price comparison. The only error it returns is
// ErrInvalidRequest; oracle failures degrade to missing quotes.
func (s *Service) Compare(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordComparison(time.Since(start))
	}()

	if err := req.Validate(s.config.MaxItems); err != nil {
		return nil, err
	}
	s.metrics.RecordItemCount(len(req.Items))

	ctx, cancel := context.WithTimeout(ctx, s.config.QuoteTimeout)
	defer cancel()

	items, totals := s.aggregator.Aggregate(ctx, req.Items)

	result := &Result{
		Items:          items,
		StoreTotals:    totals,
		StoreLinks:     s.storeLinks(),
		ItemSearchURLs: s.itemSearchURLs(req.Items),
	}

	if req.Location != nil {
		before := len(totals)
		distances, surviving := FilterByDistance(s.catalog, totals, *req.Location, req.MaxDistance)
		s.metrics.RecordFilteredOut(before - len(surviving))
		s.metrics.RecordRankedCount(len(distances))

		result.StoreTotals = surviving
		result.StoreDistances = distances
		result.RankedStores = Rank(distances, surviving, preferredSet(s.catalog, req.PreferredStores), s.config)
	}

	result.BestStore = bestStore(result.StoreTotals, s.catalog)

	return result, nil
}

// Nearby returns distances for every catalog chain, no pricing involved.
func (s *Service) Nearby(loc Location) []StoreDistance {
	return NearbyStores(s.catalog, loc)
}

// Deal is a promotional listing entry for a single store.
type Deal struct {
	Item        string
	Price       float64
	Unit        string
	DeepLink    string
	IsEstimated bool
}

// featuredItems is the curated list quoted for the deals endpoint.
var featuredItems = []string{
	"milk", "eggs", "bread", "chicken breast", "ground beef",
	"bananas", "apples", "cheese", "coffee", "pasta",
}

// Deals quotes the featured item list at one store. Unknown stores are a
// client error; individual quote failures just shrink the listing.
func (s *Service) Deals(ctx context.Context, store string) ([]Deal, error) {
	if _, ok := s.catalog.ChainByName(store); !ok {
		return nil, ErrInvalidRequest{Field: "store", Reason: "unknown store"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QuoteTimeout)
	defer cancel()

	deals := []Deal{}
	for _, item := range featuredItems {
		res, err := s.oracle.Quote(ctx, item, store)
		if err != nil {
			s.logger.Warn().Err(err).Str("item", item).Str("store", store).Msg("deal quote failed")
			continue
		}
		if !res.Found {
			continue
		}
		deals = append(deals, Deal{
			Item:        item,
			Price:       res.Quote.Price,
			Unit:        res.Quote.Unit,
			DeepLink:    res.Quote.DeepLink,
			IsEstimated: res.Quote.Estimated,
		})
	}
	return deals, nil
}

// ErrHistoryUnavailable is returned when the configured oracle backend has
// no trend data.
var ErrHistoryUnavailable = errors.New("price history not supported by the configured oracle")

// History returns the price trend for one item at one store.
func (s *Service) History(ctx context.Context, item, store string, days int) ([]oracle.PricePoint, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}
	if NormalizeItem(item) == "" {
		return nil, ErrInvalidRequest{Field: "item", Reason: "item required"}
	}
	if _, ok := s.catalog.ChainByName(store); !ok {
		return nil, ErrInvalidRequest{Field: "store", Reason: "unknown store"}
	}
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	return s.history.History(ctx, item, store, days)
}

// storeLinks maps every catalog chain to its home URL. Always present in the
// response, independent of location and quote coverage.
func (s *Service) storeLinks() map[string]string {
	links := make(map[string]string, s.catalog.Len())
	for _, ch := range s.catalog.Chains() {
		links[ch.Name] = ch.HomeURL
	}
	return links
}

// itemSearchURLs renders every chain's search URL for every requested item.
func (s *Service) itemSearchURLs(items []string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(items))
	for _, item := range items {
		perStore := make(map[string]string, s.catalog.Len())
		for _, ch := range s.catalog.Chains() {
			perStore[ch.Name] = ch.SearchURL(item)
		}
		out[item] = perStore
	}
	return out
}

// preferredSet resolves the preferred store names against the catalog;
// unknown names are ignored.
func preferredSet(cat catalog.Catalog, names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := cat.ChainByName(n); ok {
			set[n] = true
		}
	}
	return set
}

// bestStore picks the minimum-total store; catalog order breaks ties.
func bestStore(totals map[string]float64, cat catalog.Catalog) *BestStore {
	var best *BestStore
	for _, ch := range cat.Chains() {
		total, ok := totals[ch.Name]
		if !ok {
			continue
		}
		if best == nil || total < best.Total {
			best = &BestStore{Name: ch.Name, Total: total}
		}
	}
	return best
}
