// Package compare implements the grocery price comparison and store ranking
// engine: per-item price aggregation across the chain catalog, distance
// filtering, and composite ranking of the surviving stores.
package compare

import "fmt"

// Location is the requesting user's position.
type Location struct {
	Lat float64
	Lng float64
}

// Request is a comparison request. Location and MaxDistance are optional;
// MaxDistance of 0 means no distance cutoff.
type Request struct {
	Items           []string
	Location        *Location
	MaxDistance     float64
	PreferredStores []string
}

// ItemPriceQuote is one store's price for one requested item.
type ItemPriceQuote struct {
	Item        string
	Store       string
	Price       float64
	Unit        string
	DeepLink    string
	IsEstimated bool
}

// ItemComparison holds the per-store quotes for a single requested item.
// BestPrice is the minimum-price quote; Savings is the spread between the
// most and least expensive quote (0 with fewer than two quotes).
type ItemComparison struct {
	Item      string
	Stores    []ItemPriceQuote
	BestPrice *ItemPriceQuote
	Savings   float64
}

// StoreDistance is a chain's computed distance from the user. Delivery-only
// chains are always at distance 0 with a synthetic address.
type StoreDistance struct {
	Store     string
	Distance  float64
	Address   string
	LogoColor string
	HomeURL   string
}

// RankedStore is one entry of the ranked recommendation list.
type RankedStore struct {
	Store       string
	Total       float64
	Distance    float64
	Score       float64
	Recommended bool
}

// BestStore names the store with the lowest total.
type BestStore struct {
	Name  string
	Total float64
}

// Result is the assembled comparison. StoreDistances and RankedStores are nil
// when the request carried no location, and non-nil (possibly empty) when it
// did; serialization preserves that distinction by omitting the nil case.
type Result struct {
	Items          []ItemComparison
	StoreTotals    map[string]float64
	BestStore      *BestStore
	StoreLinks     map[string]string
	ItemSearchURLs map[string]map[string]string
	StoreDistances []StoreDistance
	RankedStores   []RankedStore
}

// LocationAware reports whether the result carries distance data.
func (r *Result) LocationAware() bool {
	return r.StoreDistances != nil
}

// ErrInvalidRequest is returned when a comparison request is malformed.
// It maps to HTTP 400.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return e.Field + ": " + e.Reason
}

// Validate checks the request contract: items non-empty with no blank
// entries, a positive MaxDistance when set, and an item count cap.
func (r *Request) Validate(maxItems int) error {
	if len(r.Items) == 0 {
		return ErrInvalidRequest{Field: "items", Reason: "items required"}
	}
	if maxItems > 0 && len(r.Items) > maxItems {
		return ErrInvalidRequest{Field: "items", Reason: fmt.Sprintf("at most %d items allowed", maxItems)}
	}
	for i, item := range r.Items {
		if NormalizeItem(item) == "" {
			return ErrInvalidRequest{Field: "items", Reason: fmt.Sprintf("item at index %d is empty", i)}
		}
	}
	if r.MaxDistance < 0 {
		return ErrInvalidRequest{Field: "maxDistance", Reason: "must be a positive number"}
	}
	if r.Location != nil {
		if r.Location.Lat < -90 || r.Location.Lat > 90 {
			return ErrInvalidRequest{Field: "lat", Reason: "must be between -90 and 90"}
		}
		if r.Location.Lng < -180 || r.Location.Lng > 180 {
			return ErrInvalidRequest{Field: "lng", Reason: "must be between -180 and 180"}
		}
	}
	return nil
}
