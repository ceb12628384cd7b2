package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/grocery-service/internal/compare"
)

// Handler exposes the grocery endpoints over gin. The comparison service is
// injected at construction.
type Handler struct {
	svc *compare.Service
}

// New creates the handler set.
func New(svc *compare.Service) *Handler {
	return &Handler{svc: svc}
}

// CompareRequest is the price comparison request body.
type CompareRequest struct {
	Items           []string `json:"items"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	MaxDistance     *float64 `json:"maxDistance,omitempty"`
	PreferredStores []string `json:"preferredStores,omitempty"`
}

// ItemPriceQuote is one store's price for one requested item.
type ItemPriceQuote struct {
	Item        string  `json:"item"`
	Store       string  `json:"store"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	DeepLink    string  `json:"deepLink"`
	IsEstimated bool    `json:"isEstimated"`
}

// ItemComparison holds the per-store quotes for one requested item.
type ItemComparison struct {
	Item      string           `json:"item"`
	Stores    []ItemPriceQuote `json:"stores"`
	BestPrice *ItemPriceQuote  `json:"bestPrice,omitempty"`
	Savings   float64          `json:"savings"`
}

// StoreDistance is a chain's distance from the user.
type StoreDistance struct {
	Store     string  `json:"store"`
	Distance  float64 `json:"distance"`
	Address   string  `json:"address"`
	LogoColor string  `json:"logoColor"`
	HomeURL   string  `json:"homeUrl"`
}

// RankedStore is one entry of the ranked recommendation list.
type RankedStore struct {
	Store       string  `json:"store"`
	Total       float64 `json:"total"`
	Distance    float64 `json:"distance"`
	Score       float64 `json:"score"`
	Recommended bool    `json:"recommended"`
}

// BestStore names the cheapest store overall.
type BestStore struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// CompareResponse is the assembled comparison. StoreDistances and
// RankedStores are pointers so a locationless comparison omits the fields
// entirely while a location-aware one serializes them even when empty.
type CompareResponse struct {
	Items          []ItemComparison             `json:"items"`
	StoreTotals    map[string]float64           `json:"storeTotals"`
	BestStore      *BestStore                   `json:"bestStore,omitempty"`
	StoreLinks     map[string]string            `json:"storeLinks"`
	ItemSearchURLs map[string]map[string]string `json:"itemSearchUrls"`
	StoreDistances *[]StoreDistance             `json:"storeDistances,omitempty"`
	RankedStores   *[]RankedStore               `json:"rankedStores,omitempty"`
}

// Compare handles price comparison requests.
// POST /grocery/compare
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must both be provided or both omitted"})
		return
	}
	if req.MaxDistance != nil && *req.MaxDistance <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxDistance: must be a positive number"})
		return
	}

	internal := compare.Request{
		Items:           req.Items,
		PreferredStores: req.PreferredStores,
	}
	if req.Lat != nil {
		internal.Location = &compare.Location{Lat: *req.Lat, Lng: *req.Lng}
	}
	if req.MaxDistance != nil {
		internal.MaxDistance = *req.MaxDistance
	}

	result, err := h.svc.Compare(c.Request.Context(), internal)
	if err != nil {
		var invalid compare.ErrInvalidRequest
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toCompareResponse(result))
}

func toCompareResponse(r *compare.Result) *CompareResponse {
	resp := &CompareResponse{
		Items:          make([]ItemComparison, len(r.Items)),
		StoreTotals:    r.StoreTotals,
		StoreLinks:     r.StoreLinks,
		ItemSearchURLs: r.ItemSearchURLs,
	}

	for i, item := range r.Items {
		stores := make([]ItemPriceQuote, len(item.Stores))
		for j, q := range item.Stores {
			stores[j] = toQuote(q)
		}
		cmp := ItemComparison{Item: item.Item, Stores: stores, Savings: item.Savings}
		if item.BestPrice != nil {
			best := toQuote(*item.BestPrice)
			cmp.BestPrice = &best
		}
		resp.Items[i] = cmp
	}

	if r.BestStore != nil {
		resp.BestStore = &BestStore{Name: r.BestStore.Name, Total: r.BestStore.Total}
	}

	if r.LocationAware() {
		distances := make([]StoreDistance, len(r.StoreDistances))
		for i, sd := range r.StoreDistances {
			distances[i] = StoreDistance{
				Store:     sd.Store,
				Distance:  sd.Distance,
				Address:   sd.Address,
				LogoColor: sd.LogoColor,
				HomeURL:   sd.HomeURL,
			}
		}
		ranked := make([]RankedStore, len(r.RankedStores))
		for i, rs := range r.RankedStores {
			ranked[i] = RankedStore{
				Store:       rs.Store,
				Total:       rs.Total,
				Distance:    rs.Distance,
				Score:       rs.Score,
				Recommended: rs.Recommended,
			}
		}
		resp.StoreDistances = &distances
		resp.RankedStores = &ranked
	}

	return resp
}

func toQuote(q compare.ItemPriceQuote) ItemPriceQuote {
	return ItemPriceQuote{
		Item:        q.Item,
		Store:       q.Store,
		Price:       q.Price,
		Unit:        q.Unit,
		DeepLink:    q.DeepLink,
		IsEstimated: q.IsEstimated,
	}
}
