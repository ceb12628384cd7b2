package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/grocery-service/internal/compare"
)

// PricePoint is one observation in a price trend.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// HistoryResponse is the price trend for one item at one store.
type HistoryResponse struct {
	Item   string       `json:"item"`
	Store  string       `json:"store"`
	Days   int          `json:"days"`
	Points []PricePoint `json:"points"`
}

// History handles price trend lookups.
// GET /grocery/price-history?item=&store=&days=
func (h *Handler) History(c *gin.Context) {
	item := c.Query("item")
	store := c.Query("store")
	days := 30
	if s := c.Query("days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = v
	}

	points, err := h.svc.History(c.Request.Context(), item, store, days)
	if err != nil {
		var invalid compare.ErrInvalidRequest
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		if errors.Is(err, compare.ErrHistoryUnavailable) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]PricePoint, len(points))
	for i, p := range points {
		out[i] = PricePoint{Date: p.Date.Format("2006-01-02"), Price: p.Price}
	}
	c.JSON(http.StatusOK, HistoryResponse{Item: item, Store: store, Days: days, Points: out})
}
