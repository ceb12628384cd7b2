package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/grocery-service/internal/compare"
)

// Deal is one promotional listing entry.
type Deal struct {
	Item        string  `json:"item"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	DeepLink    string  `json:"deepLink"`
	IsEstimated bool    `json:"isEstimated"`
}

// DealsResponse lists featured item prices at one store.
type DealsResponse struct {
	Store string `json:"store"`
	Deals []Deal `json:"deals"`
}

// Deals handles promotional listings for a single store.
// GET /grocery/deals?store=
func (h *Handler) Deals(c *gin.Context) {
	store := c.Query("store")
	if store == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store is required"})
		return
	}

	deals, err := h.svc.Deals(c.Request.Context(), store)
	if err != nil {
		var invalid compare.ErrInvalidRequest
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]Deal, len(deals))
	for i, d := range deals {
		out[i] = Deal{
			Item:        d.Item,
			Price:       d.Price,
			Unit:        d.Unit,
			DeepLink:    d.DeepLink,
			IsEstimated: d.IsEstimated,
		}
	}
	c.JSON(http.StatusOK, DealsResponse{Store: store, Deals: out})
}
