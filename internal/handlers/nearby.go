package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/grocery-service/internal/compare"
)

// NearbyResponse lists every catalog chain with its distance from the caller.
type NearbyResponse struct {
	Stores []StoreDistance `json:"stores"`
}

// Nearby handles store distance lookups without pricing.
// GET /grocery/nearby?lat=&lng=
func (h *Handler) Nearby(c *gin.Context) {
	lat, ok1 := parseCoord(c.Query("lat"), 90)
	lng, ok2 := parseCoord(c.Query("lng"), 180)
	if !ok1 || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required and must be valid coordinates"})
		return
	}

	stores := h.svc.Nearby(compare.Location{Lat: lat, Lng: lng})

	out := make([]StoreDistance, len(stores))
	for i, sd := range stores {
		out[i] = StoreDistance{
			Store:     sd.Store,
			Distance:  sd.Distance,
			Address:   sd.Address,
			LogoColor: sd.LogoColor,
			HomeURL:   sd.HomeURL,
		}
	}
	c.JSON(http.StatusOK, NearbyResponse{Stores: out})
}

func parseCoord(s string, bound float64) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < -bound || v > bound {
		return 0, false
	}
	return v, true
}
