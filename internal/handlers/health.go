package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/grocery-service/internal/database"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles the health check endpoint. The database is optional; only
// the postgres oracle needs it.
func Health(c *gin.Context) {
	response := HealthResponse{Status: "ok"}

	if database.Pool() != nil {
		if err := database.Status(c.Request.Context()); err != nil {
			response.Database = "disconnected"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response.Database = "connected"
	} else {
		response.Database = "not configured"
	}

	c.JSON(http.StatusOK, response)
}
