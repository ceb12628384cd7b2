package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pantryplan/grocery-service/internal/pkg/cuid2"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// RequestIDHeader is the response header carrying the request ID.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns each request a time-sortable ID. An inbound X-Request-Id
// from a trusted upstream is kept so IDs correlate across services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = cuid2.GeneratePrefixedId("req", cuid2.PrefixedIdOptions{TimeSortable: true})
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
