package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantryplan/grocery-service/internal/oracle"
)

// CacheStats exposes quote cache counters for operators. The cache is nil
// when quote caching is disabled.
// GET /internal/cache/stats
func CacheStats(cache *oracle.Cached) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil {
			c.JSON(http.StatusOK, gin.H{"enabled": false})
			return
		}
		hits, misses, size := cache.Stats()
		c.JSON(http.StatusOK, gin.H{
			"enabled": true,
			"hits":    hits,
			"misses":  misses,
			"entries": size,
		})
	}
}

// CachePurge drops expired quote cache entries.
// POST /internal/cache/purge
func CachePurge(cache *oracle.Cached) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil {
			c.JSON(http.StatusOK, gin.H{"enabled": false, "removed": 0})
			return
		}
		removed := cache.Purge()
		c.JSON(http.StatusOK, gin.H{"enabled": true, "removed": removed})
	}
}
