package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestInternalAuth(t *testing.T) {
	router := newRouter(InternalAuth("secret"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Internal-API-Key", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Internal-API-Key", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInternalAuthMisconfigured(t *testing.T) {
	router := newRouter(InternalAuth(""))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Internal-API-Key", "anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimitExhaustsBurst(t *testing.T) {
	router := newRouter(RateLimit(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 3}))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, codes[i], "request %d within burst", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[4])
}

func TestRateLimitIsolatesClients(t *testing.T) {
	router := newRouter(RateLimit(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different client still has its own full bucket.
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiterCleanup(t *testing.T) {
	rl := NewIPRateLimiter(DefaultRateLimiterConfig())
	rl.GetLimiter("10.0.0.1")
	rl.GetLimiter("10.0.0.2")

	assert.Equal(t, 0, rl.Cleanup(time.Minute))
	assert.Equal(t, 2, rl.Cleanup(0))
	assert.Equal(t, 0, rl.Cleanup(0))
}

func TestRequestIDGenerated(t *testing.T) {
	var captured string
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		captured = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(captured, "req_"))
	assert.Equal(t, captured, w.Header().Get(RequestIDHeader))
}

func TestRequestIDPreserved(t *testing.T) {
	router := newRouter(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req_upstream123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req_upstream123", w.Header().Get(RequestIDHeader))
}
