package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter_Disabled(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", NewRateLimiter(0).Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 100; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_PerClientBudget(t *testing.T) {
	rl := NewRateLimiter(60)
	now := time.Now()

	for i := 0; i < rl.burst; i++ {
		assert.True(t, rl.allow("10.0.0.1", now))
	}
	assert.False(t, rl.allow("10.0.0.1", now), "burst exhausted")
	assert.True(t, rl.allow("10.0.0.2", now), "other clients are independent")
	assert.True(t, rl.allow("10.0.0.1", now.Add(2*time.Second)), "tokens refill over time")
}

func TestRateLimiter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", NewRateLimiter(10).Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(60)
	start := time.Now()

	rl.allow("10.0.0.1", start)
	rl.allow("10.0.0.2", start.Add(10*time.Minute))

	_, ok := rl.clients["10.0.0.1"]
	assert.False(t, ok)
	assert.Len(t, rl.clients, 1)
}
