package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter throttles each client IP separately.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	window  time.Duration
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter for the provided requests-per-minute
// budget. A non-positive budget disables limiting and returns nil.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	burst := max(requestsPerMinute/10, 1)
	return &RateLimiter{
		limit:   rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:   burst,
		window:  5 * time.Minute,
		clients: make(map[string]*clientLimiter),
	}
}

// Handler returns the gin middleware enforcing the budget.
func (r *RateLimiter) Handler() gin.HandlerFunc {
	if r == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if !r.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Please slow down.",
			})
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(key string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.clients[key]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst), lastSeen: now}
		r.clients[key] = entry
		r.cleanupLocked(now)
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (r *RateLimiter) cleanupLocked(now time.Time) {
	for key, entry := range r.clients {
		if now.Sub(entry.lastSeen) > r.window {
			delete(r.clients, key)
		}
	}
}
