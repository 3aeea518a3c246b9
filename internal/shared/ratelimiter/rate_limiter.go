// Package ratelimiter throttles repeated requests from one client with a
// fixed-window counter per key.
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiterInterface decides whether one more request for key is allowed now.
type RateLimiterInterface interface {
	Allow(key string) bool
}

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter allows at most limit requests per key within each interval.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // requests per interval
	interval time.Duration // window length
	windows  map[string]*window
	now      func() time.Time
}

// NewRateLimiter returns a limiter. A limit below one disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow counts a request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit < 1 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	// reset once the interval has passed
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.prune(now)
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	w.count++
	return w.count <= rl.limit
}

// prune drops expired windows so the map does not grow with every client seen.
func (rl *RateLimiter) prune(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func Middleware(rl RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip + " " + c.FullPath()) {
			slog.Warn("rate limit hit", "remote_addr", ip, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
