package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
)

// Login attempts allowed per client IP in production.
const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = 1 * time.Minute
	// sweepThreshold bounds how many windows are tracked before expired ones
	// are dropped.
	sweepThreshold = 1024
)

type window struct {
	attempts int
	resetAt  time.Time
}

// RateLimiter is a fixed-window limiter keyed by client IP.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxAttempts int
	duration    time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a limiter allowing 5 attempts per minute.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a limiter with a custom budget.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*window),
		maxAttempts: maxAttempts,
		duration:    windowDuration,
		now:         time.Now,
	}
}

// Middleware answers 429 with a Retry-After header once a client IP has used
// its budget for the current window.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		allowed, retryAfter := rl.allow(key)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// allow records an attempt for key and reports whether it fits the budget,
// and otherwise how long until the window resets.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.windows) >= sweepThreshold {
		rl.sweep(now)
	}

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[key] = &window{attempts: 1, resetAt: now.Add(rl.duration)}
		return true, 0
	}

	if w.attempts >= rl.maxAttempts {
		return false, w.resetAt.Sub(now)
	}
	w.attempts++
	return true, 0
}

// Reset forgets every window.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.windows = make(map[string]*window)
}

// Cleanup drops windows that have already expired.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.sweep(rl.now())
}

func (rl *RateLimiter) sweep(now time.Time) {
	for key, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}
