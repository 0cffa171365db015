package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is a fixed-window counter keyed by client identity. Separate
// instances carry separate (limit, window) pairs per route class; state is
// in-memory and single-process by design.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	count   int
	resetAt time.Time
}

type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		stop:     make(chan struct{}),
	}
}

// Check admits or rejects one request for key. A fresh or expired window
// resets the count to 1; within an active window the count increments and
// overflow rejects with the time left until reset.
func (rl *RateLimiter) Check(key string) RateLimitResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, exists := rl.visitors[key]

	if !exists || now.After(v.resetAt) || now.Equal(v.resetAt) {
		v = &visitor{count: 1, resetAt: now.Add(rl.window)}
		rl.visitors[key] = v
		return RateLimitResult{
			Allowed:   true,
			Limit:     rl.limit,
			Remaining: rl.limit - 1,
			ResetAt:   v.resetAt,
		}
	}

	v.count++
	if v.count > rl.limit {
		return RateLimitResult{
			Allowed:    false,
			Limit:      rl.limit,
			Remaining:  0,
			RetryAfter: v.resetAt.Sub(now),
			ResetAt:    v.resetAt,
		}
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     rl.limit,
		Remaining: rl.limit - v.count,
		ResetAt:   v.resetAt,
	}
}

// StartSweeper periodically drops records whose window has passed, bounding
// memory under high client churn.
func (rl *RateLimiter) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-rl.stop:
				return
			case <-ticker.C:
				rl.sweep()
			}
		}
	}()
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, v := range rl.visitors {
		if now.After(v.resetAt) {
			delete(rl.visitors, key)
		}
	}
}

// Handler wraps a route class with the limiter, annotating the standard
// X-RateLimit headers and answering overflow with 429 plus Retry-After.
func (rl *RateLimiter) Handler(class string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r) + ":" + class
			result := rl.Check(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				RecordRateLimitRejection(class)
				retryAfter := int(result.RetryAfter.Seconds() + 0.5)
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     fmt.Sprintf("Too many requests. Try again in %ds.", retryAfter),
					"retry_after": retryAfter,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP resolves the caller identity, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
