package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"appraisal/internal/transport/http/api"
)

// RateLimiter is a fixed-window per-client limiter used on authentication
// endpoints to slow credential guessing. Windows are keyed by remote IP.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*windowCounter
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		limit:   perMinute,
		window:  time.Minute,
		clients: make(map[string]*windowCounter),
	}
}

// Allow records a hit for the given key and reports whether it is within
// the current window's budget.
func (l *RateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok || now.After(c.resetAt) {
		l.clients[key] = &windowCounter{count: 1, resetAt: now.Add(l.window)}
		l.pruneLocked(now)
		return true
	}
	c.count++
	return c.count <= l.limit
}

// pruneLocked drops expired windows so the map does not grow without bound.
func (l *RateLimiter) pruneLocked(now time.Time) {
	if len(l.clients) < 1024 {
		return
	}
	for key, c := range l.clients {
		if now.After(c.resetAt) {
			delete(l.clients, key)
		}
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
