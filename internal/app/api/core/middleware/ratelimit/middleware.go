// Package ratelimit throttles requests per client ip with a token bucket.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/railflow/railflow-portal/internal/app/api/core/request"
)

// idleLimiterTTL is the time after which an unused client bucket is dropped.
const idleLimiterTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Middleware is a type that creates a new rate limiting middleware.
type Middleware struct {
	limit          rate.Limit
	burst          int
	trustedProxies []string
	errCallback    http.HandlerFunc

	mux       sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

// Option is a type that is used to set options for the rate limiting middleware.
type Option func(*Middleware)

// WithErrorCallback replaces the default 429 plain text response.
func WithErrorCallback(fn http.HandlerFunc) Option {
	return func(m *Middleware) {
		m.errCallback = fn
	}
}

// WithTrustedProxies sets the proxies whose forwarding headers are used to determine the client ip.
func WithTrustedProxies(proxies ...string) Option {
	return func(m *Middleware) {
		m.trustedProxies = proxies
	}
}

// New returns a middleware allowing perSecond requests per client ip with the given burst.
// A perSecond value <= 0 disables the limit.
func New(perSecond float64, burst int, opts ...Option) *Middleware {
	m := &Middleware{
		limit: rate.Limit(perSecond),
		burst: max(burst, 1),
		errCallback: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		},
		clients:   make(map[string]*client),
		lastSweep: time.Now(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Handler returns the rate limiting middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return m.HandlerWithErrorCallback(m.errCallback)(next)
}

// HandlerWithErrorCallback returns a middleware that shares the client buckets of m,
// but answers rejected requests with fn. This allows one budget across several surfaces.
func (m *Middleware) HandlerWithErrorCallback(fn http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.limit > 0 && !m.allow(request.ClientIp(r, m.trustedProxies...)) {
				w.Header().Set("Retry-After", "1")
				fn(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) allow(ip string) bool {
	m.mux.Lock()
	defer m.mux.Unlock()

	now := time.Now()
	if now.Sub(m.lastSweep) > idleLimiterTTL {
		for key, c := range m.clients {
			if now.Sub(c.lastSeen) > idleLimiterTTL {
				delete(m.clients, key)
			}
		}
		m.lastSweep = now
	}

	c, ok := m.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}
