// Package tracing attaches a request id to every request, reusing an upstream id if one is present.
package tracing

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIdKey struct{}

// Middleware is a type that creates a new tracing middleware.
type Middleware struct {
	o options
}

type options struct {
	upstreamHeader string
	responseHeader string
}

// Option is a type that is used to set options for the tracing middleware.
type Option func(*options)

// WithUpstreamHeader sets the request header that may carry an id assigned by a proxy.
// If empty, a new id is always generated.
func WithUpstreamHeader(header string) Option {
	return func(o *options) {
		o.upstreamHeader = header
	}
}

// WithResponseHeader sets the response header the request id is echoed in.
// If empty, the id is only available via the request context.
func WithResponseHeader(header string) Option {
	return func(o *options) {
		o.responseHeader = header
	}
}

// New returns a new tracing middleware. By default, X-Request-ID is used in both directions.
func New(opts ...Option) *Middleware {
	o := options{
		upstreamHeader: "X-Request-ID",
		responseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Middleware{o: o}
}

// Handler returns the tracing middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqId string
		if m.o.upstreamHeader != "" {
			reqId = r.Header.Get(m.o.upstreamHeader)
		}
		if reqId == "" || len(reqId) > 128 {
			reqId = uuid.NewString()
		}

		if m.o.responseHeader != "" {
			w.Header().Set(m.o.responseHeader, reqId)
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIdKey{}, reqId)))
	})
}

// RequestId returns the request id stored in the context, or an empty string.
func RequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}
