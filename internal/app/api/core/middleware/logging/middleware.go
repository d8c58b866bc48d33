// Package logging writes one log record per handled request.
package logging

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/tracing"
	"github.com/railflow/railflow-portal/internal/app/api/core/request"
)

// Middleware is a type that creates a new logging middleware.
type Middleware struct {
	o options
}

type options struct {
	level          slog.Level
	logger         *slog.Logger
	trustedProxies []string
}

// Option is a type that is used to set options for the logging middleware.
type Option func(*options)

// WithLevel sets the level request records are logged with. The default is slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithLogger sets the logger. By default, slog.Default() at request time is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTrustedProxies sets the proxies whose X-Real-Ip/X-Forwarded-For headers are trusted for the client ip.
func WithTrustedProxies(proxies ...string) Option {
	return func(o *options) {
		o.trustedProxies = proxies
	}
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := options{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}

	return &Middleware{o: o}
}

// Handler returns the logging middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger := m.o.logger
		if logger == nil {
			logger = slog.Default()
		}
		attrs := []any{
			"status", ww.status,
			"bytes", ww.written,
			"duration", time.Since(start).String(),
			"client", request.ClientIp(r, m.o.trustedProxies...),
		}
		if reqId := tracing.RequestId(r.Context()); reqId != "" {
			attrs = append(attrs, "request", reqId)
		}
		logger.Log(r.Context(), m.o.level, r.Method+" "+r.URL.Path, attrs...)
	})
}

// statusWriter records the status code and the body size of a response.
type statusWriter struct {
	http.ResponseWriter

	status  int
	written int64
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.written += int64(n)
	return n, err
}

// Unwrap allows http.ResponseController to reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
