// Package recovery turns panics in handlers into 500 responses.
// It should be the outermost middleware so that it also covers the other middlewares.
package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
)

// ErrorCallback writes the response for a recovered panic. It must not panic itself.
type ErrorCallback func(err error, w http.ResponseWriter, r *http.Request)

// Middleware is a type that creates a new recovery middleware.
type Middleware struct {
	errCallback ErrorCallback
	logStack    bool
}

// Option is a type that is used to set options for the recovery middleware.
type Option func(*Middleware)

// WithErrorCallback replaces the default JSON error response.
func WithErrorCallback(fn ErrorCallback) Option {
	return func(m *Middleware) {
		m.errCallback = fn
	}
}

// WithStackTrace controls whether the stack trace is logged. Enabled by default.
func WithStackTrace(enabled bool) Option {
	return func(m *Middleware) {
		m.logStack = enabled
	}
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	m := &Middleware{
		errCallback: defaultErrorCallback,
		logStack:    true,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Handler returns the recovery middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec) // let net/http abort the response
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}

			if isBrokenPipeError(err) {
				slog.Debug("client connection lost", "path", r.URL.Path, "error", err)
				return // nobody is listening anymore
			}

			attrs := []any{"method", r.Method, "path", r.URL.Path}
			if m.logStack {
				attrs = append(attrs, "stack", string(debug.Stack()))
			}
			slog.Error("recovered from panic: "+err.Error(), attrs...)

			m.errCallback(err, w, r)
		}()

		next.ServeHTTP(w, r)
	})
}

func defaultErrorCallback(_ error, w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusInternalServerError, map[string]any{
		"Code":    http.StatusInternalServerError,
		"Message": "Internal Server Error",
	})
}

func isBrokenPipeError(err error) bool {
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		errMsg := strings.ToLower(syscallErr.Err.Error())
		return strings.Contains(errMsg, "broken pipe") || strings.Contains(errMsg, "connection reset by peer")
	}

	return false
}
