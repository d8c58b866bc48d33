// Package csrf protects state changing requests with a synchronizer token kept in the session.
package csrf

import (
	"context"
	"net/http"
	"slices"
)

type tokenKey struct{}

// SessionReader returns the token stored in the session of the request.
type SessionReader func(r *http.Request) string

// SessionWriter stores the token in the session of the request.
type SessionWriter func(r *http.Request, token string)

// Middleware is a type that creates a new CSRF middleware.
type Middleware struct {
	tokenLength   int
	safeMethods   []string
	errCallback   http.HandlerFunc
	sessionReader SessionReader
	sessionWriter SessionWriter
}

// Option is a type that is used to set options for the CSRF middleware.
type Option func(*Middleware)

// WithErrorCallback replaces the default 403 plain text response for a token mismatch.
func WithErrorCallback(fn http.HandlerFunc) Option {
	return func(m *Middleware) {
		m.errCallback = fn
	}
}

// WithTokenLength sets the secret length in bytes. The default is 32.
func WithTokenLength(length int) Option {
	return func(m *Middleware) {
		m.tokenLength = length
	}
}

// New returns a new CSRF middleware that keeps its token in the session.
func New(sessionReader SessionReader, sessionWriter SessionWriter, opts ...Option) *Middleware {
	m := &Middleware{
		tokenLength: 32,
		safeMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		errCallback: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "CSRF token mismatch", http.StatusForbidden)
		},
		sessionReader: sessionReader,
		sessionWriter: sessionWriter,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Handler rejects unsafe requests whose token does not match the session token.
// The token is read from the X-CSRF-TOKEN header, or the _csrf form field.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.Contains(m.safeMethods, r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		if !tokensMatch(requestToken(r), m.sessionReader(r)) {
			m.errCallback(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RefreshToken makes sure the session holds a token and passes a freshly masked copy of it
// to subsequent handlers via the request context, see GetToken.
func (m *Middleware) RefreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetToken(r.Context()) != "" {
			next.ServeHTTP(w, r) // token already generated higher up in the chain
			return
		}

		stored := m.sessionReader(r)
		secret := unmask(stored)
		if secret == nil {
			secret = randomBytes(m.tokenLength)
			m.sessionWriter(r, mask(secret))
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenKey{}, mask(secret))))
	})
}

// GetToken returns the masked token for the current request.
// It is only set if RefreshToken was called before.
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func requestToken(r *http.Request) string {
	if t := r.Header.Get("X-CSRF-TOKEN"); t != "" {
		return t
	}
	return r.PostFormValue("_csrf")
}
