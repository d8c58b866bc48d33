package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doRequest(h http.Handler, remote string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remote
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestMiddleware_Burst(t *testing.T) {
	h := New(0.001, 2).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusNoContent, doRequest(h, "198.51.100.1:1000"))
	assert.Equal(t, http.StatusNoContent, doRequest(h, "198.51.100.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "198.51.100.1:1002"))

	// other clients have their own bucket
	assert.Equal(t, http.StatusNoContent, doRequest(h, "198.51.100.2:1000"))
}

func TestMiddleware_Disabled(t *testing.T) {
	h := New(0, 1).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusNoContent, doRequest(h, "198.51.100.1:1000"))
	}
}

func TestMiddleware_ErrorCallback(t *testing.T) {
	h := New(0.001, 1, WithErrorCallback(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	assert.Equal(t, http.StatusOK, doRequest(h, "198.51.100.1:1000"))
	assert.Equal(t, http.StatusTeapot, doRequest(h, "198.51.100.1:1000"))
}

func TestMiddleware_SharedBuckets(t *testing.T) {
	m := New(0.001, 2)
	noContent := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	web := m.HandlerWithErrorCallback(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})(noContent)
	api := m.Handler(noContent)

	assert.Equal(t, http.StatusNoContent, doRequest(api, "198.51.100.1:1000"))
	assert.Equal(t, http.StatusNoContent, doRequest(web, "198.51.100.1:1001"))
	assert.Equal(t, http.StatusSeeOther, doRequest(web, "198.51.100.1:1002"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(api, "198.51.100.1:1003"))
}
