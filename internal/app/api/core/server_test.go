package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/go-pkgz/routegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railflow/railflow-portal/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Web.SiteTitle = "RailFlow AI"
	cfg.Web.SiteCompanyName = "Indian Railways"
	cfg.Web.ExposeHostInfo = true
	return cfg
}

func TestServer_Routes(t *testing.T) {
	frontend := func(g *routegroup.Bundle) {
		g.HandleFunc("GET /{path...}", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("frontend"))
		})
	}
	endpoint := func() (ApiVersion, GroupSetupFn) {
		return "v0", func(g *routegroup.Bundle) {
			g.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("pong"))
			})
		}
	}

	s, err := NewServer(testConfig(), frontend, endpoint)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v0/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDKey))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Contains(t, resp.Header.Get("X-Served-By"), "version")

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "RailFlow AI API")
	assert.Contains(t, rr.Body.String(), "/api/v0")

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/somewhere", nil))
	assert.Equal(t, "frontend", rr.Body.String())
}

func TestServer_ApiDocumentation(t *testing.T) {
	endpoint := func() (ApiVersion, GroupSetupFn) {
		return "v0", func(g *routegroup.Bundle) {
			g.Use(func(next http.Handler) http.Handler { return next })
			g.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("pong"))
			})
		}
	}

	s, err := NewServer(testConfig(), nil, endpoint)
	require.NoError(t, err)
	s.docs = fstest.MapFS{
		"v0_swagger.yaml": &fstest.MapFile{Data: []byte("swagger: \"2.0\"\n")},
		"v0_swagger.json": &fstest.MapFile{Data: []byte(`{"swagger":"2.0"}`)},
	}

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/doc.html", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/doc/v0_swagger.yaml")
	assert.Contains(t, rr.Body.String(), "rapi-doc")

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/doc/v0_swagger.yaml", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/yaml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "swagger")

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/doc/v0_swagger.json", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"swagger":"2.0"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/doc/v1_swagger.yaml", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/ping", nil))
	assert.Equal(t, "pong", rr.Body.String())
}
