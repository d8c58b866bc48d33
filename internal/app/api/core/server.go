package core

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"slices"
	"time"

	"github.com/go-pkgz/routegroup"

	"github.com/railflow/railflow-portal/internal"
	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/logging"
	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/recovery"
	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/tracing"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/config"
)

const (
	RequestIDKey = "X-Request-ID"
)

type ApiVersion string

type GroupSetupFn func(group *routegroup.Bundle)

type ApiEndpointSetupFunc func() (ApiVersion, GroupSetupFn)

// Server hosts the web frontend and all API versions on one listener.
type Server struct {
	cfg      *config.Config
	server   *routegroup.Bundle
	tpl      *respond.TemplateRenderer
	docs     fs.FS
	versions map[ApiVersion]*routegroup.Bundle
}

// NewServer sets up the middleware stack and the routes. The frontend is mounted at the root path,
// API versions below /api/<version>.
func NewServer(cfg *config.Config, frontend GroupSetupFn, endpoints ...ApiEndpointSetupFunc) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		server: routegroup.New(http.NewServeMux()),
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "railflow"
	}
	hostname += ", version " + internal.Version

	s.server.Use(recovery.New().Handler)
	s.server.Use(tracing.New(
		tracing.WithUpstreamHeader(RequestIDKey),
		tracing.WithResponseHeader(RequestIDKey),
	).Handler)
	if cfg.Web.RequestLogging {
		s.server.Use(logging.New(
			logging.WithLevel(slog.LevelDebug),
			logging.WithTrustedProxies(cfg.Web.TrustedProxies...),
		).Handler)
	}
	s.server.Use(securityHeaders)
	if cfg.Web.ExposeHostInfo {
		s.server.Use(func(handler http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Served-By", hostname)
				handler.ServeHTTP(w, r)
			})
		})
	}

	tpl, err := template.New("").ParseFS(apiTemplates, "assets/tpl/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse api templates: %w", err)
	}
	s.tpl = respond.NewTemplateRenderer(tpl)

	s.docs, err = fs.Sub(apiDocs, "assets/doc")
	if err != nil {
		return nil, fmt.Errorf("failed to open api documentation: %w", err)
	}

	s.setupRoutes(endpoints...)
	if frontend != nil {
		frontend(s.server.Group())
	}

	return s, nil
}

// Handler returns the root handler, including all middlewares.
func (s *Server) Handler() http.Handler {
	return s.server
}

// Run serves until ctx is cancelled, then shuts down with a grace period of 5 seconds.
func (s *Server) Run(ctx context.Context, listenAddress string) {
	srv := &http.Server{
		Addr:              listenAddress,
		Handler:           s.server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvContext, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	go func() {
		var err error
		slog.Debug("starting server", "certFile", s.cfg.Web.CertFile, "keyFile", s.cfg.Web.KeyFile)
		if s.cfg.Web.CertFile != "" && s.cfg.Web.KeyFile != "" {
			err = srv.ListenAndServeTLS(s.cfg.Web.CertFile, s.cfg.Web.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("web service exited", "address", listenAddress, "error", err)
			cancelFn()
		}
	}()
	slog.Info("started web service", "address", listenAddress)

	// Wait for the main context to end
	<-srvContext.Done()

	slog.Debug("web service shutting down, grace period: 5 seconds")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	slog.Debug("web service shut down")
}

func (s *Server) setupRoutes(endpoints ...ApiEndpointSetupFunc) {
	s.server.HandleFunc("GET /api", s.landingPage)
	s.server.HandleFunc("GET /doc/{file}", s.apiDocFile)
	s.versions = make(map[ApiVersion]*routegroup.Bundle)

	for _, setupFunc := range endpoints {
		version, groupSetupFn := setupFunc()

		if _, ok := s.versions[version]; !ok {
			s.versions[version] = s.server.Mount(fmt.Sprintf("/api/%s", version))

			// OpenAPI documentation (via RapiDoc), kept on its own bundle so the version group can still add middlewares
			s.server.Mount(fmt.Sprintf("/api/%s", version)).HandleFunc("GET /doc.html", s.rapiDocHandler(version))

			groupSetupFn(s.versions[version])
		}
	}
}

func (s *Server) landingPage(w http.ResponseWriter, _ *http.Request) {
	versions := make([]string, 0, len(s.versions))
	for version := range s.versions {
		versions = append(versions, string(version))
	}
	slices.Sort(versions)

	s.tpl.HTML(w, http.StatusOK, "index.gohtml", respond.TplData{
		"SiteTitle":   s.cfg.Web.SiteTitle,
		"CompanyName": s.cfg.Web.SiteCompanyName,
		"Versions":    versions,
		"Version":     internal.Version,
		"Year":        time.Now().Year(),
	})
}

func (s *Server) rapiDocHandler(version ApiVersion) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.tpl.HTML(w, http.StatusOK, "rapidoc.gohtml", respond.TplData{
			"SiteTitle":     s.cfg.Web.SiteTitle,
			"RapiDocSource": "https://unpkg.com/rapidoc/dist/rapidoc-min.js",
			"ApiSpecUrl":    fmt.Sprintf("/doc/%s_swagger.yaml", version),
			"Version":       internal.Version,
			"Year":          time.Now().Year(),
		})
	}
}

// apiDocFile serves the generated swagger documents. They only exist after cmd/api_build_tool ran.
func (s *Server) apiDocFile(w http.ResponseWriter, r *http.Request) {
	name := path.Base(r.PathValue("file"))
	data, err := fs.ReadFile(s.docs, name)
	if err != nil || name == ".gitkeep" {
		respond.JSON(w, http.StatusNotFound, map[string]any{
			"Code": http.StatusNotFound, "Message": "api documentation not found, run cmd/api_build_tool",
		})
		return
	}

	switch path.Ext(name) {
	case ".yaml", ".yml":
		w.Header().Set("Content-Type", "application/yaml")
	case ".json":
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
