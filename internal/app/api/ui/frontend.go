// Package ui is the server rendered control room frontend.
// Every page request is answered with the screen selected by the gate of the session.
// The routed application pages are only reachable once the gate is ready.
package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/routegroup"

	"github.com/railflow/railflow-portal/internal"
	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/csrf"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/config"
	"github.com/railflow/railflow-portal/internal/domain"
)

type Frontend struct {
	cfg     *config.Config
	session Session
	gate    GateService
	control ControlService
	limiter LoginLimiter

	tpl   *respond.TemplateRenderer
	pages *http.ServeMux // application pages, reachable in the ready state only
}

// NewFrontend parses the page templates. The login limiter is shared with the JSON API.
func NewFrontend(
	cfg *config.Config,
	session Session,
	gate GateService,
	control ControlService,
	loginLimiter LoginLimiter,
) (*Frontend, error) {
	tpl, err := template.New("").Funcs(templateFuncs()).ParseFS(pageTemplates, "assets/tpl/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontend templates: %w", err)
	}

	f := &Frontend{
		cfg:     cfg,
		session: session,
		gate:    gate,
		control: control,
		limiter: loginLimiter,
		tpl:     respond.NewTemplateRenderer(tpl),
		pages:   http.NewServeMux(),
	}

	f.pages.HandleFunc("GET /{$}", f.handleDashboardGet)
	f.pages.HandleFunc("GET /dashboard", f.handleDashboardGet)
	f.pages.HandleFunc("GET /train-control", f.handleTrainControlGet)
	f.pages.HandleFunc("GET /train-control/{id}", f.handleTrainControlGet)
	f.pages.HandleFunc("GET /analytics", f.handleAnalyticsGet)
	f.pages.HandleFunc("GET /settings", f.handleSettingsGet)
	f.pages.HandleFunc("/", f.handleNotFound)

	return f, nil
}

// Setup registers the frontend routes. It matches core.GroupSetupFn.
func (f *Frontend) Setup(g *routegroup.Bundle) {
	static, _ := fs.Sub(staticFiles, "assets")
	g.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	csrfMiddleware := csrf.New(f.session.CsrfReader, f.session.CsrfWriter,
		csrf.WithErrorCallback(func(w http.ResponseWriter, r *http.Request) {
			f.session.PushFlash(r.Context(), domain.ErrorNotification("The form has expired, please try again"))
			respond.SeeOther(w, r, "/")
		}))
	loginLimiter := f.limiter.HandlerWithErrorCallback(func(w http.ResponseWriter, r *http.Request) {
		f.session.PushFlash(r.Context(), domain.ErrorNotification("Too many login attempts, please wait"))
		respond.SeeOther(w, r, "/")
	})

	web := g.Group()
	web.Use(f.session.LoadAndSave)
	web.Use(f.session.Info)
	web.Use(csrfMiddleware.Handler)
	web.Use(csrfMiddleware.RefreshToken)

	// "GET /" would only match the root path, the gate decides for every path
	web.HandleFunc("GET /{path...}", f.handlePage)

	web.With(loginLimiter).HandleFunc("POST /login", f.handleLoginPost)
	web.HandleFunc("POST /logout", f.handleLogoutPost)
	web.HandleFunc("POST /direction", f.handleDirectionPost)
	web.HandleFunc("POST /configuration", f.handleConfigurationPost)
	web.HandleFunc("POST /back", f.handleTransition(f.gate.Back))
	web.HandleFunc("POST /switch", f.handleTransition(f.gate.SwitchDirection))
	web.HandleFunc("POST /reset", f.handleTransition(f.gate.ResetSetup))

	app := web.With(f.ready)
	app.HandleFunc("POST /settings", f.handleSettingsPost)
	app.HandleFunc("POST /settings/reset", f.handleSettingsResetPost)
	app.HandleFunc("POST /train-control/{id}/actions", f.handleControlActionPost)
	app.HandleFunc("POST /dashboard/trains/{id}/actions", f.handleQuickActionPost)
}

// render adds the layout data of every page and renders the named template.
func (f *Frontend) render(w http.ResponseWriter, r *http.Request, code int, name string, extra respond.TplData) {
	ctx := r.Context()
	data := f.session.GetData(ctx)

	tplData := respond.TplData{
		"SiteTitle":   f.cfg.Web.SiteTitle,
		"CompanyName": f.cfg.Web.SiteCompanyName,
		"Version":     internal.Version,
		"Year":        time.Now().Year(),
		"Csrf":        csrf.GetToken(ctx),
		"Session":     data.Gate,
		"Settings":    data.Settings,
		"Flash":       f.session.PopFlash(ctx),
		"Path":        r.URL.Path,
		"Active":      "",
	}
	for k, v := range extra {
		tplData[k] = v
	}

	f.tpl.HTML(w, code, name, tplData)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"inc": func(i int) int {
			return i + 1
		},
		// pct returns v as percentage of total, for bar widths
		"pct": func(v, total int) int {
			if total <= 0 {
				return 0
			}
			return v * 100 / total
		},
	}
}
