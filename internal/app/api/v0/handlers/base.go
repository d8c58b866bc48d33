package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/railflow/railflow-portal/internal/app/api/core"
	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/csrf"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/api/session"
	"github.com/railflow/railflow-portal/internal/app/api/v0/model"
)

type SessionMiddleware interface {
	Session

	// CsrfReader returns the CSRF token stored in the session.
	CsrfReader(r *http.Request) string
	// CsrfWriter stores the CSRF token in the session.
	CsrfWriter(r *http.Request, token string)
	// Info adds the session id and controller id to the request context.
	Info(next http.Handler) http.Handler
	// LoadAndSave is a middleware that loads the session data for the given request and saves it after the request is
	// finished.
	LoadAndSave(next http.Handler) http.Handler
}

type Handler interface {
	// GetName returns the name of the handler.
	GetName() string
	// RegisterRoutes registers the routes for the handler.
	RegisterRoutes(g *routegroup.Bundle)
}

// @title RailFlow Portal UI API
// @version 0.0
// @description RailFlow Portal API - Control room endpoints

// @BasePath /api/v0

func NewRestApi(
	sessionMiddleware SessionMiddleware,
	handlers ...Handler,
) core.ApiEndpointSetupFunc {
	return func() (core.ApiVersion, core.GroupSetupFn) {
		return "v0", func(group *routegroup.Bundle) {
			csrfMiddleware := csrf.New(sessionMiddleware.CsrfReader, sessionMiddleware.CsrfWriter,
				csrf.WithErrorCallback(func(w http.ResponseWriter, r *http.Request) {
					respond.JSON(w, http.StatusForbidden, model.Error{
						Code: http.StatusForbidden, Message: "CSRF token mismatch",
					})
				}))

			group.Use(sessionMiddleware.LoadAndSave)
			group.Use(sessionMiddleware.Info)
			group.Use(csrfMiddleware.Handler)

			group.With(csrfMiddleware.RefreshToken).HandleFunc("GET /csrf", handleCsrfGet())

			// Handler functions
			for _, h := range handlers {
				h.RegisterRoutes(group)
			}
		}
	}
}

// handleCsrfGet returns a http handler function.
//
// @ID base_handleCsrfGet
// @Tags Security
// @Summary Get a CSRF token for the current session.
// @Produce json
// @Success 200 {object} string
// @Router /csrf [get]
func handleCsrfGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, csrf.GetToken(r.Context()))
	}
}

// region handler-interfaces

type Authenticator interface {
	// LoggedIn checks if a controller is logged in.
	LoggedIn() func(next http.Handler) http.Handler
	// Ready checks if the controller finished the setup, so the control room is accessible.
	Ready() func(next http.Handler) http.Handler
}

type Session interface {
	// SetData sets the session data for the given context.
	SetData(ctx context.Context, val session.Data)
	// GetData returns the session data for the given context. A new session is initialized if none exists.
	GetData(ctx context.Context) session.Data
	// Renew issues a new session token.
	Renew(ctx context.Context) error
	// Reset destroys the session and returns fresh session data.
	Reset(ctx context.Context) session.Data
}

type LoginLimiter interface {
	// HandlerWithErrorCallback returns the rate limiting middleware, rejected requests are answered by fn.
	HandlerWithErrorCallback(fn http.HandlerFunc) func(http.Handler) http.Handler
}

type Validator interface {
	// Struct validates the given struct.
	Struct(s interface{}) error
}

// endregion handler-interfaces
