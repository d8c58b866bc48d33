package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/railflow/railflow-portal/internal/app/api/core/request"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/api/v0/model"
	"github.com/railflow/railflow-portal/internal/app/gate"
	"github.com/railflow/railflow-portal/internal/domain"
)

type GateService interface {
	// Login authenticates the controller. It blocks for the configured login delay.
	Login(ctx context.Context, current domain.Session, controllerId, password string) (gate.Result, error)
	// SelectDirection stores the track direction of the controller.
	SelectDirection(ctx context.Context, current domain.Session, direction domain.Direction) (gate.Result, error)
	// CompleteConfiguration stores the train configuration and opens the control room.
	CompleteConfiguration(ctx context.Context, current domain.Session, cfg domain.TrainConfiguration) (
		gate.Result,
		error,
	)
	// Back returns from the configuration to the direction selection.
	Back(ctx context.Context, current domain.Session) (gate.Result, error)
	// SwitchDirection clears the direction so a new one can be selected.
	SwitchDirection(ctx context.Context, current domain.Session) (gate.Result, error)
	// ResetSetup clears direction and configuration but keeps the controller logged in.
	ResetSetup(ctx context.Context, current domain.Session) (gate.Result, error)
	// Logout ends the controller session.
	Logout(ctx context.Context, current domain.Session) gate.Result
}

type AuthenticationEndpoint struct {
	authenticator Authenticator
	session       Session
	gate          GateService
	limiter       func(http.Handler) http.Handler
}

// NewAuthenticationEndpoint creates the login endpoints. The login limiter is shared with the web frontend,
// so a client has one login budget across both.
func NewAuthenticationEndpoint(
	authenticator Authenticator,
	session Session,
	gateService GateService,
	loginLimiter LoginLimiter,
) AuthenticationEndpoint {
	return AuthenticationEndpoint{
		authenticator: authenticator,
		session:       session,
		gate:          gateService,
		limiter: loginLimiter.HandlerWithErrorCallback(func(w http.ResponseWriter, r *http.Request) {
			respond.JSON(w, http.StatusTooManyRequests, model.Error{
				Code: http.StatusTooManyRequests, Message: "too many login attempts",
			})
		}),
	}
}

func (e AuthenticationEndpoint) GetName() string {
	return "AuthenticationEndpoint"
}

func (e AuthenticationEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/auth")

	apiGroup.HandleFunc("GET /session", e.handleSessionInfoGet())
	apiGroup.With(e.limiter).HandleFunc("POST /login", e.handleLoginPost())
	apiGroup.HandleFunc("POST /logout", e.handleLogoutPost())
}

// handleSessionInfoGet returns a http handler function.
//
// @ID auth_handleSessionInfoGet
// @Tags Authentication
// @Summary Get the gate state of the current session.
// @Produce json
// @Success 200 {object} model.Session
// @Router /auth/session [get]
func (e AuthenticationEndpoint) handleSessionInfoGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())

		respond.JSON(w, http.StatusOK, model.NewSession(currentSession.Gate))
	}
}

// handleLoginPost returns a http handler function.
//
// @ID auth_handleLoginPost
// @Tags Authentication
// @Summary Log in a controller. Any non-empty credentials are accepted.
// @Accept json
// @Produce json
// @Param body body model.LoginRequest true "The login credentials"
// @Success 200 {object} model.TransitionResponse
// @Failure 400 {object} model.Error
// @Failure 409 {object} model.Error
// @Failure 429 {object} model.Error
// @Router /auth/login [post]
func (e AuthenticationEndpoint) handleLoginPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		if err := request.BodyJson(w, r, &req); err != nil {
			respondBadRequest(w, err)
			return
		}

		currentSession := e.session.GetData(r.Context())
		res, err := e.gate.Login(r.Context(), currentSession.Gate, req.ControllerId, req.Password)
		if err != nil {
			respondError(w, err, res.Notification.Message)
			return
		}

		currentSession.Gate = res.Session
		e.session.SetData(r.Context(), currentSession)
		if err := e.session.Renew(r.Context()); err != nil {
			slog.Warn("failed to renew session token", "error", err)
		}

		respond.JSON(w, http.StatusOK, model.NewTransitionResponse(res))
	}
}

// handleLogoutPost returns a http handler function.
//
// @ID auth_handleLogoutPost
// @Tags Authentication
// @Summary End the controller session. Settings and CSRF token are discarded.
// @Produce json
// @Success 200 {object} model.TransitionResponse
// @Router /auth/logout [post]
func (e AuthenticationEndpoint) handleLogoutPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())

		res := e.gate.Logout(r.Context(), currentSession.Gate)
		e.session.Reset(r.Context())

		respond.JSON(w, http.StatusOK, model.NewTransitionResponse(res))
	}
}
