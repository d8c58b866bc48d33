package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/railflow/railflow-portal/internal/app/api/core/request"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/api/v0/model"
	"github.com/railflow/railflow-portal/internal/domain"
)

type SettingsService interface {
	// SaveSettings validates the settings and announces the change.
	SaveSettings(ctx context.Context, settings domain.Settings) (domain.Settings, domain.Notification, error)
	// ResetSettings returns the default settings and announces the change.
	ResetSettings(ctx context.Context) (domain.Settings, domain.Notification)
}

// SettingsEndpoint manages the control room settings. They are kept in the session.
type SettingsEndpoint struct {
	authenticator Authenticator
	session       Session
	settings      SettingsService
}

func NewSettingsEndpoint(
	authenticator Authenticator,
	session Session,
	settings SettingsService,
) SettingsEndpoint {
	return SettingsEndpoint{
		authenticator: authenticator,
		session:       session,
		settings:      settings,
	}
}

func (e SettingsEndpoint) GetName() string {
	return "SettingsEndpoint"
}

func (e SettingsEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.With(e.authenticator.Ready())

	apiGroup.HandleFunc("GET /settings", e.handleSettingsGet())
	apiGroup.HandleFunc("PUT /settings", e.handleSettingsPut())
	apiGroup.HandleFunc("POST /settings/reset", e.handleSettingsResetPost())
}

// handleSettingsGet returns a http handler function.
//
// @ID settings_handleSettingsGet
// @Tags Settings
// @Summary Get the settings of the current session.
// @Produce json
// @Success 200 {object} model.Settings
// @Router /settings [get]
func (e SettingsEndpoint) handleSettingsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, model.NewSettings(e.session.GetData(r.Context()).Settings))
	}
}

// handleSettingsPut returns a http handler function.
//
// @ID settings_handleSettingsPut
// @Tags Settings
// @Summary Save the settings of the current session.
// @Accept json
// @Produce json
// @Param body body model.Settings true "The settings"
// @Success 200 {object} model.SettingsResponse
// @Failure 400 {object} model.Error
// @Router /settings [put]
func (e SettingsEndpoint) handleSettingsPut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.Settings
		if err := request.BodyJson(w, r, &req); err != nil {
			respondBadRequest(w, err)
			return
		}

		saved, n, err := e.settings.SaveSettings(r.Context(), model.NewDomainSettings(req))
		if err != nil {
			respondError(w, err, n.Message)
			return
		}

		currentSession := e.session.GetData(r.Context())
		currentSession.Settings = saved
		e.session.SetData(r.Context(), currentSession)

		respond.JSON(w, http.StatusOK, model.SettingsResponse{
			Settings:     model.NewSettings(saved),
			Notification: model.NewNotification(n),
		})
	}
}

// handleSettingsResetPost returns a http handler function.
//
// @ID settings_handleSettingsResetPost
// @Tags Settings
// @Summary Reset the settings of the current session to the defaults.
// @Produce json
// @Success 200 {object} model.SettingsResponse
// @Router /settings/reset [post]
func (e SettingsEndpoint) handleSettingsResetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, n := e.settings.ResetSettings(r.Context())

		currentSession := e.session.GetData(r.Context())
		currentSession.Settings = settings
		e.session.SetData(r.Context(), currentSession)

		respond.JSON(w, http.StatusOK, model.SettingsResponse{
			Settings:     model.NewSettings(settings),
			Notification: model.NewNotification(n),
		})
	}
}
