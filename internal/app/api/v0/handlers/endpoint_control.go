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

type ControlService interface {
	// GetDashboard returns the dashboard statistics and the current train list.
	GetDashboard(ctx context.Context) domain.Dashboard
	// GetTrains returns all tracked trains.
	GetTrains(ctx context.Context) []domain.TrackedTrain
	// GetTrain returns a single tracked train.
	GetTrain(ctx context.Context, id string) (domain.TrackedTrain, error)
	// GetAnalytics returns the performance analytics.
	GetAnalytics(ctx context.Context) domain.Analytics
	// GetSystemInfo returns the system status shown in the settings.
	GetSystemInfo(ctx context.Context) domain.SystemInfo
	// ApplyAction applies an operator action to a train.
	ApplyAction(ctx context.Context, trainId string, action domain.TrainAction) (domain.Notification, error)
}

// ControlEndpoint serves the control room data. It requires a completed setup.
type ControlEndpoint struct {
	authenticator Authenticator
	control       ControlService
	validator     Validator
}

func NewControlEndpoint(
	authenticator Authenticator,
	control ControlService,
	validator Validator,
) ControlEndpoint {
	return ControlEndpoint{
		authenticator: authenticator,
		control:       control,
		validator:     validator,
	}
}

func (e ControlEndpoint) GetName() string {
	return "ControlEndpoint"
}

func (e ControlEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/control")
	apiGroup.Use(e.authenticator.Ready())

	apiGroup.HandleFunc("GET /dashboard", e.handleDashboardGet())
	apiGroup.HandleFunc("GET /trains", e.handleTrainsGet())
	apiGroup.HandleFunc("GET /trains/{id}", e.handleTrainGet())
	apiGroup.HandleFunc("POST /trains/{id}/actions", e.handleTrainActionPost())
	apiGroup.HandleFunc("GET /analytics", e.handleAnalyticsGet())
	apiGroup.HandleFunc("GET /system", e.handleSystemGet())
}

// handleDashboardGet returns a http handler function.
//
// @ID control_handleDashboardGet
// @Tags Control
// @Summary Get the dashboard statistics and trains.
// @Produce json
// @Success 200 {object} model.Dashboard
// @Router /control/dashboard [get]
func (e ControlEndpoint) handleDashboardGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, model.NewDashboard(e.control.GetDashboard(r.Context())))
	}
}

// handleTrainsGet returns a http handler function.
//
// @ID control_handleTrainsGet
// @Tags Control
// @Summary Get all tracked trains.
// @Produce json
// @Success 200 {object} []model.TrackedTrain
// @Router /control/trains [get]
func (e ControlEndpoint) handleTrainsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, model.NewTrackedTrains(e.control.GetTrains(r.Context())))
	}
}

// handleTrainGet returns a http handler function.
//
// @ID control_handleTrainGet
// @Tags Control
// @Summary Get a single tracked train.
// @Produce json
// @Param id path string true "The train identifier"
// @Success 200 {object} model.TrackedTrain
// @Failure 404 {object} model.Error
// @Router /control/trains/{id} [get]
func (e ControlEndpoint) handleTrainGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		train, err := e.control.GetTrain(r.Context(), request.Path(r, "id"))
		if err != nil {
			respondError(w, err, "")
			return
		}

		respond.JSON(w, http.StatusOK, model.NewTrackedTrain(train))
	}
}

// handleTrainActionPost returns a http handler function.
//
// @ID control_handleTrainActionPost
// @Tags Control
// @Summary Apply an operator action to a train.
// @Accept json
// @Produce json
// @Param id path string true "The train identifier"
// @Param body body model.TrainActionRequest true "The action"
// @Success 200 {object} model.ActionResponse
// @Failure 400 {object} model.Error
// @Failure 404 {object} model.Error
// @Router /control/trains/{id}/actions [post]
func (e ControlEndpoint) handleTrainActionPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.TrainActionRequest
		if err := request.BodyJson(w, r, &req); err != nil {
			respondBadRequest(w, err)
			return
		}
		if err := e.validator.Struct(req); err != nil {
			respondBadRequest(w, err)
			return
		}

		n, err := e.control.ApplyAction(r.Context(), request.Path(r, "id"), domain.TrainAction(req.Action))
		if err != nil {
			respondError(w, err, "")
			return
		}

		respond.JSON(w, http.StatusOK, model.ActionResponse{Notification: model.NewNotification(n)})
	}
}

// handleAnalyticsGet returns a http handler function.
//
// @ID control_handleAnalyticsGet
// @Tags Control
// @Summary Get the performance analytics.
// @Produce json
// @Success 200 {object} model.Analytics
// @Router /control/analytics [get]
func (e ControlEndpoint) handleAnalyticsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, model.NewAnalytics(e.control.GetAnalytics(r.Context())))
	}
}

// handleSystemGet returns a http handler function.
//
// @ID control_handleSystemGet
// @Tags Control
// @Summary Get the system information.
// @Produce json
// @Success 200 {object} model.SystemInfo
// @Router /control/system [get]
func (e ControlEndpoint) handleSystemGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, model.NewSystemInfo(e.control.GetSystemInfo(r.Context())))
	}
}
