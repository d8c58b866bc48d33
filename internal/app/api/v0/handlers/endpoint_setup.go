package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/railflow/railflow-portal/internal/app/api/core/request"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/api/v0/model"
	"github.com/railflow/railflow-portal/internal/app/gate"
	"github.com/railflow/railflow-portal/internal/domain"
)

type transitionFunc func(ctx context.Context, current domain.Session) (gate.Result, error)

// SetupEndpoint drives the gate from direction selection to a ready control room.
type SetupEndpoint struct {
	authenticator Authenticator
	session       Session
	gate          GateService
	validator     Validator
}

func NewSetupEndpoint(
	authenticator Authenticator,
	session Session,
	gateService GateService,
	validator Validator,
) SetupEndpoint {
	return SetupEndpoint{
		authenticator: authenticator,
		session:       session,
		gate:          gateService,
		validator:     validator,
	}
}

func (e SetupEndpoint) GetName() string {
	return "SetupEndpoint"
}

func (e SetupEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/setup")
	apiGroup.Use(e.authenticator.LoggedIn())

	apiGroup.HandleFunc("POST /direction", e.handleDirectionPost())
	apiGroup.HandleFunc("POST /configuration", e.handleConfigurationPost())
	apiGroup.HandleFunc("POST /back", e.handleTransition(e.gate.Back))
	apiGroup.HandleFunc("POST /switch", e.handleTransition(e.gate.SwitchDirection))
	apiGroup.HandleFunc("POST /reset", e.handleTransition(e.gate.ResetSetup))
}

// handleDirectionPost returns a http handler function.
//
// @ID setup_handleDirectionPost
// @Tags Setup
// @Summary Select the track direction (up or down).
// @Accept json
// @Produce json
// @Param body body model.DirectionRequest true "The direction"
// @Success 200 {object} model.TransitionResponse
// @Failure 400 {object} model.Error
// @Failure 409 {object} model.Error
// @Router /setup/direction [post]
func (e SetupEndpoint) handleDirectionPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.DirectionRequest
		if err := request.BodyJson(w, r, &req); err != nil {
			respondBadRequest(w, err)
			return
		}

		direction := domain.ParseDirection(req.Direction)
		e.transition(w, r, func(ctx context.Context, current domain.Session) (gate.Result, error) {
			return e.gate.SelectDirection(ctx, current, direction)
		})
	}
}

// handleConfigurationPost returns a http handler function.
//
// @ID setup_handleConfigurationPost
// @Tags Setup
// @Summary Complete the train configuration.
// @Accept json
// @Produce json
// @Param body body model.TrainConfiguration true "The train configuration"
// @Success 200 {object} model.TransitionResponse
// @Failure 400 {object} model.Error
// @Failure 409 {object} model.Error
// @Router /setup/configuration [post]
func (e SetupEndpoint) handleConfigurationPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.TrainConfiguration
		if err := request.BodyJson(w, r, &req); err != nil {
			respondBadRequest(w, err)
			return
		}
		if err := e.validator.Struct(req); err != nil {
			respondError(w, fmt.Errorf("%w: %w", domain.ErrInvalidData, err), "Invalid train configuration")
			return
		}

		cfg := model.NewDomainTrainConfiguration(&req)
		e.transition(w, r, func(ctx context.Context, current domain.Session) (gate.Result, error) {
			return e.gate.CompleteConfiguration(ctx, current, cfg)
		})
	}
}

// handleTransition returns a http handler function for the body-less setup operations.
//
// @ID setup_handleTransition
// @Tags Setup
// @Summary Go back to the direction selection, switch the direction or reset the setup.
// @Produce json
// @Success 200 {object} model.TransitionResponse
// @Failure 409 {object} model.Error
// @Router /setup/back [post]
// @Router /setup/switch [post]
// @Router /setup/reset [post]
func (e SetupEndpoint) handleTransition(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e.transition(w, r, fn)
	}
}

// transition applies fn to the gate state of the session and stores the result on success.
func (e SetupEndpoint) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	currentSession := e.session.GetData(r.Context())

	res, err := fn(r.Context(), currentSession.Gate)
	if err != nil {
		respondError(w, err, res.Notification.Message)
		return
	}

	currentSession.Gate = res.Session
	e.session.SetData(r.Context(), currentSession)

	respond.JSON(w, http.StatusOK, model.NewTransitionResponse(res))
}
