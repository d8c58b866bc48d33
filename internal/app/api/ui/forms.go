package ui

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/railflow/railflow-portal/internal/app/api/core/request"
	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/gate"
	"github.com/railflow/railflow-portal/internal/domain"
)

type transitionFunc func(ctx context.Context, current domain.Session) (gate.Result, error)

// transition applies fn to the gate of the session, queues the resulting notification
// and redirects to the page selected by the new state. onSuccess runs before the redirect is written,
// as the session is committed together with the response header.
func (f *Frontend) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc,
	onSuccess func(ctx context.Context)) {
	ctx := r.Context()
	data := f.session.GetData(ctx)

	res, err := fn(ctx, data.Gate)
	if errors.Is(err, context.Canceled) {
		return // client is gone
	}
	if err == nil {
		data.Gate = res.Session
		f.session.SetData(ctx, data)
		if onSuccess != nil {
			onSuccess(ctx)
		}
	}

	f.session.PushFlash(ctx, res.Notification)
	respond.SeeOther(w, r, "/")
}

func (f *Frontend) handleTransition(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.transition(w, r, fn, nil)
	}
}

func (f *Frontend) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	controllerId := request.Form(r, "controllerId")
	password := request.FormRaw(r, "password")

	f.transition(w, r, func(ctx context.Context, current domain.Session) (gate.Result, error) {
		return f.gate.Login(ctx, current, controllerId, password)
	}, f.renewSession)
}

// renewSession issues a new session token after the login, the session data is kept.
func (f *Frontend) renewSession(ctx context.Context) {
	if err := f.session.Renew(ctx); err != nil {
		slog.Warn("failed to renew session token", "error", err)
	}
}

func (f *Frontend) handleLogoutPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res := f.gate.Logout(ctx, f.session.GetData(ctx).Gate)
	f.session.Reset(ctx)
	f.session.PushFlash(ctx, res.Notification)

	respond.SeeOther(w, r, "/")
}

func (f *Frontend) handleDirectionPost(w http.ResponseWriter, r *http.Request) {
	direction := domain.ParseDirection(request.Form(r, "direction"))

	f.transition(w, r, func(ctx context.Context, current domain.Session) (gate.Result, error) {
		return f.gate.SelectDirection(ctx, current, direction)
	}, nil)
}

func (f *Frontend) handleConfigurationPost(w http.ResponseWriter, r *http.Request) {
	cfg := domain.TrainConfiguration{
		TrainNumber:        request.Form(r, "trainNumber"),
		TrainType:          domain.TrainType(request.Form(r, "trainType")),
		Priority:           domain.Priority(request.Form(r, "priority")),
		StationCode:        request.Form(r, "stationCode"),
		InitialDestination: request.Form(r, "initialDestination"),
		FinalDestination:   request.Form(r, "finalDestination"),
	}

	if (cfg.TrainType != "" && !slices.Contains(domain.TrainTypes, cfg.TrainType)) ||
		(cfg.Priority != "" && !slices.Contains(domain.ConfigurationPriorities, cfg.Priority)) {
		f.session.PushFlash(r.Context(), domain.ErrorNotification("Invalid train configuration"))
		respond.SeeOther(w, r, "/")
		return
	}

	f.transition(w, r, func(ctx context.Context, current domain.Session) (gate.Result, error) {
		return f.gate.CompleteConfiguration(ctx, current, cfg)
	}, nil)
}

// ready only lets requests pass when the control room is open.
func (f *Frontend) ready(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := f.session.GetData(r.Context()).Gate
		if current.State() != domain.StateReady {
			err := domain.NewInvalidTransitionError(r.URL.Path, current.State())
			f.session.PushFlash(r.Context(), domain.ErrorNotification(gate.RejectionMessage(r.URL.Path, err)))
			respond.SeeOther(w, r, "/")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (f *Frontend) handleControlActionPost(w http.ResponseWriter, r *http.Request) {
	trainId := request.Path(r, "id")
	action := domain.TrainAction(request.Form(r, "action"))

	n, err := f.control.ApplyControlAction(r.Context(), trainId, action)
	if err != nil {
		n = actionErrorNotification(err)
	}
	f.session.PushFlash(r.Context(), n)

	if errors.Is(err, domain.ErrNotFound) {
		respond.SeeOther(w, r, "/train-control")
		return
	}
	respond.SeeOther(w, r, "/train-control/"+url.PathEscape(trainId))
}

func (f *Frontend) handleQuickActionPost(w http.ResponseWriter, r *http.Request) {
	action := domain.TrainAction(request.Form(r, "action"))

	n, err := f.control.ApplyQuickAction(r.Context(), request.Path(r, "id"), action)
	if err != nil {
		n = actionErrorNotification(err)
	}
	f.session.PushFlash(r.Context(), n)

	respond.SeeOther(w, r, "/dashboard")
}

func actionErrorNotification(err error) domain.Notification {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrorNotification("Train not found")
	case errors.Is(err, domain.ErrInvalidData):
		return domain.ErrorNotification("Unknown action")
	default:
		return domain.ErrorNotification(err.Error())
	}
}

func (f *Frontend) handleSettingsPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := parseSettings(r)
	if err != nil {
		slog.Debug("invalid settings form", "error", err)
		f.session.PushFlash(ctx, domain.ErrorNotification("Invalid settings"))
		respond.SeeOther(w, r, "/settings")
		return
	}

	saved, n, err := f.control.SaveSettings(ctx, settings)
	if err == nil {
		data := f.session.GetData(ctx)
		data.Settings = saved
		f.session.SetData(ctx, data)
	}
	f.session.PushFlash(ctx, n)

	respond.SeeOther(w, r, "/settings")
}

func (f *Frontend) handleSettingsResetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, n := f.control.ResetSettings(ctx)
	data := f.session.GetData(ctx)
	data.Settings = settings
	f.session.SetData(ctx, data)
	f.session.PushFlash(ctx, n)

	respond.SeeOther(w, r, "/settings")
}

func parseSettings(r *http.Request) (domain.Settings, error) {
	var err error
	s := domain.Settings{
		PriorityMode: domain.PriorityMode(request.Form(r, "priorityMode")),
		AutoReroute:  request.FormBool(r, "autoReroute"),
		SoundAlerts:  request.FormBool(r, "soundAlerts"),
	}

	if s.RefreshInterval, err = request.FormInt(r, "refreshInterval"); err != nil {
		return s, err
	}
	if s.AlertThreshold, err = request.FormInt(r, "alertThreshold"); err != nil {
		return s, err
	}
	if s.MaxDelayAlert, err = request.FormInt(r, "maxDelayAlert"); err != nil {
		return s, err
	}

	return s, nil
}
