package controlroom

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/railflow/railflow-portal/internal"
	"github.com/railflow/railflow-portal/internal/app"
	"github.com/railflow/railflow-portal/internal/domain"
)

type EventBus interface {
	// Publish sends the given arguments to all subscribers of the topic.
	Publish(topic string, args ...any)
}

// Manager serves the simulated control room data and the operator actions on it.
type Manager struct {
	bus       EventBus
	validate  *validator.Validate
	startedAt time.Time
}

func NewManager(bus EventBus) *Manager {
	return &Manager{
		bus:       bus,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		startedAt: time.Now(),
	}
}

func (m *Manager) GetDashboard(_ context.Context) domain.Dashboard {
	return domain.Dashboard{
		Stats:  dashboardStats(),
		Trains: dashboardTrains(),
	}
}

func (m *Manager) GetTrains(_ context.Context) []domain.TrackedTrain {
	return trackedTrains()
}

// GetTrain returns the tracked train with the given id, or domain.ErrNotFound.
func (m *Manager) GetTrain(_ context.Context, id string) (domain.TrackedTrain, error) {
	for _, train := range trackedTrains() {
		if train.Id == id {
			return train, nil
		}
	}

	return domain.TrackedTrain{}, fmt.Errorf("train %s: %w", id, domain.ErrNotFound)
}

func (m *Manager) GetAnalytics(_ context.Context) domain.Analytics {
	return analytics()
}

func (m *Manager) GetSystemInfo(_ context.Context) domain.SystemInfo {
	return domain.SystemInfo{
		Version:    internal.Version,
		Uptime:     internal.HumanDuration(internal.Uptime()),
		LastUpdate: m.startedAt.Format("2006-01-02 15:04"),
		Status:     "Operational",
	}
}

// ApplyAction applies the action to a tracked train if the id is known there,
// otherwise to a train of the dashboard list.
func (m *Manager) ApplyAction(ctx context.Context, trainId string, action domain.TrainAction) (
	domain.Notification,
	error,
) {
	if _, err := m.GetTrain(ctx, trainId); err == nil {
		return m.ApplyControlAction(ctx, trainId, action)
	}
	return m.ApplyQuickAction(ctx, trainId, action)
}

// ApplyControlAction applies one of the control panel actions to a tracked train.
func (m *Manager) ApplyControlAction(ctx context.Context, trainId string, action domain.TrainAction) (
	domain.Notification,
	error,
) {
	if !slices.Contains(domain.ControlActions, action) {
		return domain.Notification{}, fmt.Errorf("unknown control action %q: %w", action, domain.ErrInvalidData)
	}

	train, err := m.GetTrain(ctx, trainId)
	if err != nil {
		return domain.Notification{}, err
	}

	return m.applyAction(ctx, train.Train, action), nil
}

// ApplyQuickAction applies one of the quick actions to a train of the dashboard list.
func (m *Manager) ApplyQuickAction(ctx context.Context, trainId string, action domain.TrainAction) (
	domain.Notification,
	error,
) {
	if !slices.Contains(domain.QuickActions, action) {
		return domain.Notification{}, fmt.Errorf("unknown quick action %q: %w", action, domain.ErrInvalidData)
	}

	idx := slices.IndexFunc(dashboardTrains(), func(t domain.Train) bool { return t.Id == trainId })
	if idx < 0 {
		return domain.Notification{}, fmt.Errorf("train %s: %w", trainId, domain.ErrNotFound)
	}

	return m.applyAction(ctx, dashboardTrains()[idx], action), nil
}

func (m *Manager) applyAction(ctx context.Context, train domain.Train, action domain.TrainAction) domain.Notification {
	info := app.GetSessionInfo(ctx)

	slog.Info("train action applied", "train", train.Id, "action", action, "controller", info.ControllerId)
	m.bus.Publish(app.TopicTrainAction, app.TrainActionEvent{
		SessionId:    info.SessionId,
		ControllerId: info.ControllerId,
		TrainId:      train.Id,
		TrainName:    train.Name,
		Action:       action,
	})

	if action.IsEmergency() {
		return domain.ErrorNotification(fmt.Sprintf("%s applied to %s", action, train.Name))
	}
	return domain.SuccessNotification(fmt.Sprintf("%s applied to %s", action, train.Name))
}

// SaveSettings validates the given settings. The caller stores them in the session.
func (m *Manager) SaveSettings(ctx context.Context, settings domain.Settings) (
	domain.Settings,
	domain.Notification,
	error,
) {
	if err := m.validate.Struct(settings); err != nil {
		return domain.Settings{}, domain.ErrorNotification("Invalid settings"),
			fmt.Errorf("%w: %w", domain.ErrInvalidData, err)
	}

	m.publishSettings(ctx, settings, false)

	return settings, domain.SuccessNotification("Settings saved successfully!"), nil
}

func (m *Manager) ResetSettings(ctx context.Context) (domain.Settings, domain.Notification) {
	settings := domain.DefaultSettings()
	m.publishSettings(ctx, settings, true)

	return settings, domain.InfoNotification("Settings reset to default values")
}

func (m *Manager) publishSettings(ctx context.Context, settings domain.Settings, reset bool) {
	info := app.GetSessionInfo(ctx)
	m.bus.Publish(app.TopicSettingsChanged, app.SettingsEvent{
		SessionId:    info.SessionId,
		ControllerId: info.ControllerId,
		Reset:        reset,
		Settings:     settings,
	})
}
