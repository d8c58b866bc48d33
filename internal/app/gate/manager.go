package gate

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/railflow/railflow-portal/internal/app"
	"github.com/railflow/railflow-portal/internal/config"
	"github.com/railflow/railflow-portal/internal/domain"
)

type EventBus interface {
	// Publish sends the given arguments to all subscribers of the topic.
	Publish(topic string, args ...any)
}

// Result is the outcome of a gate operation. On rejection, Session still holds the unchanged input session.
type Result struct {
	Session      domain.Session
	View         domain.View
	Notification domain.Notification
}

// Manager applies the session view gate transitions and handles their side effects:
// notifications, login delay and serialization, input sanitizing and events.
type Manager struct {
	cfg    *config.Config
	bus    EventBus
	policy *bluemonday.Policy

	mux           sync.Mutex
	pendingLogins map[string]struct{}
}

func NewManager(cfg *config.Config, bus EventBus) *Manager {
	return &Manager{
		cfg:           cfg,
		bus:           bus,
		policy:        bluemonday.StrictPolicy(),
		pendingLogins: make(map[string]struct{}),
	}
}

// Login authenticates the controller after the configured login delay.
// While a login of the same session is pending, further attempts are rejected.
// If ctx is cancelled during the delay, the context error is returned and nothing changes.
func (m *Manager) Login(ctx context.Context, current domain.Session, controllerId, password string) (Result, error) {
	sessionId := app.GetSessionInfo(ctx).SessionId

	next, err := current.Login(m.sanitize(controllerId), password)
	if err != nil {
		return m.reject(ctx, domain.OperationLogin, current, err), err
	}

	if !m.startLogin(sessionId) {
		err := &domain.TransitionError{
			Operation: domain.OperationLogin,
			State:     current.State(),
			Reason:    "login already in progress",
		}
		return m.reject(ctx, domain.OperationLogin, current, err), err
	}
	defer m.finishLogin(sessionId)

	if m.cfg.Core.LoginDelay > 0 {
		select {
		case <-ctx.Done():
			slog.Debug("login aborted", "session", sessionId, "error", ctx.Err())
			return m.result(current, domain.Notification{}), ctx.Err()
		case <-time.After(m.cfg.Core.LoginDelay):
		}
	}

	slog.Info("controller logged in", "controller", next.ControllerId, "session", sessionId)
	m.publish(ctx, app.TopicGateLogin, domain.OperationLogin, current, next, "")

	return m.result(next, domain.SuccessNotification(fmt.Sprintf("Welcome back, %s!", next.ControllerId))), nil
}

// loginPending reports whether a login of the given session is currently in progress.
func (m *Manager) loginPending(sessionId string) bool {
	m.mux.Lock()
	defer m.mux.Unlock()

	_, pending := m.pendingLogins[sessionId]
	return pending
}

func (m *Manager) SelectDirection(ctx context.Context, current domain.Session, direction domain.Direction) (
	Result,
	error,
) {
	next, err := current.SelectDirection(direction)
	if err != nil {
		return m.reject(ctx, domain.OperationSelectDirection, current, err), err
	}

	m.publish(ctx, app.TopicGateDirection, domain.OperationSelectDirection, current, next, "")

	return m.result(next, domain.SuccessNotification(fmt.Sprintf("%s direction selected", direction.Label()))), nil
}

func (m *Manager) CompleteConfiguration(
	ctx context.Context,
	current domain.Session,
	cfg domain.TrainConfiguration,
) (Result, error) {
	cfg.TrainNumber = m.sanitize(cfg.TrainNumber)
	cfg.StationCode = m.sanitize(cfg.StationCode)
	cfg.InitialDestination = m.sanitize(cfg.InitialDestination)
	cfg.FinalDestination = m.sanitize(cfg.FinalDestination)
	cfg.TrainType = domain.TrainType(m.sanitize(string(cfg.TrainType)))
	cfg.Priority = domain.Priority(m.sanitize(string(cfg.Priority)))

	next, err := current.CompleteConfiguration(cfg)
	if err != nil {
		return m.reject(ctx, domain.OperationCompleteConfiguration, current, err), err
	}

	slog.Info("train configured", "controller", next.ControllerId, "train", next.Configuration.TrainNumber,
		"direction", next.Direction)
	m.publish(ctx, app.TopicGateConfigured, domain.OperationCompleteConfiguration, current, next, "")

	return m.result(next, domain.SuccessNotification("Train configuration completed successfully!")), nil
}

// Back returns from the configuration to the direction selection.
func (m *Manager) Back(ctx context.Context, current domain.Session) (Result, error) {
	next, err := current.Back()
	if err != nil {
		return m.reject(ctx, domain.OperationBack, current, err), err
	}

	m.publish(ctx, app.TopicGateBack, domain.OperationBack, current, next, "")

	return m.result(next, domain.InfoNotification("Back to direction selection")), nil
}

// SwitchDirection is Back, announced as a switch to the opposite direction.
func (m *Manager) SwitchDirection(ctx context.Context, current domain.Session) (Result, error) {
	target := current.Direction.Opposite()

	res, err := m.Back(ctx, current)
	if err != nil {
		return res, err
	}

	res.Notification = domain.InfoNotification(fmt.Sprintf("Switched to %s direction", target.Label()))
	return res, nil
}

// ResetSetup clears direction and configuration, the controller stays logged in.
func (m *Manager) ResetSetup(ctx context.Context, current domain.Session) (Result, error) {
	next, err := current.ResetSetup()
	if err != nil {
		return m.reject(ctx, domain.OperationResetSetup, current, err), err
	}

	m.publish(ctx, app.TopicGateReset, domain.OperationResetSetup, current, next, "")

	return m.result(next, domain.SuccessNotification("System reset completed - all data cleared")), nil
}

// Logout always succeeds and returns the initial session.
func (m *Manager) Logout(ctx context.Context, current domain.Session) Result {
	next := current.Logout()

	if current.Authenticated {
		slog.Info("controller logged out", "controller", current.ControllerId,
			"session", app.GetSessionInfo(ctx).SessionId)
	}
	m.publish(ctx, app.TopicGateLogout, domain.OperationLogout, current, next, "")

	return m.result(next, domain.SuccessNotification("Logged out successfully"))
}

// region internal-helpers

func (m *Manager) startLogin(sessionId string) bool {
	m.mux.Lock()
	defer m.mux.Unlock()

	if _, pending := m.pendingLogins[sessionId]; pending {
		return false
	}
	m.pendingLogins[sessionId] = struct{}{}
	return true
}

func (m *Manager) finishLogin(sessionId string) {
	m.mux.Lock()
	defer m.mux.Unlock()

	delete(m.pendingLogins, sessionId)
}

// maxSanitizeRounds bounds the decode and strip loop of sanitize.
const maxSanitizeRounds = 8

// sanitize strips all markup from user input and trims surrounding whitespace. The result is plain text.
// Entity encoded markup is decoded and stripped as well, until the text no longer changes.
func (m *Manager) sanitize(s string) string {
	for range maxSanitizeRounds {
		plain := html.UnescapeString(m.policy.Sanitize(s))
		if plain == s {
			return strings.TrimSpace(plain)
		}
		s = plain
	}

	// still changing, keep only text without any angle brackets
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(m.policy.Sanitize(s)))
}

func (m *Manager) result(s domain.Session, n domain.Notification) Result {
	return Result{
		Session:      s,
		View:         domain.SelectView(s),
		Notification: n,
	}
}

func (m *Manager) reject(ctx context.Context, operation string, current domain.Session, err error) Result {
	slog.Debug("gate operation rejected", "operation", operation, "state", current.State(), "error", err)
	m.publish(ctx, app.TopicGateRejected, operation, current, current, err.Error())

	return m.result(current, domain.ErrorNotification(RejectionMessage(operation, err)))
}

func (m *Manager) publish(ctx context.Context, topic, operation string, from, to domain.Session, errMsg string) {
	controllerId := to.ControllerId
	if controllerId == "" {
		controllerId = from.ControllerId
	}

	m.bus.Publish(topic, app.GateEvent{
		SessionId:    app.GetSessionInfo(ctx).SessionId,
		ControllerId: controllerId,
		Operation:    operation,
		From:         from.State(),
		To:           to.State(),
		Direction:    to.Direction,
		Error:        errMsg,
	})
}

// endregion internal-helpers

// RejectionMessage returns the text shown to the controller for a rejected operation.
func RejectionMessage(operation string, err error) string {
	var transitionErr *domain.TransitionError
	switch {
	case errors.Is(err, domain.ErrMissingRequiredField) && operation == domain.OperationLogin:
		return "Please fill in all fields"
	case errors.Is(err, domain.ErrMissingRequiredField) && operation == domain.OperationSelectDirection:
		return "Please select a track direction"
	case errors.Is(err, domain.ErrMissingRequiredField):
		return "Please fill in all required fields"
	case errors.As(err, &transitionErr) && transitionErr.Reason != "":
		return strings.ToUpper(transitionErr.Reason[:1]) + transitionErr.Reason[1:]
	case errors.As(err, &transitionErr):
		return fmt.Sprintf("This action is not available right now (%s)",
			strings.ReplaceAll(string(transitionErr.State), "_", " "))
	default:
		return err.Error()
	}
}
