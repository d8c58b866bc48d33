package gate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railflow/railflow-portal/internal/app"
	"github.com/railflow/railflow-portal/internal/config"
	"github.com/railflow/railflow-portal/internal/domain"
)

type publishedEvent struct {
	topic string
	event app.GateEvent
}

type mockBus struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (b *mockBus) Publish(topic string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ev, _ := args[0].(app.GateEvent)
	b.events = append(b.events, publishedEvent{topic: topic, event: ev})
}

func (b *mockBus) last() publishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == 0 {
		return publishedEvent{}
	}
	return b.events[len(b.events)-1]
}

func newTestManager(delay time.Duration) (*Manager, *mockBus) {
	cfg := &config.Config{}
	cfg.Core.LoginDelay = delay
	bus := &mockBus{}
	return NewManager(cfg, bus), bus
}

func testCtx() context.Context {
	return app.WithSessionInfo(context.Background(), app.SessionInfo{SessionId: "sess-1"})
}

func validConfiguration() domain.TrainConfiguration {
	return domain.TrainConfiguration{
		TrainNumber:        "12345",
		TrainType:          domain.TrainTypeExpress,
		StationCode:        "ndls",
		InitialDestination: "New Delhi",
		FinalDestination:   "Mumbai Central",
	}
}

func TestManager_FullFlow(t *testing.T) {
	m, bus := newTestManager(0)
	ctx := testCtx()

	res, err := m.Login(ctx, domain.Session{}, "abhi", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewDirectionSelection, res.View)
	assert.Equal(t, "Welcome back, abhi!", res.Notification.Message)
	assert.Equal(t, domain.NotificationSuccess, res.Notification.Level)
	assert.Equal(t, app.TopicGateLogin, bus.last().topic)
	assert.Equal(t, "sess-1", bus.last().event.SessionId)

	res, err = m.SelectDirection(ctx, res.Session, domain.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewConfiguration, res.View)
	assert.Equal(t, "UP direction selected", res.Notification.Message)

	res, err = m.CompleteConfiguration(ctx, res.Session, validConfiguration())
	require.NoError(t, err)
	assert.Equal(t, domain.ViewApplication, res.View)
	assert.Equal(t, "Train configuration completed successfully!", res.Notification.Message)
	assert.Equal(t, "NDLS", res.Session.Configuration.StationCode)
	assert.Equal(t, domain.StateReady, bus.last().event.To)

	res, err = m.ResetSetup(ctx, res.Session)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewDirectionSelection, res.View)
	assert.Equal(t, "System reset completed - all data cleared", res.Notification.Message)

	res = m.Logout(ctx, res.Session)
	assert.Equal(t, domain.ViewLogin, res.View)
	assert.Equal(t, domain.Session{}, res.Session)
	assert.Equal(t, "Logged out successfully", res.Notification.Message)
	assert.Equal(t, app.TopicGateLogout, bus.last().topic)
	assert.Equal(t, "abhi", bus.last().event.ControllerId)
}

func TestManager_Login_MissingFields(t *testing.T) {
	m, bus := newTestManager(0)

	res, err := m.Login(testCtx(), domain.Session{}, "", "pw")
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	assert.Equal(t, domain.ViewLogin, res.View)
	assert.Equal(t, domain.NotificationError, res.Notification.Level)
	assert.Equal(t, "Please fill in all fields", res.Notification.Message)
	assert.Equal(t, app.TopicGateRejected, bus.last().topic)
	assert.NotEmpty(t, bus.last().event.Error)
}

func TestManager_Login_SanitizesControllerId(t *testing.T) {
	m, _ := newTestManager(0)

	res, err := m.Login(testCtx(), domain.Session{}, "<b>abhi</b>", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abhi", res.Session.ControllerId)

	_, err = m.Login(testCtx(), domain.Session{}, "<script>alert(1)</script>", "pw")
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)

	res, err = m.Login(testCtx(), domain.Session{}, "Tom & Jerry", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", res.Session.ControllerId)
}

func TestManager_Sanitize_EncodedMarkup(t *testing.T) {
	m, _ := newTestManager(0)

	res, err := m.Login(testCtx(), domain.Session{}, "&lt;b&gt;abhi&lt;/b&gt;", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abhi", res.Session.ControllerId)

	_, err = m.Login(testCtx(), domain.Session{}, "&lt;script&gt;alert(1)&lt;/script&gt;", "pw")
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)

	res, err = m.Login(testCtx(), domain.Session{}, "&amp;lt;i&amp;gt;abhi", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abhi", res.Session.ControllerId)

	s, _ := res.Session.SelectDirection(domain.DirectionUp)
	cfg := validConfiguration()
	cfg.FinalDestination = "Mumbai &lt;img src=x onerror=alert(1)&gt;"
	res, err = m.CompleteConfiguration(testCtx(), s, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", res.Session.Configuration.FinalDestination)
	assert.NotContains(t, res.Session.Configuration.FinalDestination, "<")
}

func TestManager_Login_Cancelled(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	ctx, cancel := context.WithCancel(testCtx())
	cancel()

	res, err := m.Login(ctx, domain.Session{}, "abhi", "pw")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, res.Session.Authenticated)
	assert.False(t, m.loginPending("sess-1"))
}

func TestManager_Login_Concurrent(t *testing.T) {
	m, _ := newTestManager(200 * time.Millisecond)
	ctx := testCtx()

	done := make(chan error, 1)
	go func() {
		_, err := m.Login(ctx, domain.Session{}, "abhi", "pw")
		done <- err
	}()

	require.Eventually(t, func() bool { return m.loginPending("sess-1") }, time.Second, 5*time.Millisecond)

	res, err := m.Login(ctx, domain.Session{}, "abhi", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "Login already in progress", res.Notification.Message)

	require.NoError(t, <-done)
	assert.False(t, m.loginPending("sess-1"))
}

func TestManager_Login_DifferentSessionsDoNotBlock(t *testing.T) {
	m, _ := newTestManager(0)

	_, err := m.Login(testCtx(), domain.Session{}, "abhi", "pw")
	require.NoError(t, err)
	other := app.WithSessionInfo(context.Background(), app.SessionInfo{SessionId: "sess-2"})
	_, err = m.Login(other, domain.Session{}, "ravi", "pw")
	require.NoError(t, err)
}

func TestManager_SelectDirection_Invalid(t *testing.T) {
	m, _ := newTestManager(0)
	current := domain.Session{Authenticated: true, ControllerId: "abhi"}

	res, err := m.SelectDirection(testCtx(), current, domain.DirectionNone)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	assert.Equal(t, current, res.Session)
	assert.Equal(t, "Please select a track direction", res.Notification.Message)

	_, err = m.SelectDirection(testCtx(), domain.Session{}, domain.DirectionUp)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestManager_CompleteConfiguration_Missing(t *testing.T) {
	m, _ := newTestManager(0)
	current := domain.Session{Authenticated: true, ControllerId: "abhi", Direction: domain.DirectionDown}

	cfg := validConfiguration()
	cfg.FinalDestination = "  "
	res, err := m.CompleteConfiguration(testCtx(), current, cfg)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	assert.Equal(t, domain.ViewConfiguration, res.View)
	assert.Equal(t, "Please fill in all required fields", res.Notification.Message)
}

func TestManager_BackAndSwitch(t *testing.T) {
	m, bus := newTestManager(0)
	current := domain.Session{Authenticated: true, ControllerId: "abhi", Direction: domain.DirectionUp}

	res, err := m.Back(testCtx(), current)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewDirectionSelection, res.View)
	assert.Equal(t, app.TopicGateBack, bus.last().topic)

	res, err = m.SwitchDirection(testCtx(), current)
	require.NoError(t, err)
	assert.Equal(t, domain.DirectionNone, res.Session.Direction)
	assert.Equal(t, "Switched to DOWN direction", res.Notification.Message)
	assert.Equal(t, domain.NotificationInfo, res.Notification.Level)

	_, err = m.SwitchDirection(testCtx(), domain.Session{Authenticated: true, ControllerId: "abhi"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRejectionMessage(t *testing.T) {
	err := domain.NewInvalidTransitionError(domain.OperationBack, domain.StateReady)
	assert.Equal(t, "This action is not available right now (ready)", RejectionMessage(domain.OperationBack, err))
	assert.Equal(t, "boom", RejectionMessage(domain.OperationBack, errors.New("boom")))
}
