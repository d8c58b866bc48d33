package telemetry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	evbus "github.com/vardius/message-bus"

	"github.com/railflow/railflow-portal/internal/app"
	"github.com/railflow/railflow-portal/internal/config"
	"github.com/railflow/railflow-portal/internal/domain"
)

type mockRecorder struct {
	mu          sync.Mutex
	transitions []string
	rejections  []string
	actions     []string
	settings    int
}

func (r *mockRecorder) RecordTransition(transition string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, transition)
}

func (r *mockRecorder) RecordRejection(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = append(r.rejections, operation)
}

func (r *mockRecorder) RecordTrainAction(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func (r *mockRecorder) RecordSettingsChange() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings++
}

func (r *mockRecorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transitions) + len(r.rejections) + len(r.actions) + r.settings
}

func TestCollector(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Enabled = true
	bus := evbus.New(10)
	rec := &mockRecorder{}

	_, err := NewCollector(cfg, bus, rec)
	require.NoError(t, err)

	bus.Publish(app.TopicGateDirection, app.GateEvent{
		Operation: domain.OperationSelectDirection,
		From:      domain.StateAwaitingDirection,
		To:        domain.StateAwaitingConfiguration,
	})
	bus.Publish(app.TopicGateRejected, app.GateEvent{Operation: domain.OperationLogin, Error: "missing"})
	bus.Publish(app.TopicTrainAction, app.TrainActionEvent{Action: domain.ActionQuickReroute})
	bus.Publish(app.TopicSettingsChanged, app.SettingsEvent{})

	require.Eventually(t, func() bool { return rec.total() == 4 }, time.Second, 5*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"awaiting_direction->awaiting_configuration"}, rec.transitions)
	assert.Equal(t, []string{"login"}, rec.rejections)
	assert.Equal(t, []string{"Reroute"}, rec.actions)
	assert.Equal(t, 1, rec.settings)
}

func TestCollector_Disabled(t *testing.T) {
	bus := evbus.New(10)
	rec := &mockRecorder{}

	_, err := NewCollector(&config.Config{}, bus, rec)
	require.NoError(t, err)

	bus.Publish(app.TopicTrainAction, app.TrainActionEvent{Action: domain.ActionQuickReroute})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, rec.total())
}
