package telemetry

import (
	"fmt"

	"github.com/railflow/railflow-portal/internal/app"
	"github.com/railflow/railflow-portal/internal/config"
)

type EventBus interface {
	// Subscribe subscribes to the topic, the handler is called asynchronously for every published message.
	Subscribe(topic string, fn interface{}) error
}

type MetricsRecorder interface {
	RecordTransition(transition string)
	RecordRejection(operation string)
	RecordTrainAction(action string)
	RecordSettingsChange()
}

// Collector turns bus events into metric updates.
type Collector struct {
	cfg *config.Config
	bus EventBus
	ms  MetricsRecorder
}

func NewCollector(cfg *config.Config, bus EventBus, ms MetricsRecorder) (*Collector, error) {
	c := &Collector{
		cfg: cfg,
		bus: bus,
		ms:  ms,
	}

	if err := c.connectToMessageBus(); err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return c, nil
}

func (c *Collector) connectToMessageBus() error {
	if !c.cfg.Metrics.Enabled {
		return nil // noting to do
	}

	for _, topic := range app.GateTopics {
		if err := c.bus.Subscribe(topic, c.handleGateEvent); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}
	if err := c.bus.Subscribe(app.TopicTrainAction, c.handleTrainActionEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicTrainAction, err)
	}
	if err := c.bus.Subscribe(app.TopicSettingsChanged, c.handleSettingsEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicSettingsChanged, err)
	}

	return nil
}

func (c *Collector) handleGateEvent(ev app.GateEvent) {
	if ev.Error != "" {
		c.ms.RecordRejection(ev.Operation)
		return
	}
	c.ms.RecordTransition(fmt.Sprintf("%s->%s", ev.From, ev.To))
}

func (c *Collector) handleTrainActionEvent(ev app.TrainActionEvent) {
	c.ms.RecordTrainAction(string(ev.Action))
}

func (c *Collector) handleSettingsEvent(_ app.SettingsEvent) {
	c.ms.RecordSettingsChange()
}
