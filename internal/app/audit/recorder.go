package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/railflow/railflow-portal/internal/app"
	"github.com/railflow/railflow-portal/internal/config"
	"github.com/railflow/railflow-portal/internal/domain"
)

// Recorder writes an audit entry for every gate, train and settings event published on the bus.
type Recorder struct {
	cfg *config.Config
	bus EventBus

	db DatabaseRepo
}

func NewAuditRecorder(cfg *config.Config, bus EventBus, db DatabaseRepo) (*Recorder, error) {
	r := &Recorder{
		cfg: cfg,
		bus: bus,

		db: db,
	}

	err := r.connectToMessageBus()
	if err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return r, nil
}

func (r *Recorder) connectToMessageBus() error {
	if !r.cfg.Core.CollectAuditData {
		return nil // noting to do
	}

	for _, topic := range app.GateTopics {
		if err := r.bus.Subscribe(topic, r.handleGateEvent); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}
	if err := r.bus.Subscribe(app.TopicTrainAction, r.handleTrainActionEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicTrainAction, err)
	}
	if err := r.bus.Subscribe(app.TopicSettingsChanged, r.handleSettingsEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicSettingsChanged, err)
	}

	return nil
}

func (r *Recorder) handleGateEvent(ev app.GateEvent) {
	entry := &domain.AuditEntry{
		Severity:     domain.AuditSeverityLevelLow,
		Origin:       "gate:" + ev.Operation,
		SessionId:    ev.SessionId,
		ControllerId: ev.ControllerId,
		Message:      fmt.Sprintf("%s: %s -> %s", ev.Operation, ev.From, ev.To),
	}
	if ev.Error != "" {
		entry.Severity = domain.AuditSeverityLevelMedium
		entry.Message = fmt.Sprintf("%s rejected in state %s: %s", ev.Operation, ev.From, ev.Error)
	}

	r.save(entry)
}

func (r *Recorder) handleTrainActionEvent(ev app.TrainActionEvent) {
	severity := domain.AuditSeverityLevelLow
	if ev.Action.IsEmergency() {
		severity = domain.AuditSeverityLevelHigh
	}

	r.save(&domain.AuditEntry{
		Severity:     severity,
		Origin:       "train:action",
		SessionId:    ev.SessionId,
		ControllerId: ev.ControllerId,
		Message:      fmt.Sprintf("%s applied to %s (%s)", ev.Action, ev.TrainName, ev.TrainId),
	})
}

func (r *Recorder) handleSettingsEvent(ev app.SettingsEvent) {
	msg := fmt.Sprintf("settings saved: refresh %ds, alert threshold %dm, max delay %dm, mode %s",
		ev.Settings.RefreshInterval, ev.Settings.AlertThreshold, ev.Settings.MaxDelayAlert, ev.Settings.PriorityMode)
	if ev.Reset {
		msg = "settings reset to defaults"
	}

	r.save(&domain.AuditEntry{
		Severity:     domain.AuditSeverityLevelMedium,
		Origin:       "settings",
		SessionId:    ev.SessionId,
		ControllerId: ev.ControllerId,
		Message:      msg,
	})
}

func (r *Recorder) save(entry *domain.AuditEntry) {
	entry.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.db.SaveAuditEntry(ctx, entry); err != nil {
		slog.Error("failed to create audit entry", "origin", entry.Origin, "error", err)
	}
}
