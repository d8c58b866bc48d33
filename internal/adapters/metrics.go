package adapters

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/railflow/railflow-portal/internal"
	"github.com/railflow/railflow-portal/internal/config"
)

type MetricsServer struct {
	*http.Server

	info            *prometheus.GaugeVec
	uptimeSeconds   prometheus.GaugeFunc
	auditEnabled    prometheus.Gauge
	gateTransitions *prometheus.CounterVec
	gateRejections  *prometheus.CounterVec
	trainActions    *prometheus.CounterVec
	settingsChanges prometheus.Counter
}

// NewMetricsServer returns a new prometheus server
func NewMetricsServer(cfg *config.Config) *MetricsServer {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	m := &MetricsServer{
		Server: &http.Server{
			Addr:              cfg.Metrics.ListeningAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},

		info: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "railflow_build_info",
				Help: "Portal build info.",
			}, []string{"version"},
		),
		uptimeSeconds: promauto.With(reg).NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "railflow_uptime_seconds",
				Help: "Seconds since the portal was started.",
			}, func() float64 { return internal.Uptime().Seconds() },
		),
		auditEnabled: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "railflow_audit_enabled",
				Help: "Whether gate transitions and train actions are written to the audit trail.",
			},
		),
		gateTransitions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "railflow_gate_transitions_total",
				Help: "Accepted session gate transitions.",
			}, []string{"transition"},
		),
		gateRejections: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "railflow_gate_rejections_total",
				Help: "Rejected session gate operations.",
			}, []string{"operation"},
		),
		trainActions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "railflow_train_actions_total",
				Help: "Operator actions applied to trains.",
			}, []string{"action"},
		),
		settingsChanges: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "railflow_settings_changes_total",
				Help: "Saved or reset control room settings.",
			},
		),
	}
	m.info.WithLabelValues(internal.Version).Set(1)
	m.auditEnabled.Set(internal.BoolToFloat64(cfg.Core.CollectAuditData))

	return m
}

// Run starts the metrics server
func (m *MetricsServer) Run(ctx context.Context) {
	// Run the metrics server in a goroutine
	go func() {
		if err := m.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()

	slog.Info("started metrics service", "address", m.Addr)

	// Wait for the context to be done
	<-ctx.Done()

	// Create a context with timeout for the shutdown process
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt to gracefully shutdown the metrics server
	if err := m.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics service shutdown failed", "address", m.Addr, "error", err)
	} else {
		slog.Info("metrics service shutdown gracefully", "address", m.Addr)
	}
}

// RecordTransition counts an accepted gate transition, e.g. "awaiting_direction->awaiting_configuration".
func (m *MetricsServer) RecordTransition(transition string) {
	m.gateTransitions.WithLabelValues(transition).Inc()
}

func (m *MetricsServer) RecordRejection(operation string) {
	m.gateRejections.WithLabelValues(operation).Inc()
}

func (m *MetricsServer) RecordTrainAction(action string) {
	m.trainActions.WithLabelValues(action).Inc()
}

func (m *MetricsServer) RecordSettingsChange() {
	m.settingsChanges.Inc()
}
