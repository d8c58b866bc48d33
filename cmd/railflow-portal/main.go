package main

import (
	"context"
	"log/slog"
	"syscall"

	"github.com/go-playground/validator/v10"
	evbus "github.com/vardius/message-bus"

	"github.com/railflow/railflow-portal/internal"
	"github.com/railflow/railflow-portal/internal/adapters"
	"github.com/railflow/railflow-portal/internal/app/api/core"
	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/ratelimit"
	"github.com/railflow/railflow-portal/internal/app/api/session"
	"github.com/railflow/railflow-portal/internal/app/api/ui"
	handlersV0 "github.com/railflow/railflow-portal/internal/app/api/v0/handlers"
	"github.com/railflow/railflow-portal/internal/app/audit"
	"github.com/railflow/railflow-portal/internal/app/controlroom"
	"github.com/railflow/railflow-portal/internal/app/gate"
	"github.com/railflow/railflow-portal/internal/app/telemetry"
	"github.com/railflow/railflow-portal/internal/config"
)

func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)
	internal.SetupLogging(cfg.Advanced.LogLevel, cfg.Advanced.LogPretty, cfg.Advanced.LogJson)

	slog.Info("Starting RailFlow control portal", "version", internal.Version)

	rawDb, err := adapters.NewDatabase(cfg.Database)
	internal.AssertNoError(err)
	sqlDb, err := rawDb.DB()
	internal.AssertNoError(err)
	defer internal.LogClose(sqlDb)

	database, err := adapters.NewSqlRepository(rawDb)
	internal.AssertNoError(err)

	eventBus := evbus.New(cfg.Core.EventQueueSize)

	gateManager := gate.NewManager(cfg, eventBus)
	controlManager := controlroom.NewManager(eventBus)
	auditManager := audit.NewManager(database)

	_, err = audit.NewAuditRecorder(cfg, eventBus, database)
	internal.AssertNoError(err)

	if cfg.Metrics.Enabled {
		metricsServer := adapters.NewMetricsServer(cfg)
		_, err = telemetry.NewCollector(cfg, eventBus, metricsServer)
		internal.AssertNoError(err)

		go metricsServer.Run(ctx)
	}

	validatorManager := validator.New()
	sessionWrapper := session.NewWrapper(cfg)
	authenticator := handlersV0.NewAuthenticationHandler(sessionWrapper)
	loginLimiter := ratelimit.New(cfg.Web.LoginRateLimit, cfg.Web.LoginRateBurst,
		ratelimit.WithTrustedProxies(cfg.Web.TrustedProxies...))

	apiV0 := handlersV0.NewRestApi(
		sessionWrapper,
		handlersV0.NewAuthenticationEndpoint(authenticator, sessionWrapper, gateManager, loginLimiter),
		handlersV0.NewSetupEndpoint(authenticator, sessionWrapper, gateManager, validatorManager),
		handlersV0.NewControlEndpoint(authenticator, controlManager, validatorManager),
		handlersV0.NewSettingsEndpoint(authenticator, sessionWrapper, controlManager),
		handlersV0.NewAuditEndpoint(authenticator, sessionWrapper, auditManager),
	)

	frontend, err := ui.NewFrontend(cfg, sessionWrapper, gateManager, controlManager, loginLimiter)
	internal.AssertNoError(err)

	webSrv, err := core.NewServer(cfg, frontend.Setup, apiV0)
	internal.AssertNoError(err)

	go webSrv.Run(ctx, cfg.Web.ListeningAddress)

	// wait until context gets cancelled
	<-ctx.Done()

	slog.Info("Stopped RailFlow control portal")
}
