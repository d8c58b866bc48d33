package ui

import (
	"context"
	"net/http"

	"github.com/railflow/railflow-portal/internal/app/api/session"
	"github.com/railflow/railflow-portal/internal/app/gate"
	"github.com/railflow/railflow-portal/internal/domain"
)

type Session interface {
	GetData(ctx context.Context) session.Data
	SetData(ctx context.Context, val session.Data)
	Renew(ctx context.Context) error
	Reset(ctx context.Context) session.Data
	PushFlash(ctx context.Context, n domain.Notification)
	PopFlash(ctx context.Context) []domain.Notification

	CsrfReader(r *http.Request) string
	CsrfWriter(r *http.Request, token string)
	Info(next http.Handler) http.Handler
	LoadAndSave(next http.Handler) http.Handler
}

type LoginLimiter interface {
	HandlerWithErrorCallback(fn http.HandlerFunc) func(http.Handler) http.Handler
}

type GateService interface {
	Login(ctx context.Context, current domain.Session, controllerId, password string) (gate.Result, error)
	SelectDirection(ctx context.Context, current domain.Session, direction domain.Direction) (gate.Result, error)
	CompleteConfiguration(ctx context.Context, current domain.Session, cfg domain.TrainConfiguration) (
		gate.Result,
		error,
	)
	Back(ctx context.Context, current domain.Session) (gate.Result, error)
	SwitchDirection(ctx context.Context, current domain.Session) (gate.Result, error)
	ResetSetup(ctx context.Context, current domain.Session) (gate.Result, error)
	Logout(ctx context.Context, current domain.Session) gate.Result
}

type ControlService interface {
	GetDashboard(ctx context.Context) domain.Dashboard
	GetTrains(ctx context.Context) []domain.TrackedTrain
	GetTrain(ctx context.Context, id string) (domain.TrackedTrain, error)
	GetAnalytics(ctx context.Context) domain.Analytics
	GetSystemInfo(ctx context.Context) domain.SystemInfo
	ApplyControlAction(ctx context.Context, trainId string, action domain.TrainAction) (domain.Notification, error)
	ApplyQuickAction(ctx context.Context, trainId string, action domain.TrainAction) (domain.Notification, error)
	SaveSettings(ctx context.Context, settings domain.Settings) (domain.Settings, domain.Notification, error)
	ResetSettings(ctx context.Context) (domain.Settings, domain.Notification)
}
