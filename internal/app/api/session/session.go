// Package session keeps the gate state, settings and flash messages of a controller in a server side session.
// The web frontend and the JSON API share the same session cookie.
package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/railflow/railflow-portal/internal/app"
	"github.com/railflow/railflow-portal/internal/config"
	"github.com/railflow/railflow-portal/internal/domain"
)

func init() {
	gob.Register(Data{})
}

// Data is everything the portal remembers about a controller. It is lost when the session expires.
type Data struct {
	Id string

	Gate     domain.Session
	Settings domain.Settings

	// Flash holds notifications that have not been shown yet.
	Flash []domain.Notification

	CsrfToken string
}

const sessionDataKey = "railflow_session"

// Wrapper adds typed access to the scs session manager.
type Wrapper struct {
	*scs.SessionManager
}

func NewWrapper(cfg *config.Config) *Wrapper {
	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Web.SessionLifetime
	if sessionManager.Lifetime <= 0 {
		sessionManager.Lifetime = 12 * time.Hour
	}
	sessionManager.Cookie.Name = cfg.Web.SessionIdentifier
	sessionManager.Cookie.Secure = cfg.Web.SecureCookies()
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Path = "/"
	sessionManager.Cookie.Persist = false

	return &Wrapper{sessionManager}
}

// GetData returns the session data. A new session is initialized with a fresh id and default settings.
func (s *Wrapper) GetData(ctx context.Context) Data {
	data, ok := s.SessionManager.Get(ctx, sessionDataKey).(Data)
	if !ok {
		data = newData()
		s.SessionManager.Put(ctx, sessionDataKey, data)
	}
	return data
}

func (s *Wrapper) SetData(ctx context.Context, data Data) {
	s.SessionManager.Put(ctx, sessionDataKey, data)
}

// Renew issues a new session token while keeping the data, called whenever the privilege level changes.
func (s *Wrapper) Renew(ctx context.Context) error {
	return s.SessionManager.RenewToken(ctx)
}

// Reset destroys the session and starts a new, empty one within the same request.
func (s *Wrapper) Reset(ctx context.Context) Data {
	_ = s.SessionManager.Destroy(ctx)

	data := newData()
	s.SessionManager.Put(ctx, sessionDataKey, data)
	return data
}

// PushFlash queues a notification for the next rendered page. Empty notifications are ignored.
func (s *Wrapper) PushFlash(ctx context.Context, n domain.Notification) {
	if n.Message == "" {
		return
	}

	data := s.GetData(ctx)
	data.Flash = append(data.Flash, n)
	s.SetData(ctx, data)
}

// PopFlash returns and removes all queued notifications.
func (s *Wrapper) PopFlash(ctx context.Context) []domain.Notification {
	data := s.GetData(ctx)
	if len(data.Flash) == 0 {
		return nil
	}

	flash := data.Flash
	data.Flash = nil
	s.SetData(ctx, data)
	return flash
}

// CsrfReader returns the stored CSRF token, for use with the csrf middleware.
func (s *Wrapper) CsrfReader(r *http.Request) string {
	return s.GetData(r.Context()).CsrfToken
}

// CsrfWriter stores the CSRF token, for use with the csrf middleware.
func (s *Wrapper) CsrfWriter(r *http.Request, token string) {
	data := s.GetData(r.Context())
	data.CsrfToken = token
	s.SetData(r.Context(), data)
}

// Info is a middleware that makes the session id and controller id available via app.GetSessionInfo.
// It must be used after LoadAndSave.
func (s *Wrapper) Info(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(s.WithInfo(r.Context())))
	})
}

// WithInfo returns a context carrying the current session info.
func (s *Wrapper) WithInfo(ctx context.Context) context.Context {
	data := s.GetData(ctx)
	return app.WithSessionInfo(ctx, app.SessionInfo{
		SessionId:    data.Id,
		ControllerId: data.Gate.ControllerId,
	})
}

func newData() Data {
	return Data{
		Id:       uuid.NewString(),
		Settings: domain.DefaultSettings(),
	}
}
