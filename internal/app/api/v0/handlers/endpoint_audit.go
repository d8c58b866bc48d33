package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/api/v0/model"
	"github.com/railflow/railflow-portal/internal/domain"
)

type AuditService interface {
	// GetAll returns all audit entries ordered by timestamp. Newest first.
	GetAll(ctx context.Context) ([]domain.AuditEntry, error)
	// GetSession returns the audit entries of one session. Newest first.
	GetSession(ctx context.Context, sessionId string) ([]domain.AuditEntry, error)
}

type AuditEndpoint struct {
	authenticator Authenticator
	session       Session
	auditService  AuditService
}

func NewAuditEndpoint(
	authenticator Authenticator,
	session Session,
	auditService AuditService,
) AuditEndpoint {
	return AuditEndpoint{
		authenticator: authenticator,
		session:       session,
		auditService:  auditService,
	}
}

func (e AuditEndpoint) GetName() string {
	return "AuditEndpoint"
}

func (e AuditEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/audit")
	apiGroup.Use(e.authenticator.LoggedIn())

	apiGroup.HandleFunc("GET /entries", e.handleEntriesGet())
	apiGroup.HandleFunc("GET /session", e.handleSessionEntriesGet())
}

// handleEntriesGet returns a http handler function.
//
// @ID audit_handleEntriesGet
// @Tags Audit
// @Summary Get all available audit entries. Ordered by timestamp.
// @Produce json
// @Success 200 {object} []model.AuditEntry
// @Router /audit/entries [get]
func (e AuditEndpoint) handleEntriesGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := e.auditService.GetAll(r.Context())
		if err != nil {
			respond.JSON(w, http.StatusInternalServerError, model.Error{
				Code: http.StatusInternalServerError, Message: err.Error(),
			})
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAuditEntries(entries))
	}
}

// handleSessionEntriesGet returns a http handler function.
//
// @ID audit_handleSessionEntriesGet
// @Tags Audit
// @Summary Get the audit entries of the current session. Ordered by timestamp.
// @Produce json
// @Success 200 {object} []model.AuditEntry
// @Router /audit/session [get]
func (e AuditEndpoint) handleSessionEntriesGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionId := e.session.GetData(r.Context()).Id

		entries, err := e.auditService.GetSession(r.Context(), sessionId)
		if err != nil {
			respond.JSON(w, http.StatusInternalServerError, model.Error{
				Code: http.StatusInternalServerError, Message: err.Error(),
			})
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAuditEntries(entries))
	}
}
