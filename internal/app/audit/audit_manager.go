package audit

import (
	"context"
	"fmt"

	"github.com/railflow/railflow-portal/internal/domain"
)

type Manager struct {
	db ManagerDatabaseRepo
}

func NewManager(db ManagerDatabaseRepo) *Manager {
	return &Manager{db: db}
}

// GetAll returns the operator action log, newest entries first.
func (m *Manager) GetAll(ctx context.Context) ([]domain.AuditEntry, error) {
	entries, err := m.db.GetAllAuditEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}

	return entries, nil
}

// GetSession returns the action log of a single controller session, newest entries first.
func (m *Manager) GetSession(ctx context.Context, sessionId string) ([]domain.AuditEntry, error) {
	entries, err := m.db.GetSessionAuditEntries(ctx, sessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries of session %s: %w", sessionId, err)
	}

	return entries, nil
}
