package audit

import (
	"context"

	"github.com/railflow/railflow-portal/internal/domain"
)

type DatabaseRepo interface {
	// SaveAuditEntry stores a new audit entry.
	SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error
}

type ManagerDatabaseRepo interface {
	// GetAllAuditEntries retrieves all audit entries from the database.
	// The entries are ordered by timestamp, with the newest entries first.
	GetAllAuditEntries(ctx context.Context) ([]domain.AuditEntry, error)
	// GetSessionAuditEntries retrieves the audit entries of one session, newest first.
	GetSessionAuditEntries(ctx context.Context, sessionId string) ([]domain.AuditEntry, error)
}

type EventBus interface {
	// Subscribe subscribes to the topic, the handler is called asynchronously for every published message.
	Subscribe(topic string, fn interface{}) error
}
