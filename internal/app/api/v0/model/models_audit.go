package model

import (
	"time"

	"github.com/railflow/railflow-portal/internal/domain"
)

type AuditEntry struct {
	Id           uint64    `json:"Id"`
	Timestamp    time.Time `json:"Timestamp"`
	Severity     string    `json:"Severity"`
	Origin       string    `json:"Origin"`
	ControllerId string    `json:"ControllerId"`
	Message      string    `json:"Message"`
}

// NewAuditEntry creates a REST API AuditEntry from a domain AuditEntry.
func NewAuditEntry(src domain.AuditEntry) AuditEntry {
	return AuditEntry{
		Id:           src.UniqueId,
		Timestamp:    src.CreatedAt,
		Severity:     string(src.Severity),
		Origin:       src.Origin,
		ControllerId: src.ControllerId,
		Message:      src.Message,
	}
}

// NewAuditEntries creates a slice of REST API AuditEntry from a slice of domain AuditEntry.
func NewAuditEntries(src []domain.AuditEntry) []AuditEntry {
	results := make([]AuditEntry, len(src))
	for i := range src {
		results[i] = NewAuditEntry(src[i])
	}

	return results
}
