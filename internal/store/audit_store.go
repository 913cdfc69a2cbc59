package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
)

// AuditStore defines the interface for the append-only audit log.
// Entries record writes against an organization's data; the log is
// observability-grade, so append failures must not fail the write they
// describe (callers log and continue).
type AuditStore interface {
	// Append adds an entry to the organization's audit log.
	Append(ctx context.Context, entry *models.AuditEntry) error

	// ListByOrganization returns up to limit entries for an organization,
	// newest first. A limit <= 0 applies the implementation default.
	ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int) ([]*models.AuditEntry, error)
}
