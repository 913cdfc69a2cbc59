package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by this service.
const (
	AuditActionGoalsSaved = "goals.saved"
)

// AuditEntry records a write performed against an organization's data.
// Entries are append-only and scoped to a single organization.
type AuditEntry struct {
	EntryID     uuid.UUID // UUIDv7
	OrgID       uuid.UUID
	PrincipalID uuid.UUID // actor
	Action      string
	Detail      map[string]any // action-specific payload (e.g. the saved goal set)
	ClientIP    string
	CreatedAt   time.Time
}
