package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a tenant in the system. Organizations are
// provisioned out of band; this service only ever reads them.
type Organization struct {
	OrgID     uuid.UUID // UUIDv7
	Name      string
	Slug      string // URL-safe identifier, unique
	CreatedAt time.Time
	UpdatedAt time.Time
}
