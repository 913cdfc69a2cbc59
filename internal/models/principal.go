package models

import (
	"time"

	"github.com/google/uuid"
)

// Principal represents an identity in the system. Authentication (session
// issuance, OAuth) is handled by an external identity layer; this service
// stores only the directory record needed to render org membership listings.
type Principal struct {
	PrincipalID uuid.UUID // UUIDv7
	Name        string    // Display name (e.g., "Jane Doe")
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
