package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
)

// Sentinel errors for principal store operations
var (
	ErrPrincipalNotFound      = errors.New("principal not found")
	ErrPrincipalAlreadyExists = errors.New("principal already exists")
)

// PrincipalStore defines the interface for principal directory records.
// Authentication lives in the external identity layer; this store only
// holds display data for membership listings.
type PrincipalStore interface {
	// Create creates a new principal record.
	// Returns ErrPrincipalAlreadyExists if the ID is already taken.
	Create(ctx context.Context, principal *models.Principal) error

	// Get retrieves a principal by ID.
	// Returns ErrPrincipalNotFound if no record exists.
	Get(ctx context.Context, principalID uuid.UUID) (*models.Principal, error)

	// GetByEmail retrieves a principal by email. Emails are unique.
	// Returns ErrPrincipalNotFound if no record exists.
	GetByEmail(ctx context.Context, email string) (*models.Principal, error)
}
