package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
)

// Sentinel errors for membership store operations
var (
	ErrMembershipNotFound      = errors.New("membership not found")
	ErrMembershipAlreadyExists = errors.New("membership already exists")
)

// MembershipStore defines the interface for membership storage operations.
type MembershipStore interface {
	// Create creates a new membership.
	// Returns ErrMembershipAlreadyExists if the (org, principal) pair
	// already has a membership.
	Create(ctx context.Context, membership *models.Membership) error

	// Get retrieves the membership for a (principal, org) pair.
	// Returns ErrMembershipNotFound if no membership row exists.
	Get(ctx context.Context, principalID, orgID uuid.UUID) (*models.Membership, error)

	// ListByPrincipal returns all memberships held by a principal, ordered
	// by creation time ascending with org ID as a tie-break. Tenant
	// resolution depends on this ordering being stable.
	ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*models.Membership, error)

	// ListByOrganization returns all memberships within an organization,
	// ordered by creation time ascending.
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error)
}
