// Package tenant resolves an authenticated principal to the organization
// and role its requests act on. Resolution happens once per request and the
// results are threaded through explicitly; nothing here is cached across
// requests, since memberships and roles can change between calls.
package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store"
)

// Sentinel errors for tenant resolution
var (
	// ErrNoOrganization means the principal holds no memberships at all.
	// This is absence, not failure; callers translate it to Forbidden.
	ErrNoOrganization = errors.New("principal is not a member of any organization")

	// ErrNotAMember means the principal has no membership in the given
	// organization.
	ErrNotAMember = errors.New("principal is not a member of the organization")
)

// Directory resolves principals to organizations and roles.
type Directory struct {
	memberships   store.MembershipStore
	organizations store.OrganizationStore
}

// NewDirectory creates a tenant directory backed by the given stores.
func NewDirectory(memberships store.MembershipStore, organizations store.OrganizationStore) *Directory {
	return &Directory{
		memberships:   memberships,
		organizations: organizations,
	}
}

// ResolveOrganization returns the organization a principal's requests act
// on. For principals with multiple memberships the earliest membership by
// creation time wins, tie-broken by org ID; the rule is deterministic
// rather than whatever order the backing store happens to return.
// Returns ErrNoOrganization if the principal holds no memberships.
func (d *Directory) ResolveOrganization(ctx context.Context, principalID uuid.UUID) (*models.Organization, error) {
	memberships, err := d.memberships.ListByPrincipal(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	if len(memberships) == 0 {
		return nil, ErrNoOrganization
	}

	// ListByPrincipal orders by (created_at, org_id); the first entry is
	// the principal's primary organization.
	org, err := d.organizations.Get(ctx, memberships[0].OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

// ResolveRole returns the role a principal holds within an organization.
// Returns ErrNotAMember if no membership row exists for the pair.
func (d *Directory) ResolveRole(ctx context.Context, principalID, orgID uuid.UUID) (models.Role, error) {
	membership, err := d.memberships.Get(ctx, principalID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrMembershipNotFound) {
			return "", ErrNotAMember
		}
		return "", fmt.Errorf("failed to get membership: %w", err)
	}

	return membership.Role, nil
}
