package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store"
)

type membershipKey struct {
	orgID       uuid.UUID
	principalID uuid.UUID
}

// MembershipStore implements store.MembershipStore using in-memory storage.
// This implementation is for testing and development only - data is lost on restart.
type MembershipStore struct {
	mu sync.RWMutex

	memberships map[membershipKey]*models.Membership
}

// NewMembershipStore creates a new in-memory membership store.
func NewMembershipStore() *MembershipStore {
	return &MembershipStore{
		memberships: make(map[membershipKey]*models.Membership),
	}
}

// Create creates a new membership in memory.
func (s *MembershipStore) Create(ctx context.Context, membership *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := membershipKey{orgID: membership.OrgID, principalID: membership.PrincipalID}
	if _, exists := s.memberships[key]; exists {
		return store.ErrMembershipAlreadyExists
	}

	// Clone to avoid external modifications
	clone := *membership
	s.memberships[key] = &clone

	return nil
}

// Get retrieves the membership for a (principal, org) pair.
func (s *MembershipStore) Get(ctx context.Context, principalID, orgID uuid.UUID) (*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.memberships[membershipKey{orgID: orgID, principalID: principalID}]
	if !exists {
		return nil, store.ErrMembershipNotFound
	}

	clone := *m
	return &clone, nil
}

// ListByPrincipal returns all memberships held by a principal, ordered by
// creation time with org ID as a tie-break, matching the PostgreSQL backend
// so tenant resolution behaves identically in tests.
func (s *MembershipStore) ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Membership
	for _, m := range s.memberships {
		if m.PrincipalID == principalID {
			clone := *m
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].OrgID.String() < result[j].OrgID.String()
	})

	return result, nil
}

// ListByOrganization returns all memberships within an organization.
func (s *MembershipStore) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Membership
	for _, m := range s.memberships {
		if m.OrgID == orgID {
			clone := *m
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].PrincipalID.String() < result[j].PrincipalID.String()
	})

	return result, nil
}
