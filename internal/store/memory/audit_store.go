package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
)

const defaultAuditListLimit = 100

// AuditStore implements store.AuditStore using in-memory storage.
// This implementation is for testing and development only - data is lost on restart.
type AuditStore struct {
	mu sync.RWMutex

	entries map[uuid.UUID][]*models.AuditEntry // org_id -> entries, append order
}

// NewAuditStore creates a new in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{
		entries: make(map[uuid.UUID][]*models.AuditEntry),
	}
}

// Append adds an entry to the organization's audit log.
func (s *AuditStore) Append(ctx context.Context, entry *models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *entry
	s.entries[entry.OrgID] = append(s.entries[entry.OrgID], &clone)

	return nil
}

// ListByOrganization returns up to limit entries for an organization, newest first.
func (s *AuditStore) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int) ([]*models.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultAuditListLimit
	}

	stored := s.entries[orgID]

	var result []*models.AuditEntry
	for i := len(stored) - 1; i >= 0 && len(result) < limit; i-- {
		clone := *stored[i]
		result = append(result, &clone)
	}

	return result, nil
}
