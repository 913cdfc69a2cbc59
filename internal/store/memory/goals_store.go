package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
)

// GoalsStore implements store.GoalsStore using in-memory storage.
// This implementation is for testing and development only - data is lost on restart.
type GoalsStore struct {
	mu sync.Mutex

	records map[uuid.UUID]*models.GoalsRecord // org_id -> GoalsRecord
}

// NewGoalsStore creates a new in-memory goals store.
func NewGoalsStore() *GoalsStore {
	return &GoalsStore{
		records: make(map[uuid.UUID]*models.GoalsRecord),
	}
}

// Get returns the stored goal set for an organization, or an empty set if
// no record exists.
func (s *GoalsStore) Get(ctx context.Context, orgID uuid.UUID) (models.GoalSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[orgID]
	if !exists {
		return models.GoalSet{}, nil
	}

	return record.Goals.Clone(), nil
}

// Upsert replaces the organization's goal set wholesale under the store
// lock, mirroring the atomic single-row upsert of the PostgreSQL backend.
func (s *GoalsStore) Upsert(ctx context.Context, orgID uuid.UUID, goals models.GoalSet) (*models.GoalsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &models.GoalsRecord{
		OrgID:     orgID,
		Goals:     goals.Clone(),
		UpdatedAt: time.Now(),
	}
	s.records[orgID] = record

	// Clone so callers can't mutate the stored record
	clone := models.GoalsRecord{
		OrgID:     record.OrgID,
		Goals:     record.Goals.Clone(),
		UpdatedAt: record.UpdatedAt,
	}
	return &clone, nil
}
