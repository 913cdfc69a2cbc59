package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store"
)

// PrincipalStore implements store.PrincipalStore using in-memory storage.
// This implementation is for testing and development only - data is lost on restart.
type PrincipalStore struct {
	mu sync.RWMutex

	principals map[uuid.UUID]*models.Principal // principal_id -> Principal
	byEmail    map[string]uuid.UUID
}

// NewPrincipalStore creates a new in-memory principal store.
func NewPrincipalStore() *PrincipalStore {
	return &PrincipalStore{
		principals: make(map[uuid.UUID]*models.Principal),
		byEmail:    make(map[string]uuid.UUID),
	}
}

// Create creates a new principal record in memory.
func (s *PrincipalStore) Create(ctx context.Context, principal *models.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.principals[principal.PrincipalID]; exists {
		return store.ErrPrincipalAlreadyExists
	}
	if _, exists := s.byEmail[principal.Email]; exists {
		return store.ErrPrincipalAlreadyExists
	}

	clone := *principal
	s.principals[principal.PrincipalID] = &clone
	s.byEmail[principal.Email] = principal.PrincipalID

	return nil
}

// Get retrieves a principal by ID.
func (s *PrincipalStore) Get(ctx context.Context, principalID uuid.UUID) (*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.principals[principalID]
	if !exists {
		return nil, store.ErrPrincipalNotFound
	}

	clone := *p
	return &clone, nil
}

// GetByEmail retrieves a principal by email.
func (s *PrincipalStore) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, store.ErrPrincipalNotFound
	}

	clone := *s.principals[id]
	return &clone, nil
}
