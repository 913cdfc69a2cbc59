package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store"
)

// GoalsStore implements store.GoalsStore using PostgreSQL.
// The goals blob lives in a JSONB column so unknown goal keys survive a
// round trip without schema changes.
type GoalsStore struct {
	pool *pgxpool.Pool
}

// NewGoalsStore creates a new PostgreSQL-backed goals store.
func NewGoalsStore(pool *pgxpool.Pool) *GoalsStore {
	return &GoalsStore{
		pool: pool,
	}
}

// Get returns the stored goal set for an organization, or an empty set if
// no record exists. Absence is a valid state, not an error.
func (s *GoalsStore) Get(ctx context.Context, orgID uuid.UUID) (models.GoalSet, error) {
	query := `
		SELECT goals
		FROM org_goals
		WHERE org_id = $1
	`

	var raw []byte
	err := s.pool.QueryRow(ctx, query, orgID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GoalSet{}, nil
		}
		return nil, fmt.Errorf("%w: failed to get goals: %v", store.ErrStorageFailure, mapPostgresError(err))
	}

	var goals models.GoalSet
	if err := json.Unmarshal(raw, &goals); err != nil {
		return nil, fmt.Errorf("%w: failed to decode goals blob: %v", store.ErrStorageFailure, err)
	}
	if goals == nil {
		goals = models.GoalSet{}
	}

	return goals, nil
}

// Upsert replaces the organization's goal set wholesale. The single-row
// ON CONFLICT upsert is atomic at the storage layer, so concurrent savers
// resolve to last-writer-wins without read-modify-write races.
func (s *GoalsStore) Upsert(ctx context.Context, orgID uuid.UUID, goals models.GoalSet) (*models.GoalsRecord, error) {
	raw, err := json.Marshal(goals.Clone())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode goals: %v", store.ErrStorageFailure, err)
	}

	query := `
		INSERT INTO org_goals (org_id, goals, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (org_id) DO UPDATE SET
			goals = EXCLUDED.goals,
			updated_at = EXCLUDED.updated_at
		RETURNING goals, updated_at
	`

	record := models.GoalsRecord{OrgID: orgID}
	var stored []byte
	err = s.pool.QueryRow(ctx, query, orgID, raw, time.Now()).Scan(&stored, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to upsert goals: %v", store.ErrStorageFailure, mapPostgresError(err))
	}

	if err := json.Unmarshal(stored, &record.Goals); err != nil {
		return nil, fmt.Errorf("%w: failed to decode stored goals: %v", store.ErrStorageFailure, err)
	}

	log.Debug().
		Str("org_id", orgID.String()).
		Int("keys", len(record.Goals)).
		Msg("Upserted goals record")

	return &record, nil
}
