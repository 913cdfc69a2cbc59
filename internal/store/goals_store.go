package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stafflens/goalboard/internal/models"
)

// ErrStorageFailure wraps backend I/O failures so callers can distinguish
// them from domain outcomes. Absence of a goals record is never an error.
var ErrStorageFailure = errors.New("storage failure")

// GoalsStore defines the interface for the per-organization goals record.
//
// Semantics callers rely on:
//   - Get returns an empty set when no record exists. New tenants have no
//     goals yet and that is a valid, common state.
//   - Upsert is a full replace keyed by org ID, not a field-level merge:
//     keys omitted from the submitted set are dropped from the stored
//     record. Implementations must use the backend's native atomic upsert
//     rather than read-modify-write so concurrent savers cannot interleave.
type GoalsStore interface {
	// Get returns the stored goal set for an organization, or an empty set
	// if no record exists.
	Get(ctx context.Context, orgID uuid.UUID) (models.GoalSet, error)

	// Upsert replaces the organization's goal set wholesale, creating the
	// record if it doesn't exist, and returns the stored record with its
	// new timestamp.
	Upsert(ctx context.Context, orgID uuid.UUID, goals models.GoalSet) (*models.GoalsRecord, error)
}
