package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store"
)

// MembershipStore implements store.MembershipStore using PostgreSQL.
type MembershipStore struct {
	pool *pgxpool.Pool
}

// NewMembershipStore creates a new PostgreSQL-backed membership store.
func NewMembershipStore(pool *pgxpool.Pool) *MembershipStore {
	return &MembershipStore{
		pool: pool,
	}
}

// Create creates a new membership in the database.
func (s *MembershipStore) Create(ctx context.Context, membership *models.Membership) error {
	query := `
		INSERT INTO memberships (
			org_id, principal_id, role, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := s.pool.Exec(ctx, query,
		membership.OrgID,
		membership.PrincipalID,
		string(membership.Role),
		membership.CreatedAt,
		membership.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrMembershipAlreadyExists
		}
		return fmt.Errorf("failed to create membership: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("org_id", membership.OrgID.String()).
		Str("principal_id", membership.PrincipalID.String()).
		Str("role", string(membership.Role)).
		Msg("Created membership")

	return nil
}

// Get retrieves the membership for a (principal, org) pair.
func (s *MembershipStore) Get(ctx context.Context, principalID, orgID uuid.UUID) (*models.Membership, error) {
	query := `
		SELECT org_id, principal_id, role, created_at, updated_at
		FROM memberships
		WHERE principal_id = $1 AND org_id = $2
	`

	var m models.Membership
	var role string
	err := s.pool.QueryRow(ctx, query, principalID, orgID).Scan(
		&m.OrgID,
		&m.PrincipalID,
		&role,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", mapPostgresError(err))
	}

	m.Role = models.Role(role)
	return &m, nil
}

// ListByPrincipal returns all memberships held by a principal, ordered by
// creation time with org ID as a tie-break. The ordering backs the
// deterministic tenant resolution rule.
func (s *MembershipStore) ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*models.Membership, error) {
	query := `
		SELECT org_id, principal_id, role, created_at, updated_at
		FROM memberships
		WHERE principal_id = $1
		ORDER BY created_at ASC, org_id ASC
	`

	return s.queryList(ctx, query, principalID)
}

// ListByOrganization returns all memberships within an organization.
func (s *MembershipStore) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error) {
	query := `
		SELECT org_id, principal_id, role, created_at, updated_at
		FROM memberships
		WHERE org_id = $1
		ORDER BY created_at ASC, principal_id ASC
	`

	return s.queryList(ctx, query, orgID)
}

func (s *MembershipStore) queryList(ctx context.Context, query string, arg any) ([]*models.Membership, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var memberships []*models.Membership
	for rows.Next() {
		var m models.Membership
		var role string
		err := rows.Scan(
			&m.OrgID,
			&m.PrincipalID,
			&role,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.Role = models.Role(role)
		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memberships: %w", mapPostgresError(err))
	}

	return memberships, nil
}
