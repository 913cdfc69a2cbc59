package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/stafflens/goalboard/internal/models"
)

// defaultAuditListLimit caps audit listings when the caller doesn't supply one.
const defaultAuditListLimit = 100

// AuditStore implements store.AuditStore using PostgreSQL.
type AuditStore struct {
	pool *pgxpool.Pool
}

// NewAuditStore creates a new PostgreSQL-backed audit store.
func NewAuditStore(pool *pgxpool.Pool) *AuditStore {
	return &AuditStore{
		pool: pool,
	}
}

// Append adds an entry to the organization's audit log.
func (s *AuditStore) Append(ctx context.Context, entry *models.AuditEntry) error {
	detail, err := json.Marshal(entry.Detail)
	if err != nil {
		return fmt.Errorf("failed to encode audit detail: %w", err)
	}

	query := `
		INSERT INTO audit_log (
			entry_id, org_id, principal_id, action, detail, client_ip, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6::inet, $7
		)
	`

	// Convert empty IP address to nil for proper INET handling
	var clientIP any
	if entry.ClientIP != "" {
		clientIP = entry.ClientIP
	}

	_, err = s.pool.Exec(ctx, query,
		entry.EntryID,
		entry.OrgID,
		entry.PrincipalID,
		entry.Action,
		detail,
		clientIP,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("org_id", entry.OrgID.String()).
		Str("action", entry.Action).
		Msg("Appended audit entry")

	return nil
}

// ListByOrganization returns up to limit entries for an organization, newest first.
func (s *AuditStore) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditListLimit
	}

	query := `
		SELECT entry_id, org_id, principal_id, action, detail, host(client_ip), created_at
		FROM audit_log
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		var detail []byte
		var clientIP *string
		err := rows.Scan(
			&entry.EntryID,
			&entry.OrgID,
			&entry.PrincipalID,
			&entry.Action,
			&detail,
			&clientIP,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if err := json.Unmarshal(detail, &entry.Detail); err != nil {
			return nil, fmt.Errorf("failed to decode audit detail: %w", err)
		}
		if clientIP != nil {
			entry.ClientIP = *clientIP
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", mapPostgresError(err))
	}

	return entries, nil
}
