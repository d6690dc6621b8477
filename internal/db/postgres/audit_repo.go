package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Chatty/internal/core/audit"
)

type postgresAuditRepo struct {
	db *sql.DB
}

// NewAuditRepository creates a Postgres-backed audit recorder
func NewAuditRepository(db *sql.DB) audit.Recorder {
	return &postgresAuditRepo{db: db}
}

// Record persists an audit entry
func (r *postgresAuditRepo) Record(ctx context.Context, entry audit.Entry) error {
	query := `
		INSERT INTO audit_log (id, actor_id, action, target_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.TargetID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

// List returns audit entries, newest first
func (r *postgresAuditRepo) List(ctx context.Context, limit, offset int) ([]audit.Entry, error) {
	query := `
		SELECT id, actor_id, action, target_id, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.TargetID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}
