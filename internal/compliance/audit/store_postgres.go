package audit

import (
	"context"
	"database/sql"
	"fmt"

	"kycaml/internal/compliance/models"
	txcontext "kycaml/pkg/platform/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS compliance_audit_events (
    sequence   BIGSERIAL PRIMARY KEY,
    id         TEXT NOT NULL UNIQUE,
    action     TEXT NOT NULL,
    subject    TEXT NOT NULL,
    operator   TEXT NOT NULL,
    request_id TEXT NOT NULL,
    client_ip  TEXT NOT NULL,
    decision   TEXT NOT NULL,
    reason     TEXT NOT NULL,
    timestamp  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS compliance_audit_events_subject_idx ON compliance_audit_events (subject);
`

// PostgresStore appends audit events to a single insert-only table. Append
// joins a transaction carried in ctx.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the audit table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate audit schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event models.AuditEvent) error {
	query := `
		INSERT INTO compliance_audit_events (id, action, subject, operator, request_id, client_ip, decision, reason, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		event.ID,
		string(event.Action),
		event.Subject,
		event.Operator,
		event.RequestID,
		event.ClientIP,
		event.Decision,
		event.Reason,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	query := `
		SELECT id, action, subject, operator, request_id, client_ip, decision, reason, timestamp
		FROM compliance_audit_events
		ORDER BY sequence DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var (
			e      models.AuditEvent
			action string
		)
		if err := rows.Scan(&e.ID, &action, &e.Subject, &e.Operator, &e.RequestID, &e.ClientIP, &e.Decision, &e.Reason, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Action = models.AuditAction(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
