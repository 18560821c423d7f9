package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"kycaml/internal/compliance/models"
	txcontext "kycaml/pkg/platform/tx"
)

const schema = `
CREATE TABLE IF NOT EXISTS compliance_assessments (
    sequence       BIGSERIAL PRIMARY KEY,
    id             TEXT NOT NULL UNIQUE,
    transaction_id TEXT NOT NULL,
    customer_id    TEXT NOT NULL,
    risk_level     TEXT NOT NULL,
    risk_score     INTEGER NOT NULL CHECK (risk_score BETWEEN 0 AND 100),
    factors        JSONB NOT NULL,
    flags          JSONB NOT NULL,
    flag_types     TEXT[] NOT NULL,
    recommendation TEXT NOT NULL,
    policy_rule    TEXT NOT NULL,
    degraded       BOOLEAN NOT NULL,
    input_digest   TEXT NOT NULL,
    assessed_at    TIMESTAMPTZ NOT NULL,
    assessed_by    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS compliance_assessments_assessed_at_idx ON compliance_assessments (assessed_at);

CREATE TABLE IF NOT EXISTS compliance_transactions (
    sequence    BIGSERIAL PRIMARY KEY,
    id          TEXT NOT NULL,
    customer_id TEXT NOT NULL,
    amount      NUMERIC NOT NULL,
    currency    TEXT NOT NULL,
    sender      JSONB NOT NULL,
    receiver    JSONB NOT NULL,
    description TEXT NOT NULL,
    occurred_at TIMESTAMPTZ NOT NULL,
    type        TEXT NOT NULL
);
`

const assessmentColumns = `sequence, id, transaction_id, customer_id, risk_level, risk_score, factors, flags,
    recommendation, policy_rule, degraded, input_digest, assessed_at, assessed_by`

// PostgresStore persists assessments and transactions in PostgreSQL.
// Rows are only ever inserted; sequence order is the BIGSERIAL order.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed assessment store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the store tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate compliance schema: %w", err)
	}
	return nil
}

// RunInTx runs fn in one database transaction. Stores sharing the same
// *sql.DB join it through ctx.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return txcontext.Run(ctx, s.db, fn)
}

func (s *PostgresStore) RecordAssessment(ctx context.Context, a models.RiskAssessment) (models.RiskAssessment, error) {
	if a.ID == "" {
		return models.RiskAssessment{}, fmt.Errorf("assessment id is required")
	}
	factors, err := json.Marshal(nonNil(a.Factors))
	if err != nil {
		return models.RiskAssessment{}, fmt.Errorf("marshal factors: %w", err)
	}
	flags, err := json.Marshal(nonNil(a.Flags))
	if err != nil {
		return models.RiskAssessment{}, fmt.Errorf("marshal flags: %w", err)
	}
	flagTypes := make([]string, 0, len(a.Flags))
	for _, f := range a.Flags {
		flagTypes = append(flagTypes, f.Type)
	}

	query := `
		INSERT INTO compliance_assessments (id, transaction_id, customer_id, risk_level, risk_score,
			factors, flags, flag_types, recommendation, policy_rule, degraded, input_digest, assessed_at, assessed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING sequence
	`
	err = txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx, query,
		a.ID, a.TransactionID, a.CustomerID, string(a.RiskLevel), a.RiskScore,
		factors, flags, pq.Array(flagTypes), string(a.Recommendation), a.PolicyRule,
		a.Degraded, a.InputDigest, a.AssessedAt, a.AssessedBy,
	).Scan(&a.Sequence)
	if err != nil {
		return models.RiskAssessment{}, fmt.Errorf("record assessment: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) RecordTransaction(ctx context.Context, tx models.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	sender, err := json.Marshal(tx.Sender)
	if err != nil {
		return fmt.Errorf("marshal sender: %w", err)
	}
	receiver, err := json.Marshal(tx.Receiver)
	if err != nil {
		return fmt.Errorf("marshal receiver: %w", err)
	}
	query := `
		INSERT INTO compliance_transactions (id, customer_id, amount, currency, sender, receiver, description, occurred_at, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		tx.ID, tx.CustomerID, tx.Amount.String(), tx.Currency, sender, receiver,
		tx.Description, tx.Timestamp, string(tx.Type),
	)
	if err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, from, to time.Time) ([]models.RiskAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM compliance_assessments
		WHERE assessed_at >= $1 AND assessed_at <= $2 ORDER BY sequence`
	return s.queryAssessments(ctx, query, from, to)
}

func (s *PostgresStore) AllAssessments(ctx context.Context) ([]models.RiskAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM compliance_assessments ORDER BY sequence`
	return s.queryAssessments(ctx, query)
}

// AssessmentsWithFlag returns assessments carrying a flag of the given type.
func (s *PostgresStore) AssessmentsWithFlag(ctx context.Context, flagType string) ([]models.RiskAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM compliance_assessments
		WHERE $1 = ANY(flag_types) ORDER BY sequence`
	return s.queryAssessments(ctx, query, flagType)
}

func (s *PostgresStore) queryAssessments(ctx context.Context, query string, args ...any) ([]models.RiskAssessment, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []models.RiskAssessment
	for rows.Next() {
		var (
			a                      models.RiskAssessment
			level, recommendation  string
			factorsJSON, flagsJSON []byte
		)
		if err := rows.Scan(&a.Sequence, &a.ID, &a.TransactionID, &a.CustomerID, &level, &a.RiskScore,
			&factorsJSON, &flagsJSON, &recommendation, &a.PolicyRule, &a.Degraded, &a.InputDigest,
			&a.AssessedAt, &a.AssessedBy); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal(factorsJSON, &a.Factors); err != nil {
			return nil, fmt.Errorf("unmarshal factors for assessment %s: %w", a.ID, err)
		}
		if err := json.Unmarshal(flagsJSON, &a.Flags); err != nil {
			return nil, fmt.Errorf("unmarshal flags for assessment %s: %w", a.ID, err)
		}
		a.RiskLevel = models.RiskLevel(level)
		a.Recommendation = models.Recommendation(recommendation)
		a.AssessedAt = a.AssessedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, customer_id, amount, currency, sender, receiver, description, occurred_at, type
		FROM compliance_transactions ORDER BY sequence
	`
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var (
			tx               models.Transaction
			amount           decimal.Decimal
			sender, receiver []byte
			txType           string
		)
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &amount, &tx.Currency, &sender, &receiver,
			&tx.Description, &tx.Timestamp, &txType); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if err := json.Unmarshal(sender, &tx.Sender); err != nil {
			return nil, fmt.Errorf("unmarshal sender for transaction %s: %w", tx.ID, err)
		}
		if err := json.Unmarshal(receiver, &tx.Receiver); err != nil {
			return nil, fmt.Errorf("unmarshal receiver for transaction %s: %w", tx.ID, err)
		}
		tx.Amount = amount
		tx.Type = models.TransactionType(txType)
		tx.Timestamp = tx.Timestamp.UTC()
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
