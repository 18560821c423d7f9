// Package ports defines the interfaces the compliance engine consumes.
// Interfaces live here so the engine, the reporter, and adapters share one definition.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"kycaml/internal/compliance/models"
)

// AssessmentStore is the append-only log of assessments and transactions.
type AssessmentStore interface {
	// RecordAssessment appends an assessment and returns it with its assigned sequence.
	RecordAssessment(ctx context.Context, assessment models.RiskAssessment) (models.RiskAssessment, error)

	// RecordTransaction appends the transaction an assessment was computed from.
	RecordTransaction(ctx context.Context, tx models.Transaction) error

	// ListAssessments returns assessments with AssessedAt in [from, to], in sequence order.
	ListAssessments(ctx context.Context, from, to time.Time) ([]models.RiskAssessment, error)

	// AllAssessments returns every assessment in sequence order.
	AllAssessments(ctx context.Context) ([]models.RiskAssessment, error)

	// AssessmentsWithFlag returns assessments carrying a flag of the given type, in sequence order.
	AssessmentsWithFlag(ctx context.Context, flagType string) ([]models.RiskAssessment, error)

	// ListTransactions returns every recorded transaction in insertion order.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

// AssessmentPublisher hands approved assessments to the downstream signing layer.
type AssessmentPublisher interface {
	Publish(ctx context.Context, assessment models.RiskAssessment) error
}

// VendorScreener queries an external screening provider (adverse media and similar).
type VendorScreener interface {
	Screen(ctx context.Context, customer models.Customer) ([]models.ScreeningHit, error)
}

// SanctionsSnapshotStore persists registry contents so lists survive restarts.
type SanctionsSnapshotStore interface {
	SaveLists(ctx context.Context, lists []models.SanctionsList) error
	LoadLists(ctx context.Context) ([]models.SanctionsList, error)
}

// Auditor records the compliance audit trail. Emit is fail-closed: an error
// means the event was not persisted and the calling operation must fail.
type Auditor interface {
	Emit(ctx context.Context, event models.AuditEvent) error
	Recent(ctx context.Context, limit int) ([]models.AuditEvent, error)
}

// Transactor is implemented by stores that can group writes atomically.
// The engine records the transaction, the assessment, and its audit event in
// one unit when the assessment store offers it.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
