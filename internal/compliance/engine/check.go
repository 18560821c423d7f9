package engine

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/blake2b"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/policy"
	"kycaml/internal/compliance/ports"
	"kycaml/internal/compliance/risk"
	"kycaml/pkg/requestcontext"
)

// PerformComplianceCheck screens and scores a transaction, records the
// assessment, and returns it.
//
// Screening or evaluator failures never abort the check: each becomes a
// system factor and the assessment is marked degraded, which rules out
// automatic approval. Failing to record the assessment is returned as an error.
func (e *Engine) PerformComplianceCheck(ctx context.Context, tx models.Transaction, customer models.Customer) (models.RiskAssessment, error) {
	start := time.Now()
	if strings.TrimSpace(tx.ID) == "" {
		return models.RiskAssessment{}, models.NewSanctionsCheckError("perform_compliance_check", "transaction id is required", nil)
	}
	if strings.TrimSpace(customer.ID) == "" {
		return models.RiskAssessment{}, models.NewSanctionsCheckError("perform_compliance_check", "customer id is required", nil)
	}

	ctx, span := e.tracer.Start(ctx, "compliance.perform_check", trace.WithAttributes(
		attribute.String("transaction.id", tx.ID),
		attribute.String("customer.id", customer.ID),
	))
	defer span.End()

	current := e.settings.Load()
	cfg := current.cfg
	snap := e.registry.Snapshot()
	now := requestcontext.Now(ctx)

	if e.logger != nil {
		e.logger.InfoContext(ctx, "performing compliance check",
			"transaction_id", tx.ID,
			"customer_id", customer.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	screening := e.screen(ctx, tx, customer, cfg, snap)

	result := risk.Run(e.evaluators, risk.Input{
		Transaction:     tx,
		Customer:        customer,
		SanctionMatches: screening.sanctionMatches,
		PEPMatches:      screening.pepMatches,
		ScreeningHits:   screening.hits,
		Config:          cfg,
		Countries:       current.countries,
		AssessedAt:      now,
	}, e.metrics.ObserveEvaluatorLatency)

	factors := append(result.Factors, screening.failureFactors(cfg)...)
	for _, f := range result.Failures {
		e.metrics.IncrementEvaluatorFailure(f.Evaluator)
	}
	degraded := result.Degraded() || len(screening.failures) > 0

	score := risk.Aggregate(factors, cfg.Bands)
	recommendation, rule := policy.Decide(policy.Input{
		Score:    score.Value,
		Flags:    score.Flags,
		Degraded: degraded,
	}, policy.FromConfig(cfg))

	assessment := models.RiskAssessment{
		ID:             uuid.NewString(),
		TransactionID:  tx.ID,
		CustomerID:     customer.ID,
		RiskLevel:      score.Level,
		RiskScore:      score.Value,
		Factors:        factors,
		Flags:          score.Flags,
		Recommendation: recommendation,
		PolicyRule:     rule,
		Degraded:       degraded,
		InputDigest:    inputDigest(tx, customer, cfg, snap.Revision()),
		AssessedAt:     now,
		AssessedBy:     requestcontext.Operator(ctx),
	}

	recorded, err := e.persist(ctx, tx, assessment)
	if err != nil {
		return e.fail(ctx, span, tx, err)
	}

	if recorded.Recommendation == models.RecommendationApproved && e.publisher != nil {
		if err := e.publisher.Publish(ctx, recorded); err != nil && e.logger != nil {
			e.logger.ErrorContext(ctx, "approved assessment not handed downstream",
				"assessment_id", recorded.ID,
				"transaction_id", tx.ID,
				"error", err,
			)
		}
	}

	e.metrics.AddSanctionsMatches(len(screening.sanctionMatches))
	e.metrics.IncrementOutcome(string(recorded.Recommendation), string(recorded.RiskLevel))
	e.metrics.ObserveCheckLatency(time.Since(start))

	span.SetAttributes(
		attribute.Int("risk.score", recorded.RiskScore),
		attribute.String("risk.level", string(recorded.RiskLevel)),
		attribute.String("recommendation", string(recorded.Recommendation)),
		attribute.Bool("degraded", recorded.Degraded),
	)

	if e.logger != nil {
		e.logger.InfoContext(ctx, "compliance check complete",
			"transaction_id", tx.ID,
			"customer_id", customer.ID,
			"risk_score", recorded.RiskScore,
			"risk_level", recorded.RiskLevel,
			"recommendation", recorded.Recommendation,
			"policy_rule", recorded.PolicyRule,
			"flag_count", len(recorded.Flags),
			"degraded", recorded.Degraded,
		)
	}
	return recorded, nil
}

// persist records the transaction, the assessment, and the audit event. When
// the store is a ports.Transactor the three writes commit or roll back together.
// Otherwise the audit event is emitted first, so a failed audit never leaves a
// recorded decision behind; a later store failure can leave an audit event for
// a check that was not recorded.
func (e *Engine) persist(ctx context.Context, tx models.Transaction, assessment models.RiskAssessment) (models.RiskAssessment, error) {
	event := models.AuditEvent{
		Action:   models.AuditCheckCompleted,
		Subject:  tx.ID,
		Decision: string(assessment.Recommendation),
		Reason:   assessment.PolicyRule,
	}
	var recorded models.RiskAssessment
	record := func(ctx context.Context) error {
		if err := e.store.RecordTransaction(ctx, tx); err != nil {
			return fmt.Errorf("record transaction %s: %w", tx.ID, err)
		}
		r, err := e.store.RecordAssessment(ctx, assessment)
		if err != nil {
			return fmt.Errorf("record assessment for transaction %s: %w", tx.ID, err)
		}
		recorded = r
		return nil
	}

	if t, ok := e.store.(ports.Transactor); ok {
		err := t.RunInTx(ctx, func(ctx context.Context) error {
			if err := record(ctx); err != nil {
				return err
			}
			return e.audit(ctx, event)
		})
		if err != nil {
			return models.RiskAssessment{}, err
		}
		return recorded, nil
	}

	if err := e.audit(ctx, event); err != nil {
		return models.RiskAssessment{}, err
	}
	if err := record(ctx); err != nil {
		return models.RiskAssessment{}, err
	}
	return recorded, nil
}

func (e *Engine) fail(ctx context.Context, span trace.Span, tx models.Transaction, err error) (models.RiskAssessment, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "compliance check not recorded")
	if e.logger != nil {
		e.logger.ErrorContext(ctx, "compliance check failed",
			"transaction_id", tx.ID,
			"error", err,
		)
	}
	return models.RiskAssessment{}, err
}

// digestInput is the canonical form hashed into RiskAssessment.InputDigest.
type digestInput struct {
	Transaction       models.Transaction  `json:"transaction"`
	Customer          models.Customer     `json:"customer"`
	Config            models.EngineConfig `json:"config"`
	SanctionsRevision uint64              `json:"sanctions_revision"`
}

// inputDigest fingerprints the transaction, customer, configuration, and
// sanctions revision an assessment was computed from.
func inputDigest(tx models.Transaction, customer models.Customer, cfg models.EngineConfig, revision uint64) string {
	payload, err := json.Marshal(digestInput{
		Transaction:       tx,
		Customer:          customer,
		Config:            cfg,
		SanctionsRevision: revision,
	})
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
