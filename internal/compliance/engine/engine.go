// Package engine is the compliance facade: it screens, scores, decides, and
// records one transaction at a time, and exposes document verification and
// reporting over the same configuration.
//
// Many checks may run concurrently. Configuration, the country table, and the
// sanctions registry are read once per check from atomic snapshots, so a
// concurrent UpdateConfig or list update never produces a half-applied check.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"kycaml/internal/compliance/country"
	"kycaml/internal/compliance/document"
	"kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
	"kycaml/internal/compliance/reporting"
	"kycaml/internal/compliance/risk"
	"kycaml/internal/compliance/sanctions"
	"kycaml/internal/compliance/store"
	"kycaml/pkg/platform/circuit"
	"kycaml/pkg/platform/sentinel"
	"kycaml/pkg/requestcontext"
)

const tracerName = "kycaml/compliance"

// settings is the configuration plus everything derived from it.
type settings struct {
	cfg       models.EngineConfig
	countries *country.Table
}

// Engine orchestrates a compliance check.
type Engine struct {
	settings atomic.Pointer[settings]

	registry   *sanctions.Registry
	peps       *sanctions.PEPRegistry
	evaluators []risk.Evaluator
	store      ports.AssessmentStore
	reporter   *reporting.Reporter

	publisher ports.AssessmentPublisher
	vendor    ports.VendorScreener
	breaker   *circuit.Breaker
	snapshots ports.SanctionsSnapshotStore
	auditor   ports.Auditor

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithStore replaces the default in-memory assessment store.
func WithStore(s ports.AssessmentStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithPublisher hands APPROVED assessments downstream after they are recorded.
func WithPublisher(p ports.AssessmentPublisher) Option {
	return func(e *Engine) {
		e.publisher = p
	}
}

// WithVendor enables adverse media screening through an external provider.
func WithVendor(v ports.VendorScreener) Option {
	return func(e *Engine) {
		e.vendor = v
	}
}

// WithVendorBreaker overrides the circuit breaker guarding the vendor.
func WithVendorBreaker(b *circuit.Breaker) Option {
	return func(e *Engine) {
		e.breaker = b
	}
}

// WithAuditor records checks and sanctions list changes on a fail-closed
// audit trail. Without one the engine keeps no trail.
func WithAuditor(a ports.Auditor) Option {
	return func(e *Engine) {
		e.auditor = a
	}
}

// WithSnapshotStore persists sanctions lists after every list change.
func WithSnapshotStore(s ports.SanctionsSnapshotStore) Option {
	return func(e *Engine) {
		e.snapshots = s
	}
}

func WithPEPRegistry(r *sanctions.PEPRegistry) Option {
	return func(e *Engine) {
		e.peps = r
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithEvaluators replaces the default evaluator list.
func WithEvaluators(evaluators ...risk.Evaluator) Option {
	return func(e *Engine) {
		e.evaluators = evaluators
	}
}

// New constructs an Engine. The configuration is validated and copied.
func New(registry *sanctions.Registry, cfg models.EngineConfig, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("sanctions registry is required")
	}
	e := &Engine{
		registry:   registry,
		evaluators: risk.DefaultEvaluators(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = store.NewInMemory()
	}
	if e.peps == nil {
		e.peps = sanctions.NewPEPRegistry()
	}
	if e.breaker == nil {
		e.breaker = circuit.New("screening_vendor")
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	if err := e.UpdateConfig(cfg); err != nil {
		return nil, err
	}

	reporter, err := reporting.New(e.store, reporting.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.reporter = reporter
	e.metrics.SetSanctionsEntities(registry.Snapshot().EntityCount())
	return e, nil
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() models.EngineConfig {
	return e.settings.Load().cfg.Clone()
}

// UpdateConfig validates and swaps in a new configuration. In-flight checks
// finish against the configuration they started with.
func (e *Engine) UpdateConfig(cfg models.EngineConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.Clone()
	e.settings.Store(&settings{
		cfg:       cfg,
		countries: country.New(cfg.HighRiskCountries, cfg.MonitoredCountries),
	})
	if e.logger != nil {
		e.logger.Info("compliance configuration updated",
			"auto_approval_threshold", cfg.AutoApprovalThreshold,
			"auto_rejection_threshold", cfg.AutoRejectionThreshold,
			"high_risk_countries", cfg.HighRiskCountries,
		)
	}
	return nil
}

// VerifyDocument checks document data against the customer record.
func (e *Engine) VerifyDocument(ctx context.Context, req models.DocumentVerificationRequest, customer models.Customer) (models.DocumentVerificationResult, error) {
	cfg := e.settings.Load().cfg
	if !cfg.DocumentVerificationEnabled {
		return models.DocumentVerificationResult{}, models.NewDocumentVerificationError(
			"verify_document", "document verification is disabled", sentinel.ErrUnavailable)
	}

	verifier := document.New(document.WithNameThreshold(cfg.NameMatchThreshold))
	result, err := verifier.Verify(req, customer, requestcontext.Now(ctx))
	if err != nil {
		return models.DocumentVerificationResult{}, err
	}
	e.metrics.IncrementDocumentVerification(result.IsValid)
	if e.logger != nil {
		e.logger.InfoContext(ctx, "document verified",
			"customer_id", customer.ID,
			"document_type", req.DocumentType,
			"is_valid", result.IsValid,
			"issue_count", len(result.Issues),
		)
	}
	return result, nil
}
