// Package audit records the compliance audit trail with fail-closed semantics.
//
// Emit writes synchronously and the caller blocks until the store accepts the
// event. If the write fails, an error is returned and the calling operation
// MUST fail: a decision that cannot be audited is not a decision.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kycaml/internal/compliance/metrics"
	"kycaml/internal/compliance/models"
)

// DefaultRecentLimit bounds Recent when the caller passes a non-positive limit.
const DefaultRecentLimit = 100

// Store is the append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event models.AuditEvent) error
	// ListRecent returns at most limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.AuditEvent, error)
}

// Publisher emits audit events to a Store.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates an audit publisher over store.
func New(store Store, opts ...Option) (*Publisher, error) {
	if store == nil {
		return nil, fmt.Errorf("audit store is required")
	}
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Emit validates and synchronously persists event. A missing ID or timestamp
// is filled in.
func (p *Publisher) Emit(ctx context.Context, event models.AuditEvent) error {
	start := time.Now()

	if event.Action == "" {
		return fmt.Errorf("audit event requires Action")
	}
	if event.Subject == "" {
		return fmt.Errorf("audit event requires Subject")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.IncrementAuditEvent(string(event.Action), "failed")
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: compliance audit failed",
				"action", event.Action,
				"subject", event.Subject,
				"request_id", event.RequestID,
				"error", err,
			)
		}
		return fmt.Errorf("compliance audit persistence failed: %w", err)
	}

	p.metrics.ObserveAuditPersist(time.Since(start))
	p.metrics.IncrementAuditEvent(string(event.Action), "persisted")
	return nil
}

// Recent returns the newest events first.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	events, err := p.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
