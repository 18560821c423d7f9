package engine

import (
	"context"
	"fmt"

	"kycaml/internal/compliance/models"
	"kycaml/pkg/platform/sentinel"
	"kycaml/pkg/requestcontext"
)

// audit stamps event with the request scope and emits it. Without an auditor
// it is a no-op.
func (e *Engine) audit(ctx context.Context, event models.AuditEvent) error {
	if e.auditor == nil {
		return nil
	}
	event.Operator = requestcontext.Operator(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	event.Timestamp = requestcontext.Now(ctx)
	if err := e.auditor.Emit(ctx, event); err != nil {
		return fmt.Errorf("%w: audit %s %s: %w", sentinel.ErrUnavailable, event.Action, event.Subject, err)
	}
	return nil
}

// AuditEvents returns the newest audit events first. An engine without an
// auditor has no trail to return.
func (e *Engine) AuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	if e.auditor == nil {
		return nil, fmt.Errorf("%w: audit trail is not configured", sentinel.ErrUnavailable)
	}
	events, err := e.auditor.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return events, nil
}
