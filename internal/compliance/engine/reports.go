package engine

import (
	"context"
	"fmt"
	"time"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/reporting"
	"kycaml/pkg/platform/sentinel"
)

// ExportFormat selects a report serialization.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// GenerateComplianceReport aggregates assessments recorded in [start, end].
func (e *Engine) GenerateComplianceReport(ctx context.Context, start, end time.Time) (*models.ComplianceReport, error) {
	report, err := e.reporter.GenerateReport(ctx, start, end)
	if err != nil {
		return nil, err
	}
	e.metrics.IncrementReportsGenerated()
	return report, nil
}

// GenerateComplianceReportForDates accepts RFC 3339 or YYYY-MM-DD bounds.
func (e *Engine) GenerateComplianceReportForDates(ctx context.Context, start, end string) (*models.ComplianceReport, error) {
	period, err := reporting.ParsePeriod(start, end)
	if err != nil {
		return nil, err
	}
	return e.GenerateComplianceReport(ctx, period.StartDate, period.EndDate)
}

// GetComplianceSummary rolls up every recorded assessment.
func (e *Engine) GetComplianceSummary(ctx context.Context) (models.ComplianceSummary, error) {
	return e.reporter.Summary(ctx)
}

// ExportReport serializes a report.
func (e *Engine) ExportReport(report *models.ComplianceReport, format ExportFormat) ([]byte, error) {
	switch format {
	case ExportJSON:
		return reporting.ExportJSON(report)
	case ExportCSV:
		return reporting.ExportCSV(report)
	default:
		return nil, models.NewComplianceReportError("export_report", fmt.Sprintf("unsupported format %q", format), nil)
	}
}

// FlaggedAssessments returns the recorded assessments carrying a flag of
// flagType, oldest first. It backs the analyst review queue.
func (e *Engine) FlaggedAssessments(ctx context.Context, flagType string) ([]models.RiskAssessment, error) {
	if flagType == "" {
		return nil, models.NewComplianceReportError("flagged_assessments", "flag type is required", nil)
	}
	assessments, err := e.store.AssessmentsWithFlag(ctx, flagType)
	if err != nil {
		return nil, fmt.Errorf("%w: list flagged assessments: %w", sentinel.ErrUnavailable, err)
	}
	return assessments, nil
}
