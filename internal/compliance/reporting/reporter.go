// Package reporting aggregates recorded assessments into compliance reports.
package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports"
	"kycaml/pkg/platform/sentinel"
	"kycaml/pkg/requestcontext"
)

// DefaultTopFactors caps the risk factor histogram in a report.
const DefaultTopFactors = 10

const dateLayout = "2006-01-02"

// Reporter reads the assessment store; it never writes to it.
type Reporter struct {
	store      ports.AssessmentStore
	logger     *slog.Logger
	topFactors int
}

// Option configures a Reporter.
type Option func(*Reporter)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// WithTopFactors overrides how many factor types a report lists.
func WithTopFactors(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.topFactors = n
		}
	}
}

func New(store ports.AssessmentStore, opts ...Option) (*Reporter, error) {
	if store == nil {
		return nil, fmt.Errorf("assessment store is required")
	}
	r := &Reporter{
		store:      store,
		topFactors: DefaultTopFactors,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// GenerateReport aggregates assessments with AssessedAt in [start, end].
func (r *Reporter) GenerateReport(ctx context.Context, start, end time.Time) (*models.ComplianceReport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, models.NewComplianceReportError("generate_report", "start and end dates are required", nil)
	}
	if end.Before(start) {
		return nil, models.NewComplianceReportError("generate_report",
			fmt.Sprintf("end date %s is before start date %s", end.Format(time.RFC3339), start.Format(time.RFC3339)), nil)
	}

	assessments, err := r.store.ListAssessments(ctx, start, end)
	if err != nil {
		return nil, models.NewComplianceReportError("generate_report", "failed to load assessments",
			fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err))
	}

	report := &models.ComplianceReport{
		ID:              uuid.NewString(),
		Period:          models.ReportPeriod{StartDate: start, EndDate: end},
		Statistics:      statistics(assessments),
		TopRiskFactors:  topFactors(assessments, r.topFactors),
		SanctionMatches: sanctionMatches(assessments),
		GeneratedAt:     requestcontext.Now(ctx),
	}

	if r.logger != nil {
		r.logger.InfoContext(ctx, "compliance report generated",
			"report_id", report.ID,
			"start", start,
			"end", end,
			"total_transactions", report.Statistics.TotalTransactions,
			"sanction_matches", report.SanctionMatches,
		)
	}
	return report, nil
}

// GenerateReportForDates parses the period with ParsePeriod and generates the report.
func (r *Reporter) GenerateReportForDates(ctx context.Context, start, end string) (*models.ComplianceReport, error) {
	period, err := ParsePeriod(start, end)
	if err != nil {
		return nil, err
	}
	return r.GenerateReport(ctx, period.StartDate, period.EndDate)
}

// Summary rolls up the whole store by risk level.
func (r *Reporter) Summary(ctx context.Context) (models.ComplianceSummary, error) {
	assessments, err := r.store.AllAssessments(ctx)
	if err != nil {
		return models.ComplianceSummary{}, models.NewComplianceReportError("compliance_summary", "failed to load assessments",
			fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err))
	}

	summary := models.ComplianceSummary{
		TotalAssessments: len(assessments),
		AverageRiskScore: averageScore(assessments),
	}
	for _, a := range assessments {
		switch a.RiskLevel {
		case models.RiskLevelHigh, models.RiskLevelCritical:
			summary.HighRiskCount++
		case models.RiskLevelMedium:
			summary.MediumRiskCount++
		case models.RiskLevelLow:
			summary.LowRiskCount++
		}
	}
	return summary, nil
}

// ParsePeriod accepts RFC 3339 timestamps or YYYY-MM-DD dates.
// A date-only end covers that whole day in UTC.
func ParsePeriod(start, end string) (models.ReportPeriod, error) {
	startTime, _, err := parseBound(start)
	if err != nil {
		return models.ReportPeriod{}, models.NewComplianceReportError("parse_period", fmt.Sprintf("invalid start date %q", start), err)
	}
	endTime, dateOnly, err := parseBound(end)
	if err != nil {
		return models.ReportPeriod{}, models.NewComplianceReportError("parse_period", fmt.Sprintf("invalid end date %q", end), err)
	}
	if dateOnly {
		endTime = endTime.Add(24*time.Hour - time.Nanosecond)
	}
	if endTime.Before(startTime) {
		return models.ReportPeriod{}, models.NewComplianceReportError("parse_period",
			fmt.Sprintf("end date %s is before start date %s", end, start), nil)
	}
	return models.ReportPeriod{StartDate: startTime, EndDate: endTime}, nil
}

func parseBound(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func statistics(assessments []models.RiskAssessment) models.ReportStatistics {
	stats := models.ReportStatistics{
		TotalTransactions: len(assessments),
		AverageRiskScore:  averageScore(assessments),
	}
	for _, a := range assessments {
		switch a.Recommendation {
		case models.RecommendationApproved:
			stats.ApprovedTransactions++
		case models.RecommendationFlagged:
			stats.FlaggedTransactions++
		case models.RecommendationRejected:
			stats.RejectedTransactions++
		default:
			stats.PendingReviewTransactions++
		}
	}
	return stats
}

func averageScore(assessments []models.RiskAssessment) int {
	if len(assessments) == 0 {
		return 0
	}
	total := 0
	for _, a := range assessments {
		total += a.RiskScore
	}
	return int(math.Round(float64(total) / float64(len(assessments))))
}

func sanctionMatches(assessments []models.RiskAssessment) int {
	count := 0
	for _, a := range assessments {
		if a.HasFlagType(models.CategorySanctions) {
			count++
		}
	}
	return count
}

// topFactors counts factor types, sorts by count descending, and keeps first-seen order on ties.
func topFactors(assessments []models.RiskAssessment, limit int) []models.FactorCount {
	index := make(map[string]int)
	counts := make([]models.FactorCount, 0)
	for _, a := range assessments {
		for _, f := range a.Factors {
			i, ok := index[f.Type]
			if !ok {
				i = len(counts)
				index[f.Type] = i
				counts = append(counts, models.FactorCount{Factor: f.Type})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
