package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports/mocks"
	"kycaml/internal/compliance/store"
	"kycaml/pkg/platform/sentinel"
	"kycaml/pkg/requestcontext"
)

// =============================================================================
// Reporter Test Suite
// =============================================================================
// Justification for unit tests: report aggregation is pure arithmetic over the
// store contents; inclusive bounds, tie ordering of the factor histogram, and
// the CSV byte layout are contracts consumed outside the process.

type ReporterSuite struct {
	suite.Suite
	store    *store.InMemoryStore
	reporter *Reporter
	ctx      context.Context
	base     time.Time
}

func TestReporterSuite(t *testing.T) {
	suite.Run(t, new(ReporterSuite))
}

func (s *ReporterSuite) SetupTest() {
	s.store = store.NewInMemory()
	r, err := New(s.store)
	s.Require().NoError(err)
	s.reporter = r
	s.base = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.base.Add(30*24*time.Hour))
}

func (s *ReporterSuite) record(id string, at time.Time, score int, level models.RiskLevel, rec models.Recommendation, factorTypes []string, flags ...models.Flag) {
	factors := make([]models.RiskFactor, 0, len(factorTypes))
	for _, t := range factorTypes {
		factors = append(factors, models.RiskFactor{Type: t})
	}
	_, err := s.store.RecordAssessment(s.ctx, models.RiskAssessment{
		ID:             id,
		RiskScore:      score,
		RiskLevel:      level,
		Recommendation: rec,
		Factors:        factors,
		Flags:          flags,
		AssessedAt:     at,
	})
	s.Require().NoError(err)
}

func (s *ReporterSuite) seed() {
	sanctionsFlag := models.Flag{Type: models.CategorySanctions, Severity: models.SeverityCritical}
	s.record("a1", s.base, 0, models.RiskLevelLow, models.RecommendationApproved, nil)
	s.record("a2", s.base.Add(time.Hour), 100, models.RiskLevelCritical, models.RecommendationRejected,
		[]string{"sanctions_hit", "cross_border"}, sanctionsFlag)
	s.record("a3", s.base.Add(2*time.Hour), 45, models.RiskLevelMedium, models.RecommendationFlagged,
		[]string{"cross_border", "large_amount"})
	s.record("a4", s.base.Add(3*time.Hour), 50, models.RiskLevelMedium, models.RecommendationPendingReview,
		[]string{"large_amount", "new_account"})
	s.record("late", s.base.Add(72*time.Hour), 10, models.RiskLevelLow, models.RecommendationApproved,
		[]string{"new_account"})
}

// =============================================================================
// Report Generation
// =============================================================================

func (s *ReporterSuite) TestGenerateReport() {
	s.seed()

	s.Run("aggregates within inclusive bounds", func() {
		report, err := s.reporter.GenerateReport(s.ctx, s.base, s.base.Add(3*time.Hour))
		s.Require().NoError(err)
		s.NotEmpty(report.ID)
		s.Equal(s.base.Add(30*24*time.Hour), report.GeneratedAt)

		st := report.Statistics
		s.Equal(4, st.TotalTransactions)
		s.Equal(1, st.ApprovedTransactions)
		s.Equal(1, st.RejectedTransactions)
		s.Equal(1, st.FlaggedTransactions)
		s.Equal(1, st.PendingReviewTransactions)
		s.Equal(st.TotalTransactions,
			st.ApprovedTransactions+st.FlaggedTransactions+st.PendingReviewTransactions+st.RejectedTransactions)
		s.Equal(49, st.AverageRiskScore) // 195 / 4 = 48.75
		s.Equal(1, report.SanctionMatches)
	})

	s.Run("factor ties keep first occurrence order", func() {
		report, err := s.reporter.GenerateReport(s.ctx, s.base, s.base.Add(3*time.Hour))
		s.Require().NoError(err)
		s.Equal([]models.FactorCount{
			{Factor: "cross_border", Count: 2},
			{Factor: "large_amount", Count: 2},
			{Factor: "sanctions_hit", Count: 1},
			{Factor: "new_account", Count: 1},
		}, report.TopRiskFactors)
	})

	s.Run("empty window", func() {
		report, err := s.reporter.GenerateReport(s.ctx, s.base.Add(-48*time.Hour), s.base.Add(-24*time.Hour))
		s.Require().NoError(err)
		s.Equal(0, report.Statistics.TotalTransactions)
		s.Equal(0, report.Statistics.AverageRiskScore)
		s.Empty(report.TopRiskFactors)
	})

	s.Run("end before start is a report error", func() {
		_, err := s.reporter.GenerateReport(s.ctx, s.base, s.base.Add(-time.Second))
		s.Require().Error(err)
		s.True(models.IsKind(err, models.KindComplianceReport))
	})

	s.Run("single instant window", func() {
		report, err := s.reporter.GenerateReport(s.ctx, s.base, s.base)
		s.Require().NoError(err)
		s.Equal(1, report.Statistics.TotalTransactions)
	})
}

func (s *ReporterSuite) TestTopFactorsCapped() {
	types := make([]string, 0, 15)
	for i := range 15 {
		types = append(types, fmt.Sprintf("factor_%02d", i))
	}
	s.record("many", s.base, 10, models.RiskLevelLow, models.RecommendationApproved, types)

	report, err := s.reporter.GenerateReport(s.ctx, s.base, s.base)
	s.Require().NoError(err)
	s.Len(report.TopRiskFactors, DefaultTopFactors)
	s.Equal("factor_00", report.TopRiskFactors[0].Factor)
	s.Equal("factor_09", report.TopRiskFactors[9].Factor)
}

func (s *ReporterSuite) TestGenerateReportForDates() {
	s.seed()
	report, err := s.reporter.GenerateReportForDates(s.ctx, "2024-01-10", "2024-01-10")
	s.Require().NoError(err)
	s.Equal(4, report.Statistics.TotalTransactions)

	_, err = s.reporter.GenerateReportForDates(s.ctx, "yesterday", "2024-01-10")
	s.True(models.IsKind(err, models.KindComplianceReport))
}

func (s *ReporterSuite) TestSummary() {
	s.seed()
	summary, err := s.reporter.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.ComplianceSummary{
		TotalAssessments: 5,
		HighRiskCount:    1,
		MediumRiskCount:  2,
		LowRiskCount:     2,
		AverageRiskScore: 41, // 205 / 5
	}, summary)
}

func (s *ReporterSuite) TestStoreFailure() {
	ctrl := gomock.NewController(s.T())
	failing := mocks.NewMockAssessmentStore(ctrl)
	failing.EXPECT().ListAssessments(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
	failing.EXPECT().AllAssessments(gomock.Any()).Return(nil, errors.New("connection reset"))

	r, err := New(failing)
	s.Require().NoError(err)

	_, err = r.GenerateReport(s.ctx, s.base, s.base.Add(time.Hour))
	s.Require().Error(err)
	s.True(models.IsKind(err, models.KindComplianceReport))
	s.Contains(err.Error(), "connection reset")
	s.ErrorIs(err, sentinel.ErrUnavailable)

	_, err = r.Summary(s.ctx)
	s.True(models.IsKind(err, models.KindComplianceReport))
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *ReporterSuite) TestNewRequiresStore() {
	_, err := New(nil)
	s.Error(err)
}

// =============================================================================
// Period Parsing
// =============================================================================

func (s *ReporterSuite) TestParsePeriod() {
	s.Run("date only end covers the whole day", func() {
		p, err := ParsePeriod("2024-01-01", "2024-01-31")
		s.Require().NoError(err)
		s.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
		s.Equal(time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), p.EndDate)
	})

	s.Run("rfc3339 bounds are exact", func() {
		p, err := ParsePeriod("2024-01-01T08:00:00Z", "2024-01-01T09:00:00Z")
		s.Require().NoError(err)
		s.Equal(time.Hour, p.EndDate.Sub(p.StartDate))
	})

	s.Run("same day is valid", func() {
		_, err := ParsePeriod("2024-01-01", "2024-01-01")
		s.NoError(err)
	})

	for _, tc := range []struct{ name, start, end string }{
		{"unparsable start", "01/01/2024", "2024-01-31"},
		{"unparsable end", "2024-01-01", "soon"},
		{"empty start", "", "2024-01-31"},
		{"end before start", "2024-02-01", "2024-01-31"},
	} {
		s.Run(tc.name, func() {
			_, err := ParsePeriod(tc.start, tc.end)
			s.Require().Error(err)
			s.True(models.IsKind(err, models.KindComplianceReport))
		})
	}
}

// =============================================================================
// Export
// =============================================================================

func sampleReport() *models.ComplianceReport {
	return &models.ComplianceReport{
		ID: "rep-1",
		Period: models.ReportPeriod{
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		Statistics: models.ReportStatistics{
			TotalTransactions:         10,
			FlaggedTransactions:       2,
			PendingReviewTransactions: 1,
			ApprovedTransactions:      6,
			RejectedTransactions:      1,
			AverageRiskScore:          27,
		},
		TopRiskFactors: []models.FactorCount{
			{Factor: "cross_border", Count: 4},
			{Factor: "large_amount", Count: 3},
		},
		SanctionMatches: 1,
		GeneratedAt:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ReporterSuite) TestExportCSV() {
	out, err := ExportCSV(sampleReport())
	s.Require().NoError(err)
	expected := strings.Join([]string{
		"Metric,Value",
		"Total Transactions,10",
		"Flagged Transactions,2",
		"Pending Review Transactions,1",
		"Approved Transactions,6",
		"Rejected Transactions,1",
		"Average Risk Score,27",
		"Sanction Matches,1",
		"",
		"Top Risk Factors",
		"Factor,Count",
		"cross_border,4",
		"large_amount,3",
	}, "\n")
	s.Equal(expected, string(out))

	again, err := ExportCSV(sampleReport())
	s.Require().NoError(err)
	s.Equal(out, again)
}

func (s *ReporterSuite) TestCSVRoundTrip() {
	s.seed()
	report, err := s.reporter.GenerateReport(s.ctx, s.base, s.base.Add(100*time.Hour))
	s.Require().NoError(err)

	out, err := ExportCSV(report)
	s.Require().NoError(err)
	parsed, err := ParseCSV(out)
	s.Require().NoError(err)
	s.Equal(report.Statistics, parsed.Statistics)
	s.Equal(report.SanctionMatches, parsed.SanctionMatches)
	s.Equal(report.TopRiskFactors, parsed.TopRiskFactors)
}

func (s *ReporterSuite) TestParseCSVRejectsGarbage() {
	_, err := ParseCSV([]byte("Metric,Value\nTotal Transactions,many"))
	s.True(models.IsKind(err, models.KindComplianceReport))

	_, err = ParseCSV([]byte("Metric,Value\nMystery Metric,3"))
	s.True(models.IsKind(err, models.KindComplianceReport))
}

func (s *ReporterSuite) TestExportJSON() {
	out, err := ExportJSON(sampleReport())
	s.Require().NoError(err)
	s.Contains(string(out), "\n  \"id\": \"rep-1\",")
	s.Contains(string(out), "\"total_transactions\": 10")

	_, err = ExportJSON(nil)
	s.True(models.IsKind(err, models.KindComplianceReport))
}
