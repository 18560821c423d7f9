package reporting

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"kycaml/internal/compliance/models"
)

// CSV metric labels, in export order.
const (
	metricTotal         = "Total Transactions"
	metricFlagged       = "Flagged Transactions"
	metricPendingReview = "Pending Review Transactions"
	metricApproved      = "Approved Transactions"
	metricRejected      = "Rejected Transactions"
	metricAverageScore  = "Average Risk Score"
	metricSanctionHits  = "Sanction Matches"
	sectionTopFactors   = "Top Risk Factors"
	headerMetricValue   = "Metric"
	headerFactorCount   = "Factor"
	headerValueColumn   = "Value"
	headerCountColumn   = "Count"
)

// ExportJSON renders the report as indented JSON.
func ExportJSON(report *models.ComplianceReport) ([]byte, error) {
	if report == nil {
		return nil, models.NewComplianceReportError("export_json", "report is required", nil)
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, models.NewComplianceReportError("export_json", "failed to encode report", err)
	}
	return out, nil
}

// ExportCSV renders the report statistics followed by the top risk factors.
// Lines are separated by "\n" with no trailing newline.
func ExportCSV(report *models.ComplianceReport) ([]byte, error) {
	if report == nil {
		return nil, models.NewComplianceReportError("export_csv", "report is required", nil)
	}
	s := report.Statistics
	records := [][]string{
		{headerMetricValue, headerValueColumn},
		{metricTotal, strconv.Itoa(s.TotalTransactions)},
		{metricFlagged, strconv.Itoa(s.FlaggedTransactions)},
		{metricPendingReview, strconv.Itoa(s.PendingReviewTransactions)},
		{metricApproved, strconv.Itoa(s.ApprovedTransactions)},
		{metricRejected, strconv.Itoa(s.RejectedTransactions)},
		{metricAverageScore, strconv.Itoa(s.AverageRiskScore)},
		{metricSanctionHits, strconv.Itoa(report.SanctionMatches)},
		{},
		{sectionTopFactors},
		{headerFactorCount, headerCountColumn},
	}
	for _, f := range report.TopRiskFactors {
		records = append(records, []string{f.Factor, strconv.Itoa(f.Count)})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, models.NewComplianceReportError("export_csv", "failed to encode report", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ParsedCSV is the content recoverable from an exported CSV report.
type ParsedCSV struct {
	Statistics      models.ReportStatistics
	SanctionMatches int
	TopRiskFactors  []models.FactorCount
}

// ParseCSV reads a report produced by ExportCSV.
func ParseCSV(data []byte) (*ParsedCSV, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, models.NewComplianceReportError("parse_csv", "malformed csv", err)
	}

	out := &ParsedCSV{TopRiskFactors: []models.FactorCount{}}
	inFactors := false
	for _, rec := range records {
		if len(rec) == 1 && rec[0] == sectionTopFactors {
			inFactors = true
			continue
		}
		if len(rec) != 2 || rec[0] == headerMetricValue || rec[0] == headerFactorCount {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, models.NewComplianceReportError("parse_csv", fmt.Sprintf("invalid value for %q", rec[0]), err)
		}
		if inFactors {
			out.TopRiskFactors = append(out.TopRiskFactors, models.FactorCount{Factor: rec[0], Count: n})
			continue
		}
		switch rec[0] {
		case metricTotal:
			out.Statistics.TotalTransactions = n
		case metricFlagged:
			out.Statistics.FlaggedTransactions = n
		case metricPendingReview:
			out.Statistics.PendingReviewTransactions = n
		case metricApproved:
			out.Statistics.ApprovedTransactions = n
		case metricRejected:
			out.Statistics.RejectedTransactions = n
		case metricAverageScore:
			out.Statistics.AverageRiskScore = n
		case metricSanctionHits:
			out.SanctionMatches = n
		default:
			return nil, models.NewComplianceReportError("parse_csv", fmt.Sprintf("unknown metric %q", rec[0]), nil)
		}
	}
	return out, nil
}
