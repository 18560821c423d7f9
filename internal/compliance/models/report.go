package models

import "time"

// ReportPeriod is an inclusive time window.
type ReportPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Contains reports whether t falls within the period, bounds included.
func (p ReportPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// ReportStatistics aggregates assessments by recommendation.
//
// Invariants:
//   - Approved + Flagged + PendingReview + Rejected == TotalTransactions
type ReportStatistics struct {
	TotalTransactions         int `json:"total_transactions"`
	FlaggedTransactions       int `json:"flagged_transactions"`
	PendingReviewTransactions int `json:"pending_review_transactions"`
	ApprovedTransactions      int `json:"approved_transactions"`
	RejectedTransactions      int `json:"rejected_transactions"`
	AverageRiskScore          int `json:"average_risk_score"`
}

// FactorCount is a factor type with its occurrence count.
type FactorCount struct {
	Factor string `json:"factor"`
	Count  int    `json:"count"`
}

// ComplianceReport summarises assessments over a period.
type ComplianceReport struct {
	ID              string           `json:"id"`
	Period          ReportPeriod     `json:"period"`
	Statistics      ReportStatistics `json:"statistics"`
	TopRiskFactors  []FactorCount    `json:"top_risk_factors"`
	SanctionMatches int              `json:"sanction_matches"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// ComplianceSummary is a whole-history rollup by risk level.
type ComplianceSummary struct {
	TotalAssessments int `json:"total_assessments"`
	HighRiskCount    int `json:"high_risk_count"`
	MediumRiskCount  int `json:"medium_risk_count"`
	LowRiskCount     int `json:"low_risk_count"`
	AverageRiskScore int `json:"average_risk_score"`
}
