package models

import "time"

// Severity grades an individual risk factor or flag.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Rank orders severities; unknown values rank below LOW.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// AtLeast reports whether s is as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// RiskLevel is the banded outcome of a risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// IsValid reports whether the level is one of the four bands.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// Recommendation is the action proposed for a screened transaction.
type Recommendation string

const (
	RecommendationApproved      Recommendation = "APPROVED"
	RecommendationPendingReview Recommendation = "PENDING_REVIEW"
	RecommendationFlagged       Recommendation = "FLAGGED"
	RecommendationRejected      Recommendation = "REJECTED"
)

// IsValid reports whether the recommendation is one of the known values.
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationApproved, RecommendationPendingReview, RecommendationFlagged, RecommendationRejected:
		return true
	}
	return false
}

// Factor categories. A flag promoted from a factor takes the factor's category as its type.
const (
	CategorySanctions             = "sanctions"
	CategoryPEP                   = "pep"
	CategoryJurisdiction          = "jurisdiction"
	CategoryTransactionMonitoring = "transaction_monitoring"
	CategoryCustomerProfile       = "customer_profile"
	CategoryScreening             = "screening"
	CategorySystem                = "system"
)

// RiskFactor is one contributing signal to a risk score.
type RiskFactor struct {
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Weight      int      `json:"weight"`
	Description string   `json:"description"`
}

// Flag is a factor promoted for human attention.
type Flag struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// RiskAssessment is the recorded outcome of one compliance check.
//
// Invariants:
//   - RiskScore is within [0, 100]
//   - RiskLevel is derived from RiskScore by the configured bands, except that
//     a sanctions hit always yields CRITICAL
//   - a recorded assessment is never modified
//   - Sequence is assigned by the store and strictly increases
type RiskAssessment struct {
	ID             string         `json:"id"`
	Sequence       int64          `json:"sequence"`
	TransactionID  string         `json:"transaction_id"`
	CustomerID     string         `json:"customer_id"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	RiskScore      int            `json:"risk_score"`
	Factors        []RiskFactor   `json:"factors"`
	Flags          []Flag         `json:"flags"`
	Recommendation Recommendation `json:"recommendation"`
	PolicyRule     string         `json:"policy_rule"`
	Degraded       bool           `json:"degraded"`
	InputDigest    string         `json:"input_digest"`
	AssessedAt     time.Time      `json:"assessed_at"`
	AssessedBy     string         `json:"assessed_by"`
}

// HasFlagType reports whether any flag carries the given type.
func (a RiskAssessment) HasFlagType(flagType string) bool {
	for _, f := range a.Flags {
		if f.Type == flagType {
			return true
		}
	}
	return false
}
