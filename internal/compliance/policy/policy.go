// Package policy maps a scored assessment to a terminal recommendation.
package policy

import "kycaml/internal/compliance/models"

// Rule names, in evaluation order.
const (
	RuleSanctionsOverride = "sanctions_override"
	RuleAutoRejection     = "auto_rejection"
	RuleAutoApproval      = "auto_approval"
	RuleFlagReview        = "flag_review"
	RuleDefaultReview     = "default_review"
)

// Input is what the policy decides on.
type Input struct {
	Score    int
	Flags    []models.Flag
	Degraded bool
}

// HasCriticalSanctionsFlag reports whether a CRITICAL sanctions flag is present.
func (in Input) HasCriticalSanctionsFlag() bool {
	for _, f := range in.Flags {
		if f.Type == models.CategorySanctions && f.Severity == models.SeverityCritical {
			return true
		}
	}
	return false
}

// HasHighFlag reports whether any flag is HIGH or CRITICAL.
func (in Input) HasHighFlag() bool {
	for _, f := range in.Flags {
		if f.Severity.AtLeast(models.SeverityHigh) {
			return true
		}
	}
	return false
}

// Thresholds are the score cut-offs for automatic decisions.
type Thresholds struct {
	AutoApproval  int
	AutoRejection int
}

// FromConfig extracts policy thresholds from engine configuration.
func FromConfig(cfg models.EngineConfig) Thresholds {
	return Thresholds{AutoApproval: cfg.AutoApprovalThreshold, AutoRejection: cfg.AutoRejectionThreshold}
}

type rule struct {
	name   string
	result func(in Input, t Thresholds) (models.Recommendation, bool)
}

// rules is the priority chain; the first rule that fires decides.
var rules = []rule{
	// Rule 1: sanctions hit (hard fail) overrides any score
	{RuleSanctionsOverride, func(in Input, _ Thresholds) (models.Recommendation, bool) {
		return models.RecommendationRejected, in.HasCriticalSanctionsFlag()
	}},
	// Rule 2: score at or above the rejection threshold
	{RuleAutoRejection, func(in Input, t Thresholds) (models.Recommendation, bool) {
		return models.RecommendationRejected, in.Score >= t.AutoRejection
	}},
	// Rule 3: low score, unless a component failed
	{RuleAutoApproval, func(in Input, t Thresholds) (models.Recommendation, bool) {
		return models.RecommendationApproved, in.Score <= t.AutoApproval && !in.Degraded
	}},
	// Rule 4: flags route to review; HIGH severity escalates
	{RuleFlagReview, func(in Input, _ Thresholds) (models.Recommendation, bool) {
		if len(in.Flags) == 0 {
			return "", false
		}
		if in.HasHighFlag() {
			return models.RecommendationFlagged, true
		}
		return models.RecommendationPendingReview, true
	}},
}

// Decide applies the rule chain and returns the recommendation with the rule that fired.
// This is pure domain logic - no I/O, no side effects.
func Decide(in Input, t Thresholds) (models.Recommendation, string) {
	for _, r := range rules {
		if rec, ok := r.result(in, t); ok {
			return rec, r.name
		}
	}
	return models.RecommendationPendingReview, RuleDefaultReview
}

// Rules returns the rule names in evaluation order.
func Rules() []string {
	out := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.name)
	}
	return append(out, RuleDefaultReview)
}
