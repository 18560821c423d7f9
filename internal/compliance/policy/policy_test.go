package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kycaml/internal/compliance/models"
)

var defaults = FromConfig(models.DefaultEngineConfig())

func flag(t string, sev models.Severity) models.Flag {
	return models.Flag{Type: t, Severity: sev, Description: t}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		expected models.Recommendation
		rule     string
	}{
		{
			name:     "critical sanctions flag rejects even at score zero",
			input:    Input{Score: 0, Flags: []models.Flag{flag(models.CategorySanctions, models.SeverityCritical)}},
			expected: models.RecommendationRejected,
			rule:     RuleSanctionsOverride,
		},
		{
			name:     "score at rejection threshold rejects",
			input:    Input{Score: 80},
			expected: models.RecommendationRejected,
			rule:     RuleAutoRejection,
		},
		{
			name:     "score at approval threshold approves despite flags",
			input:    Input{Score: 30, Flags: []models.Flag{flag(models.CategoryJurisdiction, models.SeverityHigh)}},
			expected: models.RecommendationApproved,
			rule:     RuleAutoApproval,
		},
		{
			name:     "degraded check is never auto approved",
			input:    Input{Score: 0, Degraded: true, Flags: []models.Flag{flag(models.CategorySystem, models.SeverityMedium)}},
			expected: models.RecommendationPendingReview,
			rule:     RuleFlagReview,
		},
		{
			name:     "degraded check without flags still goes to review",
			input:    Input{Score: 0, Degraded: true},
			expected: models.RecommendationPendingReview,
			rule:     RuleDefaultReview,
		},
		{
			name:     "high flag between thresholds is flagged",
			input:    Input{Score: 50, Flags: []models.Flag{flag(models.CategoryJurisdiction, models.SeverityHigh)}},
			expected: models.RecommendationFlagged,
			rule:     RuleFlagReview,
		},
		{
			name:     "medium flags between thresholds go to review",
			input:    Input{Score: 50, Flags: []models.Flag{flag(models.CategoryCustomerProfile, models.SeverityMedium)}},
			expected: models.RecommendationPendingReview,
			rule:     RuleFlagReview,
		},
		{
			name:     "no flags between thresholds defaults to review",
			input:    Input{Score: 50},
			expected: models.RecommendationPendingReview,
			rule:     RuleDefaultReview,
		},
		{
			name:     "non critical sanctions flag does not trigger override",
			input:    Input{Score: 50, Flags: []models.Flag{flag(models.CategorySanctions, models.SeverityHigh)}},
			expected: models.RecommendationFlagged,
			rule:     RuleFlagReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, rule := Decide(tt.input, defaults)
			assert.Equal(t, tt.expected, rec)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestSanctionsOverrideHoldsForEveryScore(t *testing.T) {
	flags := []models.Flag{flag(models.CategorySanctions, models.SeverityCritical)}
	for score := 0; score <= 100; score++ {
		rec, _ := Decide(Input{Score: score, Flags: flags}, defaults)
		assert.Equal(t, models.RecommendationRejected, rec, "score %d", score)
	}
}

func TestRulesOrder(t *testing.T) {
	assert.Equal(t, []string{
		RuleSanctionsOverride,
		RuleAutoRejection,
		RuleAutoApproval,
		RuleFlagReview,
		RuleDefaultReview,
	}, Rules())
}
