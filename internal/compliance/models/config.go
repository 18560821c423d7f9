package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionThresholds are the amount tiers used by the large-amount evaluator.
type TransactionThresholds struct {
	Low    decimal.Decimal `json:"low"`
	Medium decimal.Decimal `json:"medium"`
	High   decimal.Decimal `json:"high"`
}

// RiskBands are the inclusive lower bounds of the MEDIUM, HIGH and CRITICAL levels.
// Scores below Medium are LOW.
type RiskBands struct {
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Level maps a clamped score to its band.
func (b RiskBands) Level(score int) RiskLevel {
	switch {
	case score >= b.Critical:
		return RiskLevelCritical
	case score >= b.High:
		return RiskLevelHigh
	case score >= b.Medium:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// RiskWeights holds the score contribution of every built-in factor.
type RiskWeights struct {
	SanctionsHit          int `json:"sanctions_hit"`
	PEPMatch              int `json:"pep_match"`
	HighRiskJurisdiction  int `json:"high_risk_jurisdiction"`
	MonitoredJurisdiction int `json:"monitored_jurisdiction"`
	CrossBorder           int `json:"cross_border"`
	LargeAmountHigh       int `json:"large_amount_high"`
	LargeAmountMedium     int `json:"large_amount_medium"`
	LargeAmountLow        int `json:"large_amount_low"`
	Structuring           int `json:"structuring"`
	NewAccountWeek        int `json:"new_account_week"`
	NewAccountWindow      int `json:"new_account_window"`
	IncompleteProfile     int `json:"incomplete_profile"`
	AdverseMedia          int `json:"adverse_media"`
	EvaluatorFailure      int `json:"evaluator_failure"`
}

func (w RiskWeights) firstNegative() (string, bool) {
	for _, f := range []struct {
		name   string
		weight int
	}{
		{"sanctions_hit", w.SanctionsHit},
		{"pep_match", w.PEPMatch},
		{"high_risk_jurisdiction", w.HighRiskJurisdiction},
		{"monitored_jurisdiction", w.MonitoredJurisdiction},
		{"cross_border", w.CrossBorder},
		{"large_amount_high", w.LargeAmountHigh},
		{"large_amount_medium", w.LargeAmountMedium},
		{"large_amount_low", w.LargeAmountLow},
		{"structuring", w.Structuring},
		{"new_account_week", w.NewAccountWeek},
		{"new_account_window", w.NewAccountWindow},
		{"incomplete_profile", w.IncompleteProfile},
		{"adverse_media", w.AdverseMedia},
		{"evaluator_failure", w.EvaluatorFailure},
	} {
		if f.weight < 0 {
			return f.name, true
		}
	}
	return "", false
}

// KeywordRule assigns a severity and weight to a word found in a transaction description.
type KeywordRule struct {
	Keyword  string   `json:"keyword" yaml:"keyword"`
	Severity Severity `json:"severity" yaml:"severity"`
	Weight   int      `json:"weight" yaml:"weight"`
}

// EngineConfig controls every tunable of the compliance engine. A config is
// treated as immutable once handed to the engine; hot swaps replace it whole.
type EngineConfig struct {
	SanctionsCheckEnabled        bool `json:"sanctions_check_enabled"`
	PEPCheckEnabled              bool `json:"pep_check_enabled"`
	AdverseMediaCheckEnabled     bool `json:"adverse_media_check_enabled"`
	TransactionMonitoringEnabled bool `json:"transaction_monitoring_enabled"`
	DocumentVerificationEnabled  bool `json:"document_verification_enabled"`

	HighRiskCountries  []string `json:"high_risk_countries"`
	MonitoredCountries []string `json:"monitored_countries"`

	TransactionThresholds  TransactionThresholds `json:"transaction_thresholds"`
	AutoApprovalThreshold  int                   `json:"auto_approval_threshold"`
	AutoRejectionThreshold int                   `json:"auto_rejection_threshold"`

	MatchScoreFloor     int     `json:"match_score_floor"`
	FuzzyMatchThreshold float64 `json:"fuzzy_match_threshold"`
	NameMatchThreshold  float64 `json:"name_match_threshold"`

	Bands    RiskBands     `json:"bands"`
	Weights  RiskWeights   `json:"weights"`
	Keywords []KeywordRule `json:"keywords"`

	NewAccountWeek   time.Duration `json:"new_account_week"`
	NewAccountWindow time.Duration `json:"new_account_window"`
	VendorTimeout    time.Duration `json:"vendor_timeout"`
}

// DefaultEngineConfig returns the stock configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SanctionsCheckEnabled:        true,
		PEPCheckEnabled:              true,
		AdverseMediaCheckEnabled:     true,
		TransactionMonitoringEnabled: true,
		DocumentVerificationEnabled:  true,

		HighRiskCountries:  []string{"KP", "IR", "SY"},
		MonitoredCountries: []string{},

		TransactionThresholds: TransactionThresholds{
			Low:    decimal.NewFromInt(10000),
			Medium: decimal.NewFromInt(50000),
			High:   decimal.NewFromInt(100000),
		},
		AutoApprovalThreshold:  30,
		AutoRejectionThreshold: 80,

		MatchScoreFloor:     70,
		FuzzyMatchThreshold: 0.8,
		NameMatchThreshold:  0.85,

		Bands: RiskBands{Medium: 30, High: 60, Critical: 80},
		Weights: RiskWeights{
			SanctionsHit:          100,
			PEPMatch:              30,
			HighRiskJurisdiction:  35,
			MonitoredJurisdiction: 15,
			CrossBorder:           5,
			LargeAmountHigh:       35,
			LargeAmountMedium:     20,
			LargeAmountLow:        10,
			Structuring:           10,
			NewAccountWeek:        20,
			NewAccountWindow:      15,
			IncompleteProfile:     10,
			AdverseMedia:          20,
			EvaluatorFailure:      0,
		},
		Keywords: []KeywordRule{
			{Keyword: "urgent", Severity: SeverityMedium, Weight: 10},
			{Keyword: "cash", Severity: SeverityMedium, Weight: 10},
			{Keyword: "offshore", Severity: SeverityHigh, Weight: 20},
			{Keyword: "secret", Severity: SeverityHigh, Weight: 15},
			{Keyword: "anonymous", Severity: SeverityHigh, Weight: 15},
			{Keyword: "bitcoin", Severity: SeverityMedium, Weight: 10},
			{Keyword: "crypto", Severity: SeverityMedium, Weight: 10},
		},

		NewAccountWeek:   7 * 24 * time.Hour,
		NewAccountWindow: 30 * 24 * time.Hour,
		VendorTimeout:    2 * time.Second,
	}
}

// Validate rejects configurations that would break score monotonicity or
// make the recommendation policy contradictory.
func (c EngineConfig) Validate() error {
	t := c.TransactionThresholds
	if !t.Low.IsPositive() || !t.Low.LessThan(t.Medium) || !t.Medium.LessThan(t.High) {
		return NewConfigurationError("validate", "transaction thresholds must satisfy 0 < low < medium < high", nil)
	}
	if c.AutoApprovalThreshold < 0 || c.AutoRejectionThreshold > 100 || c.AutoApprovalThreshold >= c.AutoRejectionThreshold {
		return NewConfigurationError("validate",
			fmt.Sprintf("auto thresholds must satisfy 0 <= approval (%d) < rejection (%d) <= 100",
				c.AutoApprovalThreshold, c.AutoRejectionThreshold), nil)
	}
	b := c.Bands
	if b.Medium <= 0 || b.Medium >= b.High || b.High >= b.Critical || b.Critical > 100 {
		return NewConfigurationError("validate", "risk bands must satisfy 0 < medium < high < critical <= 100", nil)
	}
	if c.AutoApprovalThreshold > b.Medium {
		return NewConfigurationError("validate",
			fmt.Sprintf("auto approval threshold (%d) must not exceed the medium band (%d)", c.AutoApprovalThreshold, b.Medium), nil)
	}
	if c.AutoRejectionThreshold < b.High {
		return NewConfigurationError("validate",
			fmt.Sprintf("auto rejection threshold (%d) must be at least the high band (%d)", c.AutoRejectionThreshold, b.High), nil)
	}
	if c.MatchScoreFloor < 0 || c.MatchScoreFloor > 100 {
		return NewConfigurationError("validate", "match score floor must be within [0, 100]", nil)
	}
	if c.FuzzyMatchThreshold <= 0 || c.FuzzyMatchThreshold > 1 {
		return NewConfigurationError("validate", "fuzzy match threshold must be within (0, 1]", nil)
	}
	if c.NameMatchThreshold <= 0 || c.NameMatchThreshold > 1 {
		return NewConfigurationError("validate", "name match threshold must be within (0, 1]", nil)
	}
	w := c.Weights
	if name, ok := w.firstNegative(); ok {
		return NewConfigurationError("validate", fmt.Sprintf("weight %s must not be negative", name), nil)
	}
	if w.Structuring > w.LargeAmountLow || w.LargeAmountLow > w.LargeAmountMedium || w.LargeAmountMedium > w.LargeAmountHigh {
		return NewConfigurationError("validate", "amount weights must satisfy structuring <= low <= medium <= high", nil)
	}
	for _, k := range c.Keywords {
		if k.Keyword == "" || k.Weight < 0 || k.Severity.Rank() == 0 {
			return NewConfigurationError("validate", fmt.Sprintf("invalid keyword rule %q", k.Keyword), nil)
		}
	}
	if c.NewAccountWeek <= 0 || c.NewAccountWeek > c.NewAccountWindow {
		return NewConfigurationError("validate", "new account windows must satisfy 0 < week <= window", nil)
	}
	if c.VendorTimeout <= 0 {
		return NewConfigurationError("validate", "vendor timeout must be positive", nil)
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a config the engine holds.
func (c EngineConfig) Clone() EngineConfig {
	out := c
	out.HighRiskCountries = append([]string(nil), c.HighRiskCountries...)
	out.MonitoredCountries = append([]string(nil), c.MonitoredCountries...)
	out.Keywords = append([]KeywordRule(nil), c.Keywords...)
	return out
}
