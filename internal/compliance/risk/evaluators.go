package risk

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"kycaml/internal/compliance/country"
	"kycaml/internal/compliance/matcher"
	"kycaml/internal/compliance/models"
)

// Factor types emitted by the built-in evaluators.
const (
	TypeSanctionsHit          = "sanctions_hit"
	TypePEPMatch              = "pep_match"
	TypeAdverseMedia          = "adverse_media"
	TypeHighRiskJurisdiction  = "high_risk_jurisdiction"
	TypeMonitoredJurisdiction = "monitored_jurisdiction"
	TypeCrossBorder           = "cross_border"
	TypeLargeAmount           = "large_amount"
	TypeStructuring           = "structuring"
	TypeNewAccount            = "new_account"
	TypeIncompleteProfile     = "incomplete_profile"
	TypeSuspiciousKeyword     = "suspicious_keyword"
	TypeEvaluatorFailure      = "evaluator_failure"
)

var structuringRatio = decimal.NewFromFloat(0.9)

// DefaultEvaluators returns the built-in evaluators in registration order.
func DefaultEvaluators() []Evaluator {
	return []Evaluator{
		Func(TypeSanctionsHit, evaluateSanctions),
		Func(TypePEPMatch, evaluatePEP),
		Func(TypeAdverseMedia, evaluateAdverseMedia),
		Func("jurisdiction", evaluateJurisdiction),
		Func(TypeCrossBorder, evaluateCrossBorder),
		Func(TypeLargeAmount, evaluateLargeAmount),
		Func(TypeStructuring, evaluateStructuring),
		Func(TypeNewAccount, evaluateNewAccount),
		Func(TypeIncompleteProfile, evaluateIncompleteProfile),
		Func(TypeSuspiciousKeyword, evaluateKeywords),
	}
}

func evaluateSanctions(in Input) ([]models.RiskFactor, error) {
	if len(in.SanctionMatches) == 0 {
		return nil, nil
	}
	best := slices.MaxFunc(in.SanctionMatches, func(a, b models.SanctionMatch) int {
		return a.MatchScore - b.MatchScore
	})
	return []models.RiskFactor{{
		Type:     TypeSanctionsHit,
		Category: models.CategorySanctions,
		Severity: models.SeverityCritical,
		Weight:   in.Config.Weights.SanctionsHit,
		Description: fmt.Sprintf("%d sanctions match(es); best: %s on list %s (%s, score %d)",
			len(in.SanctionMatches), best.Entity.Name, best.ListID, best.MatchType, best.MatchScore),
	}}, nil
}

func evaluatePEP(in Input) ([]models.RiskFactor, error) {
	if !in.Config.PEPCheckEnabled || len(in.PEPMatches) == 0 {
		return nil, nil
	}
	m := in.PEPMatches[0]
	return []models.RiskFactor{{
		Type:        TypePEPMatch,
		Category:    models.CategoryPEP,
		Severity:    models.SeverityHigh,
		Weight:      in.Config.Weights.PEPMatch,
		Description: fmt.Sprintf("Politically exposed person: %s, %s (%s)", m.Entry.Name, m.Entry.Position, m.Entry.Country),
	}}, nil
}

func evaluateAdverseMedia(in Input) ([]models.RiskFactor, error) {
	if !in.Config.AdverseMediaCheckEnabled || len(in.ScreeningHits) == 0 {
		return nil, nil
	}
	severity := models.SeverityMedium
	for _, h := range in.ScreeningHits {
		if h.Severity.Rank() > severity.Rank() {
			severity = h.Severity
		}
	}
	return []models.RiskFactor{{
		Type:        TypeAdverseMedia,
		Category:    models.CategoryScreening,
		Severity:    severity,
		Weight:      in.Config.Weights.AdverseMedia,
		Description: fmt.Sprintf("%d adverse media hit(s); first: %s", len(in.ScreeningHits), in.ScreeningHits[0].Headline),
	}}, nil
}

// senderCountry falls back to the customer's residence when the party carries no country.
func senderCountry(in Input) string {
	if c := strings.TrimSpace(in.Transaction.Sender.Country); c != "" {
		return strings.ToUpper(c)
	}
	return in.Customer.ResidenceCountry()
}

func receiverCountry(in Input) string {
	return strings.ToUpper(strings.TrimSpace(in.Transaction.Receiver.Country))
}

func evaluateJurisdiction(in Input) ([]models.RiskFactor, error) {
	var out []models.RiskFactor
	parties := []struct{ role, code string }{
		{"sender", senderCountry(in)},
		{"receiver", receiverCountry(in)},
	}
	for _, p := range parties {
		switch in.Countries.Tier(p.code) {
		case country.TierHigh:
			out = append(out, models.RiskFactor{
				Type:        TypeHighRiskJurisdiction,
				Category:    models.CategoryJurisdiction,
				Severity:    models.SeverityHigh,
				Weight:      in.Config.Weights.HighRiskJurisdiction,
				Description: fmt.Sprintf("High-risk jurisdiction for %s: %s", p.role, p.code),
			})
		case country.TierMonitored:
			out = append(out, models.RiskFactor{
				Type:        TypeMonitoredJurisdiction,
				Category:    models.CategoryJurisdiction,
				Severity:    models.SeverityMedium,
				Weight:      in.Config.Weights.MonitoredJurisdiction,
				Description: fmt.Sprintf("Monitored jurisdiction for %s: %s", p.role, p.code),
			})
		}
	}
	return out, nil
}

func evaluateCrossBorder(in Input) ([]models.RiskFactor, error) {
	from, to := senderCountry(in), receiverCountry(in)
	if from == "" || to == "" || from == to {
		return nil, nil
	}
	return []models.RiskFactor{{
		Type:        TypeCrossBorder,
		Category:    models.CategoryTransactionMonitoring,
		Severity:    models.SeverityLow,
		Weight:      in.Config.Weights.CrossBorder,
		Description: fmt.Sprintf("Cross-border transaction: %s to %s", from, to),
	}}, nil
}

func evaluateLargeAmount(in Input) ([]models.RiskFactor, error) {
	if !in.Config.TransactionMonitoringEnabled {
		return nil, nil
	}
	amount, t, w := in.Transaction.Amount, in.Config.TransactionThresholds, in.Config.Weights

	var (
		severity  models.Severity
		weight    int
		threshold decimal.Decimal
	)
	switch {
	case amount.GreaterThanOrEqual(t.High):
		severity, weight, threshold = models.SeverityHigh, w.LargeAmountHigh, t.High
	case amount.GreaterThanOrEqual(t.Medium):
		severity, weight, threshold = models.SeverityMedium, w.LargeAmountMedium, t.Medium
	case amount.GreaterThanOrEqual(t.Low):
		severity, weight, threshold = models.SeverityLow, w.LargeAmountLow, t.Low
	default:
		return nil, nil
	}
	return []models.RiskFactor{{
		Type:     TypeLargeAmount,
		Category: models.CategoryTransactionMonitoring,
		Severity: severity,
		Weight:   weight,
		Description: fmt.Sprintf("Amount %s %s meets the %s threshold",
			amount.StringFixed(2), in.Transaction.Currency, threshold.String()),
	}}, nil
}

// evaluateStructuring flags amounts just under the reporting threshold.
func evaluateStructuring(in Input) ([]models.RiskFactor, error) {
	if !in.Config.TransactionMonitoringEnabled {
		return nil, nil
	}
	amount, low := in.Transaction.Amount, in.Config.TransactionThresholds.Low
	floor := low.Mul(structuringRatio)
	if amount.LessThan(floor) || amount.GreaterThanOrEqual(low) {
		return nil, nil
	}
	return []models.RiskFactor{{
		Type:        TypeStructuring,
		Category:    models.CategoryTransactionMonitoring,
		Severity:    models.SeverityMedium,
		Weight:      in.Config.Weights.Structuring,
		Description: fmt.Sprintf("Amount %s is just below the %s reporting threshold", amount.StringFixed(2), low.String()),
	}}, nil
}

func evaluateNewAccount(in Input) ([]models.RiskFactor, error) {
	created := in.Customer.AccountCreatedAt
	if created.IsZero() {
		return nil, nil
	}
	age := in.AssessedAt.Sub(created)
	var weight int
	switch {
	case age < in.Config.NewAccountWeek:
		weight = in.Config.Weights.NewAccountWeek
	case age < in.Config.NewAccountWindow:
		weight = in.Config.Weights.NewAccountWindow
	default:
		return nil, nil
	}
	days := max(int(age.Hours()/24), 0)
	return []models.RiskFactor{{
		Type:        TypeNewAccount,
		Category:    models.CategoryCustomerProfile,
		Severity:    models.SeverityMedium,
		Weight:      weight,
		Description: fmt.Sprintf("Account opened %d day(s) before assessment", days),
	}}, nil
}

func evaluateIncompleteProfile(in Input) ([]models.RiskFactor, error) {
	if in.Customer.HasCompleteProfile() {
		return nil, nil
	}
	var missing []string
	if in.Customer.Address == nil {
		missing = append(missing, "address")
	}
	if in.Customer.Identification == nil {
		missing = append(missing, "identification")
	}
	return []models.RiskFactor{{
		Type:        TypeIncompleteProfile,
		Category:    models.CategoryCustomerProfile,
		Severity:    models.SeverityMedium,
		Weight:      in.Config.Weights.IncompleteProfile,
		Description: "Customer profile missing " + strings.Join(missing, " and "),
	}}, nil
}

func evaluateKeywords(in Input) ([]models.RiskFactor, error) {
	if !in.Config.TransactionMonitoringEnabled {
		return nil, nil
	}
	text := in.Transaction.Description
	if matcher.Normalize(text) == "" {
		return nil, nil
	}
	var out []models.RiskFactor
	for _, k := range in.Config.Keywords {
		if !matcher.ContainsWord(text, k.Keyword) {
			continue
		}
		out = append(out, models.RiskFactor{
			Type:        TypeSuspiciousKeyword,
			Category:    models.CategoryTransactionMonitoring,
			Severity:    k.Severity,
			Weight:      k.Weight,
			Description: fmt.Sprintf("Suspicious keyword in description: %q", k.Keyword),
		})
	}
	return out, nil
}
