package risk

import "kycaml/internal/compliance/models"

const (
	minScore = 0
	maxScore = 100
)

// Score is the aggregate of a factor set.
type Score struct {
	Value int
	Level models.RiskLevel
	Flags []models.Flag
}

// Aggregate sums factor weights, clamps to [0, 100], and bands the result.
// A CRITICAL sanctions factor forces the CRITICAL level regardless of score.
// Factors of MEDIUM severity or above are promoted to flags.
func Aggregate(factors []models.RiskFactor, bands models.RiskBands) Score {
	total := 0
	sanctionsHit := false
	flags := make([]models.Flag, 0, len(factors))
	for _, f := range factors {
		total += f.Weight
		if f.Category == models.CategorySanctions && f.Severity == models.SeverityCritical {
			sanctionsHit = true
		}
		if f.Severity.AtLeast(models.SeverityMedium) {
			flags = append(flags, models.Flag{
				Type:        f.Category,
				Severity:    f.Severity,
				Description: f.Description,
			})
		}
	}

	value := min(max(total, minScore), maxScore)
	level := bands.Level(value)
	if sanctionsHit {
		level = models.RiskLevelCritical
	}
	return Score{Value: value, Level: level, Flags: flags}
}
