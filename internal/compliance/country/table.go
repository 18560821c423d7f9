// Package country classifies jurisdictions into risk tiers.
package country

import (
	"strings"

	pstrings "kycaml/pkg/platform/strings"
)

// Tier is the risk classification of a jurisdiction.
type Tier int

const (
	TierStandard Tier = iota
	TierMonitored
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMonitored:
		return "monitored"
	default:
		return "standard"
	}
}

// Table maps ISO-3166 alpha-2 codes to tiers. A Table is immutable after New.
type Table struct {
	tiers map[string]Tier
}

// New builds a table. A code listed as both high and monitored is high.
func New(high, monitored []string) *Table {
	t := &Table{tiers: make(map[string]Tier, len(high)+len(monitored))}
	for _, c := range pstrings.DedupeCodes(monitored) {
		t.tiers[c] = TierMonitored
	}
	for _, c := range pstrings.DedupeCodes(high) {
		t.tiers[c] = TierHigh
	}
	return t
}

// Tier returns the classification of code; unknown and empty codes are standard.
func (t *Table) Tier(code string) Tier {
	if t == nil {
		return TierStandard
	}
	return t.tiers[strings.ToUpper(strings.TrimSpace(code))]
}

// IsHighRisk reports whether code is in the high tier.
func (t *Table) IsHighRisk(code string) bool {
	return t.Tier(code) == TierHigh
}

// Len returns the number of classified jurisdictions.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.tiers)
}
