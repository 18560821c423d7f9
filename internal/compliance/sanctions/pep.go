package sanctions

import (
	"math"
	"slices"
	"strings"
	"sync/atomic"

	"kycaml/internal/compliance/matcher"
	"kycaml/internal/compliance/models"
)

// PEPRegistry holds politically exposed persons. It is swapped whole, like Registry.
type PEPRegistry struct {
	entries atomic.Pointer[[]models.PEPEntry]
}

// NewPEPRegistry builds a registry from entries.
func NewPEPRegistry(entries ...models.PEPEntry) *PEPRegistry {
	r := &PEPRegistry{}
	r.Replace(entries)
	return r
}

// Replace swaps the full entry set.
func (r *PEPRegistry) Replace(entries []models.PEPEntry) {
	cp := slices.Clone(entries)
	r.entries.Store(&cp)
}

// Len returns the number of entries.
func (r *PEPRegistry) Len() int {
	return len(*r.entries.Load())
}

// Screen matches a customer against PEP entries. Exact name or alias hits
// always match; otherwise the similarity must exceed threshold.
// A matching date of birth is required when both sides carry one.
func (r *PEPRegistry) Screen(customer models.Customer, threshold float64) []models.PEPMatch {
	if r == nil || strings.TrimSpace(customer.Name) == "" {
		return nil
	}
	subject := matcher.NewName(customer.Name)
	var out []models.PEPMatch
	for _, e := range *r.entries.Load() {
		if customer.DateOfBirth != "" && e.DateOfBirth != "" && customer.DateOfBirth != e.DateOfBirth {
			continue
		}
		var score int
		switch {
		case subject.Equal(e.Name):
			score = exactScore
		case slices.ContainsFunc(e.Aliases, subject.Equal):
			score = aliasScore
		default:
			sim := subject.Similarity(e.Name)
			if sim <= threshold {
				continue
			}
			score = int(math.Round(sim * 100))
		}
		out = append(out, models.PEPMatch{Entry: e, MatchScore: score})
	}
	return out
}
