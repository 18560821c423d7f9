package sanctions

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"kycaml/internal/compliance/matcher"
	"kycaml/internal/compliance/models"
)

const (
	exactScore = 100
	aliasScore = 80
	fuzzyScale = 70
	dobBoost   = 20
	maxScore   = 100

	defaultMatchFloor     = 70
	defaultFuzzyThreshold = 0.8
)

// Source supplies the snapshot a checker screens against.
type Source interface {
	Snapshot() *Snapshot
}

// Checker screens names against every list in a snapshot.
type Checker struct {
	source         Source
	floor          int
	fuzzyThreshold float64
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithMatchFloor sets the score a match must exceed to be reported.
func WithMatchFloor(floor int) CheckerOption {
	return func(c *Checker) {
		c.floor = floor
	}
}

// WithFuzzyThreshold sets the similarity a fuzzy match must exceed.
func WithFuzzyThreshold(threshold float64) CheckerOption {
	return func(c *Checker) {
		if threshold > 0 {
			c.fuzzyThreshold = threshold
		}
	}
}

// NewChecker builds a checker reading from source. Pass a *Registry to always
// screen against the latest lists, or a *Snapshot to pin one version.
func NewChecker(source Source, opts ...CheckerOption) *Checker {
	c := &Checker{
		source:         source,
		floor:          defaultMatchFloor,
		fuzzyThreshold: defaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckCustomer screens a customer by name and date of birth. The result is
// unsorted; an empty result means no match.
func (c *Checker) CheckCustomer(customer models.Customer) ([]models.SanctionMatch, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return nil, models.NewSanctionsCheckError("check_customer", "customer name is required", nil)
	}
	return c.screen(customer.Name, strings.TrimSpace(customer.DateOfBirth)), nil
}

// CheckTransactionParty screens a counterparty by name only.
func (c *Checker) CheckTransactionParty(party models.TransactionParty) ([]models.SanctionMatch, error) {
	if strings.TrimSpace(party.Name) == "" {
		return nil, models.NewSanctionsCheckError("check_transaction_party", "party name is required", nil)
	}
	return c.screen(party.Name, ""), nil
}

func (c *Checker) screen(name, dob string) []models.SanctionMatch {
	snap := c.source.Snapshot()
	if snap == nil {
		return nil
	}
	subject := matcher.NewName(name)
	var matches []models.SanctionMatch
	for _, list := range snap.lists {
		for _, entity := range list.Entities {
			m, ok := c.matchEntity(subject, dob, entity)
			if !ok {
				continue
			}
			m.ListID = list.ID
			matches = append(matches, m)
		}
	}
	return matches
}

func (c *Checker) matchEntity(subject matcher.Name, dob string, entity models.SanctionedEntity) (models.SanctionMatch, bool) {
	var (
		score  int
		kind   models.MatchType
		fields []string
	)

	switch {
	case subject.Equal(entity.Name):
		score, kind = exactScore, models.MatchExact
		fields = append(fields, models.FieldName)
	case slices.ContainsFunc(entity.Aliases, subject.Contains):
		score, kind = aliasScore, models.MatchAlias
		fields = append(fields, models.FieldAlias)
	default:
		sim := subject.Similarity(entity.Name)
		if sim <= c.fuzzyThreshold {
			return models.SanctionMatch{}, false
		}
		score, kind = int(math.Round(sim*fuzzyScale)), models.MatchFuzzy
		fields = append(fields, models.FieldNameFuzzy)
	}

	if dob != "" && entity.DateOfBirth != "" && dob == entity.DateOfBirth {
		score = min(score+dobBoost, maxScore)
		fields = append(fields, models.FieldDateOfBirth)
	}

	if score <= c.floor {
		return models.SanctionMatch{}, false
	}
	return models.SanctionMatch{
		Entity:        entity,
		MatchScore:    score,
		MatchType:     kind,
		MatchedFields: fields,
	}, true
}

// SortMatches ranks matches by score descending, then list and entity name,
// then by the number of matched fields descending.
func SortMatches(matches []models.SanctionMatch) {
	slices.SortStableFunc(matches, func(a, b models.SanctionMatch) int {
		if c := cmp.Compare(b.MatchScore, a.MatchScore); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ListID, b.ListID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Entity.Name, b.Entity.Name); c != 0 {
			return c
		}
		return cmp.Compare(len(b.MatchedFields), len(a.MatchedFields))
	})
}
