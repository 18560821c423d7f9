package sanctions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycaml/internal/compliance/models"
)

// =============================================================================
// Sanctions Checker Test Suite
// =============================================================================
// Justification for unit tests: match scoring is pure and table-driven; the
// score ladder (exact, alias, fuzzy, date-of-birth boost, floor) is the
// contract downstream evaluators rely on.

type CheckerSuite struct {
	suite.Suite
	registry *Registry
	checker  *Checker
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func (s *CheckerSuite) SetupTest() {
	reg, err := NewRegistry(DefaultList(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	s.registry = reg
	s.checker = NewChecker(reg)
}

func customer(name, dob string) models.Customer {
	return models.Customer{ID: "cust-1", Name: name, DateOfBirth: dob}
}

// =============================================================================
// Customer Screening
// =============================================================================

func (s *CheckerSuite) TestCheckCustomer() {
	s.Run("exact name with matching date of birth caps at 100", func() {
		matches, err := s.checker.CheckCustomer(customer("John Restricted", "1970-01-01"))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(100, matches[0].MatchScore)
		s.Equal(models.MatchExact, matches[0].MatchType)
		s.Equal([]string{models.FieldName, models.FieldDateOfBirth}, matches[0].MatchedFields)
		s.Equal(DefaultListID, matches[0].ListID)
	})

	s.Run("exact name is case insensitive", func() {
		matches, err := s.checker.CheckCustomer(customer("JOHN restricted", ""))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(100, matches[0].MatchScore)
		s.Equal([]string{models.FieldName}, matches[0].MatchedFields)
	})

	s.Run("different date of birth does not boost", func() {
		matches, err := s.checker.CheckCustomer(customer("John Restricted", "1980-05-05"))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal([]string{models.FieldName}, matches[0].MatchedFields)
	})

	s.Run("alias scores 80", func() {
		matches, err := s.checker.CheckCustomer(customer("REA", ""))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(80, matches[0].MatchScore)
		s.Equal(models.MatchAlias, matches[0].MatchType)
		s.Equal("Restricted Entity Alpha", matches[0].Entity.Name)
	})

	s.Run("alias contained in a longer name matches", func() {
		matches, err := s.checker.CheckCustomer(customer("Entity A Holdings", ""))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(models.MatchAlias, matches[0].MatchType)
	})

	s.Run("alias inside another word still matches", func() {
		matches, err := s.checker.CheckCustomer(customer("Andrea Smith", ""))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(80, matches[0].MatchScore)
		s.Equal(models.MatchAlias, matches[0].MatchType)
		s.Equal("Restricted Entity Alpha", matches[0].Entity.Name)
	})

	s.Run("alias prefix of a longer word matches", func() {
		matches, err := s.checker.CheckCustomer(customer("Entity Alpha Holdings", ""))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(80, matches[0].MatchScore)
		s.Equal(models.MatchAlias, matches[0].MatchType)
	})

	s.Run("fuzzy alone stays under the floor", func() {
		// one edit over 15 runes: round(0.9333 * 70) = 65
		matches, err := s.checker.CheckCustomer(customer("Jon Restricted", ""))
		s.Require().NoError(err)
		s.Empty(matches)
	})

	s.Run("fuzzy with matching date of birth clears the floor", func() {
		matches, err := s.checker.CheckCustomer(customer("Jon Restricted", "1970-01-01"))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(85, matches[0].MatchScore)
		s.Equal(models.MatchFuzzy, matches[0].MatchType)
		s.Equal([]string{models.FieldNameFuzzy, models.FieldDateOfBirth}, matches[0].MatchedFields)
	})

	s.Run("unrelated name yields empty result", func() {
		matches, err := s.checker.CheckCustomer(customer("John Doe", "1985-03-12"))
		s.Require().NoError(err)
		s.Empty(matches)
	})

	s.Run("empty name fails with sanctions check error", func() {
		_, err := s.checker.CheckCustomer(customer("  ", ""))
		s.Require().Error(err)
		s.True(models.IsKind(err, models.KindSanctionsCheck))
	})
}

func (s *CheckerSuite) TestCheckTransactionParty() {
	s.Run("party is screened by name only", func() {
		matches, err := s.checker.CheckTransactionParty(models.TransactionParty{Name: "Restricted Entity Alpha", AccountID: "acc-1"})
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(100, matches[0].MatchScore)
	})

	s.Run("empty party name fails", func() {
		_, err := s.checker.CheckTransactionParty(models.TransactionParty{AccountID: "acc-1"})
		s.True(models.IsKind(err, models.KindSanctionsCheck))
	})
}

// =============================================================================
// Options and Snapshot Pinning
// =============================================================================

func (s *CheckerSuite) TestOptions() {
	s.Run("lower floor surfaces weaker fuzzy matches", func() {
		c := NewChecker(s.registry, WithMatchFloor(60))
		matches, err := c.CheckCustomer(customer("Jon Restricted", ""))
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(65, matches[0].MatchScore)
	})

	s.Run("stricter fuzzy threshold drops near misses", func() {
		c := NewChecker(s.registry, WithFuzzyThreshold(0.95))
		matches, err := c.CheckCustomer(customer("Jon Restricted", "1970-01-01"))
		s.Require().NoError(err)
		s.Empty(matches)
	})
}

func (s *CheckerSuite) TestSnapshotPinning() {
	pinned := NewChecker(s.registry.Snapshot())
	live := NewChecker(s.registry)

	_, err := s.registry.Add(models.SanctionsList{
		ID:     "eu",
		Source: "EU",
		Entities: []models.SanctionedEntity{
			{Name: "Acme Shell Corp", Type: models.EntityOrganization, SanctionType: "Trade embargo"},
		},
	})
	s.Require().NoError(err)

	party := models.TransactionParty{Name: "Acme Shell Corp"}

	pinnedMatches, err := pinned.CheckTransactionParty(party)
	s.Require().NoError(err)
	s.Empty(pinnedMatches)

	liveMatches, err := live.CheckTransactionParty(party)
	s.Require().NoError(err)
	s.Require().Len(liveMatches, 1)
	s.Equal("eu", liveMatches[0].ListID)
}

func (s *CheckerSuite) TestMultipleListsReturnEveryMatch() {
	_, err := s.registry.Add(models.SanctionsList{
		ID:     "un",
		Source: "UN",
		Entities: []models.SanctionedEntity{
			{Name: "John Restricted", Type: models.EntityIndividual, SanctionType: "Travel ban"},
		},
	})
	s.Require().NoError(err)

	matches, err := s.checker.CheckCustomer(customer("John Restricted", "1970-01-01"))
	s.Require().NoError(err)
	s.Require().Len(matches, 2)

	SortMatches(matches)
	s.Equal(DefaultListID, matches[0].ListID)
	s.Equal(100, matches[0].MatchScore)
	s.Equal("un", matches[1].ListID)
}

func (s *CheckerSuite) TestPEPScreen() {
	reg := NewPEPRegistry(
		models.PEPEntry{Name: "Maria Minister", Aliases: []string{"M. Minister"}, Position: "Minister of Finance", Country: "ZZ", DateOfBirth: "1960-02-02"},
	)
	s.Equal(1, reg.Len())

	s.Run("exact name matches", func() {
		hits := reg.Screen(customer("Maria Minister", ""), 0.85)
		s.Require().Len(hits, 1)
		s.Equal(100, hits[0].MatchScore)
	})

	s.Run("alias matches", func() {
		hits := reg.Screen(customer("M Minister", ""), 0.85)
		s.Require().Len(hits, 1)
		s.Equal(80, hits[0].MatchScore)
	})

	s.Run("conflicting date of birth excludes entry", func() {
		s.Empty(reg.Screen(customer("Maria Minister", "1990-01-01"), 0.85))
	})

	s.Run("unrelated customer has no hits", func() {
		s.Empty(reg.Screen(customer("John Doe", ""), 0.85))
	})
}
