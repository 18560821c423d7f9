//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/store"
	"kycaml/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "compliance_assessments", "compliance_transactions")
	s.Require().NoError(err)
}

func newAssessment(at time.Time, flags ...models.Flag) models.RiskAssessment {
	return models.RiskAssessment{
		ID:             uuid.NewString(),
		TransactionID:  "tx-" + uuid.NewString(),
		CustomerID:     "cust-1",
		RiskLevel:      models.RiskLevelHigh,
		RiskScore:      65,
		Factors:        []models.RiskFactor{{Type: "high_risk_jurisdiction", Category: models.CategoryJurisdiction, Severity: models.SeverityHigh, Weight: 35, Description: "KP"}},
		Flags:          flags,
		Recommendation: models.RecommendationFlagged,
		PolicyRule:     "flag_review",
		InputDigest:    "abc123",
		AssessedAt:     at,
		AssessedBy:     "system",
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	in := newAssessment(at, models.Flag{Type: models.CategoryJurisdiction, Severity: models.SeverityHigh, Description: "KP"})

	recorded, err := s.store.RecordAssessment(ctx, in)
	s.Require().NoError(err)
	s.Equal(int64(1), recorded.Sequence)

	all, err := s.store.AllAssessments(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(recorded, all[0])
}

func (s *PostgresStoreSuite) TestSequenceAndRange() {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, time.Hour, 48 * time.Hour} {
		_, err := s.store.RecordAssessment(ctx, newAssessment(base.Add(offset)))
		s.Require().NoError(err)
	}

	got, err := s.store.ListAssessments(ctx, base, base.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Less(got[0].Sequence, got[1].Sequence)
	s.Empty(got[0].Flags)
}

func (s *PostgresStoreSuite) TestDuplicateIDRejected() {
	ctx := context.Background()
	a := newAssessment(time.Now().UTC().Truncate(time.Second))
	_, err := s.store.RecordAssessment(ctx, a)
	s.Require().NoError(err)
	_, err = s.store.RecordAssessment(ctx, a)
	s.Error(err)
}

func (s *PostgresStoreSuite) TestAssessmentsWithFlag() {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.store.RecordAssessment(ctx, newAssessment(at, models.Flag{Type: models.CategorySanctions, Severity: models.SeverityCritical}))
	s.Require().NoError(err)
	_, err = s.store.RecordAssessment(ctx, newAssessment(at))
	s.Require().NoError(err)

	got, err := s.store.AssessmentsWithFlag(ctx, models.CategorySanctions)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.True(got[0].HasFlagType(models.CategorySanctions))
}

func (s *PostgresStoreSuite) TestTransactions() {
	ctx := context.Background()
	tx := models.Transaction{
		ID:         "tx-1",
		CustomerID: "cust-1",
		Amount:     decimal.RequireFromString("15000.50"),
		Currency:   "USD",
		Sender:     models.TransactionParty{Name: "John Smith", AccountID: "acc-1", Country: "US"},
		Receiver:   models.TransactionParty{Name: "Jane Doe", AccountID: "acc-2", Country: "GB"},
		Timestamp:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Type:       models.TransactionTransfer,
	}
	s.Require().NoError(s.store.RecordTransaction(ctx, tx))

	got, err := s.store.ListTransactions(ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.True(tx.Amount.Equal(got[0].Amount))
	s.Equal(tx.Sender, got[0].Sender)
	s.Equal(tx.Receiver, got[0].Receiver)
	s.Equal(tx.Timestamp, got[0].Timestamp)
	s.Equal(tx.Type, got[0].Type)
}

func (s *PostgresStoreSuite) TestRunInTx() {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	s.Run("commits every write", func() {
		err := s.store.RunInTx(ctx, func(ctx context.Context) error {
			_, err := s.store.RecordAssessment(ctx, newAssessment(at))
			return err
		})
		s.Require().NoError(err)
		all, err := s.store.AllAssessments(ctx)
		s.Require().NoError(err)
		s.Len(all, 1)
	})

	s.Run("rolls back on error", func() {
		err := s.store.RunInTx(ctx, func(ctx context.Context) error {
			if _, err := s.store.RecordAssessment(ctx, newAssessment(at)); err != nil {
				return err
			}
			return errors.New("audit store down")
		})
		s.Require().Error(err)
		all, err := s.store.AllAssessments(ctx)
		s.Require().NoError(err)
		s.Len(all, 1, "the failed unit left no assessment behind")
	})
}
