//go:build integration

package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/sanctions"
	"kycaml/internal/compliance/sanctions/snapshot"
	"kycaml/pkg/testutil/containers"
)

type RedisSnapshotSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *snapshot.RedisStore
}

func TestRedisSnapshotSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSnapshotSuite))
}

func (s *RedisSnapshotSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = snapshot.NewRedis(s.redis.Client)
}

func (s *RedisSnapshotSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSnapshotSuite) TestEmptyStoreLoadsNothing() {
	lists, err := s.store.LoadLists(context.Background())
	s.Require().NoError(err)
	s.Empty(lists)

	rev, err := s.store.Revision(context.Background())
	s.Require().NoError(err)
	s.Zero(rev)
}

func (s *RedisSnapshotSuite) TestRoundTripRestoresRegistry() {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	reg, err := sanctions.NewRegistry(sanctions.DefaultList(now))
	s.Require().NoError(err)
	_, err = reg.Add(models.SanctionsList{
		ID:       "uk",
		Source:   "HM Treasury",
		Entities: []models.SanctionedEntity{{Name: "Shadow Holdings Ltd", Type: models.EntityOrganization}},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.store.SaveLists(ctx, reg.Snapshot().Lists()))

	loaded, err := s.store.LoadLists(ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 2)
	s.Equal(sanctions.DefaultListID, loaded[0].ID)
	s.Equal("uk", loaded[1].ID)
	s.True(loaded[0].LastUpdated.Equal(now))

	restored, err := sanctions.NewRegistry(loaded...)
	s.Require().NoError(err)
	matches, err := sanctions.NewChecker(restored).CheckTransactionParty(models.TransactionParty{Name: "Shadow Holdings Ltd"})
	s.Require().NoError(err)
	s.Len(matches, 1)
}

func (s *RedisSnapshotSuite) TestSaveDropsRemovedLists() {
	ctx := context.Background()
	s.Require().NoError(s.store.SaveLists(ctx, []models.SanctionsList{
		{ID: "a", Source: "A"},
		{ID: "b", Source: "B"},
	}))
	s.Require().NoError(s.store.SaveLists(ctx, []models.SanctionsList{
		{ID: "b", Source: "B", Version: 2},
	}))

	loaded, err := s.store.LoadLists(ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal("b", loaded[0].ID)
	s.Equal(2, loaded[0].Version)

	rev, err := s.store.Revision(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), rev)
}
