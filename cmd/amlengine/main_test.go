package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycaml/internal/compliance/engine"
	"kycaml/internal/compliance/models"
	"kycaml/internal/compliance/ports/mocks"
	"kycaml/internal/compliance/sanctions"
	"kycaml/internal/platform/config"
)

// =============================================================================
// Sanctions Seeding Test Suite
// =============================================================================
// Justification for unit tests: startup picks between the Redis snapshot, the
// feed file and the built-in list. PEP screening depends on the feed being
// read on every path, which no handler or engine test exercises.

const seedFeed = `
lists:
  - id: uk
    source: HM Treasury
    version: 3
    last_updated: 2024-02-01T00:00:00Z
    entities:
      - name: Shadow Holdings Ltd
        type: organization
        sanction_type: Asset freeze
        added_date: 2023-11-01T00:00:00Z
peps:
  - name: Maria Minister
    position: Minister of Finance
    country: ZZ
`

type SeedSanctionsSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	snapshots *mocks.MockSanctionsSnapshotStore
	registry  *sanctions.Registry
	peps      *sanctions.PEPRegistry
	eng       *engine.Engine
	feedPath  string
	log       *slog.Logger
}

func TestSeedSanctionsSuite(t *testing.T) {
	suite.Run(t, new(SeedSanctionsSuite))
}

func (s *SeedSanctionsSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.snapshots = mocks.NewMockSanctionsSnapshotStore(s.ctrl)

	registry, err := sanctions.NewRegistry()
	s.Require().NoError(err)
	s.registry = registry
	s.peps = sanctions.NewPEPRegistry()

	eng, err := engine.New(s.registry, models.DefaultEngineConfig(),
		engine.WithSnapshotStore(s.snapshots),
		engine.WithPEPRegistry(s.peps),
	)
	s.Require().NoError(err)
	s.eng = eng

	s.feedPath = filepath.Join(s.T().TempDir(), "feed.yaml")
	s.Require().NoError(os.WriteFile(s.feedPath, []byte(seedFeed), 0o600))
	s.log = slog.New(slog.DiscardHandler)
}

func (s *SeedSanctionsSuite) TestRestoredSnapshotStillLoadsPEPs() {
	persisted := sanctions.DefaultList(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.snapshots.EXPECT().LoadLists(gomock.Any()).Return([]models.SanctionsList{persisted}, nil)

	err := seedSanctions(context.Background(), s.eng, s.registry, s.peps, config.SanctionsConfig{FeedFile: s.feedPath}, s.log)
	s.Require().NoError(err)

	s.Equal(1, s.peps.Len())
	lists := s.registry.Snapshot().Lists()
	s.Require().Len(lists, 1)
	s.Equal(sanctions.DefaultListID, lists[0].ID, "snapshot lists win over feed lists")
}

func (s *SeedSanctionsSuite) TestEmptySnapshotSeedsFromFeed() {
	s.snapshots.EXPECT().LoadLists(gomock.Any()).Return(nil, nil)
	s.snapshots.EXPECT().SaveLists(gomock.Any(), gomock.Any()).Return(nil)

	err := seedSanctions(context.Background(), s.eng, s.registry, s.peps, config.SanctionsConfig{FeedFile: s.feedPath}, s.log)
	s.Require().NoError(err)

	s.Equal(1, s.peps.Len())
	_, err = s.registry.Get("uk")
	s.NoError(err)
}

func (s *SeedSanctionsSuite) TestNoFeedFallsBackToDefaultList() {
	s.snapshots.EXPECT().LoadLists(gomock.Any()).Return(nil, nil)
	s.snapshots.EXPECT().SaveLists(gomock.Any(), gomock.Any()).Return(nil)

	err := seedSanctions(context.Background(), s.eng, s.registry, s.peps, config.SanctionsConfig{}, s.log)
	s.Require().NoError(err)

	s.Zero(s.peps.Len())
	_, err = s.registry.Get(sanctions.DefaultListID)
	s.NoError(err)
}

func (s *SeedSanctionsSuite) TestUnreadableFeedFailsStartup() {
	err := seedSanctions(context.Background(), s.eng, s.registry, s.peps,
		config.SanctionsConfig{FeedFile: filepath.Join(s.T().TempDir(), "missing.yaml")}, s.log)
	s.Require().Error(err)
	s.Contains(err.Error(), "load sanctions feed")
}
