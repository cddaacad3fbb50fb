package reconcile

import (
	"context"
	"math/big"

	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/contract"
	"github.com/fundflare/mirror/src/utils/model"
	monitor_mirror "github.com/fundflare/mirror/src/utils/monitoring/mirror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestSweeperTestSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}

type SweeperTestSuite struct {
	suite.Suite

	reader  *fakeReader
	store   *fakeStore
	monitor *monitor_mirror.Monitor

	sweeper *Sweeper
}

type fakeReader struct {
	states map[uint64]contract.CampaignState
	err    error
}

func (self *fakeReader) ReadCampaign(ctx context.Context, chainID uint64) (contract.CampaignState, error) {
	return self.states[chainID], self.err
}

func (self *fakeStore) ListChainLinked(ctx context.Context, limit int) (out []*model.Campaign, err error) {
	for _, c := range self.campaigns {
		if c.ChainID != nil {
			out = append(out, c)
		}
	}
	return
}

func (s *SweeperTestSuite) SetupTest() {
	s.reader = &fakeReader{states: make(map[uint64]contract.CampaignState)}
	s.store = newFakeStore()
	s.monitor = monitor_mirror.NewMonitor()

	s.sweeper = NewSweeper(config.Default(), s.reader, s.store).
		WithMonitor(s.monitor)
}

func (s *SweeperTestSuite) seedLinked(pledged string, status model.CampaignStatus) {
	chainID := uint64(7)
	s.store.campaigns["rec1"] = &model.Campaign{
		ID:      "rec1",
		ChainID: &chainID,
		Creator: creator,
		Goal:    "100",
		Pledged: pledged,
		Status:  status,
	}
}

func (s *SweeperTestSuite) chainState(pledged int64, claimed, calledOff bool) contract.CampaignState {
	return contract.CampaignState{
		Creator:   common.HexToAddress(creator),
		Goal:      big.NewInt(100),
		Pledged:   big.NewInt(pledged),
		Deadline:  big.NewInt(1700000000),
		Claimed:   claimed,
		CalledOff: calledOff,
	}
}

func (s *SweeperTestSuite) TestHealsStalePledged() {
	s.seedLinked("10", model.CampaignStatusOpen)
	s.reader.states[7] = s.chainState(60, false, false)

	s.sweeper.sweep()

	require.Equal(s.T(), "60", s.store.patchedPledged["rec1"])
	require.Empty(s.T(), s.store.patchedStatus)
	require.Equal(s.T(), int64(1), s.monitor.GetReport().Mirror.State.SweeperRowsHealed.Load())
}

func (s *SweeperTestSuite) TestHealsStaleStatus() {
	s.seedLinked("100", model.CampaignStatusOpen)
	s.reader.states[7] = s.chainState(100, true, false)

	s.sweeper.sweep()

	require.Equal(s.T(), model.CampaignStatusClaimed, s.store.patchedStatus["rec1"])
	require.Empty(s.T(), s.store.patchedPledged)
}

func (s *SweeperTestSuite) TestLeavesFreshRowsAlone() {
	s.seedLinked("100", model.CampaignStatusClaimed)
	s.reader.states[7] = s.chainState(100, true, false)

	s.sweeper.sweep()

	require.Empty(s.T(), s.store.patchedPledged)
	require.Empty(s.T(), s.store.patchedStatus)
	require.Equal(s.T(), int64(0), s.monitor.GetReport().Mirror.State.SweeperRowsHealed.Load())
}

func (s *SweeperTestSuite) TestCountsReadFailures() {
	s.seedLinked("10", model.CampaignStatusOpen)
	s.reader.err = context.DeadlineExceeded

	s.sweeper.sweep()

	require.Equal(s.T(), uint64(1), s.monitor.GetReport().Mirror.Errors.SweeperFailures.Load())
	require.Empty(s.T(), s.store.patchedPledged)
}

func (s *SweeperTestSuite) TestChainStatusFolding() {
	require.Equal(s.T(), model.CampaignStatusOpen, chainStatus(s.chainState(0, false, false)))
	require.Equal(s.T(), model.CampaignStatusClaimed, chainStatus(s.chainState(0, true, false)))
	require.Equal(s.T(), model.CampaignStatusCalledOff, chainStatus(s.chainState(0, false, true)))
}
