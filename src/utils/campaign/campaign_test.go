package campaign

import (
	"math/big"

	"github.com/fundflare/mirror/src/utils/model"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

const (
	creator  = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	stranger = "0x00000000000000000000000000000000DeaDBeef"
)

func TestCampaignTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignTestSuite))
}

type CampaignTestSuite struct {
	suite.Suite
}

func testCampaign(goal, pledged string, status model.CampaignStatus) *model.Campaign {
	return &model.Campaign{
		ID:      "rec1",
		Creator: creator,
		Goal:    goal,
		Pledged: pledged,
		Status:  status,
	}
}

func (s *CampaignTestSuite) TestProgressZeroGoal() {
	require.Equal(s.T(), 0, ProgressPercentage(big.NewInt(100), big.NewInt(0)))
	require.Equal(s.T(), 0, ProgressPercentage(big.NewInt(100), nil))
}

func (s *CampaignTestSuite) TestProgressCappedAtHundred() {
	require.Equal(s.T(), 100, ProgressPercentage(big.NewInt(250), big.NewInt(100)))
}

func (s *CampaignTestSuite) TestProgressExact() {
	require.Equal(s.T(), 50, ProgressPercentage(big.NewInt(50), big.NewInt(100)))
	require.Equal(s.T(), 100, ProgressPercentage(big.NewInt(100), big.NewInt(100)))
	require.Equal(s.T(), 0, ProgressPercentage(big.NewInt(0), big.NewInt(100)))
}

func (s *CampaignTestSuite) TestProgressTruncates() {
	// 1/3 is 33.33..., integer arithmetic truncates
	require.Equal(s.T(), 33, ProgressPercentage(big.NewInt(1), big.NewInt(3)))
}

func (s *CampaignTestSuite) TestProgressBigAmounts() {
	pledged, _ := new(big.Int).SetString("5000000000000000000", 10)
	goal, _ := new(big.Int).SetString("10000000000000000000", 10)
	require.Equal(s.T(), 50, ProgressPercentage(pledged, goal))
}

func (s *CampaignTestSuite) TestDaysRemaining() {
	require.Equal(s.T(), int64(3), DaysRemaining(4*86400, 86400))
	require.Equal(s.T(), int64(0), DaysRemaining(100, 100))
	require.Equal(s.T(), int64(0), DaysRemaining(100, 200))
	// Partial days round down
	require.Equal(s.T(), int64(0), DaysRemaining(86399, 0))
}

// Every combination of (is creator) x (is open) x (goal met)
func (s *CampaignTestSuite) TestEligibilityTruthTable() {
	for _, caller := range []string{creator, stranger} {
		for _, status := range []model.CampaignStatus{model.CampaignStatusOpen, model.CampaignStatusClaimed} {
			for _, pledged := range []string{"100", "50"} {
				c := testCampaign("100", pledged, status)
				isCreator := caller == creator
				isOpen := status == model.CampaignStatusOpen
				goalMet := pledged == "100"

				require.Equal(s.T(), isCreator && isOpen && goalMet, CanClaim(c, caller))
				require.Equal(s.T(), isCreator && isOpen && !goalMet, CanCallOff(c, caller))

				// The two actions are always mutually exclusive
				require.False(s.T(), CanClaim(c, caller) && CanCallOff(c, caller))
			}
		}
	}
}

func (s *CampaignTestSuite) TestCreatorComparisonIgnoresCase() {
	c := testCampaign("100", "100", model.CampaignStatusOpen)
	require.True(s.T(), CanClaim(c, "0xAB5801A7D398351B8BE11C439E05C5B3259AEC9B"))
	require.True(s.T(), CanClaim(c, "0xab5801a7d398351b8be11c439e05c5b3259aec9b"))
}

func (s *CampaignTestSuite) TestOverfundedIsClaimable() {
	c := testCampaign("100", "150", model.CampaignStatusOpen)
	require.True(s.T(), CanClaim(c, creator))
	require.False(s.T(), CanCallOff(c, creator))
}

func (s *CampaignTestSuite) TestIsActive() {
	require.True(s.T(), IsActive(testCampaign("100", "0", model.CampaignStatusOpen)))
	require.False(s.T(), IsActive(testCampaign("100", "0", model.CampaignStatusClaimed)))
	require.False(s.T(), IsActive(testCampaign("100", "0", model.CampaignStatusCalledOff)))
}
