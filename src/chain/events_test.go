package chain

import (
	"math/big"

	"github.com/fundflare/mirror/src/utils/contract"
	"github.com/fundflare/mirror/src/utils/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestEventsTestSuite(t *testing.T) {
	suite.Run(t, new(EventsTestSuite))
}

type EventsTestSuite struct {
	suite.Suite

	contractAddress common.Address
	crowdfund       *contract.Crowdfund
}

func (s *EventsTestSuite) SetupSuite() {
	s.contractAddress = common.HexToAddress("0x1000000000000000000000000000000000000001")

	var err error
	s.crowdfund, err = contract.NewCrowdfund(s.contractAddress, nil, nil)
	require.NoError(s.T(), err)
}

func (s *EventsTestSuite) createdLog(campaignId int64, creator common.Address) types.Log {
	contractAbi, err := contract.DefaultAbi()
	require.NoError(s.T(), err)

	data, err := contractAbi.Events[contract.EventCampaignCreated].Inputs.NonIndexed().Pack(big.NewInt(1000), big.NewInt(1700000000))
	require.NoError(s.T(), err)

	return types.Log{
		Address: s.contractAddress,
		Topics: []common.Hash{
			s.crowdfund.CreatedTopic(),
			common.BigToHash(big.NewInt(campaignId)),
			common.BytesToHash(common.LeftPadBytes(creator.Bytes(), 32)),
		},
		Data: data,
	}
}

func (s *EventsTestSuite) fundedLog(campaignId int64, donor common.Address, amount *big.Int) types.Log {
	contractAbi, err := contract.DefaultAbi()
	require.NoError(s.T(), err)

	data, err := contractAbi.Events[contract.EventCampaignFunded].Inputs.NonIndexed().Pack(amount)
	require.NoError(s.T(), err)

	return types.Log{
		Address: s.contractAddress,
		Topics: []common.Hash{
			s.crowdfund.FundedTopic(),
			common.BigToHash(big.NewInt(campaignId)),
			common.BytesToHash(common.LeftPadBytes(donor.Bytes(), 32)),
		},
		Data: data,
	}
}

func (s *EventsTestSuite) TestDecodeCreatedCampaignID() {
	creator := common.HexToAddress("0x2000000000000000000000000000000000000002")
	vLog := s.createdLog(7, creator)
	receipt := &types.Receipt{Logs: []*types.Log{&vLog}}

	chainID, ok := decodeCreatedCampaignID(s.crowdfund, s.contractAddress, receipt, logger.NewSublogger("test"))
	require.True(s.T(), ok)
	require.Equal(s.T(), uint64(7), chainID)
}

func (s *EventsTestSuite) TestDecodeNilReceipt() {
	_, ok := decodeCreatedCampaignID(s.crowdfund, s.contractAddress, nil, logger.NewSublogger("test"))
	require.False(s.T(), ok)
}

func (s *EventsTestSuite) TestDecodeNoCreationLog() {
	donor := common.HexToAddress("0x3000000000000000000000000000000000000003")
	vLog := s.fundedLog(7, donor, big.NewInt(10))
	receipt := &types.Receipt{Logs: []*types.Log{&vLog}}

	_, ok := decodeCreatedCampaignID(s.crowdfund, s.contractAddress, receipt, logger.NewSublogger("test"))
	require.False(s.T(), ok)
}

func (s *EventsTestSuite) TestDecodeSkipsOtherContracts() {
	creator := common.HexToAddress("0x2000000000000000000000000000000000000002")
	vLog := s.createdLog(7, creator)
	vLog.Address = common.HexToAddress("0x4000000000000000000000000000000000000004")
	receipt := &types.Receipt{Logs: []*types.Log{&vLog}}

	_, ok := decodeCreatedCampaignID(s.crowdfund, s.contractAddress, receipt, logger.NewSublogger("test"))
	require.False(s.T(), ok)
}

func (s *EventsTestSuite) TestAggregateSumsPerDonor() {
	alice := common.HexToAddress("0xa000000000000000000000000000000000000001")
	bob := common.HexToAddress("0xb000000000000000000000000000000000000002")

	logs := []types.Log{
		s.fundedLog(7, alice, big.NewInt(10)),
		s.fundedLog(7, bob, big.NewInt(30)),
		s.fundedLog(7, alice, big.NewInt(5)),
	}

	contributions := aggregateContributions(s.crowdfund, logs, 7, logger.NewSublogger("test"))
	require.Len(s.T(), contributions, 2)

	// Sorted by amount, largest first
	require.Equal(s.T(), bob.Hex(), contributions[0].Donor)
	require.Equal(s.T(), "30", contributions[0].Amount.String())
	require.Equal(s.T(), alice.Hex(), contributions[1].Donor)
	require.Equal(s.T(), "15", contributions[1].Amount.String())
}

func (s *EventsTestSuite) TestAggregateFiltersByCampaign() {
	alice := common.HexToAddress("0xa000000000000000000000000000000000000001")

	logs := []types.Log{
		s.fundedLog(7, alice, big.NewInt(10)),
		s.fundedLog(8, alice, big.NewInt(999)),
	}

	contributions := aggregateContributions(s.crowdfund, logs, 7, logger.NewSublogger("test"))
	require.Len(s.T(), contributions, 1)
	require.Equal(s.T(), "10", contributions[0].Amount.String())
}

func (s *EventsTestSuite) TestAggregateSkipsUndecodableLogs() {
	alice := common.HexToAddress("0xa000000000000000000000000000000000000001")

	broken := s.fundedLog(7, alice, big.NewInt(10))
	broken.Data = []byte{0x01}

	logs := []types.Log{
		broken,
		s.fundedLog(7, alice, big.NewInt(20)),
	}

	contributions := aggregateContributions(s.crowdfund, logs, 7, logger.NewSublogger("test"))
	require.Len(s.T(), contributions, 1)
	require.Equal(s.T(), "20", contributions[0].Amount.String())
}

func (s *EventsTestSuite) TestAggregateEmpty() {
	contributions := aggregateContributions(s.crowdfund, nil, 7, logger.NewSublogger("test"))
	require.NotNil(s.T(), contributions)
	require.Len(s.T(), contributions, 0)
}
