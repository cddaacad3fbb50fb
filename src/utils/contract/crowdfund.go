package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Crowdfund is a typed wrapper around the deployed contract
type Crowdfund struct {
	address common.Address
	abi     *abi.ABI
	bound   *bind.BoundContract
}

type Backend interface {
	bind.ContractCaller
	bind.ContractTransactor
	bind.ContractFilterer
}

// CampaignCreatedEvent is the decoded creation log entry, one shape with
// required named fields
type CampaignCreatedEvent struct {
	CampaignId *big.Int
	Creator    common.Address
	Goal       *big.Int
	Deadline   *big.Int
	Raw        types.Log
}

// CampaignFundedEvent is the decoded funding log entry
type CampaignFundedEvent struct {
	CampaignId *big.Int
	Donor      common.Address
	Amount     *big.Int
	Raw        types.Log
}

func NewCrowdfund(address common.Address, backend Backend, contractAbi *abi.ABI) (self *Crowdfund, err error) {
	if contractAbi == nil {
		contractAbi, err = DefaultAbi()
		if err != nil {
			return
		}
	}

	self = &Crowdfund{
		address: address,
		abi:     contractAbi,
		bound:   bind.NewBoundContract(address, *contractAbi, backend, backend, backend),
	}
	return
}

func (self *Crowdfund) Address() common.Address {
	return self.address
}

func (self *Crowdfund) CampaignCount(opts *bind.CallOpts) (count *big.Int, err error) {
	var out []interface{}
	err = self.bound.Call(opts, &out, "campaignCount")
	if err != nil {
		return
	}
	count = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return
}

// CampaignState is the on-chain campaign struct as exposed by the public
// campaigns mapping getter
type CampaignState struct {
	Creator     common.Address
	Title       string
	Description string
	Goal        *big.Int
	Pledged     *big.Int
	Deadline    *big.Int
	Claimed     bool
	CalledOff   bool
}

func (self *Crowdfund) Campaigns(opts *bind.CallOpts, campaignId *big.Int) (state CampaignState, err error) {
	var out []interface{}
	err = self.bound.Call(opts, &out, "campaigns", campaignId)
	if err != nil {
		return
	}
	state.Creator = *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	state.Title = *abi.ConvertType(out[1], new(string)).(*string)
	state.Description = *abi.ConvertType(out[2], new(string)).(*string)
	state.Goal = *abi.ConvertType(out[3], new(*big.Int)).(**big.Int)
	state.Pledged = *abi.ConvertType(out[4], new(*big.Int)).(**big.Int)
	state.Deadline = *abi.ConvertType(out[5], new(*big.Int)).(**big.Int)
	state.Claimed = *abi.ConvertType(out[6], new(bool)).(*bool)
	state.CalledOff = *abi.ConvertType(out[7], new(bool)).(*bool)
	return
}

func (self *Crowdfund) CreateCampaign(opts *bind.TransactOpts, title, description string, goal, durationInDays *big.Int) (*types.Transaction, error) {
	return self.bound.Transact(opts, "createCampaign", title, description, goal, durationInDays)
}

// FundCampaign attaches the pledged amount as the transaction value
func (self *Crowdfund) FundCampaign(opts *bind.TransactOpts, campaignId *big.Int) (*types.Transaction, error) {
	return self.bound.Transact(opts, "fundCampaign", campaignId)
}

func (self *Crowdfund) ClaimFunds(opts *bind.TransactOpts, campaignId *big.Int) (*types.Transaction, error) {
	return self.bound.Transact(opts, "claimFunds", campaignId)
}

func (self *Crowdfund) CallOffCampaign(opts *bind.TransactOpts, campaignId *big.Int) (*types.Transaction, error) {
	return self.bound.Transact(opts, "callOffCampaign", campaignId)
}

func (self *Crowdfund) CreatedTopic() common.Hash {
	return self.abi.Events[EventCampaignCreated].ID
}

func (self *Crowdfund) FundedTopic() common.Hash {
	return self.abi.Events[EventCampaignFunded].ID
}

func (self *Crowdfund) ParseCampaignCreated(log types.Log) (out *CampaignCreatedEvent, err error) {
	out = new(CampaignCreatedEvent)
	err = self.bound.UnpackLog(out, EventCampaignCreated, log)
	if err != nil {
		return nil, err
	}
	out.Raw = log
	return
}

func (self *Crowdfund) ParseCampaignFunded(log types.Log) (out *CampaignFundedEvent, err error) {
	out = new(CampaignFundedEvent)
	err = self.bound.UnpackLog(out, EventCampaignFunded, log)
	if err != nil {
		return nil, err
	}
	out.Raw = log
	return
}
