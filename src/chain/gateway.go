// Package chain wraps calls into the deployed crowdfunding contract.
// The contract is the authority on every precondition (goal met, caller is
// creator); this gateway validates argument shape only.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/contract"
	"github.com/fundflare/mirror/src/utils/logger"
	"github.com/fundflare/mirror/src/utils/wallet"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

type Gateway struct {
	Log *logrus.Entry

	config  *config.Config
	session *wallet.Session
	address common.Address

	// Custom ABI, nil means the embedded one
	contractAbi *abi.ABI

	// Read-only calls and log scans go through the limiter,
	// the full-log funding query is deliberately broad
	readLimiter ratelimit.Limiter

	mtx        sync.Mutex
	crowdfund  *contract.Crowdfund
	lastClient *ethclient.Client
}

func NewGateway(config *config.Config, session *wallet.Session) (self *Gateway) {
	self = new(Gateway)
	self.Log = logger.NewSublogger("chain-gateway")
	self.config = config
	self.session = session
	self.address = common.HexToAddress(config.Contract.Address)
	self.readLimiter = ratelimit.New(config.Contract.ReadRateLimit)
	return
}

func (self *Gateway) WithContractAbi(v *abi.ABI) *Gateway {
	self.contractAbi = v
	return self
}

// bound returns the typed contract wrapper, rebinding when the session's
// client was replaced on reconnect
func (self *Gateway) bound() (*contract.Crowdfund, error) {
	client := self.session.Client()
	if client == nil {
		return nil, ErrWalletUnavailable
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	if self.crowdfund == nil || self.lastClient != client {
		crowdfund, err := contract.NewCrowdfund(self.address, client, self.contractAbi)
		if err != nil {
			return nil, err
		}
		self.crowdfund = crowdfund
		self.lastClient = client
	}

	return self.crowdfund, nil
}

// CampaignCount reads the total number of campaigns the contract created.
// The result is a lower-bound snapshot, not a live count.
func (self *Gateway) CampaignCount(ctx context.Context) (count uint64, err error) {
	if !self.session.IsConnected() {
		err = ErrContractUnavailable
		return
	}

	crowdfund, err := self.bound()
	if err != nil {
		return 0, ErrContractUnavailable
	}

	self.readLimiter.Take()
	out, err := crowdfund.CampaignCount(&bind.CallOpts{Context: ctx})
	if err != nil {
		self.Log.WithError(err).Error("Could not read campaign count")
		return 0, fmt.Errorf("%w: %s", ErrRead, err.Error())
	}

	return out.Uint64(), nil
}

// ReadCampaign fetches the authoritative on-chain state of one campaign
func (self *Gateway) ReadCampaign(ctx context.Context, chainID uint64) (state contract.CampaignState, err error) {
	if !self.session.IsConnected() {
		err = ErrContractUnavailable
		return
	}

	crowdfund, err := self.bound()
	if err != nil {
		return state, ErrContractUnavailable
	}

	self.readLimiter.Take()
	state, err = crowdfund.Campaigns(&bind.CallOpts{Context: ctx}, new(big.Int).SetUint64(chainID))
	if err != nil {
		self.Log.WithError(err).WithField("chain_id", chainID).Error("Could not read campaign state")
		return state, fmt.Errorf("%w: %s", ErrRead, err.Error())
	}
	return
}

func (self *Gateway) CreateCampaign(ctx context.Context, title, description string, goal *big.Int, durationDays int64) (tx *types.Transaction, err error) {
	crowdfund, opts, err := self.transactor(ctx)
	if err != nil {
		return
	}

	tx, err = crowdfund.CreateCampaign(opts, title, description, goal, big.NewInt(durationDays))
	if err != nil {
		return nil, classifySubmission(err)
	}

	self.Log.WithField("tx_id", tx.Hash()).Info("Campaign creation submitted")
	return
}

// FundCampaign pledges amount base units to the campaign, attached as the
// transaction value
func (self *Gateway) FundCampaign(ctx context.Context, chainID uint64, amount *big.Int) (tx *types.Transaction, err error) {
	if amount == nil || amount.Sign() <= 0 {
		err = ErrInvalidAmount
		return
	}

	crowdfund, opts, err := self.transactor(ctx)
	if err != nil {
		return
	}
	opts.Value = amount

	tx, err = crowdfund.FundCampaign(opts, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, classifySubmission(err)
	}

	self.Log.WithField("tx_id", tx.Hash()).WithField("chain_id", chainID).Info("Funding submitted")
	return
}

func (self *Gateway) ClaimFunds(ctx context.Context, chainID uint64) (tx *types.Transaction, err error) {
	crowdfund, opts, err := self.transactor(ctx)
	if err != nil {
		return
	}

	tx, err = crowdfund.ClaimFunds(opts, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, classifySubmission(err)
	}

	self.Log.WithField("tx_id", tx.Hash()).WithField("chain_id", chainID).Info("Claim submitted")
	return
}

func (self *Gateway) CallOffCampaign(ctx context.Context, chainID uint64) (tx *types.Transaction, err error) {
	crowdfund, opts, err := self.transactor(ctx)
	if err != nil {
		return
	}

	tx, err = crowdfund.CallOffCampaign(opts, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, classifySubmission(err)
	}

	self.Log.WithField("tx_id", tx.Hash()).WithField("chain_id", chainID).Info("Call-off submitted")
	return
}

func (self *Gateway) transactor(ctx context.Context) (crowdfund *contract.Crowdfund, opts *bind.TransactOpts, err error) {
	crowdfund, err = self.bound()
	if err != nil {
		return
	}

	opts, err = self.session.Opts(ctx)
	if err != nil {
		err = ErrWalletUnavailable
		return
	}
	return
}
