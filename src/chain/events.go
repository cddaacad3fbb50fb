package chain

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/fundflare/mirror/src/utils/contract"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
)

// Contribution is one donor's cumulative pledge to a campaign.
// Reconstructed on demand from the funding event log, never persisted.
type Contribution struct {
	Donor  string   `json:"donor"`
	Amount *big.Int `json:"amount"`
}

// ExtractCreatedCampaignID decodes the chain-assigned campaign identifier
// from a creation receipt. A missing or undecodable log yields ok=false,
// not an error: the record stays unlinked and downstream code must tolerate
// that rather than crash.
func (self *Gateway) ExtractCreatedCampaignID(receipt *types.Receipt) (chainID uint64, ok bool) {
	crowdfund, err := self.bound()
	if err != nil {
		return 0, false
	}

	return decodeCreatedCampaignID(crowdfund, self.address, receipt, self.Log)
}

func decodeCreatedCampaignID(crowdfund *contract.Crowdfund, contractAddress common.Address, receipt *types.Receipt, log *logrus.Entry) (chainID uint64, ok bool) {
	if receipt == nil {
		return 0, false
	}

	for _, vLog := range receipt.Logs {
		if vLog.Address != contractAddress || len(vLog.Topics) == 0 || vLog.Topics[0] != crowdfund.CreatedTopic() {
			continue
		}

		event, err := crowdfund.ParseCampaignCreated(*vLog)
		if err != nil {
			log.WithError(err).Warn("Skipping creation log that did not decode cleanly")
			continue
		}

		return event.CampaignId.Uint64(), true
	}

	return 0, false
}

// ListFundingEvents aggregates per-donor contributions for one campaign.
// The log query filters by event signature only; matching on the campaign id
// happens client-side. Fetch-broad-then-filter is a known inefficiency,
// acceptable at this scale.
func (self *Gateway) ListFundingEvents(ctx context.Context, chainID uint64) (contributions []Contribution, err error) {
	client := self.session.Client()
	if client == nil {
		return nil, ErrContractUnavailable
	}

	crowdfund, err := self.bound()
	if err != nil {
		return nil, ErrContractUnavailable
	}

	self.readLimiter.Take()
	logs, err := client.FilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{self.address},
		Topics:    [][]common.Hash{{crowdfund.FundedTopic()}},
	})
	if err != nil {
		self.Log.WithError(err).Error("Could not query funding events")
		return nil, fmt.Errorf("%w: %s", ErrRead, err.Error())
	}

	return aggregateContributions(crowdfund, logs, chainID, self.Log), nil
}

func aggregateContributions(crowdfund *contract.Crowdfund, logs []types.Log, chainID uint64, log *logrus.Entry) (contributions []Contribution) {
	totals := make(map[common.Address]*big.Int)
	for _, vLog := range logs {
		event, parseErr := crowdfund.ParseCampaignFunded(vLog)
		if parseErr != nil {
			log.WithError(parseErr).WithField("tx_id", vLog.TxHash).Warn("Skipping funding log that did not decode cleanly")
			continue
		}

		if event.CampaignId.Uint64() != chainID {
			continue
		}

		if total, seen := totals[event.Donor]; seen {
			total.Add(total, event.Amount)
		} else {
			totals[event.Donor] = new(big.Int).Set(event.Amount)
		}
	}

	contributions = make([]Contribution, 0, len(totals))
	for donor, amount := range totals {
		contributions = append(contributions, Contribution{Donor: donor.Hex(), Amount: amount})
	}

	// Largest contribution first, address breaks ties deterministically
	sort.Slice(contributions, func(i, j int) bool {
		switch contributions[i].Amount.Cmp(contributions[j].Amount) {
		case 1:
			return true
		case -1:
			return false
		default:
			return contributions[i].Donor < contributions[j].Donor
		}
	})

	return contributions
}
