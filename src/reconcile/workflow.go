package reconcile

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/fundflare/mirror/src/utils/campaign"
	"github.com/fundflare/mirror/src/utils/currency"
	"github.com/fundflare/mirror/src/utils/logger"
	"github.com/fundflare/mirror/src/utils/model"
	"github.com/fundflare/mirror/src/utils/monitoring"
	monitor_mirror "github.com/fundflare/mirror/src/utils/monitoring/mirror"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
)

// ChainGateway is the contract-facing surface a flow needs. The concrete
// implementation lives in src/chain, tests substitute a fake.
type ChainGateway interface {
	CreateCampaign(ctx context.Context, title, description string, goal *big.Int, durationDays int64) (*types.Transaction, error)
	FundCampaign(ctx context.Context, chainID uint64, amount *big.Int) (*types.Transaction, error)
	ClaimFunds(ctx context.Context, chainID uint64) (*types.Transaction, error)
	CallOffCampaign(ctx context.Context, chainID uint64) (*types.Transaction, error)
	AwaitConfirmation(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	ExtractCreatedCampaignID(receipt *types.Receipt) (uint64, bool)
}

// CampaignStore is the metadata-store surface a flow needs
type CampaignStore interface {
	GetCampaign(ctx context.Context, recordID string) (*model.Campaign, error)
	InsertCampaign(ctx context.Context, campaign *model.Campaign) (string, error)
	PatchChainID(ctx context.Context, recordID string, chainID uint64) error
	PatchPledged(ctx context.Context, recordID string, newPledged string) error
	PatchStatus(ctx context.Context, recordID string, status model.CampaignStatus) error
}

// Signer exposes the connected wallet address for eligibility checks
type Signer interface {
	Address() string
}

// CreateParams is the validated-on-entry input of the create flow.
// Goal is a human decimal string, it gets parsed into base units here.
type CreateParams struct {
	Title        string
	Description  string
	Goal         string
	DurationDays int64
}

// Outcome carries the flow result. Warnings collect non-fatal divergence
// between the chain and the store, the transaction itself succeeded.
type Outcome struct {
	Campaign *model.Campaign
	TxHash   string
	Warnings []string
}

// Workflow runs the dual-write flows. Every flow is one linear sequence:
// submit, await confirmation, patch the store, reflect. Committed steps are
// never rolled back, the chain stays authoritative.
type Workflow struct {
	Log *logrus.Entry

	chain   ChainGateway
	store   CampaignStore
	signer  Signer
	monitor monitoring.Monitor

	// nil when the Redis publisher is disabled
	updates chan *CampaignUpdate
}

func NewWorkflow(chain ChainGateway, store CampaignStore, signer Signer) (self *Workflow) {
	self = new(Workflow)
	self.Log = logger.NewSublogger("workflow")
	self.chain = chain
	self.store = store
	self.signer = signer

	// Replaced through WithMonitor when the caller shares one
	self.monitor = monitor_mirror.NewMonitor()
	return
}

func (self *Workflow) WithMonitor(monitor monitoring.Monitor) *Workflow {
	self.monitor = monitor
	return self
}

func (self *Workflow) WithUpdateChannel(updates chan *CampaignUpdate) *Workflow {
	self.updates = updates
	return self
}

// Create submits a campaign creation transaction, waits for it to mine and
// inserts the mirrored record. The chain id is backfilled from the creation
// receipt; when the log cannot be decoded the record stays unlinked and a
// warning is attached instead of failing the flow.
func (self *Workflow) Create(ctx context.Context, params CreateParams) (out *Outcome, err error) {
	defer self.countFailure(&err, &self.monitor.GetReport().Mirror.Errors.CreateFlowFailures)

	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if params.DurationDays <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive number of days", ErrValidation)
	}

	goal, err := currency.ParseUnits(params.Goal, currency.Decimals)
	if err != nil || goal.Sign() <= 0 {
		return nil, fmt.Errorf("%w: goal must be a positive decimal amount", ErrValidation)
	}

	tx, err := self.chain.CreateCampaign(ctx, params.Title, params.Description, goal, params.DurationDays)
	if err != nil {
		return
	}

	receipt, err := self.chain.AwaitConfirmation(ctx, tx)
	if err != nil {
		return
	}

	out = &Outcome{TxHash: tx.Hash().String()}

	c := &model.Campaign{
		Creator:     self.signer.Address(),
		Title:       params.Title,
		Description: params.Description,
		Goal:        goal.String(),
		Pledged:     "0",
		Deadline:    currency.DeadlineFromDuration(time.Now(), params.DurationDays),
		Status:      model.CampaignStatusOpen,
	}
	if setErr := c.CreationReceipt.Set(receipt); setErr != nil {
		self.Log.WithError(setErr).Warn("Could not serialize creation receipt")
	}

	recordID, err := self.store.InsertCampaign(ctx, c)
	if err != nil {
		return nil, err
	}
	out.Campaign = c
	self.monitor.GetReport().Mirror.State.CampaignsCreated.Inc()

	chainID, ok := self.chain.ExtractCreatedCampaignID(receipt)
	if !ok {
		self.Log.WithField("record_id", recordID).Warn("Creation receipt carries no decodable CampaignCreated log, record stays unlinked")
		self.monitor.GetReport().Mirror.State.UnlinkedCampaigns.Inc()
		out.Warnings = append(out.Warnings, "campaign mined but the record could not be linked to its chain id")
		self.publish(&CampaignUpdate{Kind: UpdateCreated, RecordID: recordID})
		return out, nil
	}

	if patchErr := self.store.PatchChainID(ctx, recordID, chainID); patchErr != nil {
		self.warnPatchFailure(out, recordID, patchErr)
		return out, nil
	}
	c.ChainID = &chainID

	self.publish(&CampaignUpdate{Kind: UpdateCreated, RecordID: recordID, ChainID: &chainID})
	return out, nil
}

// Fund pledges amount (a human decimal string) to the campaign behind
// recordID. The cached pledged total is bumped by big-integer addition after
// the transaction confirms.
func (self *Workflow) Fund(ctx context.Context, recordID string, amount string) (out *Outcome, err error) {
	defer self.countFailure(&err, &self.monitor.GetReport().Mirror.Errors.FundFlowFailures)

	value, err := currency.ParseUnits(amount, currency.Decimals)
	if err != nil || value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive decimal", ErrValidation)
	}

	c, err := self.store.GetCampaign(ctx, recordID)
	if err != nil {
		return
	}
	if c.ChainID == nil {
		return nil, ErrMissingChainLink
	}
	if !campaign.IsActive(c) {
		return nil, fmt.Errorf("%w: campaign is no longer open", ErrNotEligible)
	}

	tx, err := self.chain.FundCampaign(ctx, *c.ChainID, value)
	if err != nil {
		return
	}

	_, err = self.chain.AwaitConfirmation(ctx, tx)
	if err != nil {
		return
	}

	out = &Outcome{Campaign: c, TxHash: tx.Hash().String()}
	self.monitor.GetReport().Mirror.State.FundingsConfirmed.Inc()

	newPledged := new(big.Int).Add(c.PledgedInt(), value)
	c.Pledged = newPledged.String()

	if patchErr := self.store.PatchPledged(ctx, recordID, c.Pledged); patchErr != nil {
		self.warnPatchFailure(out, recordID, patchErr)
		return out, nil
	}

	self.publish(&CampaignUpdate{Kind: UpdateFunded, RecordID: recordID, ChainID: c.ChainID})
	return out, nil
}

// Claim transfers the raised funds to the creator. Eligibility is re-derived
// against the live session right before submission, the contract still has
// the final word.
func (self *Workflow) Claim(ctx context.Context, recordID string) (out *Outcome, err error) {
	defer self.countFailure(&err, &self.monitor.GetReport().Mirror.Errors.ClaimFlowFailures)

	return self.finalize(ctx, recordID,
		campaign.CanClaim, self.chain.ClaimFunds,
		model.CampaignStatusClaimed, UpdateClaimed,
		&self.monitor.GetReport().Mirror.State.ClaimsConfirmed)
}

// CallOff cancels an underfunded campaign and returns pledges to the donors
func (self *Workflow) CallOff(ctx context.Context, recordID string) (out *Outcome, err error) {
	defer self.countFailure(&err, &self.monitor.GetReport().Mirror.Errors.CallOffFlowFailures)

	return self.finalize(ctx, recordID,
		campaign.CanCallOff, self.chain.CallOffCampaign,
		model.CampaignStatusCalledOff, UpdateCalled,
		&self.monitor.GetReport().Mirror.State.CallOffsConfirmed)
}

// finalize is the shared shape of the two terminal flows
func (self *Workflow) finalize(
	ctx context.Context,
	recordID string,
	eligible func(*model.Campaign, string) bool,
	submit func(context.Context, uint64) (*types.Transaction, error),
	status model.CampaignStatus,
	kind UpdateKind,
	confirmed interface{ Inc() int64 },
) (out *Outcome, err error) {
	c, err := self.store.GetCampaign(ctx, recordID)
	if err != nil {
		return
	}
	if c.ChainID == nil {
		return nil, ErrMissingChainLink
	}
	if !eligible(c, self.signer.Address()) {
		return nil, ErrNotEligible
	}

	tx, err := submit(ctx, *c.ChainID)
	if err != nil {
		return
	}

	_, err = self.chain.AwaitConfirmation(ctx, tx)
	if err != nil {
		return
	}

	out = &Outcome{Campaign: c, TxHash: tx.Hash().String()}
	confirmed.Inc()

	c.Status = status
	if patchErr := self.store.PatchStatus(ctx, recordID, status); patchErr != nil {
		self.warnPatchFailure(out, recordID, patchErr)
		return out, nil
	}

	self.publish(&CampaignUpdate{Kind: kind, RecordID: recordID, ChainID: c.ChainID})
	return out, nil
}

// warnPatchFailure records a store write that failed after the transaction
// already confirmed. The chain committed, so the flow result is a success
// with a warning, never an error.
func (self *Workflow) warnPatchFailure(out *Outcome, recordID string, err error) {
	self.Log.WithError(err).WithField("record_id", recordID).Warn("Store patch failed after a confirmed transaction, mirror is stale until the next sweep")
	self.monitor.GetReport().Mirror.Errors.StorePatchFailures.Inc()
	out.Warnings = append(out.Warnings, "transaction confirmed but the metadata store could not be updated")
}

func (self *Workflow) countFailure(err *error, counter interface{ Inc() uint64 }) {
	if *err != nil {
		counter.Inc()
	}
}

func (self *Workflow) publish(update *CampaignUpdate) {
	if self.updates == nil {
		return
	}
	select {
	case self.updates <- update:
	default:
		self.Log.WithField("record_id", update.RecordID).Warn("Update channel full, dropping campaign update")
	}
}
