package reconcile

import (
	"context"
	"time"

	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/contract"
	"github.com/fundflare/mirror/src/utils/model"
	"github.com/fundflare/mirror/src/utils/monitoring"
	monitor_mirror "github.com/fundflare/mirror/src/utils/monitoring/mirror"
	"github.com/fundflare/mirror/src/utils/task"

	"github.com/robfig/cron/v3"
)

// ChainReader is the read-only contract surface the sweeper needs
type ChainReader interface {
	ReadCampaign(ctx context.Context, chainID uint64) (contract.CampaignState, error)
}

// SweeperStore lists chain-linked records and patches the stale ones
type SweeperStore interface {
	ListChainLinked(ctx context.Context, limit int) ([]*model.Campaign, error)
	PatchPledged(ctx context.Context, recordID string, newPledged string) error
	PatchStatus(ctx context.Context, recordID string, status model.CampaignStatus) error
}

// Sweeper periodically re-reads chain state for linked records and heals
// mirror rows left stale by patch failures or writes from other instances.
// The chain is authoritative, the sweep only ever copies chain -> store.
type Sweeper struct {
	*task.Task

	config  *config.Config
	chain   ChainReader
	store   SweeperStore
	monitor monitoring.Monitor

	updates chan *CampaignUpdate

	cron *cron.Cron
}

func NewSweeper(config *config.Config, chain ChainReader, store SweeperStore) (self *Sweeper) {
	self = new(Sweeper)
	self.config = config
	self.chain = chain
	self.store = store
	self.monitor = monitor_mirror.NewMonitor()

	self.Task = task.NewTask(config, "sweeper").
		WithOnBeforeStart(self.schedule).
		WithSubtaskFunc(self.run)

	return
}

func (self *Sweeper) WithMonitor(monitor monitoring.Monitor) *Sweeper {
	self.monitor = monitor
	return self
}

func (self *Sweeper) WithUpdateChannel(updates chan *CampaignUpdate) *Sweeper {
	self.updates = updates
	return self
}

func (self *Sweeper) schedule() (err error) {
	self.cron = cron.New()
	_, err = self.cron.AddFunc(self.config.Reconciler.SweeperSchedule, self.sweep)
	if err != nil {
		self.Log.WithError(err).Error("Bad sweeper schedule")
		return
	}
	self.cron.Start()
	return
}

func (self *Sweeper) run() (err error) {
	<-self.StopChannel
	ctx := self.cron.Stop()

	// Let an in-flight sweep finish before the task reports stopped
	<-ctx.Done()
	return
}

func (self *Sweeper) sweep() {
	self.Log.Debug("Sweep...")
	defer self.Log.Debug("...Sweep done")

	campaigns, err := self.store.ListChainLinked(self.Ctx, self.config.Reconciler.SweeperBatchSize)
	if err != nil {
		self.Log.WithError(err).Error("Could not list chain-linked campaigns")
		self.monitor.GetReport().Mirror.Errors.SweeperFailures.Inc()
		return
	}

	for _, c := range campaigns {
		if self.IsStopping.Load() {
			return
		}
		if err = self.heal(c); err != nil {
			self.Log.WithError(err).WithField("record_id", c.ID).Warn("Could not heal campaign record")
			self.monitor.GetReport().Mirror.Errors.SweeperFailures.Inc()
		}
	}

	self.monitor.GetReport().Mirror.State.LastSweepTimestamp.Store(time.Now().Unix())
}

func (self *Sweeper) heal(c *model.Campaign) (err error) {
	state, err := self.chain.ReadCampaign(self.Ctx, *c.ChainID)
	if err != nil {
		return
	}

	healed := false

	if state.Pledged != nil && state.Pledged.Cmp(c.PledgedInt()) != 0 {
		err = self.store.PatchPledged(self.Ctx, c.ID, state.Pledged.String())
		if err != nil {
			return
		}
		healed = true
	}

	if status := chainStatus(state); status != c.Status {
		err = self.store.PatchStatus(self.Ctx, c.ID, status)
		if err != nil {
			return
		}
		healed = true
	}

	if healed {
		self.Log.WithField("record_id", c.ID).WithField("chain_id", *c.ChainID).Info("Healed stale campaign record")
		self.monitor.GetReport().Mirror.State.SweeperRowsHealed.Inc()
		self.publish(&CampaignUpdate{Kind: UpdateHealed, RecordID: c.ID, ChainID: c.ChainID})
	}
	return
}

// chainStatus folds the contract's two flags into the record status.
// The contract never sets both.
func chainStatus(state contract.CampaignState) model.CampaignStatus {
	switch {
	case state.Claimed:
		return model.CampaignStatusClaimed
	case state.CalledOff:
		return model.CampaignStatusCalledOff
	default:
		return model.CampaignStatusOpen
	}
}

func (self *Sweeper) publish(update *CampaignUpdate) {
	if self.updates == nil {
		return
	}
	select {
	case self.updates <- update:
	default:
		self.Log.WithField("record_id", update.RecordID).Warn("Update channel full, dropping campaign update")
	}
}
