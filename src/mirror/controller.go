package mirror

import (
	"github.com/fundflare/mirror/src/chain"
	"github.com/fundflare/mirror/src/gateway"
	"github.com/fundflare/mirror/src/reconcile"
	"github.com/fundflare/mirror/src/store"
	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/eth"
	"github.com/fundflare/mirror/src/utils/model"
	"github.com/fundflare/mirror/src/utils/monitoring"
	monitor_mirror "github.com/fundflare/mirror/src/utils/monitoring/mirror"
	"github.com/fundflare/mirror/src/utils/publisher"
	"github.com/fundflare/mirror/src/utils/task"
	"github.com/fundflare/mirror/src/utils/wallet"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the campaign mirror.
// Sets up the wallet session, the flows, the REST surface and the sweep.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	monitor := monitor_mirror.NewMonitor()

	monitoringServer := monitoring.NewServer(config).
		WithMonitor(monitor)

	// Watchdog restarts the whole stack when the wallet session drops,
	// reads keep failing gracefully in between
	var session *wallet.Session

	watched := func() *task.Task {
		db, err := model.NewConnection(self.Ctx, self.Config, "mirror")
		if err != nil {
			panic(err)
		}

		session = wallet.NewSession(config)
		err = session.Connect(self.Ctx)
		if err != nil {
			// Flows answer with wallet errors until the next connect
			self.Log.WithError(err).Error("Wallet session did not connect")
		}

		campaignStore := store.NewStore(config, db)

		chainGateway := chain.NewGateway(config, session).
			WithContractAbi(loadContractAbi(self, config))

		var updates chan *reconcile.CampaignUpdate
		if config.Redis.Enabled {
			updates = make(chan *reconcile.CampaignUpdate, config.Redis.MaxQueueSize)
		}

		updatePublisher := publisher.NewRedisPublisher[*reconcile.CampaignUpdate](config, "update-publisher").
			WithInputChannel(updates).
			WithMonitor(monitor)

		workflow := reconcile.NewWorkflow(chainGateway, campaignStore, session).
			WithMonitor(monitor).
			WithUpdateChannel(updates)

		sweeper := reconcile.NewSweeper(config, chainGateway, campaignStore).
			WithMonitor(monitor).
			WithUpdateChannel(updates)

		server := gateway.NewServer(config, workflow, campaignStore, chainGateway).
			WithMonitor(monitor)

		invalidator := gateway.NewInvalidator(config, server)

		// Cached views are flushed whenever the signer identity changes
		unsubscribe := session.OnChange(func(wallet.Change) {
			server.FlushListCache()
		})

		return task.NewTask(config, "watched").
			WithSubtask(server.Task).
			WithConditionalSubtask(config.Reconciler.SweeperEnabled, sweeper.Task).
			WithConditionalSubtask(config.Redis.Enabled, updatePublisher.Task).
			WithConditionalSubtask(config.Redis.Enabled, invalidator.Task).
			WithPeriodicSubtaskFunc(config.Wallet.AccountRefreshInterval, func() error {
				session.Refresh()
				return nil
			}).
			WithOnAfterStop(func() {
				unsubscribe()
				session.Close()
			})
	}

	watchdog := task.NewWatchdog(config).
		WithTask(watched).
		WithIsOK(func() bool {
			isOK := session != nil && session.IsConnected()
			if !isOK {
				monitor.GetReport().Run.Errors.NumWatchdogRestarts.Inc()
			}
			return isOK
		})

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(monitoringServer.Task).
		WithSubtask(watchdog.Task)

	return
}

// loadContractAbi prefers the on-disk ABI, then the explorer API,
// nil falls back to the embedded one
func loadContractAbi(self *Controller, config *config.Config) (contractAbi *abi.ABI) {
	var err error
	switch {
	case config.Contract.AbiPath != "":
		contractAbi, err = eth.GetContractABIFromFile(config.Contract.AbiPath)
	case config.Contract.ExplorerApiUrl != "":
		contractAbi, err = eth.GetContractABI(config.Contract.ExplorerApiUrl, config.Contract.Address, config.Contract.ExplorerApiKey)
	default:
		return nil
	}
	if err != nil {
		self.Log.WithError(err).Warn("Could not load contract ABI, using the embedded one")
		return nil
	}
	return
}
