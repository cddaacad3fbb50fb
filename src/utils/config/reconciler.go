package config

import (
	"time"

	"github.com/spf13/viper"
)

type Reconciler struct {
	// Max time between failed retries to patch the metadata store
	PatchBackoffMaxInterval time.Duration

	// Max total time spent retrying a single patch, 0 is no limit
	PatchBackoffMaxElapsedTime time.Duration

	// Cron schedule of the sweep that heals stale mirror rows
	SweeperSchedule string

	// Max number of campaigns refreshed in one sweep run
	SweeperBatchSize int

	// Whether the sweeper is started at all
	SweeperEnabled bool
}

func setReconcilerDefaults() {
	viper.SetDefault("Reconciler.PatchBackoffMaxInterval", "10s")
	viper.SetDefault("Reconciler.PatchBackoffMaxElapsedTime", "1m")
	viper.SetDefault("Reconciler.SweeperSchedule", "@every 10m")
	viper.SetDefault("Reconciler.SweeperBatchSize", 100)
	viper.SetDefault("Reconciler.SweeperEnabled", "true")
}
