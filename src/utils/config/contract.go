package config

import (
	"time"

	"github.com/spf13/viper"
)

type Contract struct {
	// Address of the deployed crowdfunding contract
	Address string

	// Optional path to a JSON file with the contract's ABI.
	// When empty the embedded ABI is used.
	AbiPath string

	// Block explorer API, used as an alternative ABI source
	ExplorerApiUrl string

	// API key for the block explorer
	ExplorerApiKey string

	// Max time to wait for a submitted transaction to be mined.
	// Confirmation waits have no correctness-driven bound, this is a usability guard.
	ConfirmationTimeout time.Duration

	// How often to poll for the transaction receipt
	ConfirmationPollInterval time.Duration

	// Max read-only contract calls per second
	ReadRateLimit int
}

func setContractDefaults() {
	viper.SetDefault("Contract.Address", "")
	viper.SetDefault("Contract.AbiPath", "")
	viper.SetDefault("Contract.ExplorerApiUrl", "")
	viper.SetDefault("Contract.ExplorerApiKey", "")
	viper.SetDefault("Contract.ConfirmationTimeout", "10m")
	viper.SetDefault("Contract.ConfirmationPollInterval", "2s")
	viper.SetDefault("Contract.ReadRateLimit", 10)
}
