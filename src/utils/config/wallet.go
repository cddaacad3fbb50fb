package config

import (
	"time"

	"github.com/spf13/viper"
)

type Wallet struct {
	// JSON-RPC endpoint of the node
	RpcUrl string

	// Hex-encoded private key, development setups only
	PrivateKey string

	// Clef external signer endpoint. Takes precedence over PrivateKey.
	// Transaction approval happens in the signer's own UI.
	ClefUrl string

	// Timeout for the initial connection handshake
	ConnectTimeout time.Duration

	// How often the session identity (chain id, external signer's account
	// list) is re-read. Clef pushes neither.
	AccountRefreshInterval time.Duration

	// Path of the marker file written on explicit disconnect,
	// suppresses auto-reconnect on restart
	DisconnectMarkerPath string
}

func setWalletDefaults() {
	viper.SetDefault("Wallet.RpcUrl", "ws://127.0.0.1:8546")
	viper.SetDefault("Wallet.PrivateKey", "")
	viper.SetDefault("Wallet.ClefUrl", "")
	viper.SetDefault("Wallet.ConnectTimeout", "15s")
	viper.SetDefault("Wallet.AccountRefreshInterval", "30s")
	viper.SetDefault("Wallet.DisconnectMarkerPath", "")
}
