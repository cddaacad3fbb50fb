package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address, campaign listing and flow endpoints
	ServerListenAddress string

	// Max duration of a single request
	ServerRequestTimeout time.Duration

	// How long the campaign list is served from cache
	ListCacheTTL time.Duration

	// How often expired cache entries are evicted
	ListCacheCleanupInterval time.Duration
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.ServerListenAddress", ":8080")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
	viper.SetDefault("Gateway.ListCacheTTL", "5s")
	viper.SetDefault("Gateway.ListCacheCleanupInterval", "1m")
}
