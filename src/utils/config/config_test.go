package config

import (
	"os"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config := Default()
	require.NotNil(s.T(), config)

	require.Equal(s.T(), ":8080", config.Gateway.ServerListenAddress)
	require.Equal(s.T(), 5*time.Second, config.Gateway.ListCacheTTL)
	require.Equal(s.T(), "@every 10m", config.Reconciler.SweeperSchedule)
	require.Equal(s.T(), 100, config.Reconciler.SweeperBatchSize)
	require.True(s.T(), config.Reconciler.SweeperEnabled)
	require.False(s.T(), config.Redis.Enabled)
	require.Equal(s.T(), "campaign_updates", config.Redis.ChannelName)
	require.Equal(s.T(), 10*time.Minute, config.Contract.ConfirmationTimeout)
	require.Equal(s.T(), 30*time.Second, config.Wallet.AccountRefreshInterval)
	require.Equal(s.T(), 30*time.Second, config.StopTimeout)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	require.NoError(s.T(), os.Setenv("MIRROR_CONTRACT_ADDRESS", "0x1234"))
	defer os.Unsetenv("MIRROR_CONTRACT_ADDRESS")

	config := Default()
	require.Equal(s.T(), "0x1234", config.Contract.Address)
}

func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := Load("does-not-exist.json")
	require.Error(s.T(), err)
}
