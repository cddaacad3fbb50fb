package wallet

import (
	"context"
	"math/big"
	"path/filepath"
	"time"

	"github.com/fundflare/mirror/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

type SessionTestSuite struct {
	suite.Suite

	config *config.Config
}

func (s *SessionTestSuite) SetupTest() {
	s.config = config.Default()
	s.config.Wallet.DisconnectMarkerPath = filepath.Join(s.T().TempDir(), "disconnect")
}

func (s *SessionTestSuite) TestStartsDisconnected() {
	session := NewSession(s.config)
	require.False(s.T(), session.IsConnected())
	require.Empty(s.T(), session.Address())
	require.Nil(s.T(), session.Client())
	require.Nil(s.T(), session.ChainID())
}

func (s *SessionTestSuite) TestOptsRequiresConnection() {
	session := NewSession(s.config)
	_, err := session.Opts(context.Background())
	require.Error(s.T(), err)
}

func (s *SessionTestSuite) TestBalanceRequiresConnection() {
	session := NewSession(s.config)
	_, err := session.Balance(context.Background())
	require.Error(s.T(), err)
}

func (s *SessionTestSuite) TestOnChangeDelivery() {
	session := NewSession(s.config)

	var got []Change
	unsubscribe := session.OnChange(func(change Change) {
		got = append(got, change)
	})

	session.notify(Change{Kind: Connected, Address: "0x1"})
	require.Len(s.T(), got, 1)
	require.Equal(s.T(), Connected, got[0].Kind)

	unsubscribe()
	session.notify(Change{Kind: Disconnected})
	require.Len(s.T(), got, 1)
}

func (s *SessionTestSuite) TestConnectDialFailure() {
	s.config.Wallet.RpcUrl = "ws://127.0.0.1:1"
	s.config.Wallet.ConnectTimeout = time.Second

	session := NewSession(s.config)
	err := session.Connect(context.Background())
	require.Error(s.T(), err)
	require.False(s.T(), session.IsConnected())
}

func (s *SessionTestSuite) TestChainChangeNotification() {
	session := NewSession(s.config)
	session.connected = true
	session.chainID = big.NewInt(1)

	var got []Change
	session.OnChange(func(change Change) {
		got = append(got, change)
	})

	session.applyChainID(big.NewInt(5))
	require.Len(s.T(), got, 1)
	require.Equal(s.T(), ChainChanged, got[0].Kind)
	require.Equal(s.T(), int64(5), got[0].ChainID.Int64())

	// Same network again is not a change
	session.applyChainID(big.NewInt(5))
	require.Len(s.T(), got, 1)
}

func (s *SessionTestSuite) TestDisconnectMarkerBlocksReconnect() {
	session := NewSession(s.config)
	require.False(s.T(), session.hasDisconnectMarker())

	// Marker file written by a user-initiated disconnect survives restarts
	session.connected = true
	session.Disconnect()
	require.True(s.T(), session.hasDisconnectMarker())

	err := session.Connect(context.Background())
	require.Error(s.T(), err)
}

func (s *SessionTestSuite) TestCloseWritesNoMarker() {
	session := NewSession(s.config)
	session.connected = true
	session.Close()
	require.False(s.T(), session.hasDisconnectMarker())
}
