// Package wallet owns the connected-account context. One Session object with
// an explicit lifecycle: init on Connect, refresh on change notifications,
// teardown on Disconnect. Flows receive it by reference, nothing reads
// ambient globals.
package wallet

import (
	"context"
	"errors"
	"math/big"
	"os"
	"sync"

	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/eth"
	"github.com/fundflare/mirror/src/utils/logger"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/external"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoSigner             = errors.New("no signer configured")
	ErrNotConnected         = errors.New("wallet session not connected")
	ErrDisconnectedByUser   = errors.New("user disconnected, auto-reconnect suppressed")
	ErrNoExternalAccounts   = errors.New("external signer exposes no accounts")
)

type ChangeKind string

const (
	Connected      ChangeKind = "connected"
	AccountChanged ChangeKind = "account_changed"
	ChainChanged   ChangeKind = "chain_changed"
	Disconnected   ChangeKind = "disconnected"
)

// Change is delivered to subscribers whenever the session identity moves.
// Receivers must treat it as authoritative and drop any cached
// "is creator" determination.
type Change struct {
	Kind    ChangeKind
	Address string
	ChainID *big.Int
}

type Session struct {
	Log *logrus.Entry

	config *config.Config

	mtx       sync.RWMutex
	client    *ethclient.Client
	signer    *external.ExternalSigner
	opts      *bind.TransactOpts
	address   common.Address
	chainID   *big.Int
	balance   *big.Int
	connected bool
	listeners []func(Change)
}

func NewSession(config *config.Config) (self *Session) {
	self = new(Session)
	self.Log = logger.NewSublogger("wallet")
	self.config = config
	return
}

func (self *Session) Connect(ctx context.Context) (err error) {
	if self.hasDisconnectMarker() {
		return ErrDisconnectedByUser
	}

	ctx, cancel := context.WithTimeout(ctx, self.config.Wallet.ConnectTimeout)
	defer cancel()

	client, err := eth.GetEthClient(ctx, self.Log, self.config.Wallet.RpcUrl)
	if err != nil {
		return
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return
	}

	opts, address, signer, err := self.newTransactor(chainID)
	if err != nil {
		client.Close()
		return
	}

	balance, err := client.BalanceAt(ctx, address, nil)
	if err != nil {
		// Balance is display state, connection stays usable without it
		self.Log.WithError(err).Warn("Could not read initial balance")
		balance = new(big.Int)
	}

	self.mtx.Lock()
	self.client = client
	self.signer = signer
	self.opts = opts
	self.address = address
	self.chainID = chainID
	self.balance = balance
	self.connected = true
	self.mtx.Unlock()

	self.Log.WithField("address", address.Hex()).WithField("chain_id", chainID).Info("Wallet session connected")
	self.notify(Change{Kind: Connected, Address: address.Hex(), ChainID: chainID})
	return
}

func (self *Session) newTransactor(chainID *big.Int) (opts *bind.TransactOpts, address common.Address, signer *external.ExternalSigner, err error) {
	if self.config.Wallet.ClefUrl != "" {
		signer, err = external.NewExternalSigner(self.config.Wallet.ClefUrl)
		if err != nil {
			return
		}

		accounts := signer.Accounts()
		if len(accounts) == 0 {
			err = ErrNoExternalAccounts
			return
		}

		address = accounts[0].Address
		opts = bind.NewClefTransactor(signer, accounts[0])
		return
	}

	if self.config.Wallet.PrivateKey != "" {
		key, keyErr := crypto.HexToECDSA(self.config.Wallet.PrivateKey)
		if keyErr != nil {
			err = keyErr
			return
		}

		opts, err = bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return
		}
		address = crypto.PubkeyToAddress(key.PublicKey)
		return
	}

	err = ErrNoSigner
	return
}

func (self *Session) IsConnected() bool {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.connected
}

func (self *Session) Client() *ethclient.Client {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.client
}

// Address returns the connected account in hex form, empty when disconnected
func (self *Session) Address() string {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	if !self.connected {
		return ""
	}
	return self.address.Hex()
}

func (self *Session) ChainID() *big.Int {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.chainID
}

// Balance refreshes and returns the account balance
func (self *Session) Balance(ctx context.Context) (balance *big.Int, err error) {
	self.mtx.RLock()
	client, address, connected := self.client, self.address, self.connected
	self.mtx.RUnlock()

	if !connected {
		return nil, ErrNotConnected
	}

	balance, err = client.BalanceAt(ctx, address, nil)
	if err != nil {
		return
	}

	self.mtx.Lock()
	self.balance = balance
	self.mtx.Unlock()
	return
}

// Opts returns transaction options bound to the given context
func (self *Session) Opts(ctx context.Context) (*bind.TransactOpts, error) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	if !self.connected || self.opts == nil {
		return nil, ErrNotConnected
	}

	opts := *self.opts
	opts.Context = ctx
	return &opts, nil
}

// OnChange registers a listener, returns an unsubscribe function.
// Session changes are the only trigger for re-deriving caller-identity
// state, there is no polling timer.
func (self *Session) OnChange(f func(Change)) (unsubscribe func()) {
	self.mtx.Lock()
	self.listeners = append(self.listeners, f)
	idx := len(self.listeners) - 1
	self.mtx.Unlock()

	return func() {
		self.mtx.Lock()
		self.listeners[idx] = nil
		self.mtx.Unlock()
	}
}

// Refresh re-reads the live session identity. Emits ChainChanged when the
// node reports a different network and AccountChanged when the external
// signer's selected account moved. Clef pushes neither, so the controller
// calls this on a coarse interval.
func (self *Session) Refresh() {
	self.mtx.RLock()
	client, connected := self.client, self.connected
	self.mtx.RUnlock()
	if !connected {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), self.config.Wallet.ConnectTimeout)
	defer cancel()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		self.Log.WithError(err).Warn("Could not refresh chain id")
	} else {
		self.applyChainID(chainID)
	}

	self.refreshAccounts()
}

func (self *Session) applyChainID(chainID *big.Int) {
	self.mtx.Lock()
	if !self.connected || (self.chainID != nil && self.chainID.Cmp(chainID) == 0) {
		self.mtx.Unlock()
		return
	}

	self.chainID = chainID
	address := self.address.Hex()
	self.mtx.Unlock()

	self.Log.WithField("chain_id", chainID).Info("Wallet network changed")
	self.notify(Change{Kind: ChainChanged, Address: address, ChainID: chainID})
}

func (self *Session) refreshAccounts() {
	self.mtx.Lock()
	if self.signer == nil || !self.connected {
		self.mtx.Unlock()
		return
	}

	accounts := self.signer.Accounts()
	if len(accounts) == 0 || accounts[0].Address == self.address {
		self.mtx.Unlock()
		return
	}

	self.address = accounts[0].Address
	self.opts = bind.NewClefTransactor(self.signer, accounts[0])
	address, chainID := self.address.Hex(), self.chainID
	self.mtx.Unlock()

	self.Log.WithField("address", address).Info("Wallet account changed")
	self.notify(Change{Kind: AccountChanged, Address: address, ChainID: chainID})
}

// Close tears the session down on shutdown, the next Connect is allowed
// to succeed
func (self *Session) Close() {
	self.teardown(false)
}

// Disconnect tears the session down and writes the marker that suppresses
// auto-reconnect
func (self *Session) Disconnect() {
	self.teardown(true)
}

func (self *Session) teardown(writeMarker bool) {
	self.mtx.Lock()
	if !self.connected {
		self.mtx.Unlock()
		return
	}
	self.connected = false
	client := self.client
	self.client = nil
	self.opts = nil
	self.mtx.Unlock()

	if client != nil {
		client.Close()
	}

	if path := self.config.Wallet.DisconnectMarkerPath; writeMarker && path != "" {
		if err := os.WriteFile(path, []byte("disconnected"), 0600); err != nil {
			self.Log.WithError(err).Warn("Could not write disconnect marker")
		}
	}

	self.Log.Info("Wallet session disconnected")
	self.notify(Change{Kind: Disconnected})
}

func (self *Session) hasDisconnectMarker() bool {
	path := self.config.Wallet.DisconnectMarkerPath
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (self *Session) notify(change Change) {
	self.mtx.RLock()
	listeners := make([]func(Change), len(self.listeners))
	copy(listeners, self.listeners)
	self.mtx.RUnlock()

	for _, f := range listeners {
		if f != nil {
			f(change)
		}
	}
}
