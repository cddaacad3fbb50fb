package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// Consecutive pool misses before a pending transaction counts as dropped
const droppedThreshold = 3

// AwaitConfirmation blocks until the transaction is mined or fails.
// Suspension through a ticker, never a busy loop. The wait has no
// correctness-driven bound; the configured timeout is a usability guard
// surfaced as its own error kind.
func (self *Gateway) AwaitConfirmation(ctx context.Context, tx *types.Transaction) (receipt *types.Receipt, err error) {
	client := self.session.Client()
	if client == nil {
		return nil, ErrWalletUnavailable
	}

	if timeout := self.config.Contract.ConfirmationTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(self.config.Contract.ConfirmationPollInterval)
	defer ticker.Stop()

	notFoundCount := 0
	for {
		receipt, err = client.TransactionReceipt(ctx, tx.Hash())
		if err == nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return nil, self.revertError(ctx, tx, receipt)
			}
			self.Log.WithField("tx_id", tx.Hash()).WithField("block", receipt.BlockNumber).Debug("Transaction confirmed")
			return receipt, nil
		}

		if errors.Is(err, ethereum.NotFound) {
			// Not mined yet, make sure the transaction is still known to the pool
			_, _, poolErr := client.TransactionByHash(ctx, tx.Hash())
			if errors.Is(poolErr, ethereum.NotFound) {
				notFoundCount++
				if notFoundCount >= droppedThreshold {
					return nil, fmt.Errorf("%w: %s", ErrDropped, tx.Hash())
				}
			} else {
				notFoundCount = 0
			}
		} else {
			// Transient RPC failure, keep polling
			self.Log.WithError(err).WithField("tx_id", tx.Hash()).Warn("Receipt poll failed")
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrConfirmationTimeout, tx.Hash())
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// revertError tries to recover the revert reason by replaying the call at
// the failing block. Best effort, the receipt alone doesn't carry it.
func (self *Gateway) revertError(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) error {
	client := self.session.Client()
	if client == nil {
		return ErrReverted
	}

	msg := ethereum.CallMsg{
		To:       tx.To(),
		Data:     tx.Data(),
		Value:    tx.Value(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice(),
	}
	if sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx); err == nil {
		msg.From = sender
	}

	_, err := client.CallContract(ctx, msg, receipt.BlockNumber)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrReverted, err.Error())
	}
	return ErrReverted
}
