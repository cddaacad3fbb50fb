package chain

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy of the chain gateway. Flows match on these sentinels and
// translate them into user-visible messages at the flow boundary.
var (
	// No connected wallet session or provider
	ErrWalletUnavailable = errors.New("wallet unavailable")

	// Read-only calls need a session too, the provider is the contract's door
	ErrContractUnavailable = errors.New("contract unavailable")

	// The signer declined to sign the transaction
	ErrUserRejected = errors.New("user rejected the transaction")

	// Any other submission failure
	ErrSubmission = errors.New("transaction submission failed")

	// Mined but reverted, the revert reason is carried when extractable
	ErrReverted = errors.New("transaction reverted")

	// Vanished from the pool without being mined
	ErrDropped = errors.New("transaction dropped")

	// Confirmation wait exceeded the configured bound
	ErrConfirmationTimeout = errors.New("confirmation timed out")

	// Fund amount must be a strictly positive integer
	ErrInvalidAmount = errors.New("invalid amount")

	// Read-only call failed or reverted
	ErrRead = errors.New("contract read failed")
)

// classifySubmission folds raw signer/provider errors into the taxonomy.
// Clef reports "Request denied", EIP-1193 providers use code 4001 with
// "User rejected" wording.
func classifySubmission(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "denied") || strings.Contains(msg, "rejected") {
		return fmt.Errorf("%w: %s", ErrUserRejected, err.Error())
	}

	return fmt.Errorf("%w: %s", ErrSubmission, err.Error())
}
