package reconcile

import "errors"

var (
	// Input failed shape validation before anything was submitted
	ErrValidation = errors.New("validation failed")

	// The record exists in the store but carries no chain campaign id,
	// chain-side operations fail fast instead of guessing
	ErrMissingChainLink = errors.New("record has no chain campaign id")

	// The caller does not satisfy the derived-state rule for this operation
	ErrNotEligible = errors.New("caller is not eligible for this operation")
)
