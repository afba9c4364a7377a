package staking

import "errors"

// Local pre-check failures. These fail closed before anything is
// submitted, so no transaction outcome is produced for them. The ledger
// re-validates every condition they approximate.
var (
	ErrNoSigner            = errors.New("no signer connected")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrInsufficientStake   = errors.New("amount exceeds staked balance")
)
