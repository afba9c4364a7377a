package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the requested account does not exist on the
// ledger. Distinct from transport failures: callers fold it into a
// defined zero state instead of treating it as an error.
var ErrNotFound = errors.New("account not found")

// ErrConfirmationTimeout reports that the confirmation wait elapsed. The
// submitted transaction may still land; the outcome is unknown, not
// failed.
var ErrConfirmationTimeout = errors.New("confirmation timed out: outcome unknown")

// ConnectivityError wraps a transport-level failure reaching the RPC
// endpoint.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("ledger connectivity: %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// LedgerRejection reports that the ledger accepted the request transport-
// wise but refused to execute it.
type LedgerRejection struct {
	Code    int
	Message string
}

func (e *LedgerRejection) Error() string {
	return fmt.Sprintf("rejected by ledger (code %d): %s", e.Code, e.Message)
}
