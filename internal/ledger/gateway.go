package ledger

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// AccountSnapshot is the raw state of one ledger account at read time. It
// may be stale by the ledger's own consistency window.
type AccountSnapshot struct {
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// Gateway is the narrow surface the staking service uses to talk to the
// ledger. It never retries on its own; retry policy belongs to the
// caller.
type Gateway interface {
	// FetchAccount reads one account. Returns ErrNotFound when the
	// account does not exist, which is not a transport failure.
	FetchAccount(ctx context.Context, addr solana.PublicKey) (AccountSnapshot, error)

	// TokenBalance reads the base-unit balance of a token account. A
	// missing account is a zero balance, not an error.
	TokenBalance(ctx context.Context, tokenAccount solana.PublicKey) (uint64, error)

	// LatestBlockhash returns a recent blockhash for transaction assembly.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// Submit sends a signed transaction. A returned signature does not
	// imply finality.
	Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

	// AwaitConfirmation blocks until the signature reaches the given
	// commitment, the ledger reports an execution error, the context is
	// cancelled, or the timeout elapses (ErrConfirmationTimeout). Timing
	// out does not cancel the transaction.
	AwaitConfirmation(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType, timeout time.Duration) error
}
