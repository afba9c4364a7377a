// Package ledger wraps the Solana JSON-RPC API behind the narrow Gateway
// interface the staking service consumes.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"go.uber.org/zap"
)

// Client implements Gateway over a Solana RPC endpoint.
type Client struct {
	rpc          *rpc.Client
	commitment   rpc.CommitmentType
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewClient creates a gateway for the given RPC URL. Reads use the given
// commitment level.
func NewClient(rpcURL string, commitment rpc.CommitmentType, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		rpc:          rpc.New(rpcURL),
		commitment:   commitment,
		pollInterval: 500 * time.Millisecond,
		logger:       logger,
	}
}

// FetchAccount reads one account, mapping a missing account to
// ErrNotFound and transport failures to ConnectivityError.
func (c *Client) FetchAccount(ctx context.Context, addr solana.PublicKey) (AccountSnapshot, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return AccountSnapshot{}, ErrNotFound
		}
		return AccountSnapshot{}, classify("get account info", err)
	}
	if out == nil || out.Value == nil {
		return AccountSnapshot{}, ErrNotFound
	}

	snapshot := AccountSnapshot{
		Owner:    out.Value.Owner,
		Lamports: out.Value.Lamports,
	}
	if data := out.Value.Data; data != nil {
		snapshot.Data = data.GetBinary()
	}
	return snapshot, nil
}

// TokenBalance reads a token account balance in base units. A missing
// account folds to zero.
func (c *Client) TokenBalance(ctx context.Context, tokenAccount solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetTokenAccountBalance(ctx, tokenAccount, c.commitment)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) || isMissingTokenAccount(err) {
			return 0, nil
		}
		return 0, classify("get token balance", err)
	}
	if out == nil || out.Value == nil {
		return 0, nil
	}

	amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token amount %q: %w", out.Value.Amount, err)
	}
	return amount, nil
}

// LatestBlockhash returns a recent blockhash at the client commitment.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, classify("get latest blockhash", err)
	}
	return out.Value.Blockhash, nil
}

// Submit sends a signed transaction with preflight at the client
// commitment. No retries.
func (c *Client) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, classify("send transaction", err)
	}
	c.logger.Debug("transaction submitted", zap.String("signature", sig.String()))
	return sig, nil
}

// AwaitConfirmation polls signature status until the requested commitment
// is reached or the wait ends. Returns ErrConfirmationTimeout when the
// timeout elapses with the outcome still undecided.
func (c *Client) AwaitConfirmation(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return classify("get signature statuses", err)
		}
		if out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return &LedgerRejection{Message: fmt.Sprintf("transaction failed: %v", status.Err)}
			}
			if commitmentReached(status.ConfirmationStatus, commitment) {
				return nil
			}
		}

		if time.Now().After(deadline) {
			c.logger.Warn("confirmation wait elapsed",
				zap.String("signature", sig.String()),
				zap.Duration("timeout", timeout),
			)
			return ErrConfirmationTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func commitmentReached(got rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := map[string]int{
		string(rpc.ConfirmationStatusProcessed): 1,
		string(rpc.ConfirmationStatusConfirmed): 2,
		string(rpc.ConfirmationStatusFinalized): 3,
	}
	gotRank, ok := rank[string(got)]
	if !ok {
		return false
	}
	wantRank, ok := rank[string(want)]
	if !ok {
		wantRank = rank[string(rpc.ConfirmationStatusConfirmed)]
	}
	return gotRank >= wantRank
}

// classify maps an RPC error to the gateway failure taxonomy: execution
// rejections keep their code, everything else is connectivity.
func classify(op string, err error) error {
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return &LedgerRejection{Code: rpcErr.Code, Message: rpcErr.Message}
	}
	return &ConnectivityError{Op: op, Err: err}
}

// isMissingTokenAccount recognizes the RPC's "could not find account"
// rejection for token balance queries on nonexistent accounts.
func isMissingTokenAccount(err error) bool {
	var rpcErr *jsonrpc.RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == -32602
}
