package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

func TestCommitmentReached(t *testing.T) {
	cases := []struct {
		got  rpc.ConfirmationStatusType
		want rpc.CommitmentType
		ok   bool
	}{
		{rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed, false},
		{rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed, true},
		{rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed, true},
		{rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized, false},
		{rpc.ConfirmationStatusFinalized, rpc.CommitmentFinalized, true},
		{rpc.ConfirmationStatusProcessed, rpc.CommitmentProcessed, true},
	}

	for _, tc := range cases {
		if got := commitmentReached(tc.got, tc.want); got != tc.ok {
			t.Fatalf("commitmentReached(%s, %s) = %v, want %v", tc.got, tc.want, got, tc.ok)
		}
	}
}

func TestClassifyRejection(t *testing.T) {
	rpcErr := &jsonrpc.RPCError{Code: -32002, Message: "Transaction simulation failed"}
	err := classify("send transaction", fmt.Errorf("call: %w", rpcErr))

	var rejection *LedgerRejection
	if !errors.As(err, &rejection) {
		t.Fatalf("expected LedgerRejection, got %T", err)
	}
	if rejection.Code != -32002 {
		t.Fatalf("unexpected code: %d", rejection.Code)
	}
}

func TestClassifyConnectivity(t *testing.T) {
	err := classify("get account info", errors.New("dial tcp: connection refused"))

	var conn *ConnectivityError
	if !errors.As(err, &conn) {
		t.Fatalf("expected ConnectivityError, got %T", err)
	}
	if conn.Op != "get account info" {
		t.Fatalf("unexpected op: %s", conn.Op)
	}
}

func TestNotFoundIsNotConnectivity(t *testing.T) {
	var conn *ConnectivityError
	if errors.As(ErrNotFound, &conn) {
		t.Fatalf("ErrNotFound must not classify as connectivity")
	}
}
