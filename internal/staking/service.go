// Package staking orchestrates stake and unstake operations against the
// on-chain pool and reconciles client view state with ledger state.
package staking

import (
	"bytes"
	"context"
	"fmt"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"stakeScope/internal/journal"
	"stakeScope/internal/ledger"
	"stakeScope/internal/model"
	"stakeScope/internal/signer"
)

// Params fixes which program, token, and confirmation policy a Service
// instance operates against. Always passed in explicitly so multiple
// pools or networks can coexist in one process.
type Params struct {
	ProgramID      solana.PublicKey
	Mint           solana.PublicKey
	Commitment     rpc.CommitmentType
	ConfirmTimeout time.Duration

	// DefaultAPY is shown when the pool account does not exist yet.
	DefaultAPY uint8
}

// Service composes the address deriver, ledger gateway, and signer into
// the staking operations. It holds no mutable state: every view is
// rebuilt from ledger reads.
type Service struct {
	params  Params
	gateway ledger.Gateway
	signer  signer.Signer
	journal journal.Sink
	logger  *zap.Logger
}

// New builds a Service. The signer may be nil for read-only use; the
// journal sink may be nil to disable outcome journaling.
func New(params Params, gateway ledger.Gateway, sgn signer.Signer, sink journal.Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if params.ConfirmTimeout <= 0 {
		params.ConfirmTimeout = 60 * time.Second
	}
	if params.Commitment == "" {
		params.Commitment = rpc.CommitmentConfirmed
	}
	return &Service{
		params:  params,
		gateway: gateway,
		signer:  sgn,
		journal: sink,
		logger:  logger,
	}
}

// signAndSubmit assembles, signs, and sends one transaction paid and
// signed by the service signer. The returned signature is not final.
func (s *Service) signAndSubmit(ctx context.Context, instructions []solana.Instruction) (solana.Signature, error) {
	blockhash, err := s.gateway.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(s.signer.PublicKey()))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("marshal message: %w", err)
	}
	sig, err := s.signer.Sign(message)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}
	tx.Signatures = []solana.Signature{sig}

	return s.gateway.Submit(ctx, tx)
}

// record journals a terminal outcome. Journaling is best-effort and never
// fails the staking call.
func (s *Service) record(ctx context.Context, outcome model.Outcome) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Append(ctx, outcome); err != nil {
		s.logger.Warn("journal append failed",
			zap.String("operation", outcome.Operation),
			zap.Error(err),
		)
	}
}

// instructionData encodes an instruction discriminator followed by
// borsh-encoded arguments.
func instructionData(disc [8]byte, args ...interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	enc := bin.NewBorshEncoder(buf)
	for _, arg := range args {
		if err := enc.Encode(arg); err != nil {
			return nil, fmt.Errorf("encode instruction arg: %w", err)
		}
	}
	return buf.Bytes(), nil
}
