package staking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"stakeScope/internal/derive"
	"stakeScope/internal/ledger"
	"stakeScope/internal/model"
)

// EnsurePool returns the pool address for the configured mint, creating
// the pool on-chain if it does not exist yet. Safe under concurrent
// callers: a racing duplicate initialization is rejected atomically by
// the program, and that rejection is treated as pool-already-exists.
func (s *Service) EnsurePool(ctx context.Context) (solana.PublicKey, error) {
	pool, bump, err := derive.PoolAddress(s.params.ProgramID, s.params.Mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	_, err = s.gateway.FetchAccount(ctx, pool)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, ledger.ErrNotFound) {
		return solana.PublicKey{}, fmt.Errorf("read pool: %w", err)
	}

	if s.signer == nil {
		return solana.PublicKey{}, ErrNoSigner
	}

	vault, _, err := derive.VaultAddress(s.params.ProgramID, s.params.Mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	s.logger.Info("pool absent, initializing",
		zap.String("pool", pool.String()),
		zap.String("vault", vault.String()),
	)

	instruction, err := s.initializePoolInstruction(pool, vault, bump)
	if err != nil {
		return solana.PublicKey{}, err
	}

	sig, err := s.signAndSubmit(ctx, []solana.Instruction{instruction})
	if err != nil {
		if isAlreadyInitialized(err) {
			s.logger.Info("pool already initialized by another caller", zap.String("pool", pool.String()))
			return pool, nil
		}
		return solana.PublicKey{}, fmt.Errorf("initialize pool: %w", err)
	}

	if err := s.gateway.AwaitConfirmation(ctx, sig, s.params.Commitment, s.params.ConfirmTimeout); err != nil {
		if isAlreadyInitialized(err) {
			return pool, nil
		}
		return solana.PublicKey{}, fmt.Errorf("confirm pool initialization: %w", err)
	}

	s.logger.Info("pool initialized",
		zap.String("pool", pool.String()),
		zap.String("signature", sig.String()),
	)
	return pool, nil
}

func (s *Service) initializePoolInstruction(pool, vault solana.PublicKey, bump uint8) (solana.Instruction, error) {
	data, err := instructionData(model.InstructionDiscriminator("initialize_pool"), bump)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(s.signer.PublicKey(), true, true),
		solana.NewAccountMeta(s.params.Mint, false, false),
		solana.NewAccountMeta(pool, true, false),
		solana.NewAccountMeta(vault, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	}
	return solana.NewInstruction(s.params.ProgramID, accounts, data), nil
}

// isAlreadyInitialized recognizes the program's duplicate-creation
// rejection, which is success-equivalent for EnsurePool.
func isAlreadyInitialized(err error) bool {
	var rejection *ledger.LedgerRejection
	if !errors.As(err, &rejection) {
		return false
	}
	msg := strings.ToLower(rejection.Message)
	return strings.Contains(msg, "already in use") ||
		strings.Contains(msg, "custom program error: 0x0")
}
