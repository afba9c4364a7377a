package staking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"stakeScope/internal/derive"
	"stakeScope/internal/ledger"
	"stakeScope/internal/model"
)

// Stake moves amount display units from the user's token account into the
// pool vault, creating the user-stake account on first use. On success
// the view is reconciled from the ledger; on failure no local state
// changes. A confirmation timeout yields an "unknown" outcome, not a
// failure.
func (s *Service) Stake(ctx context.Context, amount float64) (*model.Outcome, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if s.signer == nil {
		return nil, ErrNoSigner
	}
	base := model.ToBaseUnits(amount)
	user := s.signer.PublicKey()

	userToken, err := derive.UserTokenAccount(user, s.params.Mint)
	if err != nil {
		return nil, err
	}

	// Advisory only: the ledger is the final arbiter at execution time.
	balance, err := s.gateway.TokenBalance(ctx, userToken)
	if err != nil {
		return nil, fmt.Errorf("read token balance: %w", err)
	}
	if balance < base {
		return nil, fmt.Errorf("%w: have %d, need %d base units", ErrInsufficientBalance, balance, base)
	}

	pool, err := s.EnsurePool(ctx)
	if err != nil {
		return nil, err
	}

	vault, _, err := derive.VaultAddress(s.params.ProgramID, s.params.Mint)
	if err != nil {
		return nil, err
	}
	userStake, _, err := derive.UserStakeAddress(s.params.ProgramID, pool, user)
	if err != nil {
		return nil, err
	}

	instruction, err := s.stakeInstruction(base, user, pool, vault, userToken, userStake)
	if err != nil {
		return nil, err
	}

	return s.execute(ctx, "stake", amount, instruction)
}

// Unstake moves amount display units from the vault back to the user's
// token account. The pool-authority derived signer is always named in the
// request so the vault can release funds.
func (s *Service) Unstake(ctx context.Context, amount float64) (*model.Outcome, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if s.signer == nil {
		return nil, ErrNoSigner
	}
	base := model.ToBaseUnits(amount)
	user := s.signer.PublicKey()

	// Advisory only: the program re-validates against the stake account.
	// This refresh is a side-effect-free read; nothing is submitted and
	// no outcome is produced when the check rejects.
	view, err := s.Refresh(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("read staked amount: %w", err)
	}
	if staked := model.ToBaseUnits(view.Staked); base > staked {
		return nil, fmt.Errorf("%w: staked %d, requested %d base units", ErrInsufficientStake, staked, base)
	}

	pool, _, err := derive.PoolAddress(s.params.ProgramID, s.params.Mint)
	if err != nil {
		return nil, err
	}
	authority, _, err := derive.PoolAuthority(s.params.ProgramID, pool)
	if err != nil {
		return nil, err
	}
	vault, _, err := derive.VaultAddress(s.params.ProgramID, s.params.Mint)
	if err != nil {
		return nil, err
	}
	userToken, err := derive.UserTokenAccount(user, s.params.Mint)
	if err != nil {
		return nil, err
	}
	userStake, _, err := derive.UserStakeAddress(s.params.ProgramID, pool, user)
	if err != nil {
		return nil, err
	}

	instruction, err := s.unstakeInstruction(base, user, pool, authority, vault, userToken, userStake)
	if err != nil {
		return nil, err
	}

	return s.execute(ctx, "unstake", amount, instruction)
}

// execute submits one instruction, awaits confirmation, journals the
// terminal outcome, and reconciles on success. The confirmation wait
// strictly precedes the reconciliation read.
func (s *Service) execute(ctx context.Context, op string, amount float64, instruction solana.Instruction) (*model.Outcome, error) {
	outcome := model.Outcome{
		Operation:   op,
		Amount:      amount,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	sig, err := s.signAndSubmit(ctx, []solana.Instruction{instruction})
	if err != nil {
		outcome.Status = model.OutcomeFailed
		outcome.Reason = err.Error()
		outcome.ResolvedAt = time.Now().UTC().Format(time.RFC3339Nano)
		s.record(ctx, outcome)
		return &outcome, fmt.Errorf("%s failed: %w", op, err)
	}
	outcome.Signature = sig.String()

	err = s.gateway.AwaitConfirmation(ctx, sig, s.params.Commitment, s.params.ConfirmTimeout)
	outcome.ResolvedAt = time.Now().UTC().Format(time.RFC3339Nano)

	switch {
	case err == nil:
		outcome.Status = model.OutcomeConfirmed
	case outcomeUndecided(err):
		// The transaction is already submitted; an aborted or failing
		// wait proves nothing about its fate. The next refresh is the
		// source of truth.
		outcome.Status = model.OutcomeUnknown
		outcome.Reason = err.Error()
		s.record(ctx, outcome)
		return &outcome, fmt.Errorf("%s unresolved: %w", op, err)
	default:
		outcome.Status = model.OutcomeFailed
		outcome.Reason = err.Error()
		s.record(ctx, outcome)
		return &outcome, fmt.Errorf("%s failed: %w", op, err)
	}

	s.record(ctx, outcome)
	s.logger.Info("operation confirmed",
		zap.String("operation", op),
		zap.Float64("amount", amount),
		zap.String("signature", sig.String()),
	)

	if view, err := s.Refresh(ctx, s.signer.PublicKey()); err != nil {
		s.logger.Warn("post-operation refresh failed", zap.Error(err))
	} else {
		s.logger.Info("view reconciled",
			zap.Float64("staked", view.Staked),
			zap.Float64("available", view.Available),
		)
	}

	return &outcome, nil
}

// outcomeUndecided reports whether a confirmation-wait error leaves the
// transaction's fate open. Only an execution rejection from the ledger
// proves failure; a timeout, a cancelled wait, or a transport failure
// while polling does not.
func outcomeUndecided(err error) bool {
	if errors.Is(err, ledger.ErrConfirmationTimeout) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var conn *ledger.ConnectivityError
	return errors.As(err, &conn)
}

func (s *Service) stakeInstruction(base uint64, user, pool, vault, userToken, userStake solana.PublicKey) (solana.Instruction, error) {
	data, err := instructionData(model.InstructionDiscriminator("stake"), base)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(pool, true, false),
		solana.NewAccountMeta(s.params.Mint, false, false),
		solana.NewAccountMeta(vault, true, false),
		solana.NewAccountMeta(userToken, true, false),
		solana.NewAccountMeta(userStake, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}
	return solana.NewInstruction(s.params.ProgramID, accounts, data), nil
}

func (s *Service) unstakeInstruction(base uint64, user, pool, authority, vault, userToken, userStake solana.PublicKey) (solana.Instruction, error) {
	data, err := instructionData(model.InstructionDiscriminator("unstake"), base)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(pool, true, false),
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(vault, true, false),
		solana.NewAccountMeta(userToken, true, false),
		solana.NewAccountMeta(userStake, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}
	return solana.NewInstruction(s.params.ProgramID, accounts, data), nil
}
