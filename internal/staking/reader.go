package staking

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"stakeScope/internal/derive"
	"stakeScope/internal/ledger"
	"stakeScope/internal/model"
)

// Refresh rebuilds the staking view for a user from ledger reads. A
// missing user-stake account is a defined zero state, never an error.
// Idempotent and side-effect free; this is the only path by which view
// state is produced.
func (s *Service) Refresh(ctx context.Context, user solana.PublicKey) (model.StakingView, error) {
	view := model.StakingView{APY: s.params.DefaultAPY}

	pool, _, err := derive.PoolAddress(s.params.ProgramID, s.params.Mint)
	if err != nil {
		return view, err
	}

	poolSnapshot, err := s.gateway.FetchAccount(ctx, pool)
	switch {
	case err == nil:
		poolAccount, err := model.DecodeStakingPool(poolSnapshot.Data)
		if err != nil {
			return view, fmt.Errorf("pool account: %w", err)
		}
		view.APY = poolAccount.APY
	case errors.Is(err, ledger.ErrNotFound):
		// Pool not bootstrapped yet; zero totals, default rate.
	default:
		return view, fmt.Errorf("read pool: %w", err)
	}

	userStakeAddr, _, err := derive.UserStakeAddress(s.params.ProgramID, pool, user)
	if err != nil {
		return view, err
	}

	stakeSnapshot, err := s.gateway.FetchAccount(ctx, userStakeAddr)
	switch {
	case err == nil:
		stake, err := model.DecodeUserStake(stakeSnapshot.Data)
		if err != nil {
			return view, fmt.Errorf("user stake account: %w", err)
		}
		view.Staked = model.FromBaseUnits(stake.Amount)
		view.Rewards = model.FromBaseUnits(stake.Rewards)
	case errors.Is(err, ledger.ErrNotFound):
		// No stake yet: staked and rewards are exactly zero.
	default:
		return view, fmt.Errorf("read user stake: %w", err)
	}

	userToken, err := derive.UserTokenAccount(user, s.params.Mint)
	if err != nil {
		return view, err
	}
	balance, err := s.gateway.TokenBalance(ctx, userToken)
	if err != nil {
		return view, fmt.Errorf("read token balance: %w", err)
	}
	view.Available = model.FromBaseUnits(balance)

	return view, nil
}
