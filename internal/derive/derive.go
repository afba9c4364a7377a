// Package derive computes the program-derived addresses the staking
// client operates on. Pure functions: same inputs, same addresses, in
// every process. No I/O.
package derive

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PDA seed tags. Fixed by the on-chain program; changing them changes the
// entire derived address space.
const (
	seedStakingPool = "staking_pool"
	seedTokenVault  = "token_vault"
	seedUserStake   = "user_stake"
)

// ErrDerivationExhausted reports that no valid bump exists in the search
// range. Astronomically unlikely, but a named condition rather than a
// silent fallback.
var ErrDerivationExhausted = errors.New("derivation exhausted: no valid bump found")

// PoolAddress derives the singleton pool account for a token mint.
func PoolAddress(programID, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return find(programID, [][]byte{[]byte(seedStakingPool), mint.Bytes()})
}

// VaultAddress derives the pool's token vault account for a token mint.
func VaultAddress(programID, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return find(programID, [][]byte{[]byte(seedTokenVault), mint.Bytes()})
}

// UserStakeAddress derives the per-(pool, user) stake account.
func UserStakeAddress(programID, pool, user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return find(programID, [][]byte{[]byte(seedUserStake), pool.Bytes(), user.Bytes()})
}

// PoolAuthority derives the signer address the program uses to release
// vault funds. Seeded by the pool address alone.
func PoolAuthority(programID, pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return find(programID, [][]byte{pool.Bytes()})
}

// UserTokenAccount derives the user's associated token account for the
// mint. This is where stake debits come from and unstake credits land.
func UserTokenAccount(wallet, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive associated token account: %w", err)
	}
	return ata, nil
}

func find(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %v", ErrDerivationExhausted, err)
	}
	return addr, bump, nil
}
