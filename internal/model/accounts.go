package model

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// StakingPool mirrors the on-chain pool account: one per token mint,
// created lazily by the first initializer.
type StakingPool struct {
	Authority   solana.PublicKey
	TokenMint   solana.PublicKey
	TokenVault  solana.PublicKey
	Bump        uint8
	TotalStaked uint64
	APY         uint8
}

// UserStake mirrors the per-(pool, user) stake account. Amount and Rewards
// are in base units.
type UserStake struct {
	User       solana.PublicKey
	Pool       solana.PublicKey
	Amount     uint64
	LastUpdate int64
	Rewards    uint64
}

const discriminatorLen = 8

var (
	stakingPoolDiscriminator = AccountDiscriminator("StakingPool")
	userStakeDiscriminator   = AccountDiscriminator("UserStake")
)

// DecodeStakingPool deserializes raw account data into a StakingPool,
// verifying the account discriminator first.
func DecodeStakingPool(data []byte) (StakingPool, error) {
	var pool StakingPool
	body, err := stripDiscriminator(data, stakingPoolDiscriminator, "StakingPool")
	if err != nil {
		return pool, err
	}
	if err := bin.NewBorshDecoder(body).Decode(&pool); err != nil {
		return pool, fmt.Errorf("decode staking pool: %w", err)
	}
	return pool, nil
}

// DecodeUserStake deserializes raw account data into a UserStake,
// verifying the account discriminator first.
func DecodeUserStake(data []byte) (UserStake, error) {
	var stake UserStake
	body, err := stripDiscriminator(data, userStakeDiscriminator, "UserStake")
	if err != nil {
		return stake, err
	}
	if err := bin.NewBorshDecoder(body).Decode(&stake); err != nil {
		return stake, fmt.Errorf("decode user stake: %w", err)
	}
	return stake, nil
}

func stripDiscriminator(data []byte, want [8]byte, name string) ([]byte, error) {
	if len(data) < discriminatorLen {
		return nil, fmt.Errorf("%s account data too short: %d bytes", name, len(data))
	}
	if !bytes.Equal(data[:discriminatorLen], want[:]) {
		return nil, fmt.Errorf("%s discriminator mismatch", name)
	}
	return data[discriminatorLen:], nil
}
