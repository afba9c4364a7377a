package model

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func buildPoolData(t *testing.T, pool StakingPool) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	disc := AccountDiscriminator("StakingPool")
	buf.Write(disc[:])
	buf.Write(pool.Authority[:])
	buf.Write(pool.TokenMint[:])
	buf.Write(pool.TokenVault[:])
	buf.WriteByte(pool.Bump)
	if err := binary.Write(buf, binary.LittleEndian, pool.TotalStaked); err != nil {
		t.Fatalf("write total staked: %v", err)
	}
	buf.WriteByte(pool.APY)
	return buf.Bytes()
}

func buildUserStakeData(t *testing.T, stake UserStake) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	disc := AccountDiscriminator("UserStake")
	buf.Write(disc[:])
	buf.Write(stake.User[:])
	buf.Write(stake.Pool[:])
	for _, v := range []any{stake.Amount, stake.LastUpdate, stake.Rewards} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	return buf.Bytes()
}

func TestDecodeStakingPool(t *testing.T) {
	want := StakingPool{
		Authority:   solana.MustPublicKeyFromBase58("3xxDCjN8s6MgNHwdRExRLa6gHmmRTWPnUdzkbKfEgNAe"),
		TokenMint:   solana.MustPublicKeyFromBase58("38yL1udWqBvxw7PkLSbHCGj59dyiUeiqiCK6jf25nc5m"),
		TokenVault:  solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
		Bump:        254,
		TotalStaked: 123_456_789_000,
		APY:         5,
	}

	got, err := DecodeStakingPool(buildPoolData(t, want))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != want {
		t.Fatalf("pool mismatch: %+v != %+v", got, want)
	}
}

func TestDecodeUserStake(t *testing.T) {
	want := UserStake{
		User:       solana.MustPublicKeyFromBase58("3xxDCjN8s6MgNHwdRExRLa6gHmmRTWPnUdzkbKfEgNAe"),
		Pool:       solana.MustPublicKeyFromBase58("38yL1udWqBvxw7PkLSbHCGj59dyiUeiqiCK6jf25nc5m"),
		Amount:     25_500_000_000,
		LastUpdate: 1_700_000_000,
		Rewards:    42,
	}

	got, err := DecodeUserStake(buildUserStakeData(t, want))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != want {
		t.Fatalf("user stake mismatch: %+v != %+v", got, want)
	}
}

func TestDecodeRejectsWrongDiscriminator(t *testing.T) {
	data := buildUserStakeData(t, UserStake{})
	if _, err := DecodeStakingPool(data); err == nil {
		t.Fatalf("expected discriminator mismatch error")
	}
}

func TestDecodeRejectsShortData(t *testing.T) {
	if _, err := DecodeUserStake([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for truncated data")
	}
}
