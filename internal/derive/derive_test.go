package derive

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

var (
	testProgram = solana.MustPublicKeyFromBase58("DDqtf1nGhbkndVh8Vc8RqCPj3dimz9YkrJCjJzxxRqrs")
	testMint    = solana.MustPublicKeyFromBase58("38yL1udWqBvxw7PkLSbHCGj59dyiUeiqiCK6jf25nc5m")
	testUser    = solana.MustPublicKeyFromBase58("3xxDCjN8s6MgNHwdRExRLa6gHmmRTWPnUdzkbKfEgNAe")
)

func TestPoolAddressDeterministic(t *testing.T) {
	first, firstBump, err := PoolAddress(testProgram, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, secondBump, err := PoolAddress(testProgram, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second || firstBump != secondBump {
		t.Fatalf("derivation not deterministic: %s/%d != %s/%d", first, firstBump, second, secondBump)
	}
}

func TestDerivedAddressesDistinct(t *testing.T) {
	pool, _, err := PoolAddress(testProgram, testMint)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	vault, _, err := VaultAddress(testProgram, testMint)
	if err != nil {
		t.Fatalf("vault: %v", err)
	}
	stake, _, err := UserStakeAddress(testProgram, pool, testUser)
	if err != nil {
		t.Fatalf("user stake: %v", err)
	}
	authority, _, err := PoolAuthority(testProgram, pool)
	if err != nil {
		t.Fatalf("pool authority: %v", err)
	}

	seen := map[solana.PublicKey]string{
		pool:      "pool",
		vault:     "vault",
		stake:     "user stake",
		authority: "pool authority",
	}
	if len(seen) != 4 {
		t.Fatalf("derived addresses collide: %v", seen)
	}
}

func TestDifferentProgramsDiverge(t *testing.T) {
	otherProgram := solana.MustPublicKeyFromBase58("HD2Ya6ng1icMrKyxdB74xC5fbud2zYyFwieQcbtGQS3k")

	a, _, err := PoolAddress(testProgram, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := PoolAddress(otherProgram, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("pool address must depend on program id")
	}
}

func TestUserStakeDependsOnUser(t *testing.T) {
	pool, _, err := PoolAddress(testProgram, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _, err := UserStakeAddress(testProgram, pool, testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := UserStakeAddress(testProgram, pool, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("user stake address must depend on user key")
	}
}

func TestUserTokenAccount(t *testing.T) {
	first, err := UserTokenAccount(testUser, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := UserTokenAccount(testUser, testMint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("associated token address not deterministic")
	}
}
