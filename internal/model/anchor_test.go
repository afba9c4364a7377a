package model

import "testing"

func TestDiscriminatorsAreStable(t *testing.T) {
	first := InstructionDiscriminator("stake")
	second := InstructionDiscriminator("stake")
	if first != second {
		t.Fatalf("instruction discriminator not deterministic: %x != %x", first, second)
	}
}

func TestDiscriminatorsAreDistinct(t *testing.T) {
	seen := map[[8]byte]string{}
	for _, name := range []string{"initialize_pool", "stake", "unstake"} {
		d := InstructionDiscriminator(name)
		if prev, ok := seen[d]; ok {
			t.Fatalf("discriminator collision: %s and %s", prev, name)
		}
		seen[d] = name
	}

	if AccountDiscriminator("StakingPool") == AccountDiscriminator("UserStake") {
		t.Fatalf("account discriminators collide")
	}
}

func TestAccountAndInstructionNamespacesDiffer(t *testing.T) {
	if AccountDiscriminator("stake") == InstructionDiscriminator("stake") {
		t.Fatalf("namespaces must not collide for the same name")
	}
}
