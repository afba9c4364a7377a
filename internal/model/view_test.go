package model

import (
	"math"
	"testing"
)

func TestScaleRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 0.000000001, 25.5, 74.5, 100, 12345.678901234} {
		got := FromBaseUnits(ToBaseUnits(amount))
		if math.Abs(got-amount) > 1.0/BaseUnits {
			t.Fatalf("round trip drifted: %v -> %v", amount, got)
		}
	}
}

func TestToBaseUnitsRounds(t *testing.T) {
	// 0.1 is not exactly representable; rounding must absorb the error.
	if got := ToBaseUnits(0.1); got != 100_000_000 {
		t.Fatalf("unexpected base units: %d", got)
	}
}

func TestDailyReward(t *testing.T) {
	view := StakingView{Staked: 365, APY: 5}
	if got, want := view.DailyReward(), 0.05; math.Abs(got-want) > 1e-12 {
		t.Fatalf("daily reward mismatch: %v != %v", got, want)
	}
}

func TestDailyRewardZeroStake(t *testing.T) {
	view := StakingView{Staked: 0, APY: 5}
	if got := view.DailyReward(); got != 0 {
		t.Fatalf("expected zero reward, got %v", got)
	}
}
