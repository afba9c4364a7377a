package model

import "math"

// BaseUnits is the number of smallest token units per display unit.
const BaseUnits = 1_000_000_000

// StakingView is the reconciled client-side snapshot for one user. All
// amounts are display units. It is rebuilt from ledger reads and never
// mutated in place.
type StakingView struct {
	Available float64 `json:"available"`
	Staked    float64 `json:"staked"`
	Rewards   float64 `json:"rewards"`
	APY       uint8   `json:"apy"`
}

// DailyReward estimates one day of yield at the current stake and rate.
// Display-only approximation, never submitted to the ledger.
func (v StakingView) DailyReward() float64 {
	return v.Staked * float64(v.APY) / 365 / 100
}

// ToBaseUnits converts a display amount to smallest units, rounding to the
// nearest unit.
func ToBaseUnits(amount float64) uint64 {
	return uint64(math.Round(amount * BaseUnits))
}

// FromBaseUnits converts smallest units to a display amount.
func FromBaseUnits(amount uint64) float64 {
	return float64(amount) / BaseUnits
}
