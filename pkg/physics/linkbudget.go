package physics

import (
	"fmt"
	"math"
)

// LinkBudget holds the RF chain parameters for a one-way ground-to-air
// link. The airborne side is assumed to carry a small fixed-gain
// antenna; the parabolic reflector under design sits on the ground end.
type LinkBudget struct {
	TxPowerDBm           float64
	RxSensitivityDBm     float64
	RequiredSNRDb        float64
	FadeMarginDb         float64
	ImplementationLossDb float64
	MinLinkMarginDb      float64
	AirborneGainDBi      float64
}

// FreeSpacePathLossDb computes FSPL in dB for a range in km and a
// frequency in GHz: 92.45 + 20·log10(d) + 20·log10(f).
func FreeSpacePathLossDb(rangeKm, frequencyGHz float64) (float64, error) {
	if rangeKm <= 0 {
		return 0, fmt.Errorf("range must be positive, got %g", rangeKm)
	}
	if frequencyGHz <= 0 {
		return 0, fmt.Errorf("frequency must be positive, got %g", frequencyGHz)
	}
	return 92.45 + 20*math.Log10(rangeKm) + 20*math.Log10(frequencyGHz), nil
}

// MarginDb returns the link margin left after the receiver threshold
// (sensitivity plus required SNR) and the fade margin are met, for a
// ground antenna of the given gain at the given path loss.
func (lb LinkBudget) MarginDb(groundGainDBi, fsplDb float64) float64 {
	rxPower := lb.TxPowerDBm + groundGainDBi + lb.AirborneGainDBi - fsplDb - lb.ImplementationLossDb
	threshold := lb.RxSensitivityDBm + lb.RequiredSNRDb
	return rxPower - threshold - lb.FadeMarginDb
}

// Closes reports whether the link closes with the required minimum
// margin at the given ground gain and path loss.
func (lb LinkBudget) Closes(groundGainDBi, fsplDb float64) bool {
	return lb.MarginDb(groundGainDBi, fsplDb) >= lb.MinLinkMarginDb
}

// MaxRangeKm solves the budget for the farthest range (km) that still
// closes with the minimum margin at the given ground gain.
func (lb LinkBudget) MaxRangeKm(groundGainDBi, frequencyGHz float64) float64 {
	allowedFspl := lb.TxPowerDBm + groundGainDBi + lb.AirborneGainDBi -
		lb.ImplementationLossDb - (lb.RxSensitivityDBm + lb.RequiredSNRDb) -
		lb.FadeMarginDb - lb.MinLinkMarginDb
	return math.Pow(10, (allowedFspl-92.45-20*math.Log10(frequencyGHz))/20)
}
