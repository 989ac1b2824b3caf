package physics

import "fmt"

// Default constants of the empirical aperture-efficiency curve,
// calibrated against reflector literature (Balanis ch. 15, Kraus ch. 9,
// Nikolova lecture 19) so that η(0.20)≈0.692, η(0.45)=0.700,
// η(1.00)≈0.629. The curve is only calibrated for the practical
// operating range, roughly f/D 0.3–0.6; beyond ~0.7 it is known to
// drift from the reference data and is kept as-is, an accepted model
// limitation.
const (
	DefaultEfficiencyPeak     = 0.70
	DefaultOptimalFDRatio     = 0.45
	DefaultBlockageCurvature  = 0.128
	DefaultSpilloverCurvature = 0.236
)

// Floor and ceiling of the curve output; the quadratic stays inside
// these for the valid f/D range, the clamp only guards the rim.
const (
	minCurveEfficiency = 0.40
	maxCurveEfficiency = 0.70
)

// EfficiencyCurve models aperture efficiency as an asymmetric quadratic
// in the focal ratio:
//
//	η(f/D) = peak − κ·(f/D − opt)²
//
// with κ = BlockageCurvature below the optimum (deep reflector, the
// feed shades the aperture) and κ = SpilloverCurvature at or above it
// (flat reflector, feed energy spills past the rim). Spillover
// penalizes ~1.84× faster than blockage; the asymmetry is deliberate,
// not an approximation artifact.
type EfficiencyCurve struct {
	Peak               float64
	OptimalFDRatio     float64
	BlockageCurvature  float64
	SpilloverCurvature float64
}

// DefaultEfficiencyCurve returns the literature-calibrated curve.
func DefaultEfficiencyCurve() EfficiencyCurve {
	return EfficiencyCurve{
		Peak:               DefaultEfficiencyPeak,
		OptimalFDRatio:     DefaultOptimalFDRatio,
		BlockageCurvature:  DefaultBlockageCurvature,
		SpilloverCurvature: DefaultSpilloverCurvature,
	}
}

// Validate checks the curve constants are physically sensible.
func (c EfficiencyCurve) Validate() error {
	if c.Peak <= 0 || c.Peak > 1 {
		return fmt.Errorf("efficiency peak must be in (0, 1], got %g", c.Peak)
	}
	if c.OptimalFDRatio <= 0 || c.OptimalFDRatio > 2 {
		return fmt.Errorf("optimal f/D ratio must be in (0, 2], got %g", c.OptimalFDRatio)
	}
	if c.BlockageCurvature < 0 {
		return fmt.Errorf("blockage curvature must be non-negative, got %g", c.BlockageCurvature)
	}
	if c.SpilloverCurvature < 0 {
		return fmt.Errorf("spillover curvature must be non-negative, got %g", c.SpilloverCurvature)
	}
	return nil
}

// At evaluates the curve for one focal ratio.
func (c EfficiencyCurve) At(fdRatio float64) float64 {
	deviation := fdRatio - c.OptimalFDRatio
	curvature := c.SpilloverCurvature
	if deviation < 0 {
		curvature = c.BlockageCurvature
	}
	eta := c.Peak - curvature*deviation*deviation
	if eta < minCurveEfficiency {
		return minCurveEfficiency
	}
	if eta > maxCurveEfficiency {
		return maxCurveEfficiency
	}
	return eta
}

// Batch evaluates the curve for a whole population of focal ratios in
// one pass.
func (c EfficiencyCurve) Batch(fdRatios []float64) []float64 {
	out := make([]float64, len(fdRatios))
	for i, fd := range fdRatios {
		out[i] = c.At(fd)
	}
	return out
}
