// Package physics implements the closed-form electromagnetic model for
// parabolic reflector antennas: aperture gain, half-power beamwidth,
// parabola depth, the empirical aperture-efficiency curve and a
// free-space link budget.
package physics

import (
	"errors"
	"fmt"
	"math"
)

// SpeedOfLight is the vacuum speed of light in m/s, the default for Model.
const SpeedOfLight = 299792458.0

// DefaultKFactor is the beamwidth illumination factor for typical dishes
// with standard edge taper (IEEE Std 145-2013). Balanis gives 58.4 for
// optimal parabolic illumination, Kraus 70 for uniform.
const DefaultKFactor = 65.0

// Practical aperture-efficiency ceiling. Real dishes top out near 0.80
// from spillover, blockage and illumination losses; 0.85 leaves margin
// for exceptional feeds while still rejecting nonsense inputs.
const maxRealisticEfficiency = 0.85

// ErrUnrealisticEfficiency is returned when a gain computation is asked
// for an aperture efficiency above the physical limit.
var ErrUnrealisticEfficiency = errors.New("aperture efficiency above physical limit")

// Model evaluates the closed-form antenna equations. The zero value is
// unusable; construct with NewModel so the propagation constant is set
// explicitly rather than read from ambient state.
type Model struct {
	speedOfLight float64
}

// NewModel returns a Model using the given speed of light (m/s).
func NewModel(speedOfLight float64) (Model, error) {
	if speedOfLight <= 0 {
		return Model{}, fmt.Errorf("speed of light must be positive, got %g", speedOfLight)
	}
	return Model{speedOfLight: speedOfLight}, nil
}

// WavelengthM converts an operating frequency in GHz to a wavelength in
// meters.
func (m Model) WavelengthM(frequencyGHz float64) float64 {
	return m.speedOfLight / (frequencyGHz * 1e9)
}

// Gain computes the aperture gain G = η·(π·D/λ)² in dBi for a single
// geometry.
func (m Model) Gain(diameterM, frequencyGHz, efficiency float64) (float64, error) {
	if diameterM <= 0 {
		return 0, fmt.Errorf("diameter must be positive, got %g", diameterM)
	}
	if frequencyGHz <= 0 {
		return 0, fmt.Errorf("frequency must be positive, got %g", frequencyGHz)
	}
	if efficiency <= 0 {
		return 0, fmt.Errorf("aperture efficiency must be positive, got %g", efficiency)
	}
	if efficiency > maxRealisticEfficiency {
		return 0, fmt.Errorf("%w: got %.3f, max %.2f", ErrUnrealisticEfficiency, efficiency, maxRealisticEfficiency)
	}

	wavelength := m.WavelengthM(frequencyGHz)
	linear := efficiency * math.Pow(math.Pi*diameterM/wavelength, 2)
	return 10 * math.Log10(linear), nil
}

// GainBatch computes gains for a whole population in one pass. diameters
// and efficiencies must have equal length; the frequency is shared.
func (m Model) GainBatch(diameters, efficiencies []float64, frequencyGHz float64) ([]float64, error) {
	if len(diameters) != len(efficiencies) {
		return nil, fmt.Errorf("diameter/efficiency length mismatch: %d vs %d", len(diameters), len(efficiencies))
	}
	if frequencyGHz <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %g", frequencyGHz)
	}

	wavelength := m.WavelengthM(frequencyGHz)
	gains := make([]float64, len(diameters))
	for i, d := range diameters {
		eta := efficiencies[i]
		if d <= 0 {
			return nil, fmt.Errorf("diameter must be positive, got %g at index %d", d, i)
		}
		if eta <= 0 {
			return nil, fmt.Errorf("aperture efficiency must be positive, got %g at index %d", eta, i)
		}
		if eta > maxRealisticEfficiency {
			return nil, fmt.Errorf("%w: got %.3f at index %d, max %.2f", ErrUnrealisticEfficiency, eta, i, maxRealisticEfficiency)
		}
		ratio := math.Pi * d / wavelength
		gains[i] = 10 * math.Log10(eta*ratio*ratio)
	}
	return gains, nil
}

// Beamwidth computes the -3 dB beamwidth θ = k·λ/D in degrees.
func (m Model) Beamwidth(diameterM, frequencyGHz, kFactor float64) (float64, error) {
	if diameterM <= 0 {
		return 0, fmt.Errorf("diameter must be positive, got %g", diameterM)
	}
	if frequencyGHz <= 0 {
		return 0, fmt.Errorf("frequency must be positive, got %g", frequencyGHz)
	}
	if kFactor <= 0 {
		return 0, fmt.Errorf("k factor must be positive, got %g", kFactor)
	}
	return kFactor * m.WavelengthM(frequencyGHz) / diameterM, nil
}

// BeamwidthBatch computes beamwidths for a whole population in one pass.
func (m Model) BeamwidthBatch(diameters []float64, frequencyGHz, kFactor float64) ([]float64, error) {
	if frequencyGHz <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %g", frequencyGHz)
	}
	if kFactor <= 0 {
		return nil, fmt.Errorf("k factor must be positive, got %g", kFactor)
	}
	kLambda := kFactor * m.WavelengthM(frequencyGHz)
	widths := make([]float64, len(diameters))
	for i, d := range diameters {
		if d <= 0 {
			return nil, fmt.Errorf("diameter must be positive, got %g at index %d", d, i)
		}
		widths[i] = kLambda / d
	}
	return widths, nil
}

// Depth is the rim depth of a paraboloid, D²/(16f), in meters.
func Depth(diameterM, focalLengthM float64) float64 {
	return diameterM * diameterM / (16 * focalLengthM)
}
