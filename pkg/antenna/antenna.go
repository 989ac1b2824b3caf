// Package antenna holds the domain model for parabolic reflector design:
// geometries, performance metrics, optimization constraints and results.
// All invariants are enforced at construction time; values are never
// clamped or coerced.
package antenna

import (
	"errors"
	"fmt"
)

// Practical bounds for the focal ratio. Outside this range a reflector is
// buildable on paper but not in practice (too deep or too flat).
const (
	MinFDRatio = 0.2
	MaxFDRatio = 1.5
)

var (
	ErrInvalidGeometry    = errors.New("invalid antenna geometry")
	ErrInvalidConstraints = errors.New("invalid optimization constraints")
)

// Geometry is the physical shape of a parabolic reflector. Construct it
// with NewGeometry; a validated Geometry is treated as immutable.
type Geometry struct {
	DiameterM    float64 `json:"diameter_m"`
	FocalLengthM float64 `json:"focal_length_m"`
}

// NewGeometry validates diameter and focal length (meters) and the
// resulting f/D ratio against the practical range.
func NewGeometry(diameterM, focalLengthM float64) (Geometry, error) {
	if diameterM <= 0 {
		return Geometry{}, fmt.Errorf("%w: diameter must be positive, got %g", ErrInvalidGeometry, diameterM)
	}
	if focalLengthM <= 0 {
		return Geometry{}, fmt.Errorf("%w: focal length must be positive, got %g", ErrInvalidGeometry, focalLengthM)
	}
	g := Geometry{DiameterM: diameterM, FocalLengthM: focalLengthM}
	fd := g.FDRatio()
	if fd < MinFDRatio {
		return Geometry{}, fmt.Errorf("%w: f/D ratio %.3f below practical minimum %g (reflector too deep)",
			ErrInvalidGeometry, fd, MinFDRatio)
	}
	if fd > MaxFDRatio {
		return Geometry{}, fmt.Errorf("%w: f/D ratio %.3f above practical maximum %g (reflector too flat)",
			ErrInvalidGeometry, fd, MaxFDRatio)
	}
	return g, nil
}

// FDRatio is the dimensionless focal ratio f/D.
func (g Geometry) FDRatio() float64 {
	return g.FocalLengthM / g.DiameterM
}

// DepthM is the depth of the paraboloid at the rim, D²/(16f).
func (g Geometry) DepthM() float64 {
	return g.DiameterM * g.DiameterM / (16 * g.FocalLengthM)
}

// PerformanceMetrics are the derived radio characteristics of a geometry
// at a given operating frequency.
type PerformanceMetrics struct {
	GainDBi      float64 `json:"gain_dbi"`
	BeamwidthDeg float64 `json:"beamwidth_deg"`
}

// Constraints bound the search space for one optimization run. Built by
// the translation layer; read-only to the core.
type Constraints struct {
	MinDiameterM float64 `json:"min_diameter_m"`
	MaxDiameterM float64 `json:"max_diameter_m"`
	MinFDRatio   float64 `json:"min_f_d_ratio"`
	MaxFDRatio   float64 `json:"max_f_d_ratio"`
	MaxWeightKg  float64 `json:"max_weight_kg"`
	FrequencyGHz float64 `json:"frequency_ghz"`
}

// Validate checks positivity and min<max for every bounded pair.
func (c Constraints) Validate() error {
	if c.MinDiameterM <= 0 {
		return fmt.Errorf("%w: min diameter must be positive, got %g", ErrInvalidConstraints, c.MinDiameterM)
	}
	if c.MaxDiameterM <= 0 {
		return fmt.Errorf("%w: max diameter must be positive, got %g", ErrInvalidConstraints, c.MaxDiameterM)
	}
	if c.MinDiameterM >= c.MaxDiameterM {
		return fmt.Errorf("%w: min diameter %g must be less than max diameter %g",
			ErrInvalidConstraints, c.MinDiameterM, c.MaxDiameterM)
	}
	if c.MinFDRatio <= 0 {
		return fmt.Errorf("%w: min f/D ratio must be positive, got %g", ErrInvalidConstraints, c.MinFDRatio)
	}
	if c.MaxFDRatio <= 0 {
		return fmt.Errorf("%w: max f/D ratio must be positive, got %g", ErrInvalidConstraints, c.MaxFDRatio)
	}
	if c.MinFDRatio >= c.MaxFDRatio {
		return fmt.Errorf("%w: min f/D ratio %g must be less than max f/D ratio %g",
			ErrInvalidConstraints, c.MinFDRatio, c.MaxFDRatio)
	}
	if c.MaxWeightKg <= 0 {
		return fmt.Errorf("%w: max weight must be positive, got %g", ErrInvalidConstraints, c.MaxWeightKg)
	}
	if c.FrequencyGHz <= 0 {
		return fmt.Errorf("%w: frequency must be positive, got %g", ErrInvalidConstraints, c.FrequencyGHz)
	}
	return nil
}

// ParetoPoint is one non-dominated design on the gain/weight trade-off.
type ParetoPoint struct {
	Geometry Geometry           `json:"geometry"`
	Metrics  PerformanceMetrics `json:"metrics"`
	WeightKg float64            `json:"weight_kg"`
}

// Result is the full outcome of one optimization run: the knee-selected
// design, the discovered Pareto front and the convergence trace (best
// feasible gain at the end of each generation). Plain data, safe to
// serialize; never mutated after the run returns.
type Result struct {
	Geometry    Geometry           `json:"geometry"`
	Metrics     PerformanceMetrics `json:"metrics"`
	WeightKg    float64            `json:"weight_kg"`
	ParetoFront []ParetoPoint      `json:"pareto_front"`
	Convergence []float64          `json:"convergence_history"`
}
