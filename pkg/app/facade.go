// Package app provides the application facade: it translates
// user-facing parameters (meters, grams, kilometers) into the core's
// constraint object, gates physically impossible requests before the
// search starts, runs the optimization engine and formats the outcome
// for presentation.
package app

import (
	"errors"
	"fmt"
	"math"

	"k8s.io/klog/v2"

	"github.com/uavlink/antenna-optimizer/pkg/antenna"
	"github.com/uavlink/antenna-optimizer/pkg/config"
	"github.com/uavlink/antenna-optimizer/pkg/optimizer"
	"github.com/uavlink/antenna-optimizer/pkg/physics"
)

// ErrValidation wraps every parameter-translation failure so callers
// can distinguish bad input from engine errors.
var ErrValidation = errors.New("invalid user parameters")

// UserParameters are the high-level inputs in user-facing units. Zero
// fields fall back to the configured defaults.
type UserParameters struct {
	MinDiameterM   float64
	MaxDiameterM   float64
	MaxPayloadG    float64
	MinFDRatio     float64
	MaxFDRatio     float64
	DesiredRangeKm float64
}

// Report is the presentation-ready outcome: dimensions in millimeters
// rounded to manufacturing precision, metrics rounded to measurement
// precision, plus the raw front and convergence trace for export.
type Report struct {
	OptimalDiameterMm    float64               `json:"optimal_diameter_mm"`
	OptimalFocalLengthMm float64               `json:"optimal_focal_length_mm"`
	OptimalDepthMm       float64               `json:"optimal_depth_mm"`
	FDRatio              float64               `json:"f_d_ratio"`
	ExpectedGainDBi      float64               `json:"expected_gain_dbi"`
	BeamwidthDeg         float64               `json:"beamwidth_deg"`
	WeightKg             float64               `json:"weight_kg"`
	OptimalGeometry      antenna.Geometry      `json:"optimal_geometry"`
	ParetoFront          []antenna.ParetoPoint `json:"pareto_front"`
	Convergence          []float64             `json:"convergence"`
}

// Engine is the part of the optimizer the facade depends on.
type Engine interface {
	Run(antenna.Constraints) (*antenna.Result, error)
}

// Facade ties configuration, physics feasibility checks and the engine
// together behind one call.
type Facade struct {
	cfg    config.Config
	model  physics.Model
	engine Engine
}

// New builds a Facade. If engine is nil, a default engine is assembled
// from the configuration.
func New(cfg config.Config, engine Engine) (*Facade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := physics.NewModel(cfg.Physics.SpeedOfLight)
	if err != nil {
		return nil, err
	}
	if engine == nil {
		engine, err = optimizer.New(optimizer.Options{
			Params: optimizer.Params{
				PopulationSize: cfg.Optimization.PopulationSize,
				MaxGenerations: cfg.Optimization.MaxGenerations,
				Seed:           cfg.Optimization.Seed,
			},
			Physics: model,
			Curve: physics.EfficiencyCurve{
				Peak:               cfg.Simulation.EfficiencyPeak,
				OptimalFDRatio:     cfg.Simulation.OptimalFDRatio,
				BlockageCurvature:  cfg.Simulation.BlockageCurvature,
				SpilloverCurvature: cfg.Simulation.SpilloverCurvature,
			},
			Materials: optimizer.Materials{
				ArealDensityKgM2: cfg.Simulation.ArealDensityKgM2,
				FixedWeightKg:    cfg.Simulation.FixedWeightKg,
			},
			BeamwidthKFactor: cfg.Simulation.BeamwidthKFactor,
		})
		if err != nil {
			return nil, err
		}
	}
	return &Facade{cfg: cfg, model: model, engine: engine}, nil
}

// RunOptimization translates the user parameters, checks link
// feasibility, runs the engine and formats the report.
func (f *Facade) RunOptimization(params UserParameters) (*Report, error) {
	constraints, rangeKm, err := f.buildConstraints(params)
	if err != nil {
		return nil, err
	}

	if err := f.checkRangeFeasibility(constraints, rangeKm); err != nil {
		return nil, err
	}

	result, err := f.engine.Run(constraints)
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}
	return formatReport(result), nil
}

// buildConstraints applies defaults, validates against the realistic
// limits and converts units.
func (f *Facade) buildConstraints(params UserParameters) (antenna.Constraints, float64, error) {
	defaults := f.cfg.UserDefaults
	limits := f.cfg.RealisticLimits

	resolve := func(name string, value, fallback, min, max float64, unit string) (float64, error) {
		if value == 0 {
			value = fallback
		}
		if value < min || value > max {
			return 0, fmt.Errorf("%w: %s = %g%s outside the realistic range [%g%s, %g%s]",
				ErrValidation, name, value, unit, min, unit, max, unit)
		}
		return value, nil
	}

	minDiameter, err := resolve("min_diameter_m", params.MinDiameterM, defaults.MinDiameterM,
		limits.MinDiameterM, limits.MaxDiameterM, "m")
	if err != nil {
		return antenna.Constraints{}, 0, err
	}
	maxDiameter, err := resolve("max_diameter_m", params.MaxDiameterM, defaults.MaxDiameterM,
		limits.MinDiameterM, limits.MaxDiameterM, "m")
	if err != nil {
		return antenna.Constraints{}, 0, err
	}
	maxPayloadG, err := resolve("max_payload_g", params.MaxPayloadG, defaults.MaxPayloadG,
		limits.MinPayloadG, limits.MaxPayloadG, "g")
	if err != nil {
		return antenna.Constraints{}, 0, err
	}
	minFD, err := resolve("min_f_d_ratio", params.MinFDRatio, defaults.MinFDRatio,
		limits.MinFDRatio, limits.MaxFDRatio, "")
	if err != nil {
		return antenna.Constraints{}, 0, err
	}
	maxFD, err := resolve("max_f_d_ratio", params.MaxFDRatio, defaults.MaxFDRatio,
		limits.MinFDRatio, limits.MaxFDRatio, "")
	if err != nil {
		return antenna.Constraints{}, 0, err
	}
	rangeKm, err := resolve("desired_range_km", params.DesiredRangeKm, defaults.DesiredRangeKm,
		limits.MinRangeKm, limits.MaxRangeKm, "km")
	if err != nil {
		return antenna.Constraints{}, 0, err
	}

	if minDiameter >= maxDiameter {
		return antenna.Constraints{}, 0, fmt.Errorf(
			"%w: min diameter %gm must be less than max diameter %gm", ErrValidation, minDiameter, maxDiameter)
	}
	if minFD >= maxFD {
		return antenna.Constraints{}, 0, fmt.Errorf(
			"%w: min f/D %g must be less than max f/D %g", ErrValidation, minFD, maxFD)
	}

	constraints := antenna.Constraints{
		MinDiameterM: minDiameter,
		MaxDiameterM: maxDiameter,
		MinFDRatio:   minFD,
		MaxFDRatio:   maxFD,
		MaxWeightKg:  maxPayloadG / 1000.0, // grams to kilograms
		FrequencyGHz: f.cfg.Simulation.FrequencyGHz,
	}
	if err := constraints.Validate(); err != nil {
		return antenna.Constraints{}, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return constraints, rangeKm, nil
}

// checkRangeFeasibility verifies that the desired range is reachable at
// all with the best antenna the diameter bound allows. An unreachable
// range fails fast with the achievable alternative, instead of burning
// the whole search to find out.
func (f *Facade) checkRangeFeasibility(c antenna.Constraints, rangeKm float64) error {
	lb := physics.LinkBudget{
		TxPowerDBm:           f.cfg.LinkBudget.TxPowerDBm,
		RxSensitivityDBm:     f.cfg.LinkBudget.RxSensitivityDBm,
		RequiredSNRDb:        f.cfg.LinkBudget.RequiredSNRDb,
		FadeMarginDb:         f.cfg.LinkBudget.FadeMarginDb,
		ImplementationLossDb: f.cfg.LinkBudget.ImplementationLossDb,
		MinLinkMarginDb:      f.cfg.LinkBudget.MinLinkMarginDb,
		AirborneGainDBi:      f.cfg.LinkBudget.AirborneGainDBi,
	}

	bestGain, err := f.model.Gain(c.MaxDiameterM, c.FrequencyGHz, f.cfg.Simulation.ApertureEfficiency)
	if err != nil {
		return err
	}

	eirp := f.cfg.LinkBudget.TxPowerDBm + bestGain
	if eirp > f.cfg.Regulatory.MaxEIRPDBm {
		klog.InfoS("warning: peak EIRP exceeds the configured regulatory limit",
			"eirpDBm", eirp, "limitDBm", f.cfg.Regulatory.MaxEIRPDBm)
	}

	fspl, err := physics.FreeSpacePathLossDb(rangeKm, c.FrequencyGHz)
	if err != nil {
		return err
	}
	if !lb.Closes(bestGain, fspl) {
		return fmt.Errorf(
			"%w: a %g km link does not close even at the %g m diameter bound (margin %.1f dB, need %.1f dB); achievable range is about %.1f km",
			ErrValidation, rangeKm, c.MaxDiameterM,
			lb.MarginDb(bestGain, fspl), lb.MinLinkMarginDb, lb.MaxRangeKm(bestGain, c.FrequencyGHz))
	}
	return nil
}

// formatReport rounds the result for presentation: dimensions to
// 0.01 mm, f/D to 3 decimals, gain and beamwidth to 2 decimals.
func formatReport(result *antenna.Result) *Report {
	return &Report{
		OptimalDiameterMm:    round(result.Geometry.DiameterM*1000, 2),
		OptimalFocalLengthMm: round(result.Geometry.FocalLengthM*1000, 2),
		OptimalDepthMm:       round(result.Geometry.DepthM()*1000, 2),
		FDRatio:              round(result.Geometry.FDRatio(), 3),
		ExpectedGainDBi:      round(result.Metrics.GainDBi, 2),
		BeamwidthDeg:         round(result.Metrics.BeamwidthDeg, 2),
		WeightKg:             result.WeightKg,
		OptimalGeometry:      result.Geometry,
		ParetoFront:          result.ParetoFront,
		Convergence:          result.Convergence,
	}
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
