// Package config loads the declarative configuration file: physical
// constants, simulation constants, algorithm tuning, user-facing
// defaults and limits, and the link-budget chain. The loaded value is
// passed explicitly into the engine and facade; nothing in the core
// reads configuration on its own.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config is the full application configuration.
type Config struct {
	Physics         Physics         `json:"physics"`
	Simulation      Simulation      `json:"simulation"`
	Optimization    Optimization    `json:"optimization"`
	UserDefaults    UserParams      `json:"user_defaults"`
	LinkBudget      LinkBudget      `json:"link_budget"`
	Regulatory      Regulatory      `json:"regulatory"`
	RealisticLimits RealisticLimits `json:"realistic_limits"`
}

// Physics holds universal constants.
type Physics struct {
	SpeedOfLight float64 `json:"speed_of_light"`
}

// Simulation holds the constants of the physical model.
type Simulation struct {
	FrequencyGHz       float64 `json:"frequency_ghz"`
	ApertureEfficiency float64 `json:"aperture_efficiency"`
	BeamwidthKFactor   float64 `json:"beamwidth_k_factor"`
	ArealDensityKgM2   float64 `json:"reflector_areal_density_kg_per_m2"`
	FixedWeightKg      float64 `json:"fixed_component_weight_kg"`
	EfficiencyPeak     float64 `json:"efficiency_peak"`
	OptimalFDRatio     float64 `json:"optimal_f_d_ratio"`
	BlockageCurvature  float64 `json:"curvature_low_fd"`
	SpilloverCurvature float64 `json:"curvature_high_fd"`
}

// Optimization holds the evolutionary-search tuning parameters.
type Optimization struct {
	PopulationSize int   `json:"population_size"`
	MaxGenerations int   `json:"max_generations"`
	Seed           int64 `json:"seed"`
}

// UserParams are the user-facing optimization parameters in user-facing
// units (meters, grams, kilometers).
type UserParams struct {
	MinDiameterM   float64 `json:"min_diameter_m"`
	MaxDiameterM   float64 `json:"max_diameter_m"`
	MaxPayloadG    float64 `json:"max_payload_g"`
	MinFDRatio     float64 `json:"min_f_d_ratio"`
	MaxFDRatio     float64 `json:"max_f_d_ratio"`
	DesiredRangeKm float64 `json:"desired_range_km"`
}

// LinkBudget holds the RF chain parameters for the feasibility gate.
type LinkBudget struct {
	TxPowerDBm           float64 `json:"tx_power_dbm"`
	RxSensitivityDBm     float64 `json:"rx_sensitivity_dbm"`
	RequiredSNRDb        float64 `json:"required_snr_db"`
	FadeMarginDb         float64 `json:"fade_margin_db"`
	ImplementationLossDb float64 `json:"implementation_loss_db"`
	MinLinkMarginDb      float64 `json:"min_link_margin_db"`
	AirborneGainDBi      float64 `json:"airborne_gain_dbi"`
}

// Regulatory holds emission limits.
type Regulatory struct {
	MaxEIRPDBm float64 `json:"max_eirp_dbm"`
}

// RealisticLimits bound what user parameters are accepted at all,
// guaranteeing manufacturability and practical operation.
type RealisticLimits struct {
	MinDiameterM float64 `json:"min_diameter_m"`
	MaxDiameterM float64 `json:"max_diameter_m"`
	MinPayloadG  float64 `json:"min_payload_g"`
	MaxPayloadG  float64 `json:"max_payload_g"`
	MinFDRatio   float64 `json:"min_f_d_ratio"`
	MaxFDRatio   float64 `json:"max_f_d_ratio"`
	MinRangeKm   float64 `json:"min_range_km"`
	MaxRangeKm   float64 `json:"max_range_km"`
}

// Default returns the built-in configuration for a 2.4 GHz UAV ground
// link with a composite reflector.
func Default() Config {
	return Config{
		Physics: Physics{SpeedOfLight: 299792458.0},
		Simulation: Simulation{
			FrequencyGHz:       2.4,
			ApertureEfficiency: 0.65,
			BeamwidthKFactor:   65.0,
			ArealDensityKgM2:   1.2,
			FixedWeightKg:      0.15,
			EfficiencyPeak:     0.70,
			OptimalFDRatio:     0.45,
			BlockageCurvature:  0.128,
			SpilloverCurvature: 0.236,
		},
		Optimization: Optimization{
			PopulationSize: 100,
			MaxGenerations: 50,
			Seed:           42,
		},
		UserDefaults: UserParams{
			MinDiameterM:   0.2,
			MaxDiameterM:   1.5,
			MaxPayloadG:    2000,
			MinFDRatio:     0.3,
			MaxFDRatio:     0.8,
			DesiredRangeKm: 10,
		},
		LinkBudget: LinkBudget{
			TxPowerDBm:           20,
			RxSensitivityDBm:     -90,
			RequiredSNRDb:        6,
			FadeMarginDb:         8,
			ImplementationLossDb: 2,
			MinLinkMarginDb:      3,
			AirborneGainDBi:      2,
		},
		Regulatory: Regulatory{MaxEIRPDBm: 52},
		RealisticLimits: RealisticLimits{
			MinDiameterM: 0.1,
			MaxDiameterM: 3.0,
			MinPayloadG:  50,
			MaxPayloadG:  10000,
			MinFDRatio:   0.2,
			MaxFDRatio:   1.5,
			MinRangeKm:   1,
			MaxRangeKm:   100,
		},
	}
}

// Load reads and validates a YAML configuration file. Missing fields
// keep their defaults, so a file only needs to state overrides.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section for physically sensible values.
func (c Config) Validate() error {
	if c.Physics.SpeedOfLight <= 0 {
		return fmt.Errorf("speed of light must be positive, got %g", c.Physics.SpeedOfLight)
	}

	s := c.Simulation
	if s.FrequencyGHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %g", s.FrequencyGHz)
	}
	if s.ApertureEfficiency <= 0 || s.ApertureEfficiency > 1 {
		return fmt.Errorf("aperture efficiency must be in (0, 1], got %g", s.ApertureEfficiency)
	}
	if s.BeamwidthKFactor <= 0 {
		return fmt.Errorf("beamwidth k factor must be positive, got %g", s.BeamwidthKFactor)
	}
	if s.ArealDensityKgM2 <= 0 {
		return fmt.Errorf("reflector areal density must be positive, got %g", s.ArealDensityKgM2)
	}
	if s.FixedWeightKg < 0 {
		return fmt.Errorf("fixed component weight must be non-negative, got %g", s.FixedWeightKg)
	}
	if s.EfficiencyPeak <= 0 || s.EfficiencyPeak > 1 {
		return fmt.Errorf("efficiency peak must be in (0, 1], got %g", s.EfficiencyPeak)
	}
	if s.OptimalFDRatio <= 0 || s.OptimalFDRatio > 2 {
		return fmt.Errorf("optimal f/D ratio must be in (0, 2], got %g", s.OptimalFDRatio)
	}
	if s.BlockageCurvature < 0 {
		return fmt.Errorf("blockage curvature must be non-negative, got %g", s.BlockageCurvature)
	}
	if s.SpilloverCurvature < 0 {
		return fmt.Errorf("spillover curvature must be non-negative, got %g", s.SpilloverCurvature)
	}

	o := c.Optimization
	if o.PopulationSize <= 0 {
		return fmt.Errorf("population size must be positive, got %d", o.PopulationSize)
	}
	if o.MaxGenerations <= 0 {
		return fmt.Errorf("generation count must be positive, got %d", o.MaxGenerations)
	}
	if o.Seed < 0 {
		return fmt.Errorf("seed must be non-negative, got %d", o.Seed)
	}

	l := c.RealisticLimits
	if l.MinDiameterM <= 0 || l.MinDiameterM >= l.MaxDiameterM {
		return fmt.Errorf("realistic diameter limits invalid: [%g, %g]", l.MinDiameterM, l.MaxDiameterM)
	}
	if l.MinPayloadG <= 0 || l.MinPayloadG >= l.MaxPayloadG {
		return fmt.Errorf("realistic payload limits invalid: [%g, %g]", l.MinPayloadG, l.MaxPayloadG)
	}
	if l.MinFDRatio <= 0 || l.MinFDRatio >= l.MaxFDRatio {
		return fmt.Errorf("realistic f/D limits invalid: [%g, %g]", l.MinFDRatio, l.MaxFDRatio)
	}
	if l.MinRangeKm <= 0 || l.MinRangeKm >= l.MaxRangeKm {
		return fmt.Errorf("realistic range limits invalid: [%g, %g]", l.MinRangeKm, l.MaxRangeKm)
	}

	return nil
}
