package optimizer

import (
	"fmt"
	"math"

	"github.com/uavlink/antenna-optimizer/pkg/antenna"
	"github.com/uavlink/antenna-optimizer/pkg/moo/framework"
	"github.com/uavlink/antenna-optimizer/pkg/physics"
)

// Materials carries the mass model constants: the areal density of the
// reflector surface and the fixed weight of feed, struts and mounting
// hardware that every design carries regardless of diameter.
type Materials struct {
	ArealDensityKgM2 float64
	FixedWeightKg    float64
}

// WeightKg is the total antenna weight for a reflector diameter:
// (π/4)·D²·ρ plus the fixed component weight.
func (m Materials) WeightKg(diameterM float64) float64 {
	area := math.Pi / 4.0 * diameterM * diameterM
	return m.ArealDensityKgM2*area + m.FixedWeightKg
}

// Problem formulates antenna geometry search as a 2-variable,
// 2-objective, 1-constraint multi-objective problem:
//
//	variables   diameter ∈ [min, max], f/D ∈ [min, max]
//	objective 0 minimize −gain(diameter, η(f/D))
//	objective 1 minimize weight(diameter)
//	constraint  weight ≤ max weight
//
// Violating the weight ceiling does not discard an individual; it is
// ranked behind all feasible ones so the search can still walk the
// constraint boundary.
type Problem struct {
	constraints antenna.Constraints
	model       physics.Model
	curve       physics.EfficiencyCurve
	materials   Materials
}

// NewProblem validates the constraints and builds the search problem.
func NewProblem(c antenna.Constraints, model physics.Model, curve physics.EfficiencyCurve, materials Materials) (*Problem, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := curve.Validate(); err != nil {
		return nil, fmt.Errorf("efficiency curve: %w", err)
	}
	if materials.ArealDensityKgM2 <= 0 {
		return nil, fmt.Errorf("areal density must be positive, got %g", materials.ArealDensityKgM2)
	}
	if materials.FixedWeightKg < 0 {
		return nil, fmt.Errorf("fixed component weight must be non-negative, got %g", materials.FixedWeightKg)
	}
	return &Problem{
		constraints: c,
		model:       model,
		curve:       curve,
		materials:   materials,
	}, nil
}

func (p *Problem) Name() string {
	return "AntennaGeometry"
}

func (p *Problem) NumVariables() int  { return 2 }
func (p *Problem) NumObjectives() int { return 2 }

func (p *Problem) LowerBounds() []float64 {
	return []float64{p.constraints.MinDiameterM, p.constraints.MinFDRatio}
}

func (p *Problem) UpperBounds() []float64 {
	return []float64{p.constraints.MaxDiameterM, p.constraints.MaxFDRatio}
}

// Evaluate computes objectives and the weight-constraint violation for
// the whole population in one pass over the closed-form model.
func (p *Problem) Evaluate(pop []framework.Individual) error {
	diameters := make([]float64, len(pop))
	fdRatios := make([]float64, len(pop))
	for i := range pop {
		diameters[i] = pop[i].Variables[0]
		fdRatios[i] = pop[i].Variables[1]
	}

	efficiencies := p.curve.Batch(fdRatios)
	gains, err := p.model.GainBatch(diameters, efficiencies, p.constraints.FrequencyGHz)
	if err != nil {
		return fmt.Errorf("evaluating population gain: %w", err)
	}

	for i := range pop {
		weight := p.materials.WeightKg(diameters[i])
		pop[i].Objectives = []float64{-gains[i], weight}
		pop[i].Violation = math.Max(0, weight-p.constraints.MaxWeightKg)
	}
	return nil
}
