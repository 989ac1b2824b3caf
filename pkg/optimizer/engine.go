// Package optimizer drives the multi-objective search over antenna
// geometries and post-processes the resulting Pareto front.
package optimizer

import (
	"fmt"
	"math"

	"k8s.io/klog/v2"

	"github.com/uavlink/antenna-optimizer/pkg/antenna"
	"github.com/uavlink/antenna-optimizer/pkg/moo/framework"
	"github.com/uavlink/antenna-optimizer/pkg/moo/nsga2"
	"github.com/uavlink/antenna-optimizer/pkg/physics"
)

// Params are the algorithm tuning knobs for one engine instance.
type Params struct {
	PopulationSize int
	MaxGenerations int
	Seed           int64
}

// Options configures an Engine. Physics, Curve and Materials come from
// the external configuration; Solver may be nil, in which case a seeded
// NSGA-II is used.
type Options struct {
	Params           Params
	Physics          physics.Model
	Curve            physics.EfficiencyCurve
	Materials        Materials
	BeamwidthKFactor float64
	Solver           framework.Solver
}

// InfeasibleError reports that no feasible design exists: even after
// the full search no individual satisfied the weight ceiling. It
// carries the minimum achievable weight given the diameter bounds so
// callers can explain what to relax.
type InfeasibleError struct {
	MaxWeightKg     float64
	MinAchievableKg float64
	MinDiameterM    float64
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf(
		"no feasible design: the smallest allowed diameter (%.3g m) already weighs %.3g kg, above the %.3g kg limit",
		e.MinDiameterM, e.MinAchievableKg, e.MaxWeightKg)
}

// Engine runs one synchronous optimization per call to Run. It owns no
// shared state: concurrent engines with independent seeds do not
// interfere.
type Engine struct {
	params    Params
	model     physics.Model
	curve     physics.EfficiencyCurve
	materials Materials
	kFactor   float64
	solver    framework.Solver
}

// New builds an Engine from explicit options; nothing is read from
// ambient configuration.
func New(opts Options) (*Engine, error) {
	if opts.Params.PopulationSize < 2 {
		return nil, fmt.Errorf("population size must be at least 2, got %d", opts.Params.PopulationSize)
	}
	if opts.Params.MaxGenerations < 1 {
		return nil, fmt.Errorf("generation count must be at least 1, got %d", opts.Params.MaxGenerations)
	}
	kFactor := opts.BeamwidthKFactor
	if kFactor == 0 {
		kFactor = physics.DefaultKFactor
	}
	if kFactor < 0 {
		return nil, fmt.Errorf("beamwidth k factor must be positive, got %g", kFactor)
	}
	return &Engine{
		params:    opts.Params,
		model:     opts.Physics,
		curve:     opts.Curve,
		materials: opts.Materials,
		kFactor:   kFactor,
		solver:    opts.Solver,
	}, nil
}

// newSolver returns the configured solver, or a freshly seeded NSGA-II
// so repeated Run calls on one engine restart the random stream instead
// of continuing it.
func (e *Engine) newSolver() framework.Solver {
	if e.solver != nil {
		return e.solver
	}
	return nsga2.New(e.params.PopulationSize, e.params.MaxGenerations, e.params.Seed)
}

// Run executes the full optimization against the given constraints and
// returns the knee-selected design, the Pareto front and the
// convergence history. Identical constraints and seed produce an
// identical result.
func (e *Engine) Run(constraints antenna.Constraints) (*antenna.Result, error) {
	problem, err := NewProblem(constraints, e.model, e.curve, e.materials)
	if err != nil {
		return nil, err
	}

	solver := e.newSolver()
	klog.V(2).InfoS("starting geometry optimization",
		"solver", solver.Name(),
		"populationSize", e.params.PopulationSize,
		"generations", e.params.MaxGenerations,
		"seed", e.params.Seed)

	convergence := make([]float64, 0, e.params.MaxGenerations)
	observe := func(gen int, pop []framework.Individual) {
		convergence = append(convergence, bestGain(pop))
	}

	finalPop, err := solver.Solve(problem, observe)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", solver.Name(), err)
	}

	front := feasibleFront(finalPop)
	if len(front) == 0 {
		return nil, &InfeasibleError{
			MaxWeightKg:     constraints.MaxWeightKg,
			MinAchievableKg: e.materials.WeightKg(constraints.MinDiameterM),
			MinDiameterM:    constraints.MinDiameterM,
		}
	}

	points, err := e.toParetoPoints(front, constraints.FrequencyGHz)
	if err != nil {
		return nil, err
	}

	kneeIdx, err := KneeSelector{}.Select(points)
	if err != nil {
		return nil, fmt.Errorf("selecting knee point: %w", err)
	}
	knee := points[kneeIdx]

	klog.V(2).InfoS("optimization finished",
		"frontSize", len(points),
		"kneeDiameterM", knee.Geometry.DiameterM,
		"kneeGainDBi", knee.Metrics.GainDBi,
		"kneeWeightKg", knee.WeightKg)

	return &antenna.Result{
		Geometry:    knee.Geometry,
		Metrics:     knee.Metrics,
		WeightKg:    knee.WeightKg,
		ParetoFront: points,
		Convergence: convergence,
	}, nil
}

// bestGain is the highest gain in the population, preferring feasible
// individuals; with an elitist solver the feasible best never regresses
// between generations.
func bestGain(pop []framework.Individual) float64 {
	best := math.Inf(-1)
	feasibleSeen := false
	for _, ind := range pop {
		gain := -ind.Objectives[0]
		if ind.Feasible() {
			if !feasibleSeen || gain > best {
				best = gain
			}
			feasibleSeen = true
			continue
		}
		if !feasibleSeen && gain > best {
			best = gain
		}
	}
	return best
}

// feasibleFront extracts the feasible members of the final rank-0 front.
func feasibleFront(pop []framework.Individual) []framework.Individual {
	fronts := framework.NonDominatedSort(pop)
	if len(fronts) == 0 {
		return nil
	}
	var feasible []framework.Individual
	for _, ind := range fronts[0] {
		if ind.Feasible() {
			feasible = append(feasible, ind)
		}
	}
	return feasible
}

// toParetoPoints converts front individuals into domain Pareto points,
// recomputing metrics through the physics model.
func (e *Engine) toParetoPoints(front []framework.Individual, frequencyGHz float64) ([]antenna.ParetoPoint, error) {
	points := make([]antenna.ParetoPoint, 0, len(front))
	for _, ind := range front {
		diameter, fdRatio := ind.Variables[0], ind.Variables[1]

		geometry, err := antenna.NewGeometry(diameter, diameter*fdRatio)
		if err != nil {
			return nil, fmt.Errorf("building front geometry: %w", err)
		}

		gain, err := e.model.Gain(diameter, frequencyGHz, e.curve.At(fdRatio))
		if err != nil {
			return nil, fmt.Errorf("computing front gain: %w", err)
		}
		beamwidth, err := e.model.Beamwidth(diameter, frequencyGHz, e.kFactor)
		if err != nil {
			return nil, fmt.Errorf("computing front beamwidth: %w", err)
		}

		points = append(points, antenna.ParetoPoint{
			Geometry: geometry,
			Metrics:  antenna.PerformanceMetrics{GainDBi: gain, BeamwidthDeg: beamwidth},
			WeightKg: ind.Objectives[1],
		})
	}
	return points, nil
}
