// Package benchmarks provides synthetic objective functions with known
// Pareto fronts, used to validate multi-objective solvers.
package benchmarks

import (
	"math"

	"github.com/uavlink/antenna-optimizer/pkg/moo/framework"
)

// ZDT1 is a benchmark function used to test the correctness of
// multi-objective algorithms. Its true Pareto front is f2 = 1 - sqrt(f1)
// on f1 ∈ [0, 1]. For more details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{numVars: numVars}
}

func (p *ZDT1) Name() string {
	return "ZDT1"
}

func (p *ZDT1) NumVariables() int {
	return p.numVars
}

func (p *ZDT1) NumObjectives() int {
	return 2
}

func (p *ZDT1) LowerBounds() []float64 {
	return make([]float64, p.numVars)
}

func (p *ZDT1) UpperBounds() []float64 {
	b := make([]float64, p.numVars)
	for i := range b {
		b[i] = 1.0
	}
	return b
}

// Evaluate computes both objectives for the whole population. ZDT1 is
// unconstrained, so every individual is feasible.
func (p *ZDT1) Evaluate(pop []framework.Individual) error {
	for i := range pop {
		x := pop[i].Variables

		g := 1.0
		for j := 1; j < len(x); j++ {
			g += 9.0 * x[j] / float64(len(x)-1)
		}

		pop[i].Objectives = []float64{
			x[0],
			g * (1.0 - math.Sqrt(x[0]/g)),
		}
		pop[i].Violation = 0
	}
	return nil
}

// TrueParetoFront generates numPoints points on the true Pareto front.
func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, 1.0 - math.Sqrt(x)}
	}
	return points
}
