// Package framework defines the shared contracts for multi-objective
// evolutionary search: individuals, problems with batched evaluation,
// and the solver strategy interface.
package framework

// Individual represents a candidate solution in the population.
type Individual struct {
	Variables  []float64
	Objectives []float64

	// Violation is the total constraint violation; zero means feasible.
	Violation float64

	// Rank is the non-domination rank assigned by NonDominatedSort.
	Rank int
	// Distance is the crowding distance within a rank.
	Distance float64
}

// Feasible reports whether the individual satisfies every constraint.
func (ind Individual) Feasible() bool {
	return ind.Violation <= 0
}

// Clone returns a deep copy of the individual.
func (ind Individual) Clone() Individual {
	c := ind
	c.Variables = make([]float64, len(ind.Variables))
	copy(c.Variables, ind.Variables)
	c.Objectives = make([]float64, len(ind.Objectives))
	copy(c.Objectives, ind.Objectives)
	return c
}

// Problem describes the contract a specific multi-objective problem
// needs to implement. Evaluation is batched: one call fills in the
// objectives and constraint violations for the whole population, so a
// generation costs a single pass over the closed-form model.
type Problem interface {
	Name() string

	NumVariables() int
	NumObjectives() int
	LowerBounds() []float64
	UpperBounds() []float64

	// Evaluate sets Objectives (to be minimized) and Violation for
	// every individual in pop.
	Evaluate(pop []Individual) error
}

// GenerationObserver is invoked after each generation with the surviving
// population. The population must not be retained or mutated.
type GenerationObserver func(generation int, pop []Individual)

// Solver describes the contract a multi-objective search algorithm
// needs to implement. Implementations own their random stream; a solver
// constructed with a fixed seed must be fully deterministic.
type Solver interface {
	Name() string

	// Solve runs the search to completion and returns the final
	// population. observe may be nil.
	Solve(problem Problem, observe GenerationObserver) ([]Individual, error)
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective
// space. For a problem with 2 objective functions f1 and f2, a point in
// the objective space could be [f1(x'), f2(x')] for the input x'.
type ObjectiveSpacePoint []float64
