// Package nsga2 implements the NSGA-II evolutionary algorithm for
// multi-objective problems with constraint-aware dominance.
package nsga2

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/uavlink/antenna-optimizer/pkg/moo/framework"
)

const (
	Name = "NSGA-II"

	DefaultCrossoverRate = 0.8
	DefaultMutationRate  = 0.1
)

// NSGAII represents the NSGA-II algorithm configuration. Every random
// draw comes from the solver-owned source, so two solvers built with
// the same seed produce bit-identical runs.
type NSGAII struct {
	PopSize        int
	NumGenerations int
	CrossoverRate  float64
	MutationRate   float64

	rng *rand.Rand
}

// New creates an NSGA-II instance with the default variation rates and
// a private random stream seeded with seed.
func New(popSize, numGenerations int, seed int64) *NSGAII {
	return &NSGAII{
		PopSize:        popSize,
		NumGenerations: numGenerations,
		CrossoverRate:  DefaultCrossoverRate,
		MutationRate:   DefaultMutationRate,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

func (n *NSGAII) Name() string {
	return Name
}

// Solve executes the NSGA-II algorithm against problem and returns the
// final population.
func (n *NSGAII) Solve(problem framework.Problem, observe framework.GenerationObserver) ([]framework.Individual, error) {
	if n.PopSize < 2 {
		return nil, fmt.Errorf("population size must be at least 2, got %d", n.PopSize)
	}
	if n.NumGenerations < 1 {
		return nil, fmt.Errorf("generation count must be at least 1, got %d", n.NumGenerations)
	}

	population := n.initialize(problem)
	if err := problem.Evaluate(population); err != nil {
		return nil, fmt.Errorf("evaluating initial population: %w", err)
	}
	// Ranks and distances must be in place before the first tournament.
	n.rankPopulation(population)

	lower, upper := problem.LowerBounds(), problem.UpperBounds()

	for gen := 0; gen < n.NumGenerations; gen++ {
		offspring := make([]framework.Individual, 0, n.PopSize)

		for len(offspring) < n.PopSize {
			parent1 := n.tournamentSelect(population)
			parent2 := n.tournamentSelect(population)

			child1, child2 := n.crossover(parent1, parent2, lower, upper)
			n.mutate(&child1, lower, upper)
			n.mutate(&child2, lower, upper)

			offspring = append(offspring, child1)
			if len(offspring) < n.PopSize {
				offspring = append(offspring, child2)
			}
		}

		if err := problem.Evaluate(offspring); err != nil {
			return nil, fmt.Errorf("evaluating offspring at generation %d: %w", gen, err)
		}

		// Union-and-truncate keeps the best of parents and offspring,
		// which is what makes the search elitist.
		combined := append(population, offspring...)
		population = n.truncate(combined)

		if observe != nil {
			observe(gen, population)
		}
	}

	return population, nil
}

// initialize creates an initial population drawn uniformly within the
// variable bounds.
func (n *NSGAII) initialize(problem framework.Problem) []framework.Individual {
	lower, upper := problem.LowerBounds(), problem.UpperBounds()
	numVars := problem.NumVariables()

	population := make([]framework.Individual, n.PopSize)
	for i := range population {
		vars := make([]float64, numVars)
		for j := 0; j < numVars; j++ {
			vars[j] = lower[j] + n.rng.Float64()*(upper[j]-lower[j])
		}
		population[i] = framework.Individual{Variables: vars}
	}
	return population
}

// rankPopulation assigns non-domination ranks and crowding distances in
// place.
func (n *NSGAII) rankPopulation(population []framework.Individual) {
	fronts := framework.NonDominatedSort(population)
	idx := 0
	for _, front := range fronts {
		CrowdingDistance(front)
		for _, member := range front {
			population[idx] = member
			idx++
		}
	}
}

// tournamentSelect picks the better of two random individuals, ranked
// first by non-domination rank, then by crowding distance.
func (n *NSGAII) tournamentSelect(population []framework.Individual) framework.Individual {
	best := population[n.rng.Intn(len(population))]
	contestant := population[n.rng.Intn(len(population))]
	if contestant.Rank < best.Rank || (contestant.Rank == best.Rank && contestant.Distance > best.Distance) {
		best = contestant
	}
	return best
}

// crossover performs SBX (Simulated Binary Crossover).
func (n *NSGAII) crossover(parent1, parent2 framework.Individual, lower, upper []float64) (framework.Individual, framework.Individual) {
	child1 := framework.Individual{Variables: make([]float64, len(parent1.Variables))}
	child2 := framework.Individual{Variables: make([]float64, len(parent2.Variables))}

	if n.rng.Float64() < n.CrossoverRate {
		for i := range parent1.Variables {
			beta := 0.0
			if n.rng.Float64() <= 0.5 {
				beta = math.Pow(2*n.rng.Float64(), 1.0/3.0)
			} else {
				beta = math.Pow(1.0/(2*(1.0-n.rng.Float64())), 1.0/3.0)
			}

			child1.Variables[i] = 0.5 * ((1+beta)*parent1.Variables[i] + (1-beta)*parent2.Variables[i])
			child2.Variables[i] = 0.5 * ((1-beta)*parent1.Variables[i] + (1+beta)*parent2.Variables[i])

			child1.Variables[i] = math.Max(lower[i], math.Min(upper[i], child1.Variables[i]))
			child2.Variables[i] = math.Max(lower[i], math.Min(upper[i], child2.Variables[i]))
		}
	} else {
		copy(child1.Variables, parent1.Variables)
		copy(child2.Variables, parent2.Variables)
	}

	return child1, child2
}

// mutate performs polynomial mutation within bounds.
func (n *NSGAII) mutate(individual *framework.Individual, lower, upper []float64) {
	for i := range individual.Variables {
		if n.rng.Float64() < n.MutationRate {
			delta := 0.0
			if n.rng.Float64() <= 0.5 {
				delta = math.Pow(2*n.rng.Float64(), 1.0/3.0) - 1
			} else {
				delta = 1 - math.Pow(2*(1-n.rng.Float64()), 1.0/3.0)
			}

			individual.Variables[i] += delta * (upper[i] - lower[i])
			individual.Variables[i] = math.Max(lower[i], math.Min(upper[i], individual.Variables[i]))
		}
	}
}

// truncate reduces the combined parent+offspring pool back to PopSize,
// preferring low rank and, at the boundary rank, high crowding distance.
func (n *NSGAII) truncate(combined []framework.Individual) []framework.Individual {
	fronts := framework.NonDominatedSort(combined)

	population := make([]framework.Individual, 0, n.PopSize)
	for _, front := range fronts {
		CrowdingDistance(front)
		if len(population)+len(front) <= n.PopSize {
			population = append(population, front...)
			continue
		}
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Distance > front[j].Distance
		})
		population = append(population, front[:n.PopSize-len(population)]...)
		break
	}
	return population
}

// CrowdingDistance calculates crowding distances for individuals in a
// front. Boundary individuals get infinite distance so objective-space
// extremes survive truncation.
func CrowdingDistance(front []framework.Individual) {
	if len(front) <= 2 {
		for i := range front {
			front[i].Distance = math.Inf(1)
		}
		return
	}

	numObjectives := len(front[0].Objectives)
	for i := range front {
		front[i].Distance = 0
	}

	for m := 0; m < numObjectives; m++ {
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Objectives[m] < front[j].Objectives[m]
		})

		front[0].Distance = math.Inf(1)
		front[len(front)-1].Distance = math.Inf(1)

		objectiveRange := front[len(front)-1].Objectives[m] - front[0].Objectives[m]
		if objectiveRange == 0 {
			continue
		}

		for i := 1; i < len(front)-1; i++ {
			front[i].Distance += (front[i+1].Objectives[m] - front[i-1].Objectives[m]) / objectiveRange
		}
	}
}
