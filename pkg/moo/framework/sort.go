package framework

// Dominates checks if individual a dominates individual b under
// constrained dominance: any feasible individual dominates any
// infeasible one, a less-violating infeasible individual dominates a
// more-violating one, and two feasible individuals compare by Pareto
// dominance on the (minimized) objectives.
func Dominates(a, b Individual) bool {
	aFeasible, bFeasible := a.Feasible(), b.Feasible()
	switch {
	case aFeasible && !bFeasible:
		return true
	case !aFeasible && bFeasible:
		return false
	case !aFeasible && !bFeasible:
		return a.Violation < b.Violation
	}

	better := false
	for i := range a.Objectives {
		if a.Objectives[i] > b.Objectives[i] {
			return false
		}
		if a.Objectives[i] < b.Objectives[i] {
			better = true
		}
	}
	return better
}

// NonDominatedSort performs non-dominated sorting on the population.
// Front 0 holds the non-dominated individuals, front 1 those
// non-dominated once front 0 is removed, and so on. Rank is set on the
// returned copies.
func NonDominatedSort(population []Individual) [][]Individual {
	var fronts [][]Individual
	dominated := make([][]int, len(population))
	domCount := make([]int, len(population))

	for i := 0; i < len(population); i++ {
		for j := 0; j < len(population); j++ {
			if i == j {
				continue
			}
			if Dominates(population[i], population[j]) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(population[j], population[i]) {
				domCount[i]++
			}
		}
	}

	currentFront := []Individual{}
	currentFrontIndices := []int{}
	for i := 0; i < len(population); i++ {
		if domCount[i] == 0 {
			population[i].Rank = 0
			currentFront = append(currentFront, population[i])
			currentFrontIndices = append(currentFrontIndices, i)
		}
	}
	fronts = append(fronts, currentFront)

	frontIndex := 0
	for len(currentFront) > 0 {
		nextFront := []Individual{}
		nextFrontIndices := []int{}
		for _, idx := range currentFrontIndices {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					population[dominatedIdx].Rank = frontIndex + 1
					nextFront = append(nextFront, population[dominatedIdx])
					nextFrontIndices = append(nextFrontIndices, dominatedIdx)
				}
			}
		}
		frontIndex++
		if len(nextFront) > 0 {
			fronts = append(fronts, nextFront)
		}
		currentFront = nextFront
		currentFrontIndices = nextFrontIndices
	}

	return fronts
}
