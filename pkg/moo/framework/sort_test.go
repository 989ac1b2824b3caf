package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ind(objectives []float64, violation float64) Individual {
	return Individual{Objectives: objectives, Violation: violation}
}

func TestDominates(t *testing.T) {
	tests := []struct {
		name string
		a, b Individual
		want bool
	}{
		{"strictly better on both", ind([]float64{1, 1}, 0), ind([]float64{2, 2}, 0), true},
		{"better on one, equal on other", ind([]float64{1, 2}, 0), ind([]float64{2, 2}, 0), true},
		{"identical", ind([]float64{1, 1}, 0), ind([]float64{1, 1}, 0), false},
		{"trade-off", ind([]float64{1, 3}, 0), ind([]float64{2, 2}, 0), false},
		{"worse on both", ind([]float64{3, 3}, 0), ind([]float64{1, 1}, 0), false},
		{"feasible beats infeasible regardless of objectives", ind([]float64{9, 9}, 0), ind([]float64{1, 1}, 0.5), true},
		{"infeasible never beats feasible", ind([]float64{1, 1}, 0.5), ind([]float64{9, 9}, 0), false},
		{"smaller violation wins among infeasible", ind([]float64{9, 9}, 0.1), ind([]float64{1, 1}, 0.5), true},
		{"equal violation among infeasible", ind([]float64{1, 1}, 0.5), ind([]float64{9, 9}, 0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dominates(tt.a, tt.b))
		})
	}
}

func TestNonDominatedSort(t *testing.T) {
	pop := []Individual{
		ind([]float64{1, 5}, 0), // front 0
		ind([]float64{5, 1}, 0), // front 0
		ind([]float64{3, 3}, 0), // front 0
		ind([]float64{4, 4}, 0), // dominated by {3,3}
		ind([]float64{6, 6}, 0), // dominated by {4,4} too
	}

	fronts := NonDominatedSort(pop)
	require.Len(t, fronts, 3)
	assert.Len(t, fronts[0], 3)
	assert.Len(t, fronts[1], 1)
	assert.Len(t, fronts[2], 1)

	for _, member := range fronts[0] {
		assert.Equal(t, 0, member.Rank)
	}
	assert.Equal(t, []float64{4, 4}, fronts[1][0].Objectives)
	assert.Equal(t, []float64{6, 6}, fronts[2][0].Objectives)
}

func TestNonDominatedSortConstraintHandling(t *testing.T) {
	pop := []Individual{
		ind([]float64{1, 1}, 2.0), // infeasible, best objectives
		ind([]float64{5, 5}, 0),   // feasible
		ind([]float64{2, 2}, 0.5), // infeasible, small violation
	}

	fronts := NonDominatedSort(pop)
	require.NotEmpty(t, fronts)

	// The only feasible individual forms front 0 on its own; infeasible
	// individuals rank behind it ordered by violation.
	require.Len(t, fronts[0], 1)
	assert.Equal(t, []float64{5, 5}, fronts[0][0].Objectives)
	require.Len(t, fronts, 3)
	assert.InDelta(t, 0.5, fronts[1][0].Violation, 1e-12)
	assert.InDelta(t, 2.0, fronts[2][0].Violation, 1e-12)
}

func TestNonDominatedSortMutualNonDomination(t *testing.T) {
	pop := []Individual{
		ind([]float64{0, 10}, 0),
		ind([]float64{2, 8}, 0),
		ind([]float64{4, 6}, 0),
		ind([]float64{6, 4}, 0),
		ind([]float64{1, 9.5}, 0),
		ind([]float64{5, 5}, 0),
	}

	fronts := NonDominatedSort(pop)
	first := fronts[0]
	for i := range first {
		for j := range first {
			if i == j {
				continue
			}
			assert.False(t, Dominates(first[i], first[j]), "front 0 must be mutually non-dominated")
		}
	}
}

func TestIndividualClone(t *testing.T) {
	orig := Individual{Variables: []float64{1, 2}, Objectives: []float64{3}, Violation: 0.1, Rank: 2, Distance: 0.5}
	clone := orig.Clone()
	clone.Variables[0] = 9
	clone.Objectives[0] = 9
	assert.Equal(t, 1.0, orig.Variables[0])
	assert.Equal(t, 3.0, orig.Objectives[0])
	assert.Equal(t, orig.Rank, clone.Rank)
}
