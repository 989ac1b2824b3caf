package optimizer

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/uavlink/antenna-optimizer/pkg/antenna"
)

// KneeSelector picks the recommended design from a Pareto front by
// geometric knee detection: the point with maximum perpendicular
// distance to the line joining the front's two extreme points in
// normalized objective space (Branke et al., 2004).
type KneeSelector struct{}

// Select returns the index of the knee point in front. The objectives
// considered are (−gain, weight), both minimized. Ties break toward
// higher gain; a degenerate (collinear) front falls back to the
// maximum-gain point.
func (KneeSelector) Select(front []antenna.ParetoPoint) (int, error) {
	if len(front) == 0 {
		return 0, errors.New("empty pareto front")
	}
	if len(front) == 1 {
		return 0, nil
	}

	negGain := make([]float64, len(front))
	weight := make([]float64, len(front))
	for i, pt := range front {
		negGain[i] = -pt.Metrics.GainDBi
		weight[i] = pt.WeightKg
	}

	gainRange := floats.Max(negGain) - floats.Min(negGain)
	weightRange := floats.Max(weight) - floats.Min(weight)

	// A zero-range axis carries no trade-off information; select on the
	// other axis alone.
	if gainRange == 0 && weightRange == 0 {
		return 0, nil
	}
	if gainRange == 0 {
		return floats.MinIdx(weight), nil
	}
	if weightRange == 0 {
		return floats.MinIdx(negGain), nil
	}

	gainMin, weightMin := floats.Min(negGain), floats.Min(weight)
	norm := make([][2]float64, len(front))
	for i := range front {
		norm[i] = [2]float64{
			(negGain[i] - gainMin) / gainRange,
			(weight[i] - weightMin) / weightRange,
		}
	}

	// Extremes of the front: best gain (min −gain) and best weight.
	p1 := norm[floats.MinIdx(negGain)]
	p2 := norm[floats.MinIdx(weight)]

	lineX, lineY := p2[0]-p1[0], p2[1]-p1[1]
	lineLength := math.Hypot(lineX, lineY)
	if lineLength == 0 {
		return maxGainIdx(front), nil
	}

	bestIdx, bestDistance := -1, -1.0
	for i, pt := range norm {
		pointX, pointY := p1[0]-pt[0], p1[1]-pt[1]
		distance := math.Abs(lineX*pointY-lineY*pointX) / lineLength

		better := distance > bestDistance
		if distance == bestDistance && front[i].Metrics.GainDBi > front[bestIdx].Metrics.GainDBi {
			better = true
		}
		if better {
			bestIdx, bestDistance = i, distance
		}
	}

	// All points collinear with the extremes: no bulge to pick, fall
	// back to the highest gain.
	if bestDistance == 0 {
		return maxGainIdx(front), nil
	}
	return bestIdx, nil
}

func maxGainIdx(front []antenna.ParetoPoint) int {
	best := 0
	for i := 1; i < len(front); i++ {
		if front[i].Metrics.GainDBi > front[best].Metrics.GainDBi {
			best = i
		}
	}
	return best
}
