package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(SpeedOfLight)
	require.NoError(t, err)
	return m
}

func TestGainReferenceValue(t *testing.T) {
	m := newTestModel(t)

	// 1 m dish at 10 GHz with 65% efficiency is the standard textbook case.
	gain, err := m.Gain(1.0, 10.0, 0.65)
	require.NoError(t, err)
	assert.InDelta(t, 38.54, gain, 0.01)
}

func TestGainMonotonicInDiameter(t *testing.T) {
	m := newTestModel(t)

	prev := -1e9
	for _, d := range []float64{0.1, 0.25, 0.5, 1.0, 2.0, 4.0} {
		gain, err := m.Gain(d, 10.0, 0.65)
		require.NoError(t, err)
		assert.Greater(t, gain, prev, "gain must increase strictly with diameter")
		prev = gain
	}
}

func TestGainRejectsInvalidInputs(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		name           string
		d, f, eta      float64
		wantEfficiency bool
	}{
		{"zero diameter", 0, 10, 0.65, false},
		{"negative frequency", 1, -10, 0.65, false},
		{"zero efficiency", 1, 10, 0, false},
		{"efficiency above limit", 1, 10, 0.86, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Gain(tt.d, tt.f, tt.eta)
			require.Error(t, err)
			if tt.wantEfficiency {
				assert.ErrorIs(t, err, ErrUnrealisticEfficiency)
			}
		})
	}
}

func TestGainBatchMatchesScalar(t *testing.T) {
	m := newTestModel(t)

	diameters := []float64{0.3, 0.6, 1.0, 1.4}
	efficiencies := []float64{0.65, 0.70, 0.68, 0.55}

	batch, err := m.GainBatch(diameters, efficiencies, 2.4)
	require.NoError(t, err)
	require.Len(t, batch, len(diameters))

	for i := range diameters {
		single, err := m.Gain(diameters[i], 2.4, efficiencies[i])
		require.NoError(t, err)
		assert.InDelta(t, single, batch[i], 1e-12)
	}
}

func TestGainBatchRejectsBadIndividual(t *testing.T) {
	m := newTestModel(t)

	_, err := m.GainBatch([]float64{1.0, -0.5}, []float64{0.65, 0.65}, 2.4)
	require.Error(t, err)

	_, err = m.GainBatch([]float64{1.0}, []float64{0.9}, 2.4)
	assert.ErrorIs(t, err, ErrUnrealisticEfficiency)

	_, err = m.GainBatch([]float64{1.0, 1.0}, []float64{0.65}, 2.4)
	require.Error(t, err)
}

func TestBeamwidthReferenceValue(t *testing.T) {
	m := newTestModel(t)

	bw, err := m.Beamwidth(1.0, 10.0, DefaultKFactor)
	require.NoError(t, err)
	assert.InDelta(t, 1.9487, bw, 1e-3)
}

func TestBeamwidthInverseMonotonic(t *testing.T) {
	m := newTestModel(t)

	small, err := m.Beamwidth(0.5, 10.0, DefaultKFactor)
	require.NoError(t, err)
	large, err := m.Beamwidth(2.0, 10.0, DefaultKFactor)
	require.NoError(t, err)
	assert.Greater(t, small, large, "smaller dishes have wider beams")
}

func TestBeamwidthBatch(t *testing.T) {
	m := newTestModel(t)

	diameters := []float64{0.4, 0.8, 1.6}
	batch, err := m.BeamwidthBatch(diameters, 10.0, DefaultKFactor)
	require.NoError(t, err)

	for i, d := range diameters {
		single, err := m.Beamwidth(d, 10.0, DefaultKFactor)
		require.NoError(t, err)
		assert.InDelta(t, single, batch[i], 1e-12)
	}

	_, err = m.BeamwidthBatch([]float64{1.0, 0}, 10.0, DefaultKFactor)
	require.Error(t, err)
}

func TestDepthReferenceValue(t *testing.T) {
	// f/D = 0.45 on a 0.5 m dish gives a rim depth of 69.4 mm.
	assert.InDelta(t, 0.069444, Depth(0.5, 0.225), 1e-4)
}

func TestEfficiencyCurvePeak(t *testing.T) {
	c := DefaultEfficiencyCurve()
	require.NoError(t, c.Validate())
	assert.InDelta(t, 0.70, c.At(0.45), 1e-12)
}

func TestEfficiencyCurveDecreasesAwayFromPeak(t *testing.T) {
	c := DefaultEfficiencyCurve()

	// Strictly decreasing toward low f/D.
	prev := c.At(0.45)
	for _, fd := range []float64{0.40, 0.35, 0.30, 0.25, 0.20} {
		eta := c.At(fd)
		assert.Less(t, eta, prev, "blockage side must decrease at f/D %g", fd)
		prev = eta
	}

	// Strictly decreasing toward high f/D.
	prev = c.At(0.45)
	for _, fd := range []float64{0.50, 0.60, 0.80, 1.00, 1.20} {
		eta := c.At(fd)
		assert.Less(t, eta, prev, "spillover side must decrease at f/D %g", fd)
		prev = eta
	}
}

func TestEfficiencyCurveAsymmetry(t *testing.T) {
	c := DefaultEfficiencyCurve()

	// Equal-magnitude deviations: spillover loses efficiency faster.
	for _, dev := range []float64{0.05, 0.1, 0.2} {
		below := c.At(c.OptimalFDRatio - dev)
		above := c.At(c.OptimalFDRatio + dev)
		assert.Less(t, above, below, "spillover must penalize more at deviation %g", dev)
	}
}

func TestEfficiencyCurveCalibrationPoints(t *testing.T) {
	c := DefaultEfficiencyCurve()

	// Calibration anchors from the reference literature.
	assert.InDelta(t, 0.692, c.At(0.20), 0.001)
	assert.InDelta(t, 0.629, c.At(1.00), 0.001)
	assert.InDelta(t, 0.567, c.At(1.20), 0.001)
}

func TestEfficiencyCurveBatch(t *testing.T) {
	c := DefaultEfficiencyCurve()
	ratios := []float64{0.2, 0.45, 0.7, 1.2}
	batch := c.Batch(ratios)
	require.Len(t, batch, len(ratios))
	for i, fd := range ratios {
		assert.Equal(t, c.At(fd), batch[i])
	}
	// The curve never leaves the physical band.
	assert.GreaterOrEqual(t, floats.Min(batch), 0.40)
	assert.LessOrEqual(t, floats.Max(batch), 0.70)
}

func TestFreeSpacePathLoss(t *testing.T) {
	// 1 km at 1 GHz is the defining constant of the km/GHz form.
	fspl, err := FreeSpacePathLossDb(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 92.45, fspl, 1e-9)

	// Doubling the distance adds 6.02 dB.
	far, err := FreeSpacePathLossDb(2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 6.02, far-fspl, 0.01)

	_, err = FreeSpacePathLossDb(-1, 1)
	require.Error(t, err)
	_, err = FreeSpacePathLossDb(1, 0)
	require.Error(t, err)
}

func TestLinkBudgetMarginAndRange(t *testing.T) {
	lb := LinkBudget{
		TxPowerDBm:           20,
		RxSensitivityDBm:     -90,
		RequiredSNRDb:        6,
		FadeMarginDb:         8,
		ImplementationLossDb: 2,
		MinLinkMarginDb:      3,
		AirborneGainDBi:      2,
	}

	fspl, err := FreeSpacePathLossDb(10, 2.4)
	require.NoError(t, err)

	// A ~30 dBi ground dish closes a 10 km 2.4 GHz link comfortably.
	assert.True(t, lb.Closes(30, fspl))
	// A bare feed does not.
	assert.False(t, lb.Closes(2, fspl))

	// MaxRangeKm is the inverse of the margin test: at the solved range
	// the margin equals the minimum.
	maxRange := lb.MaxRangeKm(30, 2.4)
	fsplAtMax, err := FreeSpacePathLossDb(maxRange, 2.4)
	require.NoError(t, err)
	assert.InDelta(t, lb.MinLinkMarginDb, lb.MarginDb(30, fsplAtMax), 1e-9)
}
