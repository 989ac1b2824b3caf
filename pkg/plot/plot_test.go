package plot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uavlink/antenna-optimizer/pkg/antenna"
)

func testFront(t *testing.T) []antenna.ParetoPoint {
	t.Helper()
	var front []antenna.ParetoPoint
	for _, d := range []float64{0.3, 0.6, 0.9} {
		geom, err := antenna.NewGeometry(d, 0.45*d)
		require.NoError(t, err)
		front = append(front, antenna.ParetoPoint{
			Geometry: geom,
			Metrics:  antenna.PerformanceMetrics{GainDBi: 10 + 10*d, BeamwidthDeg: 30 / d},
			WeightKg: d * d,
		})
	}
	return front
}

func TestParetoFrontRendersHTML(t *testing.T) {
	front := testFront(t)
	path := filepath.Join(t.TempDir(), "front.html")

	require.NoError(t, ParetoFront(front, front[1].Geometry, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.True(t, strings.Contains(html, "Antenna Gain vs Weight Trade-off"))
	assert.True(t, strings.Contains(html, "Recommended Design"))
}

func TestParetoFrontEmpty(t *testing.T) {
	err := ParetoFront(nil, antenna.Geometry{}, filepath.Join(t.TempDir(), "front.html"))
	require.Error(t, err)
}

func TestConvergenceRendersHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.html")

	require.NoError(t, Convergence([]float64{20.1, 22.5, 23.0, 23.0, 23.4}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Optimization Convergence"))
}

func TestConvergenceEmpty(t *testing.T) {
	err := Convergence(nil, filepath.Join(t.TempDir(), "convergence.html"))
	require.Error(t, err)
}
