package antenna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeometry(t *testing.T) {
	tests := []struct {
		name     string
		diameter float64
		focal    float64
		wantErr  bool
	}{
		{"typical dish", 1.0, 0.45, false},
		{"deepest practical", 1.0, 0.2, false},
		{"flattest practical", 1.0, 1.5, false},
		{"zero diameter", 0, 0.45, true},
		{"negative diameter", -1.0, 0.45, true},
		{"zero focal length", 1.0, 0, true},
		{"negative focal length", 1.0, -0.2, true},
		{"too deep", 1.0, 0.19, true},
		{"too flat", 1.0, 1.51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGeometry(tt.diameter, tt.focal)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidGeometry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.diameter, g.DiameterM)
			assert.Equal(t, tt.focal, g.FocalLengthM)
		})
	}
}

func TestGeometryDerived(t *testing.T) {
	g, err := NewGeometry(0.5, 0.225)
	require.NoError(t, err)

	// f/D = 0.45 implies a rim depth of D²/(16f) = 69.4 mm.
	assert.InDelta(t, 0.45, g.FDRatio(), 1e-12)
	assert.InDelta(t, 0.069444, g.DepthM(), 1e-4)
}

func TestConstraintsValidate(t *testing.T) {
	valid := Constraints{
		MinDiameterM: 0.2,
		MaxDiameterM: 1.5,
		MinFDRatio:   0.3,
		MaxFDRatio:   0.8,
		MaxWeightKg:  2.0,
		FrequencyGHz: 2.4,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Constraints)
	}{
		{"zero min diameter", func(c *Constraints) { c.MinDiameterM = 0 }},
		{"negative max diameter", func(c *Constraints) { c.MaxDiameterM = -1 }},
		{"diameter min >= max", func(c *Constraints) { c.MinDiameterM = 1.5 }},
		{"zero min f/D", func(c *Constraints) { c.MinFDRatio = 0 }},
		{"negative max f/D", func(c *Constraints) { c.MaxFDRatio = -0.8 }},
		{"f/D min >= max", func(c *Constraints) { c.MinFDRatio = 0.8 }},
		{"zero weight ceiling", func(c *Constraints) { c.MaxWeightKg = 0 }},
		{"negative frequency", func(c *Constraints) { c.FrequencyGHz = -2.4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConstraints)
		})
	}
}
