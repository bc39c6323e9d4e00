package qssvar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// TestProbeND_RecoversQuadraticCoefficients checks testable property 6: for
// an analytic trajectory x1(t) = 6t (i.e. x(t) = x0 + 3t^2, so the stored
// Taylor coefficients are x2 = 3, x3 = 0), centered ND should recover x2 to
// high accuracy.
func TestProbeND_RecoversQuadraticCoefficients(t *testing.T) {
	fake := oracle.NewFake([]float64{0}, func(tt float64, x []float64) []float64 {
		return []float64{6 * tt}
	})

	ders := make([]float64, 1)
	sample, err := qssvar.ProbeND(fake, 0, 1.0, 1e-4, 0.0, ders)
	require.NoError(t, err)
	assert.True(t, sample.Centered)
	assert.InDelta(t, 3.0, sample.X2(1e-4), 1e-6)
	assert.InDelta(t, 0.0, sample.X3(1e-4), 1e-4)
}

func TestProbeND_ForwardNearStart(t *testing.T) {
	fake := oracle.NewFake([]float64{0}, func(tt float64, x []float64) []float64 {
		return []float64{6 * tt}
	})

	ders := make([]float64, 1)
	sample, err := qssvar.ProbeND(fake, 0, 0.0, 1e-4, 0.0, ders)
	require.NoError(t, err)
	assert.False(t, sample.Centered)
	assert.InDelta(t, 3.0, sample.X2(1e-4), 1e-6)
}
