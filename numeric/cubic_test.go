package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qss/numeric"
)

func TestSolveCubicUpper_SingleRealRoot(t *testing.T) {
	// (t-1)(t^2+t+1) = t^3 - 1, single real root at t=1.
	got, err := numeric.SolveCubicUpper(1, 0, 0, -1, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestSolveCubicUpper_ThreeRealRoots(t *testing.T) {
	// (t-1)(t-2)(t-3) = t^3 - 6t^2 + 11t - 6, smallest positive root = 1.
	got, err := numeric.SolveCubicUpper(1, -6, 11, -6, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestSolveCubicUpper_NoPositiveRoot(t *testing.T) {
	// All coefficients share a sign: monotone, never crosses zero for t>0.
	got, err := numeric.SolveCubicUpper(1, 2, 3, 4, 10)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestSolveCubicUpper_OutOfBound(t *testing.T) {
	// Root at t=5 but bound is 1.
	got, err := numeric.SolveCubicUpper(1, 0, 0, -125, 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestSolveCubicUpper_DegradesToQuadratic(t *testing.T) {
	got, err := numeric.SolveCubicUpper(0, 1, -3, 2, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestSolveCubicUpper_InvalidBound(t *testing.T) {
	_, err := numeric.SolveCubicUpper(1, 0, 0, -1, 0)
	assert.ErrorIs(t, err, numeric.ErrInvalidBound)
}

func TestSolveCubicUpper_NearSingularTripleRoot(t *testing.T) {
	// (t-2)^3 = t^3 - 6t^2 + 12t - 8: a repeated/near-singular discriminant,
	// forcing the Halley fallback path.
	got, err := numeric.SolveCubicUpper(1, -6, 12, -8, 10)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-6)
}

func TestCullRoot(t *testing.T) {
	assert.True(t, math.IsInf(numeric.CullRoot(1e-9, 1e-6, 1.0), 1))
	assert.InDelta(t, 1e-3, numeric.CullRoot(1e-3, 1e-6, 1.0), 1e-15)
	// xMag == 0 disables culling.
	assert.InDelta(t, 1e-9, numeric.CullRoot(1e-9, 1e-6, 0), 1e-15)
}
