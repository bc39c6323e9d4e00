package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/qss/numeric"
)

func TestSolveQuadratic_TwoPositiveRoots(t *testing.T) {
	// t^2 - 3t + 2 = 0 -> roots 1, 2
	got := numeric.SolveQuadratic(1, -3, 2)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestSolveQuadratic_OnePositiveOneNegative(t *testing.T) {
	// t^2 - t - 2 = 0 -> roots -1, 2
	got := numeric.SolveQuadratic(1, -1, -2)
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestSolveQuadratic_NoRealRoots(t *testing.T) {
	got := numeric.SolveQuadratic(1, 0, 1)
	assert.True(t, math.IsInf(got, 1))
}

func TestSolveQuadratic_LinearDegenerate(t *testing.T) {
	// 2t - 4 = 0 -> t = 2
	got := numeric.SolveQuadratic(0, 2, -4)
	assert.InDelta(t, 2.0, got, 1e-12)
}

func TestSolveQuadratic_FlatDegenerate(t *testing.T) {
	got := numeric.SolveQuadratic(0, 0, 5)
	assert.True(t, math.IsInf(got, 1))
}

func TestSolveQuadratic_AlignedStepSizeForm(t *testing.T) {
	// Mirrors the QSS1 aligned step-size formula: dt = qTol/|x1|, found as
	// the root of x1*t + qTol = 0 with x1 < 0.
	qTol, x1 := 1e-3, -2.5
	got := numeric.SolveQuadratic(0, x1, qTol)
	assert.InDelta(t, qTol/math.Abs(x1), got, 1e-12)
}
