package zerocross

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qss/qssvar"
)

// TestVariable_SetTZ_PredictsFallingCrossing models x(t) = 1 - t on
// [0, 2], which has a root at t=1; with signAtTZLast=+1 the classified
// crossing is DnPN, which this test's conditional declares "of interest".
func TestVariable_SetTZ_PredictsFallingCrossing(t *testing.T) {
	cond := &testConditional{interested: map[Crossing]bool{DnPN: true}}
	v := New("z", 0, 1e-6, cond)
	v.InitTime(0)
	v.XCoef = qssvar.Poly{1, -1, 0, 0}
	v.signAtTZLast = 1

	v.SetTZ(2.0)
	require.False(t, math.IsInf(v.TZ, 1))
	assert.InDelta(t, 1.0, v.TZ, 1e-9)
	assert.Equal(t, DnPN, v.crossing)
}

func TestVariable_SetTZ_NotOfInterestYieldsInfinite(t *testing.T) {
	cond := &testConditional{interested: map[Crossing]bool{}}
	v := New("z", 0, 1e-6, cond)
	v.InitTime(0)
	v.XCoef = qssvar.Poly{1, -1, 0, 0}
	v.signAtTZLast = 1

	v.SetTZ(2.0)
	assert.True(t, math.IsInf(v.TZ, 1))
}

func TestClassify_ZeroToZeroDownwardSlope(t *testing.T) {
	assert.Equal(t, Dn, classify(0, 0, -1.0))
	assert.Equal(t, Up, classify(0, 0, 1.0))
	assert.Equal(t, Flat, classify(0, 0, 0.0))
}

func TestAdvanceZC_ActivatesConditionalWhenOfInterest(t *testing.T) {
	cond := &testConditional{interested: map[Crossing]bool{DnPN: true}}
	v := New("z", 0, 1e-6, cond)
	v.InitTime(0)
	v.XCoef = qssvar.Poly{1, -1, 0, 0}
	v.signAtTZLast = 1
	v.SetTZ(2.0)

	_, err := v.AdvanceZC(2.0)
	require.NoError(t, err)
	assert.Contains(t, cond.activated, DnPN)
}

type testConditional struct {
	interested map[Crossing]bool
	activated  []Crossing
}

func (c *testConditional) OfInterest(x Crossing) bool { return c.interested[x] }
func (c *testConditional) Activate(t float64, x Crossing) ([]qssvar.ID, error) {
	c.activated = append(c.activated, x)
	return nil, nil
}
