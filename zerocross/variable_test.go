package zerocross_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/qss/qssvar"
	"github.com/katalvlaran/qss/zerocross"
)

type fakeConditional struct {
	interested map[zerocross.Crossing]bool
	activated  []zerocross.Crossing
}

func (f *fakeConditional) OfInterest(c zerocross.Crossing) bool { return f.interested[c] }
func (f *fakeConditional) Activate(t float64, c zerocross.Crossing) ([]qssvar.ID, error) {
	f.activated = append(f.activated, c)
	return nil, nil
}

func TestVariable_TZCBumpAdvancesTime(t *testing.T) {
	v := zerocross.New("z", 0, 1e-6, nil)
	bumped := v.TZCBump(1.0, 2.0)
	assert.Greater(t, bumped, 1.0)
}

func TestVariable_SetTZ_NoRootIsInfinite(t *testing.T) {
	v := zerocross.New("z", 0, 1e-6, nil)
	v.InitTime(0)
	// Flat at zero: XCoef all zero, no positive root.
	v.SetTZ(2.0)
	assert.True(t, math.IsInf(v.TZ, 1))
}
