package liqss_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qss/liqss"
	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// TestVariable_Stiff drives a LIQSS2 integrator through Scenario D (ẋ =
// -1000x + 3000 - 2000*exp(-t), x(0) = 0) to t = 0.5 and checks
// convergence to the closed form, within a small requantization budget.
func TestVariable_Stiff(t *testing.T) {
	const tEnd = 0.5
	cfg := qssvar.DefaultConfig()
	cfg.DtMax = 0.05

	v := liqss.New(2, "x", 0, 1e-3, 1e-6, 0)
	fake := oracle.NewFake([]float64{0}, func(tt float64, x []float64) []float64 {
		return []float64{-1000*x[0] + 3000 - 2000*math.Exp(-tt)}
	})

	v.AddInitial(0, cfg)

	ders := make([]float64, 1)
	steps := 0
	curT := 0.0
	for curT < tEnd && steps < 5000 {
		steps++
		tNext := v.TE
		if tNext > tEnd {
			tNext = tEnd
		}
		require.NoError(t, v.Advance(tNext, fake, ders, cfg, 0))
		curT = tNext
	}

	want := 3 - 0.998*math.Exp(-1000*tEnd) - 2.002*math.Exp(-tEnd)
	got := v.X(tEnd)
	assert.InDelta(t, want, got, 5e-2)
	assert.Less(t, steps, 5000)
}

func TestResolveBatch_ConvergesOrStops(t *testing.T) {
	cfg := qssvar.DefaultConfig()
	a := liqss.New(1, "a", 0, 1e-3, 1e-6, 0)
	b := liqss.New(1, "b", 1, 1e-3, 1e-6, 0)
	fake := oracle.NewFake([]float64{1, 1}, func(tt float64, x []float64) []float64 {
		return []float64{-x[0] + 0.1*x[1], -x[1] + 0.1*x[0]}
	})
	a.AddInitial(0, cfg)
	b.AddInitial(0, cfg)

	err := liqss.ResolveBatch([]*liqss.Variable{a, b}, 0.1, fake, make([]float64, 2), cfg, 0, 10)
	require.NoError(t, err)
}
