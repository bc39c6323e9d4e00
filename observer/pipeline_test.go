package observer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qss/integrator"
	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/observer"
	"github.com/katalvlaran/qss/qssvar"
)

// TestPipeline_AdvanceUpdatesObserver exercises a two-variable chain:
// trigger a (ẋ_a = -1, constant) observed by b (ẋ_b = a). When a requests a
// batch advance, b's coefficients should be refreshed from the bulk fetch
// without b doing its own oracle round trip.
func TestPipeline_AdvanceUpdatesObserver(t *testing.T) {
	cfg := qssvar.DefaultConfig()
	cfg.DtMax = 0.1

	pool := qssvar.NewPool()
	a := integrator.New(1, "a", 0, 1e-3, 1e-6, 0, integrator.Policy{})
	b := integrator.New(1, "b", 1, 1e-3, 1e-6, 0, integrator.Policy{})
	aID := pool.Add(a.Base)
	bID := pool.Add(b.Base)
	pool.Observe(bID, aID)
	pool.InitObservers(aID)

	fake := oracle.NewFake([]float64{1, 0}, func(tt float64, x []float64) []float64 {
		return []float64{-1, x[0]}
	})

	a.XCoef = qssvar.Poly{1, -1, 0, 0}
	a.AddInitial(0, cfg)
	b.XCoef = qssvar.Poly{0, 1, 0, 0}
	b.AddInitial(0, cfg)

	pipeline := observer.NewPipeline(pool)
	pipeline.Register(bID, b, b.Ref, b.Order)

	ders := make([]float64, 2)
	require.NoError(t, a.Advance(0.05, fake, ders, cfg, 0))
	require.NoError(t, pipeline.Advance(aID, 0.05, fake, ders, cfg, 0))

	// b's derivative equals a's freshly-committed value (0.95 at t=0.05).
	assert.InDelta(t, 0.95, b.X1(0.05), 1e-9)
}

func TestPipeline_Advance_NoObserversIsNoop(t *testing.T) {
	pool := qssvar.NewPool()
	a := integrator.New(1, "a", 0, 1e-3, 1e-6, 0, integrator.Policy{})
	aID := pool.Add(a.Base)
	pool.InitObservers(aID)

	pipeline := observer.NewPipeline(pool)
	fake := oracle.NewFake([]float64{1}, func(tt float64, x []float64) []float64 { return []float64{-1} })
	require.NoError(t, pipeline.Advance(aID, 0.0, fake, make([]float64, 1), qssvar.DefaultConfig(), 0))
}
