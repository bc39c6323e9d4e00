package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qss/handler"
	"github.com/katalvlaran/qss/integrator"
	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// TestHandler_BounceFlipsVelocity exercises Scenario C's discontinuous
// event: a handler fires when x <= 0 and flips velocity with coefficient
// 0.8, reading the conditional's already-written post-bounce value.
func TestHandler_BounceFlipsVelocity(t *testing.T) {
	cfg := qssvar.DefaultConfig()
	cfg.DtMax = 0.1

	vel := integrator.New(2, "v", 1, 1e-4, 1e-6, 0, integrator.Policy{Relax: true})
	vel.XCoef = qssvar.Poly{-10, -9.81, 0, 0}
	vel.AddInitial(0, cfg)

	fake := oracle.NewFake([]float64{0, -10}, func(tt float64, x []float64) []float64 {
		return []float64{x[1], -9.81}
	})

	// Conditional writes the post-bounce velocity directly to the oracle.
	require.NoError(t, fake.SetReal(1, 8.0))

	h := handler.New(vel.Base, 1, vel)
	require.NoError(t, h.Advance(1.4278, fake, make([]float64, 2), cfg, 0))

	assert.InDelta(t, 8.0, vel.X(1.4278), 1e-9)
}
