package qssvar_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qss/eventqueue"
	"github.com/katalvlaran/qss/qssvar"
)

func TestNewBase_ClampsTolerances(t *testing.T) {
	b := qssvar.NewBase("x", 2, qssvar.VariantQSS, -1, 0, 1e-6)
	assert.Equal(t, 0.0, b.RTol)
	assert.GreaterOrEqual(t, b.ATol, math.SmallestNonzeroFloat64)
	assert.True(t, math.IsInf(b.TZ, 1))
}

func TestBase_SetQTol(t *testing.T) {
	b := qssvar.NewBase("x", 1, qssvar.VariantQSS, 1e-4, 1e-6, 0)
	b.QCoef[0] = 100.0
	b.SetQTol()
	assert.InDelta(t, 1e-4*100.0, b.QTol, 1e-15)

	b.QCoef[0] = 0
	b.SetQTol()
	assert.InDelta(t, 1e-6, b.QTol, 1e-15)
}

func TestBase_EvaluationMatchesPoly(t *testing.T) {
	b := qssvar.NewBase("x", 3, qssvar.VariantQSS, 0, 1e-6, 0)
	b.XCoef = qssvar.Poly{1, 2, 3, 4}
	b.TX = 10
	assert.InDelta(t, b.XCoef.Eval(0.5), b.X(10.5), 1e-12)
	assert.InDelta(t, b.XCoef.Eval1(0.5), b.X1(10.5), 1e-12)
	assert.InDelta(t, b.XCoef.Eval2(0.5), b.X2(10.5), 1e-12)
	assert.InDelta(t, b.XCoef.Eval3(), b.X3(), 1e-12)
}

func TestBase_SchedulingRoundTrip(t *testing.T) {
	q := eventqueue.New[qssvar.ID]()
	b := qssvar.NewBase("x", 1, qssvar.VariantQSS, 0, 1e-6, 0)
	b.Bind(q)
	b.ID = 0

	b.AddQSS(5.0)
	assert.Equal(t, 1, q.Size())

	key, id, ok := q.Top()
	require.True(t, ok)
	assert.Equal(t, qssvar.ID(0), id)
	assert.Equal(t, 5.0, key.T)

	b.ShiftQSS(3.0)
	key, _, ok = q.Top()
	require.True(t, ok)
	assert.Equal(t, 3.0, key.T)
	assert.Equal(t, 3.0, b.TE)
}

func TestBase_DeactivationRelaxation(t *testing.T) {
	cfg := qssvar.DefaultConfig()
	b := qssvar.NewBase("x", 1, qssvar.VariantInput, 0, 1e-6, 0)

	assert.False(t, b.Deactivated())
	first := b.NextDeactivationStep(cfg)
	assert.Equal(t, cfg.DtInf, first)
	second := b.NextDeactivationStep(cfg)
	assert.Equal(t, cfg.DtInf*2, second)
	assert.True(t, b.Deactivated())

	b.ResetDeactivation()
	assert.False(t, b.Deactivated())
}

func TestBase_DeactivationCapsAtDtInfMax(t *testing.T) {
	cfg := qssvar.DefaultConfig()
	cfg.DtInf = 10
	cfg.DtInfMax = 15
	b := qssvar.NewBase("x", 1, qssvar.VariantInput, 0, 1e-6, 0)

	b.NextDeactivationStep(cfg) // 10
	got := b.NextDeactivationStep(cfg)
	assert.Equal(t, 15.0, got)
}

func TestBumpTime_IsStrictlyGreater(t *testing.T) {
	got := qssvar.BumpTime(1.0)
	assert.Greater(t, got, 1.0)
}
