package handler

import (
	"fmt"

	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// YoYoClearer is implemented by integrator.Variable; Handler clears a
// relaxation-capable target's yo-yo detector after a discontinuous
// reassignment, per §4.3 ("yo-yoing is cleared when a handler fires").
type YoYoClearer interface {
	ClearYoYo()
}

// Handler drives the discontinuous reassignment protocol of §4.7 for one
// target variable's Base: it rebuilds the quantized/continuous
// representation from a value a Conditional has already written to the
// oracle, instead of deriving Stage 0's value by continuous evaluation the
// way integrator/liqss do.
type Handler struct {
	Base    *qssvar.Base
	Ref     int
	Clearer YoYoClearer // optional; nil for non-relaxing targets (e.g. LIQSS)
}

// New constructs a Handler over the given target variable's Base.
func New(base *qssvar.Base, ref int, clearer YoYoClearer) *Handler {
	return &Handler{Base: base, Ref: ref, Clearer: clearer}
}

// Advance runs the handler's Stage 0..F protocol at time t. ders is scratch
// space sized to the oracle's full derivative vector.
func (h *Handler) Advance(t float64, oc oracle.Oracle, ders []float64, cfg qssvar.Config, t0 float64) error {
	b := h.Base

	if err := oc.SetTime(t); err != nil {
		return fmt.Errorf("handler: %s: stage0 SetTime: %w", b.Name, err)
	}
	// Stage 0: the conditional has already written the post-handler value;
	// read it back rather than evaluating the (now-stale) continuous poly.
	x0, err := oc.GetReal(h.Ref)
	if err != nil {
		return fmt.Errorf("handler: %s: stage0 GetReal: %w", b.Name, err)
	}
	b.XCoef[0] = x0
	b.TX = t

	// Stage 1.
	if err := oc.GetDerivatives(ders); err != nil {
		return fmt.Errorf("handler: %s: stage1 GetDerivatives: %w", b.Name, err)
	}
	b.XCoef[1] = ders[h.Ref]
	b.XCoef[2] = 0
	b.XCoef[3] = 0

	if b.Order >= 2 {
		sample, err := qssvar.ProbeND(oc, h.Ref, t, cfg.DtND, t0, ders)
		if err != nil {
			return fmt.Errorf("handler: %s: ND probe: %w", b.Name, err)
		}
		b.XCoef[2] = sample.X2(cfg.DtND)
		if b.Order >= 3 {
			b.XCoef[3] = sample.X3(cfg.DtND)
		}
	}

	// Stage F.
	b.QCoef = b.XCoef
	b.QCoef[b.Order] = 0
	b.TQ = t
	b.SetQTol()

	tHi := qssvar.QuadraticUpperGuess(b.XCoef, b.QCoef, b.QTol, cfg.DtMax)
	dt := qssvar.StepSize(b.XCoef, b.QCoef, b.Order, b.QTol, cfg.DtMin, cfg.DtMax, tHi)
	tE := t + dt
	if tE == t {
		tE = qssvar.BumpTime(t)
	}
	b.ShiftQSS(tE)

	if h.Clearer != nil {
		h.Clearer.ClearYoYo()
	}
	return nil
}
