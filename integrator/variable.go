package integrator

import (
	"math"

	"github.com/katalvlaran/qss/qssvar"
)

// Policy selects the optional behavior variants named in §4.3: XPolicy
// makes observers see this variable's continuous (x) value instead of its
// lagging quantized (q) value; Relax enables yo-yo detection and the
// relaxation response (rQSS2/rQSS3/rfQSS3 in the spec's naming).
type Policy struct {
	XPolicy bool
	Relax   bool
}

// yoyoState tracks the oscillatory slope-reversal detector described in
// §4.3: a run of consecutive requantizations whose slope jump exceeds
// cfg.YoYoMultiplier times the quantization-driven jump, with consistent
// sign, triggers the relaxation response.
type yoyoState struct {
	lastDiffSign int
	streak       int
	active       bool
}

// Variable is a single non-self-observing QSS integrator of order 1, 2, or
// 3, selected at construction by Order. Order 1 never uses ND probing;
// orders 2 and 3 use qssvar.ProbeND for the second/third coefficients.
type Variable struct {
	*qssvar.Base

	// Ref is this variable's oracle reference (state-vector slot).
	Ref int

	Policy Policy

	yoyo   yoyoState
	prevDt float64

	// pendingX1In/pendingQ1Prev cache the slope entering the current event
	// (captured by RollToTime, since the observer pipeline commits Stage 1
	// separately via SetX1) for yo-yo detection in FinalizeStage.
	pendingX1In   float64
	pendingQ1Prev float64
}

// New constructs a QSS integrator variable of the given order (1, 2, or 3).
func New(order int, name string, ref int, rTol, aTol, zTol float64, policy Policy) *Variable {
	return &Variable{
		Base:   qssvar.NewBase(name, order, qssvar.VariantQSS, rTol, aTol, zTol),
		Ref:    ref,
		Policy: policy,
	}
}

// ObserveeValue returns the value observers should read for this variable:
// the continuous trajectory under XPolicy, the quantized (lagging) one
// otherwise — the sole behavioral difference of the xQSS variants (§4.3).
func (v *Variable) ObserveeValue(t float64) float64 {
	if v.Policy.XPolicy {
		return v.X(t)
	}
	return v.Q(t)
}

// detectYoYo updates the yo-yo streak given the slope entering this event
// (x1In, the continuous trajectory's slope at t before Stage 0 overwrites
// it) versus the freshly fetched x1, and the quantized slope being
// replaced (q1Prev). It returns whether relaxation should apply this call.
func (v *Variable) detectYoYo(x1In, x1, q1Prev float64, cfg qssvar.Config) bool {
	if !v.Policy.Relax || v.Order < 2 {
		return false
	}
	slopeJump := x1 - x1In
	qJump := x1 - q1Prev
	sign := 0
	switch {
	case slopeJump > 0:
		sign = 1
	case slopeJump < 0:
		sign = -1
	}

	yoyoing := sign != 0 && math.Abs(slopeJump) > cfg.YoYoMultiplier*math.Abs(qJump)
	if yoyoing && sign == v.yoyo.lastDiffSign {
		v.yoyo.streak++
	} else if yoyoing {
		v.yoyo.streak = 1
	} else {
		v.yoyo.streak = 0
	}
	v.yoyo.lastDiffSign = sign
	v.yoyo.active = v.yoyo.streak >= cfg.YoYoCount
	return v.yoyo.active
}

// ClearYoYo resets the yo-yo detector, called when a handler fires on this
// variable (§4.3: "yo-yoing is cleared when a handler fires").
func (v *Variable) ClearYoYo() {
	v.yoyo = yoyoState{}
	v.prevDt = 0
}

// --- observer.StageObserver ---

// RollToTime anchors this variable's continuous-trajectory origin at t,
// the Stage-0-equivalent position roll the observer pipeline performs on
// every observer in a range before dispatching Stage 1 (§4.6). Unlike
// Advance, it does not commit anything to the oracle: only the triggering
// variable's own Advance does that.
func (v *Variable) RollToTime(t float64) {
	v.pendingX1In = v.X1(t)
	v.pendingQ1Prev = v.QCoef[1]
	v.XCoef[0] = v.X(t)
	v.TX = t
}

// SetX1 commits the first-derivative coefficient fetched by the pipeline's
// bulk read, and clears the higher-order ones pending Stage 2/3.
func (v *Variable) SetX1(x1 float64) {
	v.XCoef[1] = x1
	v.XCoef[2] = 0
	v.XCoef[3] = 0
}

// SetX2 commits the second-derivative coefficient estimated by the
// pipeline's Stage 2 ND probe.
func (v *Variable) SetX2(x2 float64) { v.XCoef[2] = x2 }

// SetX3 commits the third-derivative coefficient estimated by the
// pipeline's Stage 3 ND probe.
func (v *Variable) SetX3(x3 float64) { v.XCoef[3] = x3 }

// FinalizeStage runs Stage F (see finalize) using the slope values RollToTime
// cached, for use by the observer pipeline in place of a standalone Advance.
func (v *Variable) FinalizeStage(cfg qssvar.Config, t0 float64) {
	v.detectYoYo(v.pendingX1In, v.XCoef[1], v.pendingQ1Prev, cfg)
	v.finalize(cfg, t0)
}
