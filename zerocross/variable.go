package zerocross

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qss/numeric"
	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// Variable is a zero-crossing expression variable (§4.5).
type Variable struct {
	*qssvar.Base

	// Ref is the oracle reference for the underlying expression.
	Ref int
	// Cond is the external collaborator activated on a crossing of
	// interest.
	Cond Conditional

	tZLast           float64
	signAtTZLast     int
	crossingLast     Crossing
	crossing         Crossing
	xMag             float64
	detectedCrossing bool
}

// New constructs a zero-crossing variable. zTol is the anti-chatter/culling
// tolerance named throughout §4.5/§4.8.
func New(name string, ref int, zTol float64, cond Conditional) *Variable {
	v := &Variable{
		Base: qssvar.NewBase(name, 3, qssvar.VariantZC, 0, math.SmallestNonzeroFloat64, zTol),
		Ref:  ref,
		Cond: cond,
	}
	v.tZLast = math.Inf(-1)
	return v
}

// AdvancePre checks for an unpredicted crossing since tZLast (by comparing
// sign(x(tZLast)) to sign(x(t))) and folds |x(t)| into the anti-chatter
// magnitude, per §4.5.
func (v *Variable) AdvancePre(t float64) {
	signNow := signOf(v.X(t), v.ZTol)
	if v.signAtTZLast != 0 && signNow != 0 && signNow != v.signAtTZLast {
		v.detectedCrossing = true
	}
	if mag := math.Abs(v.X(t)); mag > v.xMag {
		v.xMag = mag
	}
}

// SetTZ computes the smallest positive root of the x-polynomial on
// [tQ, tE], culled against zTol/|x_mag| (§4.8), and stores it in TZ
// (+Inf if none, or if the classified crossing is not "of interest").
func (v *Variable) SetTZ(tHi float64) {
	h := numeric.SolveCubicUpper
	a, b, c, d := v.XCoef[3], v.XCoef[2], v.XCoef[1], v.XCoef[0]

	var root float64
	var err error
	if a == 0 {
		root = numeric.SolveQuadratic(b, c, d)
	} else {
		root, err = h(a, b, c, d, tHi)
	}
	if err != nil || math.IsInf(root, 1) {
		v.TZ = math.Inf(1)
		return
	}

	root = numeric.CullRoot(root, v.ZTol, v.xMag)
	if math.IsInf(root, 1) {
		v.TZ = math.Inf(1)
		return
	}

	tCandidate := v.TX + root
	after := signOf(v.XCoef.Eval(root), v.ZTol)
	before := v.signAtTZLast
	slopeAfter := v.XCoef.Eval1(root)
	if after == 0 && before != 0 {
		// The value at the root itself lies in the zero band; the side the
		// trajectory leaves toward is given by the slope there.
		after = signOf(slopeAfter, 0)
	}
	c2 := classify(before, after, slopeAfter)

	if v.Cond != nil && !v.Cond.OfInterest(c2) {
		v.TZ = math.Inf(1)
		return
	}
	v.crossing = c2
	v.TZ = tCandidate
}

// CrossingDetect implements the dispatch of §4.5: anti-chatter suppression,
// immediate report on an already-observed sign change, or a scheduled
// prediction; it then schedules the queue entry as QSS-ZC (if tE < tZ) or
// ZC (otherwise).
func (v *Variable) CrossingDetect(tE float64) {
	switch {
	case v.xMag < v.ZTol:
		// Anti-chatter: never report, only schedule the predicted tZ.
	case v.detectedCrossing:
		v.TZ = v.TX
	}

	if tE < v.TZ {
		v.ShiftQSSZC(tE)
	} else {
		v.ShiftZC(v.TZ)
	}
}

// AdvanceZC runs when this variable's ZC event fires: it records the
// crossing as last-seen, resets anti-chatter state, advances to the next
// predicted crossing, and activates the conditional. It returns whatever
// ids the conditional reports reassigning, for the caller to refresh.
func (v *Variable) AdvanceZC(tHi float64) ([]qssvar.ID, error) {
	v.crossingLast = v.crossing
	v.xMag = 0
	v.tZLast = v.TZ
	v.signAtTZLast = signOf(v.X(v.TZ), v.ZTol)
	v.detectedCrossing = false

	v.SetTZ(tHi)

	if v.Cond != nil && v.Cond.OfInterest(v.crossingLast) {
		return v.Cond.Activate(v.tZLast, v.crossingLast)
	}
	return nil, nil
}

// TZCBump returns a time slightly later than t (by zMul*zTol in magnitude)
// at which a host oracle maintaining its own event indicator for the same
// crossing will certainly have detected the sign change (§4.5), preventing
// the oracle and solver from disagreeing on whether the crossing occurred.
func (v *Variable) TZCBump(t, zMul float64) float64 {
	bump := t + zMul*v.ZTol
	if bump <= t {
		bump = qssvar.BumpTime(t)
	}
	return bump
}

// LastCrossing returns the most recently processed crossing classification.
func (v *Variable) LastCrossing() Crossing { return v.crossingLast }

// Refresh rebuilds this variable's x-polynomial from the oracle at time t,
// driven directly by the simulation loop rather than observer.Pipeline
// (§4.6 dispatches only the qss_range through the batched pipeline; real
// and zero-crossing observer ranges are left to the caller — see
// DESIGN.md). It reuses qssvar.ProbeND exactly as integrator/liqss/handler
// do: ders must be sized to the oracle's full state-derivative vector, and
// Ref must index a state-vector slot (a zero-crossing expression directly
// on a state variable, the common case); a registered non-state expression
// would need oracle.GetDirectionalDerivative instead, which is out of
// scope for this refresh path.
func (v *Variable) Refresh(t float64, oc oracle.Oracle, dt, t0 float64, ders []float64) error {
	if err := oc.SetTime(t); err != nil {
		return fmt.Errorf("zerocross: %s: SetTime: %w", v.Name, err)
	}
	x0, err := oc.GetReal(v.Ref)
	if err != nil {
		return fmt.Errorf("zerocross: %s: GetReal: %w", v.Name, err)
	}
	if err := oc.GetDerivatives(ders); err != nil {
		return fmt.Errorf("zerocross: %s: GetDerivatives: %w", v.Name, err)
	}
	v.XCoef[0] = x0
	v.XCoef[1] = ders[v.Ref]
	v.TX = t

	sample, err := qssvar.ProbeND(oc, v.Ref, t, dt, t0, ders)
	if err != nil {
		return fmt.Errorf("zerocross: %s: ND probe: %w", v.Name, err)
	}
	v.XCoef[2] = sample.X2(dt)
	v.XCoef[3] = sample.X3(dt)
	return nil
}

// AddInitial refreshes this variable from the oracle at t0 and schedules
// its first detection cycle, mirroring integrator.Variable.AddInitial and
// liqss.Variable.AddInitial for the zero-crossing family.
func (v *Variable) AddInitial(t0 float64, oc oracle.Oracle, cfg qssvar.Config, ders []float64) error {
	v.InitTime(t0)
	if err := v.Refresh(t0, oc, cfg.DtND, t0, ders); err != nil {
		return err
	}
	v.AdvancePre(t0)
	tHi := qssvar.QuadraticUpperGuess(v.XCoef, qssvar.Poly{}, v.ZTol, cfg.DtMax)
	v.SetTZ(tHi)
	v.CrossingDetect(t0 + cfg.DtMax)
	return nil
}
