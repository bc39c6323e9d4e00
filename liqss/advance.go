package liqss

import (
	"fmt"

	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// Advance runs a single variable's Stage 0..F protocol (§4.2, §4.4). ders
// is scratch space sized to the oracle's full derivative vector; t0 is the
// simulation start, used by the ND policy for order >= 2.
func (v *Variable) Advance(t float64, oc oracle.Oracle, ders []float64, cfg qssvar.Config, t0 float64) error {
	if err := oc.SetTime(t); err != nil {
		return fmt.Errorf("liqss: %s: stage0 SetTime: %w", v.Name, err)
	}

	center := v.X(t)
	v.XCoef[0] = center
	v.TX = t

	dLower, err := probeDerivative(oc, v.Ref, center-v.QTol, ders)
	if err != nil {
		return fmt.Errorf("liqss: %s: lower probe: %w", v.Name, err)
	}
	dUpper, err := probeDerivative(oc, v.Ref, center+v.QTol, ders)
	if err != nil {
		return fmt.Errorf("liqss: %s: upper probe: %w", v.Name, err)
	}

	sel := selectImplicit(center, v.QTol, dLower, dUpper)
	if err := oc.SetReal(v.Ref, sel.value); err != nil {
		return fmt.Errorf("liqss: %s: commit: %w", v.Name, err)
	}
	v.XCoef[1] = sel.derivative
	v.XCoef[2] = 0
	v.XCoef[3] = 0

	if v.Order >= 2 {
		sample, err := qssvar.ProbeND(oc, v.Ref, t, cfg.DtND, t0, ders)
		if err != nil {
			return fmt.Errorf("liqss: %s: ND probe: %w", v.Name, err)
		}
		v.XCoef[2] = sample.X2(cfg.DtND)
		if v.Order >= 3 {
			v.XCoef[3] = sample.X3(cfg.DtND)
		}
	}

	v.finalize(sel.value, cfg)
	return nil
}

// finalize is Stage F: commit the offset-adjusted q0 (and, implicitly,
// q1/q2 by sharing the higher coefficients with x, since only the leading
// term is chosen implicitly), set qTol, derive tE, and schedule.
func (v *Variable) finalize(q0 float64, cfg qssvar.Config) {
	v.QCoef = v.XCoef
	v.QCoef[0] = q0
	v.QCoef[v.Order] = 0
	v.TQ = v.TX
	v.SetQTol()

	tHi := qssvar.QuadraticUpperGuess(v.XCoef, v.QCoef, v.QTol, cfg.DtMax)
	dt := qssvar.StepSize(v.XCoef, v.QCoef, v.Order, v.QTol, cfg.DtMin, cfg.DtMax, tHi)

	tE := v.TX + dt
	if tE == v.TX {
		tE = qssvar.BumpTime(v.TX)
	}
	v.ShiftQSS(tE)
}

// AddInitial schedules this variable's first requantization event, mirroring
// integrator.Variable.AddInitial for the LIQSS family.
func (v *Variable) AddInitial(t0 float64, cfg qssvar.Config) {
	v.InitTime(t0)
	v.TQ = t0
	v.QCoef = v.XCoef
	v.QCoef[v.Order] = 0
	v.SetQTol()
	tHi := qssvar.QuadraticUpperGuess(v.XCoef, v.QCoef, v.QTol, cfg.DtMax)
	dt := qssvar.StepSize(v.XCoef, v.QCoef, v.Order, v.QTol, cfg.DtMin, cfg.DtMax, tHi)
	v.TE = t0 + dt
	v.AddQSS(v.TE)
}
