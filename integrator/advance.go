package integrator

import (
	"fmt"

	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// Advance runs the full Stage 0..F protocol for this variable's own
// requantization event at time t (§4.2, §4.3). ders is scratch space sized
// to the oracle's full derivative vector; t0 is the simulation start time,
// used by the ND policy to choose centered vs forward probing.
func (v *Variable) Advance(t float64, oc oracle.Oracle, ders []float64, cfg qssvar.Config, t0 float64) error {
	// Stage 0: advance tX, evaluate continuous trajectory at t, commit.
	x1In := v.X1(t) // slope entering this event, for yo-yo detection
	q1Prev := v.QCoef[1]
	x0 := v.X(t)
	v.XCoef[0] = x0
	v.TX = t

	if err := oc.SetTime(t); err != nil {
		return fmt.Errorf("integrator: %s: stage0 SetTime: %w", v.Name, err)
	}
	if err := oc.SetReal(v.Ref, x0); err != nil {
		return fmt.Errorf("integrator: %s: stage0 SetReal: %w", v.Name, err)
	}

	// Stage 1: fetch the new first derivative.
	if err := oc.GetDerivatives(ders); err != nil {
		return fmt.Errorf("integrator: %s: stage1 GetDerivatives: %w", v.Name, err)
	}
	x1 := ders[v.Ref]
	v.XCoef[1] = x1
	v.XCoef[2] = 0
	v.XCoef[3] = 0

	if v.Order >= 2 {
		// Stage 2/3: ND probing for the higher coefficients.
		sample, err := qssvar.ProbeND(oc, v.Ref, t, cfg.DtND, t0, ders)
		if err != nil {
			return fmt.Errorf("integrator: %s: ND probe: %w", v.Name, err)
		}
		v.XCoef[2] = sample.X2(cfg.DtND)
		if v.Order >= 3 {
			v.XCoef[3] = sample.X3(cfg.DtND)
		}
	}

	v.detectYoYo(x1In, x1, q1Prev, cfg)
	v.finalize(cfg, t0)
	return nil
}

// finalize is Stage F: roll q := x (one order lower, the "aligned" commit),
// set qTol, derive the next step size (applying relaxation if yo-yoing),
// and schedule the queue entry.
func (v *Variable) finalize(cfg qssvar.Config, t0 float64) {
	effective := v.XCoef
	topOrder := v.Order
	if v.yoyo.active {
		switch v.Order {
		case 2:
			effective[2] *= cfg.RelaxFactor2
		case 3:
			effective[3] *= cfg.RelaxFactor3
		}
	}

	// The committed q is always the real x, truncated one order — relaxation
	// only biases the step-size estimate, per §4.3 ("multiply ... before
	// computing tE"), never the stored trajectory.
	v.QCoef = v.XCoef
	v.QCoef[topOrder] = 0 // q holds one order fewer coefficients than x
	v.TQ = v.TX
	v.SetQTol()

	tHi := qssvar.QuadraticUpperGuess(effective, v.QCoef, v.QTol, cfg.DtMax)
	dt := qssvar.StepSize(effective, v.QCoef, topOrder, v.QTol, cfg.DtMin, cfg.DtMax, tHi)

	if v.yoyo.active && v.prevDt > 0 {
		maxGrowth := v.prevDt * cfg.MaxDtGrowth
		if dt > maxGrowth {
			dt = maxGrowth
		}
	}
	v.prevDt = dt

	if topOrderVanished(effective, topOrder) {
		dt = v.NextDeactivationStep(cfg)
	} else {
		v.ResetDeactivation()
	}

	tE := v.TX + dt
	if tE == v.TX {
		tE = qssvar.BumpTime(v.TX)
	}
	v.ShiftQSS(tE)
}

func topOrderVanished(p qssvar.Poly, order int) bool {
	return p[order] == 0
}

// AddInitial schedules this variable's first requantization event at
// construction time, bypassing Stage 0-3 (used when the variable's initial
// coefficients are already known, e.g. from init_all_variables).
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
