package qssvar

import "github.com/katalvlaran/qss/oracle"

// NDSample holds the first-derivative probes used to estimate the second
// and third Taylor coefficients by numerical differentiation (§4.2's ND
// policy). Centered probing samples tE-dt, tE, tE+dt; forward probing (used
// near the simulation start, where tE-dt would precede t0) samples tE,
// tE+dt, tE+2dt.
type NDSample struct {
	Centered bool
	X1Minus  float64 // x1(tE-dt), centered only
	X1       float64 // x1(tE)
	X1Plus   float64 // x1(tE+dt)
	X1Plus2  float64 // x1(tE+2dt), forward only
}

// ProbeND gathers the samples needed for X2/X3, restoring the oracle's time
// to tE before returning. ders must be sized to the oracle's full
// derivative vector; ref selects this variable's slot within it.
func ProbeND(oc oracle.Oracle, ref int, tE, dt, t0 float64, ders []float64) (NDSample, error) {
	var s NDSample
	s.Centered = tE-dt >= t0

	sample := func(t float64) (float64, error) {
		if err := oc.SetTime(t); err != nil {
			return 0, err
		}
		if err := oc.GetDerivatives(ders); err != nil {
			return 0, err
		}
		return ders[ref], nil
	}

	var err error
	if s.Centered {
		if s.X1Minus, err = sample(tE - dt); err != nil {
			return s, err
		}
		if s.X1, err = sample(tE); err != nil {
			return s, err
		}
		if s.X1Plus, err = sample(tE + dt); err != nil {
			return s, err
		}
	} else {
		if s.X1, err = sample(tE); err != nil {
			return s, err
		}
		if s.X1Plus, err = sample(tE + dt); err != nil {
			return s, err
		}
		if s.X1Plus2, err = sample(tE + 2*dt); err != nil {
			return s, err
		}
	}
	if err := oc.SetTime(tE); err != nil {
		return s, err
	}
	return s, nil
}

// X2 estimates the second Taylor coefficient from the gathered samples,
// per the centered/forward formulas in SPEC_FULL.md §4.2.
func (s NDSample) X2(dt float64) float64 {
	if s.Centered {
		return (s.X1Plus - s.X1Minus) / (4 * dt)
	}
	return (3*(s.X1Plus-s.X1) + s.X1Plus - s.X1Plus2) / (4 * dt)
}

// X3 estimates the third Taylor coefficient from the gathered samples.
func (s NDSample) X3(dt float64) float64 {
	if s.Centered {
		return (s.X1Plus + s.X1Minus - 2*s.X1) / (6 * dt * dt)
	}
	return (s.X1Plus2 - 2*s.X1Plus + s.X1) / (6 * dt * dt)
}
