package liqss

import "github.com/katalvlaran/qss/qssvar"

// Variable is a self-observing LIQSS integrator of order 1, 2, or 3.
type Variable struct {
	*qssvar.Base

	// Ref is this variable's oracle reference (state-vector slot).
	Ref int
}

// New constructs a LIQSS variable of the given order (1, 2, or 3).
func New(order int, name string, ref int, rTol, aTol, zTol float64) *Variable {
	v := &Variable{
		Base: qssvar.NewBase(name, order, qssvar.VariantLIQSS, rTol, aTol, zTol),
		Ref:  ref,
	}
	v.SelfObserver = true
	return v
}
