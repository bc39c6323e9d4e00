package oracle

import "fmt"

// RHS computes the state derivative vector dx/dt given the current time and
// state vector x. It must not retain x.
type RHS func(t float64, x []float64) []float64

// ZeroCrossingExpr computes a zero-crossing (or algebraic, real-non-state)
// expression's value given the current time and state vector.
type ZeroCrossingExpr func(t float64, x []float64) float64

// Fake is a deterministic, in-process Oracle backed by a caller-supplied
// RHS and a set of named zero-crossing/algebraic expressions. References
// 0..N-1 address state variables; references N..N+M-1 address the M
// registered expressions, in registration order.
//
// Directional derivatives of an expression are estimated by central finite
// difference on the expression itself, perturbing the state vector along
// the seed direction dv — Fake has no symbolic model, so this is the most
// faithful stand-in available, and is only used in tests/demos, never in
// the solver's own ND logic (qssvar.ProbeND owns that).
type Fake struct {
	rhs   RHS
	exprs []ZeroCrossingExpr

	t float64
	x []float64

	ddEpsilon float64
}

// NewFake constructs a Fake oracle for a state vector of the given initial
// values and right-hand side.
func NewFake(x0 []float64, rhs RHS) *Fake {
	x := make([]float64, len(x0))
	copy(x, x0)
	return &Fake{rhs: rhs, x: x, ddEpsilon: 1e-6}
}

// RegisterExpr adds a zero-crossing/algebraic expression, returning its
// reference (N + registration index).
func (f *Fake) RegisterExpr(e ZeroCrossingExpr) int {
	f.exprs = append(f.exprs, e)
	return len(f.x) + len(f.exprs) - 1
}

func (f *Fake) GetTime() float64 { return f.t }

func (f *Fake) SetTime(t float64) error {
	f.t = t
	return nil
}

func (f *Fake) GetReal(ref int) (float64, error) {
	if ref < len(f.x) {
		return f.x[ref], nil
	}
	i := ref - len(f.x)
	if i < 0 || i >= len(f.exprs) {
		return 0, &CallError{Status: StatusError, Op: "GetReal", Err: fmt.Errorf("ref %d out of range", ref)}
	}
	return f.exprs[i](f.t, f.x), nil
}

func (f *Fake) SetReal(ref int, v float64) error {
	if ref < 0 || ref >= len(f.x) {
		return &CallError{Status: StatusError, Op: "SetReal", Err: fmt.Errorf("ref %d is not a state variable", ref)}
	}
	f.x[ref] = v
	return nil
}

func (f *Fake) GetReals(refs []int, vals []float64) error {
	for i, r := range refs {
		v, err := f.GetReal(r)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	return nil
}

func (f *Fake) SetReals(refs []int, vals []float64) error {
	for i, r := range refs {
		if err := f.SetReal(r, vals[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fake) GetDerivatives(ders []float64) error {
	d := f.rhs(f.t, f.x)
	if len(d) != len(ders) {
		return &CallError{Status: StatusError, Op: "GetDerivatives", Err: fmt.Errorf("rhs returned %d values, want %d", len(d), len(ders))}
	}
	copy(ders, d)
	return nil
}

func (f *Fake) GetDirectionalDerivative(vRefs []int, dv []float64, zRef int) (float64, error) {
	i := zRef - len(f.x)
	if i < 0 || i >= len(f.exprs) {
		return 0, &CallError{Status: StatusError, Op: "GetDirectionalDerivative", Err: fmt.Errorf("zRef %d is not a registered expression", zRef)}
	}
	expr := f.exprs[i]

	xPlus := make([]float64, len(f.x))
	xMinus := make([]float64, len(f.x))
	copy(xPlus, f.x)
	copy(xMinus, f.x)
	for k, ref := range vRefs {
		xPlus[ref] += f.ddEpsilon * dv[k]
		xMinus[ref] -= f.ddEpsilon * dv[k]
	}

	return (expr(f.t, xPlus) - expr(f.t, xMinus)) / (2 * f.ddEpsilon), nil
}

func (f *Fake) NewDiscreteStates() (EventInfo, error) {
	return EventInfo{}, nil
}
