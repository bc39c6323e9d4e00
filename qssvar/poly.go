package qssvar

// Poly is a degree-<=3 polynomial stored as Taylor coefficients, i.e.
// Poly{x0, x1, x2, x3} represents x0 + x1*h + x2*h^2 + x3*h^3 — the k-th
// coefficient is already divided by k! (per §4.2's ND policy note: "consumer
// code stores xk as the coefficient, not k!*xk"). Unused high-order slots
// for a lower method order are simply left zero.
type Poly [4]float64

// Eval Horner-evaluates the polynomial at offset h from its anchor time.
func (p Poly) Eval(h float64) float64 {
	return ((p[3]*h+p[2])*h+p[1])*h + p[0]
}

// Eval1 evaluates the first derivative at offset h.
func (p Poly) Eval1(h float64) float64 {
	return (3*p[3]*h+2*p[2])*h + p[1]
}

// Eval2 evaluates the second derivative at offset h.
func (p Poly) Eval2(h float64) float64 {
	return 6*p[3]*h + 2*p[2]
}

// Eval3 evaluates the (constant) third derivative.
func (p Poly) Eval3() float64 {
	return 6 * p[3]
}
