package qssvar

import (
	"math"

	"github.com/katalvlaran/qss/numeric"
)

// StepSize solves for the smallest positive dt such that the continuous and
// quantized trajectories first differ by qTol, per the requantization
// formula in SPEC_FULL.md §4.2: |x(tQ+dt) - q(tQ+dt)| = qTol. x and q are
// Taylor coefficients about the same origin (the normal post-Stage0
// condition, where an own-trigger's Stage F resets TQ = TX); order selects
// which coefficients are significant (1: linear, 2: quadratic, 3: cubic via
// numeric.SolveCubicUpper, bounded by tHi).
//
// Two root problems are solved — x(dt)-q(dt) = +qTol and = -qTol — since
// the deviation can cross either bound first; the smaller positive root
// wins. When q's coefficients equal x's below the top order (the "aligned"
// case the spec names explicitly), this reduces exactly to the closed-form
// (qTol/|x_p|)^(1/p) the spec gives as a special case.
func StepSize(x, q Poly, order int, qTol, dtMin, dtMax, tHi float64) float64 {
	var diffPlus, diffMinus Poly
	for i := 0; i <= order && i < 4; i++ {
		diffPlus[i] = x[i] - q[i]
		diffMinus[i] = x[i] - q[i]
	}
	diffPlus[0] -= qTol
	diffMinus[0] += qTol

	var dt float64
	switch {
	case order <= 2:
		r1 := numeric.SolveQuadratic(diffPlus[2], diffPlus[1], diffPlus[0])
		r2 := numeric.SolveQuadratic(diffMinus[2], diffMinus[1], diffMinus[0])
		dt = minPositive(r1, r2)
	default:
		r1, _ := numeric.SolveCubicUpper(diffPlus[3], diffPlus[2], diffPlus[1], diffPlus[0], tHi)
		r2, _ := numeric.SolveCubicUpper(diffMinus[3], diffMinus[2], diffMinus[1], diffMinus[0], tHi)
		dt = minPositive(r1, r2)
	}

	if math.IsInf(dt, 1) || dt <= 0 {
		dt = dtMax
	}
	if dt < dtMin {
		dt = dtMin
	}
	if dt > dtMax {
		dt = dtMax
	}
	return dt
}

func minPositive(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// QuadraticUpperGuess returns a conservative upper bound for the cubic root
// solver's tHi argument, derived from the order-2 step size as the spec's
// §4.8 contract requires ("t_hi ... derived from the quadratic step size as
// an initial guess").
func QuadraticUpperGuess(x, q Poly, qTol, dtMax float64) float64 {
	guess := StepSize(x, q, 2, qTol, 0, dtMax, dtMax)
	if math.IsInf(guess, 1) || guess <= 0 {
		return dtMax
	}
	return guess
}
