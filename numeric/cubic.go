package numeric

import "math"

// singularityEps bounds how close the cubic discriminant may come to zero
// before SolveCubicUpper abandons Cardano's formula (numerically unstable
// near a repeated root) in favor of the iterative fallback.
const singularityEps = 1e-9

// maxHalleyIter is the iteration budget for the Newton/Halley fallback.
const maxHalleyIter = 8

// halleyRelTol is the convergence criterion for the iterative fallback.
const halleyRelTol = 1e-12

// SolveCubicUpper returns the smallest positive root t of
// a*t^3 + b*t^2 + c*t + d = 0 within (0, tHi], or math.Inf(1) if none exists
// in range. tHi is a conservative upper bound, typically derived from the
// quadratic step size as an initial guess (see qssvar.QuadraticUpperGuess).
//
// a == 0 degrades to the quadratic solver.
//
// Uses Cardano's closed-form solution when the discriminant is safely away
// from the singular (repeated-root) case; otherwise falls back to Halley's
// method with a Newton warm start, iterating at most maxHalleyIter times to
// halleyRelTol relative tolerance. Returns ErrDidNotConverge (plus +Inf) only
// if that fallback itself fails to converge — callers should log and treat
// the result exactly like "no event".
//
// Complexity: O(1).
func SolveCubicUpper(a, b, c, d, tHi float64) (float64, error) {
	// Stage 1: validate the bound.
	if tHi <= 0 {
		return math.Inf(1), ErrInvalidBound
	}

	// Stage 2: degrade to quadratic when the leading coefficient vanishes.
	if a == 0 {
		return cullToBound(SolveQuadratic(b, c, d), tHi), nil
	}

	// Stage 3: fast sign-pattern dispatch — if (a,b,c,d) all share a sign
	// (and none is zero), f is monotone and never zero for t > 0 unless
	// d == 0, which is handled by the root-extraction paths below anyway.
	if allSameSign(a, b, c, d) {
		return math.Inf(1), nil
	}

	// Stage 4: depress the cubic: t = y - b/(3a).
	shift := b / (3 * a)
	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)

	disc := (q*q)/4 + (p*p*p)/27

	// Stage 5: dispatch on discriminant.
	switch {
	case disc > singularityEps:
		// One real root, two complex conjugates.
		sq := math.Sqrt(disc)
		y := cbrt(-q/2+sq) + cbrt(-q/2-sq)
		return cullToBound(y-shift, tHi), nil

	case disc < -singularityEps:
		// Three distinct real roots (trigonometric form).
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(clamp((3*q)/(p*m), -1, 1)*1) / 3
		var best = math.Inf(1)
		for k := 0; k < 3; k++ {
			y := m*math.Cos(theta-2*math.Pi*float64(k)/3) - shift
			if y > 0 && y <= tHi && y < best {
				best = y
			}
		}
		return best, nil

	default:
		// Near the singularity: Cardano is ill-conditioned. Fall back to a
		// Newton-warm-started Halley iteration.
		return solveCubicIterative(a, b, c, d, tHi)
	}
}

// solveCubicIterative finds the smallest positive root of
// a*t^3+b*t^2+c*t+d in (0,tHi] by Halley's method, warm-started from the
// root of the cubic's derivative (a local quadratic) or the midpoint of the
// bound if that guess is out of range.
func solveCubicIterative(a, b, c, d, tHi float64) (float64, error) {
	// Warm start: smallest positive root of the derivative 3a t^2+2b t+c,
	// i.e. the nearest extremum, clipped into range; fall back to tHi/2.
	t0 := SolveQuadratic(3*a, 2*b, c)
	if math.IsInf(t0, 1) || t0 <= 0 || t0 >= tHi {
		t0 = tHi / 2
	}

	f := func(t float64) float64 { return ((a*t+b)*t+c)*t + d }
	f1 := func(t float64) float64 { return (3*a*t+2*b)*t + c }
	f2 := func(t float64) float64 { return 6*a*t + 2*b }

	t := t0
	for i := 0; i < maxHalleyIter; i++ {
		fv, f1v, f2v := f(t), f1(t), f2(t)
		denom := 2*f1v*f1v - fv*f2v
		var step float64
		if denom != 0 {
			step = (2 * fv * f1v) / denom // Halley
		} else if f1v != 0 {
			step = fv / f1v // Newton fallback when Halley denominator degenerates
		} else {
			break
		}
		next := t - step
		if math.Abs(next-t) <= halleyRelTol*math.Max(1, math.Abs(next)) {
			t = next
			if t > 0 && t <= tHi {
				return t, nil
			}
			return math.Inf(1), nil
		}
		t = next
	}

	if t > 0 && t <= tHi && math.Abs(f(t)) <= halleyRelTol*math.Max(1, math.Abs(d)) {
		return t, nil
	}

	return math.Inf(1), ErrDidNotConverge
}

// cullToBound returns t if it lies in (0, tHi], else +Inf.
func cullToBound(t, tHi float64) float64 {
	if t > 0 && t <= tHi {
		return t
	}
	return math.Inf(1)
}

// CullRoot discards a candidate root smaller than zTol/|xMag|, suppressing
// grazing artifacts near zero as described by the zero-crossing solver
// contract. xMag == 0 disables culling (treated as "no magnitude
// information").
func CullRoot(t, zTol, xMag float64) float64 {
	if xMag == 0 {
		return t
	}
	if t < zTol/math.Abs(xMag) {
		return math.Inf(1)
	}
	return t
}

func allSameSign(a, b, c, d float64) bool {
	if a == 0 || b == 0 || c == 0 || d == 0 {
		return false
	}
	pos := a > 0
	return (b > 0) == pos && (c > 0) == pos && (d > 0) == pos
}

func cbrt(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
