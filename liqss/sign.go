package liqss

import "github.com/katalvlaran/qss/oracle"

// probeResult holds the implicit coefficient selected for one Taylor order
// by the sign-dispatch procedure of §4.4, along with the derivative value
// to carry forward as the corresponding next-order coefficient.
type probeResult struct {
	value      float64 // the committed q-offset value (q0, q1, ...)
	derivative float64 // the derivative selected/interpolated at that value
}

// selectImplicit runs the three-way sign dispatch of §4.4 step 2: probe at
// center-tol and center+tol, and choose the quantized value whose
// derivative sign is self-consistent with the offset direction, avoiding
// the explicit-QSS limit cycle on stiff self-coupled equations.
//
//   - both probes negative  -> downward: commit the lower probe.
//   - both probes positive  -> upward: commit the upper probe.
//   - both probes zero      -> flat: commit center, average the (zero) slopes.
//   - mixed signs           -> an implicit root exists inside the quantum:
//     linearly interpolate between the two probes for the zero crossing
//     (the cheapest general root estimate available from two samples) and
//     clip to the quantum, per the "solve ... clip to [q_lower, q_upper]"
//     contract — higher-order root solvers (numeric.SolveQuadratic/
//     SolveCubicUpper) are reserved for the zero-crossing/step-size use in
//     packages zerocross and qssvar, where a full polynomial is known;
//     here only two point-samples of the derivative are available.
func selectImplicit(center, tol, dLower, dUpper float64) probeResult {
	lower := center - tol
	upper := center + tol

	switch {
	case dLower < 0 && dUpper < 0:
		return probeResult{value: lower, derivative: dLower}
	case dLower > 0 && dUpper > 0:
		return probeResult{value: upper, derivative: dUpper}
	case dLower == 0 && dUpper == 0:
		return probeResult{value: center, derivative: 0}
	default:
		span := dUpper - dLower
		if span == 0 {
			return probeResult{value: center, derivative: 0}
		}
		frac := (0 - dLower) / span
		root := lower + frac*(upper-lower)
		if root < lower {
			root = lower
		}
		if root > upper {
			root = upper
		}
		return probeResult{value: root, derivative: 0}
	}
}

// probeDerivative sets the oracle's state at ref to v and returns the
// resulting derivative at that same slot.
func probeDerivative(oc oracle.Oracle, ref int, v float64, ders []float64) (float64, error) {
	if err := oc.SetReal(ref, v); err != nil {
		return 0, err
	}
	if err := oc.GetDerivatives(ders); err != nil {
		return 0, err
	}
	return ders[ref], nil
}
