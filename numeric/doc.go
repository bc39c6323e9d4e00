// Package numeric provides the root solvers shared by the step-size and
// zero-crossing computations: closed-form quadratic roots and a
// Cardano-with-Halley-fallback cubic solver, both returning the smallest
// positive root; only the cubic solver is restricted to a bounded interval
// (0, tHi].
//
// Every solver follows the same contract: it returns math.Inf(1) when no
// positive root exists in range rather than an error, since "no event" is
// an expected, common outcome, not a failure (see ErrDidNotConverge for the
// one case that is an actual failure: the iterative fallback exhausting its
// iteration budget).
package numeric
