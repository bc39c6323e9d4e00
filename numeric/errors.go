package numeric

import "errors"

// Sentinel errors for the numeric package.
var (
	// ErrDidNotConverge is returned by the iterative cubic fallback when it
	// exhausts its iteration budget without reaching the required relative
	// tolerance. Callers should treat this the same as "no event" (+Inf),
	// but may want to log it; see simulation's Warn-then-continue policy.
	ErrDidNotConverge = errors.New("numeric: cubic root iteration did not converge")

	// ErrInvalidBound is returned when a caller-supplied upper bound tHi is
	// non-positive, which makes "smallest positive root in (0, tHi]" vacuous.
	ErrInvalidBound = errors.New("numeric: upper bound must be positive")
)
