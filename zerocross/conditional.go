package zerocross

import "github.com/katalvlaran/qss/qssvar"

// Conditional is the external collaborator activated when a crossing of
// interest occurs (§4.5, §1: the conditional-expression frontend is out of
// scope for this module; this interface is its only touchpoint with the
// core). OfInterest declares, at setup, which classified crossings this
// conditional cares about; Activate is invoked when one of those fires,
// and is expected to schedule whatever handler events follow. Activate
// returns the ids of any variables it reassigned through the oracle (e.g.
// a handler.Handler.Advance call on a discontinuous target), so the
// driver's post-batch observer pass refreshes those ids' observers before
// the batch completes (§4.9).
type Conditional interface {
	OfInterest(c Crossing) bool
	Activate(t float64, c Crossing) ([]qssvar.ID, error)
}
