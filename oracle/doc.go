// Package oracle defines the thin adapter interface over the host
// model-exchange (ME) library that the rest of this module treats as an
// abstract source of values, derivatives, and directional derivatives (see
// SPEC_FULL.md §6). The core never inspects the oracle's internal state
// representation; every value and derivative is an opaque float64 token.
//
// Fake is a deterministic, in-process Oracle implementation driven by a
// caller-supplied right-hand-side function, used by the simulation
// package's tests and by cmd/qssdemo to exercise end-to-end scenarios
// without a real FMU — the oracle's abstract-collaborator role made
// concrete enough to test against, the way this module's teacher lineage
// supplies concrete graph generators behind an abstract Graph interface.
package oracle
