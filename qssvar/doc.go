// Package qssvar defines the common variable representation shared by every
// QSS/LIQSS/zero-crossing/handler variant: the two degree-p polynomials
// (continuous x, quantized q), tolerances, the observer/observee dependency
// edges, and the finite-state "stage protocol" every advance runs through.
//
// Variables live in a Pool, addressed by a small integer ID rather than by
// pointer, per the arena + NodeId design used throughout this module: a
// variable never moves once wired, but indices survive container growth in
// a way raw pointers into a growing slice would not.
//
// The stage protocol (Stage0 through StageF) exists because a simultaneous
// batch of triggers must have every stage-0 value committed before any
// stage-1 derivative is fetched — the oracle's derivative for one trigger
// can depend on another trigger's just-written stage-0 value. The
// integrator, liqss and handler packages implement simulation.Trigger;
// zerocross has its own detection lifecycle. qssvar itself only provides
// the shared state and scheduling primitives those implementations drive.
package qssvar
