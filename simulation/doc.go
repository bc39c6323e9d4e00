// Package simulation implements the outer event-loop driver of
// SPEC_FULL.md §4.9: it pops the event queue's next superdense-time batch,
// dispatches each trigger through its Stage protocol (via the Trigger
// interface integrator.Variable, liqss.Variable, and handler.Handler all
// satisfy, or the zero-crossing-specific path for zerocross.Variable), runs
// the observer pipeline for state-variable triggers, and applies pass-limit
// dtMin relaxation when superdense time fails to advance.
package simulation
