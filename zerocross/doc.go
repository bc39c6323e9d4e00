// Package zerocross implements the zero-crossing variable state machine of
// SPEC_FULL.md §4.5: a variable representing a model expression whose sign
// changes trigger discontinuous Conditional/handler events. It shares
// qssvar.Base's polynomial and scheduling machinery and adds crossing
// prediction, classification, and anti-chatter suppression. Only the
// continuous x-polynomial is refreshed from the oracle; the quantized
// QCoef of a zero-crossing variable is never set and stays zero.
package zerocross
