// Package integrator implements the explicit QSS1/QSS2/QSS3 integrators
// (SPEC_FULL.md §4.3) for non-self-observing variables: it maintains the
// invariant |x-q| <= qTol between requantizations by holding a
// continuous polynomial of the variable's own order and a quantized
// polynomial one order lower, resynchronized on every own-trigger advance.
//
// Self-observing (stiff) variables are handled by package liqss instead,
// which implements the implicit coefficient selection §4.4 requires; the
// two share the Stage protocol and ND machinery defined in package qssvar.
package integrator
