// Package qss (quantized state system) is a discrete-event numerical
// integrator for systems of ODEs coupled with discrete events and
// zero-crossing indicator functions.
//
// Unlike time-stepped integrators (Runge-Kutta, multistep), QSS advances
// each state variable asynchronously: a variable schedules its own next
// requantization when its quantized representation deviates from its
// continuous trajectory by a tolerance. Variables, zero-crossings, and
// handlers are wired into observer/observee dependency graphs and driven
// by a single superdense-time event queue.
//
// Subpackages:
//
//	eventqueue/  — superdense-time priority queue
//	qssvar/      — Variable base: trajectories, scheduling, stage protocol
//	integrator/  — QSS1/2/3, xQSS, relaxation (rQSS/rfQSS) variants
//	liqss/       — LIQSS1/2/3 implicit variants for self-observing variables
//	zerocross/   — zero-crossing variable state machine
//	observer/    — batched observer/observee propagation
//	handler/     — discontinuous handler reassignment
//	numeric/     — quadratic/cubic root solvers
//	oracle/      — model-exchange adapter interface + deterministic fake
//	simulation/  — event-loop driver and configuration
//	qsslog/      — structured logging facade
//
// This package presumes access to a host "oracle" exposing state
// derivatives, event indicators, and directional derivatives (see the
// oracle package); it is not a general-purpose ODE library.
//
//	go get github.com/katalvlaran/qss
package qss
