package qssvar

import "fmt"

// ID identifies a Variable within a Pool. Variables are addressed by ID,
// not by pointer, so observer/observee edges survive Pool growth.
type ID int

// InvalidID is never assigned to a live variable.
const InvalidID ID = -1

// Variant tags which family a Variable belongs to.
type Variant uint8

const (
	// VariantDiscrete is a discrete-event (non-continuous) state variable.
	VariantDiscrete Variant = iota
	// VariantInput is an externally driven input trajectory.
	VariantInput
	// VariantQSS is an explicit QSS state variable (integrator package).
	VariantQSS
	// VariantLIQSS is a self-observing, implicitly quantized state
	// variable (liqss package).
	VariantLIQSS
	// VariantZC is a zero-crossing variable (zerocross package).
	VariantZC
	// VariantRealNonState is a real-valued algebraic (non-state) variable.
	VariantRealNonState
	// VariantBoolean is a boolean-valued discrete variable.
	VariantBoolean
	// VariantInteger is an integer-valued discrete variable.
	VariantInteger
)

// String renders a Variant for diagnostics and log fields.
func (v Variant) String() string {
	switch v {
	case VariantDiscrete:
		return "Discrete"
	case VariantInput:
		return "Input"
	case VariantQSS:
		return "QSS"
	case VariantLIQSS:
		return "LIQSS"
	case VariantZC:
		return "ZC"
	case VariantRealNonState:
		return "RealNonState"
	case VariantBoolean:
		return "Boolean"
	case VariantInteger:
		return "Integer"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// rank orders variants for observer-range grouping (§4.6): state variables
// first, then real non-state, then zero-crossings, then everything else.
func (v Variant) rank() int {
	switch v {
	case VariantQSS, VariantLIQSS:
		return 0
	case VariantRealNonState:
		return 1
	case VariantZC:
		return 2
	default:
		return 3
	}
}
