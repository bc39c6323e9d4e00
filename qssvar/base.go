package qssvar

import (
	"math"

	"github.com/katalvlaran/qss/eventqueue"
)

// Stage identifies a step of the multi-stage advance protocol described in
// SPEC_FULL.md §4.2. Simultaneous batches run every trigger through Stage0
// before any trigger runs Stage1, and so on, because a trigger's Stage1
// derivative can depend on another trigger's just-committed Stage0 value.
type Stage uint8

const (
	// Stage0 advances tX/tQ to the event time and commits the new x0 to
	// the oracle.
	Stage0 Stage = iota
	// Stage1 fetches the new first derivative from the oracle.
	Stage1
	// Stage2 computes the new second derivative via numerical
	// differentiation.
	Stage2
	// Stage21 is the optional LIQSS second-derivative probe stage.
	Stage21
	// Stage3 computes the new third derivative (or, for LIQSS, selects the
	// implicit coefficient from third-derivative signs).
	Stage3
	// StageF finalizes: qTol, tE/tZ, queue scheduling, and (for LIQSS) the
	// committed q0.
	StageF
)

// Base holds the state and behavior common to every variable variant:
// name, order, tolerances, the two polynomial representations, scheduling,
// and the observer/observee edges. Variant packages (integrator, liqss,
// zerocross, handler) embed *Base and add variant-specific fields/stages.
type Base struct {
	ID      ID
	Name    string
	Order   int
	Variant Variant

	RTol float64
	ATol float64
	QTol float64
	ZTol float64

	// XCoef/TX is the continuous trajectory x(t) = XCoef.Eval(t-TX).
	XCoef Poly
	TX    float64

	// QCoef/TQ is the quantized trajectory q(t) = QCoef.Eval(t-TQ).
	QCoef Poly
	TQ    float64

	// TE is the next scheduled requantization time.
	TE float64
	// TZ is the next predicted zero-crossing time (+Inf for non-ZC
	// variables, per the invariant tX <= tZ).
	TZ float64

	// Observers/Observees are dependency edges by ID (see Pool.Observe).
	Observers []ID
	Observees []ID

	// SelfObserver is true iff this variable appears in its own
	// derivative (drives routing to the liqss package instead of
	// integrator).
	SelfObserver bool

	// Pre-sorted observer ranges, computed by Pool.InitObservers. Index
	// spans into Observers after grouping by variant rank.
	RangeQSS   [2]int
	RangeReal  [2]int
	RangeZC    [2]int
	RangeOther [2]int
	// UniformOrder is true if every observer shares the same Order (set
	// once at InitObservers time), letting observer.Pipeline skip a
	// per-observer order check on its hot path.
	UniformOrder bool

	queue  *eventqueue.Queue[ID]
	handle eventqueue.Handle[ID]

	// dtInfCurrent tracks the deactivation relaxation step; 0 means active.
	dtInfCurrent float64
}

// NewBase constructs a Base with clamped tolerances (§7: rTol >= 0, aTol >=
// smallest positive double) and TZ initialized to +Inf.
func NewBase(name string, order int, variant Variant, rTol, aTol, zTol float64) *Base {
	if rTol < 0 {
		rTol = 0
	}
	if aTol < math.SmallestNonzeroFloat64 {
		aTol = math.SmallestNonzeroFloat64
	}
	b := &Base{
		ID:      InvalidID,
		Name:    name,
		Order:   order,
		Variant: variant,
		RTol:    rTol,
		ATol:    aTol,
		ZTol:    zTol,
		TZ:      math.Inf(1),
	}
	b.QTol = aTol
	return b
}

// Bind attaches the shared event queue this variable schedules into. Until
// Bind is called, Shift*/Add* methods update TE/TZ but queue nothing.
func (b *Base) Bind(q *eventqueue.Queue[ID]) { b.queue = q }

// InitTime anchors tX, tQ, tE at t0, per the lifecycle described in §3.
func (b *Base) InitTime(t0 float64) {
	b.TX, b.TQ, b.TE = t0, t0, t0
}

// --- Evaluation (§4.2) ---

// X evaluates the continuous trajectory at time t.
func (b *Base) X(t float64) float64 { return b.XCoef.Eval(t - b.TX) }

// X1 evaluates the continuous trajectory's first derivative at time t.
func (b *Base) X1(t float64) float64 { return b.XCoef.Eval1(t - b.TX) }

// X2 evaluates the continuous trajectory's second derivative at time t.
func (b *Base) X2(t float64) float64 { return b.XCoef.Eval2(t - b.TX) }

// X3 evaluates the continuous trajectory's (constant) third derivative.
func (b *Base) X3() float64 { return b.XCoef.Eval3() }

// Q evaluates the quantized trajectory at time t.
func (b *Base) Q(t float64) float64 { return b.QCoef.Eval(t - b.TQ) }

// Q1 evaluates the quantized trajectory's first derivative at time t.
func (b *Base) Q1(t float64) float64 { return b.QCoef.Eval1(t - b.TQ) }

// Q2 evaluates the quantized trajectory's second derivative at time t.
func (b *Base) Q2(t float64) float64 { return b.QCoef.Eval2(t - b.TQ) }

// SetQTol recomputes qTol = max(rTol*|q0|, aTol), as required on every
// requantization (§3 invariant: qTol > 0 after every SetQTol call, which
// holds because ATol is clamped to at least the smallest positive double).
func (b *Base) SetQTol() {
	v := b.RTol * math.Abs(b.QCoef[0])
	if v < b.ATol {
		v = b.ATol
	}
	b.QTol = v
}

// --- Scheduling (§4.2) ---

// schedule computes this variable's queue key for category o at time t
// (consulting the queue's active-time bookkeeping), then shifts (or, for a
// variable not yet queued, inserts) this variable's handle there.
func (b *Base) schedule(t float64, o eventqueue.Category) {
	if b.queue == nil {
		return
	}
	key := b.queue.Key(t, o)
	if !b.handle.Valid() {
		b.handle = b.queue.Insert(key, b.ID)
		return
	}
	b.handle = b.queue.Shift(b.handle, key)
}

// ShiftQSS reschedules this variable's own requantization event at tE.
func (b *Base) ShiftQSS(tE float64) {
	b.TE = tE
	b.schedule(tE, eventqueue.CategoryQSS)
}

// AddQSS inserts this variable's first requantization event at tE. Aliases
// ShiftQSS: schedule already handles both the first-insert and re-key
// cases uniformly.
func (b *Base) AddQSS(tE float64) { b.ShiftQSS(tE) }

// ShiftInput reschedules an Input variable's event using the QSS-Input
// category (lowest priority among the QSS family, per §3).
func (b *Base) ShiftInput(tE float64) {
	b.TE = tE
	b.schedule(tE, eventqueue.CategoryQSSInput)
}

// ShiftQSSZC reschedules a zero-crossing-observing QSS variable's event
// using the QSS-ZC category, used when tE < tZ (see zerocross).
func (b *Base) ShiftQSSZC(tE float64) {
	b.TE = tE
	b.schedule(tE, eventqueue.CategoryQSSZC)
}

// ShiftZC reschedules this variable's predicted zero-crossing event at tZ.
func (b *Base) ShiftZC(tZ float64) {
	b.TZ = tZ
	b.schedule(tZ, eventqueue.CategoryZC)
}

// AddZC inserts this variable's first zero-crossing event at tZ.
func (b *Base) AddZC(tZ float64) { b.ShiftZC(tZ) }

// ShiftHandler reschedules a handler event at t.
func (b *Base) ShiftHandler(t float64) {
	b.schedule(t, eventqueue.CategoryHandler)
}

// ShiftDiscrete reschedules a discrete event at t.
func (b *Base) ShiftDiscrete(t float64) {
	b.schedule(t, eventqueue.CategoryDiscrete)
}

// BumpTime returns the smallest float64 strictly greater than t, used to
// recover from the tQ==tE step-size underflow condition (§7).
func BumpTime(t float64) float64 {
	return math.Nextafter(t, math.Inf(1))
}

// --- Deactivation control (§4.2) ---

// NextDeactivationStep returns the dt to use when a variable's higher-order
// coefficients have vanished: cfg.DtInf the first time, doubling on each
// subsequent call up to cfg.DtInfMax, until ResetDeactivation is called
// (typically when the variable reactivates, i.e. a nonzero higher-order
// coefficient reappears).
func (b *Base) NextDeactivationStep(cfg Config) float64 {
	if b.dtInfCurrent <= 0 {
		b.dtInfCurrent = cfg.DtInf
	} else {
		b.dtInfCurrent *= 2
		if b.dtInfCurrent > cfg.DtInfMax {
			b.dtInfCurrent = cfg.DtInfMax
		}
	}
	return b.dtInfCurrent
}

// ResetDeactivation clears the deactivation relaxation state.
func (b *Base) ResetDeactivation() { b.dtInfCurrent = 0 }

// Deactivated reports whether this variable is currently in the
// deactivation relaxation regime.
func (b *Base) Deactivated() bool { return b.dtInfCurrent > 0 }
