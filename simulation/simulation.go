package simulation

import (
	"fmt"

	"github.com/katalvlaran/qss/eventqueue"
	"github.com/katalvlaran/qss/liqss"
	"github.com/katalvlaran/qss/observer"
	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qsslog"
	"github.com/katalvlaran/qss/qssvar"
	"github.com/katalvlaran/qss/zerocross"
)

// Trigger is implemented by every variant whose own requantization event
// runs a full Stage 0..F protocol: integrator.Variable, liqss.Variable,
// and handler.Handler all share this exact signature already, so a single
// interface dispatches to all three without per-variant glue.
type Trigger interface {
	Advance(t float64, oc oracle.Oracle, ders []float64, cfg qssvar.Config, t0 float64) error
}

// Simulation is the outer event-loop driver of §4.9: it owns the shared
// event queue and oracle handle, dispatches each popped trigger through
// its Stage protocol, and runs the observer pipeline for whichever
// triggers own state-variable observers.
//
// zerocross.Variable is tracked separately from Trigger because its
// lifecycle (AdvancePre/Refresh/SetTZ/CrossingDetect/AdvanceZC) doesn't
// fit the uniform Advance signature — see DESIGN.md.
type Simulation struct {
	pool     *qssvar.Pool
	queue    *eventqueue.Queue[qssvar.ID]
	pipeline *observer.Pipeline
	oc       oracle.Oracle
	log      qsslog.Logger
	cfg      Config
	t0       float64
	ders     []float64

	triggers map[qssvar.ID]Trigger
	zc       map[qssvar.ID]*zerocross.Variable
}

// New constructs a Simulation over pool and oc. numDers must equal the
// oracle's full state-derivative vector length (the size every
// oc.GetDerivatives call expects); t0 is the simulation start time, used
// by the ND policy to choose centered vs. forward probing.
func New(pool *qssvar.Pool, oc oracle.Oracle, numDers int, t0 float64, cfg Config, log qsslog.Logger) *Simulation {
	return &Simulation{
		pool:     pool,
		queue:    eventqueue.New[qssvar.ID](),
		pipeline: observer.NewPipeline(pool),
		oc:       oc,
		log:      log,
		cfg:      cfg,
		t0:       t0,
		ders:     make([]float64, numDers),
		triggers: make(map[qssvar.ID]Trigger),
		zc:       make(map[qssvar.ID]*zerocross.Variable),
	}
}

// Queue returns the shared event queue, so callers can Bind each
// variable's Base to it before scheduling (AddInitial / AddQSS / AddZC).
func (s *Simulation) Queue() *eventqueue.Queue[qssvar.ID] { return s.queue }

// RegisterTrigger associates id with the Trigger that advances it when its
// queue entry fires — every integrator.Variable and liqss.Variable in the
// model must be registered this way. A handler.Handler fired from within a
// Conditional's Activate is never queued and needs no registration.
func (s *Simulation) RegisterTrigger(id qssvar.ID, trig Trigger) {
	s.triggers[id] = trig
}

// RegisterObserver additionally makes id dispatchable as a state-variable
// observer through observer.Pipeline, for triggers (integrator.Variable)
// that implement observer.StageObserver. ref/order are passed explicitly
// rather than derived via interface methods, since Variable already
// exposes Ref and Order as plain fields (see observer.Pipeline.Register).
func (s *Simulation) RegisterObserver(id qssvar.ID, obs observer.StageObserver, ref, order int) {
	s.pipeline.Register(id, obs, ref, order)
}

// RegisterZC associates id with a zero-crossing variable, dispatched via
// the AdvancePre/Refresh/SetTZ/CrossingDetect/AdvanceZC path instead of
// Trigger.Advance.
func (s *Simulation) RegisterZC(id qssvar.ID, v *zerocross.Variable) {
	s.zc[id] = v
}

// Run pops batches from the event queue and drives them to completion,
// until the queue empties or the next batch's time exceeds tEnd. It
// implements the §4.9 outer-loop pseudocode: pass-limit dtMin relaxation,
// simultaneous-batch dispatch, and a post-batch observer pipeline pass for
// every trigger touched in the batch.
func (s *Simulation) Run(tEnd float64) error {
	for {
		key, _, ok := s.queue.Top()
		if !ok || key.T > tEnd {
			return nil
		}

		if key.I > uint64(s.cfg.PassLimit) {
			if err := s.relaxPassLimit(); err != nil {
				return err
			}
		}

		s.queue.SetActiveTime(key)
		batch := s.queue.Tops()

		// touched is the original_source "observed" set (§10): it dedups a
		// batch's triggers before the post-batch pipeline pass, so a
		// variable that is both a direct trigger and another trigger's
		// observer in the same batch only gets its observer-side refresh
		// run once.
		touched := make(map[qssvar.ID]struct{}, len(batch))

		// §4.4: simultaneous self-observing LIQSS variables can't each be
		// advanced independently — their implicit selections depend on
		// each other's committed q, so they're pulled out of the batch and
		// run through liqss.ResolveBatch's fixed-point iteration together.
		// A lone LIQSS entry falls back to the uniform dispatch below.
		var liqssEntries []eventqueue.Entry[qssvar.ID]
		var rest []eventqueue.Entry[qssvar.ID]
		for _, entry := range batch {
			if _, ok := s.triggers[entry.Event].(*liqss.Variable); ok {
				liqssEntries = append(liqssEntries, entry)
				continue
			}
			rest = append(rest, entry)
		}

		if len(liqssEntries) > 1 {
			vars := make([]*liqss.Variable, len(liqssEntries))
			for i, entry := range liqssEntries {
				vars[i] = s.triggers[entry.Event].(*liqss.Variable)
			}
			if err := liqss.ResolveBatch(vars, key.T, s.oc, s.ders, s.cfg.Config, s.t0, s.cfg.PassLimit); err != nil {
				return fmt.Errorf("simulation: liqss batch at t=%g: %w", key.T, err)
			}
			for _, entry := range liqssEntries {
				touched[entry.Event] = struct{}{}
			}
		} else {
			rest = append(rest, liqssEntries...)
		}

		for _, entry := range rest {
			if err := s.dispatch(entry, touched); err != nil {
				return err
			}
		}

		for id := range touched {
			if err := s.pipeline.Advance(id, key.T, s.oc, s.ders, s.cfg.Config, s.t0); err != nil {
				return fmt.Errorf("simulation: observer pipeline for id %d: %w", id, err)
			}
			if s.cfg.OnAdvance != nil {
				s.cfg.OnAdvance(id, key.T)
			}
		}
	}
}

// dispatch routes a single popped entry to its zero-crossing handling or
// its Trigger.Advance, recording id (and, for a zero-crossing whose
// conditional reassigned other variables, those ids too) in touched when
// they own state-variable observers that the pipeline must refresh
// afterward.
func (s *Simulation) dispatch(entry eventqueue.Entry[qssvar.ID], touched map[qssvar.ID]struct{}) error {
	id := entry.Event

	if v, ok := s.zc[id]; ok {
		reassigned, err := s.advanceZC(v, entry.Key)
		if err != nil {
			return fmt.Errorf("simulation: zero-crossing id %d: %w", id, err)
		}
		for _, rid := range reassigned {
			touched[rid] = struct{}{}
		}
		return nil
	}

	trig, ok := s.triggers[id]
	if !ok {
		return fmt.Errorf("simulation: id %d: %w", id, ErrNoTrigger)
	}
	if err := trig.Advance(entry.Key.T, s.oc, s.ders, s.cfg.Config, s.t0); err != nil {
		s.log.Warn().Int("id", int(id)).Err(err).Msg("trigger advance failed, aborting batch")
		return fmt.Errorf("simulation: advance id %d: %w", id, err)
	}
	touched[id] = struct{}{}
	return nil
}

// advanceZC handles a zero-crossing variable's queue entry. A CategoryZC
// entry is the predicted crossing firing: AdvanceZC commits it, activates
// the conditional, and returns whatever ids the conditional reassigned
// (e.g. a handler.Handler.Advance target, per §4.9's "for each unique
// observer across triggers" requirement — a handler-driven reassignment
// happens inside Activate, entirely outside the trigger dispatch below, so
// its target's id has to be surfaced here instead of picked up there). Any
// other category (CategoryQSSZC, or the variable's first scheduled entry)
// is a periodic recheck with no crossing yet: refresh the expression's
// polynomial from the oracle and recompute the prediction.
func (s *Simulation) advanceZC(v *zerocross.Variable, key eventqueue.Time) ([]qssvar.ID, error) {
	if key.O == eventqueue.CategoryZC {
		tHi := key.T + s.cfg.DtMax
		return v.AdvanceZC(tHi)
	}

	if err := v.Refresh(key.T, s.oc, s.cfg.DtND, s.t0, s.ders); err != nil {
		return nil, err
	}
	v.AdvancePre(key.T)
	tHi := qssvar.QuadraticUpperGuess(v.XCoef, qssvar.Poly{}, v.ZTol, s.cfg.DtMax)
	v.SetTZ(tHi)
	v.CrossingDetect(key.T + s.cfg.DtMax)
	return nil, nil
}

// relaxPassLimit doubles dtMin when the pass index exceeds cfg.PassLimit,
// per §4.9/§7, or returns a FatalError if that would push dtMin past half
// of dtMax (relaxation exhausted).
func (s *Simulation) relaxPassLimit() error {
	next := s.cfg.DtMin * 2
	if next > s.cfg.DtMax/2 {
		return &FatalError{
			Op:  "pass-limit relaxation",
			Err: fmt.Errorf("dtMin %g would exceed half of dtMax %g", next, s.cfg.DtMax),
		}
	}
	s.log.Warn().Float64("dtMin", next).Msg("pass limit exceeded, relaxing dtMin")
	s.cfg.DtMin = next
	return nil
}
