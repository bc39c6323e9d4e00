package observer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// StageObserver is implemented by variant packages (integrator.Variable,
// and similarly-shaped handler targets) whose Stage 1-F work can be driven
// by the batched pipeline instead of their own standalone Advance. It
// mirrors the stage protocol in §4.2/§4.6, but without the oracle round
// trips — the pipeline performs those once, in bulk, for the whole range.
type StageObserver interface {
	// RollToTime anchors the continuous trajectory's origin at t (the
	// Stage-0-equivalent position roll; observers never commit to the
	// oracle on their own behalf — only the triggering variable does).
	RollToTime(t float64)
	SetX1(x1 float64)
	SetX2(x2 float64)
	SetX3(x3 float64)
	FinalizeStage(cfg qssvar.Config, t0 float64)
}

type registration struct {
	obs   StageObserver
	ref   int
	order int
}

// Pipeline runs the batched observer-advance over a Pool's pre-sorted
// observer ranges (§4.2's init_observers grouping), amortizing oracle round
// trips across every observer that shares observees.
type Pipeline struct {
	pool *qssvar.Pool
	reg  map[qssvar.ID]registration
}

// NewPipeline constructs a Pipeline over the given pool.
func NewPipeline(pool *qssvar.Pool) *Pipeline {
	return &Pipeline{pool: pool, reg: make(map[qssvar.ID]registration)}
}

// Register associates a variable ID with its StageObserver, oracle
// reference, and integration order, so the pipeline can dispatch to it
// when it appears in another variable's observer list.
func (p *Pipeline) Register(id qssvar.ID, obs StageObserver, ref, order int) {
	p.reg[id] = registration{obs: obs, ref: ref, order: order}
}

// Advance runs the five-step pipeline for triggerID's state-variable
// (QSS-range) observers at time t: a serial bulk derivative fetch for
// Stage 1, centered ND re-probes at t ± dtND for Stages 2/3 (each followed
// by per-observer dispatch, fanned out when the range is large), and a
// final serial Stage F that performs each observer's own queue shift.
//
// Real-non-state and zero-crossing observer ranges are not dispatched
// through this pipeline: their recompute is driven directly by the
// simulation loop (zerocross.Variable.AdvancePre/SetTZ), since their stage
// semantics differ enough from the QSS/LIQSS Stage 1-F shape that folding
// them into StageObserver would force an artificial common interface; see
// DESIGN.md.
func (p *Pipeline) Advance(triggerID qssvar.ID, t float64, oc oracle.Oracle, ders []float64, cfg qssvar.Config, t0 float64) error {
	base := p.pool.Get(triggerID)
	if base == nil {
		return fmt.Errorf("observer: unknown trigger id %d", triggerID)
	}

	obsIDs := base.Observers[base.RangeQSS[0]:base.RangeQSS[1]]
	if len(obsIDs) == 0 {
		return nil
	}

	entries := make([]registration, 0, len(obsIDs))
	for _, id := range obsIDs {
		if r, ok := p.reg[id]; ok {
			entries = append(entries, r)
		}
	}
	if len(entries) == 0 {
		return nil
	}

	for _, e := range entries {
		e.obs.RollToTime(t)
	}

	if err := oc.SetTime(t); err != nil {
		return fmt.Errorf("observer: stage1 SetTime: %w", err)
	}
	if err := oc.GetDerivatives(ders); err != nil {
		return fmt.Errorf("observer: stage1 GetDerivatives: %w", err)
	}
	atT := append([]float64(nil), ders...)

	if err := fanOut(entries, cfg, func(e registration) error {
		e.obs.SetX1(atT[e.ref])
		return nil
	}); err != nil {
		return err
	}

	needsND := false
	for _, e := range entries {
		if e.order >= 2 {
			needsND = true
			break
		}
	}

	if needsND {
		if err := oc.SetTime(t - cfg.DtND); err != nil {
			return fmt.Errorf("observer: stage2 SetTime(t-dt): %w", err)
		}
		if err := oc.GetDerivatives(ders); err != nil {
			return fmt.Errorf("observer: stage2 GetDerivatives(t-dt): %w", err)
		}
		atMinus := append([]float64(nil), ders...)

		if err := oc.SetTime(t + cfg.DtND); err != nil {
			return fmt.Errorf("observer: stage2 SetTime(t+dt): %w", err)
		}
		if err := oc.GetDerivatives(ders); err != nil {
			return fmt.Errorf("observer: stage2 GetDerivatives(t+dt): %w", err)
		}
		atPlus := append([]float64(nil), ders...)

		if err := fanOut(entries, cfg, func(e registration) error {
			if e.order < 2 {
				return nil
			}
			x2 := (atPlus[e.ref] - atMinus[e.ref]) / (4 * cfg.DtND)
			e.obs.SetX2(x2)
			if e.order >= 3 {
				x3 := (atPlus[e.ref] + atMinus[e.ref] - 2*atT[e.ref]) / (6 * cfg.DtND * cfg.DtND)
				e.obs.SetX3(x3)
			}
			return nil
		}); err != nil {
			return err
		}

		if err := oc.SetTime(t); err != nil {
			return fmt.Errorf("observer: restore time: %w", err)
		}
	}

	for _, e := range entries {
		e.obs.FinalizeStage(cfg, t0)
	}
	return nil
}

// fanOut runs fn over entries, in parallel (bounded by
// cfg.ParallelThreshold's corresponding errgroup limit) when the range is
// large, serially otherwise — the §5 contract: bulk oracle I/O stays
// serial (handled by the caller), only this independent per-observer
// arithmetic may run concurrently.
func fanOut(entries []registration, cfg qssvar.Config, fn func(registration) error) error {
	if len(entries) <= cfg.ParallelThreshold {
		for _, e := range entries {
			if err := fn(e); err != nil {
				return err
			}
		}
		return nil
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.ParallelThreshold)
	for _, e := range entries {
		e := e
		g.Go(func() error { return fn(e) })
	}
	return g.Wait()
}
