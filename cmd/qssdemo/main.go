// Package main demonstrates wiring the qss solver end to end against
// oracle.Fake, without a real FMU, for three of the scenarios named in
// SPEC_FULL.md §8: linear decay, the undamped harmonic oscillator, and the
// bouncing ball (a zero-crossing plus a discontinuous handler).
//
// Demonstrates:
//   - Building a Pool, wiring observer/observee edges, and registering
//     variables with a Simulation.
//   - Using Config.OnAdvance to stream a CSV-ish trace to stdout.
//   - The zero-crossing/handler path for a discontinuous reassignment.
package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/katalvlaran/qss/handler"
	"github.com/katalvlaran/qss/integrator"
	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qsslog"
	"github.com/katalvlaran/qss/qssvar"
	"github.com/katalvlaran/qss/simulation"
	"github.com/katalvlaran/qss/zerocross"
)

func main() {
	fmt.Println("=== Scenario A: linear decay ===")
	if err := runDecay(); err != nil {
		log.Fatalf("decay scenario failed: %v", err)
	}

	fmt.Println("\n=== Scenario B: harmonic oscillator ===")
	if err := runOscillator(); err != nil {
		log.Fatalf("oscillator scenario failed: %v", err)
	}

	fmt.Println("\n=== Scenario C: bouncing ball ===")
	if err := runBouncingBall(); err != nil {
		log.Fatalf("bouncing ball scenario failed: %v", err)
	}
}

// runDecay wires a single order-3 QSS integrator for ẋ = −x, x(0) = 1.
func runDecay() error {
	pool := qssvar.NewPool()
	oc := oracle.NewFake([]float64{1.0}, func(_ float64, x []float64) []float64 {
		return []float64{-x[0]}
	})

	v := integrator.New(3, "x", 0, 1e-4, 1e-6, 0, integrator.Policy{})
	id := pool.Add(v.Base)
	pool.InitObservers(id)
	pool.InitObservees(id)

	cfg := simulation.DefaultConfig(simulation.WithOnAdvance(csvTrace(os.Stdout)))
	sim := simulation.New(pool, oc, 1, 0, cfg, qsslog.New(os.Stderr, "warn"))
	v.Bind(sim.Queue())
	sim.RegisterTrigger(id, v)
	sim.RegisterObserver(id, v, 0, 3)

	v.AddInitial(0, cfg.Config)
	if err := sim.Run(5); err != nil {
		return err
	}
	fmt.Printf("x(5) = %.10f (exp(-5) = %.10f)\n", v.X(5), math.Exp(-5))
	return nil
}

// runOscillator wires two coupled order-2 QSS integrators for ẍ + x = 0.
func runOscillator() error {
	pool := qssvar.NewPool()
	oc := oracle.NewFake([]float64{1.0, 0.0}, func(_ float64, x []float64) []float64 {
		return []float64{x[1], -x[0]}
	})

	pos := integrator.New(2, "pos", 0, 1e-5, 1e-7, 0, integrator.Policy{})
	vel := integrator.New(2, "vel", 1, 1e-5, 1e-7, 0, integrator.Policy{})
	posID := pool.Add(pos.Base)
	velID := pool.Add(vel.Base)
	pool.Observe(posID, velID)
	pool.Observe(velID, posID)
	pool.InitObservers(posID)
	pool.InitObservers(velID)
	pool.InitObservees(posID)
	pool.InitObservees(velID)

	cfg := simulation.DefaultConfig()
	sim := simulation.New(pool, oc, 2, 0, cfg, qsslog.New(os.Stderr, "warn"))
	pos.Bind(sim.Queue())
	vel.Bind(sim.Queue())
	sim.RegisterTrigger(posID, pos)
	sim.RegisterTrigger(velID, vel)
	sim.RegisterObserver(posID, pos, 0, 2)
	sim.RegisterObserver(velID, vel, 1, 2)

	pos.AddInitial(0, cfg.Config)
	vel.AddInitial(0, cfg.Config)

	const twoPi = 2 * math.Pi
	if err := sim.Run(twoPi); err != nil {
		return err
	}
	fmt.Printf("pos(2pi) = %.6f (want ~1.0)\n", pos.X(twoPi))
	return nil
}

// runBouncingBall wires a falling ball (ẍ = −9.81) with a ground
// zero-crossing that reassigns velocity with a 0.8 restitution
// coefficient on every bounce.
func runBouncingBall() error {
	pool := qssvar.NewPool()
	oc := oracle.NewFake([]float64{10.0, 0.0}, func(_ float64, x []float64) []float64 {
		return []float64{x[1], -9.81}
	})

	pos := integrator.New(2, "height", 0, 1e-4, 1e-6, 0, integrator.Policy{})
	vel := integrator.New(2, "velocity", 1, 1e-4, 1e-6, 0, integrator.Policy{})
	posID := pool.Add(pos.Base)
	velID := pool.Add(vel.Base)
	pool.Observe(posID, velID)
	pool.InitObservers(posID)
	pool.InitObservers(velID)
	pool.InitObservees(posID)
	pool.InitObservees(velID)

	ground := zerocross.New("ground", 0, 1e-6, nil)
	zcID := pool.Add(ground.Base)
	pool.Observe(zcID, posID)
	pool.InitObservers(zcID)
	pool.InitObservees(zcID)

	cfg := simulation.DefaultConfig()
	cfg.DtMax = 0.1
	sim := simulation.New(pool, oc, 2, 0, cfg, qsslog.New(os.Stderr, "warn"))

	velHandler := handler.New(vel.Base, 1, vel)
	bounces := 0
	ground.Cond = &bounceConditional{
		oc:          oc,
		velHandler:  velHandler,
		velID:       velID,
		velRef:      1,
		coefficient: 0.8,
		ders:        make([]float64, 2),
		cfg:         cfg.Config,
		onBounce:    func(t float64) { bounces++; fmt.Printf("bounce %d at t=%.6f\n", bounces, t) },
	}

	pos.Bind(sim.Queue())
	vel.Bind(sim.Queue())
	ground.Bind(sim.Queue())
	sim.RegisterTrigger(posID, pos)
	sim.RegisterTrigger(velID, vel)
	sim.RegisterObserver(posID, pos, 0, 2)
	sim.RegisterObserver(velID, vel, 1, 2)
	sim.RegisterZC(zcID, ground)

	pos.AddInitial(0, cfg.Config)
	vel.AddInitial(0, cfg.Config)
	if err := ground.AddInitial(0, oc, cfg.Config, make([]float64, 2)); err != nil {
		return err
	}

	if err := sim.Run(10); err != nil {
		return err
	}
	fmt.Printf("total bounces observed: %d\n", bounces)
	return nil
}

// bounceConditional flips velocity by -coefficient on every downward
// crossing of the ground, writing the post-bounce value to the oracle
// before driving the velocity handler, per §4.7's contract.
type bounceConditional struct {
	oc          oracle.Oracle
	velHandler  *handler.Handler
	velID       qssvar.ID
	velRef      int
	coefficient float64
	ders        []float64
	cfg         qssvar.Config
	onBounce    func(t float64)
}

func (c *bounceConditional) OfInterest(cr zerocross.Crossing) bool {
	switch cr {
	case zerocross.DnPN, zerocross.DnPZ, zerocross.Dn, zerocross.DnZN:
		return true
	default:
		return false
	}
}

func (c *bounceConditional) Activate(t float64, _ zerocross.Crossing) ([]qssvar.ID, error) {
	v, err := c.oc.GetReal(c.velRef)
	if err != nil {
		return nil, err
	}
	if err := c.oc.SetReal(c.velRef, -c.coefficient*v); err != nil {
		return nil, err
	}
	if c.onBounce != nil {
		c.onBounce(t)
	}
	if err := c.velHandler.Advance(t, c.oc, c.ders, c.cfg, 0); err != nil {
		return nil, err
	}
	return []qssvar.ID{c.velID}, nil
}

// csvTrace returns an OnAdvance hook that prints "id,t" pairs to w.
func csvTrace(w *os.File) func(id qssvar.ID, t float64) {
	return func(id qssvar.ID, t float64) {
		fmt.Fprintf(w, "%d,%.9f\n", id, t)
	}
}
