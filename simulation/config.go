package simulation

import "github.com/katalvlaran/qss/qssvar"

// Config configures a Simulation's outer driver, following the functional-
// options pattern of dijkstra.Option/dijkstra.Options: an immutable value
// built by DefaultConfig() and a chain of With* options, never a global.
//
// Values dtND, dtMin, dtMax, dtInf, dtInfMax, zMul, the relaxation factors,
// and ParallelThreshold come from the embedded qssvar.Config and are
// threaded into every variable's Advance/Pipeline.Advance call; PassLimit
// and OnAdvance are driver-level additions.
type Config struct {
	qssvar.Config

	// PassLimit bounds how many superdense-time passes may occur at a
	// single real time before dtMin relaxation kicks in (§4.9).
	PassLimit int

	// OnAdvance, if set, is called after every committed advance with the
	// variable's ID and the time it advanced to — a generic output-
	// streaming hook supplementing §10's original_source finding, since
	// spec.md puts file-format output out of scope but leaves a streaming
	// touchpoint unaddressed.
	OnAdvance func(id qssvar.ID, t float64)
}

// Option is a functional option over Config, mirroring
// dijkstra.Option/bfs.Option.
type Option func(*Config)

// WithPassLimit overrides the default pass limit. Panics if limit <= 0,
// matching WithMaxDistance's "panic on malformed constant" convention.
func WithPassLimit(limit int) Option {
	if limit <= 0 {
		panic("simulation: PassLimit must be positive")
	}
	return func(c *Config) { c.PassLimit = limit }
}

// WithOnAdvance installs an output-streaming callback.
func WithOnAdvance(fn func(id qssvar.ID, t float64)) Option {
	return func(c *Config) { c.OnAdvance = fn }
}

// WithVarConfig overrides the embedded qssvar.Config wholesale — useful
// when the caller has already built one via qssvar option helpers.
func WithVarConfig(vc qssvar.Config) Option {
	return func(c *Config) { c.Config = vc }
}

// DefaultConfig returns a Config with the scenario-matching defaults named
// in SPEC_FULL.md §3/§4.9, plus a pass limit of 100 (the solver backs off
// to dtMin relaxation well before any realistic model would need more
// superdense passes at a single instant).
func DefaultConfig(opts ...Option) Config {
	c := Config{
		Config:    qssvar.DefaultConfig(),
		PassLimit: 100,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
