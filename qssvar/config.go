package qssvar

// Config carries every variable-level tunable as an immutable value,
// threaded through construction rather than read from package-level
// globals (see DESIGN NOTES §9: "replace process-wide option flags with an
// immutable Config struct"). simulation.Config embeds this and adds
// driver-level tunables (pass limit, output hook).
type Config struct {
	// DtND is the fixed small step used for numerical differentiation of
	// the first derivative to estimate higher-order coefficients.
	DtND float64

	// DtMin and DtMax clamp every requantization step size derived from
	// the trajectories; a deactivation step (DtInf, doubling up to
	// DtInfMax) is not clamped by DtMax.
	DtMin float64
	DtMax float64

	// DtInf is the relaxation step used the first time a variable is
	// visited after its higher-order coefficients vanish (deactivation).
	DtInf float64

	// DtInfMax caps the doubling of DtInf on successive deactivated visits.
	DtInfMax float64

	// ZMul scales ZTol to compute the tZC_bump offset.
	ZMul float64

	// YoYoMultiplier is the slope-reversal ratio threshold that flags
	// "yo-yoing" in the relaxation integrator variants.
	YoYoMultiplier float64

	// YoYoCount is the number of consecutive yo-yoing requantizations
	// required before a relaxation factor is applied.
	YoYoCount int

	// RelaxFactor2 and RelaxFactor3 scale the top-order coefficient when
	// yo-yoing is detected, for order-2 and order-3 relaxation variants
	// respectively.
	RelaxFactor2 float64
	RelaxFactor3 float64

	// MaxDtGrowth bounds how much dt may grow relative to the previous
	// step once relaxation is active.
	MaxDtGrowth float64

	// ParallelThreshold is the observer-range size above which the
	// observer pipeline dispatches per-observer stage work to a worker
	// pool (see observer.Pipeline and SPEC_FULL.md §4.6).
	ParallelThreshold int
}

// DefaultConfig returns the tunables used by the worked examples in §8 of
// the specification, mirroring the "DefaultOptions" constructor pattern
// used throughout this codebase's functional-options packages.
func DefaultConfig() Config {
	return Config{
		DtND:              1e-6,
		DtMin:             1e-12,
		DtMax:             1.0,
		DtInf:             10.0,
		DtInfMax:          1e6,
		ZMul:              2.0,
		YoYoMultiplier:    100.0,
		YoYoCount:         5,
		RelaxFactor2:      0.5,
		RelaxFactor3:      0.25,
		MaxDtGrowth:       1.5,
		ParallelThreshold: 32,
	}
}
