package liqss

import (
	"fmt"

	"github.com/katalvlaran/qss/oracle"
	"github.com/katalvlaran/qss/qssvar"
)

// ResolveBatch runs the fixed-point iteration §4.4 requires when several
// self-observing variables trigger simultaneously: their implicit
// selections depend on each other's committed values, so a single pass of
// Advance per variable need not be self-consistent. Each pass re-probes
// every variable in the batch; the batch is considered stable once no
// variable's committed q changes by more than qTol since the previous
// pass, or passCap is reached (the pass-cap/deactivation fallback §4.9
// names).
func ResolveBatch(vars []*Variable, t float64, oc oracle.Oracle, ders []float64, cfg qssvar.Config, t0 float64, passCap int) error {
	prev := make([]float64, len(vars))
	for pass := 0; pass < passCap; pass++ {
		changed := false
		for i, v := range vars {
			if err := v.Advance(t, oc, ders, cfg, t0); err != nil {
				return fmt.Errorf("liqss: batch pass %d: %w", pass, err)
			}
			q := v.QCoef[0]
			if pass == 0 || absDiff(q, prev[i]) > v.QTol {
				changed = true
			}
			prev[i] = q
		}
		if !changed {
			return nil
		}
	}
	return nil
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
