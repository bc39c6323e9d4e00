// Package liqss implements the LIQSS1/2/3 (linearly-implicit QSS)
// variants of SPEC_FULL.md §4.4: integrators for self-observing variables,
// which choose their quantized value implicitly — by probing the oracle on
// either side of the quantum and inspecting the resulting derivative
// signs — instead of the explicit top-order extrapolation package
// integrator uses. This avoids the limit-cycle explicit QSS suffers on
// stiff self-coupled equations (Scenario D).
package liqss
