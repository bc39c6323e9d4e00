package qssvar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/qss/qssvar"
)

// TestPoly_RoundTrip verifies property 5 from the spec's testable
// properties: Horner evaluation matches the direct Taylor-sum form.
func TestPoly_RoundTrip(t *testing.T) {
	p := qssvar.Poly{1, 2, 3, 4}
	for _, h := range []float64{0, 0.5, -0.25, 2.0} {
		want := p[0] + p[1]*h + p[2]*h*h + p[3]*h*h*h
		assert.InDelta(t, want, p.Eval(h), 1e-12)
	}
}

func TestPoly_Derivatives(t *testing.T) {
	p := qssvar.Poly{1, 2, 3, 4}
	h := 0.5
	want1 := p[1] + 2*p[2]*h + 3*p[3]*h*h
	want2 := 2*p[2] + 6*p[3]*h
	want3 := 6 * p[3]

	assert.InDelta(t, want1, p.Eval1(h), 1e-12)
	assert.InDelta(t, want2, p.Eval2(h), 1e-12)
	assert.InDelta(t, want3, p.Eval3(), 1e-12)
}
