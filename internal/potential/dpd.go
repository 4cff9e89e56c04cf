package potential

import (
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// DPDParams configures the conservative dissipative-particle-dynamics term:
// the soft repulsion amplitude A.
type DPDParams struct {
	A float64
}

// NewDPDConservative builds the conservative DPD force without the
// dissipative and random terms:
//
//	V(r) = A (r_cut - r) - A/(2 r_cut) (r_cut^2 - r^2)
//	F(r) = A (1 - r/r_cut)
//
// The potential already reaches zero at the cutoff, so shaping modes beyond
// none add nothing; the XPLOR taper is rejected.
func NewDPDConservative(sys *md.System, mode shape.Mode) (*Pair[DPDParams], error) {
	return NewPair("dpd-conservative", sys, mode, Caps{}, dpdKernel)
}

func dpdKernel(in Input, p DPDParams) (float64, float64) {
	rc := in.RCut
	v := p.A*(rc-in.R) - p.A/(2*rc)*(rc*rc-in.R*in.R)
	f := p.A * (1 - in.R/rc)
	return v, f
}

func dpdFromCoeffs(m map[string]float64) (DPDParams, error) {
	c := newCoeffReader("dpd-conservative", m)
	p := DPDParams{A: c.required("a")}
	return p, c.finish()
}

func dpdConservativeEntry() Entry {
	return makeEntry("dpd-conservative", "conservative DPD soft repulsion", Caps{}, dpdKernel,
		[]FieldSpec{
			{Name: "a", Required: true},
		}, dpdFromCoeffs)
}
