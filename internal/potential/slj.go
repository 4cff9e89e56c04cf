package potential

import (
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// SLJParams configures shifted Lennard-Jones, the 12-6 form evaluated at
// r - delta with delta = (d_i + d_j)/2 - 1, so unit-diameter particles
// recover plain LJ and larger particles interact at their surfaces.
type SLJParams struct {
	Epsilon float64
	Sigma   float64
}

var sljCaps = Caps{
	Diameter: true,
	CutoffShift: func(di, dj float64) float64 {
		return (di+dj)/2 - 1
	},
}

// NewSLJ builds a diameter-shifted 12-6 Lennard-Jones potential. The XPLOR
// taper is rejected: the effective cutoff moves with each pair's diameters,
// so no fixed taper window exists.
func NewSLJ(sys *md.System, mode shape.Mode) (*Pair[SLJParams], error) {
	return NewPair("slj", sys, mode, sljCaps, sljKernel)
}

func sljKernel(in Input, p SLJParams) (float64, float64) {
	rs := in.R - ((in.DiamI+in.DiamJ)/2 - 1)
	sr := p.Sigma / rs
	sr2 := sr * sr
	sr6 := sr2 * sr2 * sr2
	sr12 := sr6 * sr6
	v := 4 * p.Epsilon * (sr12 - sr6)
	f := 4 * p.Epsilon * (12*sr12 - 6*sr6) / rs
	return v, f
}

func sljFromCoeffs(m map[string]float64) (SLJParams, error) {
	c := newCoeffReader("slj", m)
	p := SLJParams{
		Epsilon: c.required("epsilon"),
		Sigma:   c.required("sigma"),
	}
	return p, c.finish()
}

func sljEntry() Entry {
	return makeEntry("slj", "diameter-shifted 12-6 Lennard-Jones", sljCaps, sljKernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "sigma", Required: true},
		}, sljFromCoeffs)
}
