package potential

import (
	"math"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// GaussParams configures the Gaussian soft-repulsion family.
type GaussParams struct {
	Epsilon float64
	Sigma   float64
}

// NewGauss builds a Gaussian potential:
//
//	V(r) = epsilon exp(-r^2 / (2 sigma^2))
func NewGauss(sys *md.System, mode shape.Mode) (*Pair[GaussParams], error) {
	return NewPair("gauss", sys, mode, Caps{Smoothing: true}, gaussKernel)
}

func gaussKernel(in Input, p GaussParams) (float64, float64) {
	s2 := p.Sigma * p.Sigma
	v := p.Epsilon * math.Exp(-in.R*in.R/(2*s2))
	f := v * in.R / s2
	return v, f
}

func gaussFromCoeffs(m map[string]float64) (GaussParams, error) {
	c := newCoeffReader("gauss", m)
	p := GaussParams{
		Epsilon: c.required("epsilon"),
		Sigma:   c.required("sigma"),
	}
	return p, c.finish()
}

func gaussEntry() Entry {
	return makeEntry("gauss", "Gaussian soft repulsion", Caps{Smoothing: true}, gaussKernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "sigma", Required: true},
		}, gaussFromCoeffs)
}
