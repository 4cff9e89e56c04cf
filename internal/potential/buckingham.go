package potential

import (
	"math"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// BuckinghamParams configures the exp-6 Buckingham family.
type BuckinghamParams struct {
	A   float64
	Rho float64
	C   float64
}

// NewBuckingham builds a Buckingham potential:
//
//	V(r) = A exp(-r/rho) - C / r^6
func NewBuckingham(sys *md.System, mode shape.Mode) (*Pair[BuckinghamParams], error) {
	return NewPair("buckingham", sys, mode, Caps{Smoothing: true}, buckinghamKernel)
}

func buckinghamKernel(in Input, p BuckinghamParams) (float64, float64) {
	e := p.A * math.Exp(-in.R/p.Rho)
	r2 := in.R * in.R
	r6 := r2 * r2 * r2
	v := e - p.C/r6
	f := e/p.Rho - 6*p.C/(r6*in.R)
	return v, f
}

func buckinghamFromCoeffs(m map[string]float64) (BuckinghamParams, error) {
	c := newCoeffReader("buckingham", m)
	p := BuckinghamParams{
		A:   c.required("a"),
		Rho: c.required("rho"),
		C:   c.required("c"),
	}
	return p, c.finish()
}

func buckinghamEntry() Entry {
	return makeEntry("buckingham", "exp-6 Buckingham", Caps{Smoothing: true}, buckinghamKernel,
		[]FieldSpec{
			{Name: "a", Required: true},
			{Name: "rho", Required: true},
			{Name: "c", Required: true},
		}, buckinghamFromCoeffs)
}
