package potential

import (
	"fmt"
	"math"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// MieParams configures the generalized Lennard-Jones (Mie) family with
// repulsive exponent N and attractive exponent M; N=12, M=6 recovers the
// classic form.
type MieParams struct {
	Epsilon float64
	Sigma   float64
	N       float64
	M       float64
}

// Validate rejects exponent combinations that make the prefactor singular.
func (p MieParams) Validate() error {
	if p.N <= p.M || p.M <= 0 {
		return fmt.Errorf("mie exponents need n > m > 0, got n=%g m=%g", p.N, p.M)
	}
	return nil
}

// NewMie builds a Mie potential:
//
//	V(r) = C epsilon [ (sigma/r)^n - (sigma/r)^m ]
//	C    = n/(n-m) (n/m)^(m/(n-m))
func NewMie(sys *md.System, mode shape.Mode) (*Pair[MieParams], error) {
	return NewPair("mie", sys, mode, Caps{Smoothing: true}, mieKernel)
}

func mieKernel(in Input, p MieParams) (float64, float64) {
	c := p.N / (p.N - p.M) * math.Pow(p.N/p.M, p.M/(p.N-p.M))
	sr := p.Sigma / in.R
	srn := math.Pow(sr, p.N)
	srm := math.Pow(sr, p.M)
	v := c * p.Epsilon * (srn - srm)
	f := c * p.Epsilon * (p.N*srn - p.M*srm) / in.R
	return v, f
}

func mieFromCoeffs(m map[string]float64) (MieParams, error) {
	c := newCoeffReader("mie", m)
	p := MieParams{
		Epsilon: c.required("epsilon"),
		Sigma:   c.required("sigma"),
		N:       c.optional("n", 12),
		M:       c.optional("m", 6),
	}
	if err := c.finish(); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func mieEntry() Entry {
	return makeEntry("mie", "generalized n-m Lennard-Jones", Caps{Smoothing: true}, mieKernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "sigma", Required: true},
			{Name: "n", Default: 12},
			{Name: "m", Default: 6},
		}, mieFromCoeffs)
}
