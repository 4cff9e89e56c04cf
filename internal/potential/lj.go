package potential

import (
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// LJParams configures the 12-6 Lennard-Jones family: well depth epsilon and
// zero-crossing distance sigma.
type LJParams struct {
	Epsilon float64
	Sigma   float64
}

var ljCaps = Caps{Smoothing: true}

// NewLJ builds a 12-6 Lennard-Jones potential:
//
//	V(r) = 4 epsilon [ (sigma/r)^12 - (sigma/r)^6 ]
func NewLJ(sys *md.System, mode shape.Mode) (*Pair[LJParams], error) {
	return NewPair("lj", sys, mode, ljCaps, ljKernel)
}

func ljKernel(in Input, p LJParams) (float64, float64) {
	sr := p.Sigma / in.R
	sr2 := sr * sr
	sr6 := sr2 * sr2 * sr2
	sr12 := sr6 * sr6
	v := 4 * p.Epsilon * (sr12 - sr6)
	f := 4 * p.Epsilon * (12*sr12 - 6*sr6) / in.R
	return v, f
}

func ljFromCoeffs(m map[string]float64) (LJParams, error) {
	c := newCoeffReader("lj", m)
	p := LJParams{
		Epsilon: c.required("epsilon"),
		Sigma:   c.required("sigma"),
	}
	return p, c.finish()
}

func ljEntry() Entry {
	return makeEntry("lj", "12-6 Lennard-Jones", ljCaps, ljKernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "sigma", Required: true},
		}, ljFromCoeffs)
}

// LJ1208Params configures the 12-8 Lennard-Jones variant, with a softer
// attractive tail than the classic 12-6 form.
type LJ1208Params struct {
	Epsilon float64
	Sigma   float64
}

// NewLJ1208 builds a 12-8 Lennard-Jones potential.
func NewLJ1208(sys *md.System, mode shape.Mode) (*Pair[LJ1208Params], error) {
	return NewPair("lj1208", sys, mode, ljCaps, lj1208Kernel)
}

func lj1208Kernel(in Input, p LJ1208Params) (float64, float64) {
	sr := p.Sigma / in.R
	sr2 := sr * sr
	sr4 := sr2 * sr2
	sr8 := sr4 * sr4
	sr12 := sr8 * sr4
	v := 4 * p.Epsilon * (sr12 - sr8)
	f := 4 * p.Epsilon * (12*sr12 - 8*sr8) / in.R
	return v, f
}

func lj1208FromCoeffs(m map[string]float64) (LJ1208Params, error) {
	c := newCoeffReader("lj1208", m)
	p := LJ1208Params{
		Epsilon: c.required("epsilon"),
		Sigma:   c.required("sigma"),
	}
	return p, c.finish()
}

func lj1208Entry() Entry {
	return makeEntry("lj1208", "12-8 Lennard-Jones", ljCaps, lj1208Kernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "sigma", Required: true},
		}, lj1208FromCoeffs)
}

// FSLJParams configures force-shifted Lennard-Jones: the 12-6 form plus a
// linear term that brings the force to zero exactly at the cutoff.
type FSLJParams struct {
	Epsilon float64
	Sigma   float64
}

// NewForceShiftedLJ builds a force-shifted 12-6 Lennard-Jones potential:
//
//	V(r) = V_lj(r) + (r - r_cut) F_lj(r_cut)
//	F(r) = F_lj(r) - F_lj(r_cut)
func NewForceShiftedLJ(sys *md.System, mode shape.Mode) (*Pair[FSLJParams], error) {
	return NewPair("force-shifted-lj", sys, mode, ljCaps, fsljKernel)
}

func fsljKernel(in Input, p FSLJParams) (float64, float64) {
	lj := LJParams{Epsilon: p.Epsilon, Sigma: p.Sigma}
	v, f := ljKernel(in, lj)
	cin := in
	cin.R = in.RCut
	_, fcut := ljKernel(cin, lj)
	return v + (in.R-in.RCut)*fcut, f - fcut
}

func fsljFromCoeffs(m map[string]float64) (FSLJParams, error) {
	c := newCoeffReader("force-shifted-lj", m)
	p := FSLJParams{
		Epsilon: c.required("epsilon"),
		Sigma:   c.required("sigma"),
	}
	return p, c.finish()
}

func forceShiftedLJEntry() Entry {
	return makeEntry("force-shifted-lj", "12-6 Lennard-Jones with the force zeroed at the cutoff",
		ljCaps, fsljKernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "sigma", Required: true},
		}, fsljFromCoeffs)
}
