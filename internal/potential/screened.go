package potential

import (
	"math"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// YukawaParams configures the screened-Coulomb (Yukawa) family: amplitude
// epsilon and inverse screening length kappa.
type YukawaParams struct {
	Epsilon float64
	Kappa   float64
}

// NewYukawa builds a Yukawa potential:
//
//	V(r) = epsilon exp(-kappa r) / r
func NewYukawa(sys *md.System, mode shape.Mode) (*Pair[YukawaParams], error) {
	return NewPair("yukawa", sys, mode, Caps{Smoothing: true}, yukawaKernel)
}

func yukawaKernel(in Input, p YukawaParams) (float64, float64) {
	v := p.Epsilon * math.Exp(-p.Kappa*in.R) / in.R
	f := v * (p.Kappa + 1/in.R)
	return v, f
}

func yukawaFromCoeffs(m map[string]float64) (YukawaParams, error) {
	c := newCoeffReader("yukawa", m)
	p := YukawaParams{
		Epsilon: c.required("epsilon"),
		Kappa:   c.required("kappa"),
	}
	return p, c.finish()
}

func yukawaEntry() Entry {
	return makeEntry("yukawa", "screened Coulomb", Caps{Smoothing: true}, yukawaKernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "kappa", Required: true},
		}, yukawaFromCoeffs)
}

// screenedNuclear evaluates V(r) = (qi qj / r) phi(r/aF) for a screening
// function phi given as a sum of decaying exponentials, returning V and
// F = -dV/dr.
func screenedNuclear(r, zz, aF float64, coef, decay []float64) (float64, float64) {
	var phi, dphi float64
	for i := range coef {
		e := coef[i] * math.Exp(-decay[i]*r/aF)
		phi += e
		dphi -= decay[i] / aF * e
	}
	v := zz * phi / r
	f := zz*phi/(r*r) - zz*dphi/r
	return v, f
}

// MoliereParams configures the Moliere screened nuclear repulsion: the two
// effective charges and the Firsov screening length aF.
type MoliereParams struct {
	Qi float64
	Qj float64
	AF float64
}

var (
	moliereCoef  = []float64{0.35, 0.55, 0.10}
	moliereDecay = []float64{0.30, 1.20, 6.00}
)

// NewMoliere builds a Moliere potential.
func NewMoliere(sys *md.System, mode shape.Mode) (*Pair[MoliereParams], error) {
	return NewPair("moliere", sys, mode, Caps{Smoothing: true}, moliereKernel)
}

func moliereKernel(in Input, p MoliereParams) (float64, float64) {
	return screenedNuclear(in.R, p.Qi*p.Qj, p.AF, moliereCoef, moliereDecay)
}

func moliereFromCoeffs(m map[string]float64) (MoliereParams, error) {
	c := newCoeffReader("moliere", m)
	p := MoliereParams{
		Qi: c.required("qi"),
		Qj: c.required("qj"),
		AF: c.required("a_f"),
	}
	return p, c.finish()
}

func moliereEntry() Entry {
	return makeEntry("moliere", "Moliere screened nuclear repulsion",
		Caps{Smoothing: true}, moliereKernel,
		[]FieldSpec{
			{Name: "qi", Required: true},
			{Name: "qj", Required: true},
			{Name: "a_f", Required: true},
		}, moliereFromCoeffs)
}

// ZBLParams configures the Ziegler-Biersack-Littmark universal screening
// potential.
type ZBLParams struct {
	Qi float64
	Qj float64
	AF float64
}

var (
	zblCoef  = []float64{0.18175, 0.50986, 0.28022, 0.02817}
	zblDecay = []float64{3.19980, 0.94229, 0.40290, 0.20162}
)

// NewZBL builds a ZBL potential.
func NewZBL(sys *md.System, mode shape.Mode) (*Pair[ZBLParams], error) {
	return NewPair("zbl", sys, mode, Caps{Smoothing: true}, zblKernel)
}

func zblKernel(in Input, p ZBLParams) (float64, float64) {
	return screenedNuclear(in.R, p.Qi*p.Qj, p.AF, zblCoef, zblDecay)
}

func zblFromCoeffs(m map[string]float64) (ZBLParams, error) {
	c := newCoeffReader("zbl", m)
	p := ZBLParams{
		Qi: c.required("qi"),
		Qj: c.required("qj"),
		AF: c.required("a_f"),
	}
	return p, c.finish()
}

func zblEntry() Entry {
	return makeEntry("zbl", "Ziegler-Biersack-Littmark universal screening",
		Caps{Smoothing: true}, zblKernel,
		[]FieldSpec{
			{Name: "qi", Required: true},
			{Name: "qj", Required: true},
			{Name: "a_f", Required: true},
		}, zblFromCoeffs)
}
