package potential

import (
	"math"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// DLVOParams configures colloid-colloid DLVO theory: inverse screening
// length kappa, surface electrostatic amplitude Z, and Hamaker constant A.
type DLVOParams struct {
	Kappa float64
	Z     float64
	A     float64
}

var dlvoCaps = Caps{
	Diameter: true,
	CutoffShift: func(di, dj float64) float64 {
		return (di + dj) / 2
	},
}

// NewDLVO builds a DLVO potential: screened electrostatic repulsion between
// sphere surfaces plus the Hamaker sphere-sphere van der Waals attraction.
// Radii come from the particle diameters; the pair cutoff is extended by
// the sum of the radii. Callers must keep r above contact, r > a1 + a2,
// where the attraction diverges. The XPLOR taper is rejected.
func NewDLVO(sys *md.System, mode shape.Mode) (*Pair[DLVOParams], error) {
	return NewPair("dlvo", sys, mode, dlvoCaps, dlvoKernel)
}

func dlvoKernel(in Input, p DLVOParams) (float64, float64) {
	a1 := in.DiamI / 2
	a2 := in.DiamJ / 2
	sum := a1 + a2
	diff := a1 - a2
	u := in.R*in.R - sum*sum
	w := in.R*in.R - diff*diff

	rep := p.Z * (a1 * a2 / sum) * math.Exp(-p.Kappa*(in.R-sum))
	att := -p.A / 6 * (2*a1*a2/u + 2*a1*a2/w + math.Log(u/w))

	fRep := p.Kappa * rep
	fAtt := p.A * in.R / 3 * (-2*a1*a2/(u*u) - 2*a1*a2/(w*w) + 1/u - 1/w)

	return rep + att, fRep + fAtt
}

func dlvoFromCoeffs(m map[string]float64) (DLVOParams, error) {
	c := newCoeffReader("dlvo", m)
	p := DLVOParams{
		Kappa: c.required("kappa"),
		Z:     c.required("z"),
		A:     c.required("a"),
	}
	return p, c.finish()
}

func dlvoEntry() Entry {
	return makeEntry("dlvo", "colloidal electrostatics plus van der Waals", dlvoCaps, dlvoKernel,
		[]FieldSpec{
			{Name: "kappa", Required: true},
			{Name: "z", Required: true},
			{Name: "a", Required: true},
		}, dlvoFromCoeffs)
}
