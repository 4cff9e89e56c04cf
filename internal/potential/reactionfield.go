package potential

import (
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// RFParams configures the Onsager reaction-field electrostatic family.
// EpsRF is the dielectric constant outside the cutoff sphere; zero means
// infinity. With UseCharge set, the interaction is scaled by the product of
// the two particle charges instead of treating epsilon alone as the
// coupling.
type RFParams struct {
	Epsilon   float64
	EpsRF     float64
	UseCharge bool
}

// NewReactionField builds a reaction-field potential:
//
//	V(r) = epsilon [ 1/r + (eps_rf - 1)/(2 eps_rf + 1) r^2 / r_cut^3 ]
func NewReactionField(sys *md.System, mode shape.Mode) (*Pair[RFParams], error) {
	return NewPair("reaction-field", sys, mode, Caps{Smoothing: true, Charge: true}, rfKernel)
}

func rfKernel(in Input, p RFParams) (float64, float64) {
	fac := 0.5
	if p.EpsRF != 0 {
		fac = (p.EpsRF - 1) / (2*p.EpsRF + 1)
	}
	rc3 := in.RCut * in.RCut * in.RCut
	scale := p.Epsilon
	if p.UseCharge {
		scale *= in.ChargeI * in.ChargeJ
	}
	v := scale * (1/in.R + fac*in.R*in.R/rc3)
	f := scale * (1/(in.R*in.R) - 2*fac*in.R/rc3)
	return v, f
}

func rfFromCoeffs(m map[string]float64) (RFParams, error) {
	c := newCoeffReader("reaction-field", m)
	p := RFParams{
		Epsilon:   c.required("epsilon"),
		EpsRF:     c.required("eps_rf"),
		UseCharge: c.optional("use_charge", 0) != 0,
	}
	return p, c.finish()
}

func reactionFieldEntry() Entry {
	return makeEntry("reaction-field", "Onsager reaction-field electrostatics",
		Caps{Smoothing: true, Charge: true}, rfKernel,
		[]FieldSpec{
			{Name: "epsilon", Required: true},
			{Name: "eps_rf", Required: true},
			{Name: "use_charge", Default: 0},
		}, rfFromCoeffs)
}
