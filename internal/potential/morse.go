package potential

import (
	"math"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// MorseParams configures the Morse bond-like family: well depth D0, well
// width alpha, and equilibrium distance R0.
type MorseParams struct {
	D0    float64
	Alpha float64
	R0    float64
}

// NewMorse builds a Morse potential:
//
//	V(r) = D0 [ exp(-2 alpha (r - r0)) - 2 exp(-alpha (r - r0)) ]
func NewMorse(sys *md.System, mode shape.Mode) (*Pair[MorseParams], error) {
	return NewPair("morse", sys, mode, Caps{Smoothing: true}, morseKernel)
}

func morseKernel(in Input, p MorseParams) (float64, float64) {
	e := math.Exp(-p.Alpha * (in.R - p.R0))
	v := p.D0 * (e*e - 2*e)
	f := 2 * p.Alpha * p.D0 * (e*e - e)
	return v, f
}

func morseFromCoeffs(m map[string]float64) (MorseParams, error) {
	c := newCoeffReader("morse", m)
	p := MorseParams{
		D0:    c.required("d0"),
		Alpha: c.required("alpha"),
		R0:    c.required("r0"),
	}
	return p, c.finish()
}

func morseEntry() Entry {
	return makeEntry("morse", "Morse well", Caps{Smoothing: true}, morseKernel,
		[]FieldSpec{
			{Name: "d0", Required: true},
			{Name: "alpha", Required: true},
			{Name: "r0", Required: true},
		}, morseFromCoeffs)
}
