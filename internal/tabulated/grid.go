// Package tabulated converts sampled pair interactions into uniformly
// spaced lookup grids, built from a callable or from a data file, and
// exposes them as a catalog potential.
package tabulated

import (
	"fmt"
	"math"
)

// Grid is one immutable sample grid of (V, F) over [RMin, RMax] with
// width = len(V) evenly spaced points. Once built it is never mutated, so
// concurrent lookups need no locking.
type Grid struct {
	RMin float64
	RMax float64
	V    []float64
	F    []float64
	dr   float64
}

// FromFunc samples f at width evenly spaced points r_k = rmin + k*dr,
// dr = (rmax-rmin)/(width-1).
func FromFunc(width int, rmin, rmax float64, f func(r float64) (v, fr float64)) (*Grid, error) {
	if width < 2 {
		return nil, fmt.Errorf("tabulated: width must be at least 2, got %d", width)
	}
	if rmax <= rmin {
		return nil, fmt.Errorf("tabulated: need r_max > r_min, got [%g, %g]", rmin, rmax)
	}
	g := &Grid{
		RMin: rmin,
		RMax: rmax,
		V:    make([]float64, width),
		F:    make([]float64, width),
		dr:   (rmax - rmin) / float64(width-1),
	}
	for k := 0; k < width; k++ {
		g.V[k], g.F[k] = f(rmin + float64(k)*g.dr)
	}
	return g, nil
}

func (g *Grid) Width() int  { return len(g.V) }
func (g *Grid) Dr() float64 { return g.dr }

// Eval looks up (V, F) at the grid point nearest to r. Outside [RMin, RMax)
// the interaction is zero, RMax playing the role of the cutoff. Nearest-point
// lookup keeps results sample-exact for existing table files, at the cost of
// a half-step quantization error between points.
func (g *Grid) Eval(r float64) (float64, float64) {
	if r < g.RMin || r >= g.RMax {
		return 0, 0
	}
	i := int(math.Round((r - g.RMin) / g.dr))
	return g.V[i], g.F[i]
}
