// Package neighbor provides the candidate-pair sources the evaluation
// loop consumes: a quadratic brute-force scan and a spatial cell list,
// both behind [md.NeighborSource].
//
// Both keep a verlet list: candidate pairs within r_cut + skin are cached
// and reused until any particle has moved more than half the skin since
// the last rebuild. Separations are always taken from current positions,
// only the pair membership is cached.
package neighbor

import (
	"fmt"

	"github.com/san-kum/pairforce/internal/md"
)

// verlet is the shared cache: candidate index pairs plus the position
// snapshot they were built from.
type verlet struct {
	sys    *md.System
	rcut   float64
	skin   float64
	idx    [][2]int
	last   []md.Vec3
	builds int
}

func (l *verlet) System() *md.System { return l.sys }

// SetCutoff sets the search radius to rcut plus the skin. Attach order
// makes this a second step: the potential learns its largest cutoff only
// once attached, so callers attach first and then size the source.
func (l *verlet) SetCutoff(rcut float64) { l.rcut = rcut }

// Builds reports how many times the pair list has been rebuilt.
func (l *verlet) Builds() int { return l.builds }

func (l *verlet) reach() float64 { return l.rcut + l.skin }

func (l *verlet) checkCutoff() error {
	if l.rcut <= 0 {
		return fmt.Errorf("neighbor: cutoff not set (attach the potential, then SetCutoff)")
	}
	return nil
}

// stale reports whether the cached list may miss a pair: no snapshot yet,
// a particle-count change, or any displacement beyond half the skin.
func (l *verlet) stale() bool {
	if l.last == nil || len(l.last) != l.sys.N() {
		return true
	}
	limit := (l.skin / 2) * (l.skin / 2)
	for i, p := range l.sys.Pos {
		if p.Sub(l.last[i]).Norm2() > limit {
			return true
		}
	}
	return false
}

func (l *verlet) snapshot() {
	l.last = make([]md.Vec3, l.sys.N())
	copy(l.last, l.sys.Pos)
	l.builds++
}

// emit materializes the cached pairs with separations from the current
// positions.
func (l *verlet) emit() []md.NeighborPair {
	out := make([]md.NeighborPair, len(l.idx))
	for k, ij := range l.idx {
		out[k] = md.NeighborPair{
			I:     ij[0],
			J:     ij[1],
			Delta: l.sys.Pos[ij[0]].Sub(l.sys.Pos[ij[1]]),
		}
	}
	return out
}
