package neighbor

import "github.com/san-kum/pairforce/internal/md"

// BruteForce checks every particle pair on rebuild. Quadratic, dependable,
// and the reference the cell list is validated against.
type BruteForce struct {
	verlet
}

func NewBruteForce(sys *md.System, skin float64) *BruteForce {
	if skin < 0 {
		skin = 0
	}
	return &BruteForce{verlet{sys: sys, skin: skin}}
}

func (b *BruteForce) Pairs() ([]md.NeighborPair, error) {
	if err := b.checkCutoff(); err != nil {
		return nil, err
	}
	if b.stale() {
		b.idx = b.build()
		b.snapshot()
	}
	return b.emit(), nil
}

func (b *BruteForce) build() [][2]int {
	reach2 := b.reach() * b.reach()
	var idx [][2]int
	for i := 0; i < b.sys.N(); i++ {
		for j := i + 1; j < b.sys.N(); j++ {
			if b.sys.Pos[i].Sub(b.sys.Pos[j]).Norm2() < reach2 {
				idx = append(idx, [2]int{i, j})
			}
		}
	}
	return idx
}
