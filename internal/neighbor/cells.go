package neighbor

import (
	"math"

	"github.com/san-kum/pairforce/internal/md"
)

// CellList bins particles into cubic cells one reach wide and scans only
// the 3x3x3 block around each particle. Linear-time rebuilds once the
// system outgrows the brute-force scan.
type CellList struct {
	verlet
}

func NewCellList(sys *md.System, skin float64) *CellList {
	if skin < 0 {
		skin = 0
	}
	return &CellList{verlet{sys: sys, skin: skin}}
}

func (c *CellList) Pairs() ([]md.NeighborPair, error) {
	if err := c.checkCutoff(); err != nil {
		return nil, err
	}
	if c.stale() {
		c.idx = c.build()
		c.snapshot()
	}
	return c.emit(), nil
}

func cellOf(p md.Vec3, size float64) [3]int {
	return [3]int{
		int(math.Floor(p.X / size)),
		int(math.Floor(p.Y / size)),
		int(math.Floor(p.Z / size)),
	}
}

func (c *CellList) build() [][2]int {
	reach := c.reach()
	reach2 := reach * reach

	cells := make(map[[3]int][]int, c.sys.N())
	for i, p := range c.sys.Pos {
		key := cellOf(p, reach)
		cells[key] = append(cells[key], i)
	}

	// Every unordered pair shows up in both particles' blocks; keeping
	// j > i records it once.
	var idx [][2]int
	for i, p := range c.sys.Pos {
		base := cellOf(p, reach)
		for xx := base[0] - 1; xx <= base[0]+1; xx++ {
			for yy := base[1] - 1; yy <= base[1]+1; yy++ {
				for zz := base[2] - 1; zz <= base[2]+1; zz++ {
					for _, j := range cells[[3]int{xx, yy, zz}] {
						if j <= i {
							continue
						}
						if p.Sub(c.sys.Pos[j]).Norm2() < reach2 {
							idx = append(idx, [2]int{i, j})
						}
					}
				}
			}
		}
	}
	return idx
}
