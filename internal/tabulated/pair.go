package tabulated

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/potential"
	"github.com/san-kum/pairforce/internal/shape"
)

// Pair exposes per-type-pair grids as a catalog potential. Each pair's
// cutoff is its grid's RMax; there is no separate r_cut surface.
type Pair struct {
	*potential.Pair[*Grid]
}

// New builds a detached tabulated potential for the system's type set.
// All shaping modes apply: the grid supplies raw (V, F) like any closed
// form, and the continuity treatment is layered on top.
func New(sys *md.System, mode shape.Mode) (*Pair, error) {
	inner, err := potential.NewPair("table", sys, mode, potential.Caps{Smoothing: true}, gridKernel)
	if err != nil {
		return nil, err
	}
	return &Pair{Pair: inner}, nil
}

func gridKernel(in potential.Input, g *Grid) (float64, float64) {
	return g.Eval(in.R)
}

// SetGrid assigns one grid to every pair in the product of the two
// type-name lists and derives those pairs' cutoff from it.
func (p *Pair) SetGrid(listA, listB []string, g *Grid) error {
	if g == nil {
		return fmt.Errorf("tabulated: nil grid")
	}
	if err := p.Pair.SetParams(listA, listB, g); err != nil {
		return err
	}
	return p.Pair.SetRCut(listA, listB, g.RMax)
}

// SetGridFunc samples a callable onto a fresh grid for the given pairs.
func (p *Pair) SetGridFunc(listA, listB []string, width int, rmin, rmax float64, f func(r float64) (float64, float64)) error {
	g, err := FromFunc(width, rmin, rmax, f)
	if err != nil {
		return err
	}
	return p.SetGrid(listA, listB, g)
}

// SetRCut always fails: a table pair's cutoff is its grid's RMax.
func (p *Pair) SetRCut(listA, listB []string, rcut float64) error {
	return fmt.Errorf("tabulated: r_cut is derived from each pair's grid")
}

// SetRCutDefault always fails for the same reason as SetRCut.
func (p *Pair) SetRCutDefault(rcut float64) error {
	return fmt.Errorf("tabulated: r_cut is derived from each pair's grid")
}

// FileSpec names one table file and the type pairs it covers.
type FileSpec struct {
	ListA []string
	ListB []string
	Path  string
	Width int
}

// LoadFiles parses every referenced file concurrently, then applies the
// grids in order. Any parse failure aborts the whole load.
func (p *Pair) LoadFiles(specs []FileSpec) error {
	grids := make([]*Grid, len(specs))
	var eg errgroup.Group
	for i, s := range specs {
		eg.Go(func() error {
			g, err := FromFile(s.Path, s.Width)
			if err != nil {
				return err
			}
			grids[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for i, s := range specs {
		if err := p.SetGrid(s.ListA, s.ListB, grids[i]); err != nil {
			return err
		}
	}
	return nil
}
