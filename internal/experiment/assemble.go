package experiment

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/pairforce/internal/config"
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/neighbor"
	"github.com/san-kum/pairforce/internal/potential"
	"github.com/san-kum/pairforce/internal/shape"
	"github.com/san-kum/pairforce/internal/tabulated"
)

// Source is a neighbor source whose search radius is sized after the
// potential attaches and reports its maximum cutoff.
type Source interface {
	md.NeighborSource
	SetCutoff(rcut float64)
	Builds() int
}

func buildSystem(sc *config.SystemConfig, seed int64) (*md.System, error) {
	if sc.N <= 0 {
		return nil, fmt.Errorf("experiment: n must be positive, got %d", sc.N)
	}
	ts, err := md.NewTypeSet(sc.Types...)
	if err != nil {
		return nil, err
	}
	sys := md.NewSystem(ts)
	for i := 0; i < sc.N; i++ {
		sys.AddParticle(i % ts.Len())
	}
	for name, props := range sc.TypeProps {
		id, ok := ts.Index(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s in type_props", md.ErrUnknownType, name)
		}
		for i := range sys.TypeID {
			if sys.TypeID[i] != id {
				continue
			}
			// Zero-valued props keep the AddParticle defaults.
			if props.Mass > 0 {
				sys.Mass[i] = props.Mass
			}
			if props.Diameter > 0 {
				sys.Diameter[i] = props.Diameter
			}
			if props.Charge != 0 {
				sys.Charge[i] = props.Charge
			}
		}
	}
	sys.Lattice(sc.Spacing, sc.Jitter, rand.New(rand.NewSource(seed)))
	return sys, nil
}

func buildPotential(pc *config.PotentialConfig, sys *md.System) (potential.Force, error) {
	mode, err := shape.Parse(pc.Mode)
	if err != nil {
		return nil, err
	}
	if pc.Name == "table" {
		return buildTable(pc, sys, mode)
	}

	entry, err := potential.Lookup(pc.Name)
	if err != nil {
		return nil, err
	}
	f, err := entry.New(sys, mode)
	if err != nil {
		return nil, err
	}
	cut, ok := f.(potential.CutoffConfigurable)
	if !ok {
		return nil, fmt.Errorf("experiment: potential %s does not accept cutoffs", pc.Name)
	}
	if pc.RCut <= 0 {
		return nil, fmt.Errorf("experiment: potential %s needs a positive r_cut", pc.Name)
	}
	if err := cut.SetRCutDefault(pc.RCut); err != nil {
		return nil, err
	}
	if pc.ROn > 0 {
		if err := cut.SetROnDefault(pc.ROn); err != nil {
			return nil, err
		}
	}
	for _, pair := range pc.Pairs {
		if err := entry.SetCoeffs(f, pair.A, pair.B, pair.Coeffs); err != nil {
			return nil, err
		}
		if pair.RCut > 0 {
			if err := cut.SetRCut(pair.A, pair.B, pair.RCut); err != nil {
				return nil, err
			}
		}
		if pair.ROn > 0 {
			if err := cut.SetROn(pair.A, pair.B, pair.ROn); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// buildTable assembles the tabulated potential, whose cutoffs come from the
// grids themselves rather than the r_cut setting.
func buildTable(pc *config.PotentialConfig, sys *md.System, mode shape.Mode) (potential.Force, error) {
	if len(pc.Table) == 0 {
		return nil, fmt.Errorf("experiment: table potential needs at least one table entry")
	}
	tab, err := tabulated.New(sys, mode)
	if err != nil {
		return nil, err
	}
	specs := make([]tabulated.FileSpec, len(pc.Table))
	for i, tc := range pc.Table {
		specs[i] = tabulated.FileSpec{ListA: tc.A, ListB: tc.B, Path: tc.Path, Width: tc.Width}
	}
	if err := tab.LoadFiles(specs); err != nil {
		return nil, err
	}
	if pc.ROn > 0 {
		if err := tab.SetROnDefault(pc.ROn); err != nil {
			return nil, err
		}
	}
	return tab, nil
}

func buildSource(nc *config.NeighborConfig, sys *md.System) (Source, error) {
	switch nc.Method {
	case "", "cells":
		return neighbor.NewCellList(sys, nc.Skin), nil
	case "brute":
		return neighbor.NewBruteForce(sys, nc.Skin), nil
	default:
		return nil, fmt.Errorf("unknown neighbor method: %s", nc.Method)
	}
}
