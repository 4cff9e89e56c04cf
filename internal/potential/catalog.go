package potential

import (
	"fmt"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/shape"
)

// Entry describes one catalog family: its coefficient schema, how to build
// an instance, and how to apply one batch coefficient assignment from
// configuration.
type Entry struct {
	Name      string
	About     string
	Fields    []FieldSpec
	Caps      Caps
	New       func(sys *md.System, mode shape.Mode) (Force, error)
	SetCoeffs func(f Force, listA, listB []string, coeffs map[string]float64) error
}

// Catalog lists every closed-form family, in display order. The tabulated
// potential is configured through its own file/grid surface and is not part
// of this list.
func Catalog() []Entry {
	return []Entry{
		ljEntry(),
		lj1208Entry(),
		forceShiftedLJEntry(),
		sljEntry(),
		gaussEntry(),
		morseEntry(),
		mieEntry(),
		yukawaEntry(),
		buckinghamEntry(),
		dpdConservativeEntry(),
		reactionFieldEntry(),
		dlvoEntry(),
		moliereEntry(),
		zblEntry(),
	}
}

// Lookup finds a catalog entry by name.
func Lookup(name string) (Entry, error) {
	for _, e := range Catalog() {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("unknown potential: %s", name)
}

// makeEntry wires a family's pieces into an Entry, erasing the parameter
// type behind the Force interface.
func makeEntry[P any](name, about string, caps Caps, kernel Kernel[P],
	fields []FieldSpec, from func(map[string]float64) (P, error)) Entry {
	return Entry{
		Name:   name,
		About:  about,
		Fields: fields,
		Caps:   caps,
		New: func(sys *md.System, mode shape.Mode) (Force, error) {
			return NewPair(name, sys, mode, caps, kernel)
		},
		SetCoeffs: func(f Force, listA, listB []string, coeffs map[string]float64) error {
			p, ok := f.(*Pair[P])
			if !ok {
				return fmt.Errorf("potential %s: coefficient record mismatch", f.Name())
			}
			params, err := from(coeffs)
			if err != nil {
				return err
			}
			return p.SetParams(listA, listB, params)
		},
	}
}
