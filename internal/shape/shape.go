// Package shape applies the energy-continuity treatment at the cutoff:
// nothing, a constant shift that zeroes the energy at r_cut, or the XPLOR
// taper that zeroes both the energy and the force there smoothly.
package shape

import "fmt"

// Mode selects the continuity treatment. It is fixed per potential
// instance; all type pairs of one instance share it.
type Mode int

const (
	// None applies the raw potential unmodified inside the cutoff.
	None Mode = iota
	// Shift subtracts V(r_cut) so the energy is continuous at the cutoff.
	// The force keeps its discontinuity there.
	Shift
	// XPLOR multiplies by a smooth taper on [r_on, r_cut] so both the
	// energy and the force vanish continuously at the cutoff. Wherever
	// r_on >= r_cut the taper window is empty and the pair falls back to
	// Shift semantics.
	XPLOR
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Shift:
		return "shift"
	case XPLOR:
		return "xplor"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Parse maps a config string onto a Mode.
func Parse(s string) (Mode, error) {
	switch s {
	case "none", "":
		return None, nil
	case "shift":
		return Shift, nil
	case "xplor":
		return XPLOR, nil
	}
	return None, fmt.Errorf("shape: unknown mode %q", s)
}

// NeedsCutoffEnergy reports whether Apply will consume V_raw(r_cut) for a
// pair with the given cutoff geometry. The evaluation loop uses this to
// decide whether the kernel must be evaluated a second time at r_cut.
func (m Mode) NeedsCutoffEnergy(rcut, ron float64) bool {
	switch m {
	case Shift:
		return true
	case XPLOR:
		return ron >= rcut
	}
	return false
}

// Apply maps the raw (v, f) at distance r onto the applied pair energy and
// radial force. vcut is V_raw(r_cut); it is read only when
// [Mode.NeedsCutoffEnergy] is true for this geometry. At and beyond the
// cutoff both outputs are exactly zero in every mode.
func Apply(m Mode, r, rcut, ron, v, f, vcut float64) (float64, float64) {
	if r >= rcut {
		return 0, 0
	}
	switch m {
	case Shift:
		return v - vcut, f
	case XPLOR:
		if ron >= rcut {
			return v - vcut, f
		}
		if r < ron {
			return v, f
		}
		s, ds := taper(r, rcut, ron)
		// F' = -dV'/dr with V' = S*V.
		return s * v, s*f - v*ds
	}
	return v, f
}

// taper returns S(r) and dS/dr on the window r_on <= r < r_cut. S runs
// smoothly from 1 at r_on to 0 at r_cut with zero slope at both ends.
func taper(r, rcut, ron float64) (float64, float64) {
	rc2 := rcut * rcut
	ron2 := ron * ron
	r2 := r * r
	denom := rc2 - ron2
	denom = denom * denom * denom
	s := (rc2 - r2) * (rc2 - r2) * (rc2 + 2*r2 - 3*ron2) / denom
	ds := 12 * r * (rc2 - r2) * (ron2 - r2) / denom
	return s, ds
}
