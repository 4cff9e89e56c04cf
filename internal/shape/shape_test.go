package shape

import (
	"math"
	"testing"
)

// rawV and rawF give an analytic test potential V = 1/r^2, F = -dV/dr = 2/r^3.
func rawV(r float64) float64 { return 1 / (r * r) }
func rawF(r float64) float64 { return 2 / (r * r * r) }

func applyAt(m Mode, r, rcut, ron float64) (float64, float64) {
	return Apply(m, r, rcut, ron, rawV(r), rawF(r), rawV(rcut))
}

func TestZeroAtAndBeyondCutoff(t *testing.T) {
	for _, m := range []Mode{None, Shift, XPLOR} {
		for _, r := range []float64{2.5, 2.6, 10.0} {
			v, f := applyAt(m, r, 2.5, 2.0)
			if v != 0 || f != 0 {
				t.Errorf("mode %v r=%v: expected exact zeros, got V=%v F=%v", m, r, v, f)
			}
		}
	}
}

func TestNonePassthrough(t *testing.T) {
	r := 1.3
	v, f := applyAt(None, r, 2.5, 2.0)
	if v != rawV(r) || f != rawF(r) {
		t.Errorf("none mode modified values: V=%v F=%v", v, f)
	}
}

func TestShiftEnergyContinuityAtCutoff(t *testing.T) {
	rcut := 2.5
	r := rcut - 1e-9
	v, f := applyAt(Shift, r, rcut, 0)
	if math.Abs(v) > 1e-8 {
		t.Errorf("shifted energy at cutoff edge: %v", v)
	}
	// Shift leaves the force untouched, so the discontinuity remains.
	if math.Abs(f-rawF(r)) > 1e-12 {
		t.Errorf("shift changed the force: got %v want %v", f, rawF(r))
	}
}

func TestXPLORUntouchedBelowOnset(t *testing.T) {
	rcut, ron := 2.5, 2.0
	for _, r := range []float64{0.9, 1.5, ron - 1e-9} {
		v, f := applyAt(XPLOR, r, rcut, ron)
		if v != rawV(r) || f != rawF(r) {
			t.Errorf("r=%v below onset modified: V=%v F=%v", r, v, f)
		}
	}
}

func TestXPLORVanishesAtCutoff(t *testing.T) {
	rcut, ron := 2.5, 2.0
	for _, eps := range []float64{1e-3, 1e-5, 1e-7} {
		v, f := applyAt(XPLOR, rcut-eps, rcut, ron)
		if math.Abs(v) > eps {
			t.Errorf("eps=%v: tapered energy %v did not vanish", eps, v)
		}
		if math.Abs(f) > 10*eps {
			t.Errorf("eps=%v: tapered force %v did not vanish", eps, f)
		}
	}
}

func TestXPLORContinuousAtOnset(t *testing.T) {
	rcut, ron := 2.5, 2.0
	below, fBelow := applyAt(XPLOR, ron-1e-9, rcut, ron)
	above, fAbove := applyAt(XPLOR, ron+1e-9, rcut, ron)
	if math.Abs(below-above) > 1e-7 {
		t.Errorf("energy jump at onset: %v vs %v", below, above)
	}
	if math.Abs(fBelow-fAbove) > 1e-6 {
		t.Errorf("force jump at onset: %v vs %v", fBelow, fAbove)
	}
}

func TestXPLORDegradesToShift(t *testing.T) {
	rcut := 2.5
	for _, ron := range []float64{rcut, rcut + 0.5, 10} {
		for _, r := range []float64{0.9, 1.7, 2.4} {
			xv, xf := applyAt(XPLOR, r, rcut, ron)
			sv, sf := applyAt(Shift, r, rcut, 0)
			if xv != sv || xf != sf {
				t.Errorf("ron=%v r=%v: xplor (%v,%v) != shift (%v,%v)", ron, r, xv, xf, sv, sf)
			}
		}
	}
}

// The applied force must stay the exact derivative of the applied energy
// inside the taper window, otherwise long runs leak energy.
func TestXPLORForceMatchesEnergyDerivative(t *testing.T) {
	rcut, ron := 2.5, 2.0
	h := 1e-6
	for _, r := range []float64{2.05, 2.2, 2.35, 2.45} {
		vPlus, _ := applyAt(XPLOR, r+h, rcut, ron)
		vMinus, _ := applyAt(XPLOR, r-h, rcut, ron)
		numeric := -(vPlus - vMinus) / (2 * h)
		_, f := applyAt(XPLOR, r, rcut, ron)
		if math.Abs(f-numeric) > 1e-5 {
			t.Errorf("r=%v: force %v != -dV'/dr %v", r, f, numeric)
		}
	}
}

func TestTaperEndpoints(t *testing.T) {
	rcut, ron := 3.0, 2.0
	s, _ := taper(ron, rcut, ron)
	if math.Abs(s-1) > 1e-12 {
		t.Errorf("S(r_on) = %v, want 1", s)
	}
	s, ds := taper(rcut, rcut, ron)
	if math.Abs(s) > 1e-12 || math.Abs(ds) > 1e-12 {
		t.Errorf("S(r_cut) = %v, dS(r_cut) = %v, want 0, 0", s, ds)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Mode
	}{
		{"none", None},
		{"", None},
		{"shift", Shift},
		{"xplor", XPLOR},
	} {
		got, err := Parse(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("Parse(%q) = %v, %v", tc.in, got, err)
		}
	}
	if _, err := Parse("smooth"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if XPLOR.String() != "xplor" {
		t.Errorf("String() = %q", XPLOR.String())
	}
}
