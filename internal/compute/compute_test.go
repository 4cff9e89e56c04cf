package compute

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/potential"
	"github.com/san-kum/pairforce/internal/shape"
)

type listSource struct {
	sys   *md.System
	pairs []md.NeighborPair
}

func (s listSource) System() *md.System                { return s.sys }
func (s listSource) Pairs() ([]md.NeighborPair, error) { return s.pairs, nil }

type failSource struct {
	sys *md.System
	err error
}

func (s failSource) System() *md.System                { return s.sys }
func (s failSource) Pairs() ([]md.NeighborPair, error) { return nil, s.err }

// allPairs enumerates every i<j candidate, leaving cutoff rejection to the
// evaluation loop.
func allPairs(sys *md.System) []md.NeighborPair {
	var out []md.NeighborPair
	for i := 0; i < sys.N(); i++ {
		for j := i + 1; j < sys.N(); j++ {
			out = append(out, md.NeighborPair{I: i, J: j, Delta: sys.Pos[i].Sub(sys.Pos[j])})
		}
	}
	return out
}

func newLJSystem(t *testing.T, n int) (*md.System, *potential.Pair[potential.LJParams]) {
	t.Helper()
	types, err := md.NewTypeSet("A")
	if err != nil {
		t.Fatalf("NewTypeSet: %v", err)
	}
	sys := md.NewSystem(types)
	for i := 0; i < n; i++ {
		sys.AddParticle(0)
	}
	f, err := potential.NewLJ(sys, shape.Shift)
	if err != nil {
		t.Fatalf("NewLJ: %v", err)
	}
	if err := f.SetParams([]string{"A"}, []string{"A"}, potential.LJParams{Epsilon: 1, Sigma: 1}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if err := f.SetRCutDefault(2.5); err != nil {
		t.Fatalf("SetRCutDefault: %v", err)
	}
	return sys, f
}

func pairEnergy(f potential.Force, sys *md.System, i, j int) float64 {
	d := sys.Pos[i].Sub(sys.Pos[j])
	v, _ := f.EvalPair(sys.TypeID[i], sys.TypeID[j], potential.Input{
		R:       d.Norm(),
		DiamI:   sys.Diameter[i],
		DiamJ:   sys.Diameter[j],
		ChargeI: sys.Charge[i],
		ChargeJ: sys.Charge[j],
	})
	return v
}

func TestEnergyBetweenSets(t *testing.T) {
	sys, f := newLJSystem(t, 4)
	sys.Pos[0] = md.Vec3{X: 0, Y: 0, Z: 0}
	sys.Pos[1] = md.Vec3{X: 1.0, Y: 0, Z: 0}
	sys.Pos[2] = md.Vec3{X: 0, Y: 1.2, Z: 0}
	sys.Pos[3] = md.Vec3{X: 1.0, Y: 1.3, Z: 0}

	// The source yields two cross pairs and two same-set pairs; only the
	// cross pairs may contribute.
	pairs := []md.NeighborPair{
		{I: 0, J: 1, Delta: sys.Pos[0].Sub(sys.Pos[1])},
		{I: 2, J: 3, Delta: sys.Pos[2].Sub(sys.Pos[3])},
		{I: 0, J: 2, Delta: sys.Pos[0].Sub(sys.Pos[2])},
		{I: 1, J: 3, Delta: sys.Pos[1].Sub(sys.Pos[3])},
	}
	if err := f.Attach(listSource{sys, pairs}); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	engine := NewEngine()
	got, err := engine.EnergyBetweenSets(f, []int{0, 1}, []int{2, 3})
	if err != nil {
		t.Fatalf("EnergyBetweenSets: %v", err)
	}
	want := pairEnergy(f, sys, 0, 2) + pairEnergy(f, sys, 1, 3)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("energy = %v, want %v (cross pairs only)", got, want)
	}
	if want == 0 {
		t.Fatal("cross pairs contribute nothing; test layout is wrong")
	}

	rev, err := engine.EnergyBetweenSets(f, []int{2, 3}, []int{0, 1})
	if err != nil {
		t.Fatalf("EnergyBetweenSets reversed: %v", err)
	}
	if math.Abs(rev-got) > 1e-12 {
		t.Errorf("set order changed the energy: %v vs %v", rev, got)
	}
}

func TestNewtonThirdLaw(t *testing.T) {
	sys, f := newLJSystem(t, 12)
	sys.Lattice(1.1, 0.05, rand.New(rand.NewSource(7)))
	if err := f.Attach(listSource{sys, allPairs(sys)}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	res, err := NewEngine().Compute(f)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	var sum md.Vec3
	for _, fv := range res.Forces {
		sum = sum.Add(fv)
	}
	if sum.Norm() > 1e-9 {
		t.Errorf("net force = %+v, want zero", sum)
	}
	if res.Energy == 0 {
		t.Error("no pair contributed; test layout is wrong")
	}
}

func TestForceDirectionAndVirial(t *testing.T) {
	cases := []struct {
		name      string
		r         float64
		attractive bool
	}{
		{"repulsive core", 0.9, false},
		{"attractive tail", 1.3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sys, f := newLJSystem(t, 2)
			sys.Pos[1] = md.Vec3{X: tc.r}
			if err := f.Attach(listSource{sys, allPairs(sys)}); err != nil {
				t.Fatalf("Attach: %v", err)
			}
			res, err := NewEngine().Compute(f)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			d := sys.Pos[0].Sub(sys.Pos[1])
			rr := d.Norm()
			v, fr := f.EvalPair(0, 0, potential.Input{R: rr, DiamI: 1, DiamJ: 1})
			if math.Abs(res.Energy-v) > 1e-12 {
				t.Errorf("energy = %v, want %v", res.Energy, v)
			}
			if math.Abs(res.Virial-fr*rr) > 1e-12 {
				t.Errorf("virial = %v, want %v", res.Virial, fr*rr)
			}
			if tc.attractive && res.Forces[0].X <= 0 {
				t.Errorf("force on particle 0 = %v, want pull toward +x", res.Forces[0].X)
			}
			if !tc.attractive && res.Forces[0].X >= 0 {
				t.Errorf("force on particle 0 = %v, want push toward -x", res.Forces[0].X)
			}
			if math.Abs(res.Forces[0].X+res.Forces[1].X) > 1e-12 {
				t.Errorf("pair forces not equal and opposite: %v, %v",
					res.Forces[0].X, res.Forces[1].X)
			}
		})
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	sys, f := newLJSystem(t, 32)
	sys.Lattice(1.0, 0.1, rand.New(rand.NewSource(3)))
	pairs := allPairs(sys)
	if len(pairs) < serialCutover {
		t.Fatalf("only %d pairs; the parallel path would not run", len(pairs))
	}
	if err := f.Attach(listSource{sys, pairs}); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	serial := NewEngine()
	serial.SetWorkers(1)
	sres, err := serial.Compute(f)
	if err != nil {
		t.Fatalf("serial Compute: %v", err)
	}

	par := NewEngine()
	par.SetWorkers(4)
	pres, err := par.Compute(f)
	if err != nil {
		t.Fatalf("parallel Compute: %v", err)
	}

	if math.Abs(sres.Energy-pres.Energy) > 1e-9*math.Max(1, math.Abs(sres.Energy)) {
		t.Errorf("energy: serial %v, parallel %v", sres.Energy, pres.Energy)
	}
	if math.Abs(sres.Virial-pres.Virial) > 1e-9*math.Max(1, math.Abs(sres.Virial)) {
		t.Errorf("virial: serial %v, parallel %v", sres.Virial, pres.Virial)
	}
	for i := range sres.Forces {
		if sres.Forces[i].Sub(pres.Forces[i]).Norm() > 1e-9 {
			t.Fatalf("force %d: serial %+v, parallel %+v", i, sres.Forces[i], pres.Forces[i])
		}
	}
}

func TestComputeMatchesDirectSum(t *testing.T) {
	sys, f := newLJSystem(t, 5)
	sys.Lattice(1.2, 0.1, rand.New(rand.NewSource(11)))
	pairs := allPairs(sys)
	if err := f.Attach(listSource{sys, pairs}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	res, err := NewEngine().Compute(f)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	var want float64
	for _, pr := range pairs {
		want += pairEnergy(f, sys, pr.I, pr.J)
	}
	if math.Abs(res.Energy-want) > 1e-12 {
		t.Errorf("energy = %v, want %v", res.Energy, want)
	}
}

func TestComputeDetached(t *testing.T) {
	_, f := newLJSystem(t, 2)
	engine := NewEngine()
	if _, err := engine.Compute(f); !errors.Is(err, md.ErrNotAttached) {
		t.Errorf("Compute err = %v, want ErrNotAttached", err)
	}
	if _, err := engine.EnergyBetweenSets(f, []int{0}, []int{1}); !errors.Is(err, md.ErrNotAttached) {
		t.Errorf("EnergyBetweenSets err = %v, want ErrNotAttached", err)
	}
}

func TestComputeAfterFailedAttach(t *testing.T) {
	sys, f := newLJSystem(t, 2)
	other := md.NewSystem(sys.Types)
	if err := f.Attach(listSource{sys: other}); !errors.Is(err, md.ErrCrossContext) {
		t.Fatalf("Attach err = %v, want ErrCrossContext", err)
	}
	if _, err := NewEngine().Compute(f); !errors.Is(err, md.ErrNotAttached) {
		t.Errorf("Compute err = %v, want ErrNotAttached", err)
	}
}

func TestComputePropagatesSourceError(t *testing.T) {
	errStale := errors.New("stale pair list")
	sys, f := newLJSystem(t, 2)
	if err := f.Attach(failSource{sys, errStale}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if _, err := NewEngine().Compute(f); !errors.Is(err, errStale) {
		t.Errorf("Compute err = %v, want the source's error", err)
	}
}
