package md

import (
	"fmt"
	"math"
	"math/rand"
)

// Vec3 is a position, velocity, or force in simulation space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Norm2() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// TypeSet is the fixed, insertion-ordered set of particle type names.
// The position of a name is its dense type index.
type TypeSet struct {
	names []string
	index map[string]int
}

func NewTypeSet(names ...string) (*TypeSet, error) {
	ts := &TypeSet{index: make(map[string]int, len(names))}
	for _, n := range names {
		if n == "" {
			return nil, fmt.Errorf("md: empty type name")
		}
		if _, dup := ts.index[n]; dup {
			return nil, fmt.Errorf("md: duplicate type name %q", n)
		}
		ts.index[n] = len(ts.names)
		ts.names = append(ts.names, n)
	}
	return ts, nil
}

func (ts *TypeSet) Len() int { return len(ts.names) }

func (ts *TypeSet) Name(i int) string { return ts.names[i] }

func (ts *TypeSet) Names() []string {
	out := make([]string, len(ts.names))
	copy(out, ts.names)
	return out
}

// Index returns the dense index for a type name.
func (ts *TypeSet) Index(name string) (int, bool) {
	i, ok := ts.index[name]
	return i, ok
}

// System owns the per-particle arrays a force compute reads. Positions and
// velocities are mutated by the integration driver between evaluations;
// everything else is fixed after setup.
type System struct {
	Types    *TypeSet
	Pos      []Vec3
	Vel      []Vec3
	TypeID   []int
	Mass     []float64
	Diameter []float64
	Charge   []float64
}

func NewSystem(types *TypeSet) *System {
	return &System{Types: types}
}

func (s *System) N() int { return len(s.Pos) }

// AddParticle appends a particle of the given type with unit mass, unit
// diameter, and zero charge, returning its index.
func (s *System) AddParticle(typeID int) int {
	s.Pos = append(s.Pos, Vec3{})
	s.Vel = append(s.Vel, Vec3{})
	s.TypeID = append(s.TypeID, typeID)
	s.Mass = append(s.Mass, 1.0)
	s.Diameter = append(s.Diameter, 1.0)
	s.Charge = append(s.Charge, 0.0)
	return len(s.Pos) - 1
}

// Lattice places all particles on a simple cubic grid centered at the
// origin. Jitter displaces each coordinate uniformly in [-j, j] to break
// the symmetry of a perfect crystal.
func (s *System) Lattice(spacing, jitter float64, rng *rand.Rand) {
	n := s.N()
	if n == 0 {
		return
	}
	side := int(math.Ceil(math.Cbrt(float64(n))))
	offset := float64(side-1) * spacing / 2
	for i := 0; i < n; i++ {
		ix := i % side
		iy := (i / side) % side
		iz := i / (side * side)
		p := Vec3{
			X: float64(ix)*spacing - offset,
			Y: float64(iy)*spacing - offset,
			Z: float64(iz)*spacing - offset,
		}
		if jitter > 0 && rng != nil {
			p.X += (rng.Float64()*2 - 1) * jitter
			p.Y += (rng.Float64()*2 - 1) * jitter
			p.Z += (rng.Float64()*2 - 1) * jitter
		}
		s.Pos[i] = p
	}
}

// Thermalize draws velocities from a Maxwell-Boltzmann distribution at the
// given temperature and removes the net momentum so the system does not
// drift as a whole.
func (s *System) Thermalize(temp float64, rng *rand.Rand) {
	n := s.N()
	if n == 0 || temp <= 0 {
		return
	}
	var p Vec3
	for i := 0; i < n; i++ {
		sigma := math.Sqrt(temp / s.Mass[i])
		s.Vel[i] = Vec3{
			X: rng.NormFloat64() * sigma,
			Y: rng.NormFloat64() * sigma,
			Z: rng.NormFloat64() * sigma,
		}
		p = p.Add(s.Vel[i].Scale(s.Mass[i]))
	}
	var m float64
	for i := 0; i < n; i++ {
		m += s.Mass[i]
	}
	drift := p.Scale(1 / m)
	for i := 0; i < n; i++ {
		s.Vel[i] = s.Vel[i].Sub(drift)
	}
}

func (s *System) KineticEnergy() float64 {
	ke := 0.0
	for i := range s.Vel {
		ke += 0.5 * s.Mass[i] * s.Vel[i].Norm2()
	}
	return ke
}

// Temperature reports the instantaneous kinetic temperature with k_B = 1.
func (s *System) Temperature() float64 {
	n := s.N()
	if n == 0 {
		return 0
	}
	return 2 * s.KineticEnergy() / (3 * float64(n))
}

// IsValid reports whether every position and velocity is finite.
func (s *System) IsValid() bool {
	for i := range s.Pos {
		if !s.Pos[i].IsValid() || !s.Vel[i].IsValid() {
			return false
		}
	}
	return true
}

// NeighborPair is one candidate pair from a neighbor source. Delta is the
// separation Pos[I] - Pos[J] as reported by the source.
type NeighborPair struct {
	I, J  int
	Delta Vec3
}

// NeighborSource enumerates candidate pairs within an extended cutoff.
// A force compute never discovers pairs itself.
type NeighborSource interface {
	// System returns the system whose positions the source reads.
	System() *System
	// Pairs returns the candidate pairs for the current positions.
	Pairs() ([]NeighborPair, error)
}
