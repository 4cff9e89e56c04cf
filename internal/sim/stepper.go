package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/pairforce/internal/compute"
	"github.com/san-kum/pairforce/internal/md"
)

// Stepper advances a run one velocity-Verlet step at a time, for callers
// that interleave stepping with other work, like the live view. Run covers
// the batch case.
type Stepper struct {
	runner  *Runner
	dt      float64
	res     *compute.Result
	t       float64
	steps   int
	pos0    []md.Vec3
	vel0    []md.Vec3
	initial float64
}

// Stepper prepares single-step integration at the given dt. The current
// positions and velocities become the reset point.
func (r *Runner) Stepper(dt float64) (*Stepper, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %g", dt)
	}
	res, err := r.engine.Compute(r.force)
	if err != nil {
		return nil, err
	}
	return &Stepper{
		runner:  r,
		dt:      dt,
		res:     res,
		pos0:    append([]md.Vec3(nil), r.sys.Pos...),
		vel0:    append([]md.Vec3(nil), r.sys.Vel...),
		initial: res.Energy + r.sys.KineticEnergy(),
	}, nil
}

func (s *Stepper) Step() error {
	r := s.runner
	halfDt := 0.5 * s.dt
	for i := range r.sys.Pos {
		kick := halfDt / r.sys.Mass[i]
		r.sys.Vel[i] = r.sys.Vel[i].Add(s.res.Forces[i].Scale(kick))
		r.sys.Pos[i] = r.sys.Pos[i].Add(r.sys.Vel[i].Scale(s.dt))
	}
	res, err := r.engine.Compute(r.force)
	if err != nil {
		return err
	}
	for i := range r.sys.Vel {
		kick := halfDt / r.sys.Mass[i]
		r.sys.Vel[i] = r.sys.Vel[i].Add(res.Forces[i].Scale(kick))
	}
	s.res = res
	s.t += s.dt
	s.steps++
	if !r.sys.IsValid() {
		return StepError{Time: s.t, Step: s.steps, Message: "invalid state (NaN/Inf)"}
	}
	return nil
}

// Reset restores the reset-point positions and velocities and recomputes
// forces.
func (s *Stepper) Reset() error {
	r := s.runner
	copy(r.sys.Pos, s.pos0)
	copy(r.sys.Vel, s.vel0)
	res, err := r.engine.Compute(r.force)
	if err != nil {
		return err
	}
	s.res = res
	s.t = 0
	s.steps = 0
	return nil
}

func (s *Stepper) Time() float64        { return s.t }
func (s *Stepper) Steps() int           { return s.steps }
func (s *Stepper) Potential() float64   { return s.res.Energy }
func (s *Stepper) Kinetic() float64     { return s.runner.sys.KineticEnergy() }
func (s *Stepper) Total() float64       { return s.res.Energy + s.runner.sys.KineticEnergy() }
func (s *Stepper) Temperature() float64 { return s.runner.sys.Temperature() }

// Drift reports |E - E0| / |E0| relative to the reset point.
func (s *Stepper) Drift() float64 {
	if s.initial == 0 {
		return 0
	}
	return math.Abs(s.Total()-s.initial) / math.Abs(s.initial)
}

// Rebuilds reports neighbor list builds when the source counts them.
func (s *Stepper) Rebuilds() int {
	if b, ok := s.runner.force.Source().(interface{ Builds() int }); ok {
		return b.Builds()
	}
	return 0
}
