package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/pairforce/internal/compute"
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/potential"
)

// Runner integrates an attached pair potential forward in time with
// velocity Verlet. It reads candidate pairs through the potential's
// neighbor source and mutates the system in place.
type Runner struct {
	sys       *md.System
	force     potential.Force
	engine    *compute.Engine
	observers []Observer
}

func NewRunner(force potential.Force) (*Runner, error) {
	if !force.Attached() {
		return nil, fmt.Errorf("%w: %s", md.ErrNotAttached, force.Name())
	}
	return &Runner{
		sys:    force.System(),
		force:  force,
		engine: compute.NewEngine(),
	}, nil
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) System() *md.System { return r.sys }

func (r *Runner) Force() potential.Force { return r.force }

// Run advances the system for Duration/Dt steps. Cancellation is honored
// between steps; a step in flight always completes. The returned result
// holds whatever was sampled up to the stop.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.SampleEvery < 1 {
		cfg.SampleEvery = 1
	}
	if cfg.Workers > 0 {
		r.engine.SetWorkers(cfg.Workers)
	}
	if cfg.Temp > 0 {
		r.sys.Thermalize(cfg.Temp, rand.New(rand.NewSource(cfg.Seed)))
	}

	steps := int(cfg.Duration / cfg.Dt)
	samples := steps/cfg.SampleEvery + 1
	result := &Result{
		Times:       make([]float64, 0, samples),
		Potential:   make([]float64, 0, samples),
		Kinetic:     make([]float64, 0, samples),
		Total:       make([]float64, 0, samples),
		Temperature: make([]float64, 0, samples),
	}

	res, err := r.engine.Compute(r.force)
	if err != nil {
		return nil, err
	}
	t := 0.0
	kin := r.sys.KineticEnergy()
	result.record(t, res.Energy, kin, r.sys.Temperature())
	initial := res.Energy + kin

	dt := cfg.Dt
	halfDt := 0.5 * dt

	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			r.finish(result, res.Energy, initial)
			return result, ctx.Err()
		default:
		}

		// Half kick, then drift.
		for i := range r.sys.Pos {
			kick := halfDt / r.sys.Mass[i]
			r.sys.Vel[i] = r.sys.Vel[i].Add(res.Forces[i].Scale(kick))
			r.sys.Pos[i] = r.sys.Pos[i].Add(r.sys.Vel[i].Scale(dt))
		}

		res, err = r.engine.Compute(r.force)
		if err != nil {
			return result, err
		}

		// Closing half kick with the new forces.
		for i := range r.sys.Vel {
			kick := halfDt / r.sys.Mass[i]
			r.sys.Vel[i] = r.sys.Vel[i].Add(res.Forces[i].Scale(kick))
		}

		t += dt
		result.StepsTaken++

		if cfg.ValidateState && !r.sys.IsValid() {
			result.Errors = append(result.Errors,
				StepError{Time: t, Step: step, Message: "invalid state (NaN/Inf)"})
			break
		}

		kin = r.sys.KineticEnergy()
		if (step+1)%cfg.SampleEvery == 0 {
			result.record(t, res.Energy, kin, r.sys.Temperature())
		}
		for _, o := range r.observers {
			o.OnStep(r.sys, step, t, res.Energy, kin)
		}
	}

	r.finish(result, res.Energy, initial)
	return result, nil
}

func (r *Runner) finish(result *Result, potEnergy, initial float64) {
	final := potEnergy + r.sys.KineticEnergy()
	if initial != 0 {
		result.EnergyDrift = math.Abs(final-initial) / math.Abs(initial)
	}
	if b, ok := r.force.Source().(interface{ Builds() int }); ok {
		result.ListRebuilds = b.Builds()
	}
}

func (res *Result) record(t, pot, kin, temp float64) {
	res.Times = append(res.Times, t)
	res.Potential = append(res.Potential, pot)
	res.Kinetic = append(res.Kinetic, kin)
	res.Total = append(res.Total, pot+kin)
	res.Temperature = append(res.Temperature, temp)
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", cfg.Duration)
	}
	return nil
}
