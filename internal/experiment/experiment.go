// Package experiment assembles runnable simulations from configuration.
// It is the only package that knows how to turn a config.Config into a
// wired system, potential, neighbor source, and integration driver.
package experiment

import (
	"context"

	"github.com/san-kum/pairforce/internal/config"
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/potential"
	"github.com/san-kum/pairforce/internal/sim"
)

// Experiment is one fully assembled run. The potential is attached and the
// neighbor source search radius is already sized to its maximum cutoff.
type Experiment struct {
	cfg    *config.Config
	sys    *md.System
	force  potential.Force
	source Source
	runner *sim.Runner
}

// New builds an experiment from configuration: particles on a lattice,
// a potential with its coefficients applied, a neighbor source, and the
// integration driver on top.
func New(cfg *config.Config) (*Experiment, error) {
	sys, err := buildSystem(&cfg.System, cfg.Run.Seed)
	if err != nil {
		return nil, err
	}
	force, err := buildPotential(&cfg.Potential, sys)
	if err != nil {
		return nil, err
	}
	source, err := buildSource(&cfg.Neighbor, sys)
	if err != nil {
		return nil, err
	}
	if err := force.Attach(source); err != nil {
		return nil, err
	}
	source.SetCutoff(force.MaxCutoff())

	runner, err := sim.NewRunner(force)
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, sys: sys, force: force, source: source, runner: runner}, nil
}

// Run integrates for the configured window and returns the sampled series.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.runner.Run(ctx, e.SimConfig())
}

// SimConfig translates the run section of the configuration into driver
// settings.
func (e *Experiment) SimConfig() sim.Config {
	simCfg := sim.DefaultConfig()
	simCfg.Dt = e.cfg.Run.Dt
	simCfg.Duration = e.cfg.Run.Duration
	simCfg.Temp = e.cfg.Run.Temp
	simCfg.Seed = e.cfg.Run.Seed
	if e.cfg.Run.SampleEvery > 0 {
		simCfg.SampleEvery = e.cfg.Run.SampleEvery
	}
	simCfg.Workers = e.cfg.Run.Workers
	return simCfg
}

// Builder adapts a configuration into a sim.Builder for ensemble runs.
// Each member assembles a fresh experiment so runs never share state.
func Builder(cfg *config.Config) sim.Builder {
	return func() (*sim.Runner, error) {
		e, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return e.Runner(), nil
	}
}

// Runner returns the underlying driver for adding observers.
func (e *Experiment) Runner() *sim.Runner { return e.runner }

func (e *Experiment) System() *md.System     { return e.sys }
func (e *Experiment) Force() potential.Force { return e.force }
func (e *Experiment) Source() Source         { return e.source }
