package sim

import (
	"fmt"

	"github.com/san-kum/pairforce/internal/md"
)

// Config controls one molecular-dynamics run.
type Config struct {
	Dt            float64
	Duration      float64
	Temp          float64 // initial temperature; 0 starts cold
	Seed          int64
	SampleEvery   int // energy sampling stride in steps; 0 samples every step
	Workers       int // evaluation workers; 0 uses all CPUs
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.001,
		Duration:      1.0,
		SampleEvery:   10,
		ValidateState: true,
	}
}

// Result collects the sampled series and run health counters.
type Result struct {
	Times        []float64
	Potential    []float64
	Kinetic      []float64
	Total        []float64
	Temperature  []float64
	EnergyDrift  float64
	StepsTaken   int
	ListRebuilds int
	Errors       []error
}

type StepError struct {
	Time    float64
	Step    int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

// Observer sees the system after every completed step. The system is the
// live one; observers must copy anything they keep.
type Observer interface {
	OnStep(sys *md.System, step int, t, potential, kinetic float64)
}
