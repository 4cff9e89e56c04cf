package experiment

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pairforce/internal/config"
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/tabulated"
)

func TestNewFromDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := e.System().N(); got != cfg.System.N {
		t.Errorf("expected %d particles, got %d", cfg.System.N, got)
	}
	if !e.Force().Attached() {
		t.Error("potential should be attached")
	}
	if e.Force().Name() != "lj" {
		t.Errorf("expected lj, got %s", e.Force().Name())
	}
}

func TestBuildAppliesTypeProps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.System.Types = []string{"big", "small"}
	cfg.System.N = 10
	cfg.System.TypeProps = map[string]config.Props{
		"big": {Mass: 8, Diameter: 2, Charge: -1},
	}
	cfg.Potential.Pairs = []config.PairConfig{
		{A: []string{"big", "small"}, B: []string{"big", "small"},
			Coeffs: map[string]float64{"epsilon": 1, "sigma": 1}},
	}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sys := e.System()
	// Types alternate, so particle 0 is big and particle 1 is small.
	if sys.Mass[0] != 8 || sys.Diameter[0] != 2 || sys.Charge[0] != -1 {
		t.Errorf("big props not applied: mass %f diameter %f charge %f",
			sys.Mass[0], sys.Diameter[0], sys.Charge[0])
	}
	if sys.Mass[1] != 1 || sys.Diameter[1] != 1 || sys.Charge[1] != 0 {
		t.Errorf("small should keep defaults: mass %f diameter %f charge %f",
			sys.Mass[1], sys.Diameter[1], sys.Charge[1])
	}
}

func TestBuildUnknownTypeInProps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.System.TypeProps = map[string]config.Props{"C": {Mass: 2}}
	if _, err := New(cfg); !errors.Is(err, md.ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero particles", func(c *config.Config) { c.System.N = 0 }},
		{"unknown potential", func(c *config.Config) { c.Potential.Name = "granite" }},
		{"unknown mode", func(c *config.Config) { c.Potential.Mode = "fade" }},
		{"zero cutoff", func(c *config.Config) { c.Potential.RCut = 0 }},
		{"unknown neighbor method", func(c *config.Config) { c.Neighbor.Method = "octree" }},
		{"missing coefficients", func(c *config.Config) { c.Potential.Pairs = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunFromPreset(t *testing.T) {
	cfg := config.GetPreset("lj", "crystal")
	if cfg == nil {
		t.Fatal("missing preset")
	}
	cfg.Run.Duration = 0.05

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.StepsTaken != 50 {
		t.Errorf("expected 50 steps, got %d", result.StepsTaken)
	}
	if len(result.Total) == 0 {
		t.Fatal("expected sampled energies")
	}
	if result.EnergyDrift > 1e-4 {
		t.Errorf("energy drift too large: %g", result.EnergyDrift)
	}
	if e.Source().Builds() == 0 {
		t.Error("neighbor source never built a list")
	}
}

func TestBuildTablePotential(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aa.dat")
	g, err := tabulated.FromFunc(200, 0.8, 2.5, func(r float64) (float64, float64) {
		inv := 1 / (r * r)
		return inv, 2 * inv / r
	})
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.WriteTable(f); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := config.DefaultConfig()
	cfg.Potential.Name = "table"
	cfg.Potential.Pairs = nil
	cfg.Potential.Table = []config.TableConfig{
		{A: []string{"A"}, B: []string{"A"}, Path: path, Width: 200},
	}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := e.Force().MaxCutoff(); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("expected cutoff from grid range 2.5, got %f", got)
	}
}

func TestBuildTableWithoutEntries(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Potential.Name = "table"
	cfg.Potential.Pairs = nil
	if _, err := New(cfg); err == nil {
		t.Error("expected error for table potential without tables")
	}
}

func TestBuilderAssemblesFreshRuns(t *testing.T) {
	cfg := config.GetPreset("lj", "crystal")
	if cfg == nil {
		t.Fatal("missing preset")
	}
	cfg.Run.Duration = 0.01

	build := Builder(cfg)
	r1, err := build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	r2, err := build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if r1 == r2 || r1.System() == r2.System() {
		t.Error("ensemble members should not share state")
	}
}
