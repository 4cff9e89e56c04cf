package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 1.0
	DefaultRCut     = 2.5
	DefaultSkin     = 0.4
	DefaultSpacing  = 1.2
	DefaultBodies   = 64
)

// Config is the on-disk description of one run: the particle system, the
// potential with its per-pair coefficients, the neighbor source, and the
// integration window. Loading merges the file over DefaultConfig, so a
// config file only states what differs.
type Config struct {
	System    SystemConfig    `yaml:"system"`
	Potential PotentialConfig `yaml:"potential"`
	Neighbor  NeighborConfig  `yaml:"neighbor"`
	Run       RunConfig       `yaml:"run"`
}

type SystemConfig struct {
	Types     []string         `yaml:"types"`
	N         int              `yaml:"n"`
	Spacing   float64          `yaml:"spacing"`
	Jitter    float64          `yaml:"jitter"`
	TypeProps map[string]Props `yaml:"type_props"`
}

// Props carries the per-particle values for one type name.
type Props struct {
	Mass     float64 `yaml:"mass"`
	Diameter float64 `yaml:"diameter"`
	Charge   float64 `yaml:"charge"`
}

type PotentialConfig struct {
	Name  string        `yaml:"name"`
	Mode  string        `yaml:"mode"`
	RCut  float64       `yaml:"r_cut"`
	ROn   float64       `yaml:"r_on"`
	Pairs []PairConfig  `yaml:"pairs"`
	Table []TableConfig `yaml:"table"`
}

// PairConfig assigns coefficients to every pair in the product of the two
// type-name lists, with optional per-assignment cutoff overrides.
type PairConfig struct {
	A      []string           `yaml:"a"`
	B      []string           `yaml:"b"`
	Coeffs map[string]float64 `yaml:"coeffs"`
	RCut   float64            `yaml:"r_cut,omitempty"`
	ROn    float64            `yaml:"r_on,omitempty"`
}

// TableConfig names one tabulated-potential file and the pairs it covers.
type TableConfig struct {
	A     []string `yaml:"a"`
	B     []string `yaml:"b"`
	Path  string   `yaml:"path"`
	Width int      `yaml:"width"`
}

type NeighborConfig struct {
	Method string  `yaml:"method"` // brute or cells
	Skin   float64 `yaml:"skin"`
}

type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	Temp        float64 `yaml:"temp"`
	Seed        int64   `yaml:"seed"`
	SampleEvery int     `yaml:"sample_every"`
	Workers     int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		System: SystemConfig{
			Types:   []string{"A"},
			N:       DefaultBodies,
			Spacing: DefaultSpacing,
			Jitter:  0.05,
		},
		Potential: PotentialConfig{
			Name: "lj",
			Mode: "shift",
			RCut: DefaultRCut,
			Pairs: []PairConfig{
				{A: []string{"A"}, B: []string{"A"}, Coeffs: map[string]float64{"epsilon": 1, "sigma": 1}},
			},
		},
		Neighbor: NeighborConfig{
			Method: "cells",
			Skin:   DefaultSkin,
		},
		Run: RunConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			SampleEvery: 10,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
