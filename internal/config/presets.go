package config

var Presets = map[string]map[string]*Config{
	"lj": {
		"crystal": {
			System: SystemConfig{Types: []string{"A"}, N: 64, Spacing: 1.12, Jitter: 0.0},
			Potential: PotentialConfig{
				Name: "lj", Mode: "shift", RCut: 2.5,
				Pairs: []PairConfig{{A: []string{"A"}, B: []string{"A"},
					Coeffs: map[string]float64{"epsilon": 1, "sigma": 1}}},
			},
			Neighbor: NeighborConfig{Method: "cells", Skin: 0.4},
			Run:      RunConfig{Dt: 0.001, Duration: 2.0, SampleEvery: 10},
		},
		"melt": {
			System: SystemConfig{Types: []string{"A"}, N: 125, Spacing: 1.1, Jitter: 0.05},
			Potential: PotentialConfig{
				Name: "lj", Mode: "xplor", RCut: 2.5, ROn: 2.0,
				Pairs: []PairConfig{{A: []string{"A"}, B: []string{"A"},
					Coeffs: map[string]float64{"epsilon": 1, "sigma": 1}}},
			},
			Neighbor: NeighborConfig{Method: "cells", Skin: 0.4},
			Run:      RunConfig{Dt: 0.002, Duration: 5.0, Temp: 1.2, SampleEvery: 20},
		},
		"binary": {
			System: SystemConfig{
				Types: []string{"A", "B"}, N: 128, Spacing: 1.15, Jitter: 0.05,
				TypeProps: map[string]Props{
					"A": {Mass: 1.0, Diameter: 1.0},
					"B": {Mass: 2.0, Diameter: 1.0},
				},
			},
			Potential: PotentialConfig{
				Name: "lj", Mode: "shift", RCut: 2.5,
				Pairs: []PairConfig{
					{A: []string{"A"}, B: []string{"A"}, Coeffs: map[string]float64{"epsilon": 1.0, "sigma": 1.0}},
					{A: []string{"B"}, B: []string{"B"}, Coeffs: map[string]float64{"epsilon": 0.5, "sigma": 1.1}},
					{A: []string{"A"}, B: []string{"B"}, Coeffs: map[string]float64{"epsilon": 0.7, "sigma": 1.05}},
				},
			},
			Neighbor: NeighborConfig{Method: "cells", Skin: 0.4},
			Run:      RunConfig{Dt: 0.002, Duration: 3.0, Temp: 0.8, SampleEvery: 20},
		},
	},
	"slj": {
		"colloid": {
			System: SystemConfig{
				Types: []string{"big", "small"}, N: 64, Spacing: 2.2, Jitter: 0.1,
				TypeProps: map[string]Props{
					"big":   {Mass: 8.0, Diameter: 2.0},
					"small": {Mass: 1.0, Diameter: 1.0},
				},
			},
			Potential: PotentialConfig{
				Name: "slj", Mode: "shift", RCut: 2.5,
				Pairs: []PairConfig{{A: []string{"big", "small"}, B: []string{"big", "small"},
					Coeffs: map[string]float64{"epsilon": 1, "sigma": 1}}},
			},
			Neighbor: NeighborConfig{Method: "cells", Skin: 0.5},
			Run:      RunConfig{Dt: 0.001, Duration: 2.0, Temp: 0.5, SampleEvery: 10},
		},
	},
	"yukawa": {
		"plasma": {
			System: SystemConfig{Types: []string{"ion"}, N: 125, Spacing: 1.5, Jitter: 0.1},
			Potential: PotentialConfig{
				Name: "yukawa", Mode: "shift", RCut: 3.0,
				Pairs: []PairConfig{{A: []string{"ion"}, B: []string{"ion"},
					Coeffs: map[string]float64{"epsilon": 1.0, "kappa": 1.5}}},
			},
			Neighbor: NeighborConfig{Method: "cells", Skin: 0.5},
			Run:      RunConfig{Dt: 0.002, Duration: 4.0, Temp: 1.0, SampleEvery: 20},
		},
	},
	"dpd-conservative": {
		"fluid": {
			System: SystemConfig{Types: []string{"A"}, N: 216, Spacing: 0.9, Jitter: 0.1},
			Potential: PotentialConfig{
				Name: "dpd-conservative", Mode: "none", RCut: 1.0,
				Pairs: []PairConfig{{A: []string{"A"}, B: []string{"A"},
					Coeffs: map[string]float64{"a": 25.0}}},
			},
			Neighbor: NeighborConfig{Method: "cells", Skin: 0.3},
			Run:      RunConfig{Dt: 0.01, Duration: 10.0, Temp: 1.0, SampleEvery: 50},
		},
	},
	"morse": {
		"dimer": {
			System: SystemConfig{Types: []string{"A"}, N: 8, Spacing: 1.0, Jitter: 0.0},
			Potential: PotentialConfig{
				Name: "morse", Mode: "shift", RCut: 3.0,
				Pairs: []PairConfig{{A: []string{"A"}, B: []string{"A"},
					Coeffs: map[string]float64{"d0": 1.0, "alpha": 3.0, "r0": 1.0}}},
			},
			Neighbor: NeighborConfig{Method: "brute", Skin: 0.4},
			Run:      RunConfig{Dt: 0.001, Duration: 2.0, SampleEvery: 10},
		},
	},
}

func GetPreset(family, preset string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := familyPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	return names
}
