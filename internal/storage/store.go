// Package storage persists finished runs, one directory per run holding a
// JSON metadata document and a CSV energy series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/pairforce/internal/config"
	"github.com/san-kum/pairforce/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID           string    `json:"id"`
	Potential    string    `json:"potential"`
	Mode         string    `json:"mode"`
	Timestamp    time.Time `json:"timestamp"`
	Seed         int64     `json:"seed"`
	Dt           float64   `json:"dt"`
	Duration     float64   `json:"duration"`
	Particles    int       `json:"particles"`
	Types        []string  `json:"types"`
	Neighbor     string    `json:"neighbor"`
	StepsTaken   int       `json:"steps_taken"`
	EnergyDrift  float64   `json:"energy_drift"`
	ListRebuilds int       `json:"list_rebuilds"`
}

// Save writes metadata.json and energies.csv under a fresh run directory
// and returns the run ID.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", cfg.Potential.Name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Potential:    cfg.Potential.Name,
		Mode:         cfg.Potential.Mode,
		Timestamp:    time.Now(),
		Seed:         cfg.Run.Seed,
		Dt:           cfg.Run.Dt,
		Duration:     cfg.Run.Duration,
		Particles:    cfg.System.N,
		Types:        cfg.System.Types,
		Neighbor:     cfg.Neighbor.Method,
		StepsTaken:   result.StepsTaken,
		EnergyDrift:  result.EnergyDrift,
		ListRebuilds: result.ListRebuilds,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "energies.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "potential", "kinetic", "total", "temperature"}); err != nil {
		return "", err
	}
	for i := range result.Times {
		row := []string{
			formatFloat(result.Times[i]),
			formatFloat(result.Potential[i]),
			formatFloat(result.Kinetic[i]),
			formatFloat(result.Total[i]),
			formatFloat(result.Temperature[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Energy drift is orders of magnitude below the energies themselves, so
// rows keep full float precision.
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// List reads the metadata of every run directory, skipping entries that
// cannot be parsed.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads the sampled series back into a Result. The health
// counters live in the metadata, not the CSV, and are left zero.
func (s *Store) LoadSeries(runID string) (*sim.Result, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "energies.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{}
	for i, rec := range records {
		if i == 0 || len(rec) < 5 {
			continue
		}
		vals := make([]float64, 5)
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		result.Times = append(result.Times, vals[0])
		result.Potential = append(result.Potential, vals[1])
		result.Kinetic = append(result.Kinetic, vals[2])
		result.Total = append(result.Total, vals[3])
		result.Temperature = append(result.Temperature, vals[4])
	}
	return result, nil
}
