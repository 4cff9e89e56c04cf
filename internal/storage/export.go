package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/pairforce/internal/sim"
)

// ExportData is the flattened JSON document the export command emits:
// run metadata plus the full sampled series in one file.
type ExportData struct {
	ID              string    `json:"id"`
	Potential       string    `json:"potential"`
	Mode            string    `json:"mode"`
	Dt              float64   `json:"dt"`
	Duration        float64   `json:"duration"`
	Steps           int       `json:"steps"`
	EnergyDrift     float64   `json:"energy_drift"`
	Times           []float64 `json:"times"`
	PotentialEnergy []float64 `json:"potential_energy"`
	KineticEnergy   []float64 `json:"kinetic_energy"`
	TotalEnergy     []float64 `json:"total_energy"`
	Temperature     []float64 `json:"temperature"`
}

func ExportJSON(path string, meta *RunMetadata, series *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, meta, series)
}

func ExportJSONStdout(meta *RunMetadata, series *sim.Result) error {
	return writeExport(os.Stdout, meta, series)
}

func writeExport(w io.Writer, meta *RunMetadata, series *sim.Result) error {
	data := ExportData{
		ID:              meta.ID,
		Potential:       meta.Potential,
		Mode:            meta.Mode,
		Dt:              meta.Dt,
		Duration:        meta.Duration,
		Steps:           meta.StepsTaken,
		EnergyDrift:     meta.EnergyDrift,
		Times:           series.Times,
		PotentialEnergy: series.Potential,
		KineticEnergy:   series.Kinetic,
		TotalEnergy:     series.Total,
		Temperature:     series.Temperature,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
