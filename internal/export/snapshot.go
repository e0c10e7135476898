// Package export writes the current engine state to files.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/san-kum/qwave/internal/sim"
)

// Snapshot is the state of an engine at one step.
type Snapshot struct {
	Grid      GridInfo  `json:"grid"`
	X         []float64 `json:"x"`
	Re        []float64 `json:"re"`
	Im        []float64 `json:"im"`
	Abs       []float64 `json:"abs"`
	Potential []float64 `json:"potential"`
	Energy    float64   `json:"energy"`
	Method    string    `json:"method"`
	Step      int       `json:"step"`
}

type GridInfo struct {
	N  int     `json:"n"`
	L  float64 `json:"l"`
	Dx float64 `json:"dx"`
}

// Capture reads a snapshot from e without modifying it.
func Capture(e *sim.Engine) *Snapshot {
	psi := e.Wavefunction()
	g := e.Grid()
	return &Snapshot{
		Grid:      GridInfo{N: g.N(), L: g.Length(), Dx: g.Dx()},
		X:         e.Positions(),
		Re:        psi.Real(),
		Im:        psi.Imag(),
		Abs:       psi.Abs(),
		Potential: e.Potential(),
		Energy:    e.Energy(),
		Method:    e.Method().String(),
		Step:      e.Steps(),
	}
}

func WriteJSON(w io.Writer, snap *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(snap), "encode snapshot")
}

func ExportJSON(path string, snap *Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create snapshot file")
	}
	defer file.Close()

	return WriteJSON(file, snap)
}

func ExportJSONStdout(snap *Snapshot) error {
	return WriteJSON(os.Stdout, snap)
}

// ReadJSON loads a snapshot written by WriteJSON.
func ReadJSON(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "parse snapshot %s", path)
	}
	return &snap, nil
}
