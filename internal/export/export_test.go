package export

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/qwave/internal/sim"
)

func newEngine(t *testing.T) *sim.Engine {
	t.Helper()
	n := 32
	cfg := sim.Config{N: n, L: 1, Hbar: 1, Mass: 1, Dt: 1e-4, Method: "forward_euler"}
	cfg.Potential = make([]float64, n)
	for i := range cfg.Potential {
		x := -0.5 + float64(i)/float64(n)
		cfg.Potential[i] = 50 * x * x
	}
	e, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Advance(3); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestCapture(t *testing.T) {
	e := newEngine(t)
	snap := Capture(e)

	if snap.Grid.N != 32 || snap.Grid.L != 1 || snap.Grid.Dx != 1.0/32 {
		t.Errorf("unexpected grid info: %+v", snap.Grid)
	}
	if snap.Method != "forward_euler" || snap.Step != 3 {
		t.Errorf("unexpected method/step: %s %d", snap.Method, snap.Step)
	}
	if snap.Energy != e.Energy() {
		t.Errorf("energy %v, want %v", snap.Energy, e.Energy())
	}
	for _, s := range [][]float64{snap.X, snap.Re, snap.Im, snap.Abs, snap.Potential} {
		if len(s) != 32 {
			t.Fatalf("expected 32 samples, got %d", len(s))
		}
	}
	for i := range snap.Abs {
		if math.Abs(snap.Abs[i]-math.Hypot(snap.Re[i], snap.Im[i])) > 1e-15 {
			t.Errorf("abs[%d] inconsistent with re/im", i)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	snap := Capture(newEngine(t))

	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap); err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"grid", "x", "re", "im", "abs", "potential", "energy", "method", "step"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestExportJSON_ReadBack(t *testing.T) {
	snap := Capture(newEngine(t))
	path := filepath.Join(t.TempDir(), "snap.json")

	if err := ExportJSON(path, snap); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Step != snap.Step || got.Energy != snap.Energy || len(got.Re) != len(snap.Re) {
		t.Errorf("read back %+v", got.Grid)
	}

	if err := ExportJSON(filepath.Join(t.TempDir(), "missing", "snap.json"), snap); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSnapshotToSVG(t *testing.T) {
	svg := SnapshotToSVG(Capture(newEngine(t)), 400, 200)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not an svg document")
	}
	// potential, re, im, abs
	if got := strings.Count(svg, "<path"); got != 4 {
		t.Errorf("expected 4 paths, got %d", got)
	}
	if SnapshotToSVG(nil, 10, 10) != "" {
		t.Error("nil snapshot should render nothing")
	}
}
