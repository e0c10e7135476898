package export

import (
	"fmt"
	"strings"
)

// Trace colours, matching the live view.
const (
	ColorRe        = "#ff5f87"
	ColorIm        = "#5fafff"
	ColorAbs       = "#ffffff"
	ColorPotential = "#878787"
)

// SnapshotToSVG plots Re ψ, Im ψ and |ψ| against x, with the potential
// scaled into the same frame.
func SnapshotToSVG(snap *Snapshot, width, height int) string {
	if snap == nil || len(snap.X) < 2 {
		return ""
	}

	peak := 0.0
	for _, a := range snap.Abs {
		peak = max(peak, a)
	}
	if peak == 0 {
		peak = 1
	}
	minX, maxX := snap.X[0], snap.X[len(snap.X)-1]
	minY, maxY := -peak*1.1, peak*1.1

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	project := func(x, y float64) (float64, float64) {
		px := (x - minX) / (maxX - minX) * float64(width)
		py := float64(height) - (y-minY)/(maxY-minY)*float64(height)
		return px, py
	}

	if v := scaledPotential(snap.Potential, peak); v != nil {
		writePath(&sb, snap.X, v, ColorPotential, project)
	}
	writePath(&sb, snap.X, snap.Re, ColorRe, project)
	writePath(&sb, snap.X, snap.Im, ColorIm, project)
	writePath(&sb, snap.X, snap.Abs, ColorAbs, project)

	sb.WriteString(fmt.Sprintf(`<text x="8" y="16" fill="#d0d0d0" font-family="monospace" font-size="12">%s  step %d  E=%.6g</text>
`, snap.Method, snap.Step, snap.Energy))
	sb.WriteString("</svg>")
	return sb.String()
}

// scaledPotential maps the potential onto [0, peak]. A flat potential is
// not drawn.
func scaledPotential(v []float64, peak float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	lo, hi := v[0], v[0]
	for _, x := range v {
		lo, hi = min(lo, x), max(hi, x)
	}
	if hi == lo {
		return nil
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = (x - lo) / (hi - lo) * peak
	}
	return out
}

func writePath(sb *strings.Builder, xs, ys []float64, color string, project func(x, y float64) (float64, float64)) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
	for i := range xs {
		x, y := project(xs[i], ys[i])
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}
