package analysis

import (
	"strings"

	"github.com/san-kum/qwave/internal/sim"
)

// Point is one sample of the expectation-value trajectory.
type Point struct {
	Step int
	X, P float64
}

// Portrait records (⟨x⟩, ⟨p⟩) every Every steps. For a packet in a
// harmonic potential the points trace an ellipse.
type Portrait struct {
	Every  int
	Points []Point
}

func NewPortrait(every int) *Portrait {
	if every < 1 {
		every = 1
	}
	return &Portrait{Every: every}
}

func (p *Portrait) OnStep(step int, e *sim.Engine) {
	if step%p.Every != 0 {
		return
	}
	psi := e.Wavefunction()
	p.Points = append(p.Points, Point{
		Step: step,
		X:    PositionMean(psi, e.Positions()),
		P:    Momentum(psi, e.Grid().Length()).Mean(),
	})
}

// Xs returns the ⟨x⟩ series.
func (p *Portrait) Xs() []float64 {
	xs := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i] = pt.X
	}
	return xs
}

// ToASCII draws the trajectory in the x–p plane.
func (p *Portrait) ToASCII(width, height int) string {
	if len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].P, p.Points[0].P
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.P), max(maxY, pt.P)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.P-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
