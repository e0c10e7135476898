package quantum

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is an immutable set of N periodic sample positions spaced uniformly
// over [-L/2, L/2). The last point does not repeat the first.
type Grid struct {
	n      int
	length float64
	dx     float64
	x      []float64
}

// NewGrid builds an N-point periodic grid of length L.
func NewGrid(n int, length float64) (*Grid, error) {
	if n < 2 || !(length > 0) || math.IsInf(length, 0) {
		return nil, &GridError{N: n, L: length}
	}

	// Span includes the closing endpoint; periodic grids drop it.
	x := floats.Span(make([]float64, n+1), -length/2, length/2)

	return &Grid{
		n:      n,
		length: length,
		dx:     length / float64(n),
		x:      x[:n:n],
	}, nil
}

func (g *Grid) N() int          { return g.n }
func (g *Grid) Length() float64 { return g.length }
func (g *Grid) Dx() float64     { return g.dx }

// Position returns the i-th sample position.
func (g *Grid) Position(i int) float64 { return g.x[i] }

// Positions returns a copy of the sample positions.
func (g *Grid) Positions() []float64 {
	x := make([]float64, g.n)
	copy(x, g.x)
	return x
}
