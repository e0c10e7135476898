package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for grid and state operations.
var (
	// ErrInvalidGrid indicates a grid with fewer than two points or a
	// non-positive length.
	ErrInvalidGrid = errors.New("quantum: invalid grid (need N >= 2 and L > 0)")

	// ErrDimensionMismatch indicates an array whose length differs from the grid size.
	ErrDimensionMismatch = errors.New("quantum: dimension mismatch between array and grid")

	// ErrDegenerateState indicates a wavefunction with zero (or non-finite) norm.
	ErrDegenerateState = errors.New("quantum: degenerate state (zero norm)")

	// ErrParameterBounds indicates a physical constant outside its valid range.
	ErrParameterBounds = errors.New("quantum: parameter out of valid bounds")
)

// GridError reports the rejected grid parameters.
type GridError struct {
	N int
	L float64
}

func (e *GridError) Error() string {
	return fmt.Sprintf("%v: N=%d L=%g", ErrInvalidGrid, e.N, e.L)
}

func (e *GridError) Unwrap() error {
	return ErrInvalidGrid
}

// DimensionError reports which array had the wrong length.
type DimensionError struct {
	What string
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: %s has %d entries, grid has %d", ErrDimensionMismatch, e.What, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

// CheckLength returns a *DimensionError when got != want.
func CheckLength(what string, got, want int) error {
	if got != want {
		return &DimensionError{What: what, Got: got, Want: want}
	}
	return nil
}
