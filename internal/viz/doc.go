// Package viz provides the live terminal view of a running engine.
//
// The view is a Bubble Tea program:
//
//   - [Model]: steps the engine between frames and plots Re ψ, Im ψ, |ψ|
//     and the potential on a Braille [Canvas]
//   - [RunInteractive]: preset picker that opens a [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset wavefunction and potential
//	M     - Cycle integration method
//	+/-   - Scale the Re/Im traces
//	Tab   - Select dt or m
//	↑/↓   - Adjust the selected constant by 5%
//	1-4   - Toggle Re, Im, |ψ| and V traces
//	S     - Write a JSON snapshot
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
