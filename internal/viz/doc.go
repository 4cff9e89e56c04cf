// Package viz renders running simulations in the terminal.
//
// A Bubble Tea [Model] steps a simulation at a fixed frame rate and
// draws the particle positions onto a Braille [Canvas] through an
// orthographic [Projection], next to a stats panel with a total-energy
// sparkline.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	X/Y   - Rotate the camera
//	+/-   - Zoom
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
