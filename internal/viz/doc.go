// Package viz provides the drawing surfaces for attractor trajectories.
//
//   - [Canvas]: braille dot matrix with per-cell color for terminals
//   - [Raster]: anti-aliased PNG surface (gonum vgimg)
//   - [Model]: interactive Bubble Tea view driving a playback controller
//
// # Key Bindings
//
//	1 2 3 - Chen, Lorenz, Halvorsen
//	f     - fast-forward
//	+ -   - faster, slower
//	n     - normal speed
//	c     - clear the canvas
//	r     - reload (stop and wipe)
//	t     - cycle sidebar themes
//	q     - quit
package viz
