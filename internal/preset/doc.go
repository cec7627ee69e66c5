// Package preset holds the data-driven descriptors for the three
// attractors: initial conditions, base time-step, velocity unit, screen
// projection and step budget.
//
// Presets are selected by [Kind]. A [Viewport] is fixed when the surface is
// created; projections are pure functions of the preset and that viewport.
package preset
