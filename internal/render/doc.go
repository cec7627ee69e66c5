// Package render turns a sequence of screen points into colored strokes.
//
// A [Renderer] owns the render cursor and the pen color and draws onto any
// [Surface]. Colors come from a [Palette] keyed by normalized velocity.
package render
