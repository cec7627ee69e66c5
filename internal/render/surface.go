package render

import "math"

// Point is a screen-space position in pixels.
type Point struct {
	X, Y float64
}

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Surface is anything segments can be stroked onto.
type Surface interface {
	Stroke(from, to Point, c Color)
	Clear()
	Size() (width, height float64)
}

// Segment is one stroked line.
type Segment struct {
	From, To Point
	Color    Color
}

// Recorder is an in-memory Surface that keeps every stroke.
type Recorder struct {
	W, H     float64
	Segments []Segment
	Clears   int
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Stroke(from, to Point, c Color) {
	r.Segments = append(r.Segments, Segment{From: from, To: to, Color: c})
}

func (r *Recorder) Clear() {
	r.Segments = r.Segments[:0]
	r.Clears++
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }
