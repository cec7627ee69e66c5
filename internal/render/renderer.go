package render

// Renderer chains segments into a continuous path. It remembers the last
// plotted point (the cursor) and the current stroke color.
type Renderer struct {
	surface Surface
	stride  int

	cursor    Point
	hasCursor bool
	pen       Color
	count     int
	drawn     int
}

// NewRenderer draws onto s. The stroke color is refreshed every stride
// segments; a stride of 2 groups segments in pairs sharing one color.
func NewRenderer(s Surface, stride int) *Renderer {
	if stride < 1 {
		stride = 1
	}
	return &Renderer{surface: s, stride: stride}
}

func (r *Renderer) Surface() Surface { return r.surface }

// Cursor returns the last plotted point, if any.
func (r *Renderer) Cursor() (Point, bool) { return r.cursor, r.hasCursor }

// Pen returns the color used for the most recent segment.
func (r *Renderer) Pen() Color { return r.pen }

// Drawn returns how many segments were stroked since the last Reset.
func (r *Renderer) Drawn() int { return r.drawn }

// Reset moves the cursor to p without drawing and restarts color grouping.
func (r *Renderer) Reset(p Point) {
	r.cursor = p
	r.hasCursor = true
	r.count = 0
	r.drawn = 0
}

// Forget drops the cursor entirely; the next segment only positions the pen.
func (r *Renderer) Forget() {
	r.cursor = Point{}
	r.hasCursor = false
	r.count = 0
	r.drawn = 0
}

// DrawSegment strokes cursor→to in c (subject to the color stride) and
// moves the cursor to to. Non-finite points are skipped.
func (r *Renderer) DrawSegment(to Point, c Color) {
	if !to.IsValid() {
		return
	}
	if !r.hasCursor {
		r.Reset(to)
		return
	}
	if r.count%r.stride == 0 {
		r.pen = c
	}
	r.count++
	r.surface.Stroke(r.cursor, to, r.pen)
	r.cursor = to
	r.drawn++
}

// Clear wipes the surface. The cursor is kept so drawing continues from
// the last point.
func (r *Renderer) Clear() {
	r.surface.Clear()
}
