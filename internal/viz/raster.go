package viz

import (
	"image"
	"image/color"
	"io"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/scribblepad/internal/render"
)

// At 72 dpi one vg point is one pixel.
const pixelDPI = 72

// Raster is an anti-aliased pixel surface backed by a gonum vgimg canvas.
// Screen coordinates have their origin at the top-left corner.
type Raster struct {
	canvas *vgimg.Canvas
	w, h   float64
	bg     color.Color
	line   vg.Length
}

func NewRaster(w, h float64, bg color.Color) *Raster {
	if bg == nil {
		bg = color.White
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w), vg.Length(h)),
		vgimg.UseDPI(pixelDPI),
		vgimg.UseBackgroundColor(bg),
	)
	return &Raster{canvas: c, w: w, h: h, bg: bg, line: 1}
}

// SetLineWidth sets the stroke width in pixels.
func (r *Raster) SetLineWidth(px float64) {
	if px > 0 {
		r.line = vg.Length(px)
	}
}

func (r *Raster) Stroke(from, to render.Point, c render.Color) {
	if !from.IsValid() || !to.IsValid() {
		return
	}
	var p vg.Path
	p.Move(r.point(from))
	p.Line(r.point(to))
	r.canvas.SetLineWidth(r.line)
	r.canvas.SetColor(c.RGBA())
	r.canvas.Stroke(p)
}

func (r *Raster) Clear() {
	w, h := vg.Length(r.w), vg.Length(r.h)
	var p vg.Path
	p.Move(vg.Point{})
	p.Line(vg.Point{X: w})
	p.Line(vg.Point{X: w, Y: h})
	p.Line(vg.Point{Y: h})
	p.Close()
	r.canvas.SetColor(r.bg)
	r.canvas.Fill(p)
}

func (r *Raster) Size() (float64, float64) { return r.w, r.h }

func (r *Raster) Image() image.Image { return r.canvas.Image() }

func (r *Raster) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: r.canvas}.WriteTo(w)
	return err
}

func (r *Raster) point(p render.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(r.h - p.Y)}
}
