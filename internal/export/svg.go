package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/san-kum/scribblepad/internal/render"
	"github.com/san-kum/scribblepad/internal/viz"
)

// SVG is a vector render.Surface. Every stroke becomes one path element;
// Clear starts a fresh document.
type SVG struct {
	canvas  *vgsvg.Canvas
	w, h    float64
	bg      color.Color
	line    vg.Length
	strokes int
}

// NewSVG creates a w x h document. A nil bg leaves the background
// transparent.
func NewSVG(w, h float64, bg color.Color) *SVG {
	s := &SVG{w: w, h: h, bg: bg, line: 1}
	s.Clear()
	return s
}

func (s *SVG) SetLineWidth(px float64) {
	if px > 0 {
		s.line = vg.Length(px)
	}
}

func (s *SVG) Stroke(from, to render.Point, c render.Color) {
	if !from.IsValid() || !to.IsValid() {
		return
	}
	var p vg.Path
	p.Move(vg.Point{X: vg.Length(from.X), Y: vg.Length(s.h - from.Y)})
	p.Line(vg.Point{X: vg.Length(to.X), Y: vg.Length(s.h - to.Y)})
	s.canvas.SetLineWidth(s.line)
	s.canvas.SetColor(c.RGBA())
	s.canvas.Stroke(p)
	s.strokes++
}

func (s *SVG) Clear() {
	w, h := vg.Length(s.w), vg.Length(s.h)
	s.canvas = vgsvg.NewWith(vgsvg.UseWH(w, h))
	s.strokes = 0
	if s.bg == nil {
		return
	}
	var p vg.Path
	p.Move(vg.Point{})
	p.Line(vg.Point{X: w})
	p.Line(vg.Point{X: w, Y: h})
	p.Line(vg.Point{Y: h})
	p.Close()
	s.canvas.SetColor(s.bg)
	s.canvas.Fill(p)
}

func (s *SVG) Size() (float64, float64) { return s.w, s.h }

// Strokes returns the number of segments since the last Clear.
func (s *SVG) Strokes() int { return s.strokes }

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	return s.canvas.WriteTo(w)
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in
// the color of its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			fill := canvas.Colors[row][col].Hex()

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !canvas.Lit(x, y) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
