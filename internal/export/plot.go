package export

import (
	"errors"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var ErrPlotData = errors.New("export: plot data invalid")

// Series is one labelled line of a chart.
type Series struct {
	Label string
	X, Y  []float64
}

// Chart describes a line chart rendered at a fixed size in inches.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  float64
	Height float64
	Series []Series
}

func (c Chart) plot() (*plot.Plot, error) {
	if len(c.Series) == 0 {
		return nil, ErrPlotData
	}
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())

	for i, s := range c.Series {
		if len(s.X) != len(s.Y) || len(s.X) == 0 {
			return nil, ErrPlotData
		}
		pts := make(plotter.XYs, len(s.X))
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		if i > 0 {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}
	return p, nil
}

// WritePNG draws the chart and encodes it as PNG.
func (c Chart) WritePNG(w io.Writer) error {
	p, err := c.plot()
	if err != nil {
		return err
	}
	width, height := c.Width, c.Height
	if width <= 0 || height <= 0 {
		width, height = 8, 4
	}
	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch),
		vgimg.UseDPI(96),
	)
	p.Draw(draw.New(canvas))
	_, err = vgimg.PngCanvas{Canvas: canvas}.WriteTo(w)
	return err
}
