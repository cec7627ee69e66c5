package render

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an 8-bit RGB stroke color.
type Color struct {
	R, G, B uint8
}

func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// Hex returns the color as #rrggbb.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Palette maps normalized velocity to a red-hot / blue-cold gradient:
// red grows with velocity, blue with (Pivot - velocity).
type Palette struct {
	Gain  float64
	Pivot float64
}

func DefaultPalette() Palette { return Palette{Gain: 240, Pivot: 1.5} }

// Color returns the stroke color for a normalized velocity. Channels are
// rounded and clamped to [0, 255]; NaN maps to the cold end.
func (p Palette) Color(vel float64) Color {
	if math.IsNaN(vel) {
		vel = 0
	}
	return Color{
		R: channel(p.Gain * vel),
		B: channel(p.Gain * (p.Pivot - vel)),
	}
}

func channel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
