package physics

import (
	"fmt"

	"github.com/san-kum/scribblepad/internal/dynamo"
)

// Halvorsen is a cyclically symmetric attractor; each derivative is the
// previous one with the coordinates rotated.
type Halvorsen struct{ alpha float64 }

func NewHalvorsen() *Halvorsen    { return &Halvorsen{alpha: 1.4} }
func (h *Halvorsen) Name() string { return "halvorsen" }

func (h *Halvorsen) Derive(s dynamo.State) dynamo.State {
	a := h.alpha
	return dynamo.State{
		X: -a*s.X - 4*s.Y - 4*s.Z - s.Y*s.Y,
		Y: -a*s.Y - 4*s.Z - 4*s.X - s.Z*s.Z,
		Z: -a*s.Z - 4*s.X - 4*s.Y - s.X*s.X,
	}
}

func (h *Halvorsen) GetParams() map[string]float64 {
	return map[string]float64{"alpha": h.alpha}
}

func (h *Halvorsen) SetParam(n string, v float64) error {
	if n != "alpha" {
		return fmt.Errorf("halvorsen %q: %w", n, dynamo.ErrUnknownParam)
	}
	if v <= 0 {
		return fmt.Errorf("halvorsen alpha=%g: %w", v, dynamo.ErrParameterBounds)
	}
	h.alpha = v
	return nil
}
