package physics

import (
	"fmt"

	"github.com/san-kum/scribblepad/internal/dynamo"
)

// Chen is the time-scaled Chen system used by the visualizer: the classic
// a=40, b=3, c=28 coefficients multiplied by 10.
type Chen struct{ a, b, c, d float64 }

func NewChen() *Chen         { return &Chen{a: 400, b: 30, c: 280, d: 120} }
func (c *Chen) Name() string { return "chen" }

func (c *Chen) Derive(s dynamo.State) dynamo.State {
	return dynamo.State{
		X: c.a * (s.Y - s.X),
		Y: -c.d*s.X - 10*s.X*s.Z + c.c*s.Y,
		Z: 10*s.X*s.Y - c.b*s.Z,
	}
}

func (c *Chen) GetParams() map[string]float64 {
	return map[string]float64{"a": c.a, "b": c.b, "c": c.c, "d": c.d}
}

func (c *Chen) SetParam(n string, v float64) error {
	switch n {
	case "a":
		c.a = v
	case "b":
		c.b = v
	case "c":
		c.c = v
	case "d":
		c.d = v
	default:
		return fmt.Errorf("chen %q: %w", n, dynamo.ErrUnknownParam)
	}
	return nil
}
