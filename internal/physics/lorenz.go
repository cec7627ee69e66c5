package physics

import (
	"fmt"

	"github.com/san-kum/scribblepad/internal/dynamo"
)

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz       { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l *Lorenz) Name() string { return "lorenz" }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State) dynamo.State {
	return dynamo.State{
		X: l.sigma * (s.Y - s.X),
		Y: s.X*(l.rho-s.Z) - s.Y,
		Z: s.X*s.Y - l.beta*s.Z,
	}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	default:
		return fmt.Errorf("lorenz %q: %w", n, dynamo.ErrUnknownParam)
	}
	return nil
}
