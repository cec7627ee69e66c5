package dynamo

import (
	"fmt"
	"math"
)

// State is a position in a 3D phase space.
type State struct {
	X, Y, Z float64
}

func (s State) IsValid() bool {
	return isFinite(s.X) && isFinite(s.Y) && isFinite(s.Z)
}

func (s State) Norm() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

func (s State) Add(o State) State {
	return State{s.X + o.X, s.Y + o.Y, s.Z + o.Z}
}

func (s State) Sub(o State) State {
	return State{s.X - o.X, s.Y - o.Y, s.Z - o.Z}
}

func (s State) Scale(f float64) State {
	return State{s.X * f, s.Y * f, s.Z * f}
}

// Dot returns the weighted sum w.X*s.X + w.Y*s.Y + w.Z*s.Z.
func (s State) Dot(w State) float64 {
	return s.X*w.X + s.Y*w.Y + s.Z*w.Z
}

func (s State) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", s.X, s.Y, s.Z)
}

// System is an autonomous three-dimensional ODE.
type System interface {
	Name() string
	Derive(s State) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
