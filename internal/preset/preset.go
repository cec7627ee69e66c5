package preset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/physics"
)

// ErrUnknown is returned when a preset name does not match any attractor.
var ErrUnknown = errors.New("preset: unknown attractor")

// Kind selects one of the built-in attractors.
type Kind int

const (
	Lorenz Kind = iota
	Chen
	Halvorsen
)

var kindNames = [...]string{"lorenz", "chen", "halvorsen"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every attractor in menu order.
func Kinds() []Kind { return []Kind{Chen, Lorenz, Halvorsen} }

// ParseKind resolves a case-insensitive attractor name.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, kn := range kindNames {
		if kn == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Viewport is the pixel size of the drawing surface at startup.
type Viewport struct {
	Width, Height float64
}

// Scale is the factor that fits a 1260x968 reference layout into the viewport.
func (v Viewport) Scale() float64 {
	return math.Min(v.Height/968, v.Width/1260)
}

// Axis maps a model-space state to one screen coordinate:
//
//	screen = size*Anchor + Gain*s*(Weights·state + Offset - ScaledOffset*s)
//
// where s is the viewport scale and size the viewport extent on that axis.
type Axis struct {
	Anchor       float64
	Gain         float64
	Weights      dynamo.State
	Offset       float64
	ScaledOffset float64
}

func (a Axis) Map(st dynamo.State, size, scale float64) float64 {
	return size*a.Anchor + a.Gain*scale*(st.Dot(a.Weights)+a.Offset-a.ScaledOffset*scale)
}

// Preset bundles everything the controller needs for one attractor.
type Preset struct {
	Kind    Kind
	Label   string
	Initial dynamo.State
	Dt      float64
	UnitVel float64
	System  dynamo.System
	X, Y    Axis
	// BaseSteps is the step budget at scale 1.
	BaseSteps int
}

func (p Preset) Name() string { return p.Kind.String() }

// Project maps a state to screen coordinates for the given viewport.
func (p Preset) Project(st dynamo.State, vp Viewport) (float64, float64) {
	s := vp.Scale()
	return p.X.Map(st, vp.Width, s), p.Y.Map(st, vp.Height, s)
}

// StepBudget scales BaseSteps by s^0.2 so small screens run a little shorter.
func (p Preset) StepBudget(vp Viewport) int {
	s := vp.Scale()
	if s <= 0 {
		return 0
	}
	return int(math.Round(float64(p.BaseSteps) * math.Pow(s, 0.2)))
}

// Get builds a fresh preset. Each call returns its own System so callers
// may tune parameters without affecting others.
func Get(k Kind) (Preset, error) {
	switch k {
	case Lorenz:
		return Preset{
			Kind:      Lorenz,
			Label:     "butterfly attractor",
			Initial:   dynamo.State{X: -7.13, Y: -7.11, Z: 25.41},
			Dt:        0.003,
			UnitVel:   100,
			System:    physics.NewLorenz(),
			X:         Axis{Anchor: 0.5, Gain: 30, Weights: dynamo.State{X: 1}},
			Y:         Axis{Anchor: 0.5, Gain: -18, Weights: dynamo.State{Z: 1}, ScaledOffset: 25},
			BaseSteps: 600000,
		}, nil
	case Chen:
		return Preset{
			Kind:      Chen,
			Label:     "double scroll",
			Initial:   dynamo.State{X: 1.96, Y: 2.04, Z: 12.51},
			Dt:        0.0004,
			UnitVel:   1500,
			System:    physics.NewChen(),
			X:         Axis{Anchor: 0.5, Gain: 20, Weights: dynamo.State{X: 1}},
			Y:         Axis{Anchor: 0.5, Gain: -20, Weights: dynamo.State{Z: 1}, ScaledOffset: 20},
			BaseSteps: 200000,
		}, nil
	case Halvorsen:
		// Oblique view: x and y are blended so the three lobes separate.
		return Preset{
			Kind:      Halvorsen,
			Label:     "cyclic symmetry",
			Initial:   dynamo.State{X: -1.48, Y: -1.51, Z: 2.04},
			Dt:        0.001,
			UnitVel:   60,
			System:    physics.NewHalvorsen(),
			X:         Axis{Anchor: 1 / 2.72, Gain: 10, Weights: dynamo.State{X: -0.86, Y: 1.86}, Offset: 20},
			Y:         Axis{Anchor: 1 / 2.72, Gain: -20, Weights: dynamo.State{Z: 1}},
			BaseSteps: 900000,
		}, nil
	}
	return Preset{}, fmt.Errorf("%w: %v", ErrUnknown, k)
}

// Lookup is Get by name.
func Lookup(name string) (Preset, error) {
	k, err := ParseKind(name)
	if err != nil {
		return Preset{}, err
	}
	return Get(k)
}

// List returns all presets in menu order.
func List() []Preset {
	out := make([]Preset, 0, len(kindNames))
	for _, k := range Kinds() {
		p, _ := Get(k)
		out = append(out, p)
	}
	return out
}
