package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/physics"
)

type decay struct{}

func (d *decay) Name() string { return "decay" }
func (d *decay) Derive(s dynamo.State) dynamo.State {
	return dynamo.State{X: -s.X, Y: -s.Y, Z: -s.Z}
}

type blowup struct{}

func (b *blowup) Name() string { return "blowup" }
func (b *blowup) Derive(s dynamo.State) dynamo.State {
	return dynamo.State{X: math.Inf(1)}
}

func closeTo(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestEulerGoldenSteps(t *testing.T) {
	tests := []struct {
		name    string
		sys     dynamo.System
		x0      dynamo.State
		dt      float64
		unitVel float64
		want    dynamo.State
		wantVel float64
	}{
		{
			name: "lorenz", sys: physics.NewLorenz(),
			x0: dynamo.State{X: -7.13, Y: -7.11, Z: 25.41}, dt: 0.003, unitVel: 100,
			want:    dynamo.State{X: -7.1294, Y: -7.1440701, Z: 25.3588029},
			wantVel: 0.205000671067,
		},
		{
			name: "chen", sys: physics.NewChen(),
			x0: dynamo.State{X: 1.96, Y: 2.04, Z: 12.51}, dt: 0.0004, unitVel: 1500,
			want:    dynamo.State{X: 1.9728, Y: 2.0763216, Z: 12.3758736},
			wantVel: 0.232576091512,
		},
		{
			name: "halvorsen", sys: physics.NewHalvorsen(),
			x0: dynamo.State{X: -1.48, Y: -1.51, Z: 2.04}, dt: 0.001, unitVel: 60,
			want:    dynamo.State{X: -1.4823281, Y: -1.5142876, Z: 2.0469136},
			wantVel: 0.141029378667,
		},
	}

	integ := NewEuler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, err := integ.Advance(tt.sys, tt.x0, tt.dt, tt.unitVel)
			if err != nil {
				t.Fatalf("advance failed: %v", err)
			}
			got := step.State
			if !closeTo(got.X, tt.want.X, 1e-9) || !closeTo(got.Y, tt.want.Y, 1e-9) || !closeTo(got.Z, tt.want.Z, 1e-9) {
				t.Errorf("next state = %v, want %v", got, tt.want)
			}
			if !closeTo(step.Velocity, tt.wantVel, 1e-9) {
				t.Errorf("velocity = %.12f, want %.12f", step.Velocity, tt.wantVel)
			}
		})
	}
}

func TestEulerAccuracy(t *testing.T) {
	integ := NewEuler()
	dt := 0.001
	steps := 1000

	x, err := integ.Integrate(&decay{}, dynamo.State{X: 1, Y: 2, Z: 3}, dt, steps)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	expected := math.Exp(-float64(steps) * dt)
	if math.Abs(x.X-expected) > 1e-3 {
		t.Errorf("x error too large: got %.6f, expected %.6f", x.X, expected)
	}
	if math.Abs(x.Z-3*expected) > 3e-3 {
		t.Errorf("z error too large: got %.6f, expected %.6f", x.Z, 3*expected)
	}
}

func TestEulerUnstable(t *testing.T) {
	integ := NewEuler()
	x0 := dynamo.State{X: 1, Y: 1, Z: 1}

	step, err := integ.Advance(&blowup{}, x0, 0.01, 1)
	if !errors.Is(err, dynamo.ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	if step.State != x0 {
		t.Errorf("unstable step should keep previous state, got %v", step.State)
	}

	_, err = integ.Integrate(&blowup{}, x0, 0.01, 10)
	var se *dynamo.StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected *dynamo.StepError, got %T", err)
	}
	if se.Step != 0 {
		t.Errorf("expected failure at step 0, got %d", se.Step)
	}
}

func TestEulerLargeDtDiverges(t *testing.T) {
	integ := NewEuler()
	_, err := integ.Integrate(physics.NewChen(), dynamo.State{X: 1.96, Y: 2.04, Z: 12.51}, 0.5, 2000)
	if !errors.Is(err, dynamo.ErrUnstable) {
		t.Errorf("expected chen with dt=0.5 to diverge, got %v", err)
	}
}
