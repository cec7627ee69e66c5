package integrators

import (
	"math"

	"github.com/san-kum/scribblepad/internal/dynamo"
)

// Step is the outcome of one integration step.
type Step struct {
	State dynamo.State
	// Derivative is the rate of change evaluated at the previous state.
	Derivative dynamo.State
	// Velocity is |Derivative| divided by the caller's velocity unit.
	Velocity float64
}

// Euler advances a state by derivative * dt with no correction terms.
// Large dt values are unstable; that is accepted for visual effect.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Advance performs one explicit Euler step. When the step produces a
// non-finite state the previous state is returned with dynamo.ErrUnstable.
func (e *Euler) Advance(sys dynamo.System, x dynamo.State, dt, unitVel float64) (Step, error) {
	dx := sys.Derive(x)
	vel := dx.Norm()
	if unitVel > 0 {
		vel /= unitVel
	}

	next := x.Add(dx.Scale(dt))
	if !next.IsValid() || math.IsNaN(vel) || math.IsInf(vel, 0) {
		return Step{State: x, Derivative: dx, Velocity: vel}, dynamo.ErrUnstable
	}
	return Step{State: next, Derivative: dx, Velocity: vel}, nil
}

// Integrate runs n steps from x0 and returns the final state. It stops at
// the first unstable step and reports it as a *dynamo.StepError.
func (e *Euler) Integrate(sys dynamo.System, x0 dynamo.State, dt float64, n int) (dynamo.State, error) {
	x := x0
	for i := 0; i < n; i++ {
		step, err := e.Advance(sys, x, dt, 1)
		if err != nil {
			return x, &dynamo.StepError{Step: i, Time: float64(i) * dt, State: x, Wrapped: err}
		}
		x = step.State
	}
	return x, nil
}
