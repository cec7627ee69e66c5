package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/integrators"
)

var ErrTooShort = errors.New("analysis: not enough steps")

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
//  1. Run a reference and a perturbed trajectory with Euler steps
//  2. After each step add ln(|δ|/d0) and pull the perturbed one back to d0
//  3. λ ≈ sum / (steps * dt)
func LyapunovExponent(sys dynamo.System, x0 dynamo.State, dt float64, steps int, d0 float64) (float64, error) {
	if steps < 1 {
		return 0, ErrTooShort
	}
	if d0 <= 0 {
		d0 = 1e-8
	}

	euler := integrators.NewEuler()
	x := x0
	xp := x0.Add(dynamo.State{X: d0})
	sumLog := 0.0

	for i := 0; i < steps; i++ {
		a, err := euler.Advance(sys, x, dt, 1)
		if err != nil {
			return 0, &dynamo.StepError{Step: i, Time: float64(i) * dt, State: x, Wrapped: err}
		}
		b, err := euler.Advance(sys, xp, dt, 1)
		if err != nil {
			return 0, &dynamo.StepError{Step: i, Time: float64(i) * dt, State: xp, Wrapped: err}
		}
		x = a.State

		delta := b.State.Sub(x)
		sep := delta.Norm()
		if sep == 0 {
			// Trajectories merged numerically; restart the perturbation.
			xp = x.Add(dynamo.State{X: d0})
			continue
		}
		sumLog += math.Log(sep / d0)
		xp = x.Add(delta.Scale(d0 / sep))
	}

	return sumLog / (float64(steps) * dt), nil
}
