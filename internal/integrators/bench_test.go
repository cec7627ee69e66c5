package integrators

import (
	"testing"

	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/physics"
)

func BenchmarkEulerLorenz(b *testing.B) {
	integrator := NewEuler()
	sys := physics.NewLorenz()
	x := dynamo.State{X: -7.13, Y: -7.11, Z: 25.41}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		step, _ := integrator.Advance(sys, x, 0.003, 100)
		x = step.State
	}
}

func BenchmarkEulerHalvorsen(b *testing.B) {
	integrator := NewEuler()
	sys := physics.NewHalvorsen()
	x := dynamo.State{X: -1.48, Y: -1.51, Z: 2.04}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		step, _ := integrator.Advance(sys, x, 0.001, 60)
		x = step.State
	}
}
