// Package dynamo provides core simulation primitives for the attractor
// visualizer.
//
// The package defines the fundamental types shared by the integrator, the
// attractor presets and the playback controller:
//
//   - [State]: a point (x, y, z) in an attractor's phase space
//   - [System]: interface for autonomous 3D ODE systems (dX/dt = f(X))
//   - [Configurable]: runtime parameter access for systems
//   - [StepError]: an integration failure annotated with step context
//
// # Example
//
//	sys := physics.NewLorenz()
//	step, err := integrators.NewEuler().Advance(sys, dynamo.State{X: 1, Y: 1, Z: 1}, 0.003, 100)
//	if errors.Is(err, dynamo.ErrUnstable) {
//	    // stop drawing
//	}
//
// # Thread Safety
//
// Values in this package are plain data. Systems are immutable once built
// unless SetParam is called; callers own synchronization.
package dynamo
