// Package physics provides the dynamical systems drawn by the visualizer.
//
// Each model implements [dynamo.System], defining the differential
// equations governing the system's evolution:
//
//   - [Lorenz]: butterfly attractor
//   - [Chen]: double-scroll attractor, time-scaled by 10
//   - [Halvorsen]: cyclically symmetric attractor
//
// All models also implement [dynamo.Configurable] for runtime parameter
// adjustment:
//
//	sys := physics.NewLorenz()
//	_ = sys.SetParam("rho", 99.96)
package physics
