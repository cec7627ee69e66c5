// Package analysis characterizes attractor trajectories.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [LyapunovSweep]: the same exponent across a parameter range, in parallel
//   - [PowerSpectrum], [DominantFrequency]: FFT of a sampled coordinate
//   - [PoincareSection]: plane crossings, plotted with [ScatterASCII]
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(sys, x0, dt, steps, 1e-8)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
