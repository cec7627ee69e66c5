// Package playback sequences attractor steps.
//
// A [Controller] is a synchronous state machine:
//
//	Idle --select--> Running --budget spent--> Done
//	                    |--non-finite state--> Diverged
//	any --reload--> Idle
//
// Every select and reload bumps a run generation. Steps are scheduled for
// the generation current at schedule time and become no-ops once it
// changes, so a reload never races with a step already in flight.
//
// A [Player] drives a Controller from one goroutine, applying queued
// [Command] values between steps and sleeping the controller's Delay
// (zero under fast-forward).
package playback
