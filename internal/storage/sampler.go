package storage

import "github.com/san-kum/scribblepad/internal/playback"

// Sampler keeps every n-th step of a run. Observe has the signature of a
// playback.OnStep callback.
type Sampler struct {
	every   int
	run     uint64
	samples []Sample
}

func NewSampler(every int) *Sampler {
	if every < 1 {
		every = 1
	}
	return &Sampler{every: every}
}

// Observe records snap when its step count is a multiple of the sampling
// interval. A new run generation discards what was collected so far.
func (s *Sampler) Observe(snap playback.Snapshot) {
	if snap.Run != s.run {
		s.run = snap.Run
		s.samples = s.samples[:0]
	}
	if snap.Steps%s.every != 0 {
		return
	}
	s.samples = append(s.samples, Sample{Time: snap.Elapsed, State: snap.State, Velocity: snap.Velocity})
}

func (s *Sampler) Every() int        { return s.every }
func (s *Sampler) Samples() []Sample { return s.samples }
