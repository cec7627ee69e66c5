package main

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/scribblepad/internal/playback"
	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/render"
	"github.com/san-kum/scribblepad/internal/storage"
)

var (
	traceSteps  int
	sampleEvery int
	noPlot      bool
)

// discard is a surface for runs that only record the trajectory.
type discard struct{ w, h float64 }

func (discard) Stroke(from, to render.Point, c render.Color) {}
func (discard) Clear()                                       {}
func (d discard) Size() (float64, float64)                   { return d.w, d.h }

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [preset]",
		Short: "record a trajectory and save it as a run",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	cmd.Flags().IntVar(&traceSteps, "steps", 20000, "number of steps to record")
	cmd.Flags().IntVar(&sampleEvery, "every", 0, "keep every n-th step (default from config)")
	cmd.Flags().StringSliceVar(&cueSpecs, "at", nil, "apply a command at a step count, e.g. 5000:faster")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plots")
	return cmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	log := logger().Named("trace")
	kind, err := preset.ParseKind(args[0])
	if err != nil {
		return err
	}
	cues, err := parseCues(cueSpecs)
	if err != nil {
		return err
	}
	every := cfg.Storage.SampleEvery
	if sampleEvery > 0 {
		every = sampleEvery
	}
	ctrl := newController(cfg, discard{cfg.Viewport.Width, cfg.Viewport.Height}, traceSteps, log)
	if _, err := ctrl.Select(kind); err != nil {
		return err
	}
	sampler := storage.NewSampler(every)
	player := playback.NewPlayer(ctrl,
		playback.WithBurst(cfg.Playback.Burst),
		playback.WithCues(cues...),
		playback.WithLogger(log),
		playback.OnStep(sampler.Observe),
		playback.ExitWhenIdle(),
	)

	runErr := player.Run(cmd.Context())
	if runErr != nil && ctrl.Phase() != playback.Diverged {
		return runErr
	}

	snap := ctrl.Snapshot()
	samples := sampler.Samples()
	st := storage.New(cfg.Storage.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Preset:      snap.Preset,
		Dt:          snap.Params.Dt,
		Steps:       snap.Steps,
		SampleEvery: every,
		Diverged:    snap.Phase == playback.Diverged,
		Metrics:     traceMetrics(samples, snap.Elapsed),
	}, samples)
	if err != nil {
		return err
	}
	log.Info("run saved", zap.String("id", id), zap.Int("samples", len(samples)))

	fmt.Printf("run id: %s\n", id)
	fmt.Printf("steps: %d  samples: %d  t=%.3f\n", snap.Steps, len(samples), snap.Elapsed)
	if !noPlot {
		printTracePlots(samples)
	}
	return runErr
}

func traceMetrics(samples []storage.Sample, elapsed float64) map[string]float64 {
	m := map[string]float64{"elapsed": elapsed}
	if len(samples) == 0 {
		return m
	}
	peak, sum := 0.0, 0.0
	for _, s := range samples {
		peak = math.Max(peak, s.Velocity)
		sum += s.Velocity
	}
	m["velocity_max"] = peak
	m["velocity_mean"] = sum / float64(len(samples))
	return m
}

func printTracePlots(samples []storage.Sample) {
	if len(samples) < 2 {
		return
	}
	series := map[string]func(storage.Sample) float64{
		"x(t)":     func(s storage.Sample) float64 { return s.State.X },
		"z(t)":     func(s storage.Sample) float64 { return s.State.Z },
		"velocity": func(s storage.Sample) float64 { return s.Velocity },
	}
	for _, name := range []string{"x(t)", "z(t)", "velocity"} {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = series[name](s)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
	}
}
