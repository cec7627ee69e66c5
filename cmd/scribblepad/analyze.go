package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/scribblepad/internal/analysis"
	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/export"
	"github.com/san-kum/scribblepad/internal/integrators"
	"github.com/san-kum/scribblepad/internal/preset"
)

var (
	analyzeSteps int
	sweepSpec    string
	sectionSpec  string
	spectrumPNG  string
	workers      int
)

var axes = map[string]analysis.Axis{"x": analysis.AxisX, "y": analysis.AxisY, "z": analysis.AxisZ}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [preset]",
		Short: "Lyapunov exponent, spectrum and Poincaré section of a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	cmd.Flags().IntVar(&analyzeSteps, "steps", 50000, "integration steps")
	cmd.Flags().StringVar(&sweepSpec, "sweep", "", "sweep a parameter, e.g. rho:20:40:21")
	cmd.Flags().StringVar(&sectionSpec, "section", "z", "Poincaré plane axis[=value], e.g. z=27 (empty disables)")
	cmd.Flags().StringVar(&spectrumPNG, "png", "", "write the power spectrum of x(t) to this PNG")
	cmd.Flags().IntVar(&workers, "workers", 0, "sweep workers (default NumCPU)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger().Named("analyze")
	p, err := preset.Lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s), dt=%g, %d steps\n\n", p.Name(), p.Label, p.Dt, analyzeSteps)

	lambda, err := analysis.LyapunovExponent(p.System, p.Initial, p.Dt, analyzeSteps, 0)
	if err != nil {
		return err
	}
	fmt.Printf("largest Lyapunov exponent: %.4f\n", lambda)

	xs, err := sampleX(p, analyzeSteps)
	if err != nil {
		return err
	}
	freq, power := analysis.DominantFrequency(xs, p.Dt)
	fmt.Printf("dominant frequency of x(t): %.4f (power %.2f)\n", freq, power)

	spectrum := analysis.PowerSpectrum(xs)
	if len(spectrum) > 1 {
		shown := spectrum[1:min(len(spectrum), 400)]
		fmt.Println()
		fmt.Println(asciigraph.Plot(shown,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (x)"),
		))
	}
	if spectrumPNG != "" {
		if err := writeSpectrum(spectrumPNG, p, spectrum, len(xs)); err != nil {
			return err
		}
		log.Info("spectrum written", zap.String("path", spectrumPNG))
	}

	if sectionSpec != "" {
		if err := printSection(p, sectionSpec); err != nil {
			return err
		}
	}

	if sweepSpec != "" {
		return runSweep(cmd, args[0], sweepSpec, log)
	}
	return nil
}

func sampleX(p preset.Preset, steps int) ([]float64, error) {
	euler := integrators.NewEuler()
	xs := make([]float64, 0, steps)
	x := p.Initial
	for i := 0; i < steps; i++ {
		step, err := euler.Advance(p.System, x, p.Dt, p.UnitVel)
		if err != nil {
			return nil, &dynamo.StepError{Step: i, Time: float64(i) * p.Dt, State: x, Wrapped: err}
		}
		x = step.State
		xs = append(xs, x.X)
	}
	return xs, nil
}

func writeSpectrum(path string, p preset.Preset, spectrum []float64, n int) error {
	freqs := make([]float64, len(spectrum))
	for k := range freqs {
		freqs[k] = float64(k) / (float64(n) * p.Dt)
	}
	chart := export.Chart{
		Title:  p.Name() + " power spectrum",
		XLabel: "frequency",
		YLabel: "|X(f)|",
		Width:  8,
		Height: 4,
		Series: []export.Series{{X: freqs, Y: spectrum}},
	}
	return writeFile(path, func(w io.Writer) error { return chart.WritePNG(w) })
}

// printSection parses "axis" or "axis=value"; without a value the plane
// passes through the initial state.
func printSection(p preset.Preset, spec string) error {
	name, val, hasVal := strings.Cut(spec, "=")
	cross, ok := axes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("invalid section axis %q", name)
	}
	threshold := cross.Of(p.Initial)
	if hasVal {
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid section value %q: %w", val, err)
		}
		threshold = v
	}

	u, v := analysis.AxisX, analysis.AxisY
	switch cross {
	case analysis.AxisX:
		u, v = analysis.AxisY, analysis.AxisZ
	case analysis.AxisY:
		u, v = analysis.AxisX, analysis.AxisZ
	}

	points, err := analysis.PoincareSection(p.System, p.Initial, p.Dt, analyzeSteps, cross, threshold, u, v)
	if err != nil {
		return err
	}
	fmt.Printf("\nPoincaré section %s=%g: %d crossings\n", name, threshold, len(points))
	fmt.Print(analysis.ScatterASCII(points, 60, 20))
	return nil
}

// runSweep parses "param:min:max:count" and prints the exponent per value.
func runSweep(cmd *cobra.Command, name, spec string, log *zap.Logger) error {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return fmt.Errorf("invalid sweep %q: want param:min:max:count", spec)
	}
	lo, err1 := strconv.ParseFloat(parts[1], 64)
	hi, err2 := strconv.ParseFloat(parts[2], 64)
	count, err3 := strconv.Atoi(parts[3])
	if err1 != nil || err2 != nil || err3 != nil || count < 2 {
		return fmt.Errorf("invalid sweep %q: want param:min:max:count", spec)
	}

	p, err := preset.Lookup(name)
	if err != nil {
		return err
	}
	points, err := analysis.LyapunovSweep(cmd.Context(), analysis.SweepConfig{
		NewSystem: func() dynamo.System {
			fresh, _ := preset.Lookup(name)
			return fresh.System
		},
		Param:   parts[0],
		Min:     lo,
		Max:     hi,
		Count:   count,
		Initial: p.Initial,
		Dt:      p.Dt,
		Steps:   analyzeSteps,
		Workers: workers,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nsweep %s in [%g, %g]\n", parts[0], lo, hi)
	exps := make([]float64, 0, len(points))
	for _, pt := range points {
		if pt.Err != nil {
			log.Warn("sweep point failed", zap.Float64("param", pt.Param), zap.Error(pt.Err))
			fmt.Printf("  %10.4f  diverged\n", pt.Param)
			continue
		}
		exps = append(exps, pt.Exponent)
		fmt.Printf("  %10.4f  %8.4f\n", pt.Param, pt.Exponent)
	}
	if len(exps) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(exps,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("largest exponent vs "+parts[0]),
		))
	}
	return nil
}
