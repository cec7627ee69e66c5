package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/scribblepad/internal/export"
	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/viz"
)

var (
	snapshotPath  string
	snapshotScale float64
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [preset]",
		Short: "draw attractors interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write the final canvas as SVG on exit")
	cmd.Flags().Float64Var(&snapshotScale, "snapshot-scale", 4, "SVG pixels per braille dot")
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	log := logger().Named("play")

	opts := viz.Options{
		StepDelay: cfg.Playback.StepDelay,
		MaxSteps:  cfg.Playback.MaxSteps,
		Burst:     cfg.Playback.Burst,
		Stride:    cfg.Render.ColorStride,
		Palette:   cfg.Palette(),
		Theme:     viz.GetTheme(cfg.Render.Theme),
	}
	name := cfg.Playback.Preset
	if len(args) > 0 {
		name = args[0]
	}
	if name != "" {
		k, err := preset.ParseKind(name)
		if err != nil {
			return err
		}
		opts.Start = &k
	}

	p := tea.NewProgram(viz.NewModel(opts, log), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return err
	}

	if snapshotPath == "" {
		return nil
	}
	m, ok := final.(viz.Model)
	if !ok || m.Canvas() == nil {
		return fmt.Errorf("no canvas to snapshot")
	}
	if err := os.WriteFile(snapshotPath, []byte(export.CanvasToSVG(m.Canvas(), snapshotScale)), 0644); err != nil {
		return err
	}
	log.Info("snapshot written", zap.String("path", snapshotPath))
	return nil
}
