package main

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/scribblepad/internal/config"
	"github.com/san-kum/scribblepad/internal/export"
	"github.com/san-kum/scribblepad/internal/playback"
	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/render"
	"github.com/san-kum/scribblepad/internal/viz"
)

var (
	outPath   string
	profile   string
	cueSpecs  []string
	lineWidth float64
	maxSteps  int
)

// drawing is a surface that can be saved once the run finishes.
type drawing interface {
	render.Surface
	SetLineWidth(px float64)
	save(w io.Writer) error
}

type pngDrawing struct{ *viz.Raster }

func (d pngDrawing) save(w io.Writer) error { return d.WritePNG(w) }

type svgDrawing struct{ *export.SVG }

func (d svgDrawing) save(w io.Writer) error {
	_, err := d.WriteTo(w)
	return err
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "draw a preset headlessly to a PNG or SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "attractor.png", "output file (.png or .svg)")
	cmd.Flags().StringVar(&profile, "profile", "", "viewport profile ("+strings.Join(config.ListProfiles(), ", ")+")")
	cmd.Flags().StringSliceVar(&cueSpecs, "at", nil, "apply a command at a step count, e.g. 5000:clear")
	cmd.Flags().Float64Var(&lineWidth, "line-width", 1, "stroke width in pixels")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many steps (0 = preset budget)")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logger().Named("render")
	kind, err := preset.ParseKind(args[0])
	if err != nil {
		return err
	}
	local := *cfg
	if profile != "" {
		if err := local.ApplyProfile(profile); err != nil {
			return err
		}
	}
	steps := local.Playback.MaxSteps
	if cmd.Flags().Changed("max-steps") {
		steps = maxSteps
	}
	cues, err := parseCues(cueSpecs)
	if err != nil {
		return err
	}

	surface, err := newDrawing(outPath, local.Viewport.Width, local.Viewport.Height)
	if err != nil {
		return err
	}
	surface.SetLineWidth(lineWidth)

	ctrl := newController(&local, surface, steps, log)
	if _, err := ctrl.Select(kind); err != nil {
		return err
	}
	player := playback.NewPlayer(ctrl,
		playback.WithBurst(local.Playback.Burst),
		playback.WithCues(cues...),
		playback.WithLogger(log),
		playback.ExitWhenIdle(),
	)

	start := time.Now()
	runErr := player.Run(cmd.Context())
	if runErr != nil && ctrl.Phase() != playback.Diverged {
		return runErr
	}

	if err := writeFile(outPath, surface.save); err != nil {
		return err
	}
	snap := ctrl.Snapshot()
	log.Info("render complete",
		zap.String("preset", kind.String()),
		zap.String("out", outPath),
		zap.Int("steps", player.Ticks()),
		zap.Stringer("phase", snap.Phase),
		zap.Duration("took", time.Since(start)),
	)
	fmt.Printf("%s: %d steps, t=%.3f, phase %s -> %s\n", kind, player.Ticks(), snap.Elapsed, snap.Phase, outPath)
	return runErr
}

// newController builds a headless controller on s. The step delay is
// zero so the player runs steps in bursts; maxSteps 0 keeps the preset
// budget.
func newController(c *config.Config, s render.Surface, maxSteps int, log *zap.Logger) *playback.Controller {
	return playback.New(render.NewRenderer(s, c.Render.ColorStride), playback.Options{
		Viewport: c.View(),
		Palette:  c.Palette(),
		MaxSteps: maxSteps,
	}, log)
}

func newDrawing(path string, w, h float64) (drawing, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return pngDrawing{viz.NewRaster(w, h, color.Black)}, nil
	case ".svg":
		return svgDrawing{export.NewSVG(w, h, color.Black)}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q (want .png or .svg)", filepath.Ext(path))
}

// parseCues reads "step:command" pairs.
func parseCues(specs []string) ([]playback.Cue, error) {
	var cues []playback.Cue
	for _, spec := range specs {
		at, name, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid cue %q: want step:command", spec)
		}
		n, err := strconv.Atoi(strings.TrimSpace(at))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid cue step %q", at)
		}
		c, err := playback.ParseCommand(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		cues = append(cues, playback.Cue{At: n, Cmd: c})
	}
	return cues, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
