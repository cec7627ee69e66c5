package analysis

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/scribblepad/internal/dynamo"
)

// SweepPoint is the largest Lyapunov exponent at one parameter value.
type SweepPoint struct {
	Param    float64
	Exponent float64
	Err      error
}

// SweepConfig describes a parameter sweep. NewSystem must return a fresh
// system per call since every value is evaluated concurrently.
type SweepConfig struct {
	NewSystem func() dynamo.System
	Param     string
	Min, Max  float64
	Count     int
	Initial   dynamo.State
	Dt        float64
	Steps     int
	Workers   int
}

// LyapunovSweep evaluates the largest exponent across [Min, Max]. A value
// whose run diverges is reported in its point's Err; only a bad parameter
// name or ctx cancellation fails the sweep.
func LyapunovSweep(ctx context.Context, cfg SweepConfig) ([]SweepPoint, error) {
	if cfg.Count < 2 {
		cfg.Count = 2
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	step := (cfg.Max - cfg.Min) / float64(cfg.Count-1)
	points := make([]SweepPoint, cfg.Count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range points {
		param := cfg.Min + float64(i)*step
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sys := cfg.NewSystem()
			tunable, ok := sys.(dynamo.Configurable)
			if !ok {
				return fmt.Errorf("%s: not configurable", sys.Name())
			}
			if err := tunable.SetParam(cfg.Param, param); err != nil {
				return err
			}
			exp, err := LyapunovExponent(sys, cfg.Initial, cfg.Dt, cfg.Steps, 0)
			points[i] = SweepPoint{Param: param, Exponent: exp, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
