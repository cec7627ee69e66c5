package playback

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/integrators"
	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/render"
)

const (
	// DefaultDt is the time-step before any attractor is chosen.
	DefaultDt = 0.005

	speedUpFactor  = 1.5
	slowDownFactor = 0.2
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Running
	Done
	Diverged
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	case Diverged:
		return "diverged"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Params are the user-adjustable playback parameters.
type Params struct {
	Dt   float64
	Fast bool
}

type Options struct {
	Viewport  preset.Viewport
	StepDelay time.Duration
	Palette   render.Palette
	// MaxSteps caps the step budget when positive.
	MaxSteps int
}

// Snapshot is a read-only view of the controller for display.
type Snapshot struct {
	Phase     Phase
	Preset    string
	Run       uint64
	State     dynamo.State
	Params    Params
	Velocity  float64
	Steps     int
	Remaining int
	Elapsed   float64
}

// Controller owns the simulation state, playback parameters and render
// cursor. It is not safe for concurrent use; a single driver goroutine
// (Player or the TUI update loop) calls it.
type Controller struct {
	opts     Options
	renderer *render.Renderer
	integ    *integrators.Euler
	log      *zap.Logger

	phase     Phase
	active    preset.Preset
	state     dynamo.State
	params    Params
	run       uint64
	remaining int
	steps     int
	elapsed   float64
	velocity  float64
	err       error
}

func New(r *render.Renderer, opts Options, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Palette == (render.Palette{}) {
		opts.Palette = render.DefaultPalette()
	}
	return &Controller{
		opts:     opts,
		renderer: r,
		integ:    integrators.NewEuler(),
		log:      log,
		params:   Params{Dt: DefaultDt},
	}
}

func (c *Controller) Phase() Phase               { return c.phase }
func (c *Controller) Run() uint64                { return c.run }
func (c *Controller) State() dynamo.State        { return c.state }
func (c *Controller) Params() Params             { return c.params }
func (c *Controller) Remaining() int             { return c.remaining }
func (c *Controller) Elapsed() float64           { return c.elapsed }
func (c *Controller) Err() error                 { return c.err }
func (c *Controller) Renderer() *render.Renderer { return c.renderer }

// Active reports whether steps are still scheduled.
func (c *Controller) Active() bool { return c.phase == Running && c.remaining > 0 }

// Preset returns the selected attractor, if any.
func (c *Controller) Preset() (preset.Preset, bool) {
	return c.active, c.phase != Idle
}

func (c *Controller) Snapshot() Snapshot {
	name := ""
	if c.phase != Idle {
		name = c.active.Name()
	}
	return Snapshot{
		Phase:     c.phase,
		Preset:    name,
		Run:       c.run,
		State:     c.state,
		Params:    c.params,
		Velocity:  c.velocity,
		Steps:     c.steps,
		Remaining: c.remaining,
		Elapsed:   c.elapsed,
	}
}

// Delay is the pause before the next step; zero under fast-forward.
func (c *Controller) Delay() time.Duration {
	if c.params.Fast {
		return 0
	}
	return c.opts.StepDelay
}

// Apply dispatches a command and returns the current run generation.
func (c *Controller) Apply(cmd Command) (uint64, error) {
	if k, ok := cmd.selects(); ok {
		return c.Select(k)
	}
	switch cmd {
	case FastForward:
		c.FastForward()
	case SpeedUp:
		c.SpeedUp()
	case NormalSpeed:
		c.NormalSpeed()
	case SlowDown:
		c.SlowDown()
	case Clear:
		c.Clear()
	case Reload:
		c.Reload()
	default:
		return c.run, fmt.Errorf("%w: %v", ErrUnknownCommand, cmd)
	}
	return c.run, nil
}

// Select starts a fresh run of k. Selecting while a run is in progress,
// including the same attractor, is a full reset: pending steps of the old
// run become stale.
func (c *Controller) Select(k preset.Kind) (uint64, error) {
	p, err := preset.Get(k)
	if err != nil {
		return c.run, err
	}

	c.run++
	c.active = p
	c.state = p.Initial
	c.params.Dt = p.Dt
	if c.params.Fast {
		c.params.Dt = p.Dt / 2
	}
	c.remaining = p.StepBudget(c.opts.Viewport)
	if c.opts.MaxSteps > 0 && c.opts.MaxSteps < c.remaining {
		c.remaining = c.opts.MaxSteps
	}
	c.steps = 0
	c.elapsed = 0
	c.velocity = 0
	c.err = nil
	c.phase = Running
	if c.remaining == 0 {
		c.phase = Done
	}

	c.renderer.Reset(c.project(p.Initial))

	c.log.Info("attractor selected",
		zap.String("preset", p.Name()),
		zap.Uint64("run", c.run),
		zap.Int("budget", c.remaining),
		zap.Float64("dt", c.params.Dt))
	return c.run, nil
}

// FastForward halves dt and removes the inter-step delay. It stays on
// until Reload.
func (c *Controller) FastForward() {
	c.params.Fast = true
	c.params.Dt = c.baseDt() / 2
	c.log.Debug("fast forward", zap.Float64("dt", c.params.Dt))
}

func (c *Controller) SpeedUp() {
	c.params.Dt = c.baseDt() * speedUpFactor
	c.log.Debug("speed up", zap.Float64("dt", c.params.Dt))
}

func (c *Controller) SlowDown() {
	c.params.Dt = c.baseDt() * slowDownFactor
	c.log.Debug("slow down", zap.Float64("dt", c.params.Dt))
}

func (c *Controller) NormalSpeed() {
	c.params.Dt = c.baseDt()
	c.log.Debug("normal speed", zap.Float64("dt", c.params.Dt))
}

// Clear wipes the surface only; state, cursor and scheduled steps are kept.
func (c *Controller) Clear() {
	c.renderer.Clear()
	c.log.Debug("canvas cleared", zap.Uint64("run", c.run))
}

// Reload cancels every scheduled step, wipes the surface and returns to Idle.
func (c *Controller) Reload() {
	c.run++
	c.phase = Idle
	c.active = preset.Preset{}
	c.state = dynamo.State{}
	c.params = Params{Dt: DefaultDt}
	c.remaining = 0
	c.steps = 0
	c.elapsed = 0
	c.velocity = 0
	c.err = nil
	c.renderer.Forget()
	c.renderer.Clear()
	c.log.Info("reloaded", zap.Uint64("run", c.run))
}

// Step performs one integrate-and-draw step for run. It returns false
// without touching anything when run is stale or nothing is scheduled.
func (c *Controller) Step(run uint64) (bool, error) {
	if run != c.run || !c.Active() {
		return false, nil
	}

	step, err := c.integ.Advance(c.active.System, c.state, c.params.Dt, c.active.UnitVel)
	if err != nil {
		c.err = &dynamo.StepError{Step: c.steps, Time: c.elapsed, State: c.state, Wrapped: err}
		c.phase = Diverged
		c.remaining = 0
		c.log.Warn("integration diverged, halting run",
			zap.String("preset", c.active.Name()),
			zap.Uint64("run", c.run),
			zap.Error(c.err))
		return false, c.err
	}

	c.velocity = step.Velocity
	c.renderer.DrawSegment(c.project(step.State), c.opts.Palette.Color(step.Velocity))

	c.state = step.State
	c.elapsed += c.params.Dt
	c.steps++
	c.remaining--
	if c.remaining == 0 {
		c.phase = Done
		c.log.Info("run complete",
			zap.String("preset", c.active.Name()),
			zap.Int("steps", c.steps),
			zap.Float64("elapsed", c.elapsed))
	}
	return true, nil
}

func (c *Controller) baseDt() float64 {
	if c.phase == Idle {
		return DefaultDt
	}
	return c.active.Dt
}

func (c *Controller) project(s dynamo.State) render.Point {
	x, y := c.active.Project(s, c.opts.Viewport)
	return render.Point{X: x, Y: y}
}
