package playback

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
)

var ErrPlayerStopped = errors.New("playback: player stopped")

// Cue applies a command once the player has completed At steps.
type Cue struct {
	At  int
	Cmd Command
}

// Player drives a Controller from a single goroutine. Commands sent with
// Send are applied between steps, which is the only point where the run
// yields. A step is scheduled for the run generation current at schedule
// time and silently dropped if a reload or reselect happened meanwhile.
type Player struct {
	ctrl  *Controller
	cmds  chan Command
	done  chan struct{}
	log   *zap.Logger
	burst int
	ticks int
	cues  []Cue

	exitWhenIdle bool
	onStep       func(Snapshot)
}

type PlayerOption func(*Player)

// WithBurst sets how many steps run back-to-back per iteration when the
// delay is zero.
func WithBurst(n int) PlayerOption {
	return func(p *Player) {
		if n > 0 {
			p.burst = n
		}
	}
}

// WithCues schedules commands at absolute step counts.
func WithCues(cues ...Cue) PlayerOption {
	return func(p *Player) {
		p.cues = append(p.cues, cues...)
		sort.SliceStable(p.cues, func(i, j int) bool { return p.cues[i].At < p.cues[j].At })
	}
}

// ExitWhenIdle makes Run return once nothing is scheduled and no command
// or cue is due. Cues past the final step are dropped.
func ExitWhenIdle() PlayerOption {
	return func(p *Player) { p.exitWhenIdle = true }
}

// OnStep registers a callback invoked on the player goroutine after each step.
func OnStep(fn func(Snapshot)) PlayerOption {
	return func(p *Player) { p.onStep = fn }
}

func WithLogger(l *zap.Logger) PlayerOption {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

func NewPlayer(c *Controller, opts ...PlayerOption) *Player {
	p := &Player{
		ctrl:  c,
		cmds:  make(chan Command, 16),
		done:  make(chan struct{}),
		log:   zap.NewNop(),
		burst: 256,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Ticks returns the number of steps performed. Only meaningful after Run returns.
func (p *Player) Ticks() int { return p.ticks }

// Send queues a command for the player goroutine.
func (p *Player) Send(ctx context.Context, cmd Command) error {
	select {
	case <-p.done:
		return ErrPlayerStopped
	default:
	}
	select {
	case p.cmds <- cmd:
		return nil
	case <-p.done:
		return ErrPlayerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes steps until ctx is canceled, or until the controller goes
// idle when ExitWhenIdle is set. It returns the controller's step error
// for a diverged run.
func (p *Player) Run(ctx context.Context) error {
	defer close(p.done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.drain()

		if !p.ctrl.Active() {
			if p.exitWhenIdle && len(p.cmds) == 0 && !p.cueReady() {
				p.dropCues()
				return p.ctrl.Err()
			}
			if p.cueReady() {
				p.fireCues()
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case cmd := <-p.cmds:
				p.apply(cmd)
			}
			continue
		}

		run := p.ctrl.Run()
		if d := p.ctrl.Delay(); d > 0 {
			timer.Reset(d)
			if err := p.wait(ctx, timer); err != nil {
				return err
			}
			p.advance(run, 1)
		} else {
			p.advance(run, p.burst)
		}
	}
}

// wait blocks until the timer fires, applying commands as they arrive.
func (p *Player) wait(ctx context.Context, timer *time.Timer) error {
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case cmd := <-p.cmds:
			p.apply(cmd)
		case <-timer.C:
			return nil
		}
	}
}

func (p *Player) advance(run uint64, n int) {
	for i := 0; i < n; i++ {
		ok, err := p.ctrl.Step(run)
		if err != nil || !ok {
			return
		}
		p.ticks++
		if p.onStep != nil {
			p.onStep(p.ctrl.Snapshot())
		}
		if p.fireCues() {
			// A cue may have changed the run or the delay; reschedule.
			return
		}
	}
}

// cueReady reports whether the next cue is due. Steps only advance while
// a run is active, so a cue past the last step stays pending.
func (p *Player) cueReady() bool {
	return len(p.cues) > 0 && p.cues[0].At <= p.ticks
}

func (p *Player) fireCues() bool {
	fired := false
	for p.cueReady() {
		p.apply(p.cues[0].Cmd)
		p.cues = p.cues[1:]
		fired = true
	}
	return fired
}

// dropCues discards cues that can no longer fire.
func (p *Player) dropCues() {
	for _, c := range p.cues {
		p.log.Info("cue dropped after run ended",
			zap.Stringer("command", c.Cmd), zap.Int("at", c.At), zap.Int("tick", p.ticks))
	}
	p.cues = nil
}

func (p *Player) drain() {
	for {
		select {
		case cmd := <-p.cmds:
			p.apply(cmd)
		default:
			return
		}
	}
}

func (p *Player) apply(cmd Command) {
	if _, err := p.ctrl.Apply(cmd); err != nil {
		p.log.Warn("command rejected", zap.Stringer("command", cmd), zap.Error(err))
		return
	}
	p.log.Debug("command applied", zap.Stringer("command", cmd), zap.Int("tick", p.ticks))
}
