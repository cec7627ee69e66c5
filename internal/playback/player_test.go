package playback

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/render"
)

func TestMain(m *testing.M) {
	// ginkgo's interrupt handler lives for the whole binary
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction(
		"github.com/onsi/ginkgo/v2/internal/interrupt_handler.(*InterruptHandler).registerForInterrupts.func2",
	))
}

func newTestController(delay time.Duration, maxSteps int) (*Controller, *render.Recorder) {
	rec := render.NewRecorder(1260, 968)
	c := New(render.NewRenderer(rec, 1), Options{
		Viewport:  preset.Viewport{Width: 1260, Height: 968},
		StepDelay: delay,
		MaxSteps:  maxSteps,
	}, nil)
	return c, rec
}

func runAsync(ctx context.Context, p *Player) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()
	return errCh
}

func TestPlayerRunsToCompletion(t *testing.T) {
	ctrl, rec := newTestController(0, 300)
	p := NewPlayer(ctrl, ExitWhenIdle(), WithCues(Cue{At: 0, Cmd: SelectLorenz}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Equal(t, 300, p.Ticks())
	assert.Equal(t, Done, ctrl.Phase())
	assert.Len(t, rec.Segments, 300)
}

func TestPlayerCuesFireAtStepCounts(t *testing.T) {
	ctrl, rec := newTestController(0, 30)
	p := NewPlayer(ctrl, ExitWhenIdle(), WithCues(
		Cue{At: 20, Cmd: SelectChen},
		Cue{At: 0, Cmd: SelectLorenz},
		Cue{At: 10, Cmd: Clear},
	))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Equal(t, 50, p.Ticks())
	assert.Equal(t, 1, rec.Clears)
	// Ten lorenz segments after the clear, then a full chen run.
	assert.Len(t, rec.Segments, 40)

	active, ok := ctrl.Preset()
	require.True(t, ok)
	assert.Equal(t, preset.Chen, active.Kind)
}

func TestPlayerCuesPastLastStepAreDropped(t *testing.T) {
	ctrl, rec := newTestController(0, 100)
	p := NewPlayer(ctrl, ExitWhenIdle(), WithCues(
		Cue{At: 0, Cmd: SelectLorenz},
		Cue{At: 5000, Cmd: Clear},
	))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Equal(t, 100, p.Ticks())
	assert.Equal(t, Done, ctrl.Phase())
	assert.Zero(t, rec.Clears)
	assert.Len(t, rec.Segments, 100)
}

func TestPlayerCuesWaitForTheirStepAfterReload(t *testing.T) {
	ctrl, rec := newTestController(0, 100)
	p := NewPlayer(ctrl, ExitWhenIdle(), WithCues(
		Cue{At: 0, Cmd: SelectLorenz},
		Cue{At: 50, Cmd: Reload},
		Cue{At: 10000, Cmd: SelectChen},
	))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx))
	assert.Equal(t, 50, p.Ticks())
	assert.Equal(t, Idle, ctrl.Phase())
	assert.Equal(t, 1, rec.Clears)
	assert.Empty(t, rec.Segments)
	_, ok := ctrl.Preset()
	assert.False(t, ok, "chen must not start before step 10000")
}

func TestPlayerFastForwardSkipsDelay(t *testing.T) {
	ctrl, _ := newTestController(time.Hour, 1000)
	p := NewPlayer(ctrl, ExitWhenIdle(), WithBurst(64))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, p.Send(ctx, FastForward))
	require.NoError(t, p.Send(ctx, SelectLorenz))

	require.NoError(t, p.Run(ctx))
	assert.Equal(t, 1000, p.Ticks())
	assert.Equal(t, 0.0015, ctrl.Params().Dt)
	assert.True(t, ctrl.Params().Fast)
}

func TestPlayerReloadCancelsPendingStep(t *testing.T) {
	ctrl, rec := newTestController(50*time.Millisecond, 0)

	first := make(chan struct{})
	var once sync.Once
	p := NewPlayer(ctrl, OnStep(func(Snapshot) { once.Do(func() { close(first) }) }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := runAsync(ctx, p)

	require.NoError(t, p.Send(ctx, SelectLorenz))
	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("no step performed")
	}
	require.NoError(t, p.Send(ctx, Reload))

	// Let the timer armed for the old run fire.
	time.Sleep(150 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	assert.Equal(t, Idle, ctrl.Phase())
	assert.Empty(t, rec.Segments)
	assert.Equal(t, 1, p.Ticks())
}

func TestPlayerStopsOnCancel(t *testing.T) {
	ctrl, _ := newTestController(time.Millisecond, 0)
	p := NewPlayer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, p)
	require.NoError(t, p.Send(ctx, SelectHalvorsen))

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("player did not stop")
	}

	err := p.Send(context.Background(), Clear)
	assert.ErrorIs(t, err, ErrPlayerStopped)
}

func TestPlayerReportsDivergence(t *testing.T) {
	ctrl, rec := newTestController(0, 0)
	_, err := ctrl.Select(preset.Lorenz)
	require.NoError(t, err)
	require.NoError(t, ctrl.active.System.(interface {
		SetParam(string, float64) error
	}).SetParam("rho", math.MaxFloat64))

	p := NewPlayer(ctrl, ExitWhenIdle())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = p.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, Diverged, ctrl.Phase())
	assert.Empty(t, rec.Segments)
	assert.Zero(t, p.Ticks())
}
