package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/scribblepad/internal/playback"
	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/render"
)

const (
	frameInterval = time.Second / 60
	sidebarWidth  = 34
	historyLen    = 28
)

// keyBindings maps keys to the nine controls.
var keyBindings = map[string]playback.Command{
	"f": playback.FastForward,
	"+": playback.SpeedUp,
	"=": playback.SpeedUp,
	"n": playback.NormalSpeed,
	"-": playback.SlowDown,
	"c": playback.Clear,
	"r": playback.Reload,
	"1": playback.SelectChen,
	"2": playback.SelectLorenz,
	"3": playback.SelectHalvorsen,
}

// stepMsg asks for the next batch of steps of run. Messages for a run that
// is no longer current are dropped.
type stepMsg struct{ run uint64 }

type Options struct {
	Start     *preset.Kind
	StepDelay time.Duration
	MaxSteps  int
	Burst     int
	Stride    int
	Palette   render.Palette
	Theme     Theme
}

// Model is the interactive attractor view. The canvas is sized from the
// first window size message and kept for the rest of the session.
type Model struct {
	opts     Options
	log      *zap.Logger
	ctrl     *playback.Controller
	canvas   *Canvas
	theme    Theme
	st       styles
	velocity []float64
	status   string
}

func NewModel(opts Options, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Burst < 1 {
		opts.Burst = 256
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeDefault
	}
	return Model{opts: opts, log: log, theme: opts.Theme, st: newStyles(opts.Theme)}
}

func (m Model) Init() tea.Cmd { return nil }

// Controller is nil until the window size is known.
func (m Model) Controller() *playback.Controller { return m.ctrl }
func (m Model) Canvas() *Canvas                  { return m.canvas }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.ctrl != nil {
			return m, nil
		}
		m.setup(msg.Width-sidebarWidth-2, msg.Height-1)
		if m.opts.Start == nil {
			return m, nil
		}
		run, err := m.ctrl.Select(*m.opts.Start)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.schedule(run)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "t":
			m.theme = nextTheme(m.theme)
			m.st = newStyles(m.theme)
			return m, nil
		}
		cmd, ok := keyBindings[msg.String()]
		if !ok || m.ctrl == nil {
			return m, nil
		}
		before := m.ctrl.Run()
		run, err := m.ctrl.Apply(cmd)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = cmd.String()
		if run != before {
			m.velocity = m.velocity[:0]
			if m.ctrl.Active() {
				return m, m.schedule(run)
			}
		}
		return m, nil

	case stepMsg:
		if m.ctrl == nil || msg.run != m.ctrl.Run() {
			return m, nil
		}
		n := m.stepsPerTick()
		for i := 0; i < n; i++ {
			ok, err := m.ctrl.Step(msg.run)
			if err != nil {
				m.status = err.Error()
				m.log.Warn("run halted", zap.Error(err))
			}
			if !ok {
				break
			}
		}
		m.record(m.ctrl.Snapshot().Velocity)
		if m.ctrl.Active() {
			return m, m.schedule(msg.run)
		}
	}
	return m, nil
}

func (m *Model) setup(cols, rows int) {
	m.canvas = NewCanvas(max(cols, 8), max(rows, 4))
	w, h := m.canvas.Size()
	m.ctrl = playback.New(render.NewRenderer(m.canvas, m.opts.Stride), playback.Options{
		Viewport:  preset.Viewport{Width: w, Height: h},
		StepDelay: m.opts.StepDelay,
		Palette:   m.opts.Palette,
		MaxSteps:  m.opts.MaxSteps,
	}, m.log)
	m.log.Debug("canvas ready", zap.Int("cols", m.canvas.Width), zap.Int("rows", m.canvas.Height))
}

// schedule arms the next tick for run. Ticks never fire faster than the
// frame rate; stepsPerTick makes up the difference.
func (m Model) schedule(run uint64) tea.Cmd {
	d := max(m.ctrl.Delay(), frameInterval)
	return tea.Tick(d, func(time.Time) tea.Msg { return stepMsg{run: run} })
}

func (m Model) stepsPerTick() int {
	d := m.ctrl.Delay()
	if d <= 0 {
		return m.opts.Burst
	}
	return max(1, int(frameInterval/d))
}

func (m *Model) record(v float64) {
	m.velocity = append(m.velocity, v)
	if len(m.velocity) > historyLen {
		m.velocity = m.velocity[len(m.velocity)-historyLen:]
	}
}

func (m Model) View() string {
	if m.ctrl == nil {
		return "sizing canvas...\n"
	}
	snap := m.ctrl.Snapshot()

	var s strings.Builder
	title := "SCRIBBLEPAD"
	if snap.Preset != "" {
		title = strings.ToUpper(snap.Preset)
	}
	s.WriteString(m.st.header.Render(title) + "\n")
	s.WriteString(m.phaseLabel(snap.Phase) + "\n\n")

	row := func(label, value string) {
		s.WriteString(m.st.label.Render(label) + m.st.value.Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.3f", snap.Elapsed))
	row("dt", fmt.Sprintf("%.5f", snap.Params.Dt))
	if snap.Params.Fast {
		row("speed", "fast-forward")
	}
	row("x", fmt.Sprintf("%9.3f", snap.State.X))
	row("y", fmt.Sprintf("%9.3f", snap.State.Y))
	row("z", fmt.Sprintf("%9.3f", snap.State.Z))
	row("velocity", fmt.Sprintf("%.3f", snap.Velocity))
	s.WriteString(m.st.Sparkline(m.velocity, historyLen) + "\n\n")

	if total := snap.Steps + snap.Remaining; total > 0 {
		s.WriteString(m.st.ProgressBar(float64(snap.Steps)/float64(total), historyLen) + "\n")
		row("steps", fmt.Sprintf("%d/%d", snap.Steps, total))
	}
	if m.status != "" {
		s.WriteString("\n" + m.st.hint.Render(m.status) + "\n")
	}
	s.WriteString(m.st.hint.Render("\n1 chen  2 lorenz  3 halvorsen\nf ff  + faster  - slower  n normal\nc clear  r reload  t theme  q quit"))

	side := m.st.panel.Width(sidebarWidth - 2).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), side)
}

func (m Model) phaseLabel(p playback.Phase) string {
	switch p {
	case playback.Running:
		return m.st.running.Render("RUNNING")
	case playback.Diverged:
		return m.st.failed.Render("DIVERGED")
	case playback.Done:
		return m.st.value.Render("DONE")
	}
	return m.st.idle.Render("IDLE")
}
