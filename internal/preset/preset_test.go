package preset

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/scribblepad/internal/dynamo"
)

var reference = Viewport{Width: 1260, Height: 968}

func TestViewportScale(t *testing.T) {
	tests := []struct {
		vp   Viewport
		want float64
	}{
		{reference, 1},
		{Viewport{Width: 630, Height: 968}, 0.5},
		{Viewport{Width: 2520, Height: 484}, 0.5},
		{Viewport{Width: 1000, Height: 800}, 1000.0 / 1260},
	}
	for _, tt := range tests {
		if got := tt.vp.Scale(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Scale(%v) = %v, want %v", tt.vp, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"lorenz", Lorenz},
		{"Chen", Chen},
		{" HALVORSEN ", Halvorsen},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseKind("rossler"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
	if _, err := Get(Kind(7)); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown for out-of-range kind, got %v", err)
	}
}

func TestPresetConstants(t *testing.T) {
	tests := []struct {
		kind    Kind
		initial dynamo.State
		dt      float64
	}{
		{Lorenz, dynamo.State{X: -7.13, Y: -7.11, Z: 25.41}, 0.003},
		{Chen, dynamo.State{X: 1.96, Y: 2.04, Z: 12.51}, 0.0004},
		{Halvorsen, dynamo.State{X: -1.48, Y: -1.51, Z: 2.04}, 0.001},
	}
	for _, tt := range tests {
		p, err := Get(tt.kind)
		if err != nil {
			t.Fatalf("Get(%v) failed: %v", tt.kind, err)
		}
		if p.Initial != tt.initial {
			t.Errorf("%v initial = %v, want %v", tt.kind, p.Initial, tt.initial)
		}
		if p.Dt != tt.dt {
			t.Errorf("%v dt = %v, want %v", tt.kind, p.Dt, tt.dt)
		}
		if p.System.Name() != tt.kind.String() {
			t.Errorf("%v system name = %q", tt.kind, p.System.Name())
		}
	}
}

func TestProjection(t *testing.T) {
	lorenz, _ := Get(Lorenz)
	x, y := lorenz.Project(lorenz.Initial, reference)
	if math.Abs(x-416.1) > 1e-9 || math.Abs(y-476.62) > 1e-9 {
		t.Errorf("lorenz projection = (%v, %v), want (416.1, 476.62)", x, y)
	}

	// The halvorsen view blends two shifted x mappings.
	h, _ := Get(Halvorsen)
	vp := Viewport{Width: 1000, Height: 800}
	s := vp.Scale()
	norm := func(v float64) float64 { return vp.Width/(2*1.36) + 10*s*(v+20) }
	st := dynamo.State{X: 0.7, Y: -2.3, Z: 1.1}
	wantX := norm(st.Y)*1.86 - norm(st.X)*0.86
	wantY := vp.Height/(2*1.36) - 20*s*st.Z

	gotX, gotY := h.Project(st, vp)
	if math.Abs(gotX-wantX) > 1e-9 || math.Abs(gotY-wantY) > 1e-9 {
		t.Errorf("halvorsen projection = (%v, %v), want (%v, %v)", gotX, gotY, wantX, wantY)
	}

	gotX, _ = h.Project(h.Initial, reference)
	if math.Abs(gotX-647.877294117647) > 1e-9 {
		t.Errorf("halvorsen initial x = %v", gotX)
	}
}

func TestStepBudget(t *testing.T) {
	half := Viewport{Width: 630, Height: 968}
	tests := []struct {
		kind      Kind
		full, sub int
	}{
		{Lorenz, 600000, 522330},
		{Chen, 200000, 174110},
		{Halvorsen, 900000, 783496},
	}
	for _, tt := range tests {
		p, _ := Get(tt.kind)
		if got := p.StepBudget(reference); got != tt.full {
			t.Errorf("%v budget at scale 1 = %d, want %d", tt.kind, got, tt.full)
		}
		if got := p.StepBudget(half); got != tt.sub {
			t.Errorf("%v budget at scale 0.5 = %d, want %d", tt.kind, got, tt.sub)
		}
	}

	p, _ := Get(Lorenz)
	if got := p.StepBudget(Viewport{}); got != 0 {
		t.Errorf("empty viewport budget = %d, want 0", got)
	}
}

func TestGetReturnsIndependentSystems(t *testing.T) {
	a, _ := Get(Lorenz)
	b, _ := Get(Lorenz)
	if a.System == b.System {
		t.Fatal("expected independent systems per Get call")
	}
	if len(List()) != 3 {
		t.Errorf("expected 3 presets, got %d", len(List()))
	}
}
