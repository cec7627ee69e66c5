package playback_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/playback"
	"github.com/san-kum/scribblepad/internal/preset"
	"github.com/san-kum/scribblepad/internal/render"
)

var viewport = preset.Viewport{Width: 1260, Height: 968}

func projected(k preset.Kind, s dynamo.State) render.Point {
	p, err := preset.Get(k)
	Expect(err).NotTo(HaveOccurred())
	x, y := p.Project(s, viewport)
	return render.Point{X: x, Y: y}
}

func stepN(c *playback.Controller, n int) {
	run := c.Run()
	for i := 0; i < n; i++ {
		ok, err := c.Step(run)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	}
}

var _ = Describe("Controller", func() {
	var (
		rec  *render.Recorder
		rend *render.Renderer
		ctrl *playback.Controller
		opts playback.Options
	)

	BeforeEach(func() {
		opts = playback.Options{Viewport: viewport, StepDelay: time.Millisecond}
		rec = render.NewRecorder(viewport.Width, viewport.Height)
		rend = render.NewRenderer(rec, 1)
		ctrl = playback.New(rend, opts, nil)
	})

	It("starts idle and ignores steps", func() {
		Expect(ctrl.Phase()).To(Equal(playback.Idle))
		Expect(ctrl.Params().Dt).To(Equal(playback.DefaultDt))
		ok, err := ctrl.Step(ctrl.Run())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(rec.Segments).To(BeEmpty())
	})

	DescribeTable("selecting a preset",
		func(k preset.Kind) {
			p, _ := preset.Get(k)
			_, err := ctrl.Select(k)
			Expect(err).NotTo(HaveOccurred())

			Expect(ctrl.Phase()).To(Equal(playback.Running))
			Expect(ctrl.State()).To(Equal(p.Initial))
			Expect(ctrl.Params().Dt).To(Equal(p.Dt))
			Expect(ctrl.Remaining()).To(Equal(p.StepBudget(viewport)))

			cur, ok := rend.Cursor()
			Expect(ok).To(BeTrue())
			Expect(cur).To(Equal(projected(k, p.Initial)))
		},
		Entry("lorenz", preset.Lorenz),
		Entry("chen", preset.Chen),
		Entry("halvorsen", preset.Halvorsen),
	)

	It("resets state and cursor when switching presets", func() {
		_, _ = ctrl.Select(preset.Lorenz)
		stepN(ctrl, 50)

		_, err := ctrl.Apply(playback.SelectChen)
		Expect(err).NotTo(HaveOccurred())
		chen, _ := preset.Get(preset.Chen)
		Expect(ctrl.State()).To(Equal(chen.Initial))
		Expect(ctrl.Elapsed()).To(BeZero())

		drawn := len(rec.Segments)
		stepN(ctrl, 1)
		Expect(rec.Segments).To(HaveLen(drawn + 1))
		Expect(rec.Segments[drawn].From).To(Equal(projected(preset.Chen, chen.Initial)))
	})

	It("treats reselecting the running preset as a full reset", func() {
		first, _ := ctrl.Select(preset.Lorenz)
		stepN(ctrl, 10)

		second, _ := ctrl.Select(preset.Lorenz)
		Expect(second).NotTo(Equal(first))

		ok, err := ctrl.Step(first)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		lorenz, _ := preset.Get(preset.Lorenz)
		Expect(ctrl.State()).To(Equal(lorenz.Initial))
		Expect(ctrl.Remaining()).To(Equal(lorenz.StepBudget(viewport)))
	})

	Describe("speed controls", func() {
		BeforeEach(func() {
			_, _ = ctrl.Select(preset.Lorenz)
		})

		It("fast-forward halves dt and removes the delay", func() {
			Expect(ctrl.Delay()).To(Equal(time.Millisecond))
			ctrl.FastForward()
			Expect(ctrl.Params().Dt).To(Equal(0.0015))
			Expect(ctrl.Params().Fast).To(BeTrue())
			Expect(ctrl.Delay()).To(BeZero())
		})

		It("normal speed restores the base dt exactly", func() {
			ctrl.SpeedUp()
			Expect(ctrl.Params().Dt).To(BeNumerically("~", 0.0045, 1e-15))
			ctrl.SlowDown()
			Expect(ctrl.Params().Dt).To(BeNumerically("~", 0.0006, 1e-15))
			ctrl.FastForward()
			ctrl.NormalSpeed()
			Expect(ctrl.Params().Dt).To(Equal(0.003))
		})

		It("keeps dt positive and leaves the schedule alone", func() {
			before := ctrl.Remaining()
			for _, cmd := range []playback.Command{playback.SlowDown, playback.SlowDown, playback.SpeedUp, playback.FastForward, playback.NormalSpeed} {
				_, err := ctrl.Apply(cmd)
				Expect(err).NotTo(HaveOccurred())
				Expect(ctrl.Params().Dt).To(BeNumerically(">", 0))
			}
			Expect(ctrl.Remaining()).To(Equal(before))
		})

		It("keeps fast-forward across a preset switch", func() {
			ctrl.FastForward()
			_, _ = ctrl.Select(preset.Chen)
			Expect(ctrl.Params().Fast).To(BeTrue())
			Expect(ctrl.Params().Dt).To(Equal(0.0002))
		})
	})

	It("clears only the canvas", func() {
		_, _ = ctrl.Select(preset.Halvorsen)
		stepN(ctrl, 20)
		state, remaining := ctrl.State(), ctrl.Remaining()
		cur, _ := rend.Cursor()

		ctrl.Clear()
		Expect(rec.Clears).To(Equal(1))
		Expect(rec.Segments).To(BeEmpty())
		Expect(ctrl.State()).To(Equal(state))
		Expect(ctrl.Remaining()).To(Equal(remaining))
		Expect(ctrl.Phase()).To(Equal(playback.Running))

		stepN(ctrl, 1)
		Expect(rec.Segments[0].From).To(Equal(cur))
	})

	It("reload cancels every pending step", func() {
		_, _ = ctrl.Select(preset.Lorenz)
		stepN(ctrl, 5)
		pending := []uint64{ctrl.Run(), ctrl.Run(), ctrl.Run()}
		ctrl.FastForward()

		ctrl.Reload()
		Expect(ctrl.Phase()).To(Equal(playback.Idle))
		Expect(ctrl.Params()).To(Equal(playback.Params{Dt: playback.DefaultDt}))
		Expect(rec.Segments).To(BeEmpty())

		for _, run := range append(pending, ctrl.Run()) {
			ok, err := ctrl.Step(run)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		}
		Expect(rec.Segments).To(BeEmpty())
		_, ok := rend.Cursor()
		Expect(ok).To(BeFalse())
	})

	It("halts on a non-finite state without drawing", func() {
		_, _ = ctrl.Select(preset.Lorenz)
		p, _ := ctrl.Preset()
		Expect(p.System.(dynamo.Configurable).SetParam("rho", math.MaxFloat64)).To(Succeed())

		ok, err := ctrl.Step(ctrl.Run())
		Expect(ok).To(BeFalse())
		Expect(err).To(MatchError(dynamo.ErrUnstable))
		Expect(ctrl.Phase()).To(Equal(playback.Diverged))
		Expect(ctrl.Err()).To(HaveOccurred())
		Expect(rec.Segments).To(BeEmpty())

		ok, err = ctrl.Step(ctrl.Run())
		Expect(ok).To(BeFalse())
		Expect(err).NotTo(HaveOccurred())
	})

	It("finishes when the budget is spent", func() {
		opts.MaxSteps = 5
		ctrl = playback.New(rend, opts, nil)
		_, _ = ctrl.Select(preset.Chen)
		stepN(ctrl, 5)
		Expect(ctrl.Phase()).To(Equal(playback.Done))
		ok, _ := ctrl.Step(ctrl.Run())
		Expect(ok).To(BeFalse())
	})

	It("tracks a lorenz trajectory checkpoint", func() {
		_, _ = ctrl.Apply(playback.SelectLorenz)
		stepN(ctrl, 1000)

		Expect(ctrl.Elapsed()).To(BeNumerically("~", 1000*0.003, 1e-9))
		s := ctrl.State()
		Expect(s.X).To(BeNumerically("~", -7.3180481574, 1e-6))
		Expect(s.Y).To(BeNumerically("~", -4.5510810454, 1e-6))
		Expect(s.Z).To(BeNumerically("~", 29.0705054702, 1e-6))
		Expect(rec.Segments).To(HaveLen(1000))

		snap := ctrl.Snapshot()
		Expect(snap.Preset).To(Equal("lorenz"))
		Expect(snap.Steps).To(Equal(1000))
		Expect(snap.Velocity).To(BeNumerically(">", 0))
	})
})

var _ = DescribeTable("ParseCommand",
	func(in string, want playback.Command) {
		got, err := playback.ParseCommand(in)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(playback.ParseCommand(got.String())).To(Equal(want))
	},
	Entry("ff", "ff", playback.FastForward),
	Entry("fast-forward", "fast-forward", playback.FastForward),
	Entry("faster", "faster", playback.SpeedUp),
	Entry("normal", "Normal", playback.NormalSpeed),
	Entry("slower", "slower", playback.SlowDown),
	Entry("clear", "clear", playback.Clear),
	Entry("new", "new", playback.Reload),
	Entry("chen", "chen", playback.SelectChen),
	Entry("lorenz", "LORENZ", playback.SelectLorenz),
	Entry("halvorsen", "halvorsen", playback.SelectHalvorsen),
)

var _ = It("rejects unknown commands", func() {
	_, err := playback.ParseCommand("pause")
	Expect(err).To(MatchError(playback.ErrUnknownCommand))
	Expect(playback.Commands()).To(HaveLen(9))
})
