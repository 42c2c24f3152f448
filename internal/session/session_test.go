package session_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/session"
	"github.com/san-kum/bezdyn/internal/sim"
)

var _ = Describe("Session", func() {
	var s *session.Session

	BeforeEach(func() {
		s = session.New(session.DefaultOptions())
	})

	Describe("Tick", func() {
		It("leaves free points alone at zero time", func() {
			s.PointerMove(800, 550)
			before := s.State()
			s.Tick(0)
			after := s.State()
			for _, i := range sim.FreeIndices {
				Expect(after.Points[i].Pos).To(Equal(before.Points[i].Pos))
				Expect(after.Points[i].Vel).To(Equal(before.Points[i].Vel))
			}
		})

		It("clamps long frame gaps", func() {
			s.Tick(3)
			Expect(s.Time()).To(Equal(0.1))
			Expect(s.Stats().FPS).To(Equal(0))
		})

		It("reports frame statistics", func() {
			stats := s.Tick(1.0 / 30)
			Expect(stats.FPS).To(Equal(30))
			Expect(stats.Length).To(BeNumerically(">", 400))
			Expect(stats.Particles).To(Equal(s.Particles().Len()))
			Expect(stats.Energy).To(BeNumerically("~", s.Energy(), 1e-12))
		})

		It("emits particles headlessly while they are shown", func() {
			for i := 0; i < 10; i++ {
				s.Tick(1.0 / 60)
			}
			Expect(s.Particles().Len()).To(BeNumerically(">", 0))
		})

		It("does not emit while particles are hidden", func() {
			Expect(s.SetToggle("particles", false)).To(Succeed())
			for i := 0; i < 10; i++ {
				s.Tick(1.0 / 60)
			}
			Expect(s.Particles().Len()).To(BeZero())
		})

		It("keeps free points inside the canvas under strong forces", func() {
			Expect(s.SetParam("wind", 5000)).To(Succeed())
			Expect(s.SetParam("gravity", -5000)).To(Succeed())
			for i := 0; i < 120; i++ {
				s.Tick(0.1)
			}
			st := s.State()
			bounds := curve.Rect{Min: curve.Vec(50, 50), Max: curve.Vec(850, 550)}
			for _, i := range sim.FreeIndices {
				Expect(bounds.Contains(st.Points[i].Pos, 0)).To(BeTrue())
			}
		})
	})

	Describe("Frame", func() {
		It("derives dt from successive timestamps", func() {
			s.Frame(1000)
			Expect(s.Time()).To(BeZero())
			s.Frame(1016)
			Expect(s.Time()).To(BeNumerically("~", 0.016, 1e-12))
			s.Frame(5000)
			Expect(s.Time()).To(BeNumerically("~", 0.116, 1e-12))
			Expect(s.FrameCount()).To(Equal(3))
		})
	})

	Describe("toggles", func() {
		It("restarts the oscillation clock when enabled", func() {
			Expect(s.SetToggle("oscillate", true)).To(Succeed())
			s.Tick(0.05)
			s.Tick(0.05)
			Expect(s.State().OscillationTime).To(BeNumerically("~", 0.1, 1e-12))

			Expect(s.SetToggle("oscillate", false)).To(Succeed())
			Expect(s.SetToggle("oscillate", true)).To(Succeed())
			Expect(s.State().OscillationTime).To(BeZero())

			s.Tick(0)
			Expect(s.State().Points[1].Target).To(Equal(curve.Vec(200, 150)))
		})

		It("switches glow between its two intensities", func() {
			Expect(s.SetToggle("glow", false)).To(Succeed())
			Expect(s.RenderConfig().GlowIntensity).To(BeZero())
			on, err := s.Flip("glow")
			Expect(err).NotTo(HaveOccurred())
			Expect(on).To(BeTrue())
			Expect(s.RenderConfig().GlowIntensity).To(Equal(0.8))
		})

		It("rejects unknown names", func() {
			err := s.SetToggle("bloom", true)
			Expect(errors.Is(err, sim.ErrUnknownToggle)).To(BeTrue())
			_, err = s.Toggle("bloom")
			Expect(errors.Is(err, sim.ErrUnknownToggle)).To(BeTrue())
			Expect(errors.Is(s.SetParam("mass", 2), sim.ErrUnknownParam)).To(BeTrue())
		})

		It("lists every toggle it accepts", func() {
			for _, name := range session.ToggleNames() {
				_, err := s.Toggle(name)
				Expect(err).NotTo(HaveOccurred(), name)
			}
		})
	})

	Describe("commands", func() {
		It("resets the curve but keeps particles", func() {
			for i := 0; i < 10; i++ {
				s.Tick(1.0 / 60)
			}
			n := s.Particles().Len()
			s.Randomize()
			s.PointerMove(12, 34)
			s.Reset()

			Expect(s.State()).To(Equal(sim.DefaultState()))
			Expect(s.Input()).To(Equal(sim.NewInput()))
			Expect(s.Particles().Len()).To(Equal(n))
		})

		It("drags P1 toward the pointer", func() {
			s.PointerMove(200, 100)
			s.PointerDown()
			s.PointerMove(300, 300)

			st := s.State()
			Expect(st.Points[1].Target).To(Equal(curve.Vec(300, 300)))
			Expect(st.Points[2].Target).To(Equal(curve.Vec(400, 100)))

			s.PointerLeave()
			Expect(s.Input().Dragging).To(Equal(sim.NoDrag))
		})

		It("validates resizes", func() {
			Expect(errors.Is(s.Resize(80, 600), sim.ErrInvalidBounds)).To(BeTrue())
			Expect(s.Resize(640, 480)).To(Succeed())
			Expect(s.Params().Width).To(Equal(640.0))
			Expect(s.Params().Height).To(Equal(480.0))
		})

		It("reports the overlay readout when math info is on", func() {
			var got []session.FrameRecord
			s.AddObserver(session.ObserverFunc(func(rec session.FrameRecord) {
				got = append(got, rec)
			}))
			s.Tick(0)
			Expect(s.SetToggle("math", true)).To(Succeed())
			s.PointerMove(300, 140)
			s.Tick(0)

			Expect(got).To(HaveLen(2))
			Expect(got[0].Math).To(BeNil())
			Expect(got[1].Math).NotTo(BeNil())
			Expect(got[1].Math.Selected).To(Equal("None"))
			Expect(got[1].Frame).To(Equal(1))
		})
	})

	Describe("Run", func() {
		It("stops with a frame error when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := s.Run(ctx, 10, 0.016)

			var fe *sim.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(0))
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})

		It("refuses empty runs", func() {
			Expect(s.Run(context.Background(), 0, 0.016)).To(MatchError(sim.ErrNoFrames))
		})
	})
})
