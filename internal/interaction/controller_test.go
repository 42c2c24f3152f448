package interaction_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/interaction"
	"github.com/san-kum/bezdyn/internal/physics"
	"github.com/san-kum/bezdyn/internal/sim"
)

var _ = Describe("Controller", func() {
	var (
		st   sim.State
		in   sim.Input
		ctrl *interaction.Controller
	)

	BeforeEach(func() {
		st = sim.DefaultState()
		in = sim.NewInput()
		ctrl = interaction.NewController(&st, &in)
	})

	Describe("Press", func() {
		It("picks P1 within the pickup radius and snaps its target", func() {
			ctrl.Move(210, 105)
			Expect(ctrl.Press()).To(Equal(1))
			Expect(in.Dragging).To(Equal(1))
			Expect(st.Points[1].Target).To(Equal(curve.Vec(210, 105)))
		})

		It("ignores points at exactly the pickup radius", func() {
			ctrl.Move(220, 100)
			Expect(ctrl.Press()).To(Equal(sim.NoDrag))
			Expect(in.Pressed).To(BeTrue())
			Expect(st.Points[1].Target).To(Equal(curve.Vec(200, 100)))
		})

		It("never picks the fixed anchors", func() {
			ctrl.Move(100, 300)
			Expect(ctrl.Press()).To(Equal(sim.NoDrag))
		})

		It("prefers P1 when both points are in range", func() {
			st.Points[2].Pos = curve.Vec(205, 100)
			ctrl.Move(203, 100)
			Expect(ctrl.Press()).To(Equal(1))
		})
	})

	Describe("dragging", func() {
		It("moves only the dragged point's target", func() {
			ctrl.Move(200, 100)
			ctrl.Press()
			ctrl.Move(300, 300)

			Expect(st.Points[1].Target).To(Equal(curve.Vec(300, 300)))
			Expect(st.Points[2].Target).To(Equal(curve.Vec(400, 100)))
			Expect(ctrl.Selected()).To(Equal("P1"))
		})

		It("stops following the pointer after release", func() {
			ctrl.Move(400, 100)
			ctrl.Press()
			ctrl.Release()
			ctrl.Move(10, 10)

			Expect(in.Dragging).To(Equal(sim.NoDrag))
			Expect(in.Pressed).To(BeFalse())
			Expect(st.Points[2].Target).To(Equal(curve.Vec(400, 100)))
			Expect(ctrl.Selected()).To(Equal("None"))
		})

		It("clears the drag when the pointer leaves", func() {
			ctrl.Move(400, 100)
			ctrl.Press()
			ctrl.Leave()
			Expect(in.Dragging).To(Equal(sim.NoDrag))
			Expect(in.Pressed).To(BeFalse())
		})

		It("pulls the dragged point toward the pointer over time", func() {
			ig := physics.NewIntegrator()
			params := sim.DefaultParams()

			ctrl.Move(200, 100)
			ctrl.Press()
			ctrl.Move(300, 300)
			for i := 0; i < 1800; i++ {
				ig.Step(&st, in, params, 1.0/60)
			}
			Expect(st.Points[1].Pos.Distance(curve.Vec(300, 300))).To(BeNumerically("<", 30))
		})
	})

	Describe("Randomize", func() {
		It("places free points inside the inset canvas with matching targets", func() {
			rng := rand.New(rand.NewPCG(3, 4))
			for n := 0; n < 100; n++ {
				ctrl.Randomize(rng, 900, 600)
				for _, i := range sim.FreeIndices {
					pt := st.Points[i]
					Expect(pt.Pos.X).To(BeNumerically(">=", 100))
					Expect(pt.Pos.X).To(BeNumerically("<", 800))
					Expect(pt.Pos.Y).To(BeNumerically(">=", 100))
					Expect(pt.Pos.Y).To(BeNumerically("<", 500))
					Expect(pt.Vel.X).To(BeNumerically(">=", -2.5))
					Expect(pt.Vel.X).To(BeNumerically("<", 2.5))
					Expect(pt.Target).To(Equal(pt.Pos))
				}
			}
			Expect(st.Points[0].Pos).To(Equal(curve.Vec(100, 300)))
			Expect(st.Points[3].Pos).To(Equal(curve.Vec(500, 300)))
		})
	})

	Describe("Reset", func() {
		It("restores the default layout after any mutation", func() {
			ctrl.Randomize(rand.New(rand.NewPCG(1, 1)), 900, 600)
			ctrl.Move(st.Points[1].Pos.X, st.Points[1].Pos.Y)
			ctrl.Press()
			st.OscillationTime = 12.5

			ctrl.Reset()

			Expect(st).To(Equal(sim.DefaultState()))
			Expect(st.Points[1].Vel).To(Equal(curve.Vec2{}))
			Expect(st.Points[2].Vel).To(Equal(curve.Vec2{}))
			Expect(st.OscillationTime).To(BeZero())
			Expect(in).To(Equal(sim.NewInput()))
		})
	})
})
