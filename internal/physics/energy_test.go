package physics

import (
	"math"
	"testing"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/sim"
)

func TestEnergy(t *testing.T) {
	st := sim.DefaultState()
	if e := Energy(&st, 0.1); e != 0 {
		t.Errorf("expected zero energy at rest, got %f", e)
	}

	st.Points[1].Vel = curve.Vec(3, 4)
	st.Points[2].Target = st.Points[2].Pos.Add(curve.Vec(10, 0))
	// fixed points never contribute
	st.Points[0].Vel = curve.Vec(100, 100)

	e := Energy(&st, 0.1)
	if math.Abs(e-17.5) > 1e-9 {
		t.Errorf("expected energy 17.5, got %f", e)
	}
}

func TestEnergyDecaysUnderDamping(t *testing.T) {
	params := sim.DefaultParams()
	params.EnvironmentForces = false

	st := sim.DefaultState()
	st.Points[1].Vel = curve.Vec(40, 0)
	in := dragging(1)
	st.Points[1].Target = st.Points[1].Pos

	ig := NewIntegrator()
	start := Energy(&st, params.Stiffness)
	for i := 0; i < 300; i++ {
		ig.Step(&st, in, params, 0.05)
	}
	if end := Energy(&st, params.Stiffness); end >= start {
		t.Errorf("expected energy to decay: start %f, end %f", start, end)
	}
}
