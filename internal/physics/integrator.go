package physics

import (
	"math"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/sim"
)

const (
	MaxDt = 0.1

	BoundaryMargin     = 50.0
	AttractionRadius   = 50.0
	AttractionStrength = 0.02
	AmbientDrag        = 0.999
)

// Integrator is stateless; all mutable data lives in sim.State.
type Integrator struct{}

func NewIntegrator() *Integrator {
	return &Integrator{}
}

// ClampDt maps a raw frame delta into [0, MaxDt]. NaN becomes 0.
func ClampDt(dt float64) float64 {
	if !(dt > 0) {
		return 0
	}
	return math.Min(dt, MaxDt)
}

// Step advances the free points of st by one frame and returns the dt that
// was actually applied.
func (ig *Integrator) Step(st *sim.State, in sim.Input, p sim.Params, dt float64) float64 {
	dt = ClampDt(dt)

	if p.AutoOscillate {
		st.OscillationTime += dt
		t1, t2 := OscillationTargets(st.OscillationTime)
		st.Points[1].Target = t1
		st.Points[2].Target = t2
	}

	for _, i := range sim.FreeIndices {
		if !p.AutoOscillate && !in.IsDragging(i) {
			st.Points[i].Target = idleTarget(st.Points[i].Pos, in.Pointer)
		}
	}

	if dt == 0 {
		return 0
	}

	if p.EnvironmentForces {
		ig.applyEnvironment(st, p, dt)
	}

	bounds := p.Bounds(BoundaryMargin)
	for _, i := range sim.FreeIndices {
		integrate(&st.Points[i], p.Stiffness, p.Damping, dt)
		st.Points[i].Pos = clamp(st.Points[i].Pos, bounds)
	}
	return dt
}

func (ig *Integrator) applyEnvironment(st *sim.State, p sim.Params, dt float64) {
	force := curve.Vec(p.Wind, p.Gravity).Mul(dt)
	for _, i := range sim.FreeIndices {
		pt := &st.Points[i]
		pt.Vel = pt.Vel.Add(force).Mul(AmbientDrag)
	}
}

// idleTarget softens the pull toward a distant pointer.
func idleTarget(pos, pointer curve.Vec2) curve.Vec2 {
	d := pointer.Sub(pos)
	if d.Hypot() > AttractionRadius {
		return pos.Add(d.Mul(AttractionStrength))
	}
	return pointer
}

func integrate(pt *sim.ControlPoint, k, c, dt float64) {
	spring := pt.Pos.Sub(pt.Target).Mul(-k)
	damping := pt.Vel.Mul(-c)
	pt.Vel = pt.Vel.Add(spring.Add(damping).Mul(dt))
	pt.Pos = pt.Pos.Add(pt.Vel.Mul(dt))
}

// clamp uses max-then-min so an inverted rect pins to Max.
func clamp(p curve.Vec2, r curve.Rect) curve.Vec2 {
	return curve.Vec(
		math.Min(r.Max.X, math.Max(r.Min.X, p.X)),
		math.Min(r.Max.Y, math.Max(r.Min.Y, p.Y)),
	)
}
