package physics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/sim"
)

func dragging(i int) sim.Input {
	in := sim.NewInput()
	in.Pressed = true
	in.Dragging = i
	return in
}

func TestClampDt(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-1, 0},
		{math.NaN(), 0},
		{0.016, 0.016},
		{0.1, 0.1},
		{2.5, 0.1},
		{math.Inf(1), 0.1},
	}

	for _, tt := range tests {
		if got := ClampDt(tt.in); got != tt.want {
			t.Errorf("ClampDt(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZeroDtIsNoOp(t *testing.T) {
	params := sim.DefaultParams()
	params.Wind = 30
	params.Gravity = -12

	for _, dt := range []float64{0, -0.5} {
		st := sim.DefaultState()
		st.Points[1].Vel = curve.Vec(3, -4)
		st.Points[2].Vel = curve.Vec(-1, 2)
		before := st

		in := sim.NewInput()
		in.Pointer = curve.Vec(700, 500)

		applied := NewIntegrator().Step(&st, in, params, dt)
		if applied != 0 {
			t.Errorf("dt=%v: expected applied dt 0, got %v", dt, applied)
		}
		for _, i := range sim.FreeIndices {
			if st.Points[i].Pos != before.Points[i].Pos {
				t.Errorf("dt=%v: P%d moved from %v to %v", dt, i, before.Points[i].Pos, st.Points[i].Pos)
			}
			if st.Points[i].Vel != before.Points[i].Vel {
				t.Errorf("dt=%v: P%d velocity changed from %v to %v", dt, i, before.Points[i].Vel, st.Points[i].Vel)
			}
		}
	}
}

func TestStepClampsPosition(t *testing.T) {
	params := sim.DefaultParams()
	velocities := []curve.Vec2{
		curve.Vec(1e6, 1e6),
		curve.Vec(-1e6, 1e6),
		curve.Vec(1e9, -1e9),
		curve.Vec(-5e4, -5e4),
	}

	for _, v := range velocities {
		st := sim.DefaultState()
		st.Points[1].Vel = v
		st.Points[2].Vel = v.Mul(-1)

		NewIntegrator().Step(&st, sim.NewInput(), params, 0.1)

		bounds := params.Bounds(BoundaryMargin)
		for _, i := range sim.FreeIndices {
			if !bounds.Contains(st.Points[i].Pos, 0) {
				t.Errorf("v=%v: P%d at %v outside %v", v, i, st.Points[i].Pos, bounds)
			}
		}
	}
}

func TestClampKeepsVelocity(t *testing.T) {
	st := sim.DefaultState()
	st.Points[1].Vel = curve.Vec(0, -1e5)
	NewIntegrator().Step(&st, dragging(1), sim.Params{Width: 900, Height: 600}, 0.1)

	if st.Points[1].Pos.Y != 50 {
		t.Errorf("expected y clamped to 50, got %f", st.Points[1].Pos.Y)
	}
	if st.Points[1].Vel.Y >= 0 {
		t.Errorf("expected velocity to keep its sign, got %v", st.Points[1].Vel)
	}
}

func TestFixedPointsNeverMove(t *testing.T) {
	params := sim.DefaultParams()
	params.Wind = 50
	params.AutoOscillate = true

	st := sim.DefaultState()
	ig := NewIntegrator()
	for i := 0; i < 200; i++ {
		ig.Step(&st, sim.NewInput(), params, 0.016)
	}
	if st.Points[0].Pos != curve.Vec(100, 300) || st.Points[3].Pos != curve.Vec(500, 300) {
		t.Errorf("anchors moved: %v %v", st.Points[0].Pos, st.Points[3].Pos)
	}
}

func TestStepSpringDamper(t *testing.T) {
	opts := cmpopts.EquateApprox(0, 1e-9)

	tests := []struct {
		name    string
		params  sim.Params
		target  curve.Vec2
		wantPos curve.Vec2
		wantVel curve.Vec2
	}{
		{
			name:    "spring only",
			params:  sim.Params{Stiffness: 0.1, Damping: 0.95, Width: 900, Height: 600},
			target:  curve.Vec(300, 100),
			wantVel: curve.Vec(1, 0),
			wantPos: curve.Vec(200.1, 100),
		},
		{
			name: "wind with drag",
			params: sim.Params{
				Stiffness: 0.1, Damping: 0.95, Wind: 10,
				EnvironmentForces: true, Width: 900, Height: 600,
			},
			target:  curve.Vec(200, 100),
			wantVel: curve.Vec(0.999*0.905, 0),
			wantPos: curve.Vec(200+0.0999*0.905, 100),
		},
		{
			name: "environment disabled",
			params: sim.Params{
				Stiffness: 0.1, Damping: 0.95, Wind: 10, Gravity: 10,
				Width: 900, Height: 600,
			},
			target:  curve.Vec(200, 100),
			wantVel: curve.Vec(0, 0),
			wantPos: curve.Vec(200, 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := sim.DefaultState()
			st.Points[1].Target = tt.target

			NewIntegrator().Step(&st, dragging(1), tt.params, 0.1)

			if diff := cmp.Diff(tt.wantVel, st.Points[1].Vel, opts); diff != "" {
				t.Errorf("velocity mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantPos, st.Points[1].Pos, opts); diff != "" {
				t.Errorf("position mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIdleAttraction(t *testing.T) {
	tests := []struct {
		name    string
		pointer curve.Vec2
		want    curve.Vec2
	}{
		{"far pointer", curve.Vec(0, 0), curve.Vec(196, 98)},
		{"near pointer", curve.Vec(230, 140), curve.Vec(230, 140)},
		{"on point", curve.Vec(200, 100), curve.Vec(200, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := sim.DefaultState()
			in := sim.NewInput()
			in.Pointer = tt.pointer
			NewIntegrator().Step(&st, in, sim.DefaultParams(), 0)

			got := st.Points[1].Target
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("target mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDraggedTargetKept(t *testing.T) {
	st := sim.DefaultState()
	st.Points[1].Target = curve.Vec(300, 300)
	in := dragging(1)
	in.Pointer = curve.Vec(0, 0)

	NewIntegrator().Step(&st, in, sim.DefaultParams(), 0.016)

	if st.Points[1].Target != curve.Vec(300, 300) {
		t.Errorf("dragged target overwritten: %v", st.Points[1].Target)
	}
	if st.Points[2].Target.Distance(curve.Vec(392, 98)) > 1e-9 {
		t.Errorf("expected idle target (392,98) for P2, got %v", st.Points[2].Target)
	}
}

func TestOscillationAtZero(t *testing.T) {
	params := sim.DefaultParams()
	params.AutoOscillate = true

	st := sim.DefaultState()
	NewIntegrator().Step(&st, sim.NewInput(), params, 0)

	if st.Points[1].Target != curve.Vec(200, 150) {
		t.Errorf("expected P1 target (200,150), got %v", st.Points[1].Target)
	}
	if st.Points[2].Target != curve.Vec(500, 100) {
		t.Errorf("expected P2 target (500,100), got %v", st.Points[2].Target)
	}
	if st.OscillationTime != 0 {
		t.Errorf("expected oscillation time 0, got %f", st.OscillationTime)
	}
}

func TestOscillationAccumulates(t *testing.T) {
	params := sim.DefaultParams()
	params.AutoOscillate = true

	st := sim.DefaultState()
	ig := NewIntegrator()
	ig.Step(&st, sim.NewInput(), params, 0.05)
	ig.Step(&st, sim.NewInput(), params, 5)

	if math.Abs(st.OscillationTime-0.15) > 1e-12 {
		t.Errorf("expected oscillation time 0.15, got %f", st.OscillationTime)
	}
	p1, p2 := OscillationTargets(st.OscillationTime)
	if st.Points[1].Target != p1 || st.Points[2].Target != p2 {
		t.Errorf("targets %v %v do not follow the clock %v %v",
			st.Points[1].Target, st.Points[2].Target, p1, p2)
	}

	params.AutoOscillate = false
	ig.Step(&st, sim.NewInput(), params, 0.05)
	if math.Abs(st.OscillationTime-0.15) > 1e-12 {
		t.Errorf("clock advanced while disabled: %f", st.OscillationTime)
	}
}

func TestOscillationTargets(t *testing.T) {
	opts := cmpopts.EquateApprox(0, 1e-9)
	tt := math.Pi / 2

	p1, p2 := OscillationTargets(tt)
	want1 := curve.Vec(300, 100+50*math.Cos(0.7*tt))
	want2 := curve.Vec(400+100*math.Cos(1.3*tt), 100+50*math.Sin(0.9*tt))

	if diff := cmp.Diff(want1, p1, opts); diff != "" {
		t.Errorf("P1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want2, p2, opts); diff != "" {
		t.Errorf("P2 mismatch (-want +got):\n%s", diff)
	}
}
