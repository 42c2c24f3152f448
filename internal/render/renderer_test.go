package render

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/particles"
	"github.com/san-kum/bezdyn/internal/sim"
)

func testFrame(cfg Config) Frame {
	st := sim.DefaultState()
	return Frame{
		State:     &st,
		Input:     sim.NewInput(),
		Particles: particles.NewSystem(rand.New(rand.NewPCG(11, 13))),
		Config:    cfg,
	}
}

func TestDrawBackground(t *testing.T) {
	tests := []struct {
		name  string
		trail bool
		kind  string
	}{
		{"trail overlay", true, "rect"},
		{"solid clear", false, "clear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Trail = tt.trail
			s := newRecordingSurface()
			NewRenderer().Draw(s, testFrame(cfg))

			first := s.ops[0]
			if first.kind != tt.kind {
				t.Fatalf("expected first op %q, got %q", tt.kind, first.kind)
			}
			if tt.trail && first.color != TrailOverlay {
				t.Errorf("expected trail overlay %v, got %v", TrailOverlay, first.color)
			}
			if !tt.trail && first.color != Background {
				t.Errorf("expected background %v, got %v", Background, first.color)
			}
		})
	}
}

func TestDrawCurveStrokes(t *testing.T) {
	cfg := DefaultConfig()
	s := newRecordingSurface()
	f := testFrame(cfg)
	samples := NewRenderer().Draw(s, f)

	if len(samples) != CurveSegments+1 {
		t.Fatalf("expected %d samples, got %d", CurveSegments+1, len(samples))
	}
	if len(s.paths(10)) != 1 || len(s.paths(20)) != 1 {
		t.Errorf("expected one glow stroke each at 10px and 20px")
	}

	main := s.paths(curveWidth)
	if len(main) != 1 {
		t.Fatalf("expected one main curve stroke, got %d", len(main))
	}
	if main[0].stroke.Gradient == nil {
		t.Fatal("main curve has no gradient")
	}
	if main[0].pts[0] != f.State.Points[0].Pos || main[0].pts[CurveSegments] != f.State.Points[3].Pos {
		t.Errorf("main curve does not span the anchors")
	}
}

func TestDrawWithoutGlow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GlowIntensity = 0
	s := newRecordingSurface()
	NewRenderer().Draw(s, testFrame(cfg))

	if len(s.paths(10))+len(s.paths(20)) != 0 {
		t.Error("glow strokes drawn with zero intensity")
	}
}

func TestDrawEmitsParticles(t *testing.T) {
	f := testFrame(DefaultConfig())
	r := NewRenderer()
	for i := 0; i < 10; i++ {
		r.Draw(newRecordingSurface(), f)
	}
	if f.Particles.Len() == 0 {
		t.Error("expected particles after ten frames")
	}
}

func TestDrawParticlesDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowParticles = false
	f := testFrame(cfg)
	f.Particles.Emit(curve.Vec(300, 300), 3)

	s := newRecordingSurface()
	NewRenderer().Draw(s, f)

	if f.Particles.Len() != 3 {
		t.Errorf("expected the pool untouched, got %d particles", f.Particles.Len())
	}
	if got := s.count("alpha"); got != 0 {
		t.Errorf("expected no particle draws, got %d alpha changes", got)
	}
}

func TestDrawStillHasNoSideEffects(t *testing.T) {
	f := testFrame(DefaultConfig())
	f.Particles.Emit(curve.Vec(300, 300), 4)
	before := append([]particles.Particle(nil), f.Particles.Particles()...)

	s := newRecordingSurface()
	NewRenderer().DrawStill(s, f)

	if diff := cmp.Diff(before, f.Particles.Particles()); diff != "" {
		t.Errorf("particles changed (-before +after):\n%s", diff)
	}
	if s.ops[0].kind != "clear" {
		t.Errorf("expected solid clear, got %q", s.ops[0].kind)
	}
	// one alpha per particle plus the reset
	if got := s.count("alpha"); got != 5 {
		t.Errorf("expected 5 alpha changes, got %d", got)
	}
}

func TestDrawControlPoints(t *testing.T) {
	f := testFrame(DefaultConfig())
	f.Input.Dragging = 2
	s := newRecordingSurface()
	NewRenderer().DrawStill(s, f)

	poly := s.paths(polygonWidth)
	if len(poly) != 1 || len(poly[0].pts) != sim.NumPoints {
		t.Fatalf("expected control polygon through 4 points, got %+v", poly)
	}

	want := map[curve.Vec2]string{
		curve.Vec(100, 300): CSS(fixedColor),
		curve.Vec(200, 100): CSS(freeColor),
		curve.Vec(400, 100): CSS(draggedColor),
		curve.Vec(500, 300): CSS(fixedColor),
	}
	found := 0
	for _, o := range s.ops {
		if o.kind != "circle" || o.value != pointRadius {
			continue
		}
		if w, ok := want[o.pts[0]]; ok {
			found++
			if CSS(o.color) != w {
				t.Errorf("point at %v: expected %s, got %s", o.pts[0], w, CSS(o.color))
			}
		}
	}
	if found != 4 {
		t.Errorf("expected 4 control points, found %d", found)
	}

	labels := strings.Join(s.texts(), ",")
	if labels != "P0,P1,P2,P3" {
		t.Errorf("expected labels P0..P3, got %s", labels)
	}
}

func TestDrawTangents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowMathInfo = true
	s := newRecordingSurface()
	NewRenderer().DrawStill(s, testFrame(cfg))

	if got := s.count("poly"); got != TangentSteps+1 {
		t.Errorf("expected %d arrow heads, got %d", TangentSteps+1, got)
	}

	var labels []string
	for _, txt := range s.texts() {
		if strings.HasPrefix(txt, "|T|=") {
			labels = append(labels, txt)
		}
	}
	if len(labels) != TangentSteps+1 {
		t.Fatalf("expected %d magnitude labels, got %d", TangentSteps+1, len(labels))
	}
	// default curve: |B'(0)| = |(300,-600)|
	if labels[0] != "|T|=670.82" {
		t.Errorf("expected |T|=670.82, got %s", labels[0])
	}

	arrows := 0
	for _, o := range s.ops {
		if o.kind == "poly" {
			if o.color != TangentPalette[arrows%len(TangentPalette)] {
				t.Errorf("arrow %d has colour %v", arrows, o.color)
			}
			arrows++
		}
	}
}

func TestArrowHead(t *testing.T) {
	got := ArrowHead(curve.Vec(10, 0), 0)
	want := []curve.Vec2{curve.Vec(10, 0), curve.Vec(0, -5), curve.Vec(0, 5)}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("arrow mismatch (-want +got):\n%s", diff)
	}
}
