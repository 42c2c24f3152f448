package viz

import (
	"testing"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/render"
	"github.com/san-kum/bezdyn/internal/session"
)

func newTestSurface() *BrailleSurface {
	return NewBrailleSurface(NewCanvas(90, 30), 900, 600)
}

func TestToCanvas(t *testing.T) {
	s := newTestSurface()
	tests := []struct {
		p      curve.Vec2
		wx, wy int
	}{
		{curve.Vec(0, 0), 0, 0},
		{curve.Vec(450, 300), 90, 60},
		{curve.Vec(899, 599), 179, 119},
	}
	for _, tt := range tests {
		x, y := s.ToCanvas(tt.p)
		if x != tt.wx || y != tt.wy {
			t.Errorf("ToCanvas(%v): expected (%d,%d), got (%d,%d)", tt.p, tt.wx, tt.wy, x, y)
		}
	}
	if p := s.FromCell(0, 0); p.X != 5 || p.Y != 10 {
		t.Errorf("expected first cell centre (5,10), got %v", p)
	}
}

func TestFillRectClearsOrFades(t *testing.T) {
	s := newTestSurface()
	s.Canvas.Set(3, 3, "")
	s.FillRect(curve.Rect{Max: curve.Vec(900, 600)}, render.TrailOverlay)
	if !s.Canvas.IsSet(3, 3) {
		t.Error("expected translucent overlay to fade, not clear")
	}
	s.FillRect(curve.Rect{Max: curve.Vec(900, 600)}, render.Background)
	if s.Canvas.IsSet(3, 3) {
		t.Error("expected opaque fill to clear")
	}
}

func TestStrokeSkipsHalo(t *testing.T) {
	s := newTestSurface()
	line := []curve.Vec2{curve.Vec(100, 100), curve.Vec(200, 100)}
	s.StrokePath(line, render.Stroke{Width: 20, Color: render.Hex("#4cc9f0")})
	if s.Canvas.IsSet(20, 20) {
		t.Error("expected halo stroke to draw nothing")
	}
	s.StrokePath(line, render.Stroke{Width: 3, Color: render.Hex("#4cc9f0")})
	for x := 20; x <= 40; x++ {
		if !s.Canvas.IsSet(x, 20) {
			t.Fatalf("expected dot (%d,20) on the stroke", x)
		}
	}
}

func TestFaintFillSkipped(t *testing.T) {
	s := newTestSurface()
	s.SetAlpha(0.1)
	s.FillCircle(curve.Vec(100, 100), 5, render.Hex("#ffffff"))
	if s.Canvas.IsSet(20, 20) {
		t.Error("expected faint fill to be dropped")
	}
	s.SetAlpha(1)
	s.FillCircle(curve.Vec(100, 100), 5, render.Hex("#ffffff"))
	if !s.Canvas.IsSet(20, 20) {
		t.Error("expected opaque fill to draw")
	}
}

func TestSessionDrawsOnBraille(t *testing.T) {
	s := newTestSurface()
	sess := session.New(session.DefaultOptions())
	sess.Attach(s)
	sess.Tick(1.0 / 60)

	// P0 sits at (100, 300).
	x, y := s.ToCanvas(curve.Vec(100, 300))
	found := false
	for dy := -2; dy <= 2 && !found; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if s.Canvas.IsSet(x+dx, y+dy) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected the curve start to be drawn")
	}
}
