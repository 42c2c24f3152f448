package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/render"
)

// Surface draws frames with raylib calls. It must be used between
// BeginTextureMode/EndTextureMode or BeginDrawing/EndDrawing.
type Surface struct {
	font          rl.Font
	width, height float64
	alpha         float64

	shadowBlur  float64
	shadowColor color.NRGBA
}

func NewSurface(font rl.Font, width, height float64) *Surface {
	return &Surface{font: font, width: width, height: height, alpha: 1}
}

func (s *Surface) Size() (float64, float64) { return s.width, s.height }

func (s *Surface) Resize(width, height float64) { s.width, s.height = width, height }

func (s *Surface) color(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, uint8(float64(c.A)*s.alpha))
}

func vec(p curve.Vec2) rl.Vector2 { return rl.NewVector2(float32(p.X), float32(p.Y)) }

func (s *Surface) Clear(c color.NRGBA) { rl.ClearBackground(rl.NewColor(c.R, c.G, c.B, 255)) }

func (s *Surface) FillRect(r curve.Rect, c color.NRGBA) {
	rl.DrawRectangleV(vec(r.Min), rl.NewVector2(float32(r.Width()), float32(r.Height())), s.color(c))
}

// StrokePath draws each segment in the stroke colour at its midpoint, so
// gradients resolve per segment.
func (s *Surface) StrokePath(pts []curve.Vec2, st render.Stroke) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		col := s.color(st.ColorAt(a.Lerp(b, 0.5)))
		rl.DrawLineEx(vec(a), vec(b), float32(st.Width), col)
		if st.Width > 2 {
			rl.DrawCircleV(vec(b), float32(st.Width/2), col)
		}
	}
}

func (s *Surface) FillCircle(center curve.Vec2, r float64, c color.NRGBA) {
	if s.shadowBlur > 0 {
		halo := s.shadowColor
		halo.A /= 3
		rl.DrawCircleV(vec(center), float32(r+s.shadowBlur/2), s.color(halo))
	}
	rl.DrawCircleV(vec(center), float32(r), s.color(c))
}

func (s *Surface) StrokeCircle(center curve.Vec2, r float64, st render.Stroke) {
	half := float32(st.Width / 2)
	rl.DrawRing(vec(center), float32(r)-half, float32(r)+half, 0, 360, 36, s.color(st.ColorAt(center)))
}

// FillPolygon fans triangles from the first vertex. raylib only fills
// counter-clockwise triangles, so clockwise ones are flipped.
func (s *Surface) FillPolygon(pts []curve.Vec2, c color.NRGBA) {
	col := s.color(c)
	for i := 2; i < len(pts); i++ {
		a, b, d := pts[0], pts[i-1], pts[i]
		if cross(a, b, d) > 0 {
			b, d = d, b
		}
		rl.DrawTriangle(vec(a), vec(b), vec(d), col)
	}
}

// cross is positive when a, b, c turn clockwise on screen.
func cross(a, b, c curve.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Text takes pos as the baseline origin; raylib places text by its top.
func (s *Surface) Text(str string, pos curve.Vec2, size float64, bold bool, c color.NRGBA) {
	top := rl.NewVector2(float32(pos.X), float32(pos.Y-size*0.8))
	rl.DrawTextEx(s.font, str, top, float32(size), 1, s.color(c))
	if bold {
		top.X++
		rl.DrawTextEx(s.font, str, top, float32(size), 1, s.color(c))
	}
}

func (s *Surface) SetAlpha(a float64) { s.alpha = min(1, max(0, a)) }

func (s *Surface) SetShadow(blur float64, c color.NRGBA) {
	s.shadowBlur, s.shadowColor = blur, c
}
