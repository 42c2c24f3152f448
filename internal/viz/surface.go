package viz

import (
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/render"
)

const (
	// Strokes wider than haloWidth are glow halos and have no dot rendering.
	haloWidth = 6.0
	// Fills fainter than minAlpha are dropped.
	minAlpha = 0.25
)

// BrailleSurface maps a logical pixel space onto a Canvas so the frame
// renderer can draw in a terminal. Translucent overlays fade the canvas
// instead of compositing.
type BrailleSurface struct {
	Canvas *Canvas

	width, height float64
	alpha         float64
}

func NewBrailleSurface(c *Canvas, width, height float64) *BrailleSurface {
	return &BrailleSurface{Canvas: c, width: width, height: height, alpha: 1}
}

func (s *BrailleSurface) Size() (float64, float64) { return s.width, s.height }

// Resize changes the logical space mapped onto the canvas.
func (s *BrailleSurface) Resize(width, height float64) {
	s.width, s.height = width, height
}

// ToCanvas converts a logical point to dot coordinates.
func (s *BrailleSurface) ToCanvas(p curve.Vec2) (int, int) {
	x := p.X / s.width * float64(s.Canvas.SubWidth())
	y := p.Y / s.height * float64(s.Canvas.SubHeight())
	return int(math.Floor(x)), int(math.Floor(y))
}

// FromCell converts a terminal cell to the logical point at its centre.
func (s *BrailleSurface) FromCell(col, row int) curve.Vec2 {
	x := (float64(col) + 0.5) / float64(s.Canvas.Width) * s.width
	y := (float64(row) + 0.5) / float64(s.Canvas.Height) * s.height
	return curve.Vec(x, y)
}

func (s *BrailleSurface) radius(r float64) int {
	return int(math.Round(r / s.width * float64(s.Canvas.SubWidth())))
}

func (s *BrailleSurface) Clear(color.NRGBA) { s.Canvas.Clear() }

func (s *BrailleSurface) FillRect(r curve.Rect, c color.NRGBA) {
	if c.A == 255 {
		s.Canvas.Clear()
		return
	}
	s.Canvas.Fade()
}

func (s *BrailleSurface) StrokePath(pts []curve.Vec2, st render.Stroke) {
	if st.Width > haloWidth || len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		x0, y0 := s.ToCanvas(a)
		x1, y1 := s.ToCanvas(b)
		s.Canvas.DrawLine(x0, y0, x1, y1, termColor(st.ColorAt(a.Lerp(b, 0.5))))
	}
}

func (s *BrailleSurface) FillCircle(center curve.Vec2, r float64, c color.NRGBA) {
	if s.faint(c) {
		return
	}
	x, y := s.ToCanvas(center)
	s.Canvas.FillDisc(x, y, s.radius(r), termColor(c))
}

func (s *BrailleSurface) StrokeCircle(center curve.Vec2, r float64, st render.Stroke) {
	cx, cy := s.ToCanvas(center)
	rr := float64(s.radius(r))
	col := termColor(st.ColorAt(center))
	steps := max(8, int(rr*4))
	for i := 0; i < steps; i++ {
		th := 2 * math.Pi * float64(i) / float64(steps)
		s.Canvas.Set(cx+int(math.Round(rr*math.Cos(th))), cy+int(math.Round(rr*math.Sin(th))), col)
	}
}

func (s *BrailleSurface) FillPolygon(pts []curve.Vec2, c color.NRGBA) {
	if len(pts) == 0 || s.faint(c) {
		return
	}
	closed := append(append([]curve.Vec2(nil), pts...), pts[0])
	s.StrokePath(closed, render.Stroke{Width: 1, Color: c})
}

// Text starts in the cell holding pos.
func (s *BrailleSurface) Text(str string, pos curve.Vec2, size float64, bold bool, c color.NRGBA) {
	x, y := s.ToCanvas(pos)
	s.Canvas.Label(x/2, y/4, str, termColor(c))
}

func (s *BrailleSurface) SetAlpha(a float64) { s.alpha = a }

func (s *BrailleSurface) SetShadow(float64, color.NRGBA) {}

func (s *BrailleSurface) faint(c color.NRGBA) bool {
	return float64(c.A)/255*s.alpha < minAlpha
}

func termColor(c color.NRGBA) lipgloss.Color {
	c.A = 255
	return lipgloss.Color(render.CSS(c))
}
