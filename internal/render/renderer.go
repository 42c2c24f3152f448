package render

import (
	"fmt"
	"image/color"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/particles"
	"github.com/san-kum/bezdyn/internal/sim"
)

const (
	CurveSegments = 100
	TangentSteps  = 8
	EmitChance    = 0.1

	curveWidth       = 3.0
	polygonWidth     = 1.0
	pointRadius      = 8.0
	pointRingWidth   = 2.0
	pointLabelSize   = 16.0
	tangentLength    = 40.0
	tangentWidth     = 2.0
	arrowLength      = 10.0
	tangentDotRadius = 4.0
	tangentGlow      = 15.0
	tangentLabelSize = 12.0
)

var (
	Background   = Hex("#0a0e17")
	TrailOverlay = RGBA(0, 0, 0, 0.1)

	glowInner    = Stroke{Width: 10, Color: RGBA(76, 201, 240, 0.3)}
	glowOuter    = Stroke{Width: 20, Color: RGBA(76, 201, 240, 0.2)}
	polygonColor = RGBA(76, 201, 240, 0.3)

	fixedColor   = Hex("#7209b7")
	draggedColor = Hex("#f72585")
	freeColor    = Hex("#4361ee")
	white        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	TangentPalette = []color.NRGBA{
		Hex("#ff006e"),
		Hex("#fb5607"),
		Hex("#ffbe0b"),
		Hex("#3a86ff"),
		Hex("#8338ec"),
	}

	curveStops = []Stop{
		{Offset: 0, Color: Hex("#4cc9f0")},
		{Offset: 0.5, Color: Hex("#7209b7")},
		{Offset: 1, Color: Hex("#f72585")},
	}

	particleColors = func() []color.NRGBA {
		out := make([]color.NRGBA, len(particles.Palette))
		for i, h := range particles.Palette {
			out[i] = Hex(h)
		}
		return out
	}()
)

// Config holds the presentation toggles. None of them affect physics.
type Config struct {
	ShowParticles bool
	Trail         bool
	GlowIntensity float64
	ShowMathInfo  bool
}

func DefaultConfig() Config {
	return Config{
		ShowParticles: true,
		Trail:         true,
		GlowIntensity: 0.8,
	}
}

// Frame bundles everything one draw call reads.
type Frame struct {
	State     *sim.State
	Input     sim.Input
	Particles *particles.System
	Config    Config
}

func (f Frame) particlesOn() bool {
	return f.Config.ShowParticles && f.Particles != nil
}

// Renderer keeps the sample buffer between frames.
type Renderer struct {
	samples []curve.Vec2
}

func NewRenderer() *Renderer {
	return &Renderer{samples: make([]curve.Vec2, 0, CurveSegments+1)}
}

// Walk samples the curve at CurveSegments resolution. With emit set and
// particles shown, each sample spawns one particle with chance EmitChance.
// The returned slice is reused by the next call.
func (r *Renderer) Walk(f Frame, emit bool) []curve.Vec2 {
	r.samples = f.State.Curve().SampleInto(r.samples, CurveSegments)
	if emit && f.particlesOn() {
		rng := f.Particles.Rand()
		for _, p := range r.samples {
			if rng.Float64() < EmitChance {
				f.Particles.Emit(p, 1)
			}
		}
	}
	return r.samples
}

// Advance runs the frame side effects without drawing: emission along the
// curve followed by one particle update.
func (r *Renderer) Advance(f Frame) []curve.Vec2 {
	pts := r.Walk(f, true)
	if f.particlesOn() {
		f.Particles.Update()
	}
	return pts
}

// Draw renders one animated frame and returns the curve samples it used.
func (r *Renderer) Draw(s Surface, f Frame) []curve.Vec2 {
	w, h := s.Size()
	if f.Config.Trail {
		s.FillRect(curve.Rect{Max: curve.Vec(w, h)}, TrailOverlay)
	} else {
		s.Clear(Background)
	}

	pts := r.Walk(f, true)
	r.drawCurve(s, pts, f)
	if f.particlesOn() {
		f.Particles.Update()
		drawParticles(s, f.Particles)
	}
	drawControlPoints(s, f)
	drawTangents(s, f)
	return pts
}

// DrawStill renders the frame on a solid background without emitting or
// stepping particles.
func (r *Renderer) DrawStill(s Surface, f Frame) []curve.Vec2 {
	s.Clear(Background)
	pts := r.Walk(f, false)
	r.drawCurve(s, pts, f)
	if f.particlesOn() {
		drawParticles(s, f.Particles)
	}
	drawControlPoints(s, f)
	drawTangents(s, f)
	return pts
}

// CurveGradient spans the anchors.
func CurveGradient(st *sim.State) *Gradient {
	return &Gradient{
		From:  st.Points[0].Pos,
		To:    st.Points[3].Pos,
		Stops: curveStops,
	}
}

func (r *Renderer) drawCurve(s Surface, pts []curve.Vec2, f Frame) {
	if f.Config.GlowIntensity > 0 {
		s.StrokePath(pts, glowInner)
		s.StrokePath(pts, glowOuter)
	}
	s.StrokePath(pts, Stroke{Width: curveWidth, Gradient: CurveGradient(f.State)})
}

func drawParticles(s Surface, ps *particles.System) {
	for _, p := range ps.Particles() {
		s.SetAlpha(p.Life)
		s.FillCircle(p.Pos, p.Radius, particleColors[p.Color%len(particleColors)])
	}
	s.SetAlpha(1)
}

func drawControlPoints(s Surface, f Frame) {
	st := f.State
	poly := make([]curve.Vec2, sim.NumPoints)
	for i := range st.Points {
		poly[i] = st.Points[i].Pos
	}
	s.StrokePath(poly, Stroke{Width: polygonWidth, Color: polygonColor})

	for i, pt := range st.Points {
		fill := freeColor
		switch {
		case pt.Fixed:
			fill = fixedColor
		case f.Input.IsDragging(i):
			fill = draggedColor
		}
		s.FillCircle(pt.Pos, pointRadius, fill)
		s.StrokeCircle(pt.Pos, pointRadius, Stroke{Width: pointRingWidth, Color: white})
		s.Text(fmt.Sprintf("P%d", i), pt.Pos.Add(curve.Vec(-10, -15)), pointLabelSize, true, white)
	}
}

func drawTangents(s Surface, f Frame) {
	c := f.State.Curve()
	for i := 0; i <= TangentSteps; i++ {
		t := float64(i) / TangentSteps
		pt := c.Eval(t)
		tan := c.Tangent(t)
		col := TangentPalette[i%len(TangentPalette)]

		tip := pt.Add(tan.Dir.Mul(tangentLength))
		s.StrokePath([]curve.Vec2{pt, tip}, Stroke{Width: tangentWidth, Color: col})
		s.FillPolygon(ArrowHead(tip, tan.Dir.Angle()), col)

		s.SetShadow(tangentGlow, col)
		s.FillCircle(pt, tangentDotRadius, col)
		s.SetShadow(0, color.NRGBA{})

		if f.Config.ShowMathInfo {
			s.Text(fmt.Sprintf("|T|=%.2f", tan.Length), pt.Add(curve.Vec(10, -10)), tangentLabelSize, false, white)
		}
	}
}

// ArrowHead returns the triangle pointing along angle with its apex at tip.
func ArrowHead(tip curve.Vec2, angle float64) []curve.Vec2 {
	return []curve.Vec2{
		tip,
		tip.Add(curve.Vec(-arrowLength, -arrowLength/2).Rotate(angle)),
		tip.Add(curve.Vec(-arrowLength, arrowLength/2).Rotate(angle)),
	}
}
