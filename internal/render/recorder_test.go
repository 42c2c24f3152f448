package render

import (
	"image/color"

	"github.com/san-kum/bezdyn/internal/curve"
)

type op struct {
	kind   string
	pts    []curve.Vec2
	stroke Stroke
	color  color.NRGBA
	text   string
	value  float64
}

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	w, h float64
	ops  []op
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{w: 900, h: 600}
}

func (r *recordingSurface) Size() (float64, float64) { return r.w, r.h }

func (r *recordingSurface) Clear(c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "clear", color: c})
}

func (r *recordingSurface) FillRect(rect curve.Rect, c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "rect", pts: []curve.Vec2{rect.Min, rect.Max}, color: c})
}

func (r *recordingSurface) StrokePath(pts []curve.Vec2, s Stroke) {
	cp := append([]curve.Vec2(nil), pts...)
	r.ops = append(r.ops, op{kind: "path", pts: cp, stroke: s})
}

func (r *recordingSurface) FillCircle(c curve.Vec2, radius float64, col color.NRGBA) {
	r.ops = append(r.ops, op{kind: "circle", pts: []curve.Vec2{c}, value: radius, color: col})
}

func (r *recordingSurface) StrokeCircle(c curve.Vec2, radius float64, s Stroke) {
	r.ops = append(r.ops, op{kind: "ring", pts: []curve.Vec2{c}, value: radius, stroke: s})
}

func (r *recordingSurface) FillPolygon(pts []curve.Vec2, c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "poly", pts: pts, color: c})
}

func (r *recordingSurface) Text(s string, pos curve.Vec2, size float64, bold bool, c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "text", pts: []curve.Vec2{pos}, text: s, value: size, color: c})
}

func (r *recordingSurface) SetAlpha(a float64) {
	r.ops = append(r.ops, op{kind: "alpha", value: a})
}

func (r *recordingSurface) SetShadow(blur float64, c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "shadow", value: blur, color: c})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (r *recordingSurface) paths(width float64) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == "path" && o.stroke.Width == width {
			out = append(out, o)
		}
	}
	return out
}

func (r *recordingSurface) texts() []string {
	var out []string
	for _, o := range r.ops {
		if o.kind == "text" {
			out = append(out, o.text)
		}
	}
	return out
}
