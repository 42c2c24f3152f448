package render

import (
	"image/color"

	"github.com/san-kum/bezdyn/internal/curve"
)

// Surface is the immediate-mode drawing context a host provides.
// Coordinates are in surface pixels with y pointing down.
type Surface interface {
	Size() (width, height float64)
	// Clear paints the whole surface opaquely.
	Clear(c color.NRGBA)
	// FillRect composites c over r, honouring its alpha.
	FillRect(r curve.Rect, c color.NRGBA)
	StrokePath(pts []curve.Vec2, s Stroke)
	FillCircle(center curve.Vec2, radius float64, c color.NRGBA)
	StrokeCircle(center curve.Vec2, radius float64, s Stroke)
	FillPolygon(pts []curve.Vec2, c color.NRGBA)
	Text(s string, pos curve.Vec2, size float64, bold bool, c color.NRGBA)
	// SetAlpha sets the global alpha applied to subsequent fills.
	SetAlpha(a float64)
	// SetShadow enables a blurred shadow for subsequent fills. A zero blur
	// disables it.
	SetShadow(blur float64, c color.NRGBA)
}

type Stroke struct {
	Width    float64
	Color    color.NRGBA
	Gradient *Gradient
}

// ColorAt returns the stroke colour at p, resolving the gradient if set.
func (s Stroke) ColorAt(p curve.Vec2) color.NRGBA {
	if s.Gradient != nil {
		return s.Gradient.At(p)
	}
	return s.Color
}

type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a linear gradient between two points.
type Gradient struct {
	From  curve.Vec2
	To    curve.Vec2
	Stops []Stop
}

// At projects p onto the gradient axis and interpolates the stops. Points
// before From or past To take the end colours.
func (g *Gradient) At(p curve.Vec2) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	axis := g.To.Sub(g.From)
	l2 := axis.Hypot2()
	if l2 == 0 {
		return g.Stops[0].Color
	}
	t := p.Sub(g.From).Dot(axis) / l2
	return g.colorAtOffset(t)
}

func (g *Gradient) colorAtOffset(t float64) color.NRGBA {
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return last.Color
}
