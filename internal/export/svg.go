package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/render"
)

// SVGSurface records frames as SVG elements. Gradients and shadows become
// defs referenced by id.
type SVGSurface struct {
	width, height float64

	sb     strings.Builder
	alpha  float64
	shadow string
	nextID int
}

func NewSVGSurface(width, height float64) *SVGSurface {
	return &SVGSurface{width: width, height: height, alpha: 1}
}

func (s *SVGSurface) Size() (float64, float64) { return s.width, s.height }

// String returns the complete document.
func (s *SVGSurface) String() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
%s</svg>`, s.width, s.height, s.width, s.height, s.sb.String())
}

func (s *SVGSurface) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

// paint returns an SVG colour plus opacity with the global alpha applied.
func (s *SVGSurface) paint(c color.NRGBA) (string, float64) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 255 * s.alpha
}

func (s *SVGSurface) filter() string {
	if s.shadow == "" {
		return ""
	}
	return fmt.Sprintf(` filter="url(#%s)"`, s.shadow)
}

// Clear drops everything recorded so far.
func (s *SVGSurface) Clear(c color.NRGBA) {
	s.sb.Reset()
	s.nextID = 0
	s.shadow = ""
	fill, op := s.paint(c)
	fmt.Fprintf(&s.sb, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\" fill-opacity=\"%.3g\"/>\n", fill, op)
}

func (s *SVGSurface) FillRect(r curve.Rect, c color.NRGBA) {
	fill, op := s.paint(c)
	fmt.Fprintf(&s.sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\" fill-opacity=\"%.3g\"/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), fill, op)
}

func pathData(pts []curve.Vec2, closed bool) string {
	var d strings.Builder
	for i, p := range pts {
		if i == 0 {
			fmt.Fprintf(&d, "M%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&d, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	if closed {
		d.WriteString(" Z")
	}
	return d.String()
}

// stroke returns the stroke attributes, emitting a gradient def if needed.
func (s *SVGSurface) stroke(st render.Stroke) string {
	if g := st.Gradient; g != nil {
		id := s.id("g")
		fmt.Fprintf(&s.sb, "<defs><linearGradient id=\"%s\" gradientUnits=\"userSpaceOnUse\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\">",
			id, g.From.X, g.From.Y, g.To.X, g.To.Y)
		for _, stop := range g.Stops {
			c, op := s.paint(stop.Color)
			fmt.Fprintf(&s.sb, "<stop offset=\"%.3g\" stop-color=\"%s\" stop-opacity=\"%.3g\"/>", stop.Offset, c, op)
		}
		s.sb.WriteString("</linearGradient></defs>\n")
		return fmt.Sprintf(`stroke="url(#%s)" stroke-width="%.3g"`, id, st.Width)
	}
	c, op := s.paint(st.Color)
	return fmt.Sprintf(`stroke="%s" stroke-opacity="%.3g" stroke-width="%.3g"`, c, op, st.Width)
}

func (s *SVGSurface) StrokePath(pts []curve.Vec2, st render.Stroke) {
	if len(pts) < 2 {
		return
	}
	attrs := s.stroke(st)
	fmt.Fprintf(&s.sb, "<path fill=\"none\" stroke-linecap=\"round\" stroke-linejoin=\"round\" %s d=\"%s\"%s/>\n",
		attrs, pathData(pts, false), s.filter())
}

func (s *SVGSurface) FillCircle(center curve.Vec2, r float64, c color.NRGBA) {
	fill, op := s.paint(c)
	fmt.Fprintf(&s.sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.2f\" fill=\"%s\" fill-opacity=\"%.3g\"%s/>\n",
		center.X, center.Y, r, fill, op, s.filter())
}

func (s *SVGSurface) StrokeCircle(center curve.Vec2, r float64, st render.Stroke) {
	attrs := s.stroke(st)
	fmt.Fprintf(&s.sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.2f\" fill=\"none\" %s/>\n", center.X, center.Y, r, attrs)
}

func (s *SVGSurface) FillPolygon(pts []curve.Vec2, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	fill, op := s.paint(c)
	fmt.Fprintf(&s.sb, "<path fill=\"%s\" fill-opacity=\"%.3g\" d=\"%s\"/>\n", fill, op, pathData(pts, true))
}

func (s *SVGSurface) Text(str string, pos curve.Vec2, size float64, bold bool, c color.NRGBA) {
	fill, op := s.paint(c)
	weight := "normal"
	if bold {
		weight = "bold"
	}
	fmt.Fprintf(&s.sb, "<text x=\"%.1f\" y=\"%.1f\" font-family=\"sans-serif\" font-size=\"%.0f\" font-weight=\"%s\" fill=\"%s\" fill-opacity=\"%.3g\">%s</text>\n",
		pos.X, pos.Y, size, weight, fill, op, escape(str))
}

func (s *SVGSurface) SetAlpha(a float64) { s.alpha = a }

func (s *SVGSurface) SetShadow(blur float64, c color.NRGBA) {
	if blur <= 0 {
		s.shadow = ""
		return
	}
	s.shadow = s.id("f")
	col, op := s.paint(c)
	fmt.Fprintf(&s.sb, "<defs><filter id=\"%s\" x=\"-50%%\" y=\"-50%%\" width=\"200%%\" height=\"200%%\"><feDropShadow dx=\"0\" dy=\"0\" stdDeviation=\"%.3g\" flood-color=\"%s\" flood-opacity=\"%.3g\"/></filter></defs>\n",
		s.shadow, blur/2, col, op)
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }

// TrajectoryToSVG plots a point series fitted to width×height with 10%
// padding. Image y grows downward like the canvas, so points are not
// flipped.
func TrajectoryToSVG(points []curve.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	scaled := make([]curve.Vec2, len(points))
	for i, p := range points {
		scaled[i] = curve.Vec(
			(p.X-minX)/rangeX*float64(width),
			(p.Y-minY)/rangeY*float64(height),
		)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
</svg>`, width, height, width, height, render.CSS(render.Background), strokeColor, pathData(scaled, false))
	return sb.String()
}
