package curve

import "math"

// Cubic is a cubic Bézier segment. P0 and P3 are the endpoints, P1 and P2
// the inner control points.
type Cubic struct {
	P0 Vec2
	P1 Vec2
	P2 Vec2
	P3 Vec2
}

// Tangent is the normalized derivative of a curve together with the
// magnitude it had before normalization.
type Tangent struct {
	Dir    Vec2
	Length float64
}

// Eval returns the point at parameter t:
//
//	B(t) = (1-t)³P0 + 3(1-t)²t·P1 + 3(1-t)t²·P2 + t³P3
//
// Eval(0) and Eval(1) return P0 and P3 exactly. Values of t outside [0, 1]
// extrapolate.
func (c Cubic) Eval(t float64) Vec2 {
	u := 1 - t
	tt := t * t
	uu := u * u
	uuu := uu * u
	ttt := tt * t

	return Vec2{
		X: uuu*c.P0.X + 3*uu*t*c.P1.X + 3*u*tt*c.P2.X + ttt*c.P3.X,
		Y: uuu*c.P0.Y + 3*uu*t*c.P1.Y + 3*u*tt*c.P2.Y + ttt*c.P3.Y,
	}
}

// Deriv returns B'(t) = 3(1-t)²(P1-P0) + 6(1-t)t(P2-P1) + 3t²(P3-P2).
func (c Cubic) Deriv(t float64) Vec2 {
	u := 1 - t
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)

	return Vec2{
		X: 3*u*u*d01.X + 6*u*t*d12.X + 3*t*t*d23.X,
		Y: 3*u*u*d01.Y + 6*u*t*d12.Y + 3*t*t*d23.Y,
	}
}

// Tangent returns the unit direction of the derivative at t. A zero-length
// derivative yields a zero direction rather than NaNs.
func (c Cubic) Tangent(t float64) Tangent {
	d := c.Deriv(t)
	l := d.Hypot()
	if l == 0 {
		return Tangent{}
	}
	return Tangent{Dir: Vec2{X: d.X / l, Y: d.Y / l}, Length: l}
}

// Sample returns n+1 points at t = i/n for i = 0..n.
func (c Cubic) Sample(n int) []Vec2 {
	return c.SampleInto(nil, n)
}

// SampleInto is like Sample but reuses dst when it has enough capacity.
func (c Cubic) SampleInto(dst []Vec2, n int) []Vec2 {
	if n < 1 {
		n = 1
	}
	if cap(dst) < n+1 {
		dst = make([]Vec2, n+1)
	}
	dst = dst[:n+1]
	for i := 0; i <= n; i++ {
		dst[i] = c.Eval(float64(i) / float64(n))
	}
	return dst
}

// ArcLength approximates the curve length by the polyline through n+1
// samples.
func (c Cubic) ArcLength(n int) float64 {
	return PolylineLength(c.Sample(n))
}

// PolylineLength sums the distances between consecutive points.
func PolylineLength(pts []Vec2) float64 {
	length := 0.0
	for i := 1; i < len(pts); i++ {
		length += pts[i].Distance(pts[i-1])
	}
	return length
}

// BoundingBox returns the bounds of the control polygon, which contain the
// curve for t in [0, 1].
func (c Cubic) BoundingBox() Rect {
	r := Rect{Min: c.P0, Max: c.P0}
	for _, p := range [...]Vec2{c.P1, c.P2, c.P3} {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Nearest returns the sample parameter closest to pt among n+1 uniform
// samples, and its distance. Ties keep the smaller t. With no samples closer
// than +Inf (NaN input) it reports t = 0.5.
func (c Cubic) Nearest(pt Vec2, n int) (t, dist float64) {
	if n < 1 {
		n = 1
	}
	t, dist = 0.5, math.Inf(1)
	for i := 0; i <= n; i++ {
		ti := float64(i) / float64(n)
		d := c.Eval(ti).Distance(pt)
		if d < dist {
			t, dist = ti, d
		}
	}
	return t, dist
}
