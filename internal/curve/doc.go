// Package curve provides the 2D vector and cubic Bézier math used by the
// simulation and renderers.
//
//   - [Vec2]: plain value vector with the usual arithmetic
//   - [Cubic]: four control points with analytic evaluation
//   - [Tangent]: normalized derivative plus its magnitude
//
// # Example
//
//	c := curve.Cubic{P0: curve.Vec(100, 300), P1: curve.Vec(200, 100), P2: curve.Vec(400, 100), P3: curve.Vec(500, 300)}
//	mid := c.Eval(0.5)
//	tan := c.Tangent(0.5)
//
// Everything here is a pure function of its inputs.
package curve
