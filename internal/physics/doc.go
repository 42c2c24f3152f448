// Package physics advances the free control points of the curve.
//
// Each frame, [Integrator.Step] resolves targets, applies the environment
// forces and integrates a unit-mass spring-damper with one explicit Euler
// step:
//
//	v += (-k·(p - target) - c·v)·dt
//	p += v·dt
//
// Positions are clamped to the canvas interior afterwards; velocities are
// left untouched by the clamp.
//
// # Energy
//
// [Energy] reports kinetic plus spring potential over the free points:
//
//	e := physics.Energy(&st, params.Stiffness)
package physics
