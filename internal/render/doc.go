// Package render draws a simulation frame onto a host [Surface] and derives
// the display statistics.
//
// The renderer never talks to a concrete toolkit. Hosts (the raylib window,
// the terminal view, the PNG and SVG exporters) implement Surface and hand
// it to [Renderer.Draw] once per tick:
//
//	r := render.NewRenderer()
//	samples := r.Draw(surface, render.Frame{
//		State:     &st,
//		Input:     in,
//		Particles: ps,
//		Config:    render.DefaultConfig(),
//	})
//	stats := render.NewStats(dt, samples, &st, params.Stiffness, ps.Len())
//
// Draw emits particles while it walks the curve and steps the particle
// system once. [Renderer.DrawStill] renders the same frame without touching
// any state, which is what exports use.
package render
