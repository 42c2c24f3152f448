// Package session owns one running simulation and its per-frame loop.
//
// A host drives the loop explicitly; the session never reschedules itself:
//
//	s := session.New(session.Options{Seed: 1})
//	s.Attach(surface)
//	for running {
//		s.Tick(elapsed)
//	}
//
// Each [Session.Tick] clamps the delta, steps the integrator, draws (or runs
// the headless equivalent when no surface is attached), derives statistics
// from the same curve samples and notifies observers.
//
// Commands ([Session.Reset], [Session.Randomize], [Session.SetParam],
// [Session.SetToggle]) and pointer events may be interleaved freely between
// ticks. A Session is not safe for concurrent use; [Ensemble] runs several
// independent sessions in parallel.
package session
