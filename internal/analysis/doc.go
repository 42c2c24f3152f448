// Package analysis inspects recorded control point trajectories.
//
//   - [Spectrum]: power spectrum of a uniformly sampled series
//   - [DominantFrequency]: strongest non-DC component
//   - [NewPhasePortrait]: position against velocity of one axis
//   - [UpCrossings]: positive-going threshold crossings
//
// # Oscillation check
//
// With auto-oscillation on, P1.x is driven at 1/(2π) Hz:
//
//	freq, _ := analysis.DominantFrequency(p1x, dt)
package analysis
