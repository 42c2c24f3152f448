package physics

import (
	"math"

	"github.com/san-kum/bezdyn/internal/curve"
)

const (
	OscillationAmplitude = 100.0
	OscillationFrequency = 1.0
)

// OscillationTargets returns the driven targets of P1 and P2 at time t.
func OscillationTargets(t float64) (p1, p2 curve.Vec2) {
	const a, f = OscillationAmplitude, OscillationFrequency
	p1 = curve.Vec(
		200+math.Sin(t*f)*a,
		100+math.Cos(t*f*0.7)*a*0.5,
	)
	p2 = curve.Vec(
		400+math.Cos(t*f*1.3)*a,
		100+math.Sin(t*f*0.9)*a*0.5,
	)
	return p1, p2
}
