package render

import (
	"math"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/interaction"
	"github.com/san-kum/bezdyn/internal/physics"
	"github.com/san-kum/bezdyn/internal/sim"
)

const MaxFPS = 60

// Stats are display-only values derived once per tick.
type Stats struct {
	FPS       int
	Particles int
	Length    float64
	Energy    float64
}

// NewStats derives the tick statistics. wallDt is the unclamped frame delta
// and samples are the curve samples of the same frame.
func NewStats(wallDt float64, samples []curve.Vec2, st *sim.State, stiffness float64, particleCount int) Stats {
	return Stats{
		FPS:       FPS(wallDt),
		Particles: particleCount,
		Length:    curve.PolylineLength(samples),
		Energy:    physics.Energy(st, stiffness),
	}
}

// FPS is the reciprocal of the frame delta capped at MaxFPS.
func FPS(dt float64) int {
	if !(dt > 0) {
		return MaxFPS
	}
	return int(math.Min(MaxFPS, math.Round(1/dt)))
}

// MathInfo is the overlay readout for the pointer.
type MathInfo struct {
	ClosestT float64
	Distance float64
	Selected string
}

func NewMathInfo(st *sim.State, in sim.Input) MathInfo {
	t, d := st.Curve().Nearest(in.Pointer, CurveSegments)
	return MathInfo{
		ClosestT: t,
		Distance: d,
		Selected: interaction.SelectedLabel(in),
	}
}
