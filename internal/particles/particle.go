// Package particles implements the short-lived sprites emitted along the
// curve while it is drawn.
package particles

import "github.com/san-kum/bezdyn/internal/curve"

// Palette holds the sprite colours; Particle.Color indexes into it.
var Palette = [...]string{"#4cc9f0", "#4361ee", "#7209b7", "#f72585"}

const (
	velocityDrag = 0.98
	radiusShrink = 0.99
)

type Particle struct {
	Pos    curve.Vec2
	Vel    curve.Vec2
	Radius float64
	Color  int
	Life   float64
	Decay  float64
}

func (p *Particle) Alive() bool {
	return p.Life > 0
}

// ColorHex returns the palette entry of the particle.
func (p *Particle) ColorHex() string {
	return Palette[p.Color%len(Palette)]
}

func (p *Particle) step() {
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel = p.Vel.Mul(velocityDrag)
	p.Life -= p.Decay
	p.Radius *= radiusShrink
}
