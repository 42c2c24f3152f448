package particles

import (
	"math/rand/v2"

	"github.com/san-kum/bezdyn/internal/curve"
)

// System is an unordered pool of particles. Update may reorder survivors.
type System struct {
	// Max caps the pool size. Zero leaves the pool unbounded; emissions
	// beyond a positive cap are dropped.
	Max int

	particles []Particle
	rng       *rand.Rand
	dropped   int
}

func NewSystem(rng *rand.Rand) *System {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &System{
		particles: make([]Particle, 0, 256),
		rng:       rng,
	}
}

// Emit appends count fresh particles at pos.
func (s *System) Emit(pos curve.Vec2, count int) {
	for i := 0; i < count; i++ {
		if s.Max > 0 && len(s.particles) >= s.Max {
			s.dropped += count - i
			return
		}
		s.particles = append(s.particles, s.spawn(pos))
	}
}

func (s *System) spawn(pos curve.Vec2) Particle {
	r := s.rng
	return Particle{
		Pos:    pos,
		Vel:    curve.Vec((r.Float64()-0.5)*2, (r.Float64()-0.5)*2),
		Radius: r.Float64()*3 + 1,
		Color:  r.IntN(len(Palette)),
		Life:   1.0,
		Decay:  r.Float64()*0.02 + 0.01,
	}
}

// Update advances every particle by one tick and removes the dead.
func (s *System) Update() {
	i := 0
	for i < len(s.particles) {
		p := &s.particles[i]
		p.step()
		if p.Alive() {
			i++
			continue
		}
		// swap in the last particle; it is stepped on the next pass
		last := len(s.particles) - 1
		s.particles[i] = s.particles[last]
		s.particles = s.particles[:last]
	}
}

func (s *System) Len() int {
	return len(s.particles)
}

// Particles returns the live pool. Callers must not retain or modify it.
func (s *System) Particles() []Particle {
	return s.particles
}

// Dropped reports how many emissions the cap has rejected since Reset.
func (s *System) Dropped() int {
	return s.dropped
}

// Rand exposes the generator driving emission so the sampler shares it.
func (s *System) Rand() *rand.Rand {
	return s.rng
}

func (s *System) Reset() {
	s.particles = s.particles[:0]
	s.dropped = 0
}
