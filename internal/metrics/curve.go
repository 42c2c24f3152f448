package metrics

import (
	"math"

	"github.com/san-kum/bezdyn/internal/session"
)

type PeakParticles struct {
	peak int
}

func NewPeakParticles() *PeakParticles { return &PeakParticles{} }

func (p *PeakParticles) Name() string { return "peak_particles" }

func (p *PeakParticles) Observe(rec session.FrameRecord) {
	if rec.Stats.Particles > p.peak {
		p.peak = rec.Stats.Particles
	}
}

func (p *PeakParticles) Value() float64 { return float64(p.peak) }
func (p *PeakParticles) Reset()         { p.peak = 0 }

type FinalLength struct {
	length float64
}

func NewFinalLength() *FinalLength { return &FinalLength{} }

func (f *FinalLength) Name() string                    { return "final_length" }
func (f *FinalLength) Observe(rec session.FrameRecord) { f.length = rec.Stats.Length }
func (f *FinalLength) Value() float64                  { return f.length }
func (f *FinalLength) Reset()                          { f.length = 0 }

// MaxSpeed tracks the fastest free point seen.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(rec session.FrameRecord) {
	m.max = math.Max(m.max, math.Max(rec.V1.Hypot(), rec.V2.Hypot()))
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }
