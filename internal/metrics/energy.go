package metrics

import "github.com/san-kum/bezdyn/internal/session"

type MeanEnergy struct {
	total   float64
	samples int
}

func NewMeanEnergy() *MeanEnergy { return &MeanEnergy{} }

func (e *MeanEnergy) Name() string { return "mean_energy" }

func (e *MeanEnergy) Observe(rec session.FrameRecord) {
	e.total += rec.Stats.Energy
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// Stillness is the fraction of frames whose energy stayed under threshold.
type Stillness struct {
	threshold float64
	still     int
	samples   int
}

func NewStillness(threshold float64) *Stillness {
	return &Stillness{threshold: threshold}
}

func (s *Stillness) Name() string { return "stillness" }

func (s *Stillness) Observe(rec session.FrameRecord) {
	s.samples++
	if rec.Stats.Energy < s.threshold {
		s.still++
	}
}

func (s *Stillness) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.still) / float64(s.samples)
}

func (s *Stillness) Reset() {
	s.still = 0
	s.samples = 0
}
