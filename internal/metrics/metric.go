// Package metrics reduces a stream of frame records to scalar summaries.
package metrics

import "github.com/san-kum/bezdyn/internal/session"

type Metric interface {
	Name() string
	Observe(rec session.FrameRecord)
	Value() float64
	Reset()
}

// Set fans frame records out to several metrics. It satisfies
// session.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Standard is the summary stored with every headless run.
func Standard() *Set {
	return NewSet(NewMeanEnergy(), NewPeakParticles(), NewFinalLength(), NewMaxSpeed(), NewStillness(0.05))
}

func (s *Set) OnFrame(rec session.FrameRecord) {
	for _, m := range s.metrics {
		m.Observe(rec)
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}
