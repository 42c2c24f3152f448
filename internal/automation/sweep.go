package automation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/bezdyn/internal/metrics"
	"github.com/san-kum/bezdyn/internal/session"
)

// ParameterSweep runs one headless session per value of Param, evenly
// spaced over [Min, Max].
type ParameterSweep struct {
	Param    string
	Min, Max float64
	Steps    int
	Frames   int
	Dt       float64
	Seed     uint64
	Base     session.Options
}

// SweepResult holds the standard metrics of one sweep member.
type SweepResult struct {
	Value   float64
	Metrics map[string]float64
}

// Values returns the parameter values in member order.
func (sw *ParameterSweep) Values() []float64 {
	if sw.Steps == 1 {
		return []float64{sw.Min}
	}
	out := make([]float64, sw.Steps)
	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	for i := range out {
		out[i] = sw.Min + float64(i)*step
	}
	return out
}

// RunSweep executes the members in parallel. Member i is seeded Seed+i;
// the seed only drives particle emission, never the physics.
func RunSweep(ctx context.Context, sw *ParameterSweep, log *zap.Logger) ([]SweepResult, error) {
	if sw.Steps <= 0 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", ErrBadScenario)
	}
	if log == nil {
		log = zap.NewNop()
	}
	values := sw.Values()
	sets := make([]*metrics.Set, len(values))

	ens := session.NewEnsemble(sw.Base, len(values), sw.Seed)
	_, err := ens.Run(ctx, sw.Frames, sw.Dt, func(idx int, s *session.Session) error {
		if err := s.SetParam(sw.Param, values[idx]); err != nil {
			return err
		}
		sets[idx] = metrics.Standard()
		s.AddObserver(sets[idx])
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("automation: sweep %s: %w", sw.Param, err)
	}

	results := make([]SweepResult, len(values))
	for i, v := range values {
		results[i] = SweepResult{Value: v, Metrics: sets[i].Values()}
		log.Debug("sweep member",
			zap.String("param", sw.Param),
			zap.Float64("value", v),
			zap.Any("metrics", results[i].Metrics))
	}
	return results, nil
}
