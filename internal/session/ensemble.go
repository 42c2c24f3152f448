package session

import (
	"context"
	"sync"
)

// Ensemble runs independent headless sessions that differ only in seed and
// whatever the setup hook changes.
type Ensemble struct {
	base      Options
	numRuns   int
	seedStart uint64
}

func NewEnsemble(base Options, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

// Run builds one session per member with seed seedStart+idx, lets setup
// adjust it, then ticks frames steps of dt. Sessions are returned in member
// order; the first error wins.
func (e *Ensemble) Run(ctx context.Context, frames int, dt float64, setup func(idx int, s *Session) error) ([]*Session, error) {
	sessions := make([]*Session, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			opts := e.base
			opts.Seed = e.seedStart + uint64(idx)
			s := New(opts)
			if setup != nil {
				if err := setup(idx, s); err != nil {
					errs[idx] = err
					return
				}
			}
			sessions[idx] = s
			errs[idx] = s.Run(ctx, frames, dt)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return sessions, nil
}
