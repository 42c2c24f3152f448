package sim

import (
	"errors"
	"fmt"
)

// Domain errors raised at the edges of the simulation. The per-frame core
// never fails.
var (
	// ErrUnknownParam indicates a parameter name the surface does not know.
	ErrUnknownParam = errors.New("sim: unknown parameter")

	// ErrUnknownToggle indicates a toggle name the surface does not know.
	ErrUnknownToggle = errors.New("sim: unknown toggle")

	// ErrInvalidBounds indicates a canvas too small to hold the clamp region.
	ErrInvalidBounds = errors.New("sim: canvas smaller than clamp margins")

	// ErrNoFrames indicates a run that produced no frames.
	ErrNoFrames = errors.New("sim: no frames recorded")
)

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
