// Package interaction turns pointer events into control point targets.
package interaction

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/sim"
)

const (
	PickRadius = 20.0

	randomInset    = 100.0
	randomVelocity = 5.0
)

// Controller holds no physics state of its own; it edits the state and
// input it was built with.
type Controller struct {
	state *sim.State
	input *sim.Input
}

func NewController(st *sim.State, in *sim.Input) *Controller {
	return &Controller{state: st, input: in}
}

// Move records the pointer and retargets the dragged point, if any.
func (c *Controller) Move(x, y float64) {
	c.input.Pointer = curve.Vec(x, y)
	if c.input.Pressed && c.input.Dragging != sim.NoDrag {
		c.state.Points[c.input.Dragging].Target = c.input.Pointer
	}
}

// Press picks the first free point within PickRadius of the pointer and
// snaps its target there. It returns the picked index or sim.NoDrag.
func (c *Controller) Press() int {
	c.input.Pressed = true
	for _, i := range sim.FreeIndices {
		pt := &c.state.Points[i]
		if pt.Pos.Distance(c.input.Pointer) < PickRadius {
			c.input.Dragging = i
			pt.Target = c.input.Pointer
			return i
		}
	}
	return sim.NoDrag
}

func (c *Controller) Release() {
	c.input.Pressed = false
	c.input.Dragging = sim.NoDrag
}

// Leave handles the pointer exiting the surface.
func (c *Controller) Leave() {
	c.Release()
}

// Randomize scatters the free points inside the canvas with random
// velocities. Targets follow the new positions.
func (c *Controller) Randomize(rng *rand.Rand, width, height float64) {
	for _, i := range sim.FreeIndices {
		pt := &c.state.Points[i]
		pt.Pos = curve.Vec(
			rng.Float64()*(width-2*randomInset)+randomInset,
			rng.Float64()*(height-2*randomInset)+randomInset,
		)
		pt.Vel = curve.Vec(
			(rng.Float64()-0.5)*randomVelocity,
			(rng.Float64()-0.5)*randomVelocity,
		)
		pt.Target = pt.Pos
	}
}

// Reset restores the default layout and clears pointer and oscillation state.
func (c *Controller) Reset() {
	*c.state = sim.DefaultState()
	*c.input = sim.NewInput()
}

// Selected names the dragged point for display.
func (c *Controller) Selected() string {
	return SelectedLabel(*c.input)
}

func SelectedLabel(in sim.Input) string {
	if in.Dragging == sim.NoDrag {
		return "None"
	}
	return fmt.Sprintf("P%d", in.Dragging)
}
