package sim

import (
	"fmt"
	"sort"

	"github.com/san-kum/bezdyn/internal/curve"
)

const (
	NumPoints = 4
	// NoDrag marks Input.Dragging when no control point is held.
	NoDrag = -1

	DefaultWidth     = 900
	DefaultHeight    = 600
	DefaultStiffness = 0.1
	DefaultDamping   = 0.95
)

// FreeIndices lists the spring-driven control points.
var FreeIndices = [...]int{1, 2}

type ControlPoint struct {
	Pos    curve.Vec2
	Vel    curve.Vec2
	Target curve.Vec2
	Fixed  bool
}

// State is the mutable geometry of the simulation. P0 and P3 are fixed
// anchors, P1 and P2 are free.
type State struct {
	Points          [NumPoints]ControlPoint
	OscillationTime float64
}

// DefaultState returns the default layout with zero velocities and targets
// on the points themselves.
func DefaultState() State {
	anchor := func(x, y float64) ControlPoint {
		p := curve.Vec(x, y)
		return ControlPoint{Pos: p, Target: p, Fixed: true}
	}
	free := func(x, y float64) ControlPoint {
		p := curve.Vec(x, y)
		return ControlPoint{Pos: p, Target: p}
	}
	return State{
		Points: [NumPoints]ControlPoint{
			anchor(100, 300),
			free(200, 100),
			free(400, 100),
			anchor(500, 300),
		},
	}
}

// Curve returns the Bézier segment described by the control point positions.
func (s *State) Curve() curve.Cubic {
	return curve.Cubic{
		P0: s.Points[0].Pos,
		P1: s.Points[1].Pos,
		P2: s.Points[2].Pos,
		P3: s.Points[3].Pos,
	}
}

// Input is the pointer state as delivered by the host.
type Input struct {
	Pointer  curve.Vec2
	Pressed  bool
	Dragging int
}

func NewInput() Input {
	return Input{Dragging: NoDrag}
}

func (in Input) IsDragging(i int) bool {
	return in.Dragging == i
}

// Params are the physics knobs exposed to the parameter surface. Values are
// not range checked.
type Params struct {
	Stiffness         float64
	Damping           float64
	Wind              float64
	Gravity           float64
	EnvironmentForces bool
	AutoOscillate     bool
	Width             float64
	Height            float64
}

func DefaultParams() Params {
	return Params{
		Stiffness:         DefaultStiffness,
		Damping:           DefaultDamping,
		EnvironmentForces: true,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
	}
}

func (p *Params) fields() map[string]*float64 {
	return map[string]*float64{
		"stiffness": &p.Stiffness,
		"damping":   &p.Damping,
		"wind":      &p.Wind,
		"gravity":   &p.Gravity,
	}
}

// ParamNames lists the numeric parameters accepted by Set and Get.
func ParamNames() []string {
	var p Params
	names := make([]string, 0, 4)
	for k := range p.fields() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (p *Params) Set(name string, value float64) error {
	f, ok := p.fields()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	*f = value
	return nil
}

func (p *Params) Get(name string) (float64, error) {
	f, ok := p.fields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return *f, nil
}

// Bounds returns the rectangle free points are clamped into.
func (p Params) Bounds(margin float64) curve.Rect {
	return curve.Rect{
		Min: curve.Vec(margin, margin),
		Max: curve.Vec(p.Width-margin, p.Height-margin),
	}
}
