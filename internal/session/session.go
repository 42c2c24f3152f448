package session

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/interaction"
	"github.com/san-kum/bezdyn/internal/logging"
	"github.com/san-kum/bezdyn/internal/particles"
	"github.com/san-kum/bezdyn/internal/physics"
	"github.com/san-kum/bezdyn/internal/render"
	"github.com/san-kum/bezdyn/internal/sim"
)

const glowOn = 0.8

type Options struct {
	Params       sim.Params
	Render       render.Config
	Seed         uint64
	MaxParticles int
	Logger       *zap.Logger
}

// DefaultOptions mirrors the start-up state of the lab.
func DefaultOptions() Options {
	return Options{
		Params: sim.DefaultParams(),
		Render: render.DefaultConfig(),
		Seed:   1,
	}
}

// FrameRecord is what observers see after each tick.
type FrameRecord struct {
	Frame int
	Time  float64
	Dt    float64
	Stats render.Stats
	P1    curve.Vec2
	P2    curve.Vec2
	V1    curve.Vec2
	V2    curve.Vec2
	Math  *render.MathInfo
}

type Observer interface {
	OnFrame(rec FrameRecord)
}

type ObserverFunc func(rec FrameRecord)

func (f ObserverFunc) OnFrame(rec FrameRecord) { f(rec) }

type Session struct {
	state  sim.State
	input  sim.Input
	params sim.Params
	cfg    render.Config

	rng        *rand.Rand
	particles  *particles.System
	integrator *physics.Integrator
	ctrl       *interaction.Controller
	renderer   *render.Renderer
	surface    render.Surface

	stats    render.Stats
	mathInfo render.MathInfo

	frame     int
	time      float64
	lastStamp float64
	stamped   bool

	observers []Observer
	log       *zap.Logger
}

func New(opts Options) *Session {
	if opts.Params.Width == 0 || opts.Params.Height == 0 {
		opts.Params.Width, opts.Params.Height = sim.DefaultWidth, sim.DefaultHeight
	}
	s := &Session{
		state:      sim.DefaultState(),
		input:      sim.NewInput(),
		params:     opts.Params,
		cfg:        opts.Render,
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		particles:  particles.NewSystem(rand.New(rand.NewPCG(opts.Seed+1, opts.Seed^0xbf58476d1ce4e5b9))),
		integrator: physics.NewIntegrator(),
		renderer:   render.NewRenderer(),
		log:        logging.OrNop(opts.Logger),
	}
	s.particles.Max = opts.MaxParticles
	s.ctrl = interaction.NewController(&s.state, &s.input)
	s.stats = render.Stats{FPS: render.MaxFPS}
	return s
}

// Attach sets the surface Tick draws on. A nil surface makes ticks headless.
func (s *Session) Attach(surface render.Surface) { s.surface = surface }

func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Session) frameData() render.Frame {
	return render.Frame{
		State:     &s.state,
		Input:     s.input,
		Particles: s.particles,
		Config:    s.cfg,
	}
}

// Tick advances the simulation by one frame. dt is the raw wall-clock delta
// in seconds; physics sees it clamped, the FPS readout does not.
func (s *Session) Tick(dt float64) render.Stats {
	applied := s.integrator.Step(&s.state, s.input, s.params, dt)
	s.time += applied

	var samples []curve.Vec2
	if s.surface != nil {
		samples = s.renderer.Draw(s.surface, s.frameData())
	} else {
		samples = s.renderer.Advance(s.frameData())
	}

	s.stats = render.NewStats(dt, samples, &s.state, s.params.Stiffness, s.particles.Len())

	rec := FrameRecord{
		Frame: s.frame,
		Time:  s.time,
		Dt:    applied,
		Stats: s.stats,
		P1:    s.state.Points[1].Pos,
		P2:    s.state.Points[2].Pos,
		V1:    s.state.Points[1].Vel,
		V2:    s.state.Points[2].Vel,
	}
	if s.cfg.ShowMathInfo {
		s.mathInfo = render.NewMathInfo(&s.state, s.input)
		mi := s.mathInfo
		rec.Math = &mi
	}
	s.frame++

	for _, o := range s.observers {
		o.OnFrame(rec)
	}
	return s.stats
}

// Frame adapts a host scheduler that delivers monotonic timestamps in
// milliseconds. The first call has no predecessor and ticks with dt 0.
func (s *Session) Frame(timestampMs float64) render.Stats {
	dt := 0.0
	if s.stamped {
		dt = (timestampMs - s.lastStamp) / 1000
	}
	s.lastStamp, s.stamped = timestampMs, true
	return s.Tick(dt)
}

// Run ticks headlessly for frames steps of dt, stopping early when ctx is
// cancelled.
func (s *Session) Run(ctx context.Context, frames int, dt float64) error {
	if frames <= 0 {
		return sim.ErrNoFrames
	}
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return &sim.FrameError{Frame: s.frame, Time: s.time, Wrapped: ctx.Err()}
		default:
		}
		s.Tick(dt)
	}
	return nil
}

// Snapshot draws the current frame onto surface without advancing or
// emitting anything.
func (s *Session) Snapshot(surface render.Surface) {
	s.renderer.DrawStill(surface, s.frameData())
}

func (s *Session) Reset() {
	s.ctrl.Reset()
	s.log.Debug("curve reset")
}

func (s *Session) Randomize() {
	s.ctrl.Randomize(s.rng, s.params.Width, s.params.Height)
	s.log.Debug("curve randomized",
		zap.Stringer("p1", s.state.Points[1].Pos),
		zap.Stringer("p2", s.state.Points[2].Pos))
}

// ClearParticles empties the particle pool.
func (s *Session) ClearParticles() {
	s.particles.Reset()
}

func (s *Session) SetParam(name string, value float64) error {
	if err := s.params.Set(name, value); err != nil {
		return err
	}
	s.log.Debug("param set", zap.String("name", name), zap.Float64("value", value))
	return nil
}

func (s *Session) Param(name string) (float64, error) {
	return s.params.Get(name)
}

var toggleNames = []string{"environment", "glow", "math", "oscillate", "particles", "trail"}

// ToggleNames lists the names SetToggle accepts.
func ToggleNames() []string {
	return append([]string(nil), toggleNames...)
}

// SetToggle flips a named boolean. Enabling oscillation restarts its clock.
func (s *Session) SetToggle(name string, on bool) error {
	switch name {
	case "particles":
		s.cfg.ShowParticles = on
	case "trail":
		s.cfg.Trail = on
	case "glow":
		s.cfg.GlowIntensity = 0
		if on {
			s.cfg.GlowIntensity = glowOn
		}
	case "math":
		s.cfg.ShowMathInfo = on
	case "oscillate":
		s.params.AutoOscillate = on
		if on {
			s.state.OscillationTime = 0
		}
	case "environment":
		s.params.EnvironmentForces = on
	default:
		return fmt.Errorf("%w: %q", sim.ErrUnknownToggle, name)
	}
	s.log.Debug("toggle set", zap.String("name", name), zap.Bool("on", on))
	return nil
}

func (s *Session) Toggle(name string) (bool, error) {
	switch name {
	case "particles":
		return s.cfg.ShowParticles, nil
	case "trail":
		return s.cfg.Trail, nil
	case "glow":
		return s.cfg.GlowIntensity > 0, nil
	case "math":
		return s.cfg.ShowMathInfo, nil
	case "oscillate":
		return s.params.AutoOscillate, nil
	case "environment":
		return s.params.EnvironmentForces, nil
	}
	return false, fmt.Errorf("%w: %q", sim.ErrUnknownToggle, name)
}

// Flip inverts a toggle and returns its new value.
func (s *Session) Flip(name string) (bool, error) {
	on, err := s.Toggle(name)
	if err != nil {
		return false, err
	}
	return !on, s.SetToggle(name, !on)
}

// Resize changes the canvas the clamp region is derived from.
func (s *Session) Resize(width, height float64) error {
	floor := 2 * physics.BoundaryMargin
	if width <= floor || height <= floor {
		return fmt.Errorf("%w: %.0fx%.0f", sim.ErrInvalidBounds, width, height)
	}
	s.params.Width, s.params.Height = width, height
	s.log.Debug("canvas resized", zap.Float64("width", width), zap.Float64("height", height))
	return nil
}

func (s *Session) PointerMove(x, y float64) { s.ctrl.Move(x, y) }

func (s *Session) PointerDown() {
	if i := s.ctrl.Press(); i != sim.NoDrag {
		s.log.Debug("drag start", zap.Int("point", i))
	}
}

func (s *Session) PointerUp()    { s.ctrl.Release() }
func (s *Session) PointerLeave() { s.ctrl.Leave() }

func (s *Session) State() sim.State             { return s.state }
func (s *Session) Input() sim.Input             { return s.input }
func (s *Session) Params() sim.Params           { return s.params }
func (s *Session) RenderConfig() render.Config  { return s.cfg }
func (s *Session) Stats() render.Stats          { return s.stats }
func (s *Session) MathInfo() render.MathInfo    { return s.mathInfo }
func (s *Session) Particles() *particles.System { return s.particles }
func (s *Session) Time() float64                { return s.time }
func (s *Session) FrameCount() int              { return s.frame }
func (s *Session) Curve() curve.Cubic           { return s.state.Curve() }
func (s *Session) Energy() float64              { return physics.Energy(&s.state, s.params.Stiffness) }
