package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bezdyn/internal/physics"
	"github.com/san-kum/bezdyn/internal/render"
	"github.com/san-kum/bezdyn/internal/session"
	"github.com/san-kum/bezdyn/internal/sim"
)

const (
	DefaultWidth  = sim.DefaultWidth
	DefaultHeight = sim.DefaultHeight
	DefaultFPS    = 60
	DefaultFrames = 600
	DefaultSeed   = 1

	// MaxCanvasWidth and CanvasPadding size the canvas to its window.
	MaxCanvasWidth = 900
	CanvasPadding  = 40

	// MinCanvasSide is the smallest side that still leaves room inside the
	// boundary clamp.
	MinCanvasSide = 2*physics.BoundaryMargin + 1
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid value")
)

type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Render    RenderConfig    `yaml:"render"`
	Particles ParticlesConfig `yaml:"particles"`
	Run       RunConfig       `yaml:"run"`
	Seed      uint64          `yaml:"seed"`
	FPS       int             `yaml:"fps"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	Stiffness         float64 `yaml:"stiffness"`
	Damping           float64 `yaml:"damping"`
	Wind              float64 `yaml:"wind"`
	Gravity           float64 `yaml:"gravity"`
	EnvironmentForces bool    `yaml:"environment_forces"`
	AutoOscillate     bool    `yaml:"auto_oscillate"`
}

type RenderConfig struct {
	Particles bool    `yaml:"particles"`
	Trail     bool    `yaml:"trail"`
	Glow      float64 `yaml:"glow"`
	MathInfo  bool    `yaml:"math_info"`
}

type ParticlesConfig struct {
	// Max caps the particle pool; 0 leaves it unbounded.
	Max int `yaml:"max"`
}

// RunConfig drives headless runs.
type RunConfig struct {
	Dt     float64 `yaml:"dt"`
	Frames int     `yaml:"frames"`
}

func DefaultConfig() *Config {
	p := sim.DefaultParams()
	r := render.DefaultConfig()
	return &Config{
		Canvas: CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Physics: PhysicsConfig{
			Stiffness:         p.Stiffness,
			Damping:           p.Damping,
			Wind:              p.Wind,
			Gravity:           p.Gravity,
			EnvironmentForces: p.EnvironmentForces,
			AutoOscillate:     p.AutoOscillate,
		},
		Render: RenderConfig{
			Particles: r.ShowParticles,
			Trail:     r.Trail,
			Glow:      r.GlowIntensity,
			MathInfo:  r.ShowMathInfo,
		},
		Run:  RunConfig{Dt: 1.0 / DefaultFPS, Frames: DefaultFrames},
		Seed: DefaultSeed,
		FPS:  DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the session cannot run with. Physics knobs are
// deliberately unchecked.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 100 || c.Canvas.Height <= 100 {
		return fmt.Errorf("%w: canvas %.0fx%.0f", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	}
	if c.Particles.Max < 0 {
		return fmt.Errorf("%w: particles.max %d", ErrInvalid, c.Particles.Max)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	if c.Run.Dt <= 0 || c.Run.Frames < 0 {
		return fmt.Errorf("%w: run dt %v frames %d", ErrInvalid, c.Run.Dt, c.Run.Frames)
	}
	return nil
}

func (c *Config) SimParams() sim.Params {
	return sim.Params{
		Stiffness:         c.Physics.Stiffness,
		Damping:           c.Physics.Damping,
		Wind:              c.Physics.Wind,
		Gravity:           c.Physics.Gravity,
		EnvironmentForces: c.Physics.EnvironmentForces,
		AutoOscillate:     c.Physics.AutoOscillate,
		Width:             c.Canvas.Width,
		Height:            c.Canvas.Height,
	}
}

func (c *Config) RenderConfig() render.Config {
	return render.Config{
		ShowParticles: c.Render.Particles,
		Trail:         c.Render.Trail,
		GlowIntensity: c.Render.Glow,
		ShowMathInfo:  c.Render.MathInfo,
	}
}

// SessionOptions assembles everything session.New needs.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Params:       c.SimParams(),
		Render:       c.RenderConfig(),
		Seed:         c.Seed,
		MaxParticles: c.Particles.Max,
	}
}

// FitWidth sizes the canvas to an available window width, never below
// MinCanvasSide.
func FitWidth(available float64) float64 {
	return math.Max(MinCanvasSide, math.Min(MaxCanvasWidth, available-CanvasPadding))
}

// FitHeight clamps an available height to MinCanvasSide.
func FitHeight(available float64) float64 {
	return math.Max(MinCanvasSide, available)
}
