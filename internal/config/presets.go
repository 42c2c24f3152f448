package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.Physics.Stiffness = 0.05
		c.Physics.Damping = 1.2
		c.Render.Glow = 0.8
	},
	"windy": func(c *Config) {
		c.Physics.Wind = 40
		c.Physics.EnvironmentForces = true
	},
	"heavy": func(c *Config) {
		c.Physics.Gravity = 60
		c.Physics.Damping = 0.6
		c.Physics.EnvironmentForces = true
	},
	"bouncy": func(c *Config) {
		c.Physics.Stiffness = 0.4
		c.Physics.Damping = 0.1
	},
	"oscillate": func(c *Config) {
		c.Physics.AutoOscillate = true
		c.Render.Trail = true
	},
	"stiff": func(c *Config) {
		c.Physics.Stiffness = 1.0
		c.Physics.Damping = 2.0
		c.Render.Particles = false
	},
}

// GetPreset returns a fresh default config with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

// Apply layers the named preset onto cfg.
func Apply(cfg *Config, name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	apply(cfg)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
