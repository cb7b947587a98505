package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/dronesim/internal/dynamo"
)

// Presets tune the flight feel. Fields a preset leaves out keep their defaults.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"gentle": func(c *Config) {
		c.Physics.Accel = 0.08
		c.Physics.Friction = 0.88
		c.Physics.MaxSpeed = 2.5
		c.Physics.RotationSpeed = 1.5
		c.Physics.Tilt = 12
	},
	"racer": func(c *Config) {
		c.Physics.Accel = 0.3
		c.Physics.Friction = 0.96
		c.Physics.MaxSpeed = 10
		c.Physics.RotationSpeed = 5
		c.Physics.Tilt = 30
	},
}

func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
