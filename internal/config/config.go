package config

import (
	"fmt"
	"os"

	"github.com/san-kum/dronesim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrameRate     = 60
	DefaultAccel         = 0.15
	DefaultFriction      = 0.92
	DefaultMaxSpeed      = 5.0
	DefaultRotationSpeed = 3.0
	DefaultTilt          = 20.0
	DefaultDepthScale    = 0.01
	DefaultBoundX        = 200.0
	DefaultBoundY        = 150.0
	DefaultMaxRadius     = 40.0
	DefaultVolume        = 0.5
	DefaultLogLevel      = "info"
	DefaultLogFile       = "dronesim.log"
)

type Config struct {
	FrameRate int            `yaml:"frame_rate"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Joystick  JoystickConfig `yaml:"joystick"`
	Audio     AudioConfig    `yaml:"audio"`
	Log       LogConfig      `yaml:"log"`
}

type PhysicsConfig struct {
	Accel         float64      `yaml:"accel"`
	Friction      float64      `yaml:"friction"`
	MaxSpeed      float64      `yaml:"max_speed"`
	RotationSpeed float64      `yaml:"rotation_speed"`
	Tilt          float64      `yaml:"tilt"`
	DepthScale    float64      `yaml:"depth_scale"`
	Bounds        BoundsConfig `yaml:"bounds"`
}

type BoundsConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

type JoystickConfig struct {
	MaxRadius     float64 `yaml:"max_radius"`
	// SurfaceRadius is the radius that accepts a press. Zero means MaxRadius.
	SurfaceRadius float64 `yaml:"surface_radius"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		FrameRate: DefaultFrameRate,
		Physics: PhysicsConfig{
			Accel:         DefaultAccel,
			Friction:      DefaultFriction,
			MaxSpeed:      DefaultMaxSpeed,
			RotationSpeed: DefaultRotationSpeed,
			Tilt:          DefaultTilt,
			DepthScale:    DefaultDepthScale,
			Bounds: BoundsConfig{
				MinX: -DefaultBoundX,
				MaxX: DefaultBoundX,
				MinY: -DefaultBoundY,
				MaxY: DefaultBoundY,
			},
		},
		Joystick: JoystickConfig{
			MaxRadius: DefaultMaxRadius,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  DefaultVolume,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate checks every value the simulation divides by or clamps against.
func (c *Config) Validate() error {
	p := c.Physics
	switch {
	case c.FrameRate <= 0:
		return invalid("frame_rate", "must be positive, got %d", c.FrameRate)
	case p.Accel < 0:
		return invalid("physics.accel", "must not be negative, got %g", p.Accel)
	case p.Friction <= 0 || p.Friction >= 1:
		return invalid("physics.friction", "must be in (0, 1), got %g", p.Friction)
	case p.MaxSpeed <= 0:
		return invalid("physics.max_speed", "must be positive, got %g", p.MaxSpeed)
	case p.Bounds.MinX >= p.Bounds.MaxX:
		return invalid("physics.bounds", "min_x %g must be below max_x %g", p.Bounds.MinX, p.Bounds.MaxX)
	case p.Bounds.MinY >= p.Bounds.MaxY:
		return invalid("physics.bounds", "min_y %g must be below max_y %g", p.Bounds.MinY, p.Bounds.MaxY)
	case c.Joystick.MaxRadius <= 0:
		return invalid("joystick.max_radius", "must be positive, got %g", c.Joystick.MaxRadius)
	case c.Joystick.SurfaceRadius < 0:
		return invalid("joystick.surface_radius", "must not be negative, got %g", c.Joystick.SurfaceRadius)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return invalid("audio.volume", "must be in [0, 1], got %g", c.Audio.Volume)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", dynamo.ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}
