package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dronesim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Physics.Accel != 0.15 {
		t.Errorf("expected accel 0.15, got %f", cfg.Physics.Accel)
	}
	if cfg.Physics.Friction != 0.92 {
		t.Errorf("expected friction 0.92, got %f", cfg.Physics.Friction)
	}
	if cfg.Joystick.MaxRadius != 40 {
		t.Errorf("expected max radius 40, got %f", cfg.Joystick.MaxRadius)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"negative accel", func(c *Config) { c.Physics.Accel = -1 }},
		{"friction one", func(c *Config) { c.Physics.Friction = 1 }},
		{"friction zero", func(c *Config) { c.Physics.Friction = 0 }},
		{"zero max speed", func(c *Config) { c.Physics.MaxSpeed = 0 }},
		{"inverted x bounds", func(c *Config) { c.Physics.Bounds.MinX = 300 }},
		{"empty y bounds", func(c *Config) { c.Physics.Bounds.MaxY = c.Physics.Bounds.MinY }},
		{"zero radius", func(c *Config) { c.Joystick.MaxRadius = 0 }},
		{"negative surface", func(c *Config) { c.Joystick.SurfaceRadius = -1 }},
		{"loud", func(c *Config) { c.Audio.Volume = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("physics:\n  accel: 0.2\njoystick:\n  max_radius: 50\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Accel != 0.2 {
		t.Errorf("expected accel 0.2, got %f", cfg.Physics.Accel)
	}
	if cfg.Joystick.MaxRadius != 50 {
		t.Errorf("expected max radius 50, got %f", cfg.Joystick.MaxRadius)
	}
	if cfg.Physics.Friction != DefaultFriction {
		t.Errorf("friction should keep default, got %f", cfg.Physics.Friction)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  friction: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg, err := GetPreset("racer")
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Physics != cfg.Physics {
		t.Errorf("physics mismatch: got %+v, want %+v", loaded.Physics, cfg.Physics)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("gentle")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.Physics.MaxSpeed != 2.5 {
		t.Errorf("expected max speed 2.5, got %f", cfg.Physics.MaxSpeed)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Errorf("preset should keep default frame rate, got %d", cfg.FrameRate)
	}
	for _, name := range ListPresets() {
		p, _ := GetPreset(name)
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Errorf("expected 3 presets, got %v", presets)
	}
	if presets[0] != "default" {
		t.Errorf("expected sorted presets, got %v", presets)
	}
}
