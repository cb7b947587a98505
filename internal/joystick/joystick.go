package joystick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dronesim/internal/config"
)

// Config places a joystick in client space.
type Config struct {
	CenterX, CenterY float64
	MaxRadius        float64
	// SurfaceRadius is the press-sensitive radius around the center.
	// Zero means MaxRadius.
	SurfaceRadius    float64
}

// FromConfig builds a joystick Config centered at (cx, cy).
func FromConfig(cfg config.JoystickConfig, cx, cy float64) Config {
	return Config{
		CenterX:       cx,
		CenterY:       cy,
		MaxRadius:     cfg.MaxRadius,
		SurfaceRadius: cfg.SurfaceRadius,
	}
}

// State is the observable state of a joystick.
type State struct {
	Active     bool
	Offset     mgl64.Vec2 // pixels from center, |Offset| <= MaxRadius
	Normalized mgl64.Vec2 // Offset / MaxRadius with y inverted
}

// Joystick is a virtual 2-axis stick driven by pointer events.
type Joystick struct {
	center        mgl64.Vec2
	maxRadius     float64
	surfaceRadius float64
	state         State
}

func New(cfg Config) *Joystick {
	r := cfg.MaxRadius
	if r <= 0 {
		r = config.DefaultMaxRadius
	}
	surface := cfg.SurfaceRadius
	if surface <= 0 {
		surface = r
	}
	return &Joystick{
		center:        mgl64.Vec2{cfg.CenterX, cfg.CenterY},
		maxRadius:     r,
		surfaceRadius: surface,
	}
}

func (j *Joystick) MaxRadius() float64 { return j.maxRadius }
func (j *Joystick) State() State       { return j.state }
func (j *Joystick) Active() bool       { return j.state.Active }

// Center returns the recorded center in client space.
func (j *Joystick) Center() (x, y float64) { return j.center[0], j.center[1] }

// SetCenter records a new center, e.g. after the host layout changed.
func (j *Joystick) SetCenter(x, y float64) {
	j.center = mgl64.Vec2{x, y}
}

// Values returns the last normalized control values in [-1, 1].
func (j *Joystick) Values() (x, y float64) {
	return j.state.Normalized[0], j.state.Normalized[1]
}

// Contains reports whether (x, y) lies on the control surface.
func (j *Joystick) Contains(x, y float64) bool {
	d := mgl64.Vec2{x, y}.Sub(j.center)
	return d.Dot(d) <= j.surfaceRadius*j.surfaceRadius
}

// Handle applies a pointer event and reports whether the joystick consumed
// it. A consumed event must not trigger the host's default gesture handling.
func (j *Joystick) Handle(ev Event) bool {
	p := ev.Point()
	switch ev.Kind {
	case Press:
		return j.Start(p.X, p.Y)
	case Move:
		return j.MoveTo(p.X, p.Y)
	case Release:
		wasActive := j.state.Active
		j.Release()
		return wasActive
	}
	return false
}

// Start activates the joystick if (x, y) lies on the control surface.
func (j *Joystick) Start(x, y float64) bool {
	if !j.Contains(x, y) {
		return false
	}
	j.state.Active = true
	return true
}

// MoveTo updates the offset while active. The offset is projected onto the
// rim when it falls outside MaxRadius, keeping its angle.
func (j *Joystick) MoveTo(x, y float64) bool {
	if !j.state.Active {
		return false
	}
	offset := mgl64.Vec2{x, y}.Sub(j.center)
	if offset.Len() > j.maxRadius {
		theta := math.Atan2(offset[1], offset[0])
		offset = mgl64.Vec2{j.maxRadius * math.Cos(theta), j.maxRadius * math.Sin(theta)}
	}
	j.state.Offset = offset
	j.state.Normalized = mgl64.Vec2{offset[0] / j.maxRadius, -offset[1] / j.maxRadius}
	return true
}

// Release snaps the joystick back to center.
func (j *Joystick) Release() {
	j.state = State{}
}
