package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dronesim/internal/config"
	"github.com/san-kum/dronesim/internal/dynamo"
)

// Bounds is the rectangle position.x and position.y are clamped to.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

// Drone holds the kinematic constants of the toy flight model.
type Drone struct {
	Accel         float64 // velocity gain per frame at full deflection
	Friction      float64 // per-frame velocity damping factor, < 1
	MaxSpeed      float64
	RotationSpeed float64 // yaw degrees per frame at full deflection
	Tilt          float64 // pitch/roll degrees at full deflection
	DepthScale    float64 // render scale gained per unit of z
	Bounds        Bounds
}

func NewDrone() *Drone {
	return FromConfig(config.DefaultConfig().Physics)
}

func FromConfig(p config.PhysicsConfig) *Drone {
	return &Drone{
		Accel:         p.Accel,
		Friction:      p.Friction,
		MaxSpeed:      p.MaxSpeed,
		RotationSpeed: p.RotationSpeed,
		Tilt:          p.Tilt,
		DepthScale:    p.DepthScale,
		Bounds: Bounds{
			MinX: p.Bounds.MinX,
			MaxX: p.Bounds.MaxX,
			MinY: p.Bounds.MinY,
			MaxY: p.Bounds.MaxY,
		},
	}
}

// Step advances s by one frame under controls c.
// There is no delta time: one call is one frame.
func (d *Drone) Step(s *dynamo.DroneState, c dynamo.Controls) dynamo.Limits {
	var lim dynamo.Limits

	s.Rotation.Yaw = WrapDegrees(s.Rotation.Yaw + c.Yaw*d.RotationSpeed)
	s.Rotation.Pitch = c.Pitch * d.Tilt
	s.Rotation.Roll = c.Roll * d.Tilt

	yaw := mgl64.DegToRad(s.Rotation.Yaw)
	sin, cos := math.Sin(yaw), math.Cos(yaw)

	v := s.Velocity
	v[1] += c.Throttle * d.Accel
	v[2] += c.Pitch * d.Accel * cos
	v[0] += c.Pitch * d.Accel * sin
	v[0] += c.Roll * d.Accel * cos
	v[2] -= c.Roll * d.Accel * sin

	v = v.Mul(d.Friction)

	if speed := v.Len(); speed > d.MaxSpeed {
		v = v.Mul(d.MaxSpeed / speed)
		lim.SpeedClamped = true
	}
	s.Velocity = v

	p := s.Position.Add(v)
	x, cx := clamp(p[0], d.Bounds.MinX, d.Bounds.MaxX)
	y, cy := clamp(p[1], d.Bounds.MinY, d.Bounds.MaxY)
	s.Position = mgl64.Vec3{x, y, p[2]}
	lim.BoundsClamped = cx || cy

	return lim
}

// Transform maps s to a rendering transform. Depth is shown as scale.
func (d *Drone) Transform(s dynamo.DroneState) dynamo.Transform {
	return dynamo.Transform{
		TranslateX: s.Position[0],
		TranslateY: s.Position[1],
		RotateX:    s.Rotation.Pitch,
		RotateY:    s.Rotation.Yaw,
		RotateZ:    s.Rotation.Roll,
		Scale:      1 + s.Position[2]*d.DepthScale,
	}
}

// Telemetry rounds the controls to percentages and yaw to whole degrees.
func (d *Drone) Telemetry(s dynamo.DroneState, c dynamo.Controls) dynamo.Telemetry {
	return dynamo.Telemetry{
		Throttle: percent(c.Throttle),
		Pitch:    percent(c.Pitch),
		Roll:     percent(c.Roll),
		Yaw:      int(math.Round(s.Rotation.Yaw)) % 360,
	}
}

// WrapDegrees maps a into [0, 360).
func WrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// a tiny negative input rounds to exactly 360 after the shift
	if a >= 360 {
		a = 0
	}
	return a
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

func clamp(v, lo, hi float64) (float64, bool) {
	if v < lo {
		return lo, true
	}
	if v > hi {
		return hi, true
	}
	return v, false
}

func (d *Drone) GetParams() map[string]float64 {
	return map[string]float64{
		"accel":          d.Accel,
		"friction":       d.Friction,
		"max_speed":      d.MaxSpeed,
		"rotation_speed": d.RotationSpeed,
		"tilt":           d.Tilt,
	}
}

func (d *Drone) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s=%v", dynamo.ErrParameterBounds, name, value)
	}
	switch name {
	case "accel":
		if value < 0 {
			return fmt.Errorf("%w: accel=%v", dynamo.ErrParameterBounds, value)
		}
		d.Accel = value
	case "friction":
		if value <= 0 || value >= 1 {
			return fmt.Errorf("%w: friction=%v", dynamo.ErrParameterBounds, value)
		}
		d.Friction = value
	case "max_speed":
		if value <= 0 {
			return fmt.Errorf("%w: max_speed=%v", dynamo.ErrParameterBounds, value)
		}
		d.MaxSpeed = value
	case "rotation_speed":
		d.RotationSpeed = value
	case "tilt":
		d.Tilt = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
