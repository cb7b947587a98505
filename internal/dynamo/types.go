package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation holds the drone attitude in degrees.
type Rotation struct {
	Yaw, Pitch, Roll float64
}

// DroneState is the flight state. The zero value is the reset state.
type DroneState struct {
	Position mgl64.Vec3
	Rotation Rotation
	Velocity mgl64.Vec3
}

func (s DroneState) Speed() float64 { return s.Velocity.Len() }

func (s DroneState) IsValid() bool {
	for _, v := range []float64{
		s.Position[0], s.Position[1], s.Position[2],
		s.Velocity[0], s.Velocity[1], s.Velocity[2],
		s.Rotation.Yaw, s.Rotation.Pitch, s.Rotation.Roll,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Controls are the four control axes, each in [-1, 1].
type Controls struct {
	Throttle, Yaw, Pitch, Roll float64
}

// Deflection is the mean absolute stick deflection over the four axes.
func (c Controls) Deflection() float64 {
	return (math.Abs(c.Throttle) + math.Abs(c.Yaw) + math.Abs(c.Pitch) + math.Abs(c.Roll)) / 4
}

// Transform describes how the rendering surface should place the drone.
// Rotations are in degrees: RotateX carries pitch, RotateY yaw, RotateZ roll.
type Transform struct {
	TranslateX, TranslateY    float64
	RotateX, RotateY, RotateZ float64
	Scale                     float64
}

// Telemetry is the rounded readout of the current control and rotation state.
type Telemetry struct {
	Throttle int // percent
	Pitch    int // percent
	Roll     int // percent
	Yaw      int // degrees
}

// Strings returns throttle, pitch, roll and yaw formatted for display.
func (t Telemetry) Strings() [4]string {
	return [4]string{
		fmt.Sprintf("%d%%", t.Throttle),
		fmt.Sprintf("%d%%", t.Pitch),
		fmt.Sprintf("%d%%", t.Roll),
		fmt.Sprintf("%d°", t.Yaw),
	}
}

// Limits reports which clamps engaged during a step.
type Limits struct {
	SpeedClamped  bool
	BoundsClamped bool
}

// Frame is the result of one simulation tick.
type Frame struct {
	Index     int64
	Connected bool
	Session   string
	Controls  Controls
	State     DroneState
	Transform Transform
	Telemetry Telemetry
	Limits    Limits
}

// InputSource is anything that reports a normalized 2-axis value.
type InputSource interface {
	Values() (x, y float64)
}

type Observer interface {
	OnFrame(f Frame)
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
