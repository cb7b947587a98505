package control

import (
	"math"

	"github.com/san-kum/dronesim/internal/dynamo"
)

// Map reads both sticks and remaps their axes to the control axes:
// the throttle/yaw stick's x is yaw and y is throttle, the pitch/roll
// stick's y is pitch and x is roll.
func Map(throttleYaw, pitchRoll dynamo.InputSource) dynamo.Controls {
	yaw, throttle := throttleYaw.Values()
	roll, pitch := pitchRoll.Values()
	return dynamo.Controls{
		Throttle: clampUnit(throttle),
		Yaw:      clampUnit(yaw),
		Pitch:    clampUnit(pitch),
		Roll:     clampUnit(roll),
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
