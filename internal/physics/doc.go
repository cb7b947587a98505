// Package physics provides the toy flight model of the drone.
//
// [Drone.Step] integrates one frame with explicit Euler steps:
//
//   - yaw accumulates and wraps into [0, 360)
//   - pitch and roll are set directly from the sticks, with no inertia
//   - velocity gains throttle, pitch and roll thrust rotated by yaw
//   - velocity is damped by friction and clamped to the maximum speed
//   - position follows velocity and is clamped to the x/y bounds
//
// The step is frame-rate dependent: one call is one frame.
//
// [Drone] also implements [dynamo.Configurable] for live tuning:
//
//	d := physics.NewDrone()
//	if err := d.SetParam("friction", 0.9); err != nil {
//	    // errors.Is(err, dynamo.ErrParameterBounds)
//	}
package physics
