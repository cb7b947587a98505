// Package dynamo provides the core value types shared by the flight
// simulation packages.
//
//   - [DroneState]: position, rotation and velocity of the drone
//   - [Controls]: throttle, yaw, pitch and roll in [-1, 1]
//   - [Transform]: placement handed to a rendering surface
//   - [Telemetry]: rounded readout of controls and yaw
//   - [Frame]: everything produced by one simulation tick
//
// Input devices implement [InputSource]; anything that wants to follow the
// flight frame by frame implements [Observer] or [Metric].
//
// # Thread Safety
//
// None of the types here carry locks. They are values produced and consumed
// on the simulation goroutine.
package dynamo
