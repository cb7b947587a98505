// Package control turns two 2-axis input sources into the four control axes.
//
// Sources implement [dynamo.InputSource]:
//
//   - [Manual]: a settable stick for scripted flights
//   - [None]: a stick that never leaves center
//   - joystick.Joystick: the pointer-driven virtual stick
//
// # Usage
//
//	a, b := control.NewManual(), control.NewManual()
//	a.Set(0, 1) // full throttle
//	c := control.Map(a, b)
package control
