// Package joystick implements the virtual joysticks that steer the drone.
//
// A [Joystick] tracks one control surface. Pointer events from any source
// (mouse or touch) are reduced to a single client coordinate by
// [Event.Point] and fed to [Joystick.Handle]:
//
//	js := joystick.New(joystick.Config{CenterX: 48, CenterY: 48, MaxRadius: 40})
//	js.Handle(joystick.MouseEvent(joystick.Press, 50, 50))
//	js.Handle(joystick.MouseEvent(joystick.Move, 108, 128))
//	x, y := js.Values() // (0.6, -0.8)
//
// The vertical axis of [Joystick.Values] is inverted relative to the pointer
// offset so that pushing the stick up reads as a positive value.
package joystick
