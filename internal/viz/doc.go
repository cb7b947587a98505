// Package viz is the terminal front end of the drone simulator.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: the flight screen, owning the simulator and both joysticks
//   - [Scene]: the flight area and the drone drawn from its transform
//   - [Pad]: a joystick ring with its knob
//   - [Canvas]: Braille-based pixel canvas
//
// Terminal cells stand for 8x16 pixels of client space, so mouse reports
// become the same pointer events a touch screen would send.
//
// # Key Bindings
//
//	C     - Connect / disconnect
//	T     - Cycle color themes
//	Tab   - Select parameter
//	↑/↓   - Tune parameter
//	?     - Show help
//	Q     - Quit
package viz
