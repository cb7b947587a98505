package joystick

// Kind is the phase of a pointer interaction.
type Kind uint8

const (
	Press Kind = iota
	Move
	Release
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	}
	return "unknown"
}

// Source is the kind of device that produced an event.
type Source uint8

const (
	SourceMouse Source = iota
	SourceTouch
)

// Point is a client-space coordinate.
type Point struct {
	X, Y float64
}

// Event is one pointer event in client space.
// Mouse sources fill ClientX/ClientY; touch sources fill Touches.
type Event struct {
	Kind             Kind
	Source           Source
	ClientX, ClientY float64
	Touches          []Point
}

// Point extracts the single client coordinate of the event regardless of
// source. Touch events use their first touch point; a touch event without
// touches falls back to ClientX/ClientY.
func (e Event) Point() Point {
	if e.Source == SourceTouch && len(e.Touches) > 0 {
		return e.Touches[0]
	}
	return Point{X: e.ClientX, Y: e.ClientY}
}

func MouseEvent(kind Kind, x, y float64) Event {
	return Event{Kind: kind, Source: SourceMouse, ClientX: x, ClientY: y}
}

func TouchEvent(kind Kind, touches ...Point) Event {
	return Event{Kind: kind, Source: SourceTouch, Touches: touches}
}
