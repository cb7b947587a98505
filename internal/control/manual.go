package control

// Manual is an input source whose value is set directly.
// Scripted flights and tests drive the simulator through it.
type Manual struct {
	x, y float64
}

func NewManual() *Manual {
	return &Manual{}
}

// Set stores a new stick position. Values are clamped to [-1, 1].
func (m *Manual) Set(x, y float64) {
	m.x, m.y = clampUnit(x), clampUnit(y)
}

func (m *Manual) Values() (x, y float64) {
	return m.x, m.y
}
