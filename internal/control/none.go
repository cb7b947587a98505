package control

// None is a centered stick.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Values() (x, y float64) {
	return 0, 0
}
