package viz

import (
	"math"

	"github.com/san-kum/dronesim/internal/joystick"
)

// subPixel is the client-space size of one Braille dot on either axis.
const subPixel = CellWidth / 2

// Pad draws a joystick: the travel ring and the knob at its offset.
type Pad struct {
	canvas *Canvas
	stick  *joystick.Joystick
}

func NewPad(cols, rows int, stick *joystick.Joystick) *Pad {
	return &Pad{canvas: NewCanvas(cols, rows), stick: stick}
}

// Knob returns the knob position in pad sub-pixels.
func (p *Pad) Knob() (x, y int) {
	cx, cy := p.canvas.SubWidth()/2, p.canvas.SubHeight()/2
	off := p.stick.State().Offset
	return cx + int(math.Round(off[0]/subPixel)), cy + int(math.Round(off[1]/subPixel))
}

func (p *Pad) Render() []string {
	p.canvas.Clear()
	cx, cy := p.canvas.SubWidth()/2, p.canvas.SubHeight()/2
	ring := int(math.Round(p.stick.MaxRadius() / subPixel))
	p.canvas.DrawCircle(cx, cy, ring)
	p.canvas.Set(cx, cy)

	kx, ky := p.Knob()
	knob := 2
	if p.stick.Active() {
		knob = 3
	}
	p.canvas.FillCircle(kx, ky, knob)
	return p.canvas.Lines()
}
