package viz

import "image"

// A terminal cell stands for CellWidth x CellHeight pixels of client
// space. A Braille sub-pixel is then 4x4 pixels, so pads stay round.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Layout fixes where every interactive element sits on screen, in cells.
type Layout struct {
	Scene       image.Rectangle
	ThrottleYaw image.Rectangle
	PitchRoll   image.Rectangle
	Button      image.Rectangle
	Labels      int // row of the pad captions
	Help        int // row of the key hints
}

const (
	marginLeft   = 2
	headerRows   = 2
	sceneCols    = 60
	sceneRows    = 20
	padCols      = 12
	padRows      = 6
	padInset     = 4
	buttonCols   = 14
	buttonRows   = 3
	buttonOffset = 1
)

func DefaultLayout() Layout {
	scene := image.Rect(marginLeft, headerRows, marginLeft+sceneCols, headerRows+sceneRows)
	padTop := scene.Max.Y + 1

	left := marginLeft + padInset
	right := scene.Max.X - padInset - padCols
	buttonLeft := marginLeft + (sceneCols-buttonCols)/2

	return Layout{
		Scene:       scene,
		ThrottleYaw: image.Rect(left, padTop, left+padCols, padTop+padRows),
		PitchRoll:   image.Rect(right, padTop, right+padCols, padTop+padRows),
		Button: image.Rect(buttonLeft, padTop+buttonOffset,
			buttonLeft+buttonCols, padTop+buttonOffset+buttonRows),
		Labels: padTop + padRows,
		Help:   padTop + padRows + 2,
	}
}

// CellToClient maps the center of cell (col, row) to client pixels.
func CellToClient(col, row int) (x, y float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

// PadCenter is the client-space center of a pad rectangle.
func PadCenter(r image.Rectangle) (x, y float64) {
	return float64(r.Min.X*CellWidth + r.Dx()*CellWidth/2),
		float64(r.Min.Y*CellHeight + r.Dy()*CellHeight/2)
}

// InButton reports whether cell (col, row) is on the connect button.
func (l Layout) InButton(col, row int) bool {
	return image.Pt(col, row).In(l.Button)
}
