package viz

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dronesim/internal/dynamo"
	"github.com/san-kum/dronesim/internal/physics"
)

const (
	armLength    = 36.0 // world units at scale 1
	rotorRadius  = 2    // sub-pixels
	minDrawScale = 0.2
	cameraTilt   = 35.0 // degrees the view looks down onto the rotor plane
	trailLength  = 80
)

// armTips are the rotor positions of a quad "X" in the body frame.
// +z is the nose.
var armTips = func() [4]mgl64.Vec3 {
	d := armLength / math.Sqrt2
	return [4]mgl64.Vec3{{d, 0, d}, {-d, 0, d}, {-d, 0, -d}, {d, 0, -d}}
}()

// Scene draws the flight area and the drone onto a Braille canvas.
type Scene struct {
	canvas *Canvas
	bounds physics.Bounds
	scale  float64 // sub-pixels per world unit
	origin mgl64.Vec2
	trail  []image.Point
}

func NewScene(cols, rows int, bounds physics.Bounds) *Scene {
	c := NewCanvas(cols, rows)
	w := bounds.MaxX - bounds.MinX
	h := bounds.MaxY - bounds.MinY
	scale := 1.0
	if w > 0 && h > 0 {
		scale = math.Min(float64(c.SubWidth()-1)/w, float64(c.SubHeight()-1)/h)
	}
	return &Scene{
		canvas: c,
		bounds: bounds,
		scale:  scale,
		origin: mgl64.Vec2{float64(c.SubWidth()-1) / 2, float64(c.SubHeight()-1) / 2},
		trail:  make([]image.Point, 0, trailLength),
	}
}

func (s *Scene) Canvas() *Canvas { return s.canvas }

// Project maps a world x/y position to canvas sub-pixels. World y is up.
func (s *Scene) Project(x, y float64) image.Point {
	cx := (s.bounds.MinX + s.bounds.MaxX) / 2
	cy := (s.bounds.MinY + s.bounds.MaxY) / 2
	return image.Pt(
		int(math.Round(s.origin[0]+(x-cx)*s.scale)),
		int(math.Round(s.origin[1]-(y-cy)*s.scale)),
	)
}

// Orientation builds the body rotation from a transform: yaw about y,
// then pitch about x, then roll about z.
func Orientation(t dynamo.Transform) mgl64.Mat3 {
	return mgl64.Rotate3DY(mgl64.DegToRad(t.RotateY)).
		Mul3(mgl64.Rotate3DX(mgl64.DegToRad(t.RotateX))).
		Mul3(mgl64.Rotate3DZ(mgl64.DegToRad(t.RotateZ)))
}

// DrawScale is the transform scale floored so a deep drone stays visible.
func DrawScale(t dynamo.Transform) float64 {
	return math.Max(t.Scale, minDrawScale)
}

// Render redraws the scene for f. The trail is dropped while disconnected.
func (s *Scene) Render(f dynamo.Frame) {
	s.canvas.Clear()
	s.drawBounds()

	center := s.Project(f.Transform.TranslateX, f.Transform.TranslateY)
	if f.Connected {
		s.trail = append(s.trail, center)
		if len(s.trail) > trailLength {
			s.trail = s.trail[1:]
		}
	} else {
		s.trail = s.trail[:0]
	}
	for _, p := range s.trail {
		s.canvas.Set(p.X, p.Y)
	}

	view := mgl64.Rotate3DX(mgl64.DegToRad(-cameraTilt)).Mul3(Orientation(f.Transform))
	k := s.scale * DrawScale(f.Transform)
	screen := func(v mgl64.Vec3) image.Point {
		p := view.Mul3x1(v).Mul(k)
		return image.Pt(center.X+int(math.Round(p[0])), center.Y-int(math.Round(p[1])))
	}

	for _, tip := range armTips {
		p := screen(tip)
		s.canvas.DrawLine(center.X, center.Y, p.X, p.Y)
		s.canvas.DrawCircle(p.X, p.Y, rotorRadius)
	}
	nose := screen(mgl64.Vec3{0, 0, armLength * 0.6})
	s.canvas.DrawLine(center.X, center.Y, nose.X, nose.Y)
	s.canvas.FillCircle(center.X, center.Y, 1)
}

func (s *Scene) drawBounds() {
	tl := s.Project(s.bounds.MinX, s.bounds.MaxY)
	br := s.Project(s.bounds.MaxX, s.bounds.MinY)
	s.canvas.DrawLine(tl.X, tl.Y, br.X, tl.Y)
	s.canvas.DrawLine(br.X, tl.Y, br.X, br.Y)
	s.canvas.DrawLine(br.X, br.Y, tl.X, br.Y)
	s.canvas.DrawLine(tl.X, br.Y, tl.X, tl.Y)
}
