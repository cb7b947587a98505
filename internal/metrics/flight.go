package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/dronesim/internal/dynamo"
)

// Default returns the metrics recorded for every flight session.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewPeakSpeed(),
		NewDistance(),
		NewAirtime(),
		NewControlEffort(),
		NewBoundaryContacts(),
	}
}

type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(f dynamo.Frame) {
	p.peak = math.Max(p.peak, f.State.Speed())
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// Distance is the path length flown, including clamped movement along a wall.
type Distance struct {
	total   float64
	prev    mgl64.Vec3
	started bool
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(f dynamo.Frame) {
	if d.started {
		d.total += f.State.Position.Sub(d.prev).Len()
	}
	d.prev = f.State.Position
	d.started = true
}

func (d *Distance) Value() float64 { return d.total }

func (d *Distance) Reset() {
	d.total = 0
	d.prev = mgl64.Vec3{}
	d.started = false
}

// Airtime counts connected frames.
type Airtime struct {
	frames int
}

func NewAirtime() *Airtime { return &Airtime{} }

func (a *Airtime) Name() string { return "airtime" }

func (a *Airtime) Observe(f dynamo.Frame) {
	if f.Connected {
		a.frames++
	}
}

func (a *Airtime) Value() float64 { return float64(a.frames) }
func (a *Airtime) Reset()         { a.frames = 0 }

// BoundaryContacts counts frames where the bounding box stopped the drone.
type BoundaryContacts struct {
	contacts int
}

func NewBoundaryContacts() *BoundaryContacts { return &BoundaryContacts{} }

func (b *BoundaryContacts) Name() string { return "boundary_contacts" }

func (b *BoundaryContacts) Observe(f dynamo.Frame) {
	if f.Limits.BoundsClamped {
		b.contacts++
	}
}

func (b *BoundaryContacts) Value() float64 { return float64(b.contacts) }
func (b *BoundaryContacts) Reset()         { b.contacts = 0 }
