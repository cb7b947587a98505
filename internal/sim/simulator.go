package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/dronesim/internal/control"
	"github.com/san-kum/dronesim/internal/dynamo"
	"github.com/san-kum/dronesim/internal/log"
	"github.com/san-kum/dronesim/internal/physics"
)

// Simulator owns the drone, its two input sources and the flight state.
// It is not safe for concurrent use; drive it from one goroutine.
type Simulator struct {
	drone       *physics.Drone
	throttleYaw dynamo.InputSource
	pitchRoll   dynamo.InputSource

	state     dynamo.DroneState
	telemetry dynamo.Telemetry
	connected bool
	session   string
	frame     int64

	metrics   []dynamo.Metric
	observers []dynamo.Observer
	listeners []ConnectionListener
}

func New(drone *physics.Drone, throttleYaw, pitchRoll dynamo.InputSource) *Simulator {
	if throttleYaw == nil {
		throttleYaw = control.NewNone()
	}
	if pitchRoll == nil {
		pitchRoll = control.NewNone()
	}
	return &Simulator{
		drone:       drone,
		throttleYaw: throttleYaw,
		pitchRoll:   pitchRoll,
		metrics:     make([]dynamo.Metric, 0),
		observers:   make([]dynamo.Observer, 0),
		listeners:   make([]ConnectionListener, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)        { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer)    { s.observers = append(s.observers, o) }
func (s *Simulator) AddListener(l ConnectionListener) { s.listeners = append(s.listeners, l) }
func (s *Simulator) Drone() *physics.Drone            { return s.drone }
func (s *Simulator) State() dynamo.DroneState         { return s.state }
func (s *Simulator) Telemetry() dynamo.Telemetry      { return s.telemetry }
func (s *Simulator) Transform() dynamo.Transform      { return s.drone.Transform(s.state) }
func (s *Simulator) Connected() bool                  { return s.connected }
func (s *Simulator) Session() string                  { return s.session }
func (s *Simulator) Frames() int64                    { return s.frame }

// Connect starts a new flight session. The drone state is left as is.
func (s *Simulator) Connect() {
	if s.connected {
		return
	}
	s.connected = true
	s.session = uuid.NewString()
	for _, m := range s.metrics {
		m.Reset()
	}
	log.Info("drone connected", "session", s.session)
	s.notify()
}

// Disconnect ends the session and resets the drone to its zero state.
func (s *Simulator) Disconnect() {
	if !s.connected {
		return
	}
	s.connected = false
	s.state = dynamo.DroneState{}
	s.telemetry = dynamo.Telemetry{}
	log.Info("drone disconnected", "session", s.session, "frames", s.frame)
	s.notify()
}

// Toggle flips the connection and reports the new state.
func (s *Simulator) Toggle() bool {
	if s.connected {
		s.Disconnect()
	} else {
		s.Connect()
	}
	return s.connected
}

func (s *Simulator) notify() {
	for _, l := range s.listeners {
		l.OnConnectionChange(s.connected, s.session)
	}
}

// Step runs one frame. While disconnected the state is untouched and no
// observer or metric sees the frame.
func (s *Simulator) Step() dynamo.Frame {
	s.frame++
	if !s.connected {
		return s.snapshot(dynamo.Controls{}, dynamo.Limits{})
	}

	c := control.Map(s.throttleYaw, s.pitchRoll)
	lim := s.drone.Step(&s.state, c)
	s.telemetry = s.drone.Telemetry(s.state, c)

	f := s.snapshot(c, lim)
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, obs := range s.observers {
		obs.OnFrame(f)
	}
	return f
}

func (s *Simulator) snapshot(c dynamo.Controls, lim dynamo.Limits) dynamo.Frame {
	return dynamo.Frame{
		Index:     s.frame,
		Connected: s.connected,
		Session:   s.session,
		Controls:  c,
		State:     s.state,
		Transform: s.drone.Transform(s.state),
		Telemetry: s.telemetry,
		Limits:    lim,
	}
}

// Metrics returns the current value of every registered metric.
func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Run steps the simulator once per interval until ctx is done or, when
// maxFrames is positive, after maxFrames frames.
func (s *Simulator) Run(ctx context.Context, interval time.Duration, maxFrames int) error {
	if interval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %v", dynamo.ErrInvalidConfig, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 0; maxFrames <= 0 || n < maxFrames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		s.Step()
	}
	return nil
}

// FrameInterval converts a frame rate to a tick interval.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}
