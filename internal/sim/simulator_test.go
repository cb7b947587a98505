package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dronesim/internal/control"
	"github.com/san-kum/dronesim/internal/dynamo"
	"github.com/san-kum/dronesim/internal/joystick"
	"github.com/san-kum/dronesim/internal/metrics"
	"github.com/san-kum/dronesim/internal/physics"
	"github.com/san-kum/dronesim/internal/sim"
)

const eps = 1e-9

var _ = Describe("Simulator", func() {
	var (
		a, b *control.Manual
		s    *sim.Simulator
	)

	BeforeEach(func() {
		a, b = control.NewManual(), control.NewManual()
		s = sim.New(physics.NewDrone(), a, b)
	})

	Describe("while disconnected", func() {
		It("leaves the state untouched and notifies nobody", func() {
			seen := 0
			s.AddObserver(sim.ObserverFunc(func(dynamo.Frame) { seen++ }))
			a.Set(0, 1)

			f := s.Step()

			Expect(f.Connected).To(BeFalse())
			Expect(f.Index).To(Equal(int64(1)))
			Expect(s.State()).To(Equal(dynamo.DroneState{}))
			Expect(seen).To(BeZero())
		})
	})

	Describe("connecting", func() {
		It("does not touch the drone state and opens a session", func() {
			Expect(s.Toggle()).To(BeTrue())
			Expect(s.Connected()).To(BeTrue())
			Expect(s.Session()).NotTo(BeEmpty())
			Expect(s.State()).To(Equal(dynamo.DroneState{}))
		})

		It("uses a fresh session id each time", func() {
			s.Connect()
			first := s.Session()
			s.Disconnect()
			s.Connect()
			Expect(s.Session()).NotTo(Equal(first))
		})

		It("notifies listeners on every transition", func() {
			var events []bool
			s.AddListener(sim.ListenerFunc(func(connected bool, session string) {
				Expect(session).NotTo(BeEmpty())
				events = append(events, connected)
			}))
			s.Connect()
			s.Connect()
			s.Disconnect()
			s.Disconnect()
			Expect(events).To(Equal([]bool{true, false}))
		})
	})

	Describe("a full-throttle frame", func() {
		It("matches the reference numbers", func() {
			s.Connect()
			a.Set(0, 1)

			f := s.Step()

			Expect(f.State.Velocity[1]).To(BeNumerically("~", 0.138, eps))
			Expect(f.State.Position[1]).To(BeNumerically("~", 0.138, eps))
			Expect(f.Telemetry).To(Equal(dynamo.Telemetry{Throttle: 100}))
			Expect(f.Transform.TranslateY).To(BeNumerically("~", 0.138, eps))
			Expect(f.Transform.Scale).To(Equal(1.0))
		})
	})

	Describe("axis remapping", func() {
		It("feeds yaw from A.x and pitch from B.y", func() {
			s.Connect()
			a.Set(1, 0)
			b.Set(0.5, -1)

			f := s.Step()

			Expect(f.Controls).To(Equal(dynamo.Controls{Yaw: 1, Pitch: -1, Roll: 0.5}))
			Expect(f.State.Rotation.Yaw).To(BeNumerically("~", s.Drone().RotationSpeed, eps))
			Expect(f.State.Rotation.Pitch).To(BeNumerically("~", -20, eps))
			Expect(f.State.Rotation.Roll).To(BeNumerically("~", 10, eps))
		})
	})

	Describe("disconnecting", func() {
		It("returns the drone exactly to zero", func() {
			s.Connect()
			a.Set(0.3, 1)
			b.Set(-1, 1)
			for i := 0; i < 40; i++ {
				s.Step()
			}
			Expect(s.State().Position.Len()).To(BeNumerically(">", 0))

			s.Disconnect()

			Expect(s.State()).To(Equal(dynamo.DroneState{}))
			Expect(s.Telemetry()).To(Equal(dynamo.Telemetry{}))
		})

		It("is a zero state after toggling twice", func() {
			s.Toggle()
			a.Set(0, 1)
			s.Step()
			Expect(s.Toggle()).To(BeFalse())
			Expect(s.State()).To(Equal(dynamo.DroneState{}))
		})
	})

	Describe("invariants", func() {
		It("hold for long aggressive flights", func() {
			d := s.Drone()
			s.Connect()
			for i := 0; i < 3000; i++ {
				phase := float64(i) / 50
				a.Set(math.Sin(phase), math.Cos(phase*0.7))
				b.Set(math.Cos(phase*1.3), 1)

				f := s.Step()

				Expect(f.State.Velocity.Len()).To(BeNumerically("<=", d.MaxSpeed+eps))
				Expect(f.State.Position[0]).To(BeNumerically(">=", d.Bounds.MinX))
				Expect(f.State.Position[0]).To(BeNumerically("<=", d.Bounds.MaxX))
				Expect(f.State.Position[1]).To(BeNumerically(">=", d.Bounds.MinY))
				Expect(f.State.Position[1]).To(BeNumerically("<=", d.Bounds.MaxY))
				Expect(f.State.Rotation.Yaw).To(BeNumerically(">=", 0))
				Expect(f.State.Rotation.Yaw).To(BeNumerically("<", 360))
			}
		})
	})

	Describe("metrics", func() {
		It("are fed connected frames and reset per session", func() {
			for _, m := range metrics.Default() {
				s.AddMetric(m)
			}
			s.Connect()
			a.Set(0, 1)
			for i := 0; i < 10; i++ {
				s.Step()
			}
			Expect(s.Metrics()["airtime"]).To(Equal(10.0))
			Expect(s.Metrics()["distance"]).To(BeNumerically(">", 0))

			s.Disconnect()
			s.Step()
			Expect(s.Metrics()["airtime"]).To(Equal(10.0))

			s.Connect()
			Expect(s.Metrics()["airtime"]).To(BeZero())
		})
	})

	Describe("with joysticks as sources", func() {
		It("reads the latest pointer state each frame", func() {
			left := joystick.New(joystick.Config{CenterX: 0, CenterY: 0, MaxRadius: 40})
			right := joystick.New(joystick.Config{CenterX: 200, CenterY: 0, MaxRadius: 40})
			js := sim.New(physics.NewDrone(), left, right)
			js.Connect()

			left.Handle(joystick.MouseEvent(joystick.Press, 0, 0))
			left.Handle(joystick.MouseEvent(joystick.Move, 0, -40))
			f := js.Step()
			Expect(f.Controls.Throttle).To(BeNumerically("~", 1, eps))

			left.Handle(joystick.MouseEvent(joystick.Release, 0, -40))
			f = js.Step()
			Expect(f.Controls).To(Equal(dynamo.Controls{}))
			Expect(f.State.Velocity[1]).To(BeNumerically("~", 0.138*0.92, eps))
		})
	})

	Describe("Run", func() {
		It("stops after maxFrames", func() {
			err := s.Run(context.Background(), time.Millisecond, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Frames()).To(Equal(int64(5)))
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			count := 0
			s.Connect()
			s.AddObserver(sim.ObserverFunc(func(dynamo.Frame) {
				count++
				if count == 3 {
					cancel()
				}
			}))

			err := s.Run(ctx, time.Millisecond, 0)

			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(count).To(Equal(3))
		})

		It("rejects a non-positive interval", func() {
			err := s.Run(context.Background(), 0, 1)
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		})
	})

	It("converts frame rates to intervals", func() {
		Expect(sim.FrameInterval(50)).To(Equal(20 * time.Millisecond))
		Expect(sim.FrameInterval(0)).To(BeZero())
	})

	It("reports the current transform", func() {
		s.Connect()
		b.Set(0, 1)
		s.Step()
		tr := s.Transform()
		Expect(tr.RotateX).To(BeNumerically("~", 20, eps))
		Expect(mgl64.Vec3{tr.TranslateX, tr.TranslateY, 0}.Len()).To(BeNumerically("<", 1))
	})
})
