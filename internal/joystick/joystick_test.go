package joystick_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dronesim/internal/config"
	"github.com/san-kum/dronesim/internal/joystick"
)

const eps = 1e-9

var _ = Describe("Joystick", func() {
	var js *joystick.Joystick

	BeforeEach(func() {
		js = joystick.New(joystick.Config{CenterX: 100, CenterY: 100, MaxRadius: 40})
	})

	press := func() {
		Expect(js.Handle(joystick.MouseEvent(joystick.Press, 100, 100))).To(BeTrue())
	}

	Describe("press", func() {
		It("activates over the control surface", func() {
			press()
			Expect(js.Active()).To(BeTrue())
		})

		It("ignores presses outside the surface", func() {
			Expect(js.Handle(joystick.MouseEvent(joystick.Press, 200, 200))).To(BeFalse())
			Expect(js.Active()).To(BeFalse())
		})

		It("honors a wider surface radius", func() {
			wide := joystick.New(joystick.Config{CenterX: 0, CenterY: 0, MaxRadius: 40, SurfaceRadius: 60})
			Expect(wide.Handle(joystick.MouseEvent(joystick.Press, 50, 0))).To(BeTrue())
		})

		It("does not move the stick by itself", func() {
			Expect(js.Handle(joystick.MouseEvent(joystick.Press, 110, 90))).To(BeTrue())
			x, y := js.Values()
			Expect(x).To(BeZero())
			Expect(y).To(BeZero())
		})
	})

	Describe("move", func() {
		It("is ignored while inactive", func() {
			Expect(js.Handle(joystick.MouseEvent(joystick.Move, 120, 100))).To(BeFalse())
			Expect(js.State().Offset.Len()).To(BeZero())
		})

		It("normalizes inside the radius with y inverted", func() {
			press()
			js.Handle(joystick.MouseEvent(joystick.Move, 120, 90))
			st := js.State()
			Expect(st.Offset[0]).To(BeNumerically("~", 20, eps))
			Expect(st.Offset[1]).To(BeNumerically("~", -10, eps))
			Expect(st.Normalized[0]).To(BeNumerically("~", st.Offset[0]/40, eps))
			Expect(st.Normalized[1]).To(BeNumerically("~", -st.Offset[1]/40, eps))
		})

		It("clamps (60, 80) to (24, 32) at radius 40", func() {
			press()
			js.Handle(joystick.MouseEvent(joystick.Move, 160, 180))
			st := js.State()
			Expect(st.Offset[0]).To(BeNumerically("~", 24, eps))
			Expect(st.Offset[1]).To(BeNumerically("~", 32, eps))
			x, y := js.Values()
			Expect(x).To(BeNumerically("~", 0.6, eps))
			Expect(y).To(BeNumerically("~", -0.8, eps))
		})

		It("keeps magnitude at the radius and the original angle for far offsets", func() {
			press()
			for _, p := range [][2]float64{{500, 100}, {-300, -700}, {100, 1e6}, {41, -41}, {-0.5, 140.2}} {
				dx, dy := p[0]-100, p[1]-100
				if math.Hypot(dx, dy) <= 40 {
					continue
				}
				js.Handle(joystick.MouseEvent(joystick.Move, p[0], p[1]))
				st := js.State()
				Expect(st.Offset.Len()).To(BeNumerically("~", 40, eps))
				Expect(math.Atan2(st.Offset[1], st.Offset[0])).To(BeNumerically("~", math.Atan2(dy, dx), eps))
				Expect(st.Normalized[0]).To(BeNumerically(">=", -1-eps))
				Expect(st.Normalized[0]).To(BeNumerically("<=", 1+eps))
			}
		})
	})

	Describe("release", func() {
		It("snaps to zero and deactivates", func() {
			press()
			js.Handle(joystick.MouseEvent(joystick.Move, 130, 60))
			Expect(js.Handle(joystick.MouseEvent(joystick.Release, 130, 60))).To(BeTrue())
			Expect(js.State()).To(Equal(joystick.State{}))
			x, y := js.Values()
			Expect(x).To(Equal(0.0))
			Expect(y).To(Equal(0.0))
		})

		It("reports an idle release as not consumed", func() {
			Expect(js.Handle(joystick.MouseEvent(joystick.Release, 0, 0))).To(BeFalse())
		})
	})

	Describe("touch sources", func() {
		It("behave exactly like mouse sources", func() {
			mouse := joystick.New(joystick.Config{CenterX: 100, CenterY: 100, MaxRadius: 40})
			touch := joystick.New(joystick.Config{CenterX: 100, CenterY: 100, MaxRadius: 40})

			steps := []struct {
				kind joystick.Kind
				x, y float64
			}{
				{joystick.Press, 95, 105},
				{joystick.Move, 125, 70},
				{joystick.Move, 300, 100},
			}
			for _, s := range steps {
				mouse.Handle(joystick.MouseEvent(s.kind, s.x, s.y))
				touch.Handle(joystick.TouchEvent(s.kind, joystick.Point{X: s.x, Y: s.y}, joystick.Point{X: 0, Y: 0}))
				Expect(touch.State()).To(Equal(mouse.State()))
			}

			touch.Handle(joystick.TouchEvent(joystick.Release))
			Expect(touch.State()).To(Equal(joystick.State{}))
		})
	})

	Describe("layout", func() {
		It("measures offsets from the new center", func() {
			js.SetCenter(0, 0)
			Expect(js.Handle(joystick.MouseEvent(joystick.Press, 0, 0))).To(BeTrue())
			js.Handle(joystick.MouseEvent(joystick.Move, 0, -20))
			_, y := js.Values()
			Expect(y).To(BeNumerically("~", 0.5, eps))
		})

		It("falls back to the default radius", func() {
			d := joystick.New(joystick.FromConfig(config.JoystickConfig{}, 0, 0))
			Expect(d.MaxRadius()).To(Equal(config.DefaultMaxRadius))
		})
	})
})

var _ = Describe("Event", func() {
	It("uses the first touch point", func() {
		ev := joystick.TouchEvent(joystick.Move, joystick.Point{X: 3, Y: 4}, joystick.Point{X: 9, Y: 9})
		Expect(ev.Point()).To(Equal(joystick.Point{X: 3, Y: 4}))
	})

	It("uses client coordinates for mouse sources", func() {
		Expect(joystick.MouseEvent(joystick.Press, 7, 8).Point()).To(Equal(joystick.Point{X: 7, Y: 8}))
	})

	It("names its kinds", func() {
		Expect(joystick.Press.String()).To(Equal("press"))
		Expect(joystick.Kind(9).String()).To(Equal("unknown"))
	})
})
