package viz

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dronesim/internal/config"
	"github.com/san-kum/dronesim/internal/dynamo"
	"github.com/san-kum/dronesim/internal/joystick"
	"github.com/san-kum/dronesim/internal/log"
	"github.com/san-kum/dronesim/internal/metrics"
	"github.com/san-kum/dronesim/internal/physics"
	"github.com/san-kum/dronesim/internal/sim"
)

const historyCapacity = 300

type frameMsg time.Time

// App is the interactive flight screen. It owns the simulator and both
// joysticks; every input and every frame goes through Update.
type App struct {
	cfg         *config.Config
	sim         *sim.Simulator
	throttleYaw *joystick.Joystick
	pitchRoll   *joystick.Joystick

	layout Layout
	scene  *Scene
	pads   [2]*Pad
	theme  Theme
	styles styles

	frame    dynamo.Frame
	altitude []float64
	params   []string
	selected int
	notice   string
	showHelp bool

	width, height int
}

func NewApp(cfg *config.Config) *App {
	layout := DefaultLayout()

	tx, ty := PadCenter(layout.ThrottleYaw)
	px, py := PadCenter(layout.PitchRoll)
	throttleYaw := joystick.New(joystick.FromConfig(cfg.Joystick, tx, ty))
	pitchRoll := joystick.New(joystick.FromConfig(cfg.Joystick, px, py))

	drone := physics.FromConfig(cfg.Physics)
	s := sim.New(drone, throttleYaw, pitchRoll)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	params := make([]string, 0)
	for k := range drone.GetParams() {
		params = append(params, k)
	}
	sort.Strings(params)

	theme := Themes[0]
	app := &App{
		cfg:         cfg,
		sim:         s,
		throttleYaw: throttleYaw,
		pitchRoll:   pitchRoll,
		layout:      layout,
		scene:       NewScene(layout.Scene.Dx(), layout.Scene.Dy(), drone.Bounds),
		pads: [2]*Pad{
			NewPad(layout.ThrottleYaw.Dx(), layout.ThrottleYaw.Dy(), throttleYaw),
			NewPad(layout.PitchRoll.Dx(), layout.PitchRoll.Dy(), pitchRoll),
		},
		theme:    theme,
		styles:   newStyles(theme),
		altitude: make([]float64, 0, historyCapacity),
		params:   params,
	}
	app.frame.Transform = drone.Transform(dynamo.DroneState{})
	app.scene.Render(app.frame)
	return app
}

func (a *App) Simulator() *sim.Simulator { return a.sim }
func (a *App) Layout() Layout            { return a.layout }
func (a *App) Theme() Theme              { return a.theme }

func (a *App) Sticks() (throttleYaw, pitchRoll *joystick.Joystick) {
	return a.throttleYaw, a.pitchRoll
}

func (a *App) Init() tea.Cmd {
	return a.tick()
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(sim.FrameInterval(a.cfg.FrameRate), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case tea.MouseMsg:
		a.handleMouse(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case frameMsg:
		a.step()
		return a, a.tick()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "c":
		a.sim.Toggle()
	case "t":
		a.theme = NextTheme(a.theme.Name)
		a.styles = newStyles(a.theme)
	case "tab":
		if len(a.params) > 0 {
			a.selected = (a.selected + 1) % len(a.params)
		}
	case "up", "k":
		a.adjustParam(1.05)
	case "down", "j":
		a.adjustParam(0.95)
	case "?":
		a.showHelp = !a.showHelp
	}
	return nil
}

func (a *App) adjustParam(factor float64) {
	if len(a.params) == 0 {
		return
	}
	key := a.params[a.selected]
	val := a.sim.Drone().GetParams()[key]
	if val == 0 {
		val = 0.01
	}
	if err := a.sim.Drone().SetParam(key, val*factor); err != nil {
		a.notice = err.Error()
		log.Debug("param rejected", "param", key, "err", err)
		return
	}
	a.notice = ""
}

// handleMouse turns terminal mouse reports into pointer events in client
// space. A left press on the button toggles the connection; everything
// else goes to the joysticks, and a consumed event stops there.
func (a *App) handleMouse(msg tea.MouseMsg) {
	x, y := CellToClient(msg.X, msg.Y)
	sticks := [2]*joystick.Joystick{a.throttleYaw, a.pitchRoll}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if a.layout.InButton(msg.X, msg.Y) {
			a.sim.Toggle()
			return
		}
		ev := joystick.MouseEvent(joystick.Press, x, y)
		for _, j := range sticks {
			if j.Handle(ev) {
				return
			}
		}
	case tea.MouseActionMotion:
		ev := joystick.MouseEvent(joystick.Move, x, y)
		for _, j := range sticks {
			if j.Handle(ev) {
				return
			}
		}
	case tea.MouseActionRelease:
		ev := joystick.MouseEvent(joystick.Release, x, y)
		for _, j := range sticks {
			j.Handle(ev)
		}
	}
}

func (a *App) step() {
	a.frame = a.sim.Step()
	if a.frame.Connected {
		a.altitude = append(a.altitude, a.frame.State.Position[1])
		if len(a.altitude) > historyCapacity {
			a.altitude = a.altitude[1:]
		}
	} else {
		a.altitude = a.altitude[:0]
	}
	a.scene.Render(a.frame)
}

// Run shows the app full screen with mouse reporting until the user quits
// or ctx is done.
func Run(ctx context.Context, app *App, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, opts...)
	_, err := tea.NewProgram(app, opts...).Run()
	return err
}
