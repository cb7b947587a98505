package automation

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/san-kum/dronesim/internal/control"
	"github.com/san-kum/dronesim/internal/dynamo"
	"github.com/san-kum/dronesim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted flight
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep applies an optional connection action, then holds both
// sticks for Frames frames. A stick left out keeps its previous position.
type ScenarioStep struct {
	Action      string    `yaml:"action,omitempty"`
	Frames      int       `yaml:"frames,omitempty"`
	ThrottleYaw []float64 `yaml:"throttle_yaw,omitempty"`
	PitchRoll   []float64 `yaml:"pitch_roll,omitempty"`
}

const (
	ActionConnect    = "connect"
	ActionDisconnect = "disconnect"
	ActionToggle     = "toggle"
)

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrInvalidScenario, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// TotalFrames is the number of frames the scenario runs.
func (s *Scenario) TotalFrames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Frames
	}
	return n
}

func (s *Scenario) Validate() error {
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("%w: step %d: %s", dynamo.ErrInvalidScenario, i+1, err)
		}
	}
	return nil
}

func (st ScenarioStep) validate() error {
	switch st.Action {
	case "", ActionConnect, ActionDisconnect, ActionToggle:
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if st.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", st.Frames)
	}
	for name, stick := range map[string][]float64{"throttle_yaw": st.ThrottleYaw, "pitch_roll": st.PitchRoll} {
		if stick == nil {
			continue
		}
		if len(stick) != 2 {
			return fmt.Errorf("%s needs [x, y], got %v", name, stick)
		}
		for _, v := range stick {
			if v < -1 || v > 1 {
				return fmt.Errorf("%s value %v outside [-1, 1]", name, v)
			}
		}
	}
	return nil
}

// RunScenario executes all steps against s as fast as possible, moving the
// two manual sticks the simulator reads from, and returns every frame.
func RunScenario(ctx context.Context, scenario *Scenario, s *sim.Simulator, throttleYaw, pitchRoll *control.Manual) ([]dynamo.Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	frames := make([]dynamo.Frame, 0, scenario.TotalFrames())

	for i, st := range scenario.Steps {
		st.apply(s, throttleYaw, pitchRoll)
		for n := 0; n < st.Frames; n++ {
			select {
			case <-ctx.Done():
				return frames, fmt.Errorf("step %d: %w", i+1, ctx.Err())
			default:
			}
			frames = append(frames, s.Step())
		}
	}

	return frames, nil
}

// Play runs the scenario in real time, one frame per interval. Frames reach
// the simulator's observers instead of being collected.
func Play(ctx context.Context, scenario *Scenario, s *sim.Simulator, throttleYaw, pitchRoll *control.Manual, interval time.Duration) error {
	if err := scenario.Validate(); err != nil {
		return err
	}
	for i, st := range scenario.Steps {
		st.apply(s, throttleYaw, pitchRoll)
		if st.Frames == 0 {
			continue
		}
		if err := s.Run(ctx, interval, st.Frames); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st ScenarioStep) apply(s *sim.Simulator, throttleYaw, pitchRoll *control.Manual) {
	switch st.Action {
	case ActionConnect:
		s.Connect()
	case ActionDisconnect:
		s.Disconnect()
	case ActionToggle:
		s.Toggle()
	}
	if st.ThrottleYaw != nil {
		throttleYaw.Set(st.ThrottleYaw[0], st.ThrottleYaw[1])
	}
	if st.PitchRoll != nil {
		pitchRoll.Set(st.PitchRoll[0], st.PitchRoll[1])
	}
}

var builtin = map[string]*Scenario{
	"takeoff": {
		Name:        "takeoff",
		Description: "climb at full throttle, then settle",
		Steps: []ScenarioStep{
			{Action: ActionConnect},
			{Frames: 90, ThrottleYaw: []float64{0, 1}, PitchRoll: []float64{0, 0}},
			{Frames: 60, ThrottleYaw: []float64{0, 0}},
		},
	},
	"orbit": {
		Name:        "orbit",
		Description: "fly forward while yawing for a full circle",
		Steps: []ScenarioStep{
			{Action: ActionConnect},
			{Frames: 30, ThrottleYaw: []float64{0, 0.5}},
			{Frames: 120, ThrottleYaw: []float64{1, 0}, PitchRoll: []float64{0, 1}},
			{Frames: 30, ThrottleYaw: []float64{0, 0}, PitchRoll: []float64{0, 0}},
		},
	},
	"drift": {
		Name:        "drift",
		Description: "roll into the boundary, then disconnect",
		Steps: []ScenarioStep{
			{Action: ActionConnect},
			{Frames: 200, PitchRoll: []float64{1, 0}},
			{Frames: 20, PitchRoll: []float64{0, 0}},
			{Action: ActionDisconnect, Frames: 5},
		},
	},
}

// Builtin returns a built-in scenario. Callers must not modify it.
func Builtin(name string) (*Scenario, error) {
	sc, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("%w: scenario %s (available: %v)", dynamo.ErrUnknownPreset, name, ListBuiltin())
	}
	return sc, nil
}

func ListBuiltin() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
