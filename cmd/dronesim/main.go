package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dronesim/internal/audio"
	"github.com/san-kum/dronesim/internal/automation"
	"github.com/san-kum/dronesim/internal/config"
	"github.com/san-kum/dronesim/internal/control"
	"github.com/san-kum/dronesim/internal/dynamo"
	"github.com/san-kum/dronesim/internal/log"
	"github.com/san-kum/dronesim/internal/metrics"
	"github.com/san-kum/dronesim/internal/physics"
	"github.com/san-kum/dronesim/internal/sim"
	"github.com/san-kum/dronesim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	frameRate  int
	noAudio    bool
	logLevel   string
	logFile    string
	// headless
	scenarioName string
	realtime     bool
	every        int
	// config
	writePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dronesim",
		Short:        "fly a toy drone with two virtual joysticks",
		SilenceUsage: true,
		RunE:         runFly,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (fly defaults to "+config.DefaultLogFile+", headless to stderr)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	addFlyFlags(rootCmd)

	flyCmd := &cobra.Command{
		Use:   "fly",
		Short: "fly interactively in the terminal",
		RunE:  runFly,
	}
	addFlyFlags(flyCmd)

	headlessCmd := &cobra.Command{
		Use:   "headless [scenario.yaml]",
		Short: "run a scripted flight and print telemetry",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	headlessCmd.Flags().StringVar(&scenarioName, "scenario", "takeoff", "built-in scenario when no file is given")
	headlessCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at the configured frame rate")
	headlessCmd.Flags().IntVar(&every, "every", 10, "print every n-th frame")
	headlessCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets and built-in scenarios",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print or write the effective configuration",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "write the configuration to this path instead of stdout")

	rootCmd.AddCommand(flyCmd, headlessCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFlyFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	cmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable audio feedback")
}

// loadConfig resolves the configuration: a config file replaces a preset,
// and flags set on the command line override both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	var err error

	if preset != "" {
		if cfg, err = config.GetPreset(preset); err != nil {
			return nil, err
		}
	}
	if configFile != "" {
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.FrameRate = frameRate
	}
	if noAudio {
		cfg.Audio.Enabled = false
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog returns the log destination. An empty path means fallback.
func openLog(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runFly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the alt screen owns the terminal, so logs always go to a file
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultLogFile
	}
	w, closeLog, err := openLog(path, nil)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Init(cfg.Log.Level, w)

	app := viz.NewApp(cfg)
	if cfg.Audio.Enabled {
		fb := audio.NewFeedback(cfg.Audio)
		if err := fb.Initialize(); err != nil {
			log.Warn("continuing without audio", "err", err)
		} else {
			defer fb.Cleanup()
			app.Simulator().AddListener(fb)
			app.Simulator().AddObserver(fb)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("flight started", "fps", cfg.FrameRate, "preset", preset, "audio", cfg.Audio.Enabled)
	err = viz.Run(ctx, app)
	log.Info("flight ended", "frames", app.Simulator().Frames())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// stdout carries the table; logs stay on stderr unless asked otherwise
	path := ""
	if cmd.Flags().Changed("log-file") || configFile != "" {
		path = cfg.Log.File
	}
	w, closeLog, err := openLog(path, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Init(cfg.Log.Level, w)

	var sc *automation.Scenario
	if len(args) == 1 {
		sc, err = automation.LoadScenario(args[0])
	} else {
		sc, err = automation.Builtin(scenarioName)
	}
	if err != nil {
		return err
	}
	if every < 1 {
		every = 1
	}

	throttleYaw, pitchRoll := control.NewManual(), control.NewManual()
	s := sim.New(physics.FromConfig(cfg.Physics), throttleYaw, pitchRoll)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("description: %s\n", sc.Description)
	}
	fmt.Printf("frames: %d\n\n", sc.TotalFrames())

	tw := tabwriter.NewWriter(os.Stdout, 8, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tLINK\tX\tY\tZ\tSPEED\tTHR\tPITCH\tROLL\tYAW\t")

	var frames []dynamo.Frame
	if realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s.AddObserver(sim.ObserverFunc(func(f dynamo.Frame) {
			frames = append(frames, f)
			if f.Index%int64(every) == 0 {
				printRow(tw, f)
				tw.Flush()
			}
		}))
		err = automation.Play(ctx, sc, s, throttleYaw, pitchRoll, sim.FrameInterval(cfg.FrameRate))
		if errors.Is(err, context.Canceled) {
			log.Info("flight interrupted", "frames", s.Frames())
			err = nil
		}
	} else {
		frames, err = automation.RunScenario(context.Background(), sc, s, throttleYaw, pitchRoll)
		for _, f := range frames {
			if f.Index%int64(every) == 0 {
				printRow(tw, f)
			}
		}
	}
	if err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	printPlots(frames)
	printMetrics(s.Metrics())
	return nil
}

func printRow(w io.Writer, f dynamo.Frame) {
	t := f.Telemetry.Strings()
	link := "off"
	if f.Connected {
		link = "on"
	}
	p := f.State.Position
	fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.3f\t%s\t%s\t%s\t%s\t\n",
		f.Index, link, p[0], p[1], p[2], f.State.Speed(), t[0], t[1], t[2], t[3])
}

func printPlots(frames []dynamo.Frame) {
	altitude := make([]float64, 0, len(frames))
	speed := make([]float64, 0, len(frames))
	for _, f := range frames {
		if !f.Connected {
			continue
		}
		altitude = append(altitude, f.State.Position[1])
		speed = append(speed, f.State.Speed())
	}
	if len(altitude) < 2 {
		return
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(altitude, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("altitude (y)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(speed, asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("speed")))
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-18s %.3f\n", name, m[name])
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tDETAILS")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		p := cfg.Physics
		fmt.Fprintf(w, "preset\t%s\taccel=%g friction=%g max_speed=%g rotation=%g tilt=%g\n",
			name, p.Accel, p.Friction, p.MaxSpeed, p.RotationSpeed, p.Tilt)
	}
	for _, name := range automation.ListBuiltin() {
		sc, err := automation.Builtin(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "scenario\t%s\t%s (%d frames)\n", name, sc.Description, sc.TotalFrames())
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", writePath)
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
