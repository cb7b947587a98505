package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// View lays rows out exactly as Layout describes, so mouse hits line up.
func (a *App) View() string {
	lines := []string{a.header(), ""}

	margin := strings.Repeat(" ", a.layout.Scene.Min.X)
	scene := make([]string, 0, a.layout.Scene.Dy())
	for _, l := range a.scene.Canvas().Lines() {
		scene = append(scene, margin+a.styles.drone.Render(l))
	}
	side := a.telemetryPanel()
	if a.showHelp {
		side = a.helpPanel()
	}
	side = a.styles.panel.MaxHeight(a.layout.Scene.Dy()).Render(side)
	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(scene, "\n"), side)
	lines = append(lines, strings.Split(top, "\n")...)
	lines = append(lines, "")

	params := a.styles.panel.MaxHeight(a.layout.ThrottleYaw.Dy()).Render(a.paramsPanel())
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(a.padRows(), "\n"), params)
	lines = append(lines, strings.Split(bottom, "\n")...)

	lines = append(lines, a.captions(), "", a.styles.hint.Render(margin+"c connect  t theme  tab/↑↓ tune  ? help  q quit"))
	return strings.Join(lines, "\n")
}

func (a *App) header() string {
	status := a.styles.offline.Render("○ OFFLINE")
	if a.sim.Connected() {
		status = a.styles.connected.Render("● CONNECTED")
	}
	margin := strings.Repeat(" ", a.layout.Scene.Min.X)
	return margin + a.styles.title.Render("DRONESIM") + "  " + status + "  " + a.styles.hint.Render(a.theme.Name)
}

// padRows renders both pads and the connect button into the pad band.
func (a *App) padRows() []string {
	left := a.pads[0].Render()
	right := a.pads[1].Render()
	l := a.layout

	rows := make([]string, l.ThrottleYaw.Dy())
	for r := range rows {
		row := l.ThrottleYaw.Min.Y + r
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", l.ThrottleYaw.Min.X))
		b.WriteString(a.styles.ring.Render(left[r]))
		b.WriteString(strings.Repeat(" ", l.Button.Min.X-l.ThrottleYaw.Max.X))
		b.WriteString(a.buttonRow(row - l.Button.Min.Y))
		b.WriteString(strings.Repeat(" ", l.PitchRoll.Min.X-l.Button.Max.X))
		b.WriteString(a.styles.ring.Render(right[r]))
		// pad out to the scene edge so the params panel lines up
		b.WriteString(strings.Repeat(" ", l.Scene.Max.X-l.PitchRoll.Max.X))
		rows[r] = b.String()
	}
	return rows
}

func (a *App) buttonRow(i int) string {
	w := a.layout.Button.Dx()
	inner := w - 2
	style := a.styles.connected
	label := "CONNECT"
	if a.sim.Connected() {
		style = a.styles.offline
		label = "DISCONNECT"
	}
	switch i {
	case 0:
		return style.Render("╭" + strings.Repeat("─", inner) + "╮")
	case 1:
		padL := (inner - len(label)) / 2
		padR := inner - len(label) - padL
		return style.Render("│" + strings.Repeat(" ", padL) + label + strings.Repeat(" ", padR) + "│")
	case 2:
		return style.Render("╰" + strings.Repeat("─", inner) + "╯")
	}
	return strings.Repeat(" ", w)
}

func (a *App) captions() string {
	l := a.layout
	center := func(s string, w int) string {
		if len(s) >= w {
			return s[:w]
		}
		left := (w - len(s)) / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
	}
	return strings.Repeat(" ", l.ThrottleYaw.Min.X) +
		a.styles.hint.Render(center("THROTTLE/YAW", l.ThrottleYaw.Dx())) +
		strings.Repeat(" ", l.PitchRoll.Min.X-l.ThrottleYaw.Max.X) +
		a.styles.hint.Render(center("PITCH/ROLL", l.PitchRoll.Dx()))
}

func (a *App) telemetryPanel() string {
	var s strings.Builder
	f := a.frame
	readouts := f.Telemetry.Strings()

	s.WriteString(a.styles.title.Render("TELEMETRY") + "\n")
	rows := []struct {
		name  string
		value string
		bar   float64
	}{
		{"Throttle", readouts[0], f.Controls.Throttle},
		{"Pitch", readouts[1], f.Controls.Pitch},
		{"Roll", readouts[2], f.Controls.Roll},
		{"Yaw", readouts[3], f.Controls.Yaw},
	}
	for _, r := range rows {
		s.WriteString(a.styles.label.Render(r.name) +
			a.styles.value.Render(fmt.Sprintf("%6s", r.value)) + "  " +
			a.styles.ring.Render(DeflectionBar(r.bar, 11)) + "\n")
	}
	s.WriteString("\n")

	status := a.styles.offline.Render("offline")
	session := "-"
	if f.Connected {
		status = a.styles.connected.Render("connected")
		session = f.Session
		if len(session) > 8 {
			session = session[:8]
		}
	}
	s.WriteString(a.styles.label.Render("Status") + status + "\n")
	s.WriteString(a.styles.label.Render("Session") + session + "\n")
	s.WriteString(a.styles.label.Render("Frame") + fmt.Sprintf("%d", f.Index) + "\n")

	speed := fmt.Sprintf("%.2f", f.State.Speed())
	if f.Limits.SpeedClamped {
		speed = a.styles.warning.Render(speed + " max")
	}
	if f.Limits.BoundsClamped {
		speed += a.styles.warning.Render("  edge")
	}
	s.WriteString(a.styles.label.Render("Speed") + speed + "\n\n")

	if len(a.altitude) > 1 {
		chart := asciigraph.Plot(a.altitude, asciigraph.Height(3), asciigraph.Width(30), asciigraph.Caption("altitude"))
		s.WriteString(a.styles.graph.Render(chart) + "\n\n")
	}

	m := a.sim.Metrics()
	s.WriteString(a.styles.hint.Render(fmt.Sprintf("peak %.1f  dist %.0f  edge %d",
		m["peak_speed"], m["distance"], int(m["boundary_contacts"]))) + "\n")
	if a.notice != "" {
		s.WriteString(a.styles.warning.Render(a.notice) + "\n")
	}
	return s.String()
}

func (a *App) paramsPanel() string {
	var s strings.Builder
	s.WriteString(a.styles.title.Render("PARAMETERS") + "\n")
	values := a.sim.Drone().GetParams()
	for i, k := range a.params {
		line := fmt.Sprintf("%-15s %.3f", k, values[k])
		if i == a.selected {
			s.WriteString(a.styles.selected.Render("> "+line) + "\n")
		} else {
			s.WriteString(a.styles.hint.Render("  "+line) + "\n")
		}
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func (a *App) helpPanel() string {
	keys := [][2]string{
		{"mouse", "drag a pad to fly"},
		{"click", "connect button"},
		{"c", "connect / disconnect"},
		{"t", "cycle themes"},
		{"tab", "select parameter"},
		{"↑ / k", "increase parameter 5%"},
		{"↓ / j", "decrease parameter 5%"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	var s strings.Builder
	s.WriteString(a.styles.title.Render("KEYS") + "\n\n")
	for _, k := range keys {
		s.WriteString(a.styles.value.Render(fmt.Sprintf("%-7s", k[0])) + " " + k[1] + "\n")
	}
	s.WriteString("\n" + a.styles.hint.Render("left pad: throttle ↕  yaw ↔") + "\n")
	s.WriteString(a.styles.hint.Render("right pad: pitch ↕  roll ↔") + "\n")
	return s.String()
}
