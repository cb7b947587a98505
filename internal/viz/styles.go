package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of lipgloss styles derived from a Theme.
type styles struct {
	title     lipgloss.Style
	drone     lipgloss.Style
	ring      lipgloss.Style
	knob      lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	connected lipgloss.Style
	offline   lipgloss.Style
	warning   lipgloss.Style
	selected  lipgloss.Style
	hint      lipgloss.Style
	graph     lipgloss.Style
	panel     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		drone:     lipgloss.NewStyle().Foreground(t.Primary),
		ring:      lipgloss.NewStyle().Foreground(t.Muted),
		knob:      lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:     lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		connected: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		offline:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		warning:   lipgloss.NewStyle().Foreground(t.Warning),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		hint:      lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		graph:     lipgloss.NewStyle().Foreground(t.Primary),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2),
	}
}

// DeflectionBar renders v in [-1, 1] as a bar growing out of a center tick.
func DeflectionBar(v float64, width int) string {
	if width < 3 {
		width = 3
	}
	half := width / 2
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	n := int(absFloat(v)*float64(half) + 0.5)

	cells := []rune(strings.Repeat("░", half) + "│" + strings.Repeat("░", width-half-1))
	for i := 1; i <= n; i++ {
		if v > 0 && half+i < len(cells) {
			cells[half+i] = '█'
		} else if v < 0 {
			cells[half-i] = '█'
		}
	}
	return string(cells)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
