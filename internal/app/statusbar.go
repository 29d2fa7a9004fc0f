package app

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/sysinfo"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// Mode names shown in the status bar.
const (
	ModeShell  = "SHELL"
	ModeWindow = "WINDOW"
	ModeSwitch = "SWITCH"
)

// Mode reports which part of the desktop has the keyboard.
func (d *Desktop) Mode() string {
	switch {
	case d.switcher.Active():
		return ModeSwitch
	case d.shellFocused:
		return ModeShell
	}
	return ModeWindow
}

var hintActions = map[string][]string{
	ModeShell:  {"submit", "complete", "history_prev", "switch_next", "toggle_hints", "quit"},
	ModeWindow: {"close_window", "scroll_down", "focus_next", "move_right", "resize_right", "focus_shell", "switch_next"},
	ModeSwitch: {"switch_next", "switch_prev", "switch_commit", "switch_cancel"},
}

func (d *Desktop) hintBindings() []key.Binding {
	actions := hintActions[d.Mode()]
	bindings := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		bindings = append(bindings, d.keys.Binding(a))
	}
	return bindings
}

func (d *Desktop) recordMetrics(m MetricsMsg) {
	d.cpuHistory = append(d.cpuHistory, m.CPU)
	if over := len(d.cpuHistory) - config.CPUHistorySize; over > 0 {
		d.cpuHistory = d.cpuHistory[over:]
	}
	d.memPercent = m.Mem
}

// CPUGraph returns a fixed-width CPU usage graph with the current
// percentage, e.g. "CPU:▁▂▃▄▅▆▇█▇▆  42%".
func (d *Desktop) CPUGraph() string {
	current := 0.0
	if n := len(d.cpuHistory); n > 0 {
		current = d.cpuHistory[n-1]
	}
	return fmt.Sprintf("CPU:%s %3.0f%%", sysinfo.Graph(d.cpuHistory, config.CPUHistorySize), current)
}

func (d *Desktop) renderStatusBar() string {
	var modeColor color.Color
	mode := d.Mode()
	switch mode {
	case ModeSwitch:
		modeColor = theme.ModeSwitch()
	case ModeShell:
		modeColor = theme.ModeShell()
	default:
		modeColor = theme.ModeWindow()
	}

	bg := lipgloss.NewStyle().Background(theme.StatusBarBg()).Foreground(theme.StatusBarFg())
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#000000")).
		Background(modeColor).
		Padding(0, 1).
		Render(mode)

	left := badge
	if d.cfg.Navigation.ShowBreadcrumbs {
		left += bg.Render(" " + d.shell.Path())
	}

	right := ""
	if d.cfg.Appearance.ShowMetrics && len(d.cpuHistory) > 0 {
		right = bg.Render(fmt.Sprintf("%s  MEM:%3.0f%% ", d.CPUGraph(), d.memPercent))
	}

	room := max(d.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	var middle string
	if d.showHints {
		h := d.help
		h.SetWidth(room)
		middle = h.ShortHelpView(d.hintBindings())
	} else if keys := d.keys.GetKeysForDisplay("toggle_hints"); keys != "" {
		middle = bg.Render(keys + " for keys")
	}

	gap := max(d.width-lipgloss.Width(left)-lipgloss.Width(middle)-lipgloss.Width(right)-1, 0)
	bar := left + bg.Render(" ") + middle + bg.Render(strings.Repeat(" ", gap)) + right
	return lipgloss.NewStyle().MaxWidth(d.width).Render(bar)
}
