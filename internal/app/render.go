package app

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/folio/internal/theme"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

// Layer depths above every window.
const (
	zSwitcher     = 1 << 30
	zNotification = zSwitcher + 1
	zStatusBar    = zSwitcher + 2
)

// View returns the rendered desktop.
func (d *Desktop) View() tea.View {
	var view tea.View
	view.SetContent(d.Render())

	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.WindowTitle = d.cfg.Site.Name
	// Key releases let the switcher commit when Alt is let go.
	view.KeyboardEnhancements.ReportEventTypes = true
	return view
}

// Render composites the shell, the windows in ascending z, the switcher,
// notifications and the status bar into one frame.
func (d *Desktop) Render() string {
	if d.width <= 0 || d.height <= 0 {
		return ""
	}

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(d.renderShell()).X(0).Y(0).Z(0).ID("shell"),
	}
	layers = append(layers, d.windowLayers()...)
	if d.switcher.Active() {
		layers = append(layers, d.switcherLayer())
	}
	layers = append(layers, d.notificationLayers()...)
	layers = append(layers,
		lipgloss.NewLayer(d.renderStatusBar()).X(0).Y(d.usableHeight()).Z(zStatusBar).ID("statusbar"))

	canvas := lipgloss.NewCanvas(d.width, d.height)
	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas.Render()
}

// ============================================================================
// Windows
// ============================================================================

// windowLines returns the full content of w, one entry per rendered row.
func (d *Desktop) windowLines(w *wm.Window) []string {
	if w.Content.IsMarkdown() {
		return d.markdown.Lines(w)
	}
	return w.Content.Lines
}

func (d *Desktop) windowLayers() []*lipgloss.Layer {
	top := d.windows.TopWindow()

	var layers []*lipgloss.Layer
	for _, w := range d.windows.All() {
		focused := !d.shellFocused && top != nil && top.ID == w.ID
		frame := d.renderWindow(w, focused)

		clipped, x, y := clipWindowContent(frame, w.X, w.Y, d.width, d.usableHeight())
		if clipped == "" {
			continue
		}
		layers = append(layers,
			lipgloss.NewLayer(clipped).X(x).Y(y).Z(w.Z).ID(fmt.Sprintf("window-%d", w.ID)))
	}
	return layers
}

func (d *Desktop) renderWindow(w *wm.Window, focused bool) string {
	var borderColor color.Color
	switch {
	case w.Closing:
		borderColor = theme.BorderClosing()
	case focused:
		borderColor = theme.BorderFocused()
	default:
		borderColor = theme.BorderUnfocused()
	}
	border := d.cfg.Appearance.Border()
	edge := lipgloss.NewStyle().Foreground(borderColor)
	dim := lipgloss.NewStyle().Foreground(theme.BorderClosing())

	iw, ih := w.InnerWidth(), w.InnerHeight()
	lines := d.windowLines(w)
	start := min(w.ScrollOffset, len(lines))

	rows := make([]string, 0, w.Height)
	rows = append(rows, windowHeader(w, border, edge))
	for i := range ih {
		line := ""
		if start+i < len(lines) {
			line = lines[start+i]
		}
		if w.Closing {
			line = dim.Render(ansi.Strip(line))
		}
		rows = append(rows, edge.Render(border.Left)+fitWidth(line, iw)+edge.Render(border.Right))
	}
	rows = append(rows, edge.Render(border.BottomLeft+strings.Repeat(border.Bottom, iw)+border.BottomRight))
	return strings.Join(rows, "\n")
}

// windowHeader draws the top border with the title on the left and the
// close button two cells from the right edge, where wm.Window.ZoneAt
// expects it.
func windowHeader(w *wm.Window, border lipgloss.Border, edge lipgloss.Style) string {
	width := w.Width
	if width < 7 {
		return edge.Render(border.TopLeft + strings.Repeat(border.Top, max(width-2, 0)) + border.TopRight)
	}

	room := width - 7
	title := ansi.Truncate(" "+w.Title+" ", room, "…")
	fill := room - ansi.StringWidth(title)

	titleStyle := lipgloss.NewStyle().Foreground(theme.WindowTitle()).Bold(true)
	closeStyle := lipgloss.NewStyle().Foreground(theme.CloseButton())
	if w.Closing {
		titleStyle = edge
		closeStyle = edge
	}

	return edge.Render(border.TopLeft+border.Top) +
		titleStyle.Render(title) +
		edge.Render(strings.Repeat(border.Top, fill)) +
		closeStyle.Render(wm.CloseButton) +
		edge.Render(border.Top+border.TopRight)
}

// fitWidth truncates or pads s to exactly width cells.
func fitWidth(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		if strings.Contains(s, "\x1b") {
			s += "\x1b[0m"
		}
		w = ansi.StringWidth(s)
	}
	return s + strings.Repeat(" ", max(width-w, 0))
}

// clipWindowContent clips content placed at (x, y) to the viewport. It
// returns the visible part and where to draw it, or "" when nothing is
// visible.
func clipWindowContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, ansi.StringWidth(l))
	}

	if x+width <= 0 || x >= viewportWidth || y+len(lines) <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop, clipLeft := max(-y, 0), max(-x, 0)
	finalX, finalY := max(x, 0), max(y, 0)

	lines = lines[clipTop:]
	if visible := viewportHeight - finalY; visible < len(lines) {
		lines = lines[:visible]
	}

	right := clipLeft + viewportWidth - finalX
	if clipLeft > 0 || right < width {
		for i, l := range lines {
			lines[i] = ansi.Cut(l, clipLeft, right)
		}
	}
	return strings.Join(lines, "\n"), finalX, finalY
}

// ============================================================================
// Overlays
// ============================================================================

func (d *Desktop) switcherLayer() *lipgloss.Layer {
	items := d.switcher.Items(d.windows)
	selBg, selFg := theme.SwitcherSelected()
	selected := lipgloss.NewStyle().Background(selBg).Foreground(selFg).Bold(true)
	normal := lipgloss.NewStyle().Foreground(theme.Foreground())

	width := 0
	for _, it := range items {
		width = max(width, ansi.StringWidth(it.Title))
	}
	width = min(width+4, max(d.width-6, 10))

	rows := make([]string, 0, len(items)+2)
	rows = append(rows, lipgloss.NewStyle().Foreground(theme.Muted()).Render("Switch to"), "")
	for i, it := range items {
		row := fitWidth(" "+ansi.Truncate(it.Title, width-2, "…")+" ", width)
		if i == d.switcher.Index() {
			rows = append(rows, selected.Render(row))
		} else {
			rows = append(rows, normal.Render(row))
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.SwitcherBorder()).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))

	x := max((d.width-lipgloss.Width(box))/2, 0)
	y := max((d.usableHeight()-lipgloss.Height(box))/2, 0)
	return lipgloss.NewLayer(box).X(x).Y(y).Z(zSwitcher).ID("switcher")
}

func (d *Desktop) notificationLayers() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	for i, n := range d.Notifications {
		bg := theme.NotificationInfo()
		if n.Type == NotificationError {
			bg = theme.NotificationError()
		}
		msg := ansi.Truncate(n.Message, max(d.width-4, 1), "…")
		box := lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Render(msg)

		x := max(d.width-lipgloss.Width(box)-1, 0)
		layers = append(layers,
			lipgloss.NewLayer(box).X(x).Y(i).Z(zNotification).ID("notification-"+n.ID))
	}
	return layers
}

func isBlank(s string) bool {
	return strings.TrimSpace(ansi.Strip(s)) == ""
}
