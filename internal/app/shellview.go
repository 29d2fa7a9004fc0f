package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/folio/internal/shell"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

const cursorGlyph = "█"

func (d *Desktop) shellViewHeight() int {
	return d.usableHeight()
}

// prompt renders "<user>@<host>:<path><symbol> ".
func (d *Desktop) prompt(path string) string {
	user := lipgloss.NewStyle().Foreground(theme.PromptUser()).Bold(true)
	dir := lipgloss.NewStyle().Foreground(theme.PromptPath()).Bold(true)
	return user.Render(d.user+"@"+d.host) + ":" + dir.Render(path) + d.cfg.Terminal.PromptSymbol + " "
}

// shellLines renders the scrollback, the input line and the completion
// candidates, wrapped to the screen width.
func (d *Desktop) shellLines() []string {
	errStyle := lipgloss.NewStyle().Foreground(theme.ShellError())
	outStyle := lipgloss.NewStyle().Foreground(theme.Foreground())

	var lines []string
	for _, e := range d.shell.Scrollback() {
		var text string
		switch e.Kind {
		case shell.EntryInput:
			text = d.prompt(e.Path) + e.Text
		case shell.EntryError:
			text = errStyle.Render(e.Text)
		default:
			text = outStyle.Render(e.Text)
		}
		lines = append(lines, d.wrap(text)...)
	}

	current := d.prompt(d.shell.Path()) + d.shell.Input()
	if d.shellFocused && !d.switcher.Active() {
		current += lipgloss.NewStyle().Foreground(theme.Cursor()).Render(cursorGlyph)
	}
	lines = append(lines, d.wrap(current)...)

	if cands, idx := d.shell.Candidates(); len(cands) > 0 {
		lines = append(lines, d.renderCandidates(cands, idx))
	}
	return lines
}

func (d *Desktop) renderCandidates(cands []string, idx int) string {
	active := lipgloss.NewStyle().Foreground(theme.Completion()).Reverse(true)
	rest := lipgloss.NewStyle().Foreground(theme.Muted())

	parts := make([]string, len(cands))
	for i, c := range cands {
		if i == idx {
			parts[i] = active.Render(c)
		} else {
			parts[i] = rest.Render(c)
		}
	}
	return ansi.Truncate(strings.Join(parts, "  "), max(d.width, 1), "…")
}

func (d *Desktop) wrap(s string) []string {
	if d.width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Hardwrap(s, d.width, true), "\n")
}

// renderShell returns the visible part of the shell, honouring the scroll
// position.
func (d *Desktop) renderShell() string {
	lines := d.shellLines()
	height := d.shellViewHeight()

	end := len(lines) - min(d.shellScroll, len(lines))
	start := max(end-height, 0)
	return strings.Join(lines[start:end], "\n")
}
