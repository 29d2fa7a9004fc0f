package app

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Gaurav-Gosain/folio/internal/wm"
)

type renderedMarkdown struct {
	width int
	lines []string
}

// markdownCache keeps the glamour output of every markdown window for the
// width it was last rendered at.
type markdownCache struct {
	style   string
	entries map[wm.ID]renderedMarkdown
}

func newMarkdownCache(style string) *markdownCache {
	if style == "" {
		style = "dark"
	}
	return &markdownCache{style: style, entries: make(map[wm.ID]renderedMarkdown)}
}

// Lines returns the rendered lines of w's markdown at its inner width.
func (c *markdownCache) Lines(w *wm.Window) []string {
	width := w.InnerWidth()
	if e, ok := c.entries[w.ID]; ok && e.width == width {
		return e.lines
	}

	lines := renderMarkdown(w.Content.Markdown, c.style, width)
	c.entries[w.ID] = renderedMarkdown{width: width, lines: lines}
	return lines
}

// Forget drops the cached output of a removed window.
func (c *markdownCache) Forget(id wm.ID) {
	delete(c.entries, id)
}

// Reset drops everything, e.g. after a theme or content change.
func (c *markdownCache) Reset() {
	clear(c.entries)
}

func renderMarkdown(src, style string, width int) []string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-2, 10)),
	)
	if err == nil {
		if out, err := r.Render(src); err == nil {
			return trimBlankEdges(strings.Split(out, "\n"))
		}
	}
	return strings.Split(src, "\n")
}

// trimBlankEdges drops the blank lines glamour pads its output with.
func trimBlankEdges(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}
