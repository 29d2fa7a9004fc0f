// Package wm manages the floating windows of a desktop: lifecycle, z-order,
// geometry, pointer dragging and the Alt+Tab switcher.
//
// All geometry is in terminal cells and includes the one cell border.
package wm

// ID identifies a window. IDs are never reused within a Manager.
type ID int

// Content is what a window shows: preformatted lines or a markdown source,
// never both.
type Content struct {
	Lines    []string
	Markdown string
}

// Text returns line content.
func Text(lines ...string) Content {
	return Content{Lines: lines}
}

// Markdown returns markdown content.
func Markdown(src string) Content {
	return Content{Markdown: src}
}

// IsMarkdown reports whether the content is rendered as markdown.
func (c Content) IsMarkdown() bool {
	return c.Lines == nil && c.Markdown != ""
}

// Window is one floating pane.
type Window struct {
	ID      ID
	Title   string
	Content Content

	X, Y          int
	Width, Height int
	Z             int

	// Closing windows are still drawn until reaped but are invisible to
	// every live query.
	Closing bool

	ScrollOffset int
}

// InnerWidth is the content width inside the border.
func (w *Window) InnerWidth() int { return max(0, w.Width-2) }

// InnerHeight is the content height inside the border.
func (w *Window) InnerHeight() int { return max(0, w.Height-2) }

// Contains reports whether the cell (x, y) is inside the window.
func (w *Window) Contains(x, y int) bool {
	return x >= w.X && x < w.X+w.Width && y >= w.Y && y < w.Y+w.Height
}

// CloseButton is the label drawn at the right of the header row.
const CloseButton = "[x]"

// CloseButtonSpan returns the first and last column of the close button.
// The button sits two cells in from the right edge so the border corner
// stays intact.
func (w *Window) CloseButtonSpan() (int, int) {
	right := w.X + w.Width - 3
	return right - len(CloseButton) + 1, right
}

// Zone is the part of a window under the pointer.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneBody
	ZoneHeader
	ZoneClose
)

func (z Zone) String() string {
	switch z {
	case ZoneBody:
		return "body"
	case ZoneHeader:
		return "header"
	case ZoneClose:
		return "close"
	}
	return "none"
}

// ZoneAt classifies the cell (x, y) relative to the window.
func (w *Window) ZoneAt(x, y int) Zone {
	if !w.Contains(x, y) {
		return ZoneNone
	}
	if y != w.Y {
		return ZoneBody
	}
	if lo, hi := w.CloseButtonSpan(); x >= lo && x <= hi && lo > w.X {
		return ZoneClose
	}
	return ZoneHeader
}
