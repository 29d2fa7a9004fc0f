package wm

import (
	"sort"

	"github.com/Gaurav-Gosain/folio/internal/config"
)

// Options sizes new windows and sets the resize floors.
type Options struct {
	MinWidth       int
	MinHeight      int
	TextWidth      int
	TextHeight     int
	MarkdownWidth  int
	MarkdownHeight int
	CascadeStep    int
}

// OptionsFromConfig extracts window options from cfg.
func OptionsFromConfig(cfg *config.UserConfig) Options {
	w := cfg.Windows
	return Options{
		MinWidth:       w.MinWidth,
		MinHeight:      w.MinHeight,
		TextWidth:      w.TextWidth,
		TextHeight:     w.TextHeight,
		MarkdownWidth:  w.MarkdownWidth,
		MarkdownHeight: w.MarkdownHeight,
		CascadeStep:    w.CascadeStep,
	}
}

// Manager owns the window set. It is not safe for concurrent use.
type Manager struct {
	opts    Options
	windows []*Window // insertion order, closing windows included
	nextID  ID
	zTop    int

	viewW, viewH int
}

// NewManager returns an empty manager.
func NewManager(opts Options) *Manager {
	if opts.MinWidth < 1 {
		opts.MinWidth = 1
	}
	if opts.MinHeight < 1 {
		opts.MinHeight = 1
	}
	return &Manager{opts: opts}
}

// SetViewport records the area windows are placed in.
func (m *Manager) SetViewport(width, height int) {
	m.viewW, m.viewH = width, height
}

// Viewport returns the current placement area.
func (m *Manager) Viewport() (int, int) {
	return m.viewW, m.viewH
}

// Floors returns the minimum window size.
func (m *Manager) Floors() (int, int) {
	return m.opts.MinWidth, m.opts.MinHeight
}

// Open adds a window, cascades it around the viewport centre and focuses it.
func (m *Manager) Open(title string, content Content) ID {
	m.nextID++
	id := m.nextID

	width, height := m.opts.TextWidth, m.opts.TextHeight
	if content.IsMarkdown() {
		width, height = m.opts.MarkdownWidth, m.opts.MarkdownHeight
	}
	if m.viewW > 0 {
		width = min(width, m.viewW)
	}
	if m.viewH > 0 {
		height = min(height, m.viewH)
	}
	width = max(width, m.opts.MinWidth)
	height = max(height, m.opts.MinHeight)

	x, y := m.cascade(id, width, height)
	w := &Window{
		ID:      id,
		Title:   title,
		Content: content,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
	}
	m.windows = append(m.windows, w)
	m.Focus(id)
	return id
}

// cascade offsets each window from a base centred in the viewport. Offsets
// wrap every config.CascadeWrap windows so that windows stay on screen.
// Columns advance twice as fast as rows to keep the offset visually square.
func (m *Manager) cascade(id ID, width, height int) (int, int) {
	step := m.opts.CascadeStep
	span := (config.CascadeWrap - 1) * step

	baseX := max(0, (m.viewW-width-2*span)/2)
	baseY := max(0, (m.viewH-height-span)/2)

	k := (int(id) - 1) % config.CascadeWrap
	return baseX + 2*k*step, baseY + k*step
}

// Focus raises a live window to the top. Unknown and closing ids are ignored.
func (m *Manager) Focus(id ID) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	m.zTop++
	w.Z = m.zTop
	return true
}

// Move sets a window's position. Windows may leave the viewport.
func (m *Manager) Move(id ID, x, y int) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	w.X, w.Y = x, y
	return true
}

// Resize grows or shrinks a window, clamped to the floors.
func (m *Manager) Resize(id ID, dw, dh int) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	w.Width = max(m.opts.MinWidth, w.Width+dw)
	w.Height = max(m.opts.MinHeight, w.Height+dh)
	return true
}

// Scroll moves the first visible line by delta within [0, limit].
func (m *Manager) Scroll(id ID, delta, limit int) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	w.ScrollOffset = max(0, min(w.ScrollOffset+delta, limit))
	return true
}

// Close marks a window as closing. It returns false when the window is
// unknown or already closing, so a second call changes nothing.
func (m *Manager) Close(id ID) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	w.Closing = true
	return true
}

// Reap removes a closing window for good.
func (m *Manager) Reap(id ID) bool {
	for i, w := range m.windows {
		if w.ID == id && w.Closing {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			return true
		}
	}
	return false
}

// Window returns the live window with id, or nil.
func (m *Manager) Window(id ID) *Window {
	for _, w := range m.windows {
		if w.ID == id && !w.Closing {
			return w
		}
	}
	return nil
}

// LiveWindows returns live windows in insertion order.
func (m *Manager) LiveWindows() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		if !w.Closing {
			out = append(out, w)
		}
	}
	return out
}

// ByZ returns live windows sorted by ascending z.
func (m *Manager) ByZ() []*Window {
	out := m.LiveWindows()
	sortByZ(out)
	return out
}

// All returns every window, closing ones included, in drawing order.
func (m *Manager) All() []*Window {
	out := make([]*Window, len(m.windows))
	copy(out, m.windows)
	sortByZ(out)
	return out
}

// TopWindow returns the live window with the highest z, or nil.
func (m *Manager) TopWindow() *Window {
	var top *Window
	for _, w := range m.windows {
		if !w.Closing && (top == nil || w.Z > top.Z) {
			top = w
		}
	}
	return top
}

// Len returns the number of live windows.
func (m *Manager) Len() int {
	n := 0
	for _, w := range m.windows {
		if !w.Closing {
			n++
		}
	}
	return n
}

// CycleFocus focuses the window delta steps away from the top window in
// ascending z order, wrapping around.
func (m *Manager) CycleFocus(delta int) bool {
	ws := m.ByZ()
	n := len(ws)
	if n == 0 {
		return false
	}
	top := n - 1
	next := ((top+delta)%n + n) % n
	return m.Focus(ws[next].ID)
}

// WindowAt returns the topmost live window containing (x, y).
func (m *Manager) WindowAt(x, y int) *Window {
	ws := m.ByZ()
	for i := len(ws) - 1; i >= 0; i-- {
		if ws[i].Contains(x, y) {
			return ws[i]
		}
	}
	return nil
}

// HitTest returns the window and zone under (x, y).
func (m *Manager) HitTest(x, y int) (*Window, Zone) {
	w := m.WindowAt(x, y)
	if w == nil {
		return nil, ZoneNone
	}
	return w, w.ZoneAt(x, y)
}

func sortByZ(ws []*Window) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Z < ws[j].Z })
}
