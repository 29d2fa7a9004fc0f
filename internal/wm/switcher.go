package wm

// Item is one switcher entry: a window, or the shell when Window is nil.
type Item struct {
	Window *Window
	Title  string
}

// IsShell reports whether the item is the shell.
func (i Item) IsShell() bool { return i.Window == nil }

// ShellTitle labels the shell entry.
const ShellTitle = "Terminal"

// Switcher is the Alt+Tab overlay state.
type Switcher struct {
	active bool
	index  int
}

// Items lists live windows from front to back, then the shell.
func (s *Switcher) Items(m *Manager) []Item {
	ws := m.ByZ()
	items := make([]Item, 0, len(ws)+1)
	for i := len(ws) - 1; i >= 0; i-- {
		items = append(items, Item{Window: ws[i], Title: ws[i].Title})
	}
	return append(items, Item{Title: ShellTitle})
}

// Step activates the switcher or moves its selection by delta. On
// activation the selection starts next to the focused item: the top window,
// or the shell when shellFocused. It does nothing without live windows.
func (s *Switcher) Step(m *Manager, delta int, shellFocused bool) bool {
	n := m.Len() + 1
	if n < 2 {
		return false
	}
	if !s.active {
		focused := 0
		if shellFocused || m.TopWindow() == nil {
			focused = n - 1
		}
		s.active = true
		s.index = focused
	}
	s.index = ((s.index+delta)%n + n) % n
	return true
}

// Commit focuses the selected item and resets the switcher. For the shell
// item the caller moves keyboard focus itself.
func (s *Switcher) Commit(m *Manager) (Item, bool) {
	if !s.active {
		return Item{}, false
	}
	items := s.Items(m)
	item := items[s.index%len(items)]
	s.Cancel()
	if !item.IsShell() {
		m.Focus(item.Window.ID)
	}
	return item, true
}

// Cancel deactivates the switcher without changing focus.
func (s *Switcher) Cancel() {
	s.active = false
	s.index = 0
}

// Active reports whether the overlay is showing.
func (s *Switcher) Active() bool { return s.active }

// Index returns the selected item.
func (s *Switcher) Index() int { return s.index }
