package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/folio/internal/wm"
)

// HandleMouse routes pointer events: header presses focus and start a drag,
// the close button closes, presses outside every window focus the shell and
// the wheel scrolls whatever is under the pointer. Body presses change
// nothing. Pointer input is ignored while the switcher is open.
func (r *Router) HandleMouse(d Desktop, msg tea.MouseMsg) Outcome {
	if d.Switcher().Active() {
		return Outcome{}
	}

	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		return r.handleMouseClick(d, msg)
	case tea.MouseMotionMsg:
		m := msg.Mouse()
		if r.drag.Update(d.Windows(), m.X, m.Y) {
			return Outcome{Rule: RuleMouse}
		}
	case tea.MouseReleaseMsg:
		if r.drag.Active() {
			r.drag.End()
			return Outcome{Rule: RuleMouse}
		}
	case tea.MouseWheelMsg:
		return r.handleMouseWheel(d, msg)
	}
	return Outcome{}
}

// Dragging reports whether a window is being dragged.
func (r *Router) Dragging() bool { return r.drag.Active() }

func (r *Router) handleMouseClick(d Desktop, msg tea.MouseClickMsg) Outcome {
	m := msg.Mouse()
	if m.Button != tea.MouseLeft {
		return Outcome{}
	}

	w, zone := d.Windows().HitTest(m.X, m.Y)
	switch zone {
	case wm.ZoneClose:
		return Outcome{Rule: RuleMouse, Cmd: d.CloseWindow(w.ID)}
	case wm.ZoneHeader:
		if r.drag.Begin(d.Windows(), w.ID, m.X, m.Y) {
			d.SetShellFocused(false)
		}
		return Outcome{Rule: RuleMouse}
	case wm.ZoneBody:
		return Outcome{Rule: RuleMouse}
	}

	d.SetShellFocused(true)
	return Outcome{Rule: RuleMouse}
}

func (r *Router) handleMouseWheel(d Desktop, msg tea.MouseWheelMsg) Outcome {
	m := msg.Mouse()

	var delta int
	switch m.Button {
	case tea.MouseWheelUp:
		delta = -r.steps.Scroll
	case tea.MouseWheelDown:
		delta = r.steps.Scroll
	default:
		return Outcome{}
	}

	if w := d.Windows().WindowAt(m.X, m.Y); w != nil {
		d.ScrollWindow(w.ID, delta)
		return Outcome{Rule: RuleMouse}
	}
	d.ScrollShell(delta)
	return Outcome{Rule: RuleMouse}
}
