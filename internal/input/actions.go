package input

import (
	tea "charm.land/bubbletea/v2"
)

// ActionHandler runs a window shortcut against the top window.
type ActionHandler func(r *Router, d Desktop) tea.Cmd

type action struct {
	rule    Rule
	handler ActionHandler
}

// ActionDispatcher maps window-section action names to handlers.
type ActionDispatcher struct {
	handlers map[string]action
}

// NewActionDispatcher creates a dispatcher with every window action registered.
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{handlers: make(map[string]action)}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	d.Register("close_window", RuleClose, handleCloseWindow)

	d.Register("resize_up", RuleResize, makeResizeHandler(0, -1))
	d.Register("resize_down", RuleResize, makeResizeHandler(0, 1))
	d.Register("resize_left", RuleResize, makeResizeHandler(-1, 0))
	d.Register("resize_right", RuleResize, makeResizeHandler(1, 0))

	d.Register("move_up", RuleMove, makeMoveHandler(0, -1))
	d.Register("move_down", RuleMove, makeMoveHandler(0, 1))
	d.Register("move_left", RuleMove, makeMoveHandler(-1, 0))
	d.Register("move_right", RuleMove, makeMoveHandler(1, 0))

	d.Register("focus_next", RuleFocusCycle, makeFocusCycleHandler(1))
	d.Register("focus_prev", RuleFocusCycle, makeFocusCycleHandler(-1))

	d.Register("scroll_down", RuleScroll, makeScrollHandler(1))
	d.Register("scroll_up", RuleScroll, makeScrollHandler(-1))

	d.Register("focus_shell", RuleFocusShell, handleFocusShell)
}

// Register adds an action handler.
func (d *ActionDispatcher) Register(name string, rule Rule, handler ActionHandler) {
	d.handlers[name] = action{rule: rule, handler: handler}
}

// Dispatch runs the handler for name.
func (d *ActionDispatcher) Dispatch(name string, r *Router, desk Desktop) (Rule, tea.Cmd) {
	a, ok := d.handlers[name]
	if !ok {
		return RuleNone, nil
	}
	return a.rule, a.handler(r, desk)
}

// HasAction checks if an action is registered.
func (d *ActionDispatcher) HasAction(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// ============================================================================
// Window Action Handlers
// ============================================================================

func handleCloseWindow(_ *Router, d Desktop) tea.Cmd {
	top := d.Windows().TopWindow()
	if top == nil {
		return nil
	}
	return d.CloseWindow(top.ID)
}

func makeResizeHandler(dx, dy int) ActionHandler {
	return func(r *Router, d Desktop) tea.Cmd {
		if top := d.Windows().TopWindow(); top != nil {
			d.Windows().Resize(top.ID, dx*r.steps.ResizeX, dy*r.steps.ResizeY)
		}
		return nil
	}
}

func makeMoveHandler(dx, dy int) ActionHandler {
	return func(r *Router, d Desktop) tea.Cmd {
		if top := d.Windows().TopWindow(); top != nil {
			d.Windows().Move(top.ID, top.X+dx*r.steps.MoveX, top.Y+dy*r.steps.MoveY)
		}
		return nil
	}
}

func makeFocusCycleHandler(delta int) ActionHandler {
	return func(_ *Router, d Desktop) tea.Cmd {
		d.Windows().CycleFocus(delta)
		return nil
	}
}

func makeScrollHandler(dir int) ActionHandler {
	return func(r *Router, d Desktop) tea.Cmd {
		if top := d.Windows().TopWindow(); top != nil {
			d.ScrollWindow(top.ID, dir*r.steps.Scroll)
		}
		return nil
	}
}

func handleFocusShell(_ *Router, d Desktop) tea.Cmd {
	d.SetShellFocused(true)
	return nil
}
