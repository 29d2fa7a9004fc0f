// Package input routes keyboard and mouse events to the shell, the window
// manager and the switcher of one desktop.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

// Desktop is the state the router acts on.
type Desktop interface {
	Windows() *wm.Manager
	Switcher() *wm.Switcher

	// ShellFocused reports whether keyboard focus is on the shell input.
	ShellFocused() bool
	SetShellFocused(bool)

	// CloseWindow marks the window closing and returns the command that
	// reaps it later.
	CloseWindow(id wm.ID) tea.Cmd
	// ScrollWindow scrolls a window by delta content lines.
	ScrollWindow(id wm.ID, delta int)
	// ScrollShell scrolls the shell scrollback by delta lines.
	ScrollShell(delta int)

	// ShellKey handles a key while the shell holds focus.
	ShellKey(msg tea.KeyPressMsg) tea.Cmd
	ToggleHints()
}

// Rule names the routing rule that consumed an event.
type Rule int

const (
	RuleNone Rule = iota
	RuleQuit
	RuleToggleHints
	RuleSwitch
	RuleSwitchCommit
	RuleSwitchCancel
	RuleSwitchSwallow
	RuleShell
	RuleClose
	RuleResize
	RuleMove
	RuleFocusCycle
	RuleScroll
	RuleFocusShell
	RuleMouse
)

var ruleNames = map[Rule]string{
	RuleNone:          "none",
	RuleQuit:          "quit",
	RuleToggleHints:   "toggle_hints",
	RuleSwitch:        "switch",
	RuleSwitchCommit:  "switch_commit",
	RuleSwitchCancel:  "switch_cancel",
	RuleSwitchSwallow: "switch_swallow",
	RuleShell:         "shell",
	RuleClose:         "close",
	RuleResize:        "resize",
	RuleMove:          "move",
	RuleFocusCycle:    "focus_cycle",
	RuleScroll:        "scroll",
	RuleFocusShell:    "focus_shell",
	RuleMouse:         "mouse",
}

func (r Rule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}
	return "unknown"
}

// Outcome is the result of routing one event.
type Outcome struct {
	Rule Rule
	Cmd  tea.Cmd
}

// Handled reports whether a rule consumed the event.
func (o Outcome) Handled() bool { return o.Rule != RuleNone }

// Steps are the per-key increments of the window shortcuts, in cells and
// lines.
type Steps struct {
	ResizeX, ResizeY int
	MoveX, MoveY     int
	Scroll           int
}

// StepsFromConfig extracts the shortcut increments from cfg.
func StepsFromConfig(cfg *config.UserConfig) Steps {
	w := cfg.Windows
	return Steps{
		ResizeX: w.ResizeStepX,
		ResizeY: w.ResizeStepY,
		MoveX:   w.MoveStepX,
		MoveY:   w.MoveStepY,
		Scroll:  w.ScrollStep,
	}
}

// Router classifies events. It holds the pointer drag state, so each
// desktop owns its own Router.
type Router struct {
	keys       *config.KeybindRegistry
	steps      Steps
	dispatcher *ActionDispatcher
	drag       wm.Drag
}

// NewRouter returns a router for the given bindings.
func NewRouter(keys *config.KeybindRegistry, steps Steps) *Router {
	return &Router{
		keys:       keys,
		steps:      steps,
		dispatcher: NewActionDispatcher(),
	}
}

// UnhandledActions lists the [keybindings.windows] actions that no window
// handler implements. Their keys are ignored.
func (r *Router) UnhandledActions() []string {
	var missing []string
	for _, action := range r.keys.SectionActions("windows") {
		if !r.dispatcher.HasAction(action) {
			missing = append(missing, action)
		}
	}
	return missing
}

// Keys returns the keybinding registry.
func (r *Router) Keys() *config.KeybindRegistry { return r.keys }

// HandleKey routes a key press or release. The first matching rule wins:
// global system keys, the switch chord, keys while the switcher is open,
// shell-local keys when the shell has focus, then window shortcuts.
func (r *Router) HandleKey(d Desktop, msg tea.KeyMsg) Outcome {
	if release, ok := msg.(tea.KeyReleaseMsg); ok {
		return r.handleRelease(d, release)
	}
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return Outcome{}
	}

	switch {
	case r.keys.Matches(press, "quit"):
		return Outcome{Rule: RuleQuit, Cmd: tea.Quit}
	case r.keys.Matches(press, "toggle_hints"):
		d.ToggleHints()
		return Outcome{Rule: RuleToggleHints}
	}

	sw := d.Switcher()
	switch {
	case r.keys.Matches(press, "switch_next"):
		if sw.Step(d.Windows(), 1, d.ShellFocused()) {
			return Outcome{Rule: RuleSwitch}
		}
	case r.keys.Matches(press, "switch_prev"):
		if sw.Step(d.Windows(), -1, d.ShellFocused()) {
			return Outcome{Rule: RuleSwitch}
		}
	}

	if sw.Active() {
		switch {
		case r.keys.Matches(press, "switch_commit"):
			r.commit(d)
			return Outcome{Rule: RuleSwitchCommit}
		case r.keys.Matches(press, "switch_cancel"):
			sw.Cancel()
			return Outcome{Rule: RuleSwitchCancel}
		}
		return Outcome{Rule: RuleSwitchSwallow}
	}

	if d.ShellFocused() {
		return Outcome{Rule: RuleShell, Cmd: d.ShellKey(press)}
	}

	if d.Windows().TopWindow() == nil {
		// Nothing left to drive; give the keyboard back to the shell.
		d.SetShellFocused(true)
		return Outcome{Rule: RuleShell, Cmd: d.ShellKey(press)}
	}

	action := r.keys.GetAction("windows", press.String())
	if action == "" {
		return Outcome{}
	}
	rule, cmd := r.dispatcher.Dispatch(action, r, d)
	return Outcome{Rule: rule, Cmd: cmd}
}

// handleRelease commits the switcher when the chord's modifier is let go.
// A lone modifier release is only reported with the kitty "report all keys"
// flag, which Bubble Tea does not request, so most terminals commit on Enter.
func (r *Router) handleRelease(d Desktop, msg tea.KeyReleaseMsg) Outcome {
	sw := d.Switcher()
	if !sw.Active() {
		return Outcome{}
	}
	for _, chord := range r.keys.GetKeys("switch_next") {
		if IsModifierRelease(msg, config.Modifier(chord)) {
			r.commit(d)
			return Outcome{Rule: RuleSwitchCommit}
		}
	}
	return Outcome{}
}

func (r *Router) commit(d Desktop) {
	item, ok := d.Switcher().Commit(d.Windows())
	if !ok {
		return
	}
	d.SetShellFocused(item.IsShell())
}
