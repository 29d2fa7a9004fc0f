package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

type fakeDesktop struct {
	windows  *wm.Manager
	switcher wm.Switcher

	shellFocused bool
	shellKeys    []string
	closed       []wm.ID
	scrolled     map[wm.ID]int
	shellScroll  int
	hints        bool
}

func newFakeDesktop() *fakeDesktop {
	m := wm.NewManager(wm.OptionsFromConfig(config.DefaultConfig()))
	m.SetViewport(160, 48)
	return &fakeDesktop{
		windows:      m,
		shellFocused: true,
		scrolled:     make(map[wm.ID]int),
	}
}

func (f *fakeDesktop) Windows() *wm.Manager    { return f.windows }
func (f *fakeDesktop) Switcher() *wm.Switcher  { return &f.switcher }
func (f *fakeDesktop) ShellFocused() bool      { return f.shellFocused }
func (f *fakeDesktop) SetShellFocused(on bool) { f.shellFocused = on }
func (f *fakeDesktop) ScrollShell(delta int)   { f.shellScroll += delta }
func (f *fakeDesktop) ToggleHints()            { f.hints = !f.hints }

func (f *fakeDesktop) CloseWindow(id wm.ID) tea.Cmd {
	if f.windows.Close(id) {
		f.closed = append(f.closed, id)
		if f.windows.Len() == 0 {
			f.shellFocused = true
		}
	}
	return nil
}

func (f *fakeDesktop) ScrollWindow(id wm.ID, delta int) {
	f.scrolled[id] += delta
}

func (f *fakeDesktop) ShellKey(msg tea.KeyPressMsg) tea.Cmd {
	f.shellKeys = append(f.shellKeys, msg.String())
	return nil
}

// open opens a window and hands it keyboard focus, as the desktop does.
func (f *fakeDesktop) open(title string) wm.ID {
	id := f.windows.Open(title, wm.Text("line"))
	f.shellFocused = false
	return id
}

func newTestRouter() *Router {
	cfg := config.DefaultConfig()
	return NewRouter(config.NewKeybindRegistry(cfg), StepsFromConfig(cfg))
}

func press(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func text(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

var (
	altTab      = press(tea.KeyTab, tea.ModAlt)
	altShiftTab = press(tea.KeyTab, tea.ModAlt|tea.ModShift)
	altRelease  = tea.KeyReleaseMsg{Code: tea.KeyLeftAlt}
	esc         = press(tea.KeyEscape, 0)
	enter       = press(tea.KeyEnter, 0)
)

// =============================================================================
// Precedence
// =============================================================================

func TestQuitWinsEverywhere(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()

	out := r.HandleKey(d, press('q', tea.ModCtrl))
	assert.Equal(t, RuleQuit, out.Rule)
	require.NotNil(t, out.Cmd)
	assert.IsType(t, tea.QuitMsg{}, out.Cmd())
}

func TestToggleHints(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()

	out := r.HandleKey(d, press(tea.KeyF1, 0))
	assert.Equal(t, RuleToggleHints, out.Rule)
	assert.True(t, d.hints)
	assert.Empty(t, d.shellKeys)
}

func TestShellFocusDefersToShell(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("a")
	d.shellFocused = true

	for _, k := range []tea.KeyPressMsg{text("j"), press(tea.KeyDown, 0), esc, press(tea.KeyUp, tea.ModCtrl|tea.ModShift)} {
		out := r.HandleKey(d, k)
		assert.Equal(t, RuleShell, out.Rule, k.String())
	}

	assert.Equal(t, []string{"j", "down", "esc", "ctrl+shift+up"}, d.shellKeys)
	assert.NotNil(t, d.windows.Window(a), "window untouched")
	assert.Zero(t, d.scrolled[a])
}

func TestWindowFocusedWithoutWindowsFallsBackToShell(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	d.shellFocused = false

	out := r.HandleKey(d, text("x"))
	assert.Equal(t, RuleShell, out.Rule)
	assert.True(t, d.shellFocused)
}

// =============================================================================
// Window shortcuts
// =============================================================================

func TestCloseTopWindow(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("a")
	b := d.open("b")

	out := r.HandleKey(d, esc)
	assert.Equal(t, RuleClose, out.Rule)
	assert.Equal(t, []wm.ID{b}, d.closed)
	assert.Equal(t, a, d.windows.TopWindow().ID)
	assert.False(t, d.shellFocused)

	r.HandleKey(d, esc)
	assert.True(t, d.shellFocused, "focus returns to the shell after the last close")
}

func TestResizeShortcuts(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("a")
	w := d.windows.Window(a)
	width, height := w.Width, w.Height
	steps := StepsFromConfig(config.DefaultConfig())

	tests := []struct {
		key    tea.KeyPressMsg
		dw, dh int
	}{
		{press(tea.KeyRight, tea.ModCtrl|tea.ModShift), steps.ResizeX, 0},
		{press(tea.KeyDown, tea.ModCtrl|tea.ModShift), 0, steps.ResizeY},
		{press('l', tea.ModCtrl|tea.ModShift), steps.ResizeX, 0},
		{press(tea.KeyLeft, tea.ModCtrl|tea.ModShift), -steps.ResizeX, 0},
		{press('k', tea.ModCtrl|tea.ModShift), 0, -steps.ResizeY},
	}
	for _, tt := range tests {
		out := r.HandleKey(d, tt.key)
		require.Equal(t, RuleResize, out.Rule, tt.key.String())
		width += tt.dw
		height += tt.dh
		assert.Equal(t, width, w.Width, tt.key.String())
		assert.Equal(t, height, w.Height, tt.key.String())
	}
}

func TestResizeShrinkStopsAtFloor(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("a")

	for range 10 {
		r.HandleKey(d, press(tea.KeyUp, tea.ModCtrl|tea.ModShift))
	}
	_, minH := d.windows.Floors()
	assert.Equal(t, minH, d.windows.Window(a).Height)
}

func TestMoveShortcuts(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("a")
	d.windows.Move(a, 10, 10)
	steps := StepsFromConfig(config.DefaultConfig())

	out := r.HandleKey(d, press(tea.KeyRight, tea.ModCtrl|tea.ModAlt))
	assert.Equal(t, RuleMove, out.Rule)
	r.HandleKey(d, press('k', tea.ModCtrl|tea.ModAlt))

	w := d.windows.Window(a)
	assert.Equal(t, 10+steps.MoveX, w.X)
	assert.Equal(t, 10-steps.MoveY, w.Y)
}

func TestFocusCycleScenario(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("A")
	b := d.open("B")
	d.open("C")

	d.windows.Focus(a)
	out := r.HandleKey(d, press('j', tea.ModAlt))
	assert.Equal(t, RuleFocusCycle, out.Rule)
	assert.Equal(t, b, d.windows.TopWindow().ID)

	r.HandleKey(d, press('k', tea.ModAlt))
	assert.Equal(t, a, d.windows.TopWindow().ID)
}

func TestScrollShortcuts(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("a")
	step := config.DefaultConfig().Windows.ScrollStep

	assert.Equal(t, RuleScroll, r.HandleKey(d, text("j")).Rule)
	assert.Equal(t, RuleScroll, r.HandleKey(d, press(tea.KeyDown, 0)).Rule)
	assert.Equal(t, RuleScroll, r.HandleKey(d, text("k")).Rule)
	assert.Equal(t, step, d.scrolled[a])
}

func TestFocusShellShortcut(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	d.open("a")

	out := r.HandleKey(d, text("i"))
	assert.Equal(t, RuleFocusShell, out.Rule)
	assert.True(t, d.shellFocused)
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	d.open("a")

	out := r.HandleKey(d, text("z"))
	assert.False(t, out.Handled())
	assert.Empty(t, d.shellKeys)
}

// =============================================================================
// Switcher
// =============================================================================

func TestSwitchChordNeedsWindows(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()

	out := r.HandleKey(d, altTab)
	assert.Equal(t, RuleShell, out.Rule, "falls through to the shell")
	assert.False(t, d.switcher.Active())
}

func TestSwitchCommitOnModifierRelease(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("A")
	d.open("B")

	out := r.HandleKey(d, altTab)
	assert.Equal(t, RuleSwitch, out.Rule)
	assert.True(t, d.switcher.Active())
	assert.Equal(t, 1, d.switcher.Index())

	out = r.HandleKey(d, altRelease)
	assert.Equal(t, RuleSwitchCommit, out.Rule)
	assert.False(t, d.switcher.Active())
	assert.Equal(t, a, d.windows.TopWindow().ID)
	assert.False(t, d.shellFocused)
}

func TestSwitchFromShellToFrontWindow(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	d.open("A")
	b := d.open("B")
	d.shellFocused = true

	r.HandleKey(d, altTab)
	assert.Equal(t, 0, d.switcher.Index())
	r.HandleKey(d, enter)

	assert.Equal(t, b, d.windows.TopWindow().ID)
	assert.False(t, d.shellFocused)
}

func TestSwitchToShell(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	d.open("A")

	r.HandleKey(d, altShiftTab)
	assert.Equal(t, 1, d.switcher.Index(), "reverse wraps onto the shell")
	r.HandleKey(d, altRelease)

	assert.True(t, d.shellFocused)
}

func TestSwitchSwallowsOtherKeys(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("A")
	d.shellFocused = true

	r.HandleKey(d, altTab)
	for _, k := range []tea.KeyPressMsg{text("j"), press(tea.KeyUp, tea.ModCtrl|tea.ModShift), text("i")} {
		assert.Equal(t, RuleSwitchSwallow, r.HandleKey(d, k).Rule)
	}
	assert.Empty(t, d.shellKeys)
	assert.Zero(t, d.scrolled[a])
	assert.True(t, d.switcher.Active())

	// Releases of other keys do not commit.
	assert.False(t, r.HandleKey(d, tea.KeyReleaseMsg{Code: tea.KeyTab}).Handled())
	assert.True(t, d.switcher.Active())
}

func TestSwitchCancel(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()
	a := d.open("A")
	d.open("B")
	d.windows.Focus(a)

	r.HandleKey(d, altTab)
	out := r.HandleKey(d, esc)
	assert.Equal(t, RuleSwitchCancel, out.Rule)
	assert.False(t, d.switcher.Active())
	assert.Equal(t, a, d.windows.TopWindow().ID)
	assert.Empty(t, d.closed, "esc did not close a window")
}

func TestReleaseWithoutSwitcherIsIgnored(t *testing.T) {
	r := newTestRouter()
	d := newFakeDesktop()

	assert.False(t, r.HandleKey(d, altRelease).Handled())
}

func TestIsModifierRelease(t *testing.T) {
	assert.True(t, IsModifierRelease(tea.KeyReleaseMsg{Code: tea.KeyRightAlt}, "alt"))
	assert.True(t, IsModifierRelease(tea.KeyReleaseMsg{Code: tea.KeyLeftCtrl}, "ctrl"))
	assert.False(t, IsModifierRelease(tea.KeyReleaseMsg{Code: 'a'}, "alt"))
	assert.False(t, IsModifierRelease(tea.KeyReleaseMsg{Code: tea.KeyLeftAlt}, ""))
}

func TestIsPrintable(t *testing.T) {
	assert.True(t, IsPrintable(text("a")))
	assert.True(t, IsPrintable(tea.KeyPressMsg{Code: 'a', ShiftedCode: 'A', Text: "A", Mod: tea.ModShift}))
	assert.False(t, IsPrintable(press('a', tea.ModCtrl)))
	assert.False(t, IsPrintable(press(tea.KeyEnter, 0)))
}

func TestUnhandledActions(t *testing.T) {
	assert.Empty(t, newTestRouter().UnhandledActions(), "every default window binding has a handler")

	cfg := config.DefaultConfig()
	cfg.Keybindings.Windows["toggle_hints"] = []string{"h"}
	r := NewRouter(config.NewKeybindRegistry(cfg), StepsFromConfig(cfg))

	assert.Equal(t, []string{"toggle_hints"}, r.UnhandledActions())
}
