package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/sysinfo"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

type stubSampler struct{}

func (stubSampler) Snapshot(context.Context) (sysinfo.Snapshot, error) {
	return sysinfo.Snapshot{Hostname: "stub", Cores: 2}, nil
}
func (stubSampler) CPUPercent(context.Context) (float64, error) { return 50, nil }
func (stubSampler) MemPercent(context.Context) (float64, error) { return 25, nil }

func newTestDesktop(t *testing.T) *Desktop {
	t.Helper()

	store := content.NewFSStore(fstest.MapFS{
		"about.md":          {Data: []byte("---\ntitle: About Me\n---\n# Hello\n\nI build terminals.")},
		"contact.md":        {Data: []byte("---\ntitle: Contact\n---\nmail me")},
		"projects/folio.md": {Data: []byte("---\ntitle: Folio\ndate: \"2024-06-15\"\n---\nA portfolio.")},
	})
	require.NoError(t, store.Load())

	return New(Options{
		Config:   config.DefaultConfig(),
		Store:    store,
		Width:    120,
		Height:   40,
		Headless: true,
		SysInfo:  stubSampler{},
	})
}

func press(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

// typeLine types line into the shell and presses enter.
func typeLine(d *Desktop, line string) {
	d.SetShellFocused(true)
	for _, r := range line {
		d.Feed(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	d.Feed(press(tea.KeyEnter, 0))
}

func plain(s string) string { return ansi.Strip(s) }

// =============================================================================
// Shell and windows
// =============================================================================

func TestNewDesktopStartsInShell(t *testing.T) {
	d := newTestDesktop(t)

	assert.True(t, d.ShellFocused())
	assert.Equal(t, ModeShell, d.Mode())
	assert.Nil(t, d.Init())
	require.NotEmpty(t, d.Shell().Scrollback())
}

func TestCommandOpensFocusedWindow(t *testing.T) {
	d := newTestDesktop(t)

	typeLine(d, "about")

	require.Equal(t, 1, d.Windows().Len())
	top := d.Windows().TopWindow()
	assert.Equal(t, "About Me", top.Title)
	assert.False(t, d.ShellFocused())
	assert.Equal(t, ModeWindow, d.Mode())
}

func TestEscapeClosesAndReturnsToShell(t *testing.T) {
	d := newTestDesktop(t)
	typeLine(d, "about")

	d.Feed(press(tea.KeyEscape, 0))

	assert.Equal(t, 0, d.Windows().Len())
	assert.Empty(t, d.Windows().All(), "closed window should be reaped")
	assert.True(t, d.ShellFocused())
}

func TestFocusShellKeyKeepsWindows(t *testing.T) {
	d := newTestDesktop(t)
	typeLine(d, "about")

	d.Feed(tea.KeyPressMsg{Code: 'i', Text: "i"})
	assert.True(t, d.ShellFocused())
	assert.Equal(t, 1, d.Windows().Len())

	d.Feed(tea.KeyPressMsg{Code: 'j', Text: "j"})
	assert.Equal(t, "j", d.Shell().Input())
}

func TestAltTabSwitchesWindows(t *testing.T) {
	d := newTestDesktop(t)
	a := d.OpenWindow("a", wm.Text("a"))
	b := d.OpenWindow("b", wm.Text("b"))
	require.Equal(t, b, d.Windows().TopWindow().ID)

	d.Feed(press(tea.KeyTab, tea.ModAlt))
	assert.Equal(t, ModeSwitch, d.Mode())
	assert.Contains(t, plain(d.Render()), "Switch to")

	d.Feed(tea.KeyReleaseMsg{Code: tea.KeyLeftAlt})
	assert.Equal(t, a, d.Windows().TopWindow().ID)
	assert.False(t, d.ShellFocused())
	assert.Equal(t, ModeWindow, d.Mode())
}

func TestAltTabEnterCommitsToShell(t *testing.T) {
	d := newTestDesktop(t)
	d.OpenWindow("a", wm.Text("a"))

	// items: [a, shell]; window focused, so the seed is a and one step
	// lands on the shell.
	d.Feed(press(tea.KeyTab, tea.ModAlt), press(tea.KeyEnter, 0))
	assert.True(t, d.ShellFocused())
}

func TestScrollWindowClampsToContent(t *testing.T) {
	d := newTestDesktop(t)
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	id := d.OpenWindow("long", wm.Text(lines...))
	w := d.Windows().Window(id)

	for range 30 {
		d.Feed(tea.KeyPressMsg{Code: 'j', Text: "j"})
	}
	assert.Equal(t, len(lines)-w.InnerHeight(), w.ScrollOffset)

	for range 30 {
		d.Feed(tea.KeyPressMsg{Code: 'k', Text: "k"})
	}
	assert.Equal(t, 0, w.ScrollOffset)
}

func TestMouseCloseButton(t *testing.T) {
	d := newTestDesktop(t)
	typeLine(d, "contact")
	w := d.Windows().TopWindow()
	require.NotNil(t, w)

	lo, _ := w.CloseButtonSpan()
	d.Feed(tea.MouseClickMsg{X: lo + 1, Y: w.Y, Button: tea.MouseLeft})

	assert.Equal(t, 0, d.Windows().Len())
	assert.True(t, d.ShellFocused())
}

func TestNonTabKeyDropsCompletion(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyPressMsg
	}{
		{"left", press(tea.KeyLeft, 0)},
		{"escape", press(tea.KeyEscape, 0)},
		{"home", press(tea.KeyHome, 0)},
		{"clear screen", press('l', tea.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesktop(t)
			d.Feed(tea.KeyPressMsg{Code: 'c', Text: "c"}, press(tea.KeyTab, 0))

			cands, _ := d.Shell().Candidates()
			require.Equal(t, []string{"cat", "cd", "clear", "contact"}, cands)
			require.Equal(t, "cat", d.Shell().Input())

			d.Feed(tt.key)
			cands, idx := d.Shell().Candidates()
			assert.Nil(t, cands)
			assert.Equal(t, -1, idx)

			d.Feed(press(tea.KeyTab, 0))
			assert.Equal(t, "cat ", d.Shell().Input(), "tab starts over from the current input")
		})
	}
}

func TestPasteGoesToShell(t *testing.T) {
	d := newTestDesktop(t)

	d.Feed(tea.PasteMsg{Content: "cat\tabout.md\n"})
	assert.Equal(t, "cat about.md ", d.Shell().Input())
}

func TestQuitKeyAndExitCommand(t *testing.T) {
	d := newTestDesktop(t)
	d.Feed(press('q', tea.ModCtrl))
	assert.True(t, d.Quitting())

	d = newTestDesktop(t)
	typeLine(d, "exit")
	assert.True(t, d.Quitting())
}

func TestToggleHints(t *testing.T) {
	d := newTestDesktop(t)
	d.Feed(press(tea.KeyF1, 0))
	assert.True(t, d.HintsVisible())
	assert.Contains(t, plain(d.Render()), "Run command")
}

// =============================================================================
// Rendering
// =============================================================================

func TestRenderComposesShellAndWindows(t *testing.T) {
	d := newTestDesktop(t)
	typeLine(d, "about")

	assert.Contains(t, plain(d.renderShell()), "guest@folio:~$ about")

	frame := plain(d.Render())
	rows := strings.Split(frame, "\n")
	require.Len(t, rows, 40)
	assert.Contains(t, frame, "About Me")
	assert.Contains(t, frame, wm.CloseButton)
	assert.Contains(t, rows[len(rows)-1], ModeWindow)

	w := d.Windows().TopWindow()
	header := []rune(rows[w.Y])
	lo, hi := w.CloseButtonSpan()
	assert.Equal(t, wm.CloseButton, string(header[lo:hi+1]))
}

func TestRenderDimsClosingWindows(t *testing.T) {
	d := newTestDesktop(t)
	id := d.OpenWindow("fading", wm.Text("bye"))
	d.Windows().Close(id)

	assert.Contains(t, plain(d.Render()), "fading")
	assert.Nil(t, d.Windows().TopWindow())
}

func TestWindowHeaderWidth(t *testing.T) {
	w := &wm.Window{Title: "a very long title that cannot fit", Width: 20, Height: 5}
	header := windowHeader(w, config.DefaultConfig().Appearance.Border(), lipgloss.NewStyle())
	assert.Equal(t, 20, ansi.StringWidth(header))
	assert.True(t, strings.HasSuffix(plain(header), wm.CloseButton+"─╮"))
}

func TestClipWindowContent(t *testing.T) {
	content := "abcd\nefgh\nijkl"

	tests := []struct {
		name       string
		x, y       int
		want       string
		wantX      int
		wantY      int
		vw, vh     int
		wantHidden bool
	}{
		{name: "inside", x: 1, y: 1, vw: 10, vh: 10, want: content, wantX: 1, wantY: 1},
		{name: "left edge", x: -2, y: 0, vw: 10, vh: 10, want: "cd\ngh\nkl", wantX: 0, wantY: 0},
		{name: "top edge", x: 0, y: -1, vw: 10, vh: 10, want: "efgh\nijkl", wantX: 0, wantY: 0},
		{name: "right edge", x: 8, y: 0, vw: 10, vh: 10, want: "ab\nef\nij", wantX: 8, wantY: 0},
		{name: "bottom edge", x: 0, y: 8, vw: 10, vh: 10, want: "abcd\nefgh", wantX: 0, wantY: 8},
		{name: "off screen", x: 20, y: 0, vw: 10, vh: 10, wantHidden: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, x, y := clipWindowContent(content, tt.x, tt.y, tt.vw, tt.vh)
			if tt.wantHidden {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestShellScrollback(t *testing.T) {
	d := newTestDesktop(t)
	d.Resize(80, 6)
	for i := range 10 {
		typeLine(d, fmt.Sprintf("echo%d", i))
	}

	bottom := plain(d.renderShell())
	d.ScrollShell(-3)
	scrolled := plain(d.renderShell())
	assert.NotEqual(t, bottom, scrolled)

	d.ScrollShell(100)
	assert.Equal(t, bottom, plain(d.renderShell()))

	d.ScrollShell(-1000)
	assert.Equal(t, len(d.shellLines())-d.shellViewHeight(), d.shellScroll)
}

// =============================================================================
// Background messages
// =============================================================================

func TestMetricsFeedStatusBar(t *testing.T) {
	d := newTestDesktop(t)
	for range config.CPUHistorySize + 3 {
		d.Feed(MetricsMsg{CPU: 100, Mem: 25})
	}

	assert.Len(t, d.cpuHistory, config.CPUHistorySize)
	assert.Equal(t, "CPU:██████████ 100%", d.CPUGraph())
	assert.Contains(t, plain(d.renderStatusBar()), "MEM: 25%")
}

func TestContentReloadNotifies(t *testing.T) {
	d := newTestDesktop(t)

	_, cmd := d.Update(ContentReloadedMsg{})
	require.Len(t, d.Notifications, 1)
	assert.Equal(t, NotificationInfo, d.Notifications[0].Type)
	assert.Contains(t, plain(d.Render()), "Content updated")

	d.Feed(cmd())
	assert.Empty(t, d.Notifications)
}
