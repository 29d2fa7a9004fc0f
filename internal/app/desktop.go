// Package app implements the folio desktop: the Bubble Tea model that owns
// one session's shell, window manager and switcher, routes input to them and
// composites the result.
package app

import (
	"context"
	"os"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/folio/internal/commands"
	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/input"
	"github.com/Gaurav-Gosain/folio/internal/logging"
	"github.com/Gaurav-Gosain/folio/internal/shell"
	"github.com/Gaurav-Gosain/folio/internal/sysinfo"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

// Options configure a desktop.
type Options struct {
	Config *config.UserConfig
	Store  content.Store
	Logger *log.Logger

	// Context bounds the commands run by the shell. Servers pass the
	// session context.
	Context context.Context

	// User is the session user shown in the prompt. Defaults to
	// terminal.user.
	User string
	// Width and Height are the initial screen size, until the first
	// tea.WindowSizeMsg arrives.
	Width, Height int

	// Headless disables timers and background commands so that Feed can
	// drive the desktop synchronously.
	Headless bool

	SysInfo        sysinfo.Sampler
	ThemeSwitching bool

	// Reloads delivers content reload notifications from content.Watch.
	Reloads <-chan content.ReloadEvent
}

// Desktop is one session's complete state. It implements tea.Model, and the
// Desktop interfaces of the input and commands packages.
type Desktop struct {
	ctx    context.Context
	cfg    *config.UserConfig
	keys   *config.KeybindRegistry
	logger *log.Logger

	windows  *wm.Manager
	switcher wm.Switcher
	shell    *shell.Shell
	router   *input.Router

	shellFocused bool
	// shellScroll is how many lines the shell view is scrolled up from
	// the bottom.
	shellScroll int
	showHints   bool
	quitting    bool

	width, height int
	headless      bool
	user, host    string

	sampler    sysinfo.Sampler
	cpuHistory []float64
	memPercent float64
	reloads    <-chan content.ReloadEvent

	Notifications []Notification

	markdown *markdownCache
	help     help.Model
}

// New creates a desktop with the shell focused and the welcome banner in
// the scrollback.
func New(opts Options) *Desktop {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	user := opts.User
	if user == "" {
		user = cfg.Terminal.User
	}
	host := cfg.Site.Hostname
	if host == "" {
		host, _ = os.Hostname()
	}

	keys := config.NewKeybindRegistry(cfg)
	d := &Desktop{
		ctx:          ctx,
		cfg:          cfg,
		keys:         keys,
		logger:       logger,
		windows:      wm.NewManager(wm.OptionsFromConfig(cfg)),
		router:       input.NewRouter(keys, input.StepsFromConfig(cfg)),
		shellFocused: true,
		headless:     opts.Headless,
		user:         user,
		host:         host,
		sampler:      opts.SysInfo,
		reloads:      opts.Reloads,
		markdown:     newMarkdownCache(cfg.Appearance.MarkdownStyle),
		help:         help.New(),
	}
	if d.sampler == nil && !opts.Headless {
		d.sampler = sysinfo.Host{}
	}

	for _, action := range d.router.UnhandledActions() {
		logger.Warn("keybinding has no window action", "action", action, "keys", keys.GetKeysForDisplay(action))
	}

	reg := shell.NewRegistry()
	commands.Register(reg, commands.Deps{
		Desktop:        d,
		Store:          opts.Store,
		Config:         cfg,
		User:           user,
		SysInfo:        opts.SysInfo,
		ThemeSwitching: opts.ThemeSwitching,
	})
	d.shell = shell.New(reg, shell.OptionsFromConfig(cfg), logger)

	if cfg.Terminal.ShowBanner {
		d.shell.Println(commands.Banner(cfg)...)
	} else if cfg.Terminal.WelcomeMessage != "" {
		d.shell.Println(cfg.Terminal.WelcomeMessage, "")
	}

	d.Resize(opts.Width, opts.Height)
	return d
}

// Resize sets the screen size. The bottom rows belong to the status bar.
func (d *Desktop) Resize(width, height int) {
	d.width = max(width, 0)
	d.height = max(height, 0)
	d.windows.SetViewport(d.width, d.usableHeight())
	d.help.SetWidth(d.width)
}

func (d *Desktop) usableHeight() int {
	return max(d.height-config.StatusBarHeight, 0)
}

// Shell returns the command interpreter.
func (d *Desktop) Shell() *shell.Shell { return d.shell }

// Keys returns the keybinding registry.
func (d *Desktop) Keys() *config.KeybindRegistry { return d.keys }

// Quitting reports whether the session asked to end.
func (d *Desktop) Quitting() bool { return d.quitting }

// HintsVisible reports whether the status bar shows key hints.
func (d *Desktop) HintsVisible() bool { return d.showHints }

// ============================================================================
// input.Desktop
// ============================================================================

// Windows returns the window manager.
func (d *Desktop) Windows() *wm.Manager { return d.windows }

// Switcher returns the Alt+Tab switcher.
func (d *Desktop) Switcher() *wm.Switcher { return &d.switcher }

// ShellFocused reports whether the keyboard drives the shell.
func (d *Desktop) ShellFocused() bool { return d.shellFocused }

// SetShellFocused moves keyboard focus to or from the shell.
func (d *Desktop) SetShellFocused(focused bool) { d.shellFocused = focused }

// CloseWindow marks a window closing and schedules its removal after the
// close animation. Focus returns to the shell once no live window is left.
func (d *Desktop) CloseWindow(id wm.ID) tea.Cmd {
	if !d.windows.Close(id) {
		return nil
	}
	d.logger.Debug("close window", "id", id)
	if d.windows.Len() == 0 {
		d.shellFocused = true
	}

	delay := d.cfg.Windows.CloseDelay()
	if !d.cfg.Appearance.Animations {
		delay = 0
	}
	return d.after(delay, windowReapMsg{ID: id})
}

// ScrollWindow scrolls a window, clamped to its rendered content.
func (d *Desktop) ScrollWindow(id wm.ID, delta int) {
	w := d.windows.Window(id)
	if w == nil {
		return
	}
	limit := max(len(d.windowLines(w))-w.InnerHeight(), 0)
	d.windows.Scroll(id, delta, limit)
}

// ScrollShell scrolls the shell scrollback; positive deltas move towards
// the newest line.
func (d *Desktop) ScrollShell(delta int) {
	limit := max(len(d.shellLines())-d.shellViewHeight(), 0)
	d.shellScroll = min(max(d.shellScroll-delta, 0), limit)
}

// ShellKey runs the shell-local bindings, inserting printable text.
func (d *Desktop) ShellKey(msg tea.KeyPressMsg) tea.Cmd {
	sh := d.shell
	if !d.keys.Matches(msg, "complete", "complete_reverse") {
		sh.CancelCompletion()
	}
	switch {
	case d.keys.Matches(msg, "submit"):
		sh.Submit(d.ctx, sh.Input())
		d.shellScroll = 0
		if d.quitting {
			return tea.Quit
		}
	case d.keys.Matches(msg, "history_prev"):
		sh.HistoryUp()
	case d.keys.Matches(msg, "history_next"):
		sh.HistoryDown()
	case d.keys.Matches(msg, "complete"):
		sh.Complete(false)
	case d.keys.Matches(msg, "complete_reverse"):
		sh.Complete(true)
	case d.keys.Matches(msg, "interrupt"):
		sh.Interrupt()
	case d.keys.Matches(msg, "clear_screen"):
		sh.Clear()
		d.shellScroll = 0
	case d.keys.Matches(msg, "delete_char"):
		sh.Backspace()
	case input.IsPrintable(msg):
		sh.InsertText(msg.Key().Text)
		d.shellScroll = 0
	}
	return nil
}

// ToggleHints shows or hides the key hints in the status bar.
func (d *Desktop) ToggleHints() { d.showHints = !d.showHints }

// ============================================================================
// commands.Desktop
// ============================================================================

// OpenWindow opens a window on top and gives it the keyboard.
func (d *Desktop) OpenWindow(title string, c wm.Content) wm.ID {
	id := d.windows.Open(title, c)
	d.shellFocused = false
	d.logger.Debug("open window", "id", id, "title", title, "markdown", c.IsMarkdown())
	return id
}

// Quit ends the session after the running command.
func (d *Desktop) Quit() { d.quitting = true }

// after delivers msg once delay has passed. Headless desktops deliver it
// immediately.
func (d *Desktop) after(delay time.Duration, msg tea.Msg) tea.Cmd {
	if d.headless || delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}
