// Package theme provides the color palette for the folio desktop.
//
// Colors come from a bubbletint theme when one is configured and fall back to
// the standard ANSI palette otherwise.
package theme

import (
	"fmt"
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	mu      sync.RWMutex
	enabled bool
	current string
	once    sync.Once
)

// KnownThemes lists a selection of bundled tint IDs shown by `themes`.
// Any other ID from the bubbletint registry is accepted too.
var KnownThemes = []string{
	"default",
	"dracula",
	"catppuccin_mocha",
	"catppuccin_latte",
	"gruvbox_dark",
	"nord",
	"one_dark",
	"solarized_dark",
	"tokyo_night",
	"rose_pine",
}

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and standard terminal colors are
// used.
func Initialize(themeName string) error {
	if themeName == "" {
		mu.Lock()
		enabled = false
		current = ""
		mu.Unlock()
		return nil
	}
	if !Set(themeName) {
		return fmt.Errorf("unknown theme %q", themeName)
	}
	return nil
}

// Set switches to the tint with the given ID. It reports false and leaves
// the current theme untouched when the ID is unknown.
func Set(themeName string) bool {
	once.Do(func() { tint.NewDefaultRegistry() })

	mu.Lock()
	defer mu.Unlock()
	if !tint.SetTintID(themeName) {
		return false
	}
	enabled = true
	current = themeName
	return true
}

// Name returns the active theme ID, or "" when theming is disabled.
func Name() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Current returns the active theme, or nil if theming is disabled.
func Current() *tint.Tint {
	if !IsEnabled() {
		return nil
	}
	return tint.Current()
}

func pick(fallback string, fn func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return fn(t)
}

// Shell colors
func Foreground() color.Color {
	return pick("7", func(t *tint.Tint) color.Color { return t.Fg })
}

func Muted() color.Color {
	return pick("8", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func PromptUser() color.Color {
	return pick("10", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func PromptPath() color.Color {
	return pick("12", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

func ShellError() color.Color {
	return pick("9", func(t *tint.Tint) color.Color { return t.BrightRed })
}

func Cursor() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.Cursor })
}

func Completion() color.Color {
	return pick("11", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

// Window border colors
func BorderUnfocused() color.Color {
	return pick("#FAAAAA", func(t *tint.Tint) color.Color { return t.Red })
}

func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func BorderClosing() color.Color {
	return pick("#5f5f5f", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func WindowTitle() color.Color {
	return pick("15", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

func CloseButton() color.Color {
	return pick("9", func(t *tint.Tint) color.Color { return t.BrightRed })
}

// Switcher overlay colors
func SwitcherBorder() color.Color {
	return pick("14", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func SwitcherSelected() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ffff"), lipgloss.Color("#000000")
	}
	return t.BrightCyan, t.Black
}

// Status bar colors
func StatusBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func StatusBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func ModeShell() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func ModeWindow() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

func ModeSwitch() color.Color {
	return pick("#ffff00", func(t *tint.Tint) color.Color { return t.Yellow })
}

// Notification colors
func NotificationInfo() color.Color {
	return pick("#0088ff", func(t *tint.Tint) color.Color { return t.Blue })
}

func NotificationError() color.Color {
	return pick("#ff4444", func(t *tint.Tint) color.Color { return t.Red })
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("8")
}

func CLITableTitle() color.Color {
	return lipgloss.Color("11")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
