package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// AppName is used for XDG paths and the config file header.
const AppName = "folio"

// UserConfig is the on-disk configuration file.
type UserConfig struct {
	Site        SiteConfig        `toml:"site"`
	Terminal    TerminalConfig    `toml:"terminal"`
	Navigation  NavigationConfig  `toml:"navigation"`
	Content     ContentConfig     `toml:"content"`
	Windows     WindowsConfig     `toml:"windows"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Logging     LoggingConfig     `toml:"logging"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// SiteConfig describes the portfolio owner.
type SiteConfig struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Author      string `toml:"author"`
	URL         string `toml:"url"`
	Hostname    string `toml:"hostname"`
}

// TerminalConfig controls the shell.
type TerminalConfig struct {
	User            string `toml:"user"`
	PromptSymbol    string `toml:"prompt_symbol"`
	WelcomeMessage  string `toml:"welcome_message"`
	Tokenizer       string `toml:"tokenizer"`
	EchoEmptyInput  bool   `toml:"echo_empty_input"`
	ScrollbackLines int    `toml:"scrollback_lines"`
	ShowBanner      bool   `toml:"show_banner"`
}

// NavigationConfig controls history and completion.
type NavigationConfig struct {
	ShowBreadcrumbs    bool `toml:"show_breadcrumbs"`
	EnableAutocomplete bool `toml:"enable_autocomplete"`
	HistoryLimit       int  `toml:"history_limit"`
}

// ContentConfig points at the portfolio content.
type ContentConfig struct {
	// Dir is an on-disk content directory. Empty uses the embedded content.
	Dir            string `toml:"dir"`
	Watch          bool   `toml:"watch"`
	MaxRecentItems int    `toml:"max_recent_items"`
}

// WindowsConfig holds window geometry defaults, in terminal cells.
type WindowsConfig struct {
	MinWidth       int `toml:"min_width"`
	MinHeight      int `toml:"min_height"`
	TextWidth      int `toml:"text_width"`
	TextHeight     int `toml:"text_height"`
	MarkdownWidth  int `toml:"markdown_width"`
	MarkdownHeight int `toml:"markdown_height"`
	CascadeStep    int `toml:"cascade_step"`
	ResizeStepX    int `toml:"resize_step_x"`
	ResizeStepY    int `toml:"resize_step_y"`
	MoveStepX      int `toml:"move_step_x"`
	MoveStepY      int `toml:"move_step_y"`
	ScrollStep     int `toml:"scroll_step"`
	CloseDelayMS   int `toml:"close_delay_ms"`
}

// CloseDelay returns the close animation delay.
func (w WindowsConfig) CloseDelay() time.Duration {
	return time.Duration(w.CloseDelayMS) * time.Millisecond
}

// AppearanceConfig controls colors and rendering.
type AppearanceConfig struct {
	Theme         string `toml:"theme"`
	BorderStyle   string `toml:"border_style"`
	MarkdownStyle string `toml:"markdown_style"`
	SyntaxStyle   string `toml:"syntax_style"`
	Icons         bool   `toml:"icons"`
	Animations    bool   `toml:"animations"`
	ShowMetrics   bool   `toml:"show_metrics"`
}

// LoggingConfig controls the rotated log file.
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// KeybindingsConfig maps action names to key lists, grouped by section.
type KeybindingsConfig struct {
	Shell    map[string][]string `toml:"shell"`
	Windows  map[string][]string `toml:"windows"`
	Switcher map[string][]string `toml:"switcher"`
	System   map[string][]string `toml:"system"`
}

// Sections returns the keybinding sections in display order.
func (k KeybindingsConfig) Sections() []KeybindSection {
	return []KeybindSection{
		{Name: "shell", Title: "Shell", Bindings: k.Shell},
		{Name: "windows", Title: "Windows", Bindings: k.Windows},
		{Name: "switcher", Title: "Switcher", Bindings: k.Switcher},
		{Name: "system", Title: "System", Bindings: k.System},
	}
}

// KeybindSection is one named group of action bindings.
type KeybindSection struct {
	Name     string
	Title    string
	Bindings map[string][]string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Site: SiteConfig{
			Name:        "folio",
			Description: "A terminal portfolio",
			Author:      "guest",
			URL:         "https://github.com/Gaurav-Gosain/folio",
			Hostname:    "folio",
		},
		Terminal: TerminalConfig{
			User:            "guest",
			PromptSymbol:    "$",
			WelcomeMessage:  "Welcome! Type 'help' to see available commands.",
			Tokenizer:       TokenizerLiteral,
			EchoEmptyInput:  true,
			ScrollbackLines: 10000,
			ShowBanner:      true,
		},
		Navigation: NavigationConfig{
			ShowBreadcrumbs:    true,
			EnableAutocomplete: true,
			HistoryLimit:       100,
		},
		Content: ContentConfig{
			Watch:          true,
			MaxRecentItems: 5,
		},
		Windows: WindowsConfig{
			MinWidth:       30,
			MinHeight:      8,
			TextWidth:      60,
			TextHeight:     18,
			MarkdownWidth:  80,
			MarkdownHeight: 26,
			CascadeStep:    2,
			ResizeStepX:    4,
			ResizeStepY:    2,
			MoveStepX:      4,
			MoveStepY:      2,
			ScrollStep:     3,
			CloseDelayMS:   300,
		},
		Appearance: AppearanceConfig{
			BorderStyle:   "rounded",
			MarkdownStyle: "dark",
			SyntaxStyle:   "dracula",
			Icons:         false,
			Animations:    true,
			ShowMetrics:   true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Keybindings: defaultKeybindings(),
	}
}

func defaultKeybindings() KeybindingsConfig {
	return KeybindingsConfig{
		Shell: map[string][]string{
			"submit":           {"enter"},
			"history_prev":     {"up"},
			"history_next":     {"down"},
			"complete":         {"tab"},
			"complete_reverse": {"shift+tab"},
			"interrupt":        {"ctrl+c"},
			"clear_screen":     {"ctrl+l"},
			"delete_char":      {"backspace"},
		},
		Windows: map[string][]string{
			"close_window": {"esc"},
			"resize_up":    {"ctrl+shift+up", "ctrl+shift+k"},
			"resize_down":  {"ctrl+shift+down", "ctrl+shift+j"},
			"resize_left":  {"ctrl+shift+left", "ctrl+shift+h"},
			"resize_right": {"ctrl+shift+right", "ctrl+shift+l"},
			"move_up":      {"ctrl+alt+up", "ctrl+alt+k"},
			"move_down":    {"ctrl+alt+down", "ctrl+alt+j"},
			"move_left":    {"ctrl+alt+left", "ctrl+alt+h"},
			"move_right":   {"ctrl+alt+right", "ctrl+alt+l"},
			"focus_next":   {"alt+j"},
			"focus_prev":   {"alt+k"},
			"scroll_down":  {"j", "down"},
			"scroll_up":    {"k", "up"},
			"focus_shell":  {"i"},
		},
		Switcher: map[string][]string{
			"switch_next":   {"alt+tab"},
			"switch_prev":   {"alt+shift+tab"},
			"switch_commit": {"enter"},
			"switch_cancel": {"esc"},
		},
		System: map[string][]string{
			"quit":         {"ctrl+q"},
			"toggle_hints": {"f1"},
		},
	}
}

// GetConfigPath returns the path of the user config file.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(AppName, "config.toml"))
}

// GetLogPath returns the default path of the rotated log file.
func GetLogPath() (string, error) {
	return xdg.StateFile(filepath.Join(AppName, AppName+".log"))
}

// GetHostKeyPath returns the default SSH host key path.
func GetHostKeyPath() (string, error) {
	return xdg.DataFile(filepath.Join(AppName, "ssh_host_ed25519"))
}

// LoadUserConfig reads the config file, creating it with defaults on first
// run. Missing fields keep their default values.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile loads a config from path, writing defaults if it does not exist.
func LoadFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := SaveFile(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and fills in any keybinding
// actions the file leaves out.
func Parse(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	defaults := defaultKeybindings()
	cfg.Keybindings.Shell = mergeBindings(cfg.Keybindings.Shell, defaults.Shell)
	cfg.Keybindings.Windows = mergeBindings(cfg.Keybindings.Windows, defaults.Windows)
	cfg.Keybindings.Switcher = mergeBindings(cfg.Keybindings.Switcher, defaults.Switcher)
	cfg.Keybindings.System = mergeBindings(cfg.Keybindings.System, defaults.System)
	cfg.clamp()
	return cfg, nil
}

// SaveFile writes cfg to path with a short header.
func SaveFile(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as TOML with a header comment.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# folio configuration file\n")
	sb.WriteString("# Keybindings map an action to a list of keys, e.g. close_window = [\"esc\"]\n")
	sb.WriteString("# Window sizes and steps are measured in terminal cells.\n")
	if path != "" {
		sb.WriteString("#\n# Configuration location: " + path + "\n")
	}
	sb.WriteString("\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

func mergeBindings(user, defaults map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(defaults))
	for action, keys := range defaults {
		merged[action] = keys
	}
	for action, keys := range user {
		merged[action] = keys
	}
	return merged
}

// clamp replaces nonsensical numeric values with safe ones.
func (c *UserConfig) clamp() {
	d := DefaultConfig()
	if c.Navigation.HistoryLimit < 1 {
		c.Navigation.HistoryLimit = d.Navigation.HistoryLimit
	}
	if c.Terminal.ScrollbackLines < 100 {
		c.Terminal.ScrollbackLines = 100
	}
	if c.Windows.MinWidth < 10 {
		c.Windows.MinWidth = 10
	}
	if c.Windows.MinHeight < 3 {
		c.Windows.MinHeight = 3
	}
	if c.Windows.CloseDelayMS < 0 {
		c.Windows.CloseDelayMS = 0
	}
	if c.Windows.ScrollStep < 1 {
		c.Windows.ScrollStep = 1
	}
	if c.Content.MaxRecentItems < 1 {
		c.Content.MaxRecentItems = d.Content.MaxRecentItems
	}
	if c.Terminal.Tokenizer == "" {
		c.Terminal.Tokenizer = TokenizerLiteral
	}
}
