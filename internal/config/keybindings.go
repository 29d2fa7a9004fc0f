package config

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
)

// ActionDescriptions maps every bindable action to its help text.
var ActionDescriptions = map[string]string{
	// shell
	"submit":           "Run command",
	"history_prev":     "Previous command",
	"history_next":     "Next command",
	"complete":         "Complete",
	"complete_reverse": "Complete (reverse)",
	"interrupt":        "Clear input",
	"clear_screen":     "Clear screen",
	"delete_char":      "Delete character",

	// windows
	"close_window": "Close window",
	"resize_up":    "Shrink height",
	"resize_down":  "Grow height",
	"resize_left":  "Shrink width",
	"resize_right": "Grow width",
	"move_up":      "Move up",
	"move_down":    "Move down",
	"move_left":    "Move left",
	"move_right":   "Move right",
	"focus_next":   "Next window",
	"focus_prev":   "Previous window",
	"scroll_down":  "Scroll down",
	"scroll_up":    "Scroll up",
	"focus_shell":  "Focus shell",

	// switcher
	"switch_next":   "Switcher next",
	"switch_prev":   "Switcher previous",
	"switch_commit": "Switcher select",
	"switch_cancel": "Switcher cancel",

	// system
	"quit":         "Quit",
	"toggle_hints": "Toggle key hints",
}

// KeybindRegistry resolves actions to key bindings and back.
type KeybindRegistry struct {
	bindings map[string]key.Binding
	actions  map[string]map[string]string // section -> key -> action
	sections []KeybindSection
}

// NewKeybindRegistry builds a registry from cfg.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		bindings: make(map[string]key.Binding),
		actions:  make(map[string]map[string]string),
		sections: cfg.Keybindings.Sections(),
	}

	for _, section := range r.sections {
		lookup := make(map[string]string)
		for action, keys := range section.Bindings {
			normalized := make([]string, 0, len(keys))
			for _, k := range keys {
				nk := NormalizeKey(k)
				if nk == "" {
					continue
				}
				normalized = append(normalized, nk)
				lookup[nk] = action
			}
			desc := ActionDescriptions[action]
			if desc == "" {
				desc = strings.ReplaceAll(action, "_", " ")
			}
			r.bindings[action] = key.NewBinding(
				key.WithKeys(normalized...),
				key.WithHelp(FormatKeysForDisplay(normalized), desc),
			)
		}
		r.actions[section.Name] = lookup
	}
	return r
}

// Binding returns the key binding for action. Unknown actions yield a
// disabled binding that never matches.
func (r *KeybindRegistry) Binding(action string) key.Binding {
	if b, ok := r.bindings[action]; ok {
		return b
	}
	return key.NewBinding(key.WithDisabled())
}

// Matches reports whether k triggers any of the given actions.
func (r *KeybindRegistry) Matches(k fmt.Stringer, actions ...string) bool {
	for _, action := range actions {
		if key.Matches(k, r.Binding(action)) {
			return true
		}
	}
	return false
}

// GetKeys returns the normalized keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	b, ok := r.bindings[action]
	if !ok {
		return nil
	}
	return b.Keys()
}

// GetAction returns the action bound to k in section, or "".
func (r *KeybindRegistry) GetAction(section, k string) string {
	return r.actions[section][NormalizeKey(k)]
}

// GetKeysForDisplay returns a human readable key list for action.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	return FormatKeysForDisplay(r.GetKeys(action))
}

// Sections returns the configured sections.
func (r *KeybindRegistry) Sections() []KeybindSection {
	return r.sections
}

// SectionActions returns the actions of a section sorted by name.
func (r *KeybindRegistry) SectionActions(section string) []string {
	for _, s := range r.sections {
		if s.Name != section {
			continue
		}
		actions := make([]string, 0, len(s.Bindings))
		for action := range s.Bindings {
			actions = append(actions, action)
		}
		sort.Strings(actions)
		return actions
	}
	return nil
}

// FormatKeysForDisplay renders keys as "Alt+J, Ctrl+Shift+Up".
func FormatKeysForDisplay(keys []string) string {
	display := make([]string, 0, len(keys))
	for _, k := range keys {
		parts := strings.Split(k, "+")
		for i, p := range parts {
			switch p {
			case "esc":
				parts[i] = "Esc"
			case "up":
				parts[i] = "↑"
			case "down":
				parts[i] = "↓"
			case "left":
				parts[i] = "←"
			case "right":
				parts[i] = "→"
			default:
				if len(p) > 1 {
					parts[i] = strings.ToUpper(p[:1]) + p[1:]
				}
			}
		}
		display = append(display, strings.Join(parts, "+"))
	}
	return strings.Join(display, ", ")
}

var keyAliases = map[string]string{
	"escape":     "esc",
	"return":     "enter",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	"control":    "ctrl",
	"option":     "alt",
	"opt":        "alt",
	"meta":       "alt",
	" ":          "space",
	"del":        "delete",
	"bs":         "backspace",
}

var modifierOrder = []string{"ctrl", "alt", "shift"}

// NormalizeKey canonicalises a key string to the form Bubble Tea reports:
// lower-case, aliases resolved, modifiers ordered ctrl, alt, shift.
func NormalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if k == "" {
		return ""
	}
	if k == "+" {
		return k
	}

	parts := strings.Split(k, "+")
	base := parts[len(parts)-1]
	mods := make(map[string]bool)
	for _, p := range parts[:len(parts)-1] {
		p = strings.ToLower(strings.TrimSpace(p))
		if alias, ok := keyAliases[p]; ok {
			p = alias
		}
		mods[p] = true
	}

	if len([]rune(base)) > 1 {
		base = strings.ToLower(base)
		if alias, ok := keyAliases[base]; ok {
			base = alias
		}
	} else if len(mods) > 0 {
		base = strings.ToLower(base)
	}

	var out []string
	for _, m := range modifierOrder {
		if mods[m] {
			out = append(out, m)
		}
	}
	out = append(out, base)
	return strings.Join(out, "+")
}

// Modifier returns the leading modifier of a chord like "alt+tab", or "".
func Modifier(chord string) string {
	parts := strings.Split(chord, "+")
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}
