package tape

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CommandType represents the type of a tape command
type CommandType string

const (
	// Input
	CommandType_Type      CommandType = "Type"
	CommandType_Paste     CommandType = "Paste"
	CommandType_Sleep     CommandType = "Sleep"
	CommandType_Enter     CommandType = "Enter"
	CommandType_Space     CommandType = "Space"
	CommandType_Backspace CommandType = "Backspace"
	CommandType_Delete    CommandType = "Delete"
	CommandType_Tab       CommandType = "Tab"
	CommandType_Escape    CommandType = "Escape"

	// Navigation keys
	CommandType_Up       CommandType = "Up"
	CommandType_Down     CommandType = "Down"
	CommandType_Left     CommandType = "Left"
	CommandType_Right    CommandType = "Right"
	CommandType_Home     CommandType = "Home"
	CommandType_End      CommandType = "End"
	CommandType_PageUp   CommandType = "PageUp"
	CommandType_PageDown CommandType = "PageDown"

	// Key combinations (Ctrl+X, Alt+Tab, etc.) and modifier releases
	CommandType_KeyCombo CommandType = "KeyCombo"
	CommandType_Release  CommandType = "Release"

	// Pointer and screen
	CommandType_Click      CommandType = "Click"
	CommandType_ScrollUp   CommandType = "ScrollUp"
	CommandType_ScrollDown CommandType = "ScrollDown"
	CommandType_Resize     CommandType = "Resize"
)

// Command represents a parsed tape command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Delay before this command, or the Sleep length
	Repeat int           // How many times the command runs; at least 1
	Line   int           // Source line number
	Raw    string        // Original raw command text
}

// String returns a string representation of the command
func (c *Command) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	switch c.Type {
	case CommandType_Type, CommandType_Paste:
		return fmt.Sprintf("%s %q", c.Type, strings.Join(c.Args, ""))
	case CommandType_KeyCombo:
		return strings.Join(c.Args, "")
	}
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return fmt.Sprintf("%s %s", c.Type, strings.Join(c.Args, " "))
}

// KeyCombo represents a key combination (e.g., Ctrl+B, Alt+Tab)
type KeyCombo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string // The key itself (b, 1, tab, up, etc.)
}

// String returns the combo as a keystroke, modifiers in ctrl, alt, shift
// order
func (kc KeyCombo) String() string {
	var sb strings.Builder
	if kc.Ctrl {
		sb.WriteString("ctrl+")
	}
	if kc.Alt {
		sb.WriteString("alt+")
	}
	if kc.Shift {
		sb.WriteString("shift+")
	}
	sb.WriteString(kc.Key)
	return sb.String()
}

// ParseKeyCombo parses a key combo string like "Ctrl+B" or "Alt+Shift+Tab".
// Modifier names are case-insensitive.
func ParseKeyCombo(s string) (KeyCombo, error) {
	var kc KeyCombo
	parts := strings.Split(s, "+")
	// "Ctrl++" names the plus key.
	if strings.HasSuffix(s, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return kc, errors.New("empty key combo")
	}

	kc.Key = normalizeKeyName(parts[len(parts)-1])
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl":
			kc.Ctrl = true
		case "alt":
			kc.Alt = true
		case "shift":
			kc.Shift = true
		default:
			return kc, fmt.Errorf("unknown modifier: %s", mod)
		}
	}
	return kc, nil
}

// normalizeKeyName maps tape key names to keystroke names. Single
// characters keep their case so Ctrl+B and Ctrl+b differ only when the
// caller wants them to.
func normalizeKeyName(name string) string {
	if tt := LookupKeyword(name); tt.IsNamedKey() {
		return keyNames[tt]
	}
	if len([]rune(name)) == 1 {
		return name
	}
	return strings.ToLower(name)
}
