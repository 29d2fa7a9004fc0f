package input

import (
	tea "charm.land/bubbletea/v2"
)

var modifierCodes = map[string][]rune{
	"alt":   {tea.KeyLeftAlt, tea.KeyRightAlt},
	"ctrl":  {tea.KeyLeftCtrl, tea.KeyRightCtrl},
	"shift": {tea.KeyLeftShift, tea.KeyRightShift},
	"super": {tea.KeyLeftSuper, tea.KeyRightSuper},
	"meta":  {tea.KeyLeftMeta, tea.KeyRightMeta},
}

// IsModifierRelease reports whether msg is the release of modifier ("alt",
// "ctrl", ...). Only terminals speaking the kitty keyboard protocol report
// these events.
func IsModifierRelease(msg tea.KeyReleaseMsg, modifier string) bool {
	code := msg.Key().Code
	for _, c := range modifierCodes[modifier] {
		if code == c {
			return true
		}
	}
	return false
}

// IsPrintable reports whether a key press carries text to insert.
func IsPrintable(msg tea.KeyPressMsg) bool {
	k := msg.Key()
	if k.Text == "" {
		return false
	}
	return k.Mod&^tea.ModShift == 0
}
