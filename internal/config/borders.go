package config

import "charm.land/lipgloss/v2"

// BorderStyles maps appearance.border_style values to lipgloss borders.
var BorderStyles = map[string]lipgloss.Border{
	"rounded": lipgloss.RoundedBorder(),
	"normal":  lipgloss.NormalBorder(),
	"thick":   lipgloss.ThickBorder(),
	"double":  lipgloss.DoubleBorder(),
	"ascii":   lipgloss.ASCIIBorder(),
}

// Border returns the configured window border, rounded when unknown.
func (a AppearanceConfig) Border() lipgloss.Border {
	if b, ok := BorderStyles[a.BorderStyle]; ok {
		return b
	}
	return lipgloss.RoundedBorder()
}
