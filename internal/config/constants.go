// Package config provides configuration constants, the user config file and
// keybinding management for folio.
package config

import "time"

const (
	// NormalFPS is the target frame rate for the Bubble Tea program.
	NormalFPS = 60

	// StatusBarHeight is the number of rows reserved at the bottom of the screen.
	StatusBarHeight = 1

	// MetricsInterval controls how often the status bar samples system metrics.
	MetricsInterval = 2 * time.Second

	// NotificationDuration is how long a desktop notification stays visible.
	NotificationDuration = 3 * time.Second

	// CascadeWrap is the number of cascade offsets before window placement
	// starts again at the base position.
	CascadeWrap = 8

	// CPUHistorySize is the number of samples kept for the status bar graph.
	CPUHistorySize = 10
)

// Tokenizer modes for splitting shell input.
const (
	TokenizerLiteral = "literal"
	TokenizerShell   = "shell"
)

