package main

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/Gaurav-Gosain/folio/internal/config"
)

func TestRenderKeybindings(t *testing.T) {
	out := ansi.Strip(renderKeybindings(config.NewKeybindRegistry(config.DefaultConfig())))

	for _, want := range []string{"Shell", "Windows", "Switcher", "System", "Close window", "Run command", "Quit"} {
		assert.Contains(t, out, want)
	}
}

func TestPlaySizePrefersFlags(t *testing.T) {
	w, h := playSize(80, 24)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}
