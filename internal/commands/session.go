package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/shell"
	"github.com/Gaurav-Gosain/folio/internal/theme"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

func (b *builtins) help(_ context.Context, sh *shell.Shell, _ []string) ([]string, error) {
	out := []string{"Available commands:", ""}
	for _, cmd := range sh.Registry().Commands() {
		name := cmd.Usage
		if name == "" {
			name = cmd.Name
		}
		out = append(out, fmt.Sprintf("  %-13s - %s", name, cmd.Summary))
	}
	return append(out,
		"",
		"Navigation:",
		"  Use Tab for auto-completion",
		"  Use ↑/↓ arrows for command history",
		"  Use Alt+Tab to switch between windows",
	), nil
}

func (b *builtins) clear(_ context.Context, sh *shell.Shell, _ []string) ([]string, error) {
	sh.Clear()
	return nil, nil
}

func (b *builtins) sysinfo(ctx context.Context, _ *shell.Shell, _ []string) ([]string, error) {
	snap, err := b.SysInfo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("sysinfo: %w", err)
	}

	lines := append([]string{"SYSTEM INFORMATION", ""}, snap.Lines()...)
	b.Desktop.OpenWindow("System Information", wm.Text(lines...))
	return nil, nil
}

func (b *builtins) whoami(context.Context, *shell.Shell, []string) ([]string, error) {
	return []string{b.User}, nil
}

func (b *builtins) date(context.Context, *shell.Shell, []string) ([]string, error) {
	return []string{b.Now().Format(time.UnixDate)}, nil
}

func (b *builtins) history(_ context.Context, sh *shell.Shell, _ []string) ([]string, error) {
	hist := sh.History()
	out := make([]string, 0, len(hist))
	for i, line := range hist {
		out = append(out, fmt.Sprintf("  %d  %s", i+1, line))
	}
	return out, nil
}

func (b *builtins) banner(context.Context, *shell.Shell, []string) ([]string, error) {
	return Banner(b.Config), nil
}

// Banner returns the boxed site banner followed by the welcome message.
func Banner(cfg *config.UserConfig) []string {
	body := cfg.Site.Name
	if cfg.Site.Description != "" {
		body += "\n" + cfg.Site.Description
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Render(body)

	lines := strings.Split(box, "\n")
	if cfg.Terminal.WelcomeMessage != "" {
		lines = append(lines, "", cfg.Terminal.WelcomeMessage)
	}
	return append(lines, "")
}

func (b *builtins) theme(_ context.Context, _ *shell.Shell, args []string) ([]string, error) {
	if len(args) == 0 || args[0] == "" {
		current := theme.Name()
		if current == "" {
			current = "none (terminal colors)"
		}
		out := []string{"Current theme: " + current, "", "Themes:"}
		for _, id := range theme.KnownThemes {
			marker := " "
			if id == theme.Name() {
				marker = "*"
			}
			out = append(out, fmt.Sprintf("  %s %s", marker, id))
		}
		return out, nil
	}

	if !b.ThemeSwitching {
		return nil, errors.New("theme: switching is disabled in shared sessions")
	}
	if !theme.Set(args[0]) {
		return nil, fmt.Errorf("theme: unknown theme %q", args[0])
	}
	return []string{"Theme set to " + args[0]}, nil
}

func (b *builtins) completeThemes(*shell.Shell) []string {
	return theme.KnownThemes
}

func (b *builtins) exit(context.Context, *shell.Shell, []string) ([]string, error) {
	b.Desktop.Quit()
	return []string{"Goodbye!"}, nil
}
