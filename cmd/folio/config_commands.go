package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/theme"
)

// printConfigPath prints the config file path
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// LoadUserConfig writes the defaults on first run.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return errors.New("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return validateConfig()
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

// resetConfigToDefaults overwrites the config file with the defaults.
func resetConfigToDefaults(yes bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !yes {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))

		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.SaveFile(configPath, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: folio config edit")
	return nil
}

// validateConfig loads the config file and reports every issue found.
func validateConfig() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	issues := config.Validate(cfg)
	if len(issues) == 0 {
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓ " + configPath + " is valid"))
		return nil
	}
	fmt.Fprintln(os.Stderr, config.FormatIssues(issues))
	return fmt.Errorf("%d problem(s) in %s", len(issues), configPath)
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
		userConfig = config.DefaultConfig()
	}

	fmt.Print(renderKeybindings(config.NewKeybindRegistry(userConfig)))
	return nil
}

// renderKeybindings renders one table per keybinding section.
func renderKeybindings(registry *config.KeybindRegistry) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("folio keybindings"))
	sb.WriteString("\n\n")

	for _, section := range registry.Sections() {
		var rows [][]string
		for _, action := range registry.SectionActions(section.Name) {
			keys := registry.GetKeys(action)
			if len(keys) == 0 {
				continue
			}
			desc := config.ActionDescriptions[action]
			if desc == "" {
				desc = action
			}
			rows = append(rows, []string{config.FormatKeysForDisplay(keys), desc})
		}
		if len(rows) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableTitle()).Render(section.Title))
		sb.WriteString("\n")
		sb.WriteString(t.Render())
		sb.WriteString("\n\n")
	}

	sb.WriteString(lipgloss.NewStyle().
		Foreground(theme.CLITableBorder()).
		Italic(true).
		Render("Keys are read from the [keybindings] section of 'folio config path'."))
	sb.WriteString("\n")
	return sb.String()
}

// listThemes prints the bundled theme IDs, marking the configured one.
func listThemes() error {
	current := themeName
	if current == "" {
		if cfg, err := config.LoadUserConfig(); err == nil {
			current = cfg.Appearance.Theme
		}
	}

	marker := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true)
	for _, name := range theme.KnownThemes {
		if name == current {
			fmt.Println(marker.Render("* " + name))
			continue
		}
		fmt.Println("  " + name)
	}
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Foreground(theme.CLITableBorder()).Italic(true).
		Render("Any bubbletint theme ID works. Set one with --theme or [appearance] theme."))
	return nil
}
