// Package main implements folio, a portfolio presented as a small terminal
// desktop: a shell that opens pages as floating windows, an Alt-Tab
// switcher, and SSH and browser front doors serving the same desktop.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/folio/internal/server"
	"github.com/Gaurav-Gosain/folio/internal/web"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	themeName  string
	contentDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "A portfolio you can cd into",
		Long: `folio - a terminal portfolio desktop

Browse a portfolio from a shell. Commands such as "cat about.md" open pages
as floating windows that can be moved, resized, scrolled and cycled with
Alt-Tab. The same desktop can be served over SSH or in the browser.`,
		Example: `  # Run locally
  folio

  # Use your own content directory and a theme
  folio --content ./site --theme dracula

  # Serve over SSH
  folio ssh --port 2222

  # Serve in the browser
  folio web --port 7681

  # Replay a tape and print the final frame
  folio play demo.tape --headless`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Theme to use (see 'folio themes')")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "", "Content directory (defaults to the built-in pages)")

	// SSH
	var sshHost, sshPort, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve folio over SSH",
		Long: `Serve folio over SSH

Every connection gets its own desktop. A host key is generated on first
start if none exists.`,
		Example: `  # Start on the default port
  folio ssh

  # Custom port and host key
  folio ssh --port 2222 --key-path ./host_key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshHost, "host", server.DefaultHost, "SSH server host")
	sshCmd.Flags().StringVar(&sshPort, "port", server.DefaultPort, "SSH server port")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	// Web
	var (
		webHost           string
		webPort           string
		webReadOnly       bool
		webMaxConnections int
	)

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve folio in the browser",
		Long: `Serve folio in the browser

Visitors get an xterm.js terminal running their own desktop.
Powered by sip (github.com/Gaurav-Gosain/sip).`,
		Example: `  # Start on the default port (7681)
  folio web

  # Bind to all interfaces, view only
  folio web --host 0.0.0.0 --read-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebServer(cmd.Context(), web.Config{
				Host:           webHost,
				Port:           webPort,
				ReadOnly:       webReadOnly,
				MaxConnections: webMaxConnections,
				Debug:          debugMode,
			})
		},
	}
	webCmd.Flags().StringVar(&webHost, "host", web.DefaultHost, "Web server host")
	webCmd.Flags().StringVar(&webPort, "port", web.DefaultPort, "Web server port")
	webCmd.Flags().BoolVar(&webReadOnly, "read-only", false, "Disallow input from visitors")
	webCmd.Flags().IntVar(&webMaxConnections, "max-connections", 0, "Maximum concurrent visitors (0 = unlimited)")

	// Play
	var (
		playHeadless bool
		playWidth    int
		playHeight   int
	)

	playCmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Replay a tape script",
		Long: `Replay a tape script against the desktop

Tapes are line based: Type "about", Enter, Alt+Tab, Release Alt, Sleep 1s...
With --headless the script runs without a terminal and the final frame is
printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), args[0], playHeadless, playWidth, playHeight)
		},
	}
	playCmd.Flags().BoolVar(&playHeadless, "headless", false, "Run without a terminal and print the final frame")
	playCmd.Flags().IntVar(&playWidth, "width", 0, "Screen width for headless runs (default: terminal width or 100)")
	playCmd.Flags().IntVar(&playHeight, "height", 0, "Screen height for headless runs (default: terminal height or 30)")

	// Config
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage folio configuration",
		Long:  `Manage the folio configuration file`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the folio configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the folio configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	// Keybinds
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}
	keybindsCmd.AddCommand(keybindsListCmd)

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List bundled themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listThemes()
		},
	}

	rootCmd.AddCommand(sshCmd, webCmd, playCmd, configCmd, keybindsCmd, themesCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
