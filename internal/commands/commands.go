// Package commands holds the built-in shell commands of the portfolio: the
// content browsing commands (ls, cd, cat, projects, ...) and the session
// commands (help, history, theme, exit, ...).
package commands

import (
	"time"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/shell"
	"github.com/Gaurav-Gosain/folio/internal/sysinfo"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

// Desktop is the part of a desktop the commands drive.
type Desktop interface {
	// OpenWindow opens and focuses a window.
	OpenWindow(title string, c wm.Content) wm.ID
	// Quit ends the session once the current command returns.
	Quit()
}

// Deps are the collaborators of the built-in commands.
type Deps struct {
	Desktop Desktop
	Store   content.Store
	Config  *config.UserConfig
	// User is the session user shown by whoami and the prompt.
	User    string
	Now     func() time.Time
	SysInfo sysinfo.Sampler
	// ThemeSwitching allows `theme <id>`. The theme is process wide, so
	// servers hosting several sessions turn it off.
	ThemeSwitching bool
}

func (d *Deps) defaults() {
	if d.Config == nil {
		d.Config = config.DefaultConfig()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.SysInfo == nil {
		d.SysInfo = sysinfo.Host{}
	}
	if d.User == "" {
		d.User = d.Config.Terminal.User
	}
}

// Register adds every built-in command to reg.
func Register(reg *shell.Registry, deps Deps) {
	deps.defaults()
	b := &builtins{Deps: deps}

	for _, cmd := range []shell.Command{
		{Name: "help", Summary: "Show this help message", Run: b.help},
		{Name: "clear", Summary: "Clear the terminal screen", Run: b.clear},
		{Name: "about", Summary: "Display information about me", Run: b.openFile("about.md")},
		{Name: "contact", Summary: "Show contact information", Run: b.openFile("contact.md")},
		{Name: "projects", Summary: "List all projects", Run: b.collection("projects", "Available Projects:")},
		{Name: "articles", Summary: "List all articles", Run: b.collection("articles", "Published Articles:")},
		{Name: "recent", Summary: "Show the newest content", Run: b.recent},
		{Name: "ls", Summary: "List directory contents", Run: b.ls},
		{Name: "cd", Summary: "Change directory", Usage: "cd <dir>", Run: b.cd, Complete: b.completeDirs},
		{Name: "pwd", Summary: "Show current directory", Run: b.pwd},
		{Name: "cat", Summary: "Open a file in a window", Usage: "cat <file>", Run: b.cat, Complete: b.completeFiles},
		{Name: "open", Summary: "Alias for cat", Usage: "open <file>", Run: b.cat, Complete: b.completeFiles},
		{Name: "sysinfo", Summary: "Display system information", Run: b.sysinfo},
		{Name: "whoami", Summary: "Print the session user", Run: b.whoami},
		{Name: "date", Summary: "Print the current time", Run: b.date},
		{Name: "history", Summary: "Show command history", Run: b.history},
		{Name: "banner", Summary: "Print the welcome banner", Run: b.banner},
		{Name: "theme", Summary: "List or switch color themes", Usage: "theme [id]", Run: b.theme, Complete: b.completeThemes},
		{Name: "exit", Summary: "Close the terminal", Run: b.exit},
	} {
		reg.Register(cmd)
	}
}

type builtins struct {
	Deps
}
