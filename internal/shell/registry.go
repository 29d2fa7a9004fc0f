package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCommand is returned by Dispatch for names that are not registered.
var ErrUnknownCommand = errors.New("command not found")

// RunFunc executes a command. Returned lines become output entries; a
// returned error becomes a single error entry.
type RunFunc func(ctx context.Context, sh *Shell, args []string) ([]string, error)

// CompleteFunc returns every argument candidate valid for the command in the
// shell's current state. The shell filters them by the partial token.
type CompleteFunc func(sh *Shell) []string

// Command is one registry entry.
type Command struct {
	Name     string
	Summary  string
	Usage    string
	Run      RunFunc
	Complete CompleteFunc
}

// Registry maps command names to commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd. It panics on an empty or duplicate name or a nil Run,
// since both are programming errors.
func (r *Registry) Register(cmd Command) {
	if cmd.Name == "" || strings.ContainsAny(cmd.Name, " \t") {
		panic(fmt.Sprintf("shell: invalid command name %q", cmd.Name))
	}
	if cmd.Run == nil {
		panic(fmt.Sprintf("shell: command %q has no Run func", cmd.Name))
	}
	if _, dup := r.commands[cmd.Name]; dup {
		panic(fmt.Sprintf("shell: command %q registered twice", cmd.Name))
	}
	r.commands[cmd.Name] = cmd
}

// Lookup returns the command called name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns all command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns all commands sorted by name.
func (r *Registry) Commands() []Command {
	names := r.Names()
	out := make([]Command, len(names))
	for i, name := range names {
		out[i] = r.commands[name]
	}
	return out
}

// Dispatch runs the named command.
func (r *Registry) Dispatch(ctx context.Context, sh *Shell, name string, args []string) ([]string, error) {
	cmd, ok := r.commands[name]
	if !ok {
		return nil, ErrUnknownCommand
	}
	return cmd.Run(ctx, sh, args)
}
