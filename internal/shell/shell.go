// Package shell implements the command interpreter: scrollback, pending
// input, history recall and tab-completion cycling over a command registry.
//
// A Shell is not safe for concurrent use; it is owned by one desktop and
// mutated from its Update loop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/folio/internal/config"
)

// EntryKind tags a scrollback entry.
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntryOutput
	EntryError
)

func (k EntryKind) String() string {
	switch k {
	case EntryInput:
		return "input"
	case EntryOutput:
		return "output"
	case EntryError:
		return "error"
	}
	return "unknown"
}

// Entry is one scrollback line. Path is the prompt path for input entries.
type Entry struct {
	Kind EntryKind
	Text string
	Path string
}

// Options tunes the shell.
type Options struct {
	HistoryLimit    int
	ScrollbackLines int
	EchoEmptyInput  bool
	Tokenizer       string
	Autocomplete    bool
}

// OptionsFromConfig extracts shell options from cfg.
func OptionsFromConfig(cfg *config.UserConfig) Options {
	return Options{
		HistoryLimit:    cfg.Navigation.HistoryLimit,
		ScrollbackLines: cfg.Terminal.ScrollbackLines,
		EchoEmptyInput:  cfg.Terminal.EchoEmptyInput,
		Tokenizer:       cfg.Terminal.Tokenizer,
		Autocomplete:    cfg.Navigation.EnableAutocomplete,
	}
}

// Shell is the interpreter state.
type Shell struct {
	registry *Registry
	opts     Options
	logger   *log.Logger

	scrollback []Entry
	input      string

	history []string
	cursor  int

	candidates []string
	candIndex  int
	candPrefix string

	cwd string
}

// New returns a shell dispatching to registry.
func New(registry *Registry, opts Options, logger *log.Logger) *Shell {
	if opts.HistoryLimit < 1 {
		opts.HistoryLimit = 100
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shell{
		registry:  registry,
		opts:      opts,
		logger:    logger,
		cursor:    -1,
		candIndex: -1,
	}
}

// Registry returns the command registry.
func (s *Shell) Registry() *Registry { return s.registry }

// Scrollback returns a copy of the scrollback.
func (s *Shell) Scrollback() []Entry {
	out := make([]Entry, len(s.scrollback))
	copy(out, s.scrollback)
	return out
}

// Input returns the pending input.
func (s *Shell) Input() string { return s.input }

// History returns submitted commands, oldest first.
func (s *Shell) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryCursor returns the recall position: -1 when not recalling, 0 for
// the newest entry.
func (s *Shell) HistoryCursor() int { return s.cursor }

// Candidates returns the active completion candidates and the selected
// index, or nil and -1.
func (s *Shell) Candidates() ([]string, int) {
	if len(s.candidates) == 0 {
		return nil, -1
	}
	out := make([]string, len(s.candidates))
	copy(out, s.candidates)
	return out, s.candIndex
}

// Cwd returns the working directory relative to the content root ("" for
// the root itself).
func (s *Shell) Cwd() string { return s.cwd }

// SetCwd changes the working directory.
func (s *Shell) SetCwd(dir string) { s.cwd = strings.Trim(dir, "/") }

// Path returns the prompt form of the working directory: "~" or "~/dir".
func (s *Shell) Path() string {
	if s.cwd == "" {
		return "~"
	}
	return "~/" + s.cwd
}

// Submit runs one command line.
func (s *Shell) Submit(ctx context.Context, line string) {
	defer s.resetInput()

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		if s.opts.EchoEmptyInput {
			s.append(Entry{Kind: EntryInput, Text: "", Path: s.Path()})
		}
		return
	}

	s.append(Entry{Kind: EntryInput, Text: trimmed, Path: s.Path()})
	s.pushHistory(trimmed)

	words, err := Tokenize(trimmed, s.opts.Tokenizer)
	if err != nil {
		s.Errorf("%s: %v", trimmed, err)
		return
	}
	if len(words) == 0 {
		return
	}

	s.logger.Debug("dispatch", "command", words[0], "args", len(words)-1)
	lines, err := s.registry.Dispatch(ctx, s, words[0], words[1:])
	for _, l := range lines {
		s.append(Entry{Kind: EntryOutput, Text: l})
	}
	switch {
	case errors.Is(err, ErrUnknownCommand):
		s.append(Entry{Kind: EntryError, Text: "command not found: " + line})
	case err != nil:
		s.logger.Debug("command failed", "command", words[0], "err", err)
		s.append(Entry{Kind: EntryError, Text: err.Error()})
	}
}

// Println appends output lines outside of a command, e.g. a welcome banner.
func (s *Shell) Println(lines ...string) {
	for _, l := range lines {
		s.append(Entry{Kind: EntryOutput, Text: l})
	}
}

// Errorf appends a formatted error entry.
func (s *Shell) Errorf(format string, args ...any) {
	s.append(Entry{Kind: EntryError, Text: fmt.Sprintf(format, args...)})
}

// Clear empties the scrollback.
func (s *Shell) Clear() {
	s.scrollback = nil
}

// Interrupt drops pending input and completion without recording history.
func (s *Shell) Interrupt() {
	s.resetInput()
}

// InsertText appends text to the pending input.
func (s *Shell) InsertText(text string) {
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
	if text == "" {
		return
	}
	s.clearCompletion()
	s.input += text
}

// Backspace removes the last rune of the pending input.
func (s *Shell) Backspace() {
	s.clearCompletion()
	if s.input == "" {
		return
	}
	r := []rune(s.input)
	s.input = string(r[:len(r)-1])
}

// SetInput replaces the pending input.
func (s *Shell) SetInput(text string) {
	s.clearCompletion()
	s.input = text
}

// HistoryUp recalls the next older command, stopping at the oldest.
func (s *Shell) HistoryUp() {
	s.clearCompletion()
	if len(s.history) == 0 {
		return
	}
	if s.cursor < len(s.history)-1 {
		s.cursor++
	}
	s.input = s.history[len(s.history)-1-s.cursor]
}

// HistoryDown recalls the next newer command; moving past the newest clears
// the input.
func (s *Shell) HistoryDown() {
	s.clearCompletion()
	if s.cursor < 0 {
		return
	}
	s.cursor--
	if s.cursor < 0 {
		s.input = ""
		return
	}
	s.input = s.history[len(s.history)-1-s.cursor]
}

// Complete performs one Tab press; reverse walks the candidates backwards.
func (s *Shell) Complete(reverse bool) {
	if !s.opts.Autocomplete {
		return
	}

	if n := len(s.candidates); n > 0 {
		if reverse {
			s.candIndex = (s.candIndex - 1 + n) % n
		} else {
			s.candIndex = (s.candIndex + 1) % n
		}
		s.input = s.candPrefix + s.candidates[s.candIndex]
		return
	}

	prefix, candidates := s.completions(s.input)
	switch len(candidates) {
	case 0:
	case 1:
		s.input = prefix + candidates[0] + " "
	default:
		s.candidates = candidates
		s.candIndex = 0
		s.candPrefix = prefix
		s.input = prefix + candidates[0]
	}
}

// completions returns the text kept in front of the completed token and
// the sorted candidates for the token being typed.
func (s *Shell) completions(input string) (string, []string) {
	words := strings.Split(input, " ")

	var pool []string
	var prefix string
	switch len(words) {
	case 1:
		pool = s.registry.Names()
	case 2:
		cmd, ok := s.registry.Lookup(words[0])
		if !ok || cmd.Complete == nil {
			return "", nil
		}
		pool = cmd.Complete(s)
		prefix = words[0] + " "
	default:
		return "", nil
	}

	partial := words[len(words)-1]
	var out []string
	seen := make(map[string]bool)
	for _, c := range pool {
		if strings.HasPrefix(c, partial) && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return prefix, out
}

func (s *Shell) resetInput() {
	s.input = ""
	s.cursor = -1
	s.clearCompletion()
}

// CancelCompletion drops the pending candidate set so the next Tab starts
// over from the current input.
func (s *Shell) CancelCompletion() { s.clearCompletion() }

func (s *Shell) clearCompletion() {
	s.candidates = nil
	s.candIndex = -1
	s.candPrefix = ""
}

func (s *Shell) pushHistory(line string) {
	s.history = append(s.history, line)
	if over := len(s.history) - s.opts.HistoryLimit; over > 0 {
		s.history = append([]string(nil), s.history[over:]...)
	}
}

func (s *Shell) append(e Entry) {
	s.scrollback = append(s.scrollback, e)
	if s.opts.ScrollbackLines > 0 {
		if over := len(s.scrollback) - s.opts.ScrollbackLines; over > 0 {
			s.scrollback = append([]Entry(nil), s.scrollback[over:]...)
		}
	}
}
