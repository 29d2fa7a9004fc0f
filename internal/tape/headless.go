package tape

import (
	"context"
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
)

// Target is a model that can be driven synchronously.
type Target interface {
	Feed(msgs ...tea.Msg)
	Render() string
	Quitting() bool
}

// HeadlessRunner runs a tape script against a Target without a terminal.
// Sleeps and delays are skipped.
type HeadlessRunner struct {
	commands []Command
	logger   *log.Logger
}

// NewHeadlessRunner creates a new headless script runner. A nil logger
// disables step logging.
func NewHeadlessRunner(commands []Command, logger *log.Logger) *HeadlessRunner {
	return &HeadlessRunner{commands: commands, logger: logger}
}

// Run feeds every command to t, stopping early if t quits or ctx is done.
// It returns the number of commands executed.
func (hr *HeadlessRunner) Run(ctx context.Context, t Target) (int, error) {
	for i, cmd := range hr.commands {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if t.Quitting() {
			hr.debug("target quit", "remaining", len(hr.commands)-i)
			return i, nil
		}

		hr.debug("step", "n", i+1, "of", len(hr.commands), "line", cmd.Line, "cmd", cmd.String())
		t.Feed(ToMsgs(cmd)...)
	}
	return len(hr.commands), nil
}

// RunAndRender runs the script and writes the final frame to w.
func (hr *HeadlessRunner) RunAndRender(ctx context.Context, t Target, w io.Writer) error {
	if _, err := hr.Run(ctx, t); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (hr *HeadlessRunner) debug(msg string, kv ...any) {
	if hr.logger != nil {
		hr.logger.Debug(msg, kv...)
	}
}
