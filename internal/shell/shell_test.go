package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/Gaurav-Gosain/folio/internal/shell"
)

var dirs = map[string][]string{
	"":         {"about.md", "contact.md"},
	"projects": {"folio.md", "printer.md", "prism.md"},
	"articles": {"go.md"},
}

func newShell(t *testing.T, opts shell.Options) *shell.Shell {
	t.Helper()

	reg := shell.NewRegistry()
	reg.Register(shell.Command{
		Name:    "help",
		Summary: "Show commands",
		Run: func(_ context.Context, sh *shell.Shell, _ []string) ([]string, error) {
			var out []string
			for _, c := range sh.Registry().Commands() {
				out = append(out, fmt.Sprintf("  %-8s %s", c.Name, c.Summary))
			}
			return out, nil
		},
	})
	reg.Register(shell.Command{
		Name:    "history",
		Summary: "Show history",
		Run: func(context.Context, *shell.Shell, []string) ([]string, error) {
			return nil, nil
		},
	})
	reg.Register(shell.Command{
		Name:    "echo",
		Summary: "Print arguments",
		Run: func(_ context.Context, _ *shell.Shell, args []string) ([]string, error) {
			return args, nil
		},
	})
	reg.Register(shell.Command{
		Name:    "fail",
		Summary: "Always fails",
		Run: func(context.Context, *shell.Shell, []string) ([]string, error) {
			return nil, errors.New("fail: boom")
		},
	})
	reg.Register(shell.Command{
		Name:    "cd",
		Summary: "Change directory",
		Run: func(_ context.Context, sh *shell.Shell, args []string) ([]string, error) {
			if len(args) == 0 {
				sh.SetCwd("")
				return nil, nil
			}
			if _, ok := dirs[args[0]]; !ok {
				return nil, fmt.Errorf("cd: %s: No such directory", args[0])
			}
			sh.SetCwd(args[0])
			return nil, nil
		},
		Complete: func(sh *shell.Shell) []string {
			if sh.Cwd() != "" {
				return []string{".."}
			}
			return []string{"projects", "articles"}
		},
	})
	reg.Register(shell.Command{
		Name:    "cat",
		Summary: "Show a file",
		Run: func(context.Context, *shell.Shell, []string) ([]string, error) {
			return nil, nil
		},
		Complete: func(sh *shell.Shell) []string {
			return dirs[sh.Cwd()]
		},
	})

	return shell.New(reg, opts, nil)
}

func defaultOptions() shell.Options {
	return shell.OptionsFromConfig(config.DefaultConfig())
}

func texts(entries []shell.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

// =============================================================================
// Submit
// =============================================================================

func TestSubmitHelp(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.Submit(context.Background(), "help")

	sb := sh.Scrollback()
	require.Len(t, sb, 1+len(sh.Registry().Names()))
	assert.Equal(t, shell.Entry{Kind: shell.EntryInput, Text: "help", Path: "~"}, sb[0])
	for _, e := range sb[1:] {
		assert.Equal(t, shell.EntryOutput, e.Kind)
	}
	assert.Contains(t, sb[1].Text, "cat")
	assert.Equal(t, []string{"help"}, sh.History())
}

func TestSubmitUnknownCommand(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.Submit(context.Background(), "  nope  --flag ")

	sb := sh.Scrollback()
	require.Len(t, sb, 2)
	assert.Equal(t, shell.EntryError, sb[1].Kind)
	assert.Equal(t, "command not found:   nope  --flag ", sb[1].Text)
	assert.Equal(t, []string{"nope  --flag"}, sh.History())
}

func TestSubmitHandlerError(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.Submit(context.Background(), "fail")

	sb := sh.Scrollback()
	require.Len(t, sb, 2)
	assert.Equal(t, shell.Entry{Kind: shell.EntryError, Text: "fail: boom"}, sb[1])
}

func TestSubmitTagsInputWithCwd(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.Submit(context.Background(), "cd projects")
	sh.Submit(context.Background(), "echo hi")

	sb := sh.Scrollback()
	require.Len(t, sb, 3)
	assert.Equal(t, "~", sb[0].Path)
	assert.Equal(t, "~/projects", sb[1].Path)
	assert.Equal(t, "hi", sb[2].Text)
}

func TestSubmitEmptyLine(t *testing.T) {
	t.Run("echoed by default", func(t *testing.T) {
		sh := newShell(t, defaultOptions())
		sh.Submit(context.Background(), "   ")

		sb := sh.Scrollback()
		require.Len(t, sb, 1)
		assert.Equal(t, shell.EntryInput, sb[0].Kind)
		assert.Empty(t, sh.History())
	})

	t.Run("silent when disabled", func(t *testing.T) {
		opts := defaultOptions()
		opts.EchoEmptyInput = false
		sh := newShell(t, opts)
		sh.Submit(context.Background(), "")

		assert.Empty(t, sh.Scrollback())
		assert.Empty(t, sh.History())
	})
}

func TestSubmitResetsState(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.Submit(context.Background(), "echo a")
	sh.HistoryUp()
	sh.Submit(context.Background(), sh.Input())

	assert.Equal(t, "", sh.Input())
	assert.Equal(t, -1, sh.HistoryCursor())
	cands, idx := sh.Candidates()
	assert.Nil(t, cands)
	assert.Equal(t, -1, idx)
}

func TestTokenizeModes(t *testing.T) {
	words, err := shell.Tokenize("echo  a b", config.TokenizerLiteral)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "", "a", "b"}, words)

	words, err = shell.Tokenize(`echo "a b" c\ d`, config.TokenizerShell)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "a b", "c d"}, words)

	_, err = shell.Tokenize(`echo "open`, config.TokenizerShell)
	assert.Error(t, err)
}

func TestSubmitLiteralSplitKeepsEmptyArgs(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.Submit(context.Background(), "echo a  b")

	assert.Equal(t, []string{"echo a  b", "a", "", "b"}, texts(sh.Scrollback()))
}

func TestSubmitShellQuotingError(t *testing.T) {
	opts := defaultOptions()
	opts.Tokenizer = config.TokenizerShell
	sh := newShell(t, opts)
	sh.Submit(context.Background(), `echo "unterminated`)

	sb := sh.Scrollback()
	require.Len(t, sb, 2)
	assert.Equal(t, shell.EntryError, sb[1].Kind)
}

func TestScrollbackCap(t *testing.T) {
	opts := defaultOptions()
	opts.ScrollbackLines = 4
	sh := newShell(t, opts)
	for i := range 5 {
		sh.Submit(context.Background(), fmt.Sprintf("echo %d", i))
	}

	assert.Equal(t, []string{"echo 3", "3", "echo 4", "4"}, texts(sh.Scrollback()))
}

// =============================================================================
// History
// =============================================================================

func TestHistoryCap(t *testing.T) {
	opts := defaultOptions()
	opts.HistoryLimit = 3
	sh := newShell(t, opts)
	for i := range 4 {
		sh.Submit(context.Background(), fmt.Sprintf("echo %d", i))
	}

	h := sh.History()
	assert.Len(t, h, 3)
	assert.NotContains(t, h, "echo 0")
	assert.Equal(t, "echo 3", h[len(h)-1])
}

func TestHistoryRecall(t *testing.T) {
	sh := newShell(t, defaultOptions())
	for _, l := range []string{"echo a", "echo b", "echo c"} {
		sh.Submit(context.Background(), l)
	}

	sh.HistoryUp()
	assert.Equal(t, "echo c", sh.Input())
	assert.Equal(t, 0, sh.HistoryCursor())

	sh.HistoryUp()
	sh.HistoryUp()
	sh.HistoryUp()
	assert.Equal(t, "echo a", sh.Input(), "stops at the oldest entry")
	assert.Equal(t, 2, sh.HistoryCursor())

	sh.HistoryDown()
	assert.Equal(t, "echo b", sh.Input())

	sh.HistoryDown()
	sh.HistoryDown()
	assert.Equal(t, "", sh.Input())
	assert.Equal(t, -1, sh.HistoryCursor())

	sh.HistoryDown()
	assert.Equal(t, "", sh.Input())

	assert.Equal(t, []string{"echo a", "echo b", "echo c"}, sh.History(), "recall never mutates history")
}

func TestHistoryUpEmpty(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("draft")
	sh.HistoryUp()

	assert.Equal(t, "draft", sh.Input())
	assert.Equal(t, -1, sh.HistoryCursor())
}

// =============================================================================
// Completion
// =============================================================================

func TestCompleteSingleCandidate(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("ec")
	sh.Complete(false)

	assert.Equal(t, "echo ", sh.Input())
	cands, idx := sh.Candidates()
	assert.Nil(t, cands)
	assert.Equal(t, -1, idx)
}

func TestCompleteCyclesForward(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("h")
	sh.Complete(false)

	cands, idx := sh.Candidates()
	require.Equal(t, []string{"help", "history"}, cands)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "help", sh.Input())

	var seen []string
	for range 2 {
		sh.Complete(false)
		seen = append(seen, sh.Input())
	}
	assert.Equal(t, []string{"history", "help"}, seen)
}

func TestCompleteCyclesReverse(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.SetCwd("projects")
	sh.InsertText("cat p")
	sh.Complete(false)
	require.Equal(t, "cat printer.md", sh.Input())

	var seen []string
	for range 3 {
		sh.Complete(true)
		seen = append(seen, sh.Input())
	}
	assert.Equal(t, []string{"cat prism.md", "cat printer.md", "cat prism.md"}, seen)
}

func TestCompleteNoCandidates(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("zz")
	sh.Complete(false)

	assert.Equal(t, "zz", sh.Input())
	cands, _ := sh.Candidates()
	assert.Nil(t, cands)
}

func TestCompleteClearedByEdit(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("h")
	sh.Complete(false)
	sh.InsertText("x")

	cands, idx := sh.Candidates()
	assert.Nil(t, cands)
	assert.Equal(t, -1, idx)
	assert.Equal(t, "helpx", sh.Input())
}

func TestCancelCompletionRestartsCycle(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("h")
	sh.Complete(false)
	first := sh.Input()
	cands, _ := sh.Candidates()
	require.NotEmpty(t, cands)

	sh.CancelCompletion()
	cands, idx := sh.Candidates()
	assert.Nil(t, cands)
	assert.Equal(t, -1, idx)
	assert.Equal(t, first, sh.Input(), "cancelling keeps the completed input")
}

func TestCompleteAfterCdScenario(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.Submit(context.Background(), "cd projects")
	sh.InsertText("cat pr")
	sh.Complete(false)

	cands, _ := sh.Candidates()
	assert.Equal(t, []string{"printer.md", "prism.md"}, cands)
	for _, c := range cands {
		assert.Contains(t, dirs["projects"], c)
	}
}

func TestCompleteDirectory(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("cd pro")
	sh.Complete(false)
	assert.Equal(t, "cd projects ", sh.Input())

	sh.Submit(context.Background(), "cd projects")
	sh.InsertText("cd ")
	sh.Complete(false)
	assert.Equal(t, "cd .. ", sh.Input())
}

func TestCompleteIgnoresCommandsWithoutCompleter(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("echo a")
	sh.Complete(false)

	assert.Equal(t, "echo a", sh.Input())
}

func TestCompleteDisabled(t *testing.T) {
	opts := defaultOptions()
	opts.Autocomplete = false
	sh := newShell(t, opts)
	sh.InsertText("ec")
	sh.Complete(false)

	assert.Equal(t, "ec", sh.Input())
}

// =============================================================================
// Editing
// =============================================================================

func TestInterrupt(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("h")
	sh.Complete(false)
	sh.Interrupt()

	assert.Equal(t, "", sh.Input())
	assert.Empty(t, sh.History())
	assert.Empty(t, sh.Scrollback())
	cands, _ := sh.Candidates()
	assert.Nil(t, cands)
}

func TestInsertTextAndBackspace(t *testing.T) {
	sh := newShell(t, defaultOptions())
	sh.InsertText("héllo\nx\x07")
	assert.Equal(t, "héllo x", sh.Input())

	sh.Backspace()
	sh.Backspace()
	assert.Equal(t, "héllo", sh.Input())

	sh.SetInput("")
	sh.Backspace()
	assert.Equal(t, "", sh.Input())
}

func TestRegistry(t *testing.T) {
	reg := shell.NewRegistry()
	run := func(context.Context, *shell.Shell, []string) ([]string, error) { return nil, nil }
	reg.Register(shell.Command{Name: "b", Run: run})
	reg.Register(shell.Command{Name: "a", Run: run})

	assert.Equal(t, []string{"a", "b"}, reg.Names())
	_, ok := reg.Lookup("a")
	assert.True(t, ok)

	assert.Panics(t, func() { reg.Register(shell.Command{Name: "a", Run: run}) })
	assert.Panics(t, func() { reg.Register(shell.Command{Name: "bad name", Run: run}) })
	assert.Panics(t, func() { reg.Register(shell.Command{Name: "c"}) })

	_, err := reg.Dispatch(context.Background(), nil, "zz", nil)
	assert.ErrorIs(t, err, shell.ErrUnknownCommand)
}
