package commands

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/x/ansi"
)

// Highlight renders source as ANSI colored lines. The lexer is picked from
// the file name, then from the content. On failure the plain lines are
// returned.
func Highlight(name, source, style string) []string {
	lexer := ""
	if l := lexers.Match(name); l != nil {
		lexer = l.Config().Name
	} else if l := lexers.Analyse(source); l != nil {
		lexer = l.Config().Name
	}

	var b strings.Builder
	if err := quick.Highlight(&b, source, lexer, "terminal256", style); err != nil {
		return splitLines(source)
	}
	return splitLines(b.String())
}

// splitLines splits s into lines, dropping trailing blank lines. Escape
// codes left on a dropped line are carried to the last kept one.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 1 {
		last := lines[len(lines)-1]
		if strings.TrimSpace(ansi.Strip(last)) != "" {
			break
		}
		lines = lines[:len(lines)-1]
		lines[len(lines)-1] += last
	}
	return lines
}
