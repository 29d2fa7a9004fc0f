package shell

import (
	"strings"

	"github.com/Gaurav-Gosain/folio/internal/config"
	"github.com/kballard/go-shellquote"
)

// Tokenize splits a trimmed command line into words.
//
// The literal mode splits on every single space, so "ls  x" yields
// ["ls", "", "x"]. The shell mode honours quotes and backslash escapes.
func Tokenize(line, mode string) ([]string, error) {
	if line == "" {
		return nil, nil
	}
	if mode == config.TokenizerShell {
		return shellquote.Split(line)
	}
	return strings.Split(line, " "), nil
}
