package tape

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ParseError is a syntax error at a line of a tape file.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parser parses .tape files into commands
type Parser struct {
	lexer  *Lexer
	curTok Token
	errors []error
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.lexer.NextToken()
}

// Parse parses the entire tape file. Lines with errors are skipped and
// reported by Errors.
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if ok && !p.atLineEnd() {
			p.errorf("unexpected %s after %s", describe(p.curTok), cmd.String())
			ok = false
		}
		if ok {
			commands = append(commands, cmd)
		}
		p.skipLine()
	}

	return commands
}

// Errors returns the syntax errors found so far
func (p *Parser) Errors() []error {
	return p.errors
}

func (p *Parser) atLineEnd() bool {
	return p.curTok.Type == TOKEN_NEWLINE || p.curTok.Type == TOKEN_EOF
}

// skipLine drops what is left of the current line.
func (p *Parser) skipLine() {
	for !p.atLineEnd() {
		p.nextToken()
	}
}

func (p *Parser) parseCommand() (Command, bool) {
	tok := p.curTok
	cmd := Command{Line: tok.Line, Repeat: 1}

	switch {
	case tok.Type.IsModifier(), tok.Type == TOKEN_IDENTIFIER && isFunctionKey(tok.Literal):
		return p.parseKeyCombo(cmd)
	case tok.Type == TOKEN_TYPE, tok.Type == TOKEN_PASTE:
		return p.parseText(cmd)
	case tok.Type == TOKEN_SLEEP:
		return p.parseSleep(cmd)
	case tok.Type == TOKEN_RELEASE:
		return p.parseRelease(cmd)
	case tok.Type == TOKEN_CLICK, tok.Type == TOKEN_SCROLL_UP, tok.Type == TOKEN_SCROLL_DOWN:
		return p.parsePointer(cmd)
	case tok.Type == TOKEN_RESIZE:
		return p.parseResize(cmd)
	case tok.Type.IsNamedKey():
		cmd.Type = commandTokens[tok.Type]
		cmd.Raw = tok.Literal
		p.nextToken()
		return cmd, p.parseDelay(&cmd) && p.parseRepeat(&cmd)
	default:
		p.errorf("unknown command %s", describe(tok))
	}
	return cmd, false
}

// parseDelay parses an optional @<duration> suffix.
func (p *Parser) parseDelay(cmd *Command) bool {
	if p.curTok.Type != TOKEN_AT {
		return true
	}
	p.nextToken()
	d, ok := p.expectDuration()
	cmd.Delay = d
	return ok
}

// parseRepeat parses an optional repeat count.
func (p *Parser) parseRepeat(cmd *Command) bool {
	if p.curTok.Type != TOKEN_NUMBER {
		return true
	}
	n, ok := p.expectInt()
	if ok && n < 1 {
		p.errorf("repeat count must be positive, got %d", n)
		return false
	}
	cmd.Repeat = n
	return ok
}

// parseText parses Type "text" and Paste "text".
func (p *Parser) parseText(cmd Command) (Command, bool) {
	name := p.curTok.Literal
	cmd.Type = commandTokens[p.curTok.Type]
	p.nextToken()

	if !p.parseDelay(&cmd) {
		return cmd, false
	}
	if p.curTok.Type != TOKEN_STRING {
		if p.curTok.Type == TOKEN_ILLEGAL {
			p.errorf("unterminated string")
		} else {
			p.errorf("%s expects a string, got %s", name, describe(p.curTok))
		}
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Raw = fmt.Sprintf("%s %q", name, p.curTok.Literal)
	p.nextToken()
	return cmd, true
}

// parseSleep parses Sleep <duration>.
func (p *Parser) parseSleep(cmd Command) (Command, bool) {
	cmd.Type = CommandType_Sleep
	p.nextToken()

	lit := p.curTok.Literal
	d, ok := p.expectDuration()
	if !ok {
		return cmd, false
	}
	cmd.Args = []string{lit}
	cmd.Delay = d
	cmd.Raw = "Sleep " + lit
	return cmd, true
}

// parseKeyCombo parses Ctrl+X, Alt+Tab, Ctrl+Shift+Up and so on.
func (p *Parser) parseKeyCombo(cmd Command) (Command, bool) {
	cmd.Type = CommandType_KeyCombo

	combo := ""
	for p.curTok.Type.IsModifier() {
		combo += p.curTok.Literal
		p.nextToken()
		if p.curTok.Type != TOKEN_PLUS {
			p.errorf("expected + after %s, got %s", combo, describe(p.curTok))
			return cmd, false
		}
		combo += "+"
		p.nextToken()
	}

	switch tok := p.curTok; {
	case tok.Type == TOKEN_IDENTIFIER && len([]rune(tok.Literal)) == 1,
		tok.Type == TOKEN_NUMBER && len(tok.Literal) == 1,
		tok.Type.IsNamedKey(),
		tok.Type == TOKEN_PLUS:
		combo += tok.Literal
	case tok.Type == TOKEN_IDENTIFIER && isFunctionKey(tok.Literal):
		combo += tok.Literal
	default:
		p.errorf("expected key after %s, got %s", combo, describe(tok))
		return cmd, false
	}
	p.nextToken()

	if _, err := ParseKeyCombo(combo); err != nil {
		p.errorf("%v", err)
		return cmd, false
	}
	cmd.Args = []string{combo}
	cmd.Raw = combo
	return cmd, p.parseDelay(&cmd) && p.parseRepeat(&cmd)
}

// parseRelease parses Release Alt.
func (p *Parser) parseRelease(cmd Command) (Command, bool) {
	cmd.Type = CommandType_Release
	p.nextToken()
	if !p.curTok.Type.IsModifier() {
		p.errorf("Release expects Ctrl, Alt or Shift, got %s", describe(p.curTok))
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Raw = "Release " + p.curTok.Literal
	p.nextToken()
	return cmd, p.parseDelay(&cmd)
}

// parsePointer parses Click x y and ScrollUp/ScrollDown x y [count].
func (p *Parser) parsePointer(cmd Command) (Command, bool) {
	name := p.curTok.Literal
	cmd.Type = commandTokens[p.curTok.Type]
	p.nextToken()
	if !p.parseDelay(&cmd) {
		return cmd, false
	}

	x, ok := p.expectInt()
	if !ok {
		return cmd, false
	}
	y, ok := p.expectInt()
	if !ok {
		return cmd, false
	}
	cmd.Args = []string{strconv.Itoa(x), strconv.Itoa(y)}
	cmd.Raw = fmt.Sprintf("%s %d %d", name, x, y)
	if cmd.Type == CommandType_Click {
		return cmd, true
	}
	return cmd, p.parseRepeat(&cmd)
}

// parseResize parses Resize <width> <height>.
func (p *Parser) parseResize(cmd Command) (Command, bool) {
	cmd.Type = CommandType_Resize
	p.nextToken()

	w, ok := p.expectInt()
	if !ok {
		return cmd, false
	}
	h, ok := p.expectInt()
	if !ok {
		return cmd, false
	}
	if w < 1 || h < 1 {
		p.errorf("Resize expects a positive size, got %dx%d", w, h)
		return cmd, false
	}
	cmd.Args = []string{strconv.Itoa(w), strconv.Itoa(h)}
	cmd.Raw = fmt.Sprintf("Resize %d %d", w, h)
	return cmd, true
}

func (p *Parser) expectInt() (int, bool) {
	if p.curTok.Type != TOKEN_NUMBER {
		p.errorf("expected a number, got %s", describe(p.curTok))
		return 0, false
	}
	n, err := strconv.Atoi(p.curTok.Literal)
	if err != nil {
		p.errorf("invalid number %q", p.curTok.Literal)
		return 0, false
	}
	p.nextToken()
	return n, true
}

func (p *Parser) expectDuration() (time.Duration, bool) {
	if p.curTok.Type != TOKEN_DURATION {
		p.errorf("expected a duration, got %s", describe(p.curTok))
		return 0, false
	}
	d, err := time.ParseDuration(p.curTok.Literal)
	if err != nil || d < 0 {
		p.errorf("invalid duration %q", p.curTok.Literal)
		return 0, false
	}
	p.nextToken()
	return d, true
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of file"
	case TOKEN_NEWLINE:
		return "end of line"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// isFunctionKey reports whether name is F1 through F12.
func isFunctionKey(name string) bool {
	if len(name) < 2 || (name[0] != 'F' && name[0] != 'f') {
		return false
	}
	n, err := strconv.Atoi(name[1:])
	return err == nil && n >= 1 && n <= 12
}

// ParseFile parses tape source. It returns every command that parsed,
// and the syntax errors joined together, if any.
func ParseFile(content string) ([]Command, error) {
	p := NewParser(NewLexer(content))
	commands := p.Parse()
	return commands, errors.Join(p.Errors()...)
}

// Load reads and parses a tape file from disk.
func Load(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tape: %w", err)
	}
	return ParseFile(string(data))
}
