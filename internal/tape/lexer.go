package tape

import (
	"strings"
	"unicode"
)

// Lexer tokenizes .tape file input
type Lexer struct {
	input   string
	pos     int  // current position
	nextPos int  // next position
	ch      byte // current character
	line    int  // current line
	column  int  // current column
}

// NewLexer creates a new Lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar reads the next character and updates position tracking
func (l *Lexer) readChar() {
	if l.pos < len(l.input) && l.nextPos > 0 && l.input[l.pos] == '\n' {
		l.line++
		l.column = 0
	}

	if l.nextPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.nextPos]
	}

	l.pos = l.nextPos
	l.nextPos++
	l.column++
}

// skipWhitespace skips spaces and tabs (not newlines)
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment skips a comment line (from # to end of line)
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readString reads a quoted string (single, double, or backtick). The second
// result is false when the closing quote is missing.
func (l *Lexer) readString(quote byte) (string, bool) {
	var sb strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' && quote != '`' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 0:
				return sb.String(), false
			default:
				sb.WriteByte(l.ch)
			}
		} else {
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.ch != quote {
		return sb.String(), false
	}
	l.readChar() // skip closing quote
	return sb.String(), true
}

// readWhile consumes characters while pred holds
func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.pos
	for l.ch != 0 && pred(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// NextToken returns the next token in the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF

	case '\n':
		tok.Type = TOKEN_NEWLINE
		tok.Literal = "\n"
		l.readChar()

	case '#':
		l.skipComment()
		return l.NextToken()

	case '+':
		tok.Type = TOKEN_PLUS
		tok.Literal = "+"
		l.readChar()

	case '@':
		tok.Type = TOKEN_AT
		tok.Literal = "@"
		l.readChar()

	case '"', '\'', '`':
		literal, ok := l.readString(l.ch)
		tok.Type = TOKEN_STRING
		if !ok {
			tok.Type = TOKEN_ILLEGAL
		}
		tok.Literal = literal

	default:
		switch {
		case isDigit(l.ch):
			num := l.readWhile(func(c byte) bool { return isDigit(c) || c == '.' })
			if isLetter(l.ch) {
				tok.Type = TOKEN_DURATION
				tok.Literal = num + l.readWhile(isLetter)
			} else {
				tok.Type = TOKEN_NUMBER
				tok.Literal = num
			}
		case isIdentifierChar(l.ch):
			tok.Literal = l.readWhile(isIdentifierChar)
			tok.Type = LookupKeyword(tok.Literal)
		default:
			tok.Type = TOKEN_ILLEGAL
			tok.Literal = string(l.ch)
			l.readChar()
		}
	}

	return tok
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

// isIdentifierChar returns true if ch is valid in an identifier. Single
// punctuation keys such as "[" are accepted so Ctrl+[ can be written.
func isIdentifierChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || strings.IndexByte("[]-=;,./\\", ch) >= 0
}

// Tokenize returns all tokens from the input
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}
