package tape

// TokenType represents the type of a token in a .tape file
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Symbols
	TOKEN_PLUS TokenType = "PLUS"
	TOKEN_AT   TokenType = "AT"

	// Commands - Input
	TOKEN_TYPE      TokenType = "Type"
	TOKEN_PASTE     TokenType = "Paste"
	TOKEN_SLEEP     TokenType = "Sleep"
	TOKEN_ENTER     TokenType = "Enter"
	TOKEN_SPACE     TokenType = "Space"
	TOKEN_BACKSPACE TokenType = "Backspace"
	TOKEN_DELETE    TokenType = "Delete"
	TOKEN_TAB       TokenType = "Tab"
	TOKEN_ESCAPE    TokenType = "Escape"

	// Commands - Navigation
	TOKEN_UP        TokenType = "Up"
	TOKEN_DOWN      TokenType = "Down"
	TOKEN_LEFT      TokenType = "Left"
	TOKEN_RIGHT     TokenType = "Right"
	TOKEN_HOME      TokenType = "Home"
	TOKEN_END       TokenType = "End"
	TOKEN_PAGE_UP   TokenType = "PageUp"
	TOKEN_PAGE_DOWN TokenType = "PageDown"

	// Commands - Modifiers
	TOKEN_CTRL    TokenType = "Ctrl"
	TOKEN_ALT     TokenType = "Alt"
	TOKEN_SHIFT   TokenType = "Shift"
	TOKEN_RELEASE TokenType = "Release"

	// Commands - Pointer and screen
	TOKEN_CLICK       TokenType = "Click"
	TOKEN_SCROLL_UP   TokenType = "ScrollUp"
	TOKEN_SCROLL_DOWN TokenType = "ScrollDown"
	TOKEN_RESIZE      TokenType = "Resize"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type starts a command
func (tt TokenType) IsCommand() bool {
	_, ok := commandTokens[tt]
	return ok || tt.IsModifier()
}

// IsModifier returns true if the token is a modifier key
func (tt TokenType) IsModifier() bool {
	switch tt {
	case TOKEN_CTRL, TOKEN_ALT, TOKEN_SHIFT:
		return true
	}
	return false
}

// IsNamedKey returns true if the token names a key that can follow a
// modifier, as in Ctrl+Up or Alt+Tab
func (tt TokenType) IsNamedKey() bool {
	_, ok := keyNames[tt]
	return ok
}

// commandTokens maps command keywords to the command they produce.
var commandTokens = map[TokenType]CommandType{
	TOKEN_TYPE:        CommandType_Type,
	TOKEN_PASTE:       CommandType_Paste,
	TOKEN_SLEEP:       CommandType_Sleep,
	TOKEN_ENTER:       CommandType_Enter,
	TOKEN_SPACE:       CommandType_Space,
	TOKEN_BACKSPACE:   CommandType_Backspace,
	TOKEN_DELETE:      CommandType_Delete,
	TOKEN_TAB:         CommandType_Tab,
	TOKEN_ESCAPE:      CommandType_Escape,
	TOKEN_UP:          CommandType_Up,
	TOKEN_DOWN:        CommandType_Down,
	TOKEN_LEFT:        CommandType_Left,
	TOKEN_RIGHT:       CommandType_Right,
	TOKEN_HOME:        CommandType_Home,
	TOKEN_END:         CommandType_End,
	TOKEN_PAGE_UP:     CommandType_PageUp,
	TOKEN_PAGE_DOWN:   CommandType_PageDown,
	TOKEN_RELEASE:     CommandType_Release,
	TOKEN_CLICK:       CommandType_Click,
	TOKEN_SCROLL_UP:   CommandType_ScrollUp,
	TOKEN_SCROLL_DOWN: CommandType_ScrollDown,
	TOKEN_RESIZE:      CommandType_Resize,
}

// keyNames maps key keywords to their keystroke names.
var keyNames = map[TokenType]string{
	TOKEN_ENTER:     "enter",
	TOKEN_SPACE:     "space",
	TOKEN_BACKSPACE: "backspace",
	TOKEN_DELETE:    "delete",
	TOKEN_TAB:       "tab",
	TOKEN_ESCAPE:    "esc",
	TOKEN_UP:        "up",
	TOKEN_DOWN:      "down",
	TOKEN_LEFT:      "left",
	TOKEN_RIGHT:     "right",
	TOKEN_HOME:      "home",
	TOKEN_END:       "end",
	TOKEN_PAGE_UP:   "pgup",
	TOKEN_PAGE_DOWN: "pgdown",
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	"Type":      TOKEN_TYPE,
	"Paste":     TOKEN_PASTE,
	"Sleep":     TOKEN_SLEEP,
	"Enter":     TOKEN_ENTER,
	"Space":     TOKEN_SPACE,
	"Backspace": TOKEN_BACKSPACE,
	"Delete":    TOKEN_DELETE,
	"Tab":       TOKEN_TAB,
	"Escape":    TOKEN_ESCAPE,

	"Up":       TOKEN_UP,
	"Down":     TOKEN_DOWN,
	"Left":     TOKEN_LEFT,
	"Right":    TOKEN_RIGHT,
	"Home":     TOKEN_HOME,
	"End":      TOKEN_END,
	"PageUp":   TOKEN_PAGE_UP,
	"PageDown": TOKEN_PAGE_DOWN,

	"Ctrl":    TOKEN_CTRL,
	"Alt":     TOKEN_ALT,
	"Shift":   TOKEN_SHIFT,
	"Release": TOKEN_RELEASE,

	"Click":      TOKEN_CLICK,
	"ScrollUp":   TOKEN_SCROLL_UP,
	"ScrollDown": TOKEN_SCROLL_DOWN,
	"Resize":     TOKEN_RESIZE,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
