package tape

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	tea "charm.land/bubbletea/v2"
)

// namedKeys maps keystroke names to key codes.
var namedKeys = map[string]rune{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"esc":       tea.KeyEscape,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"space":     tea.KeySpace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
}

// modifierKeys maps Release arguments to the key reported on release.
var modifierKeys = map[string]rune{
	"ctrl":  tea.KeyLeftCtrl,
	"alt":   tea.KeyLeftAlt,
	"shift": tea.KeyLeftShift,
}

// KeyPress builds the key press a terminal would report for kc.
func KeyPress(kc KeyCombo) tea.KeyPressMsg {
	var k tea.Key
	if kc.Ctrl {
		k.Mod |= tea.ModCtrl
	}
	if kc.Alt {
		k.Mod |= tea.ModAlt
	}
	if kc.Shift {
		k.Mod |= tea.ModShift
	}

	if code, ok := namedKeys[kc.Key]; ok {
		k.Code = code
		if code == tea.KeySpace && !kc.Ctrl && !kc.Alt {
			k.Text = " "
		}
		return tea.KeyPressMsg(k)
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(kc.Key, "f")); err == nil && strings.HasPrefix(kc.Key, "f") {
		k.Code = tea.KeyF1 + rune(n-1)
		return tea.KeyPressMsg(k)
	}

	r := []rune(kc.Key)[0]
	switch {
	case kc.Ctrl || kc.Alt:
		k.Code = unicode.ToLower(r)
		if unicode.IsUpper(r) {
			k.Mod |= tea.ModShift
		}
	case kc.Shift:
		k.Code = unicode.ToLower(r)
		k.ShiftedCode = unicode.ToUpper(r)
		k.Text = string(k.ShiftedCode)
	default:
		k.Code = r
		k.Text = string(r)
	}
	return tea.KeyPressMsg(k)
}

// runeMsg is the key press for one typed character.
func runeMsg(r rune) tea.Msg {
	switch r {
	case '\n', '\r':
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case '\t':
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case ' ':
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// ToMsgs converts a command into the Bubble Tea messages a terminal would
// deliver for it, repeats included. Sleep yields no messages.
func ToMsgs(cmd Command) []tea.Msg {
	var once []tea.Msg

	switch cmd.Type {
	case CommandType_Type:
		for _, r := range strings.Join(cmd.Args, "") {
			once = append(once, runeMsg(r))
		}

	case CommandType_Paste:
		once = append(once, tea.PasteMsg{Content: strings.Join(cmd.Args, "")})

	case CommandType_KeyCombo:
		if len(cmd.Args) == 0 {
			return nil
		}
		kc, err := ParseKeyCombo(cmd.Args[0])
		if err != nil {
			return nil
		}
		once = append(once, KeyPress(kc))

	case CommandType_Release:
		if len(cmd.Args) == 0 {
			return nil
		}
		code, ok := modifierKeys[strings.ToLower(cmd.Args[0])]
		if !ok {
			return nil
		}
		once = append(once, tea.KeyReleaseMsg{Code: code})

	case CommandType_Click, CommandType_ScrollUp, CommandType_ScrollDown:
		x, y, ok := pair(cmd.Args)
		if !ok {
			return nil
		}
		switch cmd.Type {
		case CommandType_Click:
			once = append(once,
				tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft},
				tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
		case CommandType_ScrollUp:
			once = append(once, tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelUp})
		default:
			once = append(once, tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelDown})
		}

	case CommandType_Resize:
		w, h, ok := pair(cmd.Args)
		if !ok {
			return nil
		}
		once = append(once, tea.WindowSizeMsg{Width: w, Height: h})

	case CommandType_Sleep:
		return nil

	default:
		for tt, ct := range commandTokens {
			if ct == cmd.Type && tt.IsNamedKey() {
				once = append(once, KeyPress(KeyCombo{Key: keyNames[tt]}))
				break
			}
		}
	}

	repeat := max(cmd.Repeat, 1)
	msgs := make([]tea.Msg, 0, len(once)*repeat)
	for range repeat {
		msgs = append(msgs, once...)
	}
	return msgs
}

func pair(args []string) (int, int, bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	a, err1 := strconv.Atoi(args[0])
	b, err2 := strconv.Atoi(args[1])
	return a, b, err1 == nil && err2 == nil
}

// Player steps through a script in real time.
type Player struct {
	commands []Command
	index    int // Current command index

	// TypingDelay is the pause between typed characters when a Type
	// command has no @<duration> of its own.
	TypingDelay time.Duration
}

// NewPlayer creates a new script player from a list of commands
func NewPlayer(commands []Command) *Player {
	return &Player{
		commands:    commands,
		TypingDelay: 50 * time.Millisecond,
	}
}

// IsFinished returns true if all commands have been executed
func (p *Player) IsFinished() bool {
	return p.index >= len(p.commands)
}

// CurrentIndex returns the current command index
func (p *Player) CurrentIndex() int {
	return p.index
}

// TotalCommands returns the total number of commands
func (p *Player) TotalCommands() int {
	return len(p.commands)
}

// Progress returns a value between 0 and 100 representing playback progress
func (p *Player) Progress() int {
	if len(p.commands) == 0 {
		return 100
	}
	return (p.index * 100) / len(p.commands)
}

// Reset rewinds the player to the beginning
func (p *Player) Reset() {
	p.index = 0
}

// Play sends every remaining command to send, honouring Sleep, per-command
// delays and the typing delay. It stops early when ctx is done.
func (p *Player) Play(ctx context.Context, send func(tea.Msg)) error {
	for !p.IsFinished() {
		cmd := p.commands[p.index]

		// Type@<duration> sets the typing speed; on other commands the
		// duration is a pause before the command.
		gap := time.Duration(0)
		if cmd.Type == CommandType_Type {
			gap = p.TypingDelay
			if cmd.Delay > 0 {
				gap = cmd.Delay
			}
		} else if err := wait(ctx, cmd.Delay); err != nil {
			return err
		}

		msgs := ToMsgs(cmd)
		for i, msg := range msgs {
			if i > 0 {
				if err := wait(ctx, gap); err != nil {
					return err
				}
			}
			send(msg)
		}
		p.index++
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// String returns a debug string representation
func (p *Player) String() string {
	return fmt.Sprintf("Player{index=%d/%d}", p.index, len(p.commands))
}
