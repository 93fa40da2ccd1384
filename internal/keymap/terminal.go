// Package keymap turns raw terminal input into engine key events and holds
// the direct-entry layouts that back the engine's system keys.
package keymap

import (
	"github.com/eiannone/keyboard"

	"mmtype/internal/types"
)

// FromRune maps a printable character to a key event.
func FromRune(ch rune) types.KeyEvent {
	switch {
	case ch >= 'a' && ch <= 'z', ch == ';':
		return types.Letter(ch, false)
	case ch >= 'A' && ch <= 'Z':
		return types.Letter(ch+('a'-'A'), true)
	case ch >= '0' && ch <= '9':
		return types.Digit(int(ch - '0'))
	case ch == ',':
		return types.Special(types.KeyStopPartial)
	case ch == '.':
		return types.Special(types.KeyStopFull)
	case ch == '`', ch == '~':
		return types.KeyEvent{Kind: types.KeyCombine, Char: ch}
	case ch == ' ':
		return types.Special(types.KeyCommitWeak)
	default:
		return types.Unknown(int(ch))
	}
}

var specialKeys = map[keyboard.Key]types.KeyKind{
	keyboard.KeyEsc:        types.KeyEscape,
	keyboard.KeyBackspace:  types.KeyBackspace,
	keyboard.KeyBackspace2: types.KeyBackspace,
	keyboard.KeyDelete:     types.KeyDelete,
	keyboard.KeyArrowLeft:  types.KeyLeft,
	keyboard.KeyArrowRight: types.KeyRight,
	keyboard.KeyArrowUp:    types.KeyUp,
	keyboard.KeyArrowDown:  types.KeyDown,
	keyboard.KeyTab:        types.KeyTab,
	keyboard.KeySpace:      types.KeyCommitWeak,
	keyboard.KeyEnter:      types.KeyCommitStrong,
}

// FromTerminal maps what keyboard.GetKey returned. It reports false for keys
// the engine has no use for.
func FromTerminal(ch rune, key keyboard.Key) (types.KeyEvent, bool) {
	if ch != 0 {
		return FromRune(ch), true
	}
	if kind, ok := specialKeys[key]; ok {
		return types.Special(kind), true
	}
	return types.KeyEvent{}, false
}

// IsQuit reports whether key ends an interactive session.
func IsQuit(key keyboard.Key) bool {
	return key == keyboard.KeyCtrlC || key == keyboard.KeyCtrlD
}
