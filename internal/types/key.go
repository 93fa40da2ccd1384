package types

type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyLetter
	KeyDigit
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeyCommitWeak
	KeyCommitStrong
	KeyStopPartial
	KeyStopFull
	KeyCombine
)

var keyNames = map[KeyKind]string{
	KeyUnknown:      "unknown",
	KeyLetter:       "letter",
	KeyDigit:        "digit",
	KeyEscape:       "escape",
	KeyBackspace:    "backspace",
	KeyDelete:       "delete",
	KeyLeft:         "left",
	KeyRight:        "right",
	KeyUp:           "up",
	KeyDown:         "down",
	KeyTab:          "tab",
	KeyCommitWeak:   "commit-weak",
	KeyCommitStrong: "commit-strong",
	KeyStopPartial:  "stop-partial",
	KeyStopFull:     "stop-full",
	KeyCombine:      "combine",
}

func (k KeyKind) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "invalid"
}

// KeyEvent is a keystroke already normalized by the windowing layer.
//
// Char holds the letter for KeyLetter (lowercase; Shift carries case), and
// the raw character for KeyCombine. Digit holds 0-9 for KeyDigit. Code is the
// system-key code for KeyUnknown. The two visibility flags are the focus
// signal: which surface the host currently shows.
type KeyEvent struct {
	Kind             KeyKind
	Char             rune
	Digit            int
	Code             int
	Shift            bool
	CandidateVisible bool
	HelpVisible      bool
}

func Letter(ch rune, shift bool) KeyEvent {
	return KeyEvent{Kind: KeyLetter, Char: ch, Shift: shift}
}

func Digit(d int) KeyEvent {
	return KeyEvent{Kind: KeyDigit, Digit: d, Char: rune('0' + d)}
}

func Unknown(code int) KeyEvent {
	return KeyEvent{Kind: KeyUnknown, Code: code}
}

func Special(kind KeyKind) KeyEvent {
	return KeyEvent{Kind: kind}
}

// WithFocus returns a copy of ev carrying the given visibility flags.
func (ev KeyEvent) WithFocus(candidateVisible, helpVisible bool) KeyEvent {
	ev.CandidateVisible = candidateVisible
	ev.HelpVisible = helpVisible
	return ev
}
