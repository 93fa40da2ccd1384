package types

import (
	"fmt"
	"strings"
)

type InputMode int

const (
	ModeRoman InputMode = iota
	ModeDirect
)

func (m InputMode) String() string {
	switch m {
	case ModeRoman:
		return "roman"
	case ModeDirect:
		return "direct"
	default:
		return "unknown"
	}
}

func ParseInputMode(value string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "roman", "phonetic":
		return ModeRoman, nil
	case "direct", "help":
		return ModeDirect, nil
	default:
		return ModeRoman, fmt.Errorf("unknown input mode %q", value)
	}
}

// ControlKeyStyle decides what Tab and a weak commit do while candidates are shown.
type ControlKeyStyle int

const (
	// StyleJapanese: space walks the selection, Tab commits it. A rejected
	// letter commits the selection and is retried.
	StyleJapanese ControlKeyStyle = iota
	// StyleChinese: Tab walks the selection, space commits it. A rejected
	// letter is dropped.
	StyleChinese
)

func (s ControlKeyStyle) String() string {
	switch s {
	case StyleJapanese:
		return "japanese"
	case StyleChinese:
		return "chinese"
	default:
		return "unknown"
	}
}

func ParseControlKeyStyle(value string) (ControlKeyStyle, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "japanese":
		return StyleJapanese, nil
	case "chinese":
		return StyleChinese, nil
	default:
		return StyleJapanese, fmt.Errorf("unknown control key style %q", value)
	}
}
