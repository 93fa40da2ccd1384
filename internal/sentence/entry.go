package sentence

import "fmt"

type Kind int

const (
	// KindWord is a word ID issued by the word model.
	KindWord Kind = iota
	// KindSystem indexes the system-defined single characters.
	KindSystem
	// KindUser indexes the session's user-defined words.
	KindUser
)

// Entry is one addressable unit of the sentence.
type Entry struct {
	Kind  Kind
	Index int
}

func Word(id int) Entry  { return Entry{Kind: KindWord, Index: id} }
func System(i int) Entry { return Entry{Kind: KindSystem, Index: i} }
func User(i int) Entry   { return Entry{Kind: KindUser, Index: i} }

func (e Entry) String() string {
	switch e.Kind {
	case KindWord:
		return fmt.Sprintf("word(%d)", e.Index)
	case KindSystem:
		return fmt.Sprintf("system(%d)", e.Index)
	case KindUser:
		return fmt.Sprintf("user(%d)", e.Index)
	default:
		return fmt.Sprintf("invalid(%d)", e.Index)
	}
}

// Encode returns the signed form of e: word IDs as is, everything else as
// -(1+offset) into system characters followed by user words.
func (e Entry) Encode(systemCount int) int {
	switch e.Kind {
	case KindSystem:
		return -(1 + e.Index)
	case KindUser:
		return -(1 + systemCount + e.Index)
	default:
		return e.Index
	}
}

// Decode is the inverse of Entry.Encode.
func Decode(value, systemCount int) Entry {
	if value >= 0 {
		return Word(value)
	}
	offset := -value - 1
	if offset < systemCount {
		return System(offset)
	}
	return User(offset - systemCount)
}
