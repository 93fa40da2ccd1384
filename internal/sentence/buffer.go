// Package sentence keeps the words composed so far and the edit cursor
// between them.
package sentence

import (
	"iter"
	"slices"
	"strings"

	"mmtype/internal/trigram"
)

// Model is the part of the word model the sentence talks to.
type Model interface {
	WordString(id int) string
	SetTrigramContext(prev2, prev1 int)
}

// Buffer is an ordered list of entries with a cursor. The cursor is kept as
// the number of entries before it; every mutation pushes the new trigram
// context to the model before returning.
type Buffer struct {
	entries     []Entry
	pos         int
	model       Model
	systemChars []rune
	userWords   *UserWords
}

func NewBuffer(model Model, systemChars []rune, userWords *UserWords) *Buffer {
	if userWords == nil {
		userWords = &UserWords{}
	}
	b := &Buffer{model: model, systemChars: systemChars, userWords: userWords}
	b.UpdateTrigrams()
	return b
}

func (b *Buffer) Len() int { return len(b.entries) }

// CursorIndex returns -1 when the cursor is after the last entry, otherwise
// the index of the entry right after the cursor.
func (b *Buffer) CursorIndex() int {
	if b.pos == len(b.entries) {
		return -1
	}
	return b.pos
}

// Cursor returns the number of entries before the cursor.
func (b *Buffer) Cursor() int { return b.pos }

func (b *Buffer) AtEnd() bool { return b.pos == len(b.entries) }

func (b *Buffer) SystemCount() int { return len(b.systemChars) }

func (b *Buffer) UserWords() *UserWords { return b.userWords }

// Insert places e before the cursor; the cursor ends up after it.
func (b *Buffer) Insert(e Entry) {
	b.entries = slices.Insert(b.entries, b.pos, e)
	b.pos++
	b.UpdateTrigrams()
}

// InsertEncoded inserts an entry given in its signed form.
func (b *Buffer) InsertEncoded(value int) {
	b.Insert(Decode(value, len(b.systemChars)))
}

func (b *Buffer) DeletePrev() bool {
	if b.pos == 0 {
		return false
	}
	b.entries = slices.Delete(b.entries, b.pos-1, b.pos)
	b.pos--
	b.UpdateTrigrams()
	return true
}

func (b *Buffer) DeleteNext() bool {
	if b.pos >= len(b.entries) {
		return false
	}
	b.entries = slices.Delete(b.entries, b.pos, b.pos+1)
	b.UpdateTrigrams()
	return true
}

// MoveCursorRight moves the cursor by amount entries, clamped to the ends.
func (b *Buffer) MoveCursorRight(amount int) bool {
	return b.MoveCursorRightLoop(amount, false)
}

// MoveCursorRightLoop is MoveCursorRight, except that with loop set a move
// past one end lands on the other end.
func (b *Buffer) MoveCursorRightLoop(amount int, loop bool) bool {
	next := b.pos + amount
	switch {
	case next > len(b.entries) && loop:
		next = 0
	case next > len(b.entries):
		next = len(b.entries)
	case next < 0 && loop:
		next = len(b.entries)
	case next < 0:
		next = 0
	}
	changed := next != b.pos
	b.pos = next
	b.UpdateTrigrams()
	return changed
}

func (b *Buffer) Clear() {
	b.entries = nil
	b.pos = 0
	b.UpdateTrigrams()
}

func (b *Buffer) contextID(i int) int {
	if i < 0 || i >= len(b.entries) || b.entries[i].Kind != KindWord {
		return trigram.NoWord
	}
	return b.entries[i].Index
}

// UpdateTrigrams pushes the two entries before the cursor to the model.
func (b *Buffer) UpdateTrigrams() {
	if b.model == nil {
		return
	}
	b.model.SetTrigramContext(b.contextID(b.pos-2), b.contextID(b.pos-1))
}

// Text resolves an entry to its display text.
func (b *Buffer) Text(e Entry) string {
	switch e.Kind {
	case KindWord:
		if b.model == nil {
			return ""
		}
		return b.model.WordString(e.Index)
	case KindSystem:
		if e.Index >= 0 && e.Index < len(b.systemChars) {
			return string(b.systemChars[e.Index])
		}
	case KindUser:
		if w, ok := b.userWords.Get(e.Index); ok {
			return w
		}
	}
	return ""
}

// PrevTypedWord is the text of the entry right before the cursor.
func (b *Buffer) PrevTypedWord() string {
	if b.pos == 0 {
		return ""
	}
	return b.Text(b.entries[b.pos-1])
}

// All iterates the entries in order.
func (b *Buffer) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range b.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Encoded returns the entries in their signed form.
func (b *Buffer) Encoded() []int {
	out := make([]int, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Encode(len(b.systemChars))
	}
	return out
}

func (b *Buffer) String() string {
	var sb strings.Builder
	for _, e := range b.entries {
		sb.WriteString(b.Text(e))
	}
	return sb.String()
}
