package engine

import (
	"strings"

	"mmtype/internal/sentence"
)

type CandidateFlag uint8

const (
	FlagStacked CandidateFlag = 1 << iota
	FlagSelected
	// FlagShortcutHint marks stacked candidates reachable by the combine key.
	FlagShortcutHint
)

func (f CandidateFlag) Has(flag CandidateFlag) bool { return f&flag != 0 }

type Candidate struct {
	Text  string
	Flags CandidateFlag
}

// Snapshot is the render state after a key event. It holds copies only and
// stays valid after later events.
type Snapshot struct {
	// Sentence is before-cursor, at-cursor, after-cursor (with the pending
	// stop glyph) and the full text.
	Sentence        [4]string
	Candidates      []Candidate
	Page            int
	Pages           int
	Typed           string
	State           State
	CommitRequested bool
	ViewChanged     bool
	Handled         bool
}

func (e *Engine) Snapshot() Snapshot {
	page, pages := e.PagingInfo()
	return Snapshot{
		Sentence:        e.TypedSentenceStrings(),
		Candidates:      e.TypedCandidateStrings(),
		Page:            page,
		Pages:           pages,
		Typed:           e.TypedRoman(),
		State:           e.State(),
		CommitRequested: e.commitRequested,
		ViewChanged:     e.viewChanged,
	}
}

// replacement is the stacked word that would replace the entry before the
// cursor if the current selection were committed, or -1.
func (e *Engine) replacement() int {
	idx := e.model.SelectedIndex()
	if idx < 0 {
		return -1
	}
	combos := e.model.WordCombinations()
	if idx >= len(combos) {
		return -1
	}
	return combos[idx]
}

// TypedSentenceStrings renders the sentence around the cursor. When the
// selected candidate stacks onto the previous word, that word is shown in its
// stacked form as the at-cursor segment.
func (e *Engine) TypedSentenceStrings() [4]string {
	var before, at, after, full strings.Builder
	cursor := e.sentence.Cursor()
	stacked := -1
	if cursor > 0 {
		stacked = e.replacement()
	}
	for i, entry := range e.sentence.All() {
		text := e.sentence.Text(entry)
		switch {
		case i == cursor-1 && stacked >= 0:
			text = e.model.WordString(stacked)
			at.WriteString(text)
		case i < cursor:
			before.WriteString(text)
		default:
			after.WriteString(text)
		}
		full.WriteString(text)
	}
	if e.stop != 0 {
		after.WriteRune(e.stop)
		full.WriteRune(e.stop)
	}
	return [4]string{before.String(), at.String(), after.String(), full.String()}
}

// TypedCandidateStrings returns the current candidate page.
func (e *Engine) TypedCandidateStrings() []Candidate {
	words := e.model.PossibleWords()
	if len(words) == 0 {
		return nil
	}
	combos := e.model.WordCombinations()
	start := e.model.CurrPage() * e.model.PageSize()
	end := min(start+e.model.PageSize(), len(words))
	selected := e.model.SelectedIndex()

	out := make([]Candidate, 0, end-start)
	for i := start; i < end; i++ {
		c := Candidate{Text: e.model.WordString(words[i])}
		if combos[i] != -1 {
			c.Flags |= FlagStacked
			if e.model.CanTypeShortcut() {
				c.Flags |= FlagShortcutHint
			}
		}
		if i == selected {
			c.Flags |= FlagSelected
		}
		out = append(out, c)
	}
	return out
}

func (e *Engine) PagingInfo() (int, int) {
	return e.model.CurrPage(), e.model.NumberOfPages()
}

// TypedRoman is the typed letters, followed by the full spelling of the
// selected candidate in parentheses when it is longer.
func (e *Engine) TypedRoman() string {
	typed := e.model.Typed()
	if paren := e.model.ParenString(); paren != "" {
		return typed + "(" + paren + ")"
	}
	return typed
}

// EncodedSentence is the sentence in its signed-ID form.
func (e *Engine) EncodedSentence() []int {
	return e.sentence.Encoded()
}

// DecodeEntry resolves a signed-ID sentence entry to its text.
func (e *Engine) DecodeEntry(value int) string {
	return e.sentence.Text(sentence.Decode(value, e.sentence.SystemCount()))
}
