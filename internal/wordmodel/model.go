// Package wordmodel turns typed romanized letters into ranked candidate
// words.
package wordmodel

// Selection sentinels accepted by TypeSpace.
const (
	// SelectCurrent commits whatever is currently selected.
	SelectCurrent = -1
	// SelectCombination commits the first stacked candidate.
	SelectCombination = -2
)

// Sentence-terminal punctuation.
const (
	FullStop    rune = '\u104b'
	PartialStop rune = '\u104a'
)

const DefaultPageSize = 10

// WordModel is what the composition engine needs from a candidate generator.
// Candidate indices are absolute positions in PossibleWords.
type WordModel interface {
	// TypeLetter appends ch to the typed letters if the result still leads to
	// at least one word. preceding is the text of the word before the
	// sentence cursor. It reports false and changes nothing otherwise.
	TypeLetter(ch rune, shift bool, preceding string) bool
	// Backspace drops the last typed letter. It does nothing when no letters
	// are typed.
	Backspace(preceding string)
	// ReverseLookupWord maps a whole word (target script or romanized) to
	// its dictionary ID and canonical romanization. The ID is -1 if the word
	// is unknown.
	ReverseLookupWord(typed string) (int, string)

	PossibleWords() []int
	// WordCombinations is aligned with PossibleWords: -1 for plain words,
	// otherwise the stacked word that replaces the previous sentence word.
	WordCombinations() []int
	// TypeSpace commits a candidate (an index, SelectCurrent or
	// SelectCombination). It returns the word ID and the replacement ID
	// (-1 if none); the word ID is negative when nothing could be committed.
	TypeSpace(selection int) (int, int)

	// MoveRight moves the selection within the current page and reports
	// whether it changed.
	MoveRight(amount int) bool
	PageUp(up bool) bool
	CurrPage() int
	NumberOfPages() int
	PageSize() int
	// SelectedIndex is the effective selection, or -1 without candidates.
	SelectedIndex() int

	StopCharacter(full bool) rune
	SingleDigitID(digit int) int
	WordString(id int) string
	// SetTrigramContext receives the dictionary IDs of the two words before
	// the sentence cursor (-1 where absent).
	SetTrigramContext(prev2, prev1 int)
	CanTypeShortcut() bool

	Typed() string
	// ParenString is the full spelling of the selected candidate when it is
	// longer than what was typed.
	ParenString() string
	Reset(full bool)
}
