package wordmodel

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"mmtype/internal/dictionary"
	"mmtype/internal/trigram"
)

type Options struct {
	PageSize int
	// Shortcut enables the combine key hint on stacked candidates.
	Shortcut bool
	Logger   *zap.Logger
}

// Builder is the dictionary-backed WordModel.
//
// Multi-digit numerals typed as one word are learned for the session and get
// IDs after the last dictionary ID.
type Builder struct {
	dict     *dictionary.Dictionary
	log      *zap.Logger
	pageSize int
	shortcut bool

	typed     []rune
	preceding string
	context   [2]int

	words     []int
	combos    []int
	page      int
	selection int

	numerals   []string
	numeralIDs map[string]int
}

var _ WordModel = (*Builder)(nil)

func NewBuilder(dict *dictionary.Dictionary, opts Options) *Builder {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Builder{
		dict:       dict,
		log:        opts.Logger.Named("wordmodel"),
		pageSize:   opts.PageSize,
		shortcut:   opts.Shortcut,
		context:    [2]int{trigram.NoWord, trigram.NoWord},
		selection:  -1,
		numeralIDs: make(map[string]int),
	}
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == ';'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func (b *Builder) TypeLetter(ch rune, shift bool, preceding string) bool {
	if !isLetter(ch) && !isDigit(ch) {
		return false
	}
	if shift && ch >= 'a' && ch <= 'z' {
		ch = unicode.ToUpper(ch)
	}
	current := string(b.typed)
	next := current + string(ch)
	switch {
	case isDigit(ch) && (current == "" || allDigits(current)):
	case b.dict.HasPrefix(next):
	case unicode.IsUpper(ch) && b.dict.HasPrefix(current+string(unicode.ToLower(ch))):
		ch = unicode.ToLower(ch)
	default:
		b.log.Debug("letter rejected", zap.String("typed", current), zap.String("letter", string(ch)))
		return false
	}
	b.typed = append(b.typed, ch)
	b.preceding = preceding
	b.regenerate()
	return true
}

func (b *Builder) Backspace(preceding string) {
	if len(b.typed) == 0 {
		return
	}
	b.typed = b.typed[:len(b.typed)-1]
	b.preceding = preceding
	b.regenerate()
}

func (b *Builder) regenerate() {
	b.words = b.words[:0]
	b.combos = b.combos[:0]
	b.page = 0
	b.selection = -1
	if len(b.typed) == 0 {
		return
	}

	typed := string(b.typed)
	var plain []int
	if allDigits(typed) {
		plain = []int{b.numeralID(typed)}
	} else {
		plain = append(b.dict.Lookup(typed), b.dict.Completions(typed)...)
	}
	plain = dedupe(plain)

	var stacked []int
	if prev, ok := b.dict.ID(b.preceding); ok {
		for _, id := range plain {
			if combined, ok := b.dict.Stack(prev, id); ok {
				stacked = append(stacked, combined)
			}
		}
	}
	stacked = dedupe(stacked)

	isStacked := make(map[int]bool, len(stacked))
	all := make([]int, 0, len(stacked)+len(plain))
	for _, id := range stacked {
		isStacked[id] = true
		all = append(all, id)
	}
	for _, id := range plain {
		if !isStacked[id] {
			all = append(all, id)
		}
	}

	b.words = trigram.Reorder(b.dict.Trigrams(), b.context[0], b.context[1], all)
	for _, id := range b.words {
		if isStacked[id] {
			b.combos = append(b.combos, id)
		} else {
			b.combos = append(b.combos, -1)
		}
	}
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (b *Builder) numeralID(digits string) int {
	if len(digits) == 1 {
		return b.dict.DigitID(int(digits[0] - '0'))
	}
	text := dictionary.NumeralText(digits)
	if id, ok := b.dict.ID(text); ok {
		return id
	}
	if id, ok := b.numeralIDs[text]; ok {
		return id
	}
	id := b.dict.Len() + len(b.numerals)
	b.numerals = append(b.numerals, text)
	b.numeralIDs[text] = id
	return id
}

func (b *Builder) ReverseLookupWord(typed string) (int, string) {
	typed = strings.TrimSpace(typed)
	if id, ok := b.dict.ID(typed); ok {
		return id, b.dict.Romanization(id)
	}
	for _, spelling := range []string{typed, strings.ToLower(typed)} {
		if ids := b.dict.Lookup(spelling); len(ids) > 0 {
			return ids[0], b.dict.Romanization(ids[0])
		}
	}
	return -1, ""
}

func (b *Builder) PossibleWords() []int {
	out := make([]int, len(b.words))
	copy(out, b.words)
	return out
}

func (b *Builder) WordCombinations() []int {
	out := make([]int, len(b.combos))
	copy(out, b.combos)
	return out
}

func (b *Builder) TypeSpace(selection int) (int, int) {
	if len(b.words) == 0 {
		return -1, -1
	}
	idx := -1
	switch {
	case selection == SelectCurrent:
		idx = b.SelectedIndex()
	case selection == SelectCombination:
		for i, combo := range b.combos {
			if combo != -1 {
				idx = i
				break
			}
		}
	case selection >= 0 && selection < len(b.words):
		idx = selection
	}
	if idx < 0 {
		return -1, -1
	}
	word, combo := b.words[idx], b.combos[idx]
	b.typed = b.typed[:0]
	b.regenerate()
	return word, combo
}

func (b *Builder) pageBounds() (int, int) {
	start := b.page * b.pageSize
	end := start + b.pageSize
	if end > len(b.words) {
		end = len(b.words)
	}
	return start, end
}

func (b *Builder) SelectedIndex() int {
	if len(b.words) == 0 {
		return -1
	}
	if b.selection >= 0 {
		return b.selection
	}
	start, end := b.pageBounds()
	for i := start; i < end; i++ {
		if b.combos[i] != -1 {
			return i
		}
	}
	return start
}

func (b *Builder) MoveRight(amount int) bool {
	if len(b.words) == 0 {
		return false
	}
	current := b.SelectedIndex()
	start, end := b.pageBounds()
	next := current + amount
	if next < start {
		next = start
	}
	if next > end-1 {
		next = end - 1
	}
	if next == current {
		return false
	}
	b.selection = next
	return true
}

func (b *Builder) PageUp(up bool) bool {
	next := b.page + 1
	if up {
		next = b.page - 1
	}
	if next < 0 || next >= b.NumberOfPages() {
		return false
	}
	b.page = next
	b.selection = -1
	return true
}

func (b *Builder) CurrPage() int { return b.page }

func (b *Builder) NumberOfPages() int {
	return (len(b.words) + b.pageSize - 1) / b.pageSize
}

func (b *Builder) PageSize() int { return b.pageSize }

func (b *Builder) StopCharacter(full bool) rune {
	if full {
		return FullStop
	}
	return PartialStop
}

func (b *Builder) SingleDigitID(digit int) int {
	return b.dict.DigitID(digit)
}

func (b *Builder) WordString(id int) string {
	if text, ok := b.dict.Word(id); ok {
		return text
	}
	if n := id - b.dict.Len(); n >= 0 && n < len(b.numerals) {
		return b.numerals[n]
	}
	return ""
}

func (b *Builder) SetTrigramContext(prev2, prev1 int) {
	if b.context == [2]int{prev2, prev1} {
		return
	}
	b.context = [2]int{prev2, prev1}
	if len(b.typed) > 0 {
		b.regenerate()
	}
}

func (b *Builder) CanTypeShortcut() bool { return b.shortcut }

func (b *Builder) Typed() string { return string(b.typed) }

func (b *Builder) ParenString() string {
	idx := b.SelectedIndex()
	if idx < 0 || b.combos[idx] != -1 {
		return ""
	}
	typed := string(b.typed)
	full := b.dict.Romanization(b.words[idx])
	if len(full) > len(typed) && strings.HasPrefix(full, typed) {
		return full
	}
	return ""
}

func (b *Builder) Reset(full bool) {
	b.typed = b.typed[:0]
	b.regenerate()
	if full {
		b.preceding = ""
		b.context = [2]int{trigram.NoWord, trigram.NoWord}
		b.numerals = nil
		b.numeralIDs = make(map[string]int)
	}
}
