// Package engine is the composition controller: it routes normalized key
// events to the word model and the sentence buffer and renders the result.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"mmtype/internal/sentence"
	"mmtype/internal/types"
	"mmtype/internal/wordmodel"
)

// ErrConfigMismatch is returned when a phonetic-only operation is used on an
// engine configured for direct entry, or the other way around.
var ErrConfigMismatch = errors.New("engine configuration mismatch")

// SystemKey maps a key code outside the phonetic pipeline to the single
// character it types.
type SystemKey struct {
	Code int
	Char rune
}

type Options struct {
	Mode                 types.InputMode
	ControlKeys          types.ControlKeyStyle
	BurmeseNumbers       bool
	NumeralConglomerates bool
	SuppressUppercase    bool
	SystemKeys           []SystemKey
	Logger               *zap.Logger
}

// State is derived from the typed letters and the sentence; the focus itself
// belongs to the host.
type State int

const (
	StateIdle State = iota
	StateComposing
	StateSentenceEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateComposing:
		return "composing"
	case StateSentenceEditing:
		return "sentence-editing"
	default:
		return "unknown"
	}
}

type ResetFlags uint8

const (
	ResetCandidates ResetFlags = 1 << iota
	ResetRoman
	ResetSentence
	// ResetFull implies the others and also drops user words and anything
	// the word model learned during the session.
	ResetFull

	ResetAll = ResetCandidates | ResetRoman | ResetSentence
)

type Engine struct {
	opts       Options
	log        *zap.Logger
	model      wordmodel.WordModel
	sentence   *sentence.Buffer
	userWords  *sentence.UserWords
	systemKeys map[int]int

	stop            rune
	commitRequested bool
	viewChanged     bool
	lastCheck       [2]string
}

func New(model wordmodel.WordModel, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	chars := make([]rune, 0, len(opts.SystemKeys))
	lookup := make(map[int]int, len(opts.SystemKeys))
	for _, key := range opts.SystemKeys {
		if _, dup := lookup[key.Code]; dup {
			continue
		}
		lookup[key.Code] = len(chars)
		chars = append(chars, key.Char)
	}
	userWords := &sentence.UserWords{}
	return &Engine{
		opts:       opts,
		log:        opts.Logger.Named("engine"),
		model:      model,
		sentence:   sentence.NewBuffer(model, chars, userWords),
		userWords:  userWords,
		systemKeys: lookup,
	}
}

func (e *Engine) Mode() types.InputMode { return e.opts.Mode }

func (e *Engine) Sentence() *sentence.Buffer { return e.sentence }

func (e *Engine) UserWords() *sentence.UserWords { return e.userWords }

func (e *Engine) State() State {
	switch {
	case e.model.Typed() != "":
		return StateComposing
	case e.sentence.Len() > 0:
		return StateSentenceEditing
	default:
		return StateIdle
	}
}

// HandleKey processes one key event to completion and returns the resulting
// view. Events must not be delivered concurrently.
func (e *Engine) HandleKey(ev types.KeyEvent) Snapshot {
	e.viewChanged = false
	handled := e.dispatch(ev)
	snap := e.Snapshot()
	snap.Handled = handled
	return snap
}

func (e *Engine) dispatch(ev types.KeyEvent) bool {
	if e.opts.Mode == types.ModeDirect {
		switch ev.Kind {
		case types.KeyLetter, types.KeyCombine:
			code := ev.Char
			if ev.Shift {
				code = unicode.ToUpper(code)
			}
			return e.handleSystemKey(int(code), ev)
		}
		ev.CandidateVisible = false
	}

	switch ev.Kind {
	case types.KeyLetter:
		return e.handleLetter(ev)
	case types.KeyDigit, types.KeyCombine:
		return e.handleNumber(ev)
	case types.KeyEscape:
		e.handleEsc(ev)
	case types.KeyBackspace:
		e.handleBackspace(ev)
	case types.KeyDelete:
		e.handleDelete(ev)
	case types.KeyLeft, types.KeyRight:
		e.handleLeftRight(ev, ev.Kind == types.KeyRight, false)
	case types.KeyTab:
		e.handleTab(ev)
	case types.KeyUp, types.KeyDown:
		e.handleUpDown(ev, ev.Kind == types.KeyDown)
	case types.KeyCommitWeak, types.KeyCommitStrong:
		e.handleCommit(ev, ev.Kind == types.KeyCommitStrong)
	case types.KeyStopPartial, types.KeyStopFull:
		e.handleStop(ev, ev.Kind == types.KeyStopFull)
	case types.KeyUnknown:
		return e.handleSystemKey(ev.Code, ev)
	default:
		return false
	}
	return true
}

func (e *Engine) handleEsc(ev types.KeyEvent) {
	if !ev.CandidateVisible {
		e.sentence.Clear()
	} else {
		e.model.Reset(false)
	}
	e.viewChanged = true
}

func (e *Engine) handleBackspace(ev types.KeyEvent) {
	if !ev.CandidateVisible {
		if e.sentence.DeletePrev() {
			e.viewChanged = true
		}
		return
	}
	e.model.Backspace(e.sentence.PrevTypedWord())
	e.viewChanged = true
}

func (e *Engine) handleDelete(ev types.KeyEvent) {
	if ev.CandidateVisible {
		return
	}
	if e.sentence.DeleteNext() {
		e.viewChanged = true
	}
}

func (e *Engine) handleLeftRight(ev types.KeyEvent, right, loop bool) {
	amount := -1
	if right {
		amount = 1
	}
	if !ev.CandidateVisible {
		if e.sentence.MoveCursorRight(amount) {
			e.viewChanged = true
		}
		return
	}
	switch {
	case e.model.MoveRight(amount):
		e.viewChanged = true
	case right && loop:
		// Snap back to the start of the page.
		e.model.MoveRight(-e.model.PageSize())
		e.viewChanged = true
	}
}

func (e *Engine) handleTab(ev types.KeyEvent) {
	if !ev.CandidateVisible {
		e.handleLeftRight(ev, true, false)
		return
	}
	switch e.opts.ControlKeys {
	case types.StyleChinese:
		e.handleLeftRight(ev, true, true)
	case types.StyleJapanese:
		e.handleCommit(ev, true)
	}
}

func (e *Engine) handleUpDown(ev types.KeyEvent, down bool) {
	if ev.CandidateVisible && e.model.PageUp(!down) {
		e.viewChanged = true
	}
}

func (e *Engine) handleNumber(ev types.KeyEvent) bool {
	combine := ev.Kind == types.KeyCombine
	typedNoAlpha := !strings.ContainsFunc(e.model.Typed(), isAlpha)

	switch {
	case !combine && e.opts.NumeralConglomerates && e.opts.BurmeseNumbers && typedNoAlpha:
		if e.model.TypeLetter(ev.Char, ev.Shift, e.sentence.PrevTypedWord()) {
			e.viewChanged = true
		}
	case ev.CandidateVisible:
		index := wordmodel.SelectCombination
		if !combine {
			index = ev.Digit - 1
			if index < 0 {
				index = 9
			}
			// digits only reach the visible page
			if index >= e.model.PageSize() {
				break
			}
			index += e.model.CurrPage() * e.model.PageSize()
		}
		if e.selectWord(index) {
			e.viewChanged = true
		}
	case combine:
		return e.handleSystemKey(int(ev.Char), ev)
	case e.opts.BurmeseNumbers:
		e.sentence.Insert(sentence.Word(e.model.SingleDigitID(ev.Digit)))
		e.viewChanged = true
	default:
		handled := e.handleSystemKey(int(ev.Char), ev)
		e.viewChanged = true
		return handled
	}
	return true
}

func (e *Engine) handleStop(ev types.KeyEvent, full bool) {
	if ev.CandidateVisible {
		return
	}
	e.stop = e.model.StopCharacter(full)
	e.commitRequested = true
	e.viewChanged = true
}

func (e *Engine) handleCommit(ev types.KeyEvent, strong bool) {
	if ev.CandidateVisible {
		if !strong && e.opts.ControlKeys == types.StyleJapanese {
			e.handleLeftRight(ev, true, true)
			return
		}
		if e.selectWord(wordmodel.SelectCurrent) {
			e.viewChanged = true
		}
		return
	}
	if !strong && !e.sentence.AtEnd() {
		e.sentence.MoveCursorRight(1)
		e.viewChanged = true
		return
	}
	e.commitRequested = true
}

func (e *Engine) handleLetter(ev types.KeyEvent) bool {
	shift := ev.Shift && !e.opts.SuppressUppercase
	if !e.model.TypeLetter(ev.Char, shift, e.sentence.PrevTypedWord()) {
		if e.opts.ControlKeys == types.StyleChinese || e.model.Typed() == "" {
			return false
		}
		e.log.Debug("letter rejected, committing selection",
			zap.String("typed", e.model.Typed()), zap.String("letter", string(ev.Char)))
		e.handleCommit(ev, true)
		e.viewChanged = true
		if !e.model.TypeLetter(ev.Char, shift, e.sentence.PrevTypedWord()) {
			return false
		}
	}
	e.viewChanged = true
	return true
}

// handleSystemKey types the character bound to code, if any, straight into
// the sentence. Only active while no candidate or help surface is shown.
func (e *Engine) handleSystemKey(code int, ev types.KeyEvent) bool {
	if ev.CandidateVisible || ev.HelpVisible {
		return false
	}
	idx, ok := e.systemKeys[code]
	if !ok {
		return false
	}
	e.sentence.Insert(sentence.System(idx))
	e.viewChanged = true
	return true
}

// selectWord commits a candidate. A stacked candidate replaces the word
// before the cursor.
func (e *Engine) selectWord(selection int) bool {
	word, replacement := e.model.TypeSpace(selection)
	if word < 0 {
		return false
	}
	if replacement >= 0 {
		e.log.Debug("stacking with previous word",
			zap.String("previous", e.sentence.PrevTypedWord()),
			zap.String("stacked", e.model.WordString(replacement)))
		e.sentence.DeletePrev()
		word = replacement
	}
	e.sentence.Insert(sentence.Word(word))
	return true
}

// LookupWord maps a whole word to its dictionary ID and romanization.
func (e *Engine) LookupWord(typed string) (int, string) {
	return e.model.ReverseLookupWord(typed)
}

// TypeHelpWord inserts a word found through the help keyboard. dictID -1
// means the word is not in the dictionary and is kept as a user word.
func (e *Engine) TypeHelpWord(roman, word string, dictID int) error {
	if e.opts.Mode != types.ModeRoman {
		return fmt.Errorf("type help word %q: %w", roman, ErrConfigMismatch)
	}
	e.lastCheck = [2]string{roman, word}
	switch {
	case dictID == -1:
		e.sentence.Insert(sentence.User(e.userWords.Add(word)))
	default:
		e.sentence.InsertEncoded(dictID)
	}
	e.viewChanged = true
	return nil
}

// MostRecentCheck is the last romanization and word passed to TypeHelpWord.
func (e *Engine) MostRecentCheck() (string, string) {
	return e.lastCheck[0], e.lastCheck[1]
}

// TreatAsHelpKeyboard always fails: a phonetic keyboard cannot provide help
// for another input method.
func (e *Engine) TreatAsHelpKeyboard() error {
	return fmt.Errorf("romanized keyboard as help keyboard: %w", ErrConfigMismatch)
}

func (e *Engine) Reset(flags ResetFlags) {
	full := flags&ResetFull != 0
	if full {
		flags |= ResetAll
		e.userWords.Clear()
		e.lastCheck = [2]string{}
	}
	if flags&(ResetCandidates|ResetRoman) != 0 {
		e.model.Reset(full)
	}
	if flags&ResetSentence != 0 {
		e.sentence.Clear()
		e.commitRequested = false
	}
	e.stop = 0
	e.viewChanged = true
}

// TakeSentence returns the finished sentence and starts a new one.
func (e *Engine) TakeSentence() string {
	text := e.TypedSentenceStrings()[3]
	e.log.Debug("sentence committed", zap.String("text", text))
	e.Reset(ResetAll)
	return text
}

func (e *Engine) CommitRequested() bool { return e.commitRequested }

func (e *Engine) ViewChanged() bool { return e.viewChanged }

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ';'
}

// Typed is the romanized letters typed for the current word.
func (e *Engine) Typed() string { return e.model.Typed() }
