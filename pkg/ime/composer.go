// Package ime embeds the composition engine behind a small API. The Composer
// owns the model data and the engine and reports focus to the engine the way
// a host window would: the candidate surface is shown while letters are
// typed.
package ime

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"mmtype/internal/config"
	"mmtype/internal/dictionary"
	"mmtype/internal/engine"
	"mmtype/internal/keymap"
	"mmtype/internal/types"
	"mmtype/internal/wordmodel"
)

type Composer struct {
	dict        *dictionary.Dictionary
	engine      *engine.Engine
	helpVisible bool
}

// Open loads the model named by cfg and builds a composer around it.
func Open(cfg config.Config, logger *zap.Logger) (*Composer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dict, err := dictionary.LoadFile(cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	logger.Info("model loaded", zap.String("path", cfg.Model.Path), zap.Int("words", dict.Len()))
	return NewComposer(dict, cfg.Engine, logger)
}

func NewComposer(dict *dictionary.Dictionary, cfg config.EngineConfig, logger *zap.Logger) (*Composer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	layout, err := keymap.Load(cfg.Layout)
	if err != nil {
		return nil, err
	}
	if cfg.CustomKeys != "" {
		pairs, err := keymap.LoadCustomPairs(cfg.CustomKeys)
		if err != nil {
			return nil, err
		}
		if err := keymap.ApplyCustomPairs(layout, pairs); err != nil {
			return nil, err
		}
	}

	model := wordmodel.NewBuilder(dict, wordmodel.Options{
		PageSize: cfg.PageSize,
		Shortcut: cfg.ShortcutKeys,
		Logger:   logger,
	})
	eng := engine.New(model, engine.Options{
		Mode:                 cfg.Mode,
		ControlKeys:          cfg.ControlKeys,
		BurmeseNumbers:       cfg.BurmeseNumbers,
		NumeralConglomerates: cfg.NumeralConglomerates,
		SuppressUppercase:    cfg.SuppressUppercase,
		SystemKeys:           layout.SystemKeys(),
		Logger:               logger,
	})
	return &Composer{dict: dict, engine: eng}, nil
}

func (c *Composer) Engine() *engine.Engine { return c.engine }

func (c *Composer) Dictionary() *dictionary.Dictionary { return c.dict }

func (c *Composer) CandidatesVisible() bool {
	return c.engine.Typed() != ""
}

// SetHelpVisible marks the auxiliary help surface as shown. System keys are
// ignored while it is.
func (c *Composer) SetHelpVisible(visible bool) { c.helpVisible = visible }

func (c *Composer) HandleKey(ev types.KeyEvent) engine.Snapshot {
	return c.engine.HandleKey(ev.WithFocus(c.CandidatesVisible(), c.helpVisible))
}

// TypeKey feeds one printable character.
func (c *Composer) TypeKey(r rune) engine.Snapshot {
	return c.HandleKey(keymap.FromRune(r))
}

func (c *Composer) Backspace() engine.Snapshot {
	return c.HandleKey(types.Special(types.KeyBackspace))
}

func (c *Composer) Snapshot() engine.Snapshot { return c.engine.Snapshot() }

// Text is the sentence composed so far.
func (c *Composer) Text() string {
	return c.engine.TypedSentenceStrings()[3]
}

func (c *Composer) Lookup(word string) (int, string) {
	return c.engine.LookupWord(word)
}

func (c *Composer) commitWord() {
	if c.CandidatesVisible() {
		c.HandleKey(types.Special(types.KeyCommitStrong))
	}
}

// Enter commits the current word, if any, and hands back the sentence.
func (c *Composer) Enter() string {
	c.commitWord()
	return c.engine.TakeSentence()
}

func (c *Composer) Reset() {
	c.engine.Reset(engine.ResetAll)
}

// Convert transliterates a line of romanized words. Whitespace and
// punctuation end the current word.
func (c *Composer) Convert(line string) string {
	for _, r := range line {
		if unicode.IsSpace(r) {
			c.commitWord()
			continue
		}
		ev := keymap.FromRune(r)
		switch ev.Kind {
		case types.KeyLetter, types.KeyCombine:
		case types.KeyDigit:
			if strings.ContainsFunc(c.engine.Typed(), unicode.IsLetter) {
				c.commitWord()
			}
		default:
			c.commitWord()
		}
		c.HandleKey(ev)
	}
	return c.Enter()
}
