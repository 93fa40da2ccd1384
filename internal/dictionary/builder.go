package dictionary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/derekparker/trie"
	"go.uber.org/multierr"
	"golang.org/x/text/unicode/norm"

	"mmtype/internal/trigram"
)

type ngram struct {
	words []string
	count uint32
}

// Builder accumulates model data. Stacks and n-grams refer to words by text
// and are resolved in Build, so sections may come in any order.
type Builder struct {
	dict   *Dictionary
	stacks [][3]string
	ngrams []ngram
}

func NewBuilder() *Builder {
	return &Builder{dict: &Dictionary{
		ids:     make(map[string]int),
		byRoman: make(map[string][]int),
		index:   trie.New(),
		stacks:  make(map[[2]int]int),
		table:   trigram.NewTable(),
	}}
}

func (b *Builder) wordID(text string) int {
	d := b.dict
	text = norm.NFC.String(strings.TrimSpace(text))
	if id, ok := d.ids[text]; ok {
		return id
	}
	id := len(d.words)
	d.words = append(d.words, text)
	d.freq = append(d.freq, 0)
	d.romans = append(d.romans, nil)
	d.ids[text] = id
	return id
}

// AddWord registers text under roman and returns its ID. Adding a known word
// again adds another spelling and keeps the highest frequency.
func (b *Builder) AddWord(roman, text string, freq int) int {
	id := b.wordID(text)
	d := b.dict
	if freq > d.freq[id] {
		d.freq[id] = freq
	}
	roman = strings.TrimSpace(roman)
	if roman == "" {
		return id
	}
	for _, existing := range d.byRoman[roman] {
		if existing == id {
			return id
		}
	}
	d.byRoman[roman] = append(d.byRoman[roman], id)
	d.romans[id] = append(d.romans[id], roman)
	d.index.Add(roman, nil)
	return id
}

// AddStack declares that typing current after prev stacks into combined.
func (b *Builder) AddStack(prev, current, combined string) {
	b.stacks = append(b.stacks, [3]string{prev, current, combined})
}

// AddNgram takes two (bigram) or three (trigram) words, oldest first.
func (b *Builder) AddNgram(count uint32, words ...string) error {
	if len(words) != 2 && len(words) != 3 {
		return fmt.Errorf("n-gram needs 2 or 3 words, got %d", len(words))
	}
	b.ngrams = append(b.ngrams, ngram{words: words, count: count})
	return nil
}

func (b *Builder) Build() (*Dictionary, error) {
	d := b.dict
	for digit := 0; digit <= 9; digit++ {
		text := DigitText(digit)
		if id, ok := d.ids[text]; ok {
			d.digits[digit] = id
			continue
		}
		d.digits[digit] = b.AddWord(strconv.Itoa(digit), text, 0)
	}

	var err error
	for _, s := range b.stacks {
		prev, okPrev := d.ids[norm.NFC.String(strings.TrimSpace(s[0]))]
		cur, okCur := d.ids[norm.NFC.String(strings.TrimSpace(s[1]))]
		if !okPrev || !okCur {
			err = multierr.Append(err, fmt.Errorf("stack %s+%s: %w", s[0], s[1], ErrUnknownWord))
			continue
		}
		d.stacks[[2]int{prev, cur}] = b.wordID(s[2])
	}

	for _, n := range b.ngrams {
		ids := make([]int, 0, len(n.words))
		for _, w := range n.words {
			id, ok := d.ids[norm.NFC.String(strings.TrimSpace(w))]
			if !ok {
				err = multierr.Append(err, fmt.Errorf("n-gram %s: %w %q", strings.Join(n.words, " "), ErrUnknownWord, w))
				break
			}
			ids = append(ids, id)
		}
		if len(ids) != len(n.words) {
			continue
		}
		if len(ids) == 2 {
			d.table.AddBigram(ids[0], ids[1], n.count)
		} else {
			d.table.AddTrigram(ids[0], ids[1], ids[2], n.count)
		}
	}

	for roman, ids := range d.byRoman {
		d.rank(ids)
		d.byRoman[roman] = ids
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}
