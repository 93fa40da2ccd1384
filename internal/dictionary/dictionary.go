// Package dictionary holds the read-only model data the word model draws
// candidates from: target-script words, their romanizations, stacking rules
// and the n-gram table used for context reordering.
package dictionary

import (
	"errors"
	"slices"
	"strings"

	"github.com/derekparker/trie"
	"golang.org/x/text/unicode/norm"

	"mmtype/internal/trigram"
)

var ErrUnknownWord = errors.New("unknown word")

// Myanmar digits ၀..၉ start here.
const digitBase = 0x1040

type Dictionary struct {
	words   []string
	freq    []int
	romans  [][]string
	ids     map[string]int
	byRoman map[string][]int
	index   *trie.Trie
	stacks  map[[2]int]int
	digits  [10]int
	table   *trigram.Table
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

func (d *Dictionary) Word(id int) (string, bool) {
	if d == nil || id < 0 || id >= len(d.words) {
		return "", false
	}
	return d.words[id], true
}

// ID returns the identifier of a word given its target-script text.
func (d *Dictionary) ID(text string) (int, bool) {
	if d == nil || text == "" {
		return 0, false
	}
	id, ok := d.ids[norm.NFC.String(text)]
	return id, ok
}

func (d *Dictionary) Frequency(id int) int {
	if d == nil || id < 0 || id >= len(d.freq) {
		return 0
	}
	return d.freq[id]
}

// Romanization returns the canonical (first registered) spelling of id.
func (d *Dictionary) Romanization(id int) string {
	if d == nil || id < 0 || id >= len(d.romans) || len(d.romans[id]) == 0 {
		return ""
	}
	return d.romans[id][0]
}

// Lookup returns the words spelled exactly roman, most frequent first.
func (d *Dictionary) Lookup(roman string) []int {
	if d == nil {
		return nil
	}
	return slices.Clone(d.byRoman[roman])
}

func (d *Dictionary) HasPrefix(roman string) bool {
	if d == nil || roman == "" {
		return false
	}
	return d.index.HasKeysWithPrefix(roman)
}

// Completions returns the words whose romanization strictly extends prefix,
// ranked like Lookup.
func (d *Dictionary) Completions(prefix string) []int {
	if d == nil || prefix == "" {
		return nil
	}
	seen := make(map[int]struct{})
	var out []int
	for _, key := range d.index.PrefixSearch(prefix) {
		if key == prefix {
			continue
		}
		for _, id := range d.byRoman[key] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	d.rank(out)
	return out
}

// Stack reports the stacked (pat-sint) word formed when candidate is typed
// right after prev.
func (d *Dictionary) Stack(prev, candidate int) (int, bool) {
	if d == nil || prev < 0 || candidate < 0 {
		return 0, false
	}
	id, ok := d.stacks[[2]int{prev, candidate}]
	return id, ok
}

func (d *Dictionary) HasStacks() bool {
	return d != nil && len(d.stacks) > 0
}

func (d *Dictionary) DigitID(digit int) int {
	if d == nil || digit < 0 || digit > 9 {
		return -1
	}
	return d.digits[digit]
}

func (d *Dictionary) Trigrams() *trigram.Table {
	if d == nil {
		return nil
	}
	return d.table
}

// rank orders ids by frequency (descending), then by text.
func (d *Dictionary) rank(ids []int) {
	slices.SortStableFunc(ids, func(a, b int) int {
		if fa, fb := d.freq[a], d.freq[b]; fa != fb {
			if fa > fb {
				return -1
			}
			return 1
		}
		if c := strings.Compare(d.words[a], d.words[b]); c != 0 {
			return c
		}
		return a - b
	})
}

// DigitText is the target-script numeral for 0..9.
func DigitText(digit int) string {
	return string(rune(digitBase + digit))
}

// NumeralText converts a string of ASCII digits into target-script numerals.
// Other characters are kept as they are.
func NumeralText(ascii string) string {
	var b strings.Builder
	b.Grow(len(ascii) * 3)
	for _, r := range ascii {
		if r >= '0' && r <= '9' {
			b.WriteRune(digitBase + (r - '0'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
