// Package trigram re-ranks candidate words using the two words in front of
// the edit cursor.
//
// A Table is filled once while the model is loaded and is read-only
// afterwards, so it can be shared between engines without locking.
package trigram

import "slices"

// NoWord marks an absent or non-dictionary context slot.
const NoWord = -1

// A trigram hit outweighs any realistic number of bigram hits.
const trigramWeight = 1 << 16

type Table struct {
	bigrams  map[[2]int]uint32
	trigrams map[[3]int]uint32
}

func NewTable() *Table {
	return &Table{
		bigrams:  make(map[[2]int]uint32),
		trigrams: make(map[[3]int]uint32),
	}
}

// AddBigram records how often w follows w1. Load-time only.
func (t *Table) AddBigram(w1, w int, count uint32) {
	if w1 < 0 || w < 0 || count == 0 {
		return
	}
	t.bigrams[[2]int{w1, w}] += count
}

// AddTrigram records how often w follows (w2, w1). Load-time only.
func (t *Table) AddTrigram(w2, w1, w int, count uint32) {
	if w2 < 0 || w1 < 0 || w < 0 || count == 0 {
		return
	}
	t.trigrams[[3]int{w2, w1, w}] += count
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bigrams) + len(t.trigrams)
}

// Score is the combined context score of candidate given the words w2, w1
// preceding it (NoWord where absent).
func (t *Table) Score(w2, w1, candidate int) uint64 {
	if t == nil || w1 < 0 || candidate < 0 {
		return 0
	}
	var score uint64
	if w2 >= 0 {
		score += uint64(t.trigrams[[3]int{w2, w1, candidate}]) * trigramWeight
	}
	score += uint64(t.bigrams[[2]int{w1, candidate}])
	return score
}

// Reorder returns candidates sorted by descending context score. Equal
// scores keep their incoming order. The input slice is not modified.
func Reorder(t *Table, w2, w1 int, candidates []int) []int {
	out := slices.Clone(candidates)
	if t.Len() == 0 || w1 < 0 || len(out) < 2 {
		return out
	}
	scores := make(map[int]uint64, len(out))
	for _, c := range out {
		scores[c] = t.Score(w2, w1, c)
	}
	slices.SortStableFunc(out, func(a, b int) int {
		sa, sb := scores[a], scores[b]
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	return out
}
