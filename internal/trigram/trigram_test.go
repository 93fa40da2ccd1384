package trigram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	t := NewTable()
	t.AddBigram(1, 12, 3)
	t.AddBigram(1, 11, 5)
	t.AddTrigram(0, 1, 13, 1)
	return t
}

func TestReorderPrefersTrigramOverBigram(t *testing.T) {
	table := sampleTable()
	got := Reorder(table, 0, 1, []int{10, 11, 12, 13})
	assert.Equal(t, []int{13, 11, 12, 10}, got)
}

func TestReorderWithoutSecondWordUsesBigrams(t *testing.T) {
	table := sampleTable()
	got := Reorder(table, NoWord, 1, []int{10, 11, 12, 13})
	assert.Equal(t, []int{11, 12, 10, 13}, got)
}

func TestReorderIsStableForTies(t *testing.T) {
	table := sampleTable()
	in := []int{40, 30, 20, 10}
	assert.Equal(t, in, Reorder(table, 0, 1, in))
}

func TestReorderIsPure(t *testing.T) {
	table := sampleTable()
	in := []int{10, 11, 12, 13}
	first := Reorder(table, 0, 1, in)
	second := Reorder(table, 0, 1, in)
	require.Equal(t, first, second)
	assert.Equal(t, []int{10, 11, 12, 13}, in, "input must not be modified")
}

func TestReorderScoresAreNonIncreasing(t *testing.T) {
	table := sampleTable()
	got := Reorder(table, 0, 1, []int{12, 10, 13, 11})
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, table.Score(0, 1, got[i-1]), table.Score(0, 1, got[i]))
	}
}

func TestReorderNoContext(t *testing.T) {
	table := sampleTable()
	in := []int{12, 11}
	assert.Equal(t, in, Reorder(table, NoWord, NoWord, in))
	assert.Equal(t, in, Reorder(nil, 0, 1, in))
}

func TestIgnoresInvalidEntries(t *testing.T) {
	table := NewTable()
	table.AddBigram(-1, 2, 4)
	table.AddTrigram(1, 2, 3, 0)
	assert.Equal(t, 0, table.Len())
}
