package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	words   map[int]string
	context [2]int
	pushes  int
}

func (f *fakeModel) WordString(id int) string { return f.words[id] }

func (f *fakeModel) SetTrigramContext(prev2, prev1 int) {
	f.context = [2]int{prev2, prev1}
	f.pushes++
}

func newTestBuffer() (*Buffer, *fakeModel) {
	model := &fakeModel{words: map[int]string{0: "A", 1: "B", 2: "C"}}
	return NewBuffer(model, []rune{'!', '?'}, &UserWords{}), model
}

func TestEncodeDecodeKeepsSignedForm(t *testing.T) {
	cases := []struct {
		entry Entry
		value int
	}{
		{Word(0), 0},
		{Word(17), 17},
		{System(0), -1},
		{System(1), -2},
		{User(0), -3},
		{User(4), -7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.value, tc.entry.Encode(2), tc.entry.String())
		assert.Equal(t, tc.entry, Decode(tc.value, 2), tc.entry.String())
	}
}

func TestInsertAtEndAndInMiddle(t *testing.T) {
	b, _ := newTestBuffer()
	b.Insert(Word(0))
	b.Insert(Word(2))
	assert.Equal(t, -1, b.CursorIndex())
	require.True(t, b.MoveCursorRight(-1))
	b.Insert(Word(1))
	assert.Equal(t, "ABC", b.String())
	assert.Equal(t, 2, b.CursorIndex())
	assert.Equal(t, "B", b.PrevTypedWord())
}

func TestCursorBetweenWords(t *testing.T) {
	b, _ := newTestBuffer()
	b.Insert(Word(0))
	b.Insert(Word(1))
	require.True(t, b.MoveCursorRight(-1))
	assert.Equal(t, 1, b.CursorIndex())
	assert.Equal(t, 1, b.Cursor())
	assert.Equal(t, "A", b.PrevTypedWord())
}

func TestCursorBounds(t *testing.T) {
	b, _ := newTestBuffer()
	b.Insert(Word(0))
	b.Insert(Word(1))

	assert.False(t, b.MoveCursorRight(1))
	assert.Equal(t, -1, b.CursorIndex())

	assert.True(t, b.MoveCursorRightLoop(1, true))
	assert.Equal(t, 0, b.CursorIndex())

	assert.False(t, b.MoveCursorRight(-1))
	assert.True(t, b.MoveCursorRightLoop(-1, true))
	assert.True(t, b.AtEnd())

	assert.True(t, b.MoveCursorRight(-10))
	assert.Equal(t, 0, b.Cursor())
	assert.True(t, b.MoveCursorRight(10))
	assert.True(t, b.AtEnd())
}

func TestDeletePrevAndNext(t *testing.T) {
	b, _ := newTestBuffer()
	assert.False(t, b.DeletePrev())
	assert.False(t, b.DeleteNext())

	b.Insert(Word(0))
	b.Insert(Word(1))
	b.Insert(Word(2))
	require.True(t, b.MoveCursorRight(-2))

	assert.True(t, b.DeleteNext())
	assert.Equal(t, "AC", b.String())
	assert.Equal(t, 1, b.Cursor())

	assert.True(t, b.DeletePrev())
	assert.Equal(t, "C", b.String())
	assert.Equal(t, 0, b.Cursor())
	assert.False(t, b.DeletePrev())
}

func TestInsertThenDeleteRestoresShape(t *testing.T) {
	b, _ := newTestBuffer()
	b.Insert(Word(0))
	b.Insert(Word(1))
	require.True(t, b.MoveCursorRight(-1))
	size, cursor := b.Len(), b.CursorIndex()

	b.Insert(Word(2))
	require.True(t, b.DeletePrev())
	assert.Equal(t, size, b.Len())
	assert.Equal(t, cursor, b.CursorIndex())
}

func TestEveryMutationPushesContext(t *testing.T) {
	b, model := newTestBuffer()
	assert.Equal(t, [2]int{-1, -1}, model.context)

	b.Insert(Word(0))
	assert.Equal(t, [2]int{-1, 0}, model.context)
	b.Insert(Word(1))
	assert.Equal(t, [2]int{0, 1}, model.context)
	b.Insert(System(0))
	assert.Equal(t, [2]int{1, -1}, model.context)

	b.DeletePrev()
	assert.Equal(t, [2]int{0, 1}, model.context)
	b.MoveCursorRight(-1)
	assert.Equal(t, [2]int{-1, 0}, model.context)
	b.DeleteNext()
	assert.Equal(t, [2]int{-1, 0}, model.context)
	b.Clear()
	assert.Equal(t, [2]int{-1, -1}, model.context)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, -1, b.CursorIndex())
}

func TestTextDecoding(t *testing.T) {
	b, _ := newTestBuffer()
	idx := b.UserWords().Add("xyz")
	b.InsertEncoded(2)
	b.InsertEncoded(-2)
	b.InsertEncoded(User(idx).Encode(b.SystemCount()))
	assert.Equal(t, "C?xyz", b.String())
	assert.Equal(t, []int{2, -2, -3}, b.Encoded())

	var kinds []Kind
	for _, e := range b.All() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []Kind{KindWord, KindSystem, KindUser}, kinds)
	assert.Equal(t, "", b.Text(User(9)))
	assert.Equal(t, "", b.Text(System(9)))
}

func TestUserWords(t *testing.T) {
	var u UserWords
	assert.Equal(t, 0, u.Add("é"))
	assert.Equal(t, 0, u.Add("é"))
	assert.Equal(t, 1, u.Add("b"))
	assert.Equal(t, 2, u.Len())
	w, ok := u.Get(0)
	require.True(t, ok)
	assert.Equal(t, "é", w)
	u.Clear()
	assert.Equal(t, 0, u.Len())
}
