package sentence

import "golang.org/x/text/unicode/norm"

// UserWords is the append-only list of out-of-dictionary words added during
// a session.
type UserWords struct {
	words []string
}

// Add stores text (NFC-normalized) and returns its index. A word already in
// the list keeps its index.
func (u *UserWords) Add(text string) int {
	text = norm.NFC.String(text)
	for i, w := range u.words {
		if w == text {
			return i
		}
	}
	u.words = append(u.words, text)
	return len(u.words) - 1
}

func (u *UserWords) Get(i int) (string, bool) {
	if u == nil || i < 0 || i >= len(u.words) {
		return "", false
	}
	return u.words[i], true
}

func (u *UserWords) Len() int {
	if u == nil {
		return 0
	}
	return len(u.words)
}

// Clear is only used by a full engine reset.
func (u *UserWords) Clear() {
	u.words = nil
}
