// Package dicttest provides a small model for tests of packages built on
// the dictionary.
package dicttest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mmtype/internal/dictionary"
)

const (
	Ka       = "က"
	Kaa      = "ကာ"
	Kar      = "ကား"
	Kaung    = "ကောင်း"
	Min      = "မင်"
	Mingg    = "မင်း"
	Ga       = "ဂ"
	MinGa    = "မင်္ဂ"
	Lar      = "လား"
	Par      = "ပါ"
	Tal      = "တယ်"
	Thwar    = "သွား"
	Nay      = "နေ"
	Mingalar = "မင်္ဂလာပါ"
)

var lines = []string{
	"# sample model",
	"[words]",
	"ka\t" + Ka + "\t100",
	"ka\t" + Kaa + "\t40",
	"kar\t" + Kar + "\t60",
	"kaung\t" + Kaung + "\t100",
	"min\t" + Mingg + "\t80",
	"min\t" + Min + "\t20",
	"ga\t" + Ga + "\t5",
	"lar\t" + Lar + "\t90",
	"par\t" + Par + "\t200",
	"tal\t" + Tal + "\t150",
	"thwar\t" + Thwar + "\t120",
	"nay\t" + Nay + "\t110",
	"mingalarpar\t" + Mingalar + "\t10",
	"Nay\t" + Nay,
	"[stacks]",
	Min + "\t" + Ga + "\t" + MinGa,
	"[ngrams]",
	Thwar + "\t" + Kar + "\t5",
	Nay + "\t" + Thwar + "\t" + Kaa + "\t2",
}

// Model is the sample model in the sectioned text format.
var Model = strings.Join(lines, "\n") + "\n"

func Sample(tb testing.TB) *dictionary.Dictionary {
	tb.Helper()
	dict, err := dictionary.ParseText("sample", strings.NewReader(Model))
	require.NoError(tb, err)
	return dict
}

// ID returns the ID of a sample word, failing the test if it is missing.
func ID(tb testing.TB, dict *dictionary.Dictionary, text string) int {
	tb.Helper()
	id, ok := dict.ID(text)
	require.Truef(tb, ok, "word %q not in model", text)
	return id
}
