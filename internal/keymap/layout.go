package keymap

import (
	"fmt"
	"maps"
	"slices"
	"unicode"

	"mmtype/internal/engine"
)

// Entry is what one physical key types in direct-entry mode. A zero rune
// means the layer is unmapped.
type Entry struct {
	Normal  rune
	Shifted rune
}

// Layout maps keys, named by the character they produce on a US keyboard
// without shift, to target-script characters.
type Layout struct {
	name    string
	mapping map[rune]Entry
}

func NewLayout(name string) *Layout {
	return &Layout{name: name, mapping: make(map[rune]Entry)}
}

func (l *Layout) Name() string { return l.name }

func (l *Layout) Translate(key rune, shift bool) (rune, bool) {
	if l == nil {
		return 0, false
	}
	entry, ok := l.mapping[key]
	if !ok {
		return 0, false
	}
	if shift && entry.Shifted != 0 {
		return entry.Shifted, true
	}
	if entry.Normal != 0 {
		return entry.Normal, true
	}
	return 0, false
}

func (l *Layout) ApplyOverride(key rune, shift bool, value rune) {
	if l == nil {
		return
	}
	entry := l.mapping[key]
	if shift {
		entry.Shifted = value
	} else {
		entry.Normal = value
	}
	l.mapping[key] = entry
}

var usShift = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
	';': ':', '\'': '"', ',': '<', '.': '>', '/': '?', '`': '~',
}

// shifted returns what key produces with shift held on a US keyboard.
func shifted(key rune) rune {
	if s, ok := usShift[key]; ok {
		return s
	}
	return unicode.ToUpper(key)
}

// SystemKeys lists the layout as engine system keys, coded by the character
// the terminal reports for each key and layer.
func (l *Layout) SystemKeys() []engine.SystemKey {
	if l == nil {
		return nil
	}
	var out []engine.SystemKey
	for _, key := range slices.Sorted(maps.Keys(l.mapping)) {
		entry := l.mapping[key]
		if entry.Normal != 0 {
			out = append(out, engine.SystemKey{Code: int(key), Char: entry.Normal})
		}
		if code := shifted(key); entry.Shifted != 0 && code != key {
			out = append(out, engine.SystemKey{Code: int(code), Char: entry.Shifted})
		}
	}
	return out
}

func addEntry(mapping map[rune]Entry, key rune, normal, shifted rune) {
	mapping[key] = Entry{Normal: normal, Shifted: shifted}
}

func addPunctuation(mapping map[rune]Entry) {
	for _, key := range []rune{'1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '-', '=', '\'', '/'} {
		addEntry(mapping, key, key, shifted(key))
	}
}

func buildMyanmar3() *Layout {
	layout := NewLayout("myanmar3")
	mapping := layout.mapping
	addPunctuation(mapping)

	addEntry(mapping, 'q', 'ဆ', 'ဈ')
	addEntry(mapping, 'w', 'တ', 'ဝ')
	addEntry(mapping, 'e', 'န', 'ဣ')
	addEntry(mapping, 'r', 'မ', '၎')
	addEntry(mapping, 't', 'အ', 'ဤ')
	addEntry(mapping, 'y', 'ပ', '၌')
	addEntry(mapping, 'u', 'က', 'ဥ')
	addEntry(mapping, 'i', 'င', '၍')
	addEntry(mapping, 'o', 'သ', 'ဿ')
	addEntry(mapping, 'p', 'စ', 'ဏ')
	addEntry(mapping, '[', 'ဟ', 'ဧ')
	addEntry(mapping, ']', 'ဩ', 'ဪ')
	addEntry(mapping, '\\', '၏', 0)

	addEntry(mapping, 'a', 'ေ', 'ဗ')
	addEntry(mapping, 's', 'ျ', 'ှ')
	addEntry(mapping, 'd', 'ိ', 'ီ')
	addEntry(mapping, 'f', '်', '္')
	addEntry(mapping, 'g', 'ါ', 'ွ')
	addEntry(mapping, 'h', '့', 'ံ')
	addEntry(mapping, 'j', 'ြ', 'ဲ')
	addEntry(mapping, 'k', 'ု', 'ဒ')
	addEntry(mapping, 'l', 'ူ', 'ဓ')
	addEntry(mapping, ';', 'း', 'ဂ')

	addEntry(mapping, 'z', 'ဖ', 'ဇ')
	addEntry(mapping, 'x', 'ထ', 'ဌ')
	addEntry(mapping, 'c', 'ခ', 'ဃ')
	addEntry(mapping, 'v', 'လ', 'ဠ')
	addEntry(mapping, 'b', 'ဘ', 'ယ')
	addEntry(mapping, 'n', 'ည', 'ဉ')
	addEntry(mapping, 'm', 'ာ', 'ဦ')

	return layout
}

func buildLatin() *Layout {
	layout := NewLayout("latin")
	addPunctuation(layout.mapping)
	return layout
}

var builders = map[string]func() *Layout{
	"latin":    buildLatin,
	"myanmar3": buildMyanmar3,
}

func AvailableLayouts() []string {
	return slices.Sorted(maps.Keys(builders))
}

// Load returns a fresh copy of the named layout.
func Load(name string) (*Layout, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout '%s'", name)
	}
	return build(), nil
}
