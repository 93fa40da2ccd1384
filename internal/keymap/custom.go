package keymap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type CustomPair struct {
	Key     string `json:"key"`
	Normal  string `json:"normal"`
	Shifted string `json:"shifted"`
}

func LoadCustomPairs(path string) ([]CustomPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open custom keypair file: %w", err)
	}
	defer file.Close()

	var pairs []CustomPair
	if err := json.NewDecoder(file).Decode(&pairs); err != nil {
		return nil, fmt.Errorf("parse custom keypair file: %w", err)
	}
	return pairs, nil
}

// ApplyCustomPairs overrides entries of l in place. An empty value leaves
// that layer as it was.
func ApplyCustomPairs(l *Layout, pairs []CustomPair) error {
	for _, pair := range pairs {
		key, err := resolveKey(pair.Key)
		if err != nil {
			return err
		}
		normal, err := singleRune(pair.Normal)
		if err != nil {
			return fmt.Errorf("key '%s': %w", pair.Key, err)
		}
		shift, err := singleRune(pair.Shifted)
		if err != nil {
			return fmt.Errorf("key '%s': %w", pair.Key, err)
		}
		if normal != 0 {
			l.ApplyOverride(key, false, normal)
		}
		if shift != 0 {
			l.ApplyOverride(key, true, shift)
		}
	}
	return nil
}

func singleRune(value string) (rune, error) {
	if value == "" {
		return 0, nil
	}
	r := []rune(value)
	if len(r) != 1 {
		return 0, fmt.Errorf("value must be a single rune, got %q", value)
	}
	return r[0], nil
}

var keyAliases = map[string]rune{
	"SPACE":      ' ',
	"MINUS":      '-',
	"EQUAL":      '=',
	"LEFTBRACE":  '[',
	"RIGHTBRACE": ']',
	"BACKSLASH":  '\\',
	"SEMICOLON":  ';',
	"APOSTROPHE": '\'',
	"GRAVE":      '`',
	"SLASH":      '/',
}

// resolveKey accepts a single unshifted character or a KEY_ style name.
func resolveKey(name string) (rune, error) {
	trimmed := strings.TrimSpace(name)
	if r := []rune(trimmed); len(r) == 1 {
		return unicodeLower(r[0]), nil
	}
	normalized := strings.TrimPrefix(strings.ToUpper(trimmed), "KEY_")
	if normalized == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if len(normalized) == 1 {
		ch := rune(normalized[0])
		if (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			return unicodeLower(ch), nil
		}
	}
	if key, ok := keyAliases[normalized]; ok {
		return key, nil
	}
	return 0, fmt.Errorf("unknown key name '%s'", name)
}

func unicodeLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
