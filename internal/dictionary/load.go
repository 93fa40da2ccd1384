package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// LoadFile picks the loader from the file extension: SQLite databases for
// .db/.sqlite/.sqlite3, the sectioned text format otherwise.
func LoadFile(path string) (*Dictionary, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return LoadText(path)
	}
}

func LoadText(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	defer file.Close()

	dict, err := ParseText(path, file)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return dict, nil
}

// ParseText reads the sectioned text model. name is only used in errors.
func ParseText(name string, r io.Reader) (*Dictionary, error) {
	b := NewBuilder()
	section := "words"
	lineNo := 0
	var errs error

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			switch section {
			case "words", "stacks", "ngrams":
			default:
				errs = multierr.Append(errs, ParseError{Path: name, Line: lineNo, Msg: fmt.Sprintf("unknown section [%s]", section)})
			}
			continue
		}
		fields := splitFields(line)
		if err := parseLine(b, section, fields); err != nil {
			errs = multierr.Append(errs, ParseError{Path: name, Line: lineNo, Msg: err.Error()})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if errs != nil {
		return nil, errs
	}
	return b.Build()
}

func parseLine(b *Builder, section string, fields []string) error {
	switch section {
	case "words":
		if len(fields) < 2 || len(fields) > 3 {
			return fmt.Errorf("word line needs roman and word, got %d fields", len(fields))
		}
		freq := 0
		if len(fields) == 3 {
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Errorf("invalid frequency %q", fields[2])
			}
			freq = v
		}
		b.AddWord(fields[0], fields[1], freq)
	case "stacks":
		if len(fields) != 3 {
			return fmt.Errorf("stack line needs 3 fields, got %d", len(fields))
		}
		b.AddStack(fields[0], fields[1], fields[2])
	case "ngrams":
		if len(fields) != 3 && len(fields) != 4 {
			return fmt.Errorf("n-gram line needs 3 or 4 fields, got %d", len(fields))
		}
		count, err := strconv.ParseUint(fields[len(fields)-1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid count %q", fields[len(fields)-1])
		}
		return b.AddNgram(uint32(count), fields[:len(fields)-1]...)
	}
	return nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, "\t")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
