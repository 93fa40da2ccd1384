package dictionary

import (
	"fmt"
	"math"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// LoadSQLite reads a model from a database with a words(roman, word, freq)
// table and optional stacks(prev, curr, combined) and
// ngrams(w2, w1, w, count) tables.
func LoadSQLite(path string) (*Dictionary, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open model database %s: %w", path, err)
	}
	defer conn.Close()

	b := NewBuilder()
	err = sqlitex.Execute(conn, `SELECT roman, word, COALESCE(freq, 0) FROM words`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			b.AddWord(stmt.ColumnText(0), stmt.ColumnText(1), stmt.ColumnInt(2))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("read words from %s: %w", path, err)
	}

	has, err := tableNames(conn)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	if has["stacks"] {
		err = sqlitex.Execute(conn, `SELECT prev, curr, combined FROM stacks`,
			&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
				b.AddStack(stmt.ColumnText(0), stmt.ColumnText(1), stmt.ColumnText(2))
				return nil
			}})
		if err != nil {
			return nil, fmt.Errorf("read stacks from %s: %w", path, err)
		}
	}
	if has["ngrams"] {
		err = sqlitex.Execute(conn, `SELECT COALESCE(w2, ''), w1, w, count FROM ngrams`,
			&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
				raw := stmt.ColumnInt64(3)
				if raw < 0 || raw > math.MaxUint32 {
					return fmt.Errorf("invalid count %d", raw)
				}
				count := uint32(raw)
				if w2 := stmt.ColumnText(0); w2 != "" {
					return b.AddNgram(count, w2, stmt.ColumnText(1), stmt.ColumnText(2))
				}
				return b.AddNgram(count, stmt.ColumnText(1), stmt.ColumnText(2))
			}})
		if err != nil {
			return nil, fmt.Errorf("read ngrams from %s: %w", path, err)
		}
	}

	dict, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build model from %s: %w", path, err)
	}
	return dict, nil
}

func tableNames(conn *sqlite.Conn) (map[string]bool, error) {
	names := make(map[string]bool)
	err := sqlitex.Execute(conn, `SELECT name FROM sqlite_master WHERE type = 'table'`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			names[stmt.ColumnText(0)] = true
			return nil
		}})
	return names, err
}
