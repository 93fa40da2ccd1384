package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mmtype/internal/dictionary/dicttest"
	"mmtype/internal/engine"
)

func writeSetup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.tsv"), []byte(dicttest.Model), 0o644))
	cfg := "[model]\npath = words.tsv\n\n[logging]\nlevel = none\n"
	path := filepath.Join(dir, "mmtype.ini")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.Reader = strings.NewReader(stdin)
	err := app.Run(ContextWithEnv(context.Background()), append([]string{appName}, args...))
	return out.String(), err
}

func TestConvertArgs(t *testing.T) {
	cfg := writeSetup(t)
	out, err := run(t, "", "-c", cfg, "convert", "mingalarpar", "nay thwar kar.")
	require.NoError(t, err)
	assert.Equal(t, dicttest.Mingalar+"\n"+dicttest.Nay+dicttest.Thwar+dicttest.Kar+"။\n", out)
}

func TestConvertStdin(t *testing.T) {
	cfg := writeSetup(t)
	out, err := run(t, "par\ntal\n", "-c", cfg, "convert")
	require.NoError(t, err)
	assert.Equal(t, dicttest.Par+"\n"+dicttest.Tal+"\n", out)
}

func TestLookup(t *testing.T) {
	cfg := writeSetup(t)
	out, err := run(t, "", "-c", cfg, "lookup", "thwar", dicttest.Par, "zzz")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "thwar\t"+dicttest.Thwar+"\tthwar\t"))
	assert.True(t, strings.HasPrefix(lines[1], dicttest.Par+"\t"+dicttest.Par+"\tpar\t"))
	assert.Equal(t, "zzz\tunknown", lines[2])

	_, err = run(t, "", "-c", cfg, "lookup")
	assert.Error(t, err)
}

func TestLayouts(t *testing.T) {
	out, err := run(t, "", "-c", writeSetup(t), "layouts")
	require.NoError(t, err)
	assert.Equal(t, "latin\nmyanmar3\n", out)
}

func TestModelOverride(t *testing.T) {
	cfg := writeSetup(t)
	_, err := run(t, "", "-c", cfg, "-m", filepath.Join(t.TempDir(), "missing.tsv"), "convert", "ka")
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ini")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\npage_size = 40\n"), 0o644))
	_, err := run(t, "", "-c", path, "layouts")
	assert.Error(t, err)
}

func TestRenderLine(t *testing.T) {
	snap := engine.Snapshot{
		Sentence: [4]string{dicttest.Nay, "", "", dicttest.Nay},
		Typed:    "ka",
		Candidates: []engine.Candidate{
			{Text: dicttest.Ka, Flags: engine.FlagSelected},
			{Text: dicttest.Kaa},
		},
		Pages: 2,
	}
	assert.Equal(t, dicttest.Nay+"|  ka  <1."+dicttest.Ka+"> 2."+dicttest.Kaa+" (1/2)", RenderLine(snap))

	snap = engine.Snapshot{Sentence: [4]string{dicttest.Nay, dicttest.MinGa, dicttest.Tal, ""}}
	assert.Equal(t, dicttest.Nay+"["+dicttest.MinGa+"]|"+dicttest.Tal, RenderLine(snap))
}

func TestLogDestination(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.tsv"), []byte(dicttest.Model), 0o644))
	cfg := filepath.Join(dir, "mmtype.ini")
	ini := "[model]\npath = words.tsv\n\n[logging]\nlevel = debug\ndestination = run.log\nmode = overwrite\n"
	require.NoError(t, os.WriteFile(cfg, []byte(ini), 0o644))

	_, err := run(t, "", "-c", cfg, "layouts")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Program started")
	assert.Contains(t, string(data), "Program ended")

	bad := filepath.Join(dir, "bad.ini")
	require.NoError(t, os.WriteFile(bad, []byte("[logging]\ndestination = missing/run.log\n"), 0o644))
	_, err = run(t, "", "-c", bad, "layouts")
	assert.Error(t, err)
}
