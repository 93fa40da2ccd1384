package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"mmtype/internal/types"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mmtype.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, types.StyleJapanese, cfg.Engine.ControlKeys)
	assert.Equal(t, 10, cfg.Engine.PageSize)
}

func TestDirectoryIsAnError(t *testing.T) {
	_, err := Load(t.TempDir())
	var cfgErr ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
[engine]
mode = direct
control_keys = chinese
burmese_numbers = false
numeral_conglomerates = true
suppress_uppercase = yes
shortcut_keys = off
page_size = 5
layout = latin
custom_keys = keys.json

[model]
path = data/model.db

[logging]
level = debug
destination = /var/log/mmtype.log
mode = overwrite
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, EngineConfig{
		Mode:                 types.ModeDirect,
		ControlKeys:          types.StyleChinese,
		BurmeseNumbers:       false,
		NumeralConglomerates: true,
		SuppressUppercase:    true,
		ShortcutKeys:         false,
		PageSize:             5,
		Layout:               "latin",
		CustomKeys:           filepath.Join(dir, "keys.json"),
	}, cfg.Engine)
	assert.Equal(t, filepath.Join(dir, "data/model.db"), cfg.Model.Path)
	assert.Equal(t, LoggingConfig{Level: "debug", Destination: "/var/log/mmtype.log", Mode: "overwrite"}, cfg.Logging)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[engine]\npage_size = 3\n"))
	require.NoError(t, err)
	want := Default().Engine
	want.PageSize = 3
	assert.Equal(t, want, cfg.Engine)
	assert.Equal(t, "normal", cfg.Logging.Level)
}

func TestInvalidValuesAreAllReported(t *testing.T) {
	_, err := Load(writeConfig(t, `
[engine]
mode = telepathic
control_keys = korean
burmese_numbers = maybe
page_size = 11

[logging]
level = loud
mode = rotate
`))
	var cfgErr ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Len(t, multierr.Errors(errors.Unwrap(err)), 6)
	assert.Contains(t, err.Error(), "page_size")
}

func TestPrepareLogger(t *testing.T) {
	logger, closeLog, err := LoggingConfig{Level: "none"}.Prepare()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
	assert.NoError(t, closeLog())

	dest := filepath.Join(t.TempDir(), "out.log")
	logger, closeLog, err = LoggingConfig{Level: "debug", Destination: dest, Mode: "overwrite"}.Prepare()
	require.NoError(t, err)
	logger.Debug("hello from test")
	_ = logger.Sync()
	require.NoError(t, closeLog())
	assert.ErrorIs(t, closeLog(), os.ErrClosed)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "mmtype")
}

func TestPrepareLoggerBadDestination(t *testing.T) {
	_, _, err := LoggingConfig{Level: "normal", Destination: filepath.Join(t.TempDir(), "missing", "x.log")}.Prepare()
	assert.Error(t, err)
}
