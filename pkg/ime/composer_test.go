package ime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mmtype/internal/config"
	"mmtype/internal/dictionary/dicttest"
	"mmtype/internal/engine"
	"mmtype/internal/types"
	"mmtype/internal/wordmodel"
)

func newComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer(dicttest.Sample(t), config.Default().Engine, nil)
	require.NoError(t, err)
	return c
}

func TestConvertWords(t *testing.T) {
	c := newComposer(t)
	assert.Equal(t, dicttest.Mingalar, c.Convert("mingalarpar"))
	assert.Equal(t, dicttest.Thwar+dicttest.Kar+string(wordmodel.FullStop), c.Convert("thwar kar."))
	assert.Equal(t, dicttest.Nay+"၁၂", c.Convert("nay12"))
	assert.Equal(t, "", c.Text())
}

func TestConvertStackedWord(t *testing.T) {
	c := newComposer(t)
	c.TypeKey('m')
	c.TypeKey('i')
	c.TypeKey('n')
	c.TypeKey('2')
	require.Equal(t, dicttest.Min, c.Text())
	assert.Equal(t, dicttest.MinGa, c.Convert("ga`"))
}

func TestTypeKeyTracksFocus(t *testing.T) {
	c := newComposer(t)
	assert.False(t, c.CandidatesVisible())

	snap := c.TypeKey('k')
	assert.True(t, c.CandidatesVisible())
	assert.Equal(t, engine.StateComposing, snap.State)
	assert.NotEmpty(t, snap.Candidates)

	c.Backspace()
	assert.False(t, c.CandidatesVisible())

	for _, r := range "par" {
		c.TypeKey(r)
	}
	c.HandleKey(types.Special(types.KeyCommitStrong))
	assert.Equal(t, dicttest.Par, c.Text())

	snap = c.Backspace()
	assert.Equal(t, "", snap.Sentence[3])
}

func TestHelpSurfaceBlocksSystemKeys(t *testing.T) {
	c := newComposer(t)
	c.SetHelpVisible(true)
	snap := c.TypeKey('!')
	assert.False(t, snap.Handled)

	c.SetHelpVisible(false)
	snap = c.TypeKey('!')
	assert.True(t, snap.Handled)
	assert.Equal(t, "!", c.Enter())
}

func TestLookup(t *testing.T) {
	c := newComposer(t)
	id, roman := c.Lookup("thwar")
	assert.GreaterOrEqual(t, id, 0)
	assert.Equal(t, "thwar", roman)

	id, _ = c.Lookup("zzz")
	assert.Equal(t, -1, id)
}

func TestOpenFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.tsv"), []byte(dicttest.Model), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keys.json"), []byte(`[{"key": "1", "shifted": "၊"}]`), 0o600))
	cfgPath := filepath.Join(dir, "mmtype.ini")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[engine]\ncustom_keys = keys.json\n[model]\npath = model.tsv\n"), 0o600))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	c, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, dicttest.Tal, c.Convert("tal"))

	c.TypeKey('!')
	assert.Equal(t, "၊", c.Enter())
}

func TestOpenMissingModel(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Path = filepath.Join(t.TempDir(), "none.tsv")
	_, err := Open(cfg, nil)
	assert.Error(t, err)
}

func TestDirectModeShiftLayer(t *testing.T) {
	cfg := config.Default().Engine
	cfg.Mode = types.ModeDirect
	c, err := NewComposer(dicttest.Sample(t), cfg, nil)
	require.NoError(t, err)

	c.TypeKey('u')
	c.TypeKey('U')
	assert.Equal(t, "ကဥ", c.Enter())
}
