package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name  string
	Order []string
}

func TestSaveAndLoadGob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "athletes", "settings.gob")

	require.NoError(t, SaveGob(path, snapshot{Name: "athletes", Order: []string{"1", "2"}}))

	var loaded snapshot
	require.NoError(t, LoadGob(path, &loaded))
	assert.Equal(t, snapshot{Name: "athletes", Order: []string{"1", "2"}}, loaded)
}

func TestLoadGobMissingFile(t *testing.T) {
	var loaded snapshot
	err := LoadGob(filepath.Join(t.TempDir(), "missing.gob"), &loaded)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq_votes.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"1":true}`)))
	require.NoError(t, WriteFileAtomic(path, []byte(`{"1":false}`)))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"1":false}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
