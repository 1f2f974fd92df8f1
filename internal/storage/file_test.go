package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	store, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok := store.Get("language")
	assert.False(t, ok)

	require.NoError(t, store.Set("language", "python"))
	require.NoError(t, store.Set("code_python", "print('hi')\n"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)

	lang, ok := reopened.Get("language")
	assert.True(t, ok)
	assert.Equal(t, "python", lang)

	code, ok := reopened.Get("code_python")
	assert.True(t, ok)
	assert.Equal(t, "print('hi')\n", code)
}

func TestFileStore_EmptyAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	store, err := OpenFileStore(empty)
	require.NoError(t, err)
	_, ok := store.Get("theme")
	assert.False(t, ok)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o600))
	_, err = OpenFileStore(corrupt)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("theme", "dark"))
	require.NoError(t, store.Set("theme", "light"))

	v, ok := store.Get("theme")
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	assert.Equal(t, 1, store.Len())
}
