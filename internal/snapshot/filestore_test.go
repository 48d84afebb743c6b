package snapshot

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownworld/internal/errs"
)

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`{"id":1}`)
	require.NoError(t, store.Save("world", payload))

	got, err := store.Load("world")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStoreLoadMissingNameIsNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nope")
	require.Error(t, err)
	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestFileStoreDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save("world", []byte("payload")))

	path := store.path("world")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = store.Load("world")
	require.Error(t, err)
}
