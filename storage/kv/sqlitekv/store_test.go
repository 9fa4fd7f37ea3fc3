package sqlitekv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tutorhub.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("doc", []byte(`{"a":1}`)))
	got, ok, err := store.Get("doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), got)

	// overwrite wins
	require.NoError(t, store.Set("doc", []byte(`{"a":2}`)))
	got, _, err = store.Get("doc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), got)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutorhub.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("doc", []byte("persisted")))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	got, ok, err := store.Get("doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
}
