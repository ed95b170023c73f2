package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_MissingKeyIsEmpty(t *testing.T) {
	m := NewMemory()

	value, err := m.Get("nope")

	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestMemory_SetOverwrites(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Set(KeyTheme, "gruvbox"))
	require.NoError(t, m.Set(KeyTheme, "catppuccin"))

	value, err := m.Get(KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "catppuccin", value)
}

func TestDB_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tudu.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set(KeyTodos, `[{"id":"1"}]`))
	require.NoError(t, db.Set(KeyTodos, `[]`))

	value, err := db.Get(KeyTodos)
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	missing, err := db.Get("nope")
	require.NoError(t, err)
	assert.Equal(t, "", missing)
}

func TestDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tudu.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(KeyTheme, "gruvbox"))
	require.NoError(t, db.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", value)
}
