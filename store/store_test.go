package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSetGetDelete(t *testing.T) {
	st := open(t)

	_, ok := st.Get(KeyAuthToken)
	assert.False(t, ok)

	require.NoError(t, st.Set(KeyAuthToken, "tok-1"))
	val, ok := st.Get(KeyAuthToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", val)

	// Upsert overwrites.
	require.NoError(t, st.Set(KeyAuthToken, "tok-2"))
	val, _ = st.Get(KeyAuthToken)
	assert.Equal(t, "tok-2", val)

	require.NoError(t, st.Delete(KeyAuthToken))
	_, ok = st.Get(KeyAuthToken)
	assert.False(t, ok)

	// Deleting again is fine.
	require.NoError(t, st.Delete(KeyAuthToken))
}

func TestSubscribersSeeChanges(t *testing.T) {
	st := open(t)

	var changed []string
	st.Subscribe(func(key string) { changed = append(changed, key) })

	require.NoError(t, st.Set(KeyAuthToken, "tok"))
	require.NoError(t, st.Set(KeyEditorTheme, "dark"))
	require.NoError(t, st.Delete(KeyAuthToken))

	assert.Equal(t, []string{KeyAuthToken, KeyEditorTheme, KeyAuthToken}, changed)
}

func TestGetOnClosedStoreReportsAbsent(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyAuthToken, "tok"))
	require.NoError(t, st.Close())

	// A failing database must not be mistaken for a stored value.
	val, ok := st.Get(KeyAuthToken)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyChatHistory, `[{"role":"user","content":"hi"}]`))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()
	val, ok := st.Get(KeyChatHistory)
	assert.True(t, ok)
	assert.Contains(t, val, `"hi"`)
}
