package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinemuse/internal/domain"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore("")
	require.NoError(t, err)
	return st
}

func TestWatchlistAddRemove(t *testing.T) {
	st := newMemStore(t)

	added, err := st.AddToWatchlist(domain.Movie{ID: 1, Title: "First", GenreIDs: []int{28}})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = st.AddToWatchlist(domain.Movie{ID: 2, Title: "Second"})
	require.NoError(t, err)
	assert.True(t, added)

	list := st.Watchlist()
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)

	removed, err := st.RemoveFromWatchlist(1)
	require.NoError(t, err)
	assert.True(t, removed)

	list = st.Watchlist()
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)
}

func TestWatchlistDuplicateAddIsNoOp(t *testing.T) {
	st := newMemStore(t)

	_, err := st.AddToWatchlist(domain.Movie{ID: 1, Title: "Original", GenreIDs: []int{28}})
	require.NoError(t, err)

	// A second add of the same identity leaves the stored payload untouched
	added, err := st.AddToWatchlist(domain.Movie{ID: 1, Title: "Different Payload"})
	require.NoError(t, err)
	assert.False(t, added)

	list := st.Watchlist()
	require.Len(t, list, 1)
	assert.Equal(t, "Original", list[0].Title)
	assert.Equal(t, []int{28}, list[0].GenreIDs)
}

func TestWatchlistRemoveAbsentIsNoOp(t *testing.T) {
	st := newMemStore(t)

	removed, err := st.RemoveFromWatchlist(42)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, st.Watchlist())
}

func TestSnapshotSaveLoad(t *testing.T) {
	st := newMemStore(t)

	_, ok := st.LoadSnapshot()
	assert.False(t, ok)

	movies := []domain.Movie{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
	}
	require.NoError(t, st.SaveSnapshot(movies))

	loaded, ok := st.LoadSnapshot()
	require.True(t, ok)
	require.Len(t, loaded, 2)
	assert.Equal(t, "One", loaded[0].Title)

	// A new save replaces the snapshot wholesale
	require.NoError(t, st.SaveSnapshot([]domain.Movie{{ID: 3, Title: "Three"}}))
	loaded, ok = st.LoadSnapshot()
	require.True(t, ok)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(3), loaded[0].ID)
}

func TestShellVersions(t *testing.T) {
	st := newMemStore(t)

	assert.Empty(t, st.ShellVersions())

	require.NoError(t, st.SaveShellVersion("app-v1", map[string][]byte{
		"https://example.com/a.css": []byte("body{}"),
		"https://example.com/b.js":  []byte("void 0"),
	}))
	require.NoError(t, st.SaveShellVersion("app-v2", map[string][]byte{
		"https://example.com/a.css": []byte("html{}"),
	}))

	assert.Equal(t, []string{"app-v1", "app-v2"}, st.ShellVersions())

	body, ok := st.GetShellResource("app-v1", "https://example.com/a.css")
	require.True(t, ok)
	assert.Equal(t, []byte("body{}"), body)

	// Versions are isolated by key prefix
	body, ok = st.GetShellResource("app-v2", "https://example.com/a.css")
	require.True(t, ok)
	assert.Equal(t, []byte("html{}"), body)

	_, ok = st.GetShellResource("app-v2", "https://example.com/b.js")
	assert.False(t, ok)

	require.NoError(t, st.DeleteShellVersion("app-v1"))
	assert.Equal(t, []string{"app-v2"}, st.ShellVersions())
	_, ok = st.GetShellResource("app-v1", "https://example.com/a.css")
	assert.False(t, ok)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := NewStore(dir)
	require.NoError(t, err)

	_, err = st.AddToWatchlist(domain.Movie{ID: 7, Title: "Persisted"})
	require.NoError(t, err)
	require.NoError(t, st.SaveSnapshot([]domain.Movie{{ID: 9, Title: "Snap"}}))
	require.NoError(t, st.Close())

	st, err = NewStore(dir)
	require.NoError(t, err)
	defer st.Close()

	list := st.Watchlist()
	require.Len(t, list, 1)
	assert.Equal(t, "Persisted", list[0].Title)

	loaded, ok := st.LoadSnapshot()
	require.True(t, ok)
	assert.Equal(t, int64(9), loaded[0].ID)
}
