package browse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinemuse/internal/catalog"
	"cinemuse/internal/domain"
	"cinemuse/internal/log"
	"cinemuse/internal/store"
)

func newFeedService(t *testing.T, handler http.HandlerFunc) (*FeedService, *store.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	st, err := store.NewStore("")
	require.NoError(t, err)

	client := catalog.NewClient(server.URL, "test-key", server.Client(), log.NullLogger())
	return NewFeedService(client, st, log.NullLogger()), st
}

func trendingContext() QueryContext {
	return QueryContext{Feed: catalog.Feed{Kind: catalog.FeedTrending}, Page: 1}
}

func TestLoadSuccessRefreshesSnapshot(t *testing.T) {
	svc, st := newFeedService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page": 1, "results": [{"id": 1, "title": "Live"}], "total_pages": 4, "total_results": 80}`))
	})

	result, err := svc.Load(context.Background(), trendingContext())
	require.NoError(t, err)
	assert.Equal(t, SourceLive, result.Source)
	assert.Equal(t, 4, result.TotalPages)

	snap, ok := st.LoadSnapshot()
	require.True(t, ok)
	require.Len(t, snap, 1)
	assert.Equal(t, "Live", snap[0].Title)
}

func TestLoadNonDefaultDoesNotTouchSnapshot(t *testing.T) {
	svc, st := newFeedService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page": 1, "results": [{"id": 2, "title": "Popular"}], "total_pages": 1, "total_results": 1}`))
	})

	qctx := QueryContext{Feed: catalog.Feed{Kind: catalog.FeedPopular}, Page: 1}
	_, err := svc.Load(context.Background(), qctx)
	require.NoError(t, err)

	_, ok := st.LoadSnapshot()
	assert.False(t, ok)
}

func TestLoadDefaultFallsBackToSnapshot(t *testing.T) {
	svc, st := newFeedService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	movies := []domain.Movie{
		{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}, {ID: 3, Title: "Three"},
		{ID: 4, Title: "Four"}, {ID: 5, Title: "Five"},
	}
	require.NoError(t, st.SaveSnapshot(movies))

	result, err := svc.Load(context.Background(), trendingContext())
	require.NoError(t, err)
	assert.Equal(t, SourceSnapshot, result.Source)
	require.Len(t, result.Movies, 5)
	assert.Equal(t, "One", result.Movies[0].Title)
	// Snapshot replays carry no pagination bounds
	assert.Zero(t, result.TotalPages)
}

func TestLoadDefaultWithoutSnapshot(t *testing.T) {
	svc, _ := newFeedService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Load(context.Background(), trendingContext())
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)
}

func TestLoadAuthFailureNeverDegrades(t *testing.T) {
	svc, st := newFeedService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	require.NoError(t, st.SaveSnapshot([]domain.Movie{{ID: 1, Title: "Snap"}}))

	_, err := svc.Load(context.Background(), trendingContext())
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestLoadNonDefaultFailureNeverDegrades(t *testing.T) {
	svc, st := newFeedService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	require.NoError(t, st.SaveSnapshot([]domain.Movie{{ID: 1, Title: "Snap"}}))

	qctx := QueryContext{Feed: catalog.Feed{Kind: catalog.FeedSearch}, Query: "batman", Page: 1}
	_, err := svc.Load(context.Background(), qctx)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
