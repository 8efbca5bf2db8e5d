package recommend

import (
	"context"
	"fmt"
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

func TestRecommendGenreOverlap(t *testing.T) {
	watchlist := []domain.Movie{
		{ID: 1, Title: "Watched", GenreIDs: []int{28, 12}},
	}
	pool := []domain.Movie{
		{ID: 2, Title: "Overlapping", GenreIDs: []int{28}},
		{ID: 3, Title: "Disjoint", GenreIDs: []int{99}},
		{ID: 1, Title: "Watched", GenreIDs: []int{28}},
	}

	result := Recommend(watchlist, pool)
	assert.Equal(t, ReasonOK, result.Reason)
	require.Len(t, result.Movies, 1)
	assert.Equal(t, int64(2), result.Movies[0].ID)
}

func TestRecommendIsIdempotent(t *testing.T) {
	watchlist := []domain.Movie{{ID: 1, GenreIDs: []int{35}}}
	pool := []domain.Movie{
		{ID: 2, GenreIDs: []int{35, 18}},
		{ID: 3, GenreIDs: []int{35}},
		{ID: 4, GenreIDs: []int{18}},
	}

	first := Recommend(watchlist, pool)
	second := Recommend(watchlist, pool)
	assert.Equal(t, first, second)
}

func TestRecommendCapsAtEight(t *testing.T) {
	watchlist := []domain.Movie{{ID: 100, GenreIDs: []int{28}}}

	pool := make([]domain.Movie, 0, 12)
	for i := 1; i <= 12; i++ {
		pool = append(pool, domain.Movie{ID: int64(i), GenreIDs: []int{28}})
	}

	result := Recommend(watchlist, pool)
	require.Len(t, result.Movies, 8)
	// First eight survivors in pool order, no re-ranking
	for i, m := range result.Movies {
		assert.Equal(t, int64(i+1), m.ID)
	}
}

func TestRecommendNeverIncludesWatchlist(t *testing.T) {
	watchlist := []domain.Movie{
		{ID: 1, GenreIDs: []int{28}},
		{ID: 2, GenreIDs: []int{12}},
	}
	pool := []domain.Movie{
		{ID: 1, GenreIDs: []int{28}},
		{ID: 2, GenreIDs: []int{12}},
		{ID: 3, GenreIDs: []int{28, 12}},
	}

	result := Recommend(watchlist, pool)
	require.Len(t, result.Movies, 1)
	assert.Equal(t, int64(3), result.Movies[0].ID)
}

func TestRecommendNoInterests(t *testing.T) {
	// Watchlist entries without genre data yield an empty interest set
	watchlist := []domain.Movie{{ID: 1, Title: "No Genres"}}
	pool := []domain.Movie{{ID: 2, GenreIDs: []int{28}}}

	result := Recommend(watchlist, pool)
	assert.Equal(t, ReasonNoInterests, result.Reason)
	assert.Empty(t, result.Movies)

	result = Recommend(nil, pool)
	assert.Equal(t, ReasonNoInterests, result.Reason)
}

func TestRecommendNoMatches(t *testing.T) {
	watchlist := []domain.Movie{{ID: 1, GenreIDs: []int{28}}}
	pool := []domain.Movie{{ID: 2, GenreIDs: []int{99}}}

	result := Recommend(watchlist, pool)
	assert.Equal(t, ReasonNoMatches, result.Reason)
	assert.Empty(t, result.Movies)
}

func TestRecommendReadsDetailGenreShape(t *testing.T) {
	// Detail-shaped watchlist entries carry named genres instead of IDs
	watchlist := []domain.Movie{
		{ID: 1, Genres: []domain.Genre{{ID: 28, Name: "Action"}}},
	}
	pool := []domain.Movie{{ID: 2, GenreIDs: []int{28}}}

	result := Recommend(watchlist, pool)
	require.Len(t, result.Movies, 1)
	assert.Equal(t, int64(2), result.Movies[0].ID)
}

func TestEngineRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		fmt.Fprint(w, `{"page": 1, "results": [
			{"id": 2, "title": "Match", "genre_ids": [28]},
			{"id": 3, "title": "Miss", "genre_ids": [99]}
		], "total_pages": 1, "total_results": 2}`)
	}))
	defer server.Close()

	st, err := store.NewStore("")
	require.NoError(t, err)
	_, err = st.AddToWatchlist(domain.Movie{ID: 1, GenreIDs: []int{28}})
	require.NoError(t, err)

	client := catalog.NewClient(server.URL, "test-key", server.Client(), log.NullLogger())
	engine := NewEngine(client, st, log.NullLogger())

	result := engine.Refresh(context.Background())
	assert.Equal(t, ReasonOK, result.Reason)
	require.Len(t, result.Movies, 1)
	assert.Equal(t, "Match", result.Movies[0].Title)
}

func TestEngineRefreshEmptyWatchlistSkipsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("pool fetch should not happen with no interests")
	}))
	defer server.Close()

	st, err := store.NewStore("")
	require.NoError(t, err)

	client := catalog.NewClient(server.URL, "test-key", server.Client(), log.NullLogger())
	engine := NewEngine(client, st, log.NullLogger())

	result := engine.Refresh(context.Background())
	assert.Equal(t, ReasonNoInterests, result.Reason)
}

func TestEngineRefreshPoolFailureIsSilent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	st, err := store.NewStore("")
	require.NoError(t, err)
	_, err = st.AddToWatchlist(domain.Movie{ID: 1, GenreIDs: []int{28}})
	require.NoError(t, err)

	client := catalog.NewClient(server.URL, "test-key", server.Client(), log.NullLogger())
	engine := NewEngine(client, st, log.NullLogger())

	result := engine.Refresh(context.Background())
	assert.Equal(t, ReasonNoMatches, result.Reason)
	assert.Empty(t, result.Movies)
}
