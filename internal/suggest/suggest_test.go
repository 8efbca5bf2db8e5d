package suggest

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
)

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := catalog.NewClient(server.URL, "test-key", server.Client(), log.NullLogger())
	return NewService(client, log.NullLogger())
}

func TestSuggestionsShortQuerySkipsFetch(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no fetch expected below the minimum query length")
	})

	assert.Nil(t, svc.Suggestions(context.Background(), "ba"))
	assert.Nil(t, svc.Suggestions(context.Background(), "  b  "))
	assert.Nil(t, svc.Suggestions(context.Background(), ""))
}

func TestSuggestionsCapAtFive(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		fmt.Fprint(w, `{"page": 1, "results": [
			{"id": 1, "title": "batman"},
			{"id": 2, "title": "batman returns"},
			{"id": 3, "title": "batman forever"},
			{"id": 4, "title": "batman begins"},
			{"id": 5, "title": "batman and robin"},
			{"id": 6, "title": "the batman"},
			{"id": 7, "title": "batman year one"}
		], "total_pages": 1, "total_results": 7}`)
	})

	suggestions := svc.Suggestions(context.Background(), "batman")
	assert.Len(t, suggestions, 5)
}

func TestSuggestionsRankedByFuzzyDistance(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"page": 1, "results": [
			{"id": 1, "title": "Batman Returns"},
			{"id": 2, "title": "Bat"},
			{"id": 3, "title": "Man of Steel"}
		], "total_pages": 1, "total_results": 3}`)
	})

	suggestions := svc.Suggestions(context.Background(), "bat")
	require.Len(t, suggestions, 3)
	// Exact-length matches rank ahead of longer ones; unmatched titles
	// trail in server order
	assert.Equal(t, int64(2), suggestions[0].ID)
	assert.Equal(t, int64(1), suggestions[1].ID)
	assert.Equal(t, int64(3), suggestions[2].ID)
}

func TestSuggestionsFetchFailureIsSilent(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Nil(t, svc.Suggestions(context.Background(), "batman"))
}

func TestRankDeduplicatesByID(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Title: "Dune"},
		{ID: 1, Title: "Dune"},
		{ID: 2, Title: "Dune Part Two"},
	}

	ranked := rank("dune", movies)
	ids := make(map[int64]int)
	for _, m := range ranked {
		ids[m.ID]++
	}
	assert.Equal(t, 1, ids[1])
	assert.Equal(t, 1, ids[2])
}
