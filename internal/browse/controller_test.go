package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinemuse/internal/catalog"
)

func TestNewQueryResetsToPageOne(t *testing.T) {
	c := NewController()
	qctx, gen := c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")
	require.True(t, c.ApplyResult(gen, 1, 10))

	_, gen, ok := c.GoToPage(1)
	require.True(t, ok)
	require.True(t, c.ApplyResult(gen, 2, 10))
	assert.Equal(t, 2, c.Context().Page)

	qctx, _ = c.NewQuery(catalog.Feed{Kind: catalog.FeedPopular}, "")
	assert.Equal(t, 1, qctx.Page)
	assert.Equal(t, 1, qctx.TotalPages)
}

func TestNewQueryClearsQueryForNonSearchFeeds(t *testing.T) {
	c := NewController()

	qctx, _ := c.NewQuery(catalog.Feed{Kind: catalog.FeedSearch}, "batman")
	assert.Equal(t, "batman", qctx.Query)

	qctx, _ = c.NewQuery(catalog.Feed{Kind: catalog.FeedGenre, GenreID: 28}, "batman")
	assert.Equal(t, "", qctx.Query)
}

func TestGoToPageBounds(t *testing.T) {
	c := NewController()
	_, gen := c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")
	require.True(t, c.ApplyResult(gen, 1, 3))

	// Backward from page 1 is a no-op: no fetch, state unchanged
	_, _, ok := c.GoToPage(-1)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Context().Page)

	_, gen, ok = c.GoToPage(1)
	require.True(t, ok)
	require.True(t, c.ApplyResult(gen, 2, 3))

	_, gen, ok = c.GoToPage(1)
	require.True(t, ok)
	require.True(t, c.ApplyResult(gen, 3, 3))

	// Forward from the last page is a no-op
	_, _, ok = c.GoToPage(1)
	assert.False(t, ok)
	assert.Equal(t, 3, c.Context().Page)
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	c := NewController()
	_, oldGen := c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")

	// The user moves on before the first fetch completes
	_, newGen := c.NewQuery(catalog.Feed{Kind: catalog.FeedPopular}, "")

	assert.False(t, c.ApplyResult(oldGen, 1, 50))
	assert.False(t, c.ApplySnapshot(oldGen))
	assert.False(t, c.Fail(oldGen))
	assert.Equal(t, catalog.FeedPopular, c.Context().Feed.Kind)

	assert.True(t, c.ApplyResult(newGen, 1, 7))
	assert.Equal(t, 7, c.Context().TotalPages)
}

func TestFailRollsBackToPriorContext(t *testing.T) {
	c := NewController()
	_, gen := c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")
	require.True(t, c.ApplyResult(gen, 1, 5))

	_, gen, ok := c.GoToPage(1)
	require.True(t, ok)

	// The page-2 fetch fails: pagination stays on page 1
	require.True(t, c.Fail(gen))
	assert.Equal(t, 1, c.Context().Page)
	assert.Equal(t, 5, c.Context().TotalPages)

	pager := c.Pager()
	assert.True(t, pager.Visible)
	assert.Equal(t, 1, pager.Current)
}

func TestPagerVisibility(t *testing.T) {
	c := NewController()
	_, gen := c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")

	// Single-page results hide the pager
	require.True(t, c.ApplyResult(gen, 1, 1))
	assert.False(t, c.Pager().Visible)

	_, gen = c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")
	require.True(t, c.ApplyResult(gen, 1, 10))
	pager := c.Pager()
	assert.True(t, pager.Visible)
	assert.False(t, pager.PrevEnabled)
	assert.True(t, pager.NextEnabled)

	// Active searches hide the pager regardless of page count
	_, gen = c.NewQuery(catalog.Feed{Kind: catalog.FeedSearch}, "batman")
	require.True(t, c.ApplyResult(gen, 1, 10))
	assert.False(t, c.Pager().Visible)

	// Snapshot replays carry no authoritative bounds
	_, gen = c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")
	require.True(t, c.ApplySnapshot(gen))
	assert.False(t, c.Pager().Visible)
}

func TestPagerEnablementAtBounds(t *testing.T) {
	c := NewController()
	_, gen := c.NewQuery(catalog.Feed{Kind: catalog.FeedTrending}, "")
	require.True(t, c.ApplyResult(gen, 3, 3))

	pager := c.Pager()
	require.True(t, pager.Visible)
	assert.True(t, pager.PrevEnabled)
	assert.False(t, pager.NextEnabled)
	assert.Equal(t, 3, pager.Current)
	assert.Equal(t, 3, pager.Total)
}
