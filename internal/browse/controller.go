package browse

import "cinemuse/internal/catalog"

// QueryContext identifies which query and page is currently authoritative.
// It is replaced wholesale on every new search, category pick, or page
// transition, never partially mutated.
type QueryContext struct {
	Feed       catalog.Feed
	Query      string // Free-text search term, only set for FeedSearch
	Page       int
	TotalPages int
}

// PagerState is the pagination display contract handed to the view
type PagerState struct {
	Current     int
	Total       int
	PrevEnabled bool
	NextEnabled bool
	Visible     bool
}

// Controller owns the active QueryContext and computes page transitions.
// Every issued fetch is tagged with the generation current at issue time;
// responses whose generation no longer matches are discarded, so a late
// response from an abandoned query can never overwrite newer state.
type Controller struct {
	ctx          QueryContext
	prev         QueryContext
	generation   uint64
	fromSnapshot bool
}

// NewController returns a controller in the initial state: default feed,
// no query, page 1, total pages 1 until the first successful fetch
func NewController() *Controller {
	initial := QueryContext{
		Feed:       catalog.Feed{Kind: catalog.FeedTrending},
		Page:       1,
		TotalPages: 1,
	}
	return &Controller{ctx: initial, prev: initial}
}

// Context returns the active query context
func (c *Controller) Context() QueryContext { return c.ctx }

// Generation returns the tag for the most recently issued transition
func (c *Controller) Generation() uint64 { return c.generation }

// NewQuery replaces the active context with a fresh query at page 1 and
// returns the context and generation to fetch with
func (c *Controller) NewQuery(feed catalog.Feed, query string) (QueryContext, uint64) {
	if feed.Kind != catalog.FeedSearch {
		query = ""
	}
	c.prev = c.ctx
	c.ctx = QueryContext{
		Feed:       feed,
		Query:      query,
		Page:       1,
		TotalPages: 1,
	}
	c.fromSnapshot = false
	c.generation++
	return c.ctx, c.generation
}

// GoToPage computes the target page for a relative transition. Targets
// outside [1, totalPages] leave the state unchanged and issue no fetch.
func (c *Controller) GoToPage(delta int) (QueryContext, uint64, bool) {
	next := c.ctx.Page + delta
	if next < 1 || next > c.ctx.TotalPages {
		return c.ctx, c.generation, false
	}
	c.prev = c.ctx
	c.ctx.Page = next
	c.fromSnapshot = false
	c.generation++
	return c.ctx, c.generation, true
}

// ApplyResult adopts the server's pagination bounds for a completed fetch.
// Returns false when the response is stale (its generation no longer
// matches) and must be discarded.
func (c *Controller) ApplyResult(generation uint64, page, totalPages int) bool {
	if generation != c.generation {
		return false
	}
	if page > 0 {
		c.ctx.Page = page
	}
	if totalPages > 0 {
		c.ctx.TotalPages = totalPages
	}
	c.fromSnapshot = false
	return true
}

// ApplySnapshot records that the displayed content came from the offline
// snapshot, which carries no reliable page count, so the pager is forced
// hidden. Returns false for stale generations.
func (c *Controller) ApplySnapshot(generation uint64) bool {
	if generation != c.generation {
		return false
	}
	c.fromSnapshot = true
	return true
}

// Fail rolls the active context back to its pre-transition value after a
// failed fetch, leaving prior content and pagination untouched. Returns
// false for stale generations.
func (c *Controller) Fail(generation uint64) bool {
	if generation != c.generation {
		return false
	}
	c.ctx = c.prev
	return true
}

// Pager computes the pagination display state. Controls are hidden for
// single-page results, active free-text searches, and snapshot replays.
func (c *Controller) Pager() PagerState {
	if c.fromSnapshot || c.ctx.TotalPages <= 1 || c.ctx.Query != "" {
		return PagerState{Visible: false}
	}
	return PagerState{
		Current:     c.ctx.Page,
		Total:       c.ctx.TotalPages,
		PrevEnabled: c.ctx.Page > 1,
		NextEnabled: c.ctx.Page < c.ctx.TotalPages,
		Visible:     true,
	}
}
