package recommend

import (
	"context"
	"log/slog"

	"cinemuse/internal/catalog"
	"cinemuse/internal/domain"
	"cinemuse/internal/store"
)

// maxRecommendations caps the suggestion list
const maxRecommendations = 8

// Reason distinguishes why a recommendation set is empty. Both empty cases
// render as an empty set; the reason only drives messaging.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonNoInterests
	ReasonNoMatches
)

// Result is a derived, non-persisted recommendation set
type Result struct {
	Movies []domain.Movie
	Reason Reason
}

// InterestSet builds the genre-interest set: the union of genre IDs across
// all watchlist items, reading whichever genre shape each item carries
func InterestSet(watchlist []domain.Movie) map[int]struct{} {
	interests := make(map[int]struct{})
	for _, m := range watchlist {
		for id := range m.GenreIDSet() {
			interests[id] = struct{}{}
		}
	}
	return interests
}

// Recommend filters the candidate pool against the watchlist's interest
// set: watchlist members are excluded, a candidate survives iff its genres
// intersect the interest set, and the first 8 survivors are kept in pool
// order (no re-ranking by overlap strength). Pure and idempotent for a
// fixed watchlist and pool.
func Recommend(watchlist, pool []domain.Movie) Result {
	interests := InterestSet(watchlist)
	if len(interests) == 0 {
		return Result{Reason: ReasonNoInterests}
	}

	watched := make(map[int64]struct{}, len(watchlist))
	for _, m := range watchlist {
		watched[m.ID] = struct{}{}
	}

	var movies []domain.Movie
	for _, candidate := range pool {
		if _, ok := watched[candidate.ID]; ok {
			continue
		}
		if !overlaps(candidate.GenreIDSet(), interests) {
			continue
		}
		movies = append(movies, candidate)
		if len(movies) == maxRecommendations {
			break
		}
	}

	if len(movies) == 0 {
		return Result{Reason: ReasonNoMatches}
	}
	return Result{Movies: movies, Reason: ReasonOK}
}

func overlaps(a, b map[int]struct{}) bool {
	for id := range a {
		if _, ok := b[id]; ok {
			return true
		}
	}
	return false
}

// Engine recomputes recommendations from the persisted watchlist and a
// fresh candidate pool. Recomputation is wholesale, never incremental.
type Engine struct {
	catalog *catalog.Client
	store   *store.Store
	logger  *slog.Logger
}

// NewEngine creates a recommendation engine
func NewEngine(c *catalog.Client, st *store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{catalog: c, store: st, logger: logger}
}

// Refresh recomputes the recommendation set. Pool fetch failures are
// supplementary content failures: logged, never surfaced.
func (e *Engine) Refresh(ctx context.Context) Result {
	watchlist := e.store.Watchlist()
	if len(InterestSet(watchlist)) == 0 {
		return Result{Reason: ReasonNoInterests}
	}

	pool, err := e.catalog.DiscoverPopular(ctx)
	if err != nil {
		e.logger.Warn("recommendation pool fetch failed", "error", err)
		return Result{Reason: ReasonNoMatches}
	}

	result := Recommend(watchlist, pool)
	e.logger.Debug("recomputed recommendations", "watchlist", len(watchlist), "pool", len(pool), "recommended", len(result.Movies))
	return result
}
