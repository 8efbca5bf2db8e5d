package browse

import (
	"context"
	"errors"
	"log/slog"

	"cinemuse/internal/catalog"
	"cinemuse/internal/domain"
	"cinemuse/internal/store"
)

// Source reports where feed content came from
type Source int

const (
	SourceLive Source = iota
	SourceSnapshot
)

// FeedResult is a loaded page plus its provenance. A snapshot replay has
// no authoritative pagination bounds.
type FeedResult struct {
	Movies     []domain.Movie
	Page       int
	TotalPages int
	Source     Source
}

// FeedService loads listing pages and manages the default-feed snapshot.
// A successful default-feed fetch overwrites the snapshot; a transient
// failure of the default feed silently degrades to a snapshot replay.
// Authorization failures never degrade, and non-default feeds never touch
// the snapshot in either direction.
type FeedService struct {
	catalog *catalog.Client
	store   *store.Store
	logger  *slog.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(c *catalog.Client, st *store.Store, logger *slog.Logger) *FeedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{catalog: c, store: st, logger: logger}
}

// Load fetches the page described by the query context. For the default
// feed, success refreshes the snapshot and a transient failure replays it;
// when no snapshot exists the caller sees domain.ErrNoSnapshot.
func (s *FeedService) Load(ctx context.Context, qctx QueryContext) (*FeedResult, error) {
	result, err := s.catalog.FetchPage(ctx, qctx.Feed, qctx.Query, qctx.Page)
	if err == nil {
		if qctx.Feed.IsDefault() {
			if saveErr := s.store.SaveSnapshot(result.Movies); saveErr != nil {
				s.logger.Warn("failed to save snapshot", "error", saveErr)
			}
		}
		return &FeedResult{
			Movies:     result.Movies,
			Page:       result.Page,
			TotalPages: result.TotalPages,
			Source:     SourceLive,
		}, nil
	}

	// Auth failures are fatal and never degraded
	if errors.Is(err, domain.ErrAuthFailed) {
		return nil, err
	}

	// Only the default feed falls back to the snapshot
	if !qctx.Feed.IsDefault() {
		return nil, err
	}

	movies, ok := s.store.LoadSnapshot()
	if !ok {
		return nil, domain.ErrNoSnapshot
	}

	s.logger.Info("default feed unavailable, replaying snapshot", "movies", len(movies), "error", err)
	return &FeedResult{Movies: movies, Source: SourceSnapshot}, nil
}
