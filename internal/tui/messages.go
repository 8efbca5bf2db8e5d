package tui

import (
	"cinemuse/internal/browse"
	"cinemuse/internal/domain"
	"cinemuse/internal/recommend"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// FeedLoadedMsg signals that a feed page has been loaded. Generation tags
// the fetch so stale responses can be discarded.
type FeedLoadedMsg struct {
	Generation uint64
	Result     *browse.FeedResult
}

// FeedFailedMsg signals that a feed fetch failed with no fallback content
type FeedFailedMsg struct {
	Generation uint64
	Err        error
}

// GenresLoadedMsg signals that the genre list has been loaded
type GenresLoadedMsg struct {
	Genres []domain.Genre
}

// DetailsLoadedMsg signals that a movie's detail shape has been loaded
type DetailsLoadedMsg struct {
	Movie *domain.Movie
}

// WatchlistChangedMsg signals the outcome of a watchlist mutation
type WatchlistChangedMsg struct {
	Title          string
	Added          bool
	Removed        bool
	AlreadyPresent bool
}

// RecommendationsMsg carries a freshly recomputed recommendation set
type RecommendationsMsg struct {
	Result recommend.Result
}

// TopRatedMsg carries the top-rated rail content
type TopRatedMsg struct {
	Movies []domain.Movie
}

// SuggestTickMsg fires after the suggestion debounce interval
type SuggestTickMsg struct {
	Query string
}

// SuggestionsMsg carries search suggestions for a query
type SuggestionsMsg struct {
	Query  string
	Movies []domain.Movie
}

// PosterSavedMsg signals that a poster was written to disk
type PosterSavedMsg struct {
	Path string
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
