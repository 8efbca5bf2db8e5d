package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cinemuse/internal/browse"
	"cinemuse/internal/catalog"
	"cinemuse/internal/recommend"
	"cinemuse/internal/shell"
	"cinemuse/internal/store"
	"cinemuse/internal/suggest"
)

const (
	fetchTimeout    = 30 * time.Second
	suggestDebounce = 300 * time.Millisecond
	statusDuration  = 4 * time.Second
	topRatedCount   = 8
)

// Command factories for async operations

// LoadFeedCmd loads the page described by the query context. Failures with
// snapshot fallback arrive as FeedLoadedMsg; everything else as
// FeedFailedMsg carrying the classified error.
func LoadFeedCmd(svc *browse.FeedService, qctx browse.QueryContext, generation uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		result, err := svc.Load(ctx, qctx)
		if err != nil {
			return FeedFailedMsg{Generation: generation, Err: err}
		}
		return FeedLoadedMsg{Generation: generation, Result: result}
	}
}

// LoadGenresCmd loads the genre list for the category menu
func LoadGenresCmd(c *catalog.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		genres, err := c.Genres(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "load genres"}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// LoadDetailsCmd loads the detail shape for a movie
func LoadDetailsCmd(c *catalog.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		movie, err := c.MovieDetails(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "load details"}
		}
		return DetailsLoadedMsg{Movie: movie}
	}
}

// AddToWatchlistCmd fetches a movie's details and adds it to the watchlist,
// so list-originated adds store the richer detail shape
func AddToWatchlistCmd(c *catalog.Client, st *store.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		movie, err := c.MovieDetails(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "add to watchlist"}
		}

		added, err := st.AddToWatchlist(*movie)
		if err != nil {
			return ErrMsg{Err: err, Context: "save watchlist"}
		}
		return WatchlistChangedMsg{Title: movie.Title, Added: added, AlreadyPresent: !added}
	}
}

// RemoveFromWatchlistCmd removes a movie from the watchlist
func RemoveFromWatchlistCmd(st *store.Store, id int64, title string) tea.Cmd {
	return func() tea.Msg {
		removed, err := st.RemoveFromWatchlist(id)
		if err != nil {
			return ErrMsg{Err: err, Context: "save watchlist"}
		}
		return WatchlistChangedMsg{Title: title, Removed: removed}
	}
}

// RefreshRecommendationsCmd recomputes the recommendation set wholesale
func RefreshRecommendationsCmd(engine *recommend.Engine) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return RecommendationsMsg{Result: engine.Refresh(ctx)}
	}
}

// LoadTopRatedCmd loads the top-rated rail (first page, first 8)
func LoadTopRatedCmd(c *catalog.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		result, err := c.FetchPage(ctx, catalog.Feed{Kind: catalog.FeedTopRated}, "", 1)
		if err != nil {
			// Supplementary rail: drop silently
			return TopRatedMsg{}
		}
		movies := result.Movies
		if len(movies) > topRatedCount {
			movies = movies[:topRatedCount]
		}
		return TopRatedMsg{Movies: movies}
	}
}

// SuggestTickCmd debounces suggestion fetches while the user types
func SuggestTickCmd(query string) tea.Cmd {
	return tea.Tick(suggestDebounce, func(time.Time) tea.Msg {
		return SuggestTickMsg{Query: query}
	})
}

// LoadSuggestionsCmd fetches search suggestions for a settled query
func LoadSuggestionsCmd(svc *suggest.Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return SuggestionsMsg{Query: query, Movies: svc.Suggestions(ctx, query)}
	}
}

// SavePosterCmd downloads a poster through the shell cache and writes it
// next to the temp dir. Shell-manifest assets resolve offline; posters
// fall through to the network.
func SavePosterCmd(cache *shell.Cache, posterURL, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		body, err := cache.Intercept(ctx, posterURL)
		if err != nil {
			return ErrMsg{Err: err, Context: "fetch poster"}
		}

		path := filepath.Join(os.TempDir(), fmt.Sprintf("cinemuse-%s.jpg", sanitizeFilename(title)))
		if err := os.WriteFile(path, body, 0644); err != nil {
			return ErrMsg{Err: err, Context: "save poster"}
		}
		return PosterSavedMsg{Path: path}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// sanitizeFilename strips path-hostile characters from a title
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "poster"
	}
	return string(out)
}
