package suggest

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"cinemuse/internal/catalog"
	"cinemuse/internal/domain"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// MinQueryLen is the shortest query that produces suggestions
	MinQueryLen = 3

	maxSuggestions = 5
)

// Service produces search-box suggestions. Suggestions are supplementary:
// fetch failures are logged and yield an empty list, never an error.
type Service struct {
	catalog *catalog.Client
	logger  *slog.Logger
}

// NewService creates a suggestion service
func NewService(c *catalog.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: c, logger: logger}
}

// Suggestions returns up to 5 movies matching the partial query. Server
// results are re-ranked locally by fuzzy distance to the typed prefix;
// titles the fuzzy matcher rejects keep their server order after ranked
// matches.
func (s *Service) Suggestions(ctx context.Context, query string) []domain.Movie {
	query = strings.TrimSpace(query)
	if len(query) < MinQueryLen {
		return nil
	}

	page, err := s.catalog.FetchPage(ctx, catalog.Feed{Kind: catalog.FeedSearch}, query, 1)
	if err != nil {
		s.logger.Warn("suggestion fetch failed", "query", query, "error", err)
		return nil
	}

	ranked := rank(query, page.Movies)
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	return ranked
}

// rank orders movies by fuzzy match distance against the query, keeping
// unmatched titles behind matched ones in their original order
func rank(query string, movies []domain.Movie) []domain.Movie {
	titles := make([]string, len(movies))
	byTitle := make(map[string][]domain.Movie, len(movies))
	for i, m := range movies {
		lower := strings.ToLower(m.Title)
		titles[i] = lower
		byTitle[lower] = append(byTitle[lower], m)
	}

	matches := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	taken := make(map[int64]struct{}, len(movies))
	ranked := make([]domain.Movie, 0, len(movies))
	for _, match := range matches {
		for _, m := range byTitle[match.Target] {
			if _, ok := taken[m.ID]; ok {
				continue
			}
			taken[m.ID] = struct{}{}
			ranked = append(ranked, m)
			break
		}
	}
	for _, m := range movies {
		if _, ok := taken[m.ID]; !ok {
			taken[m.ID] = struct{}{}
			ranked = append(ranked, m)
		}
	}
	return ranked
}
